package services

import (
	"errors"
	"fmt"

	"hms_backend/internal/models"
	"hms_backend/internal/repositories"
)

// CreateRoomTypeRequest is used for creating a new room type.
type CreateRoomTypeRequest struct {
	Code          string  `json:"code" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	BaseOccupancy int     `json:"base_occupancy" binding:"required,gt=0"`
	MaxOccupancy  int     `json:"max_occupancy" binding:"required,gt=0"`
	BaseRate      float64 `json:"base_rate" binding:"gte=0"`
	HourRate      float64 `json:"hour_rate" binding:"gte=0"`
	ExtraAdultFee float64 `json:"extra_adult_fee" binding:"gte=0"`
	ExtraChildFee float64 `json:"extra_child_fee" binding:"gte=0"`
	Description   *string `json:"description"`
}

// UpdateRoomTypeRequest is used for updating an existing room type.
type UpdateRoomTypeRequest struct {
	Code          *string  `json:"code"`
	Name          *string  `json:"name"`
	BaseOccupancy *int     `json:"base_occupancy"`
	MaxOccupancy  *int     `json:"max_occupancy"`
	BaseRate      *float64 `json:"base_rate"`
	HourRate      *float64 `json:"hour_rate"`
	ExtraAdultFee *float64 `json:"extra_adult_fee"`
	ExtraChildFee *float64 `json:"extra_child_fee"`
	Description   *string  `json:"description"`
}

// RoomTypeService defines room type reference data operations.
type RoomTypeService interface {
	CreateRoomType(req CreateRoomTypeRequest, actor *models.Actor) (*models.RoomType, error)
	GetRoomTypeByID(id int64) (*models.RoomType, error)
	GetRoomTypes(page, pageSize int, name *string) ([]models.RoomType, int, error)
	UpdateRoomType(id int64, req UpdateRoomTypeRequest, actor *models.Actor) (*models.RoomType, error)
	DeleteRoomType(id int64) error
}

type roomTypeService struct {
	roomTypeRepo repositories.RoomTypeRepository
}

// NewRoomTypeService creates a new instance of RoomTypeService.
func NewRoomTypeService(rtr repositories.RoomTypeRepository) RoomTypeService {
	return &roomTypeService{roomTypeRepo: rtr}
}

func validateOccupancy(base, max int) error {
	if max < base {
		return fmt.Errorf("%w: max occupancy must be at least base occupancy", ErrValidation)
	}
	return nil
}

func (s *roomTypeService) CreateRoomType(req CreateRoomTypeRequest, actor *models.Actor) (*models.RoomType, error) {
	if err := validateOccupancy(req.BaseOccupancy, req.MaxOccupancy); err != nil {
		return nil, err
	}

	roomType := models.RoomType{
		Code:          req.Code,
		Name:          req.Name,
		BaseOccupancy: req.BaseOccupancy,
		MaxOccupancy:  req.MaxOccupancy,
		BaseRate:      req.BaseRate,
		HourRate:      req.HourRate,
		ExtraAdultFee: req.ExtraAdultFee,
		ExtraChildFee: req.ExtraChildFee,
		Description:   req.Description,
	}
	if actor != nil {
		roomType.CreatedBy = &actor.ID
	}

	created, err := s.roomTypeRepo.CreateRoomType(&roomType)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: room type code %q", ErrDuplicateName, req.Code)
		}
		return nil, fmt.Errorf("failed to create room type: %w", err)
	}
	return created, nil
}

func (s *roomTypeService) GetRoomTypeByID(id int64) (*models.RoomType, error) {
	roomType, err := s.roomTypeRepo.GetRoomTypeByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("failed to get room type by ID: %w", err)
	}
	return roomType, nil
}

func (s *roomTypeService) GetRoomTypes(page, pageSize int, name *string) ([]models.RoomType, int, error) {
	roomTypes, totalCount, err := s.roomTypeRepo.GetRoomTypes(page, pageSize, name)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get room types: %w", err)
	}
	return roomTypes, totalCount, nil
}

func (s *roomTypeService) UpdateRoomType(id int64, req UpdateRoomTypeRequest, actor *models.Actor) (*models.RoomType, error) {
	roomType, err := s.GetRoomTypeByID(id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		roomType.Code = *req.Code
	}
	if req.Name != nil {
		roomType.Name = *req.Name
	}
	if req.BaseOccupancy != nil {
		roomType.BaseOccupancy = *req.BaseOccupancy
	}
	if req.MaxOccupancy != nil {
		roomType.MaxOccupancy = *req.MaxOccupancy
	}
	if err := validateOccupancy(roomType.BaseOccupancy, roomType.MaxOccupancy); err != nil {
		return nil, err
	}
	if req.BaseRate != nil {
		roomType.BaseRate = *req.BaseRate
	}
	if req.HourRate != nil {
		roomType.HourRate = *req.HourRate
	}
	if req.ExtraAdultFee != nil {
		roomType.ExtraAdultFee = *req.ExtraAdultFee
	}
	if req.ExtraChildFee != nil {
		roomType.ExtraChildFee = *req.ExtraChildFee
	}
	if req.Description != nil {
		roomType.Description = req.Description
	}
	if actor != nil {
		roomType.UpdatedBy = &actor.ID
	}

	updated, err := s.roomTypeRepo.UpdateRoomType(roomType)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: room type code %q", ErrDuplicateName, roomType.Code)
		}
		return nil, fmt.Errorf("failed to update room type %d: %w", id, err)
	}
	return updated, nil
}

func (s *roomTypeService) DeleteRoomType(id int64) error {
	if _, err := s.GetRoomTypeByID(id); err != nil {
		return err
	}
	count, err := s.roomTypeRepo.CountRoomsByType(id)
	if err != nil {
		return fmt.Errorf("failed to count rooms for room type %d: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: room type ID %d", ErrRoomTypeInUse, id)
	}
	if err := s.roomTypeRepo.DeleteRoomType(id); err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return fmt.Errorf("%w: room type ID %d", ErrRoomTypeInUse, id)
		}
		return fmt.Errorf("failed to delete room type %d: %w", id, err)
	}
	return nil
}
