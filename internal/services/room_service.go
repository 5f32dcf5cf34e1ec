package services

import (
	"errors"
	"fmt"
	"time"

	"hms_backend/internal/models"
	"hms_backend/internal/repositories"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrRoomInUse        = errors.New("room has bookings and cannot be deleted")
	ErrRoomTypeInUse    = errors.New("room type has rooms and cannot be deleted")
	ErrDuplicateName    = errors.New("name or code already in use")
)

// CreateRoomRequest is used for creating a new room.
type CreateRoomRequest struct {
	Name               string  `json:"name" binding:"required"`
	RoomTypeID         int64   `json:"room_type_id" binding:"required"`
	Description        *string `json:"description"`
	Status             *string `json:"status"`
	HousekeepingStatus *string `json:"housekeeping_status"`
}

// UpdateRoomRequest is used for updating an existing room.
type UpdateRoomRequest struct {
	Name               *string `json:"name"`
	RoomTypeID         *int64  `json:"room_type_id"`
	Description        *string `json:"description"`
	Status             *string `json:"status"`
	HousekeepingStatus *string `json:"housekeeping_status"`
}

// RoomService defines room and housekeeping state operations.
type RoomService interface {
	CreateRoom(req CreateRoomRequest, actor *models.Actor) (*models.Room, error)
	GetRoomByID(id int64) (*models.Room, error)
	GetRooms(filters models.RoomFilters) ([]models.Room, int, error)
	GetAvailableRooms(checkin time.Time, checkout *time.Time, roomTypeID *int64) ([]models.Room, error)
	UpdateRoom(id int64, req UpdateRoomRequest, actor *models.Actor) (*models.Room, error)
	DeleteRoom(id int64) error
}

type roomService struct {
	roomRepo     repositories.RoomRepository
	roomTypeRepo repositories.RoomTypeRepository
}

// NewRoomService creates a new instance of RoomService.
func NewRoomService(rr repositories.RoomRepository, rtr repositories.RoomTypeRepository) RoomService {
	return &roomService{roomRepo: rr, roomTypeRepo: rtr}
}

func (s *roomService) CreateRoom(req CreateRoomRequest, actor *models.Actor) (*models.Room, error) {
	if _, err := s.roomTypeRepo.GetRoomTypeByID(nil, req.RoomTypeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: room type ID %d", ErrRoomTypeNotFound, req.RoomTypeID)
		}
		return nil, fmt.Errorf("failed to fetch room type %d: %w", req.RoomTypeID, err)
	}

	room := models.Room{
		Name:        req.Name,
		RoomTypeID:  req.RoomTypeID,
		Description: req.Description,
	}
	if req.Status != nil {
		if !models.IsValidRoomStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown room status %q", ErrValidation, *req.Status)
		}
		room.Status = *req.Status
	}
	if req.HousekeepingStatus != nil {
		if !models.IsValidHousekeepingStatus(*req.HousekeepingStatus) {
			return nil, fmt.Errorf("%w: unknown housekeeping status %q", ErrValidation, *req.HousekeepingStatus)
		}
		room.HousekeepingStatus = *req.HousekeepingStatus
	}
	if actor != nil {
		room.CreatedBy = &actor.ID
	}

	created, err := s.roomRepo.CreateRoom(&room)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: room %q", ErrDuplicateName, req.Name)
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return s.GetRoomByID(created.ID)
}

func (s *roomService) GetRoomByID(id int64) (*models.Room, error) {
	room, err := s.roomRepo.GetRoomByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room by ID: %w", err)
	}
	return room, nil
}

func (s *roomService) GetRooms(filters models.RoomFilters) ([]models.Room, int, error) {
	rooms, totalCount, err := s.roomRepo.GetRooms(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get rooms: %w", err)
	}
	return rooms, totalCount, nil
}

func (s *roomService) GetAvailableRooms(checkin time.Time, checkout *time.Time, roomTypeID *int64) ([]models.Room, error) {
	if checkout != nil && !checkout.After(checkin) {
		return nil, fmt.Errorf("%w: checkout must be after checkin", ErrValidation)
	}
	rooms, err := s.roomRepo.GetAvailableRooms(checkin, checkout, roomTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get available rooms: %w", err)
	}
	return rooms, nil
}

func (s *roomService) UpdateRoom(id int64, req UpdateRoomRequest, actor *models.Actor) (*models.Room, error) {
	room, err := s.GetRoomByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.RoomTypeID != nil && *req.RoomTypeID != room.RoomTypeID {
		if _, err := s.roomTypeRepo.GetRoomTypeByID(nil, *req.RoomTypeID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: room type ID %d", ErrRoomTypeNotFound, *req.RoomTypeID)
			}
			return nil, fmt.Errorf("failed to fetch room type %d: %w", *req.RoomTypeID, err)
		}
		room.RoomTypeID = *req.RoomTypeID
	}
	if req.Description != nil {
		room.Description = req.Description
	}
	if req.Status != nil {
		if !models.IsValidRoomStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown room status %q", ErrValidation, *req.Status)
		}
		room.Status = *req.Status
	}
	if req.HousekeepingStatus != nil {
		if !models.IsValidHousekeepingStatus(*req.HousekeepingStatus) {
			return nil, fmt.Errorf("%w: unknown housekeeping status %q", ErrValidation, *req.HousekeepingStatus)
		}
		room.HousekeepingStatus = *req.HousekeepingStatus
	}
	if actor != nil {
		room.UpdatedBy = &actor.ID
	}

	if _, err := s.roomRepo.UpdateRoom(room); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: room %q", ErrDuplicateName, room.Name)
		}
		return nil, fmt.Errorf("failed to update room %d: %w", id, err)
	}
	return s.GetRoomByID(id)
}

func (s *roomService) DeleteRoom(id int64) error {
	if _, err := s.GetRoomByID(id); err != nil {
		return err
	}
	count, err := s.roomRepo.CountBookingsByRoom(id)
	if err != nil {
		return fmt.Errorf("failed to count bookings for room %d: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: room ID %d", ErrRoomInUse, id)
	}
	if err := s.roomRepo.DeleteRoom(id); err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return fmt.Errorf("%w: room ID %d", ErrRoomInUse, id)
		}
		return fmt.Errorf("failed to delete room %d: %w", id, err)
	}
	return nil
}
