package services

import (
	"errors"
	"fmt"
	"time"

	"hms_backend/internal/models"
	"hms_backend/internal/repositories"
	"hms_backend/pkg/utils"
)

var (
	ErrGuestNotFound = errors.New("guest not found")
	ErrGuestInUse    = errors.New("guest has bookings and cannot be deleted")
)

// CreateGuestRequest is used for creating a new guest profile.
type CreateGuestRequest struct {
	Name        string  `json:"name" binding:"required"`
	Gender      *string `json:"gender"`
	DateOfBirth *string `json:"date_of_birth"`
	Nationality *string `json:"nationality"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

// UpdateGuestRequest is used for updating an existing guest profile.
type UpdateGuestRequest struct {
	Name        *string `json:"name"`
	Gender      *string `json:"gender"`
	DateOfBirth *string `json:"date_of_birth"`
	Nationality *string `json:"nationality"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

// GuestService defines guest profile operations.
type GuestService interface {
	CreateGuest(req CreateGuestRequest, actor *models.Actor) (*models.Guest, error)
	GetGuestByID(id int64) (*models.Guest, error)
	GetGuests(filters models.GuestFilters) ([]models.Guest, int, error)
	UpdateGuest(id int64, req UpdateGuestRequest, actor *models.Actor) (*models.Guest, error)
	DeleteGuest(id int64) error
}

type guestService struct {
	guestRepo repositories.GuestRepository
}

// NewGuestService creates a new instance of GuestService.
func NewGuestService(gr repositories.GuestRepository) GuestService {
	return &guestService{guestRepo: gr}
}

func validateGuestFields(gender, dateOfBirth, email *string) error {
	if gender != nil && !models.IsValidGender(*gender) {
		return fmt.Errorf("%w: unknown gender %q", ErrValidation, *gender)
	}
	if dateOfBirth != nil {
		if _, err := time.Parse("2006-01-02", *dateOfBirth); err != nil {
			return fmt.Errorf("%w: date_of_birth must be YYYY-MM-DD", ErrValidation)
		}
	}
	if email != nil && *email != "" && !utils.IsValidEmail(*email) {
		return fmt.Errorf("%w: invalid email %q", ErrValidation, *email)
	}
	return nil
}

func (s *guestService) CreateGuest(req CreateGuestRequest, actor *models.Actor) (*models.Guest, error) {
	if err := validateGuestFields(req.Gender, req.DateOfBirth, req.Email); err != nil {
		return nil, err
	}

	guest := models.Guest{
		Name:        req.Name,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Nationality: req.Nationality,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Description: req.Description,
	}
	if actor != nil {
		guest.CreatedBy = &actor.ID
	}

	created, err := s.guestRepo.CreateGuest(&guest)
	if err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	return created, nil
}

func (s *guestService) GetGuestByID(id int64) (*models.Guest, error) {
	guest, err := s.guestRepo.GetGuestByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to get guest by ID: %w", err)
	}
	return guest, nil
}

func (s *guestService) GetGuests(filters models.GuestFilters) ([]models.Guest, int, error) {
	guests, totalCount, err := s.guestRepo.GetGuests(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get guests: %w", err)
	}
	return guests, totalCount, nil
}

func (s *guestService) UpdateGuest(id int64, req UpdateGuestRequest, actor *models.Actor) (*models.Guest, error) {
	if err := validateGuestFields(req.Gender, req.DateOfBirth, req.Email); err != nil {
		return nil, err
	}
	guest, err := s.GetGuestByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		guest.Name = *req.Name
	}
	if req.Gender != nil {
		guest.Gender = req.Gender
	}
	if req.DateOfBirth != nil {
		guest.DateOfBirth = req.DateOfBirth
	}
	if req.Nationality != nil {
		guest.Nationality = req.Nationality
	}
	if req.Phone != nil {
		guest.Phone = req.Phone
	}
	if req.Email != nil {
		guest.Email = req.Email
	}
	if req.Address != nil {
		guest.Address = req.Address
	}
	if req.Description != nil {
		guest.Description = req.Description
	}
	if actor != nil {
		guest.UpdatedBy = &actor.ID
	}

	updated, err := s.guestRepo.UpdateGuest(guest)
	if err != nil {
		return nil, fmt.Errorf("failed to update guest %d: %w", id, err)
	}
	return updated, nil
}

func (s *guestService) DeleteGuest(id int64) error {
	if _, err := s.GetGuestByID(id); err != nil {
		return err
	}
	count, err := s.guestRepo.CountBookingsByGuest(id)
	if err != nil {
		return fmt.Errorf("failed to count bookings for guest %d: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: guest ID %d", ErrGuestInUse, id)
	}
	if err := s.guestRepo.DeleteGuest(id); err != nil {
		return fmt.Errorf("failed to delete guest %d: %w", id, err)
	}
	return nil
}
