package services

import (
	"errors"
	"fmt"

	"hms_backend/internal/models"
	"hms_backend/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UpdateUserRequest is used for administrative updates to a staff account.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
}

// ChangePasswordRequest is used for resetting a staff account password.
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// UserService defines staff account administration operations.
type UserService interface {
	GetUserByID(id int64) (*models.User, error)
	GetUsers(filters models.UserFilters) ([]models.User, int, error)
	UpdateUser(id int64, req UpdateUserRequest, actor *models.Actor) (*models.User, error)
	ChangePassword(id int64, req ChangePasswordRequest, actor *models.Actor) error
	DeleteUser(id int64, actor *models.Actor) error
}

type userService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(ur repositories.UserRepository) UserService {
	return &userService{userRepo: ur}
}

func (s *userService) GetUserByID(id int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) GetUsers(filters models.UserFilters) ([]models.User, int, error) {
	users, totalCount, err := s.userRepo.GetUsers(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get users: %w", err)
	}
	return users, totalCount, nil
}

func (s *userService) UpdateUser(id int64, req UpdateUserRequest, actor *models.Actor) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Role != nil {
		if !models.IsValidUserRole(*req.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *req.Role)
		}
		user.Role = *req.Role
	}
	if req.Status != nil {
		if !models.IsValidUserStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *req.Status)
		}
		// A manager cannot lock their own account.
		if actor != nil && actor.ID == id && *req.Status == models.UserStatusLocked {
			return nil, fmt.Errorf("%w: cannot lock own account", ErrValidation)
		}
		user.Status = *req.Status
	}
	if actor != nil {
		user.UpdatedBy = &actor.ID
	}

	updated, err := s.userRepo.UpdateUser(user)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrUsernameExists, user.Username)
		}
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return updated, nil
}

func (s *userService) ChangePassword(id int64, req ChangePasswordRequest, actor *models.Actor) error {
	if _, err := s.GetUserByID(id); err != nil {
		return err
	}
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	var actorID *int64
	if actor != nil {
		actorID = &actor.ID
	}
	if err := s.userRepo.UpdatePassword(id, string(hashedPasswordBytes), actorID); err != nil {
		return fmt.Errorf("failed to update password for user %d: %w", id, err)
	}
	return nil
}

func (s *userService) DeleteUser(id int64, actor *models.Actor) error {
	if actor != nil && actor.ID == id {
		return fmt.Errorf("%w: cannot delete own account", ErrValidation)
	}
	if _, err := s.GetUserByID(id); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUser(id); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}
