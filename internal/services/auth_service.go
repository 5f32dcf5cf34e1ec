package services

import (
	"errors"
	"fmt"

	"hms_backend/internal/models"
	"hms_backend/internal/repositories"
	"hms_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserLocked         = errors.New("user account is locked")
	ErrUsernameExists     = errors.New("username already exists")
	ErrForbidden          = errors.New("operation not permitted for this role")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest DTO
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// AuthResponse DTO
type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
}

// AuthService defines registration, login and profile operations.
type AuthService interface {
	RegisterUser(req RegisterUserRequest, actor *models.Actor) (*models.User, error)
	LoginUser(req LoginRequest) (*AuthResponse, error)
	GetUserProfile(userID int64) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(ur repositories.UserRepository) AuthService {
	return &authService{userRepo: ur}
}

// RegisterUser creates a staff account. The very first account bootstraps the
// system as a Manager without authentication; after that only Managers may
// register new users.
func (s *authService) RegisterUser(req RegisterUserRequest, actor *models.Actor) (*models.User, error) {
	userCount, err := s.userRepo.CountUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	role := req.Role
	if userCount == 0 {
		role = models.UserRoleManager
	} else {
		if actor == nil || actor.Role != models.UserRoleManager {
			return nil, fmt.Errorf("%w: only managers can register users", ErrForbidden)
		}
		if role == "" {
			role = models.UserRoleReceptionist
		}
		if !models.IsValidUserRole(role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
		}
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     req.Username,
		Role:         role,
		PasswordHash: string(hashedPasswordBytes),
		Status:       models.UserStatusActive,
	}
	if actor != nil {
		user.CreatedBy = &actor.ID
	}

	created, err := s.userRepo.CreateUser(&user)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrUsernameExists, req.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (s *authService) LoginUser(req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user %q: %w", req.Username, err)
	}
	if user.Status != models.UserStatusActive {
		return nil, ErrUserLocked
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		utils.LogError(err, "failed to update last login timestamp")
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) GetUserProfile(userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(nil, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return user, nil
}
