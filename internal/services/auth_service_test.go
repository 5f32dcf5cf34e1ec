package services

import (
	"errors"
	"testing"

	"hms_backend/internal/models"
	"hms_backend/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	createFn        func(user *models.User) (*models.User, error)
	getByIDFn       func(id int64) (*models.User, error)
	getByUsernameFn func(username string) (*models.User, error)
	countFn         func() (int, error)
	lastLoginCalls  int
}

func (m *mockUserRepo) CreateUser(u *models.User) (*models.User, error) {
	if m.createFn == nil {
		u.ID = 1
		return u, nil
	}
	return m.createFn(u)
}

func (m *mockUserRepo) GetUserByID(_ repositories.SQLExecutor, id int64) (*models.User, error) {
	if m.getByIDFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.getByIDFn(id)
}

func (m *mockUserRepo) GetUserByUsername(username string) (*models.User, error) {
	if m.getByUsernameFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.getByUsernameFn(username)
}

func (m *mockUserRepo) GetUsers(_ models.UserFilters) ([]models.User, int, error) {
	return nil, 0, nil
}

func (m *mockUserRepo) UpdateUser(u *models.User) (*models.User, error) { return u, nil }

func (m *mockUserRepo) UpdatePassword(_ int64, _ string, _ *int64) error { return nil }

func (m *mockUserRepo) UpdateLastLogin(_ int64) error {
	m.lastLoginCalls++
	return nil
}

func (m *mockUserRepo) DeleteUser(_ int64) error { return nil }

func (m *mockUserRepo) CountUsers() (int, error) {
	if m.countFn == nil {
		return 0, nil
	}
	return m.countFn()
}

func managerActor() *models.Actor {
	return &models.Actor{ID: 1, Username: "boss", Role: models.UserRoleManager}
}

func TestRegisterFirstUserBecomesManager(t *testing.T) {
	repo := &mockUserRepo{countFn: func() (int, error) { return 0, nil }}
	svc := NewAuthService(repo)

	user, err := svc.RegisterUser(RegisterUserRequest{
		Username: "admin",
		Password: "longenoughpass",
		Role:     models.UserRoleReceptionist, // ignored for the bootstrap account
	}, nil)
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Role != models.UserRoleManager {
		t.Fatalf("role = %q, want Manager", user.Role)
	}
	if user.Status != models.UserStatusActive {
		t.Fatalf("status = %q, want Active", user.Status)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longenoughpass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegisterRequiresManagerAfterBootstrap(t *testing.T) {
	repo := &mockUserRepo{countFn: func() (int, error) { return 3, nil }}
	svc := NewAuthService(repo)

	_, err := svc.RegisterUser(RegisterUserRequest{Username: "new", Password: "longenoughpass"}, nil)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("unauthenticated: err = %v, want ErrForbidden", err)
	}

	_, err = svc.RegisterUser(RegisterUserRequest{Username: "new", Password: "longenoughpass"},
		&models.Actor{ID: 2, Username: "desk", Role: models.UserRoleReceptionist})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("receptionist actor: err = %v, want ErrForbidden", err)
	}
}

func TestRegisterDefaultsRoleToReceptionist(t *testing.T) {
	repo := &mockUserRepo{countFn: func() (int, error) { return 1, nil }}
	svc := NewAuthService(repo)

	user, err := svc.RegisterUser(RegisterUserRequest{Username: "desk2", Password: "longenoughpass"}, managerActor())
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Role != models.UserRoleReceptionist {
		t.Fatalf("role = %q, want Receptionist", user.Role)
	}
	if user.CreatedBy == nil || *user.CreatedBy != 1 {
		t.Fatalf("created_by = %v, want 1", user.CreatedBy)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	repo := &mockUserRepo{countFn: func() (int, error) { return 1, nil }}
	svc := NewAuthService(repo)

	_, err := svc.RegisterUser(RegisterUserRequest{Username: "x", Password: "longenoughpass", Role: "Janitor"}, managerActor())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := &mockUserRepo{
		countFn:  func() (int, error) { return 1, nil },
		createFn: func(*models.User) (*models.User, error) { return nil, repositories.ErrDuplicateKey },
	}
	svc := NewAuthService(repo)

	_, err := svc.RegisterUser(RegisterUserRequest{Username: "taken", Password: "longenoughpass"}, managerActor())
	if !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("err = %v, want ErrUsernameExists", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing fixture password: %v", err)
	}
	account := &models.User{
		ID:           9,
		Username:     "desk",
		PasswordHash: string(hash),
		Role:         models.UserRoleReceptionist,
		Status:       models.UserStatusActive,
	}
	repo := &mockUserRepo{
		getByUsernameFn: func(username string) (*models.User, error) {
			if username != "desk" {
				return nil, repositories.ErrNotFound
			}
			return account, nil
		},
	}
	svc := NewAuthService(repo)

	resp, err := svc.LoginUser(LoginRequest{Username: "desk", Password: "correct horse"})
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected access and refresh tokens")
	}
	if resp.User.ID != 9 {
		t.Fatalf("user id = %d, want 9", resp.User.ID)
	}
	if repo.lastLoginCalls != 1 {
		t.Fatalf("last login updated %d times, want 1", repo.lastLoginCalls)
	}

	if _, err := svc.LoginUser(LoginRequest{Username: "desk", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.LoginUser(LoginRequest{Username: "ghost", Password: "correct horse"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginLockedAccount(t *testing.T) {
	repo := &mockUserRepo{
		getByUsernameFn: func(string) (*models.User, error) {
			return &models.User{ID: 2, Username: "old", Status: models.UserStatusLocked}, nil
		},
	}
	svc := NewAuthService(repo)

	if _, err := svc.LoginUser(LoginRequest{Username: "old", Password: "whatever"}); !errors.Is(err, ErrUserLocked) {
		t.Fatalf("err = %v, want ErrUserLocked", err)
	}
}
