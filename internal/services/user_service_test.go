package services

import (
	"errors"
	"testing"

	"hms_backend/internal/models"
)

func activeManager(id int64) *models.User {
	return &models.User{ID: id, Username: "boss", Role: models.UserRoleManager, Status: models.UserStatusActive}
}

func TestUpdateUserCannotLockOwnAccount(t *testing.T) {
	repo := &mockUserRepo{
		getByIDFn: func(id int64) (*models.User, error) { return activeManager(id), nil },
	}
	svc := NewUserService(repo)

	locked := models.UserStatusLocked
	_, err := svc.UpdateUser(1, UpdateUserRequest{Status: &locked}, &models.Actor{ID: 1, Role: models.UserRoleManager})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestUpdateUserRoleValidation(t *testing.T) {
	repo := &mockUserRepo{
		getByIDFn: func(id int64) (*models.User, error) { return activeManager(id), nil },
	}
	svc := NewUserService(repo)

	role := "Owner"
	if _, err := svc.UpdateUser(2, UpdateUserRequest{Role: &role}, managerActor()); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestDeleteUserCannotDeleteSelf(t *testing.T) {
	repo := &mockUserRepo{
		getByIDFn: func(id int64) (*models.User, error) { return activeManager(id), nil },
	}
	svc := NewUserService(repo)

	if err := svc.DeleteUser(1, &models.Actor{ID: 1, Role: models.UserRoleManager}); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if err := svc.DeleteUser(2, &models.Actor{ID: 1, Role: models.UserRoleManager}); err != nil {
		t.Fatalf("deleting another user: %v", err)
	}
}

func TestChangePasswordUnknownUser(t *testing.T) {
	svc := NewUserService(&mockUserRepo{})

	err := svc.ChangePassword(9, ChangePasswordRequest{Password: "longenoughpass"}, managerActor())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
