package services

import (
	"errors"
	"testing"

	"hms_backend/internal/models"
	"hms_backend/internal/repositories"
)

func TestCreateGuestValidation(t *testing.T) {
	svc := NewGuestService(&mockGuestRepo{})

	gender := "Unknownish"
	if _, err := svc.CreateGuest(CreateGuestRequest{Name: "A", Gender: &gender}, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad gender: err = %v, want ErrValidation", err)
	}

	dob := "01-02-1990"
	if _, err := svc.CreateGuest(CreateGuestRequest{Name: "A", DateOfBirth: &dob}, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad date of birth: err = %v, want ErrValidation", err)
	}

	email := "not-an-email"
	if _, err := svc.CreateGuest(CreateGuestRequest{Name: "A", Email: &email}, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad email: err = %v, want ErrValidation", err)
	}
}

func TestUpdateGuestRejectsInvalidEmail(t *testing.T) {
	repo := &mockGuestRepo{
		getFn: func(id int64) (*models.Guest, error) { return &models.Guest{ID: id, Name: "Jane"}, nil },
	}
	svc := NewGuestService(repo)

	email := "jane@@example"
	if _, err := svc.UpdateGuest(5, UpdateGuestRequest{Email: &email}, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreateGuestRecordsActor(t *testing.T) {
	svc := NewGuestService(&mockGuestRepo{})

	guest, err := svc.CreateGuest(CreateGuestRequest{Name: "Jane Doe"}, &models.Actor{ID: 4, Role: models.UserRoleReceptionist})
	if err != nil {
		t.Fatalf("CreateGuest: %v", err)
	}
	if guest.CreatedBy == nil || *guest.CreatedBy != 4 {
		t.Fatalf("created_by = %v, want 4", guest.CreatedBy)
	}
}

func TestUpdateGuestPartialFields(t *testing.T) {
	phone := "555-0001"
	repo := &mockGuestRepo{
		getFn: func(id int64) (*models.Guest, error) {
			return &models.Guest{ID: id, Name: "Jane Doe", Phone: &phone}, nil
		},
	}
	svc := NewGuestService(repo)

	newName := "Jane Smith"
	updated, err := svc.UpdateGuest(5, UpdateGuestRequest{Name: &newName}, nil)
	if err != nil {
		t.Fatalf("UpdateGuest: %v", err)
	}
	if updated.Name != "Jane Smith" {
		t.Fatalf("name = %q, want Jane Smith", updated.Name)
	}
	if updated.Phone == nil || *updated.Phone != "555-0001" {
		t.Fatalf("phone = %v, want untouched 555-0001", updated.Phone)
	}
}

func TestDeleteGuestWithBookings(t *testing.T) {
	repo := &mockGuestRepo{
		getFn:           func(id int64) (*models.Guest, error) { return &models.Guest{ID: id, Name: "Jane"}, nil },
		countBookingsFn: func(int64) (int, error) { return 2, nil },
		deleteFn: func(int64) error {
			t.Fatal("delete must not be called for a guest with bookings")
			return nil
		},
	}
	svc := NewGuestService(repo)

	if err := svc.DeleteGuest(5); !errors.Is(err, ErrGuestInUse) {
		t.Fatalf("err = %v, want ErrGuestInUse", err)
	}
}

func TestGetGuestByIDNotFound(t *testing.T) {
	svc := NewGuestService(&mockGuestRepo{
		getFn: func(int64) (*models.Guest, error) { return nil, repositories.ErrNotFound },
	})

	if _, err := svc.GetGuestByID(99); !errors.Is(err, ErrGuestNotFound) {
		t.Fatalf("err = %v, want ErrGuestNotFound", err)
	}
}
