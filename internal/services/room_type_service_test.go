package services

import (
	"errors"
	"testing"

	"hms_backend/internal/models"
	"hms_backend/internal/repositories"
)

func TestCreateRoomTypeOccupancyValidation(t *testing.T) {
	svc := NewRoomTypeService(&mockRoomTypeRepo{})

	_, err := svc.CreateRoomType(CreateRoomTypeRequest{
		Code:          "STD",
		Name:          "Standard",
		BaseOccupancy: 2,
		MaxOccupancy:  1,
	}, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreateRoomTypeDuplicateCode(t *testing.T) {
	repo := &mockRoomTypeRepo{
		createFn: func(*models.RoomType) (*models.RoomType, error) { return nil, repositories.ErrDuplicateKey },
	}
	svc := NewRoomTypeService(repo)

	_, err := svc.CreateRoomType(CreateRoomTypeRequest{
		Code:          "STD",
		Name:          "Standard",
		BaseOccupancy: 2,
		MaxOccupancy:  2,
	}, nil)
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("err = %v, want ErrDuplicateName", err)
	}
}

func TestUpdateRoomTypeKeepsOccupancyConsistent(t *testing.T) {
	repo := &mockRoomTypeRepo{
		getFn: func(id int64) (*models.RoomType, error) {
			return &models.RoomType{ID: id, Code: "DLX", Name: "Deluxe", BaseOccupancy: 2, MaxOccupancy: 3}, nil
		},
	}
	svc := NewRoomTypeService(repo)

	smallMax := 1
	if _, err := svc.UpdateRoomType(1, UpdateRoomTypeRequest{MaxOccupancy: &smallMax}, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation when max drops below base", err)
	}
}

func TestDeleteRoomTypeInUse(t *testing.T) {
	repo := &mockRoomTypeRepo{
		getFn: func(id int64) (*models.RoomType, error) {
			return &models.RoomType{ID: id, Code: "STD", Name: "Standard"}, nil
		},
		countRoomsFn: func(int64) (int, error) { return 4, nil },
		deleteFn: func(int64) error {
			t.Fatal("delete must not be called for a room type with rooms")
			return nil
		},
	}
	svc := NewRoomTypeService(repo)

	if err := svc.DeleteRoomType(1); !errors.Is(err, ErrRoomTypeInUse) {
		t.Fatalf("err = %v, want ErrRoomTypeInUse", err)
	}
}
