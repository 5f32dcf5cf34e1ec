package services

import (
	"errors"
	"testing"
	"time"

	"hms_backend/internal/models"
	"hms_backend/internal/repositories"
)

func availableRoomFixture(id int64) *models.Room {
	return &models.Room{
		ID:                 id,
		Name:               "101",
		RoomTypeID:         1,
		Status:             models.RoomStatusAvailable,
		HousekeepingStatus: models.HousekeepingStatusClean,
	}
}

func TestCreateRoomUnknownRoomType(t *testing.T) {
	svc := NewRoomService(&mockRoomRepo{}, &mockRoomTypeRepo{
		getFn: func(int64) (*models.RoomType, error) { return nil, repositories.ErrNotFound },
	})

	_, err := svc.CreateRoom(CreateRoomRequest{Name: "101", RoomTypeID: 9}, nil)
	if !errors.Is(err, ErrRoomTypeNotFound) {
		t.Fatalf("err = %v, want ErrRoomTypeNotFound", err)
	}
}

func TestCreateRoomRejectsUnknownStatuses(t *testing.T) {
	roomTypeRepo := &mockRoomTypeRepo{
		getFn: func(id int64) (*models.RoomType, error) {
			return &models.RoomType{ID: id, Code: "STD"}, nil
		},
	}
	svc := NewRoomService(&mockRoomRepo{}, roomTypeRepo)

	badStatus := "Broken"
	if _, err := svc.CreateRoom(CreateRoomRequest{Name: "101", RoomTypeID: 1, Status: &badStatus}, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad room status: err = %v, want ErrValidation", err)
	}

	badHK := "Sparkling"
	if _, err := svc.CreateRoom(CreateRoomRequest{Name: "101", RoomTypeID: 1, HousekeepingStatus: &badHK}, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad housekeeping status: err = %v, want ErrValidation", err)
	}
}

func TestCreateRoomDuplicateName(t *testing.T) {
	roomRepo := &mockRoomRepo{
		createFn: func(*models.Room) (*models.Room, error) { return nil, repositories.ErrDuplicateKey },
	}
	roomTypeRepo := &mockRoomTypeRepo{
		getFn: func(id int64) (*models.RoomType, error) { return &models.RoomType{ID: id}, nil },
	}
	svc := NewRoomService(roomRepo, roomTypeRepo)

	if _, err := svc.CreateRoom(CreateRoomRequest{Name: "101", RoomTypeID: 1}, nil); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("err = %v, want ErrDuplicateName", err)
	}
}

func TestGetAvailableRoomsValidatesRange(t *testing.T) {
	svc := NewRoomService(&mockRoomRepo{}, &mockRoomTypeRepo{})

	checkin := time.Date(2025, 9, 1, 14, 0, 0, 0, time.UTC)
	checkout := checkin.Add(-time.Hour)
	if _, err := svc.GetAvailableRooms(checkin, &checkout, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestGetAvailableRoomsPassesFilters(t *testing.T) {
	checkin := time.Date(2025, 9, 1, 14, 0, 0, 0, time.UTC)
	checkout := checkin.Add(48 * time.Hour)
	typeID := int64(2)

	roomRepo := &mockRoomRepo{
		availableFn: func(gotCheckin time.Time, gotCheckout *time.Time, gotTypeID *int64) ([]models.Room, error) {
			if !gotCheckin.Equal(checkin) {
				t.Fatalf("checkin = %v, want %v", gotCheckin, checkin)
			}
			if gotCheckout == nil || !gotCheckout.Equal(checkout) {
				t.Fatalf("checkout = %v, want %v", gotCheckout, checkout)
			}
			if gotTypeID == nil || *gotTypeID != typeID {
				t.Fatalf("room type id = %v, want %d", gotTypeID, typeID)
			}
			return []models.Room{*availableRoomFixture(1)}, nil
		},
	}
	svc := NewRoomService(roomRepo, &mockRoomTypeRepo{})

	rooms, err := svc.GetAvailableRooms(checkin, &checkout, &typeID)
	if err != nil {
		t.Fatalf("GetAvailableRooms: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("got %d rooms, want 1", len(rooms))
	}
}

func TestDeleteRoomWithBookings(t *testing.T) {
	roomRepo := &mockRoomRepo{
		getForUpdateFn:  func(id int64) (*models.Room, error) { return availableRoomFixture(id), nil },
		countBookingsFn: func(int64) (int, error) { return 3, nil },
		deleteFn: func(int64) error {
			t.Fatal("delete must not be called for a room with bookings")
			return nil
		},
	}
	svc := NewRoomService(roomRepo, &mockRoomTypeRepo{})

	if err := svc.DeleteRoom(1); !errors.Is(err, ErrRoomInUse) {
		t.Fatalf("err = %v, want ErrRoomInUse", err)
	}
}
