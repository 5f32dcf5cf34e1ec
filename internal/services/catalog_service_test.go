package services

import (
	"errors"
	"testing"

	"hms_backend/internal/models"
)

func TestCreateServiceRejectsUnknownStatus(t *testing.T) {
	svc := NewCatalogService(&mockServiceRepo{})

	status := "Paused"
	_, err := svc.CreateService(CreateServiceRequest{Name: "Laundry", Unit: "kg", Price: 5000, Status: &status}, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestUpdateServiceRejectsNegativePrice(t *testing.T) {
	repo := &mockServiceRepo{
		getFn: func(id int64) (*models.Service, error) {
			return &models.Service{ID: id, Name: "Laundry", Unit: "kg", Price: 5000, Status: models.ServiceStatusActive}, nil
		},
	}
	svc := NewCatalogService(repo)

	price := -1.0
	if _, err := svc.UpdateService(1, UpdateServiceRequest{Price: &price}, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestDeleteServiceInUse(t *testing.T) {
	repo := &mockServiceRepo{
		getFn: func(id int64) (*models.Service, error) {
			return &models.Service{ID: id, Name: "Laundry", Status: models.ServiceStatusActive}, nil
		},
		countUsagesFn: func(int64) (int, error) { return 7, nil },
	}
	svc := NewCatalogService(repo)

	if err := svc.DeleteService(1); !errors.Is(err, ErrServiceInUse) {
		t.Fatalf("err = %v, want ErrServiceInUse", err)
	}
}
