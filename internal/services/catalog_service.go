package services

import (
	"errors"
	"fmt"

	"hms_backend/internal/models"
	"hms_backend/internal/repositories"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrServiceInUse    = errors.New("service is referenced by booking charges and cannot be deleted")
)

// CreateServiceRequest is used for adding a billable service to the catalog.
type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Unit        string  `json:"unit" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// UpdateServiceRequest is used for updating a catalog service.
type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Unit        *string  `json:"unit"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
}

// CatalogService defines billable service catalog operations.
type CatalogService interface {
	CreateService(req CreateServiceRequest, actor *models.Actor) (*models.Service, error)
	GetServiceByID(id int64) (*models.Service, error)
	GetServices(filters models.ServiceFilters) ([]models.Service, int, error)
	UpdateService(id int64, req UpdateServiceRequest, actor *models.Actor) (*models.Service, error)
	DeleteService(id int64) error
}

type catalogService struct {
	serviceRepo repositories.ServiceRepository
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(sr repositories.ServiceRepository) CatalogService {
	return &catalogService{serviceRepo: sr}
}

func (s *catalogService) CreateService(req CreateServiceRequest, actor *models.Actor) (*models.Service, error) {
	service := models.Service{
		Name:        req.Name,
		Unit:        req.Unit,
		Price:       req.Price,
		Description: req.Description,
	}
	if req.Status != nil {
		if !models.IsValidServiceStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown service status %q", ErrValidation, *req.Status)
		}
		service.Status = *req.Status
	}
	if actor != nil {
		service.CreatedBy = &actor.ID
	}

	created, err := s.serviceRepo.CreateService(&service)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: service %q", ErrDuplicateName, req.Name)
		}
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return created, nil
}

func (s *catalogService) GetServiceByID(id int64) (*models.Service, error) {
	service, err := s.serviceRepo.GetServiceByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service by ID: %w", err)
	}
	return service, nil
}

func (s *catalogService) GetServices(filters models.ServiceFilters) ([]models.Service, int, error) {
	services, totalCount, err := s.serviceRepo.GetServices(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get services: %w", err)
	}
	return services, totalCount, nil
}

func (s *catalogService) UpdateService(id int64, req UpdateServiceRequest, actor *models.Actor) (*models.Service, error) {
	service, err := s.GetServiceByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Unit != nil {
		service.Unit = *req.Unit
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		service.Price = *req.Price
	}
	if req.Description != nil {
		service.Description = req.Description
	}
	if req.Status != nil {
		if !models.IsValidServiceStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown service status %q", ErrValidation, *req.Status)
		}
		service.Status = *req.Status
	}
	if actor != nil {
		service.UpdatedBy = &actor.ID
	}

	updated, err := s.serviceRepo.UpdateService(service)
	if err != nil {
		return nil, fmt.Errorf("failed to update service %d: %w", id, err)
	}
	return updated, nil
}

func (s *catalogService) DeleteService(id int64) error {
	if _, err := s.GetServiceByID(id); err != nil {
		return err
	}
	count, err := s.serviceRepo.CountUsagesByService(id)
	if err != nil {
		return fmt.Errorf("failed to count usages for service %d: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: service ID %d", ErrServiceInUse, id)
	}
	if err := s.serviceRepo.DeleteService(id); err != nil {
		return fmt.Errorf("failed to delete service %d: %w", id, err)
	}
	return nil
}
