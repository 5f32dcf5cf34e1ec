package services

import (
	"fmt"
	"math"
	"time"

	"hms_backend/internal/models"
	"hms_backend/internal/repositories"
)

// ReportService defines revenue reporting over settled bookings.
type ReportService interface {
	GetSummary(from, to time.Time) (*models.ReportSummary, error)
	GetRoomTypeRevenue(from, to time.Time) ([]models.RoomTypeRevenueItem, error)
	GetServiceRevenue(from, to time.Time) ([]models.ServiceRevenueItem, error)
	GetGuestDistribution(from, to time.Time) (*models.GuestDistribution, error)
}

type reportService struct {
	reportRepo repositories.ReportRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(rr repositories.ReportRepository) ReportService {
	return &reportService{reportRepo: rr}
}

func validateRange(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("%w: report range end before start", ErrValidation)
	}
	return nil
}

func (s *reportService) GetSummary(from, to time.Time) (*models.ReportSummary, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	summary, err := s.reportRepo.GetSummary(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get report summary: %w", err)
	}
	return summary, nil
}

func (s *reportService) GetRoomTypeRevenue(from, to time.Time) ([]models.RoomTypeRevenueItem, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	items, err := s.reportRepo.GetRoomTypeRevenue(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get room type revenue: %w", err)
	}
	return items, nil
}

func (s *reportService) GetServiceRevenue(from, to time.Time) ([]models.ServiceRevenueItem, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	items, err := s.reportRepo.GetServiceRevenue(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get service revenue: %w", err)
	}
	return items, nil
}

func (s *reportService) GetGuestDistribution(from, to time.Time) (*models.GuestDistribution, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	newGuests, returningGuests, err := s.reportRepo.GetGuestDistribution(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get guest distribution: %w", err)
	}

	dist := models.GuestDistribution{
		NewGuests:       newGuests,
		ReturningGuests: returningGuests,
	}
	if total := newGuests + returningGuests; total > 0 {
		dist.PercentNew = roundPercent(float64(newGuests) / float64(total) * 100)
		dist.PercentReturning = roundPercent(float64(returningGuests) / float64(total) * 100)
	}
	return &dist, nil
}

func roundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}
