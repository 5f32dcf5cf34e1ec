package services

import (
	"errors"
	"testing"
	"time"

	"hms_backend/internal/models"
)

type mockReportRepo struct {
	summaryFn      func(from, to time.Time) (*models.ReportSummary, error)
	distributionFn func(from, to time.Time) (int, int, error)
}

func (m *mockReportRepo) GetSummary(from, to time.Time) (*models.ReportSummary, error) {
	if m.summaryFn == nil {
		return &models.ReportSummary{}, nil
	}
	return m.summaryFn(from, to)
}

func (m *mockReportRepo) GetRoomTypeRevenue(_, _ time.Time) ([]models.RoomTypeRevenueItem, error) {
	return nil, nil
}

func (m *mockReportRepo) GetServiceRevenue(_, _ time.Time) ([]models.ServiceRevenueItem, error) {
	return nil, nil
}

func (m *mockReportRepo) GetGuestDistribution(from, to time.Time) (int, int, error) {
	if m.distributionFn == nil {
		return 0, 0, nil
	}
	return m.distributionFn(from, to)
}

func TestReportRangeValidation(t *testing.T) {
	svc := NewReportService(&mockReportRepo{})

	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)

	if _, err := svc.GetSummary(from, to); !errors.Is(err, ErrValidation) {
		t.Fatalf("summary: err = %v, want ErrValidation", err)
	}
	if _, err := svc.GetRoomTypeRevenue(from, to); !errors.Is(err, ErrValidation) {
		t.Fatalf("room type revenue: err = %v, want ErrValidation", err)
	}
	if _, err := svc.GetServiceRevenue(from, to); !errors.Is(err, ErrValidation) {
		t.Fatalf("service revenue: err = %v, want ErrValidation", err)
	}
	if _, err := svc.GetGuestDistribution(from, to); !errors.Is(err, ErrValidation) {
		t.Fatalf("guest distribution: err = %v, want ErrValidation", err)
	}
}

func TestGuestDistributionPercentages(t *testing.T) {
	cases := []struct {
		name          string
		newGuests     int
		returning     int
		wantNew       float64
		wantReturning float64
	}{
		{"30/70 split", 3, 7, 30, 70},
		{"uneven split", 1, 2, 33.33, 66.67},
		{"no guests", 0, 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewReportService(&mockReportRepo{
				distributionFn: func(_, _ time.Time) (int, int, error) {
					return tc.newGuests, tc.returning, nil
				},
			})

			from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
			dist, err := svc.GetGuestDistribution(from, from.AddDate(0, 1, 0))
			if err != nil {
				t.Fatalf("GetGuestDistribution: %v", err)
			}
			if dist.NewGuests != tc.newGuests || dist.ReturningGuests != tc.returning {
				t.Fatalf("counts = %d/%d, want %d/%d", dist.NewGuests, dist.ReturningGuests, tc.newGuests, tc.returning)
			}
			if dist.PercentNew != tc.wantNew || dist.PercentReturning != tc.wantReturning {
				t.Fatalf("percents = %v/%v, want %v/%v", dist.PercentNew, dist.PercentReturning, tc.wantNew, tc.wantReturning)
			}
		})
	}
}

func TestReportSummaryPassesRange(t *testing.T) {
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 31, 23, 59, 59, 0, time.UTC)

	repo := &mockReportRepo{
		summaryFn: func(gotFrom, gotTo time.Time) (*models.ReportSummary, error) {
			if !gotFrom.Equal(from) || !gotTo.Equal(to) {
				t.Fatalf("range = [%v, %v], want [%v, %v]", gotFrom, gotTo, from, to)
			}
			return &models.ReportSummary{RoomAmount: 900000, ServiceAmount: 120000, TotalRevenue: 1020000}, nil
		},
	}
	svc := NewReportService(repo)

	summary, err := svc.GetSummary(from, to)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if summary.TotalRevenue != 1020000 {
		t.Fatalf("total revenue = %v, want 1020000", summary.TotalRevenue)
	}
}
