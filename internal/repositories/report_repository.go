package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"hms_backend/internal/models"
)

// ReportRepository defines the interface for revenue report queries.
// All reports range over checked-out, fully paid bookings whose checkout
// falls inside [from, to].
type ReportRepository interface {
	GetSummary(from, to time.Time) (*models.ReportSummary, error)
	GetRoomTypeRevenue(from, to time.Time) ([]models.RoomTypeRevenueItem, error)
	GetServiceRevenue(from, to time.Time) ([]models.ServiceRevenueItem, error)
	GetGuestDistribution(from, to time.Time) (newGuests, returningGuests int, err error)
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

const settledBookingsFilter = `
	b.status = $1 AND b.payment_status = $2
	AND b.checkout >= $3 AND b.checkout <= $4
`

func (r *reportRepository) GetSummary(from, to time.Time) (*models.ReportSummary, error) {
	query := `SELECT
	            COALESCE(SUM(CASE WHEN d.type = $5 THEN d.amount ELSE 0 END), 0) AS room_amount,
	            COALESCE(SUM(CASE WHEN d.type <> $5 THEN d.amount ELSE 0 END), 0) AS service_amount,
	            COUNT(DISTINCT b.primary_guest_id) FILTER (WHERE b.primary_guest_id IS NOT NULL) AS guest_count
	          FROM bookings b
	          LEFT JOIN booking_details d ON d.booking_id = b.id
	          WHERE ` + settledBookingsFilter

	var summary models.ReportSummary
	err := r.db.QueryRow(query,
		models.BookingStatusCheckedOut, models.PaymentStatusPaid, from, to,
		models.BookingDetailTypeRoom,
	).Scan(&summary.RoomAmount, &summary.ServiceAmount, &summary.GuestCount)
	if err != nil {
		return nil, fmt.Errorf("%w: querying report summary: %v", ErrDatabaseError, err)
	}
	summary.TotalRevenue = summary.RoomAmount + summary.ServiceAmount
	return &summary, nil
}

func (r *reportRepository) GetRoomTypeRevenue(from, to time.Time) ([]models.RoomTypeRevenueItem, error) {
	query := `SELECT rt.name, COALESCE(SUM(d.amount), 0) AS revenue
	          FROM bookings b
	          JOIN room_types rt ON rt.id = b.room_type_id
	          JOIN booking_details d ON d.booking_id = b.id AND d.type = $5
	          WHERE ` + settledBookingsFilter + `
	          GROUP BY rt.name
	          ORDER BY revenue DESC`

	rows, err := r.db.Query(query,
		models.BookingStatusCheckedOut, models.PaymentStatusPaid, from, to,
		models.BookingDetailTypeRoom,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying room type revenue: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.RoomTypeRevenueItem{}
	for rows.Next() {
		var item models.RoomTypeRevenueItem
		if err := rows.Scan(&item.RoomType, &item.Revenue); err != nil {
			return nil, fmt.Errorf("%w: scanning room type revenue: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating room type revenue rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *reportRepository) GetServiceRevenue(from, to time.Time) ([]models.ServiceRevenueItem, error) {
	query := `SELECT COALESCE(s.name, d.type) AS service_name, COALESCE(SUM(d.amount), 0) AS revenue
	          FROM bookings b
	          JOIN booking_details d ON d.booking_id = b.id AND d.type <> $5
	          LEFT JOIN services s ON s.id = d.service_id
	          WHERE ` + settledBookingsFilter + `
	          GROUP BY COALESCE(s.name, d.type)
	          ORDER BY revenue DESC`

	rows, err := r.db.Query(query,
		models.BookingStatusCheckedOut, models.PaymentStatusPaid, from, to,
		models.BookingDetailTypeRoom,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying service revenue: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.ServiceRevenueItem{}
	for rows.Next() {
		var item models.ServiceRevenueItem
		if err := rows.Scan(&item.ServiceName, &item.Revenue); err != nil {
			return nil, fmt.Errorf("%w: scanning service revenue: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating service revenue rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

// GetGuestDistribution counts distinct guests with a settled checkout inside
// [from, to], split by whether their earliest settled checkout ever also
// falls inside the range (new) or precedes it (returning).
func (r *reportRepository) GetGuestDistribution(from, to time.Time) (int, int, error) {
	query := `WITH settled AS (
	            SELECT b.primary_guest_id AS guest_id, b.checkout
	            FROM bookings b
	            WHERE b.status = $1 AND b.payment_status = $2
	              AND b.primary_guest_id IS NOT NULL
	          ),
	          guest_first AS (
	            SELECT guest_id, MIN(checkout) AS first_checkout
	            FROM settled
	            GROUP BY guest_id
	          ),
	          in_range AS (
	            SELECT DISTINCT guest_id
	            FROM settled
	            WHERE checkout >= $3 AND checkout <= $4
	          )
	          SELECT
	            COALESCE(SUM(CASE WHEN gf.first_checkout >= $3 AND gf.first_checkout <= $4 THEN 1 ELSE 0 END), 0) AS new_guests,
	            COALESCE(SUM(CASE WHEN gf.first_checkout < $3 THEN 1 ELSE 0 END), 0) AS returning_guests
	          FROM in_range ir
	          JOIN guest_first gf ON gf.guest_id = ir.guest_id`

	var newGuests, returningGuests int
	err := r.db.QueryRow(query,
		models.BookingStatusCheckedOut, models.PaymentStatusPaid, from, to,
	).Scan(&newGuests, &returningGuests)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: querying guest distribution: %v", ErrDatabaseError, err)
	}
	return newGuests, returningGuests, nil
}
