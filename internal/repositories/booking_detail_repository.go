package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hms_backend/internal/models"
)

// BookingDetailRepository defines the interface for booking ledger line operations.
type BookingDetailRepository interface {
	CreateBookingDetail(executor SQLExecutor, detail *models.BookingDetail) (*models.BookingDetail, error)
	GetBookingDetailByID(executor SQLExecutor, id int64) (*models.BookingDetail, error)
	GetBookingDetails(filters models.BookingDetailFilters) ([]models.BookingDetail, int, error)
	DeleteBookingDetail(executor SQLExecutor, id int64) error
	SumAmountByBooking(executor SQLExecutor, bookingID int64) (float64, error)
}

type bookingDetailRepository struct {
	db *sql.DB
}

// NewBookingDetailRepository creates a new instance of BookingDetailRepository.
func NewBookingDetailRepository(db *sql.DB) BookingDetailRepository {
	return &bookingDetailRepository{db: db}
}

func scanBookingDetail(row scanner) (*models.BookingDetail, error) {
	var detail models.BookingDetail
	err := row.Scan(
		&detail.ID, &detail.BookingID, &detail.Type, &detail.ServiceID, &detail.IssuedAt,
		&detail.Description, &detail.Quantity, &detail.UnitPrice, &detail.DiscountAmount, &detail.Amount,
		&detail.CreatedAt, &detail.CreatedBy, &detail.UpdatedAt, &detail.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning booking detail: %v", ErrDatabaseError, err)
	}
	return &detail, nil
}

func (r *bookingDetailRepository) CreateBookingDetail(executor SQLExecutor, detail *models.BookingDetail) (*models.BookingDetail, error) {
	query := `INSERT INTO booking_details
	            (booking_id, type, service_id, issued_at, description,
	             quantity, unit_price, discount_amount, amount, created_at, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id, created_at`

	detail.CreatedAt = time.Now()
	if detail.IssuedAt.IsZero() {
		detail.IssuedAt = detail.CreatedAt
	}

	err := executor.QueryRow(query,
		detail.BookingID, detail.Type, detail.ServiceID, detail.IssuedAt, detail.Description,
		detail.Quantity, detail.UnitPrice, detail.DiscountAmount, detail.Amount,
		detail.CreatedAt, detail.CreatedBy,
	).Scan(&detail.ID, &detail.CreatedAt)

	if err != nil {
		if translated := translatePQError(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: creating booking detail: %v", ErrDatabaseError, err)
	}
	return detail, nil
}

func (r *bookingDetailRepository) GetBookingDetailByID(executor SQLExecutor, id int64) (*models.BookingDetail, error) {
	if executor == nil {
		executor = r.db
	}
	query := `SELECT id, booking_id, type, service_id, issued_at, description,
	                 quantity, unit_price, discount_amount, amount,
	                 created_at, created_by, updated_at, updated_by
	          FROM booking_details WHERE id = $1`
	return scanBookingDetail(executor.QueryRow(query, id))
}

func (r *bookingDetailRepository) GetBookingDetails(filters models.BookingDetailFilters) ([]models.BookingDetail, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    bd.id, bd.booking_id, bd.type, bd.service_id, bd.issued_at, bd.description,
	    bd.quantity, bd.unit_price, bd.discount_amount, bd.amount,
	    bd.created_at, bd.created_by, bd.updated_at, bd.updated_by,
	    s.id, s.name, s.unit, s.price,
	    COUNT(*) OVER() AS total_count
	  FROM booking_details bd
	  LEFT JOIN services s ON s.id = bd.service_id`)

	var conditions []string
	var args []interface{}
	argCount := 1

	addCondition := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argCount))
		args = append(args, value)
		argCount++
	}

	if filters.BookingID != nil {
		addCondition("bd.booking_id = $%d", *filters.BookingID)
	}
	if filters.Type != nil && *filters.Type != "" {
		addCondition("bd.type = $%d", *filters.Type)
	}
	if filters.ServiceID != nil {
		addCondition("bd.service_id = $%d", *filters.ServiceID)
	}
	if filters.MinAmount != nil {
		addCondition("bd.amount >= $%d", *filters.MinAmount)
	}
	if filters.MaxAmount != nil {
		addCondition("bd.amount <= $%d", *filters.MaxAmount)
	}
	if filters.IssuedFrom != nil {
		addCondition("bd.issued_at >= $%d", *filters.IssuedFrom)
	}
	if filters.IssuedTo != nil {
		addCondition("bd.issued_at <= $%d", *filters.IssuedTo)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY bd.issued_at ASC, bd.id ASC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying booking details: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	details := []models.BookingDetail{}
	var totalCount int
	for rows.Next() {
		var detail models.BookingDetail
		var svcID sql.NullInt64
		var svcName, svcUnit sql.NullString
		var svcPrice sql.NullFloat64
		if err := rows.Scan(
			&detail.ID, &detail.BookingID, &detail.Type, &detail.ServiceID, &detail.IssuedAt, &detail.Description,
			&detail.Quantity, &detail.UnitPrice, &detail.DiscountAmount, &detail.Amount,
			&detail.CreatedAt, &detail.CreatedBy, &detail.UpdatedAt, &detail.UpdatedBy,
			&svcID, &svcName, &svcUnit, &svcPrice,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning booking detail: %v", ErrDatabaseError, err)
		}
		if svcID.Valid {
			detail.Service = &models.Service{
				ID:    svcID.Int64,
				Name:  svcName.String,
				Unit:  svcUnit.String,
				Price: svcPrice.Float64,
			}
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating booking detail rows: %v", ErrDatabaseError, err)
	}
	return details, totalCount, nil
}

func (r *bookingDetailRepository) DeleteBookingDetail(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM booking_details WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting booking detail ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bookingDetailRepository) SumAmountByBooking(executor SQLExecutor, bookingID int64) (float64, error) {
	if executor == nil {
		executor = r.db
	}
	var total float64
	err := executor.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM booking_details WHERE booking_id = $1`,
		bookingID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%w: summing booking details for booking ID %d: %v", ErrDatabaseError, bookingID, err)
	}
	return total, nil
}
