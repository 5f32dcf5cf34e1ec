package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hms_backend/internal/models"
)

// PaymentRepository defines the interface for payment ledger operations.
type PaymentRepository interface {
	CreatePayment(executor SQLExecutor, payment *models.Payment) (*models.Payment, error)
	GetPaymentByID(executor SQLExecutor, id int64) (*models.Payment, error)
	GetPayments(filters models.PaymentFilters) ([]models.Payment, int, error)
	DeletePayment(executor SQLExecutor, id int64) error
	SumAmountByBooking(executor SQLExecutor, bookingID int64) (float64, error)
	CountByBooking(executor SQLExecutor, bookingID int64) (int, error)
}

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func scanPayment(row scanner) (*models.Payment, error) {
	var payment models.Payment
	err := row.Scan(
		&payment.ID, &payment.BookingID, &payment.PaidAt, &payment.PaymentMethod,
		&payment.ReferenceNo, &payment.Amount, &payment.PayerName, &payment.Notes,
		&payment.CreatedAt, &payment.CreatedBy, &payment.UpdatedAt, &payment.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning payment: %v", ErrDatabaseError, err)
	}
	return &payment, nil
}

func (r *paymentRepository) CreatePayment(executor SQLExecutor, payment *models.Payment) (*models.Payment, error) {
	query := `INSERT INTO payments
	            (booking_id, paid_at, payment_method, reference_no, amount, payer_name, notes, created_at, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_at`

	payment.CreatedAt = time.Now()
	if payment.PaidAt.IsZero() {
		payment.PaidAt = payment.CreatedAt
	}

	err := executor.QueryRow(query,
		payment.BookingID, payment.PaidAt, payment.PaymentMethod, payment.ReferenceNo,
		payment.Amount, payment.PayerName, payment.Notes, payment.CreatedAt, payment.CreatedBy,
	).Scan(&payment.ID, &payment.CreatedAt)

	if err != nil {
		if translated := translatePQError(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: creating payment: %v", ErrDatabaseError, err)
	}
	return payment, nil
}

func (r *paymentRepository) GetPaymentByID(executor SQLExecutor, id int64) (*models.Payment, error) {
	if executor == nil {
		executor = r.db
	}
	query := `SELECT id, booking_id, paid_at, payment_method, reference_no, amount, payer_name, notes,
	                 created_at, created_by, updated_at, updated_by
	          FROM payments WHERE id = $1`
	return scanPayment(executor.QueryRow(query, id))
}

func (r *paymentRepository) GetPayments(filters models.PaymentFilters) ([]models.Payment, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    id, booking_id, paid_at, payment_method, reference_no, amount, payer_name, notes,
	    created_at, created_by, updated_at, updated_by,
	    COUNT(*) OVER() AS total_count
	  FROM payments`)

	var conditions []string
	var args []interface{}
	argCount := 1

	addCondition := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argCount))
		args = append(args, value)
		argCount++
	}

	if filters.BookingID != nil {
		addCondition("booking_id = $%d", *filters.BookingID)
	}
	if filters.PaymentMethod != nil && *filters.PaymentMethod != "" {
		addCondition("payment_method = $%d", *filters.PaymentMethod)
	}
	if filters.ReferenceNo != nil && *filters.ReferenceNo != "" {
		addCondition("reference_no ILIKE $%d", "%"+*filters.ReferenceNo+"%")
	}
	if filters.PayerName != nil && *filters.PayerName != "" {
		addCondition("payer_name ILIKE $%d", "%"+*filters.PayerName+"%")
	}
	if filters.MinAmount != nil {
		addCondition("amount >= $%d", *filters.MinAmount)
	}
	if filters.MaxAmount != nil {
		addCondition("amount <= $%d", *filters.MaxAmount)
	}
	if filters.PaidFrom != nil {
		addCondition("paid_at >= $%d", *filters.PaidFrom)
	}
	if filters.PaidTo != nil {
		addCondition("paid_at <= $%d", *filters.PaidTo)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY paid_at ASC, id ASC")

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
		return nil, 0, fmt.Errorf("%w: querying payments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	var totalCount int
	for rows.Next() {
		var payment models.Payment
		if err := rows.Scan(
			&payment.ID, &payment.BookingID, &payment.PaidAt, &payment.PaymentMethod,
			&payment.ReferenceNo, &payment.Amount, &payment.PayerName, &payment.Notes,
			&payment.CreatedAt, &payment.CreatedBy, &payment.UpdatedAt, &payment.UpdatedBy,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning payment: %v", ErrDatabaseError, err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating payment rows: %v", ErrDatabaseError, err)
	}
	return payments, totalCount, nil
}

func (r *paymentRepository) DeletePayment(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting payment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *paymentRepository) SumAmountByBooking(executor SQLExecutor, bookingID int64) (float64, error) {
	if executor == nil {
		executor = r.db
	}
	var total float64
	err := executor.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE booking_id = $1`,
		bookingID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%w: summing payments for booking ID %d: %v", ErrDatabaseError, bookingID, err)
	}
	return total, nil
}

func (r *paymentRepository) CountByBooking(executor SQLExecutor, bookingID int64) (int, error) {
	if executor == nil {
		executor = r.db
	}
	var count int
	err := executor.QueryRow(
		`SELECT COUNT(*) FROM payments WHERE booking_id = $1`,
		bookingID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting payments for booking ID %d: %v", ErrDatabaseError, bookingID, err)
	}
	return count, nil
}
