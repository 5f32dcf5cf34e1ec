package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hms_backend/internal/models"
)

// BookingRepository defines the interface for booking-related database operations.
// Methods taking a SQLExecutor participate in the caller's transaction.
type BookingRepository interface {
	CreateBooking(executor SQLExecutor, booking *models.Booking) (*models.Booking, error)
	GetBookingByID(executor SQLExecutor, id int64) (*models.Booking, error)
	GetBookingByNo(executor SQLExecutor, bookingNo string) (*models.Booking, error)
	GetTodayBookings(page, pageSize int) ([]models.TodayBooking, int, error)
	GetBookingHistories(filters models.BookingFilters) ([]models.BookingHistory, int, error)
	UpdateBooking(executor SQLExecutor, booking *models.Booking) (*models.Booking, error)
	DeleteBooking(executor SQLExecutor, id int64) error

	// IsRoomBooked reports whether an active booking for the room overlaps the
	// half-open interval [checkin, checkout); a nil checkout means open-ended.
	// CheckedOut, Cancelled and NoShow bookings do not occupy the room.
	IsRoomBooked(executor SQLExecutor, roomID int64, checkin time.Time, checkout *time.Time, excludeBookingID *int64) (bool, error)

	// MaxBookingNo returns the greatest booking_no starting with prefix, or nil.
	MaxBookingNo(executor SQLExecutor, prefix string) (*string, error)
}

type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new instance of BookingRepository.
func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

const selectBookingFields = `
	b.id, b.booking_no, b.charge_type, b.checkin, b.checkout,
	b.room_id, b.room_type_id, b.primary_guest_id, b.num_adults, b.num_children,
	b.status, b.payment_status, b.notes,
	COALESCE((SELECT SUM(d.amount) FROM booking_details d WHERE d.booking_id = b.id), 0) AS total_amount,
	COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.booking_id = b.id), 0) AS paid_amount,
	b.created_at, b.created_by, b.updated_at, b.updated_by
`

// scanBooking scans one row produced with selectBookingFields.
func scanBooking(row scanner) (*models.Booking, error) {
	var booking models.Booking
	err := row.Scan(
		&booking.ID, &booking.BookingNo, &booking.ChargeType, &booking.Checkin, &booking.Checkout,
		&booking.RoomID, &booking.RoomTypeID, &booking.PrimaryGuestID, &booking.NumAdults, &booking.NumChildren,
		&booking.Status, &booking.PaymentStatus, &booking.Notes,
		&booking.TotalAmount, &booking.PaidAmount,
		&booking.CreatedAt, &booking.CreatedBy, &booking.UpdatedAt, &booking.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning booking: %v", ErrDatabaseError, err)
	}
	booking.Balance = booking.TotalAmount - booking.PaidAmount
	return &booking, nil
}

func (r *bookingRepository) CreateBooking(executor SQLExecutor, booking *models.Booking) (*models.Booking, error) {
	query := `INSERT INTO bookings
	            (booking_no, charge_type, checkin, checkout, room_id, room_type_id, primary_guest_id,
	             num_adults, num_children, status, payment_status, notes, created_at, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING id, created_at`

	booking.CreatedAt = time.Now()

	err := executor.QueryRow(query,
		booking.BookingNo, booking.ChargeType, booking.Checkin, booking.Checkout,
		booking.RoomID, booking.RoomTypeID, booking.PrimaryGuestID,
		booking.NumAdults, booking.NumChildren, booking.Status, booking.PaymentStatus,
		booking.Notes, booking.CreatedAt, booking.CreatedBy,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		if translated := translatePQError(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: creating booking: %v", ErrDatabaseError, err)
	}
	return booking, nil
}

func (r *bookingRepository) GetBookingByID(executor SQLExecutor, id int64) (*models.Booking, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectBookingFields + " FROM bookings b WHERE b.id = $1"
	return scanBooking(executor.QueryRow(query, id))
}

func (r *bookingRepository) GetBookingByNo(executor SQLExecutor, bookingNo string) (*models.Booking, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectBookingFields + " FROM bookings b WHERE b.booking_no = $1"
	return scanBooking(executor.QueryRow(query, bookingNo))
}

func (r *bookingRepository) GetTodayBookings(page, pageSize int) ([]models.TodayBooking, int, error) {
	query := `SELECT
	            b.id, b.booking_no, b.charge_type, b.checkin, b.checkout,
	            b.room_id, r.name, b.room_type_id, rt.name,
	            b.primary_guest_id, g.name, g.phone,
	            b.num_adults, b.num_children,
	            COALESCE((SELECT SUM(d.amount) FROM booking_details d
	                       WHERE d.booking_id = b.id AND d.type = $1), 0) AS total_room_charges,
	            COALESCE((SELECT SUM(d.amount) FROM booking_details d
	                       WHERE d.booking_id = b.id AND d.type <> $1), 0) AS total_service_charges,
	            b.status, b.payment_status, b.notes,
	            COUNT(*) OVER() AS total_count
	          FROM bookings b
	          JOIN rooms r ON r.id = b.room_id
	          JOIN room_types rt ON rt.id = b.room_type_id
	          LEFT JOIN guests g ON g.id = b.primary_guest_id
	          WHERE b.checkin::date <= CURRENT_DATE
	            AND (b.checkout IS NULL OR b.checkout::date >= CURRENT_DATE)
	            AND b.status <> $2
	          ORDER BY b.checkin ASC
	          LIMIT $3 OFFSET $4`

	offset := (page - 1) * pageSize
	rows, err := r.db.Query(query, models.BookingDetailTypeRoom, models.BookingStatusCheckedOut, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying today bookings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	bookings := []models.TodayBooking{}
	var totalCount int
	for rows.Next() {
		var tb models.TodayBooking
		if err := rows.Scan(
			&tb.ID, &tb.BookingNo, &tb.ChargeType, &tb.Checkin, &tb.Checkout,
			&tb.RoomID, &tb.RoomName, &tb.RoomTypeID, &tb.RoomTypeName,
			&tb.PrimaryGuestID, &tb.PrimaryGuestName, &tb.PrimaryGuestPhone,
			&tb.NumAdults, &tb.NumChildren,
			&tb.TotalRoomCharges, &tb.TotalServiceCharges,
			&tb.Status, &tb.PaymentStatus, &tb.Notes,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning today booking: %v", ErrDatabaseError, err)
		}
		bookings = append(bookings, tb)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating today booking rows: %v", ErrDatabaseError, err)
	}
	return bookings, totalCount, nil
}

func (r *bookingRepository) GetBookingHistories(filters models.BookingFilters) ([]models.BookingHistory, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    b.id, b.booking_no, b.charge_type, b.checkin, b.checkout,
	    b.room_id, r.name, b.room_type_id, rt.name,
	    b.primary_guest_id, g.name, g.phone,
	    b.num_adults, b.num_children, b.status, b.payment_status,
	    COALESCE(bd.total_amount, 0) AS total_amount,
	    COALESCE(pm.paid_amount, 0) AS paid_amount,
	    b.notes,
	    COUNT(*) OVER() AS total_count
	  FROM bookings b
	  JOIN rooms r ON r.id = b.room_id
	  JOIN room_types rt ON rt.id = b.room_type_id
	  LEFT JOIN guests g ON g.id = b.primary_guest_id
	  LEFT JOIN (SELECT booking_id, SUM(amount) AS total_amount FROM booking_details GROUP BY booking_id) bd
	         ON bd.booking_id = b.id
	  LEFT JOIN (SELECT booking_id, SUM(amount) AS paid_amount FROM payments GROUP BY booking_id) pm
	         ON pm.booking_id = b.id`)

	var conditions []string
	var args []interface{}
	argCount := 1

	addCondition := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argCount))
		args = append(args, value)
		argCount++
	}

	if filters.BookingNo != nil && *filters.BookingNo != "" {
		addCondition("b.booking_no ILIKE $%d", "%"+*filters.BookingNo+"%")
	}
	if filters.ChargeType != nil && *filters.ChargeType != "" {
		addCondition("b.charge_type = $%d", *filters.ChargeType)
	}
	if filters.CheckinFrom != nil {
		addCondition("b.checkin >= $%d", *filters.CheckinFrom)
	}
	if filters.CheckinTo != nil {
		addCondition("b.checkin <= $%d", *filters.CheckinTo)
	}
	if filters.CheckoutFrom != nil {
		addCondition("b.checkout >= $%d", *filters.CheckoutFrom)
	}
	if filters.CheckoutTo != nil {
		addCondition("b.checkout <= $%d", *filters.CheckoutTo)
	}
	if filters.RoomID != nil {
		addCondition("b.room_id = $%d", *filters.RoomID)
	}
	if filters.RoomName != nil && *filters.RoomName != "" {
		addCondition("r.name ILIKE $%d", "%"+*filters.RoomName+"%")
	}
	if filters.RoomTypeID != nil {
		addCondition("b.room_type_id = $%d", *filters.RoomTypeID)
	}
	if filters.RoomTypeName != nil && *filters.RoomTypeName != "" {
		addCondition("rt.name ILIKE $%d", "%"+*filters.RoomTypeName+"%")
	}
	if filters.PrimaryGuestID != nil {
		addCondition("b.primary_guest_id = $%d", *filters.PrimaryGuestID)
	}
	if filters.PrimaryGuestName != nil && *filters.PrimaryGuestName != "" {
		addCondition("g.name ILIKE $%d", "%"+*filters.PrimaryGuestName+"%")
	}
	if filters.Status != nil && *filters.Status != "" {
		addCondition("b.status = $%d", *filters.Status)
	}
	if filters.PaymentStatus != nil && *filters.PaymentStatus != "" {
		addCondition("b.payment_status = $%d", *filters.PaymentStatus)
	}
	if filters.Notes != nil && *filters.Notes != "" {
		addCondition("b.notes ILIKE $%d", "%"+*filters.Notes+"%")
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY b.created_at DESC")

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
		return nil, 0, fmt.Errorf("%w: querying booking histories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	histories := []models.BookingHistory{}
	var totalCount int
	for rows.Next() {
		var bh models.BookingHistory
		if err := rows.Scan(
			&bh.ID, &bh.BookingNo, &bh.ChargeType, &bh.Checkin, &bh.Checkout,
			&bh.RoomID, &bh.RoomName, &bh.RoomTypeID, &bh.RoomTypeName,
			&bh.PrimaryGuestID, &bh.PrimaryGuestName, &bh.PrimaryGuestPhone,
			&bh.NumAdults, &bh.NumChildren, &bh.Status, &bh.PaymentStatus,
			&bh.TotalAmount, &bh.PaidAmount, &bh.Notes,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning booking history: %v", ErrDatabaseError, err)
		}
		bh.Balance = bh.TotalAmount - bh.PaidAmount
		histories = append(histories, bh)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating booking history rows: %v", ErrDatabaseError, err)
	}
	return histories, totalCount, nil
}

func (r *bookingRepository) UpdateBooking(executor SQLExecutor, booking *models.Booking) (*models.Booking, error) {
	query := `UPDATE bookings SET
	            charge_type = $1, checkin = $2, checkout = $3, room_id = $4, room_type_id = $5,
	            primary_guest_id = $6, num_adults = $7, num_children = $8, status = $9,
	            payment_status = $10, notes = $11, updated_at = $12, updated_by = $13
	          WHERE id = $14
	          RETURNING updated_at`

	now := time.Now()
	booking.UpdatedAt = &now

	err := executor.QueryRow(query,
		booking.ChargeType, booking.Checkin, booking.Checkout, booking.RoomID, booking.RoomTypeID,
		booking.PrimaryGuestID, booking.NumAdults, booking.NumChildren, booking.Status,
		booking.PaymentStatus, booking.Notes, booking.UpdatedAt, booking.UpdatedBy,
		booking.ID,
	).Scan(&booking.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if translated := translatePQError(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: updating booking ID %d: %v", ErrDatabaseError, booking.ID, err)
	}
	return booking, nil
}

func (r *bookingRepository) DeleteBooking(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting booking ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bookingRepository) IsRoomBooked(executor SQLExecutor, roomID int64, checkin time.Time, checkout *time.Time, excludeBookingID *int64) (bool, error) {
	if executor == nil {
		executor = r.db
	}

	// Half-open interval overlap: existing.checkin < candidate.checkout AND
	// existing.checkout > candidate.checkin, with NULL checkout on either side
	// standing in for +infinity.
	query := `SELECT COUNT(*) FROM bookings
	          WHERE room_id = $1
	            AND status NOT IN ($2, $3, $4)
	            AND ($6::timestamptz IS NULL OR checkin < $6)
	            AND (checkout IS NULL OR checkout > $5)`
	args := []interface{}{
		roomID,
		models.BookingStatusCheckedOut, models.BookingStatusCancelled, models.BookingStatusNoShow,
		checkin, checkout,
	}

	if excludeBookingID != nil {
		query += " AND id <> $7"
		args = append(args, *excludeBookingID)
	}

	var count int
	if err := executor.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: checking room availability: %v", ErrDatabaseError, err)
	}
	return count > 0, nil
}

func (r *bookingRepository) MaxBookingNo(executor SQLExecutor, prefix string) (*string, error) {
	if executor == nil {
		executor = r.db
	}
	var maxNo sql.NullString
	err := executor.QueryRow(
		`SELECT MAX(booking_no) FROM bookings WHERE booking_no LIKE $1`,
		prefix+"%",
	).Scan(&maxNo)
	if err != nil {
		return nil, fmt.Errorf("%w: querying max booking no: %v", ErrDatabaseError, err)
	}
	if !maxNo.Valid {
		return nil, nil
	}
	return &maxNo.String, nil
}
