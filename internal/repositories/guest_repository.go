package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hms_backend/internal/models"
)

// GuestRepository defines the interface for guest-related database operations.
type GuestRepository interface {
	CreateGuest(guest *models.Guest) (*models.Guest, error)
	GetGuestByID(executor SQLExecutor, id int64) (*models.Guest, error)
	GetGuests(filters models.GuestFilters) ([]models.Guest, int, error)
	UpdateGuest(guest *models.Guest) (*models.Guest, error)
	DeleteGuest(id int64) error
	CountBookingsByGuest(guestID int64) (int, error)
}

type guestRepository struct {
	db *sql.DB
}

// NewGuestRepository creates a new instance of GuestRepository.
func NewGuestRepository(db *sql.DB) GuestRepository {
	return &guestRepository{db: db}
}

const selectGuestFields = `
	id, name, gender, date_of_birth, nationality, phone, email, address, description,
	created_at, created_by, updated_at, updated_by
`

func scanGuest(row scanner) (*models.Guest, error) {
	var guest models.Guest
	err := row.Scan(
		&guest.ID, &guest.Name, &guest.Gender, &guest.DateOfBirth, &guest.Nationality,
		&guest.Phone, &guest.Email, &guest.Address, &guest.Description,
		&guest.CreatedAt, &guest.CreatedBy, &guest.UpdatedAt, &guest.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning guest: %v", ErrDatabaseError, err)
	}
	return &guest, nil
}

func (r *guestRepository) CreateGuest(guest *models.Guest) (*models.Guest, error) {
	query := `INSERT INTO guests
	            (name, gender, date_of_birth, nationality, phone, email, address, description, created_at, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id, created_at`

	guest.CreatedAt = time.Now()

	err := r.db.QueryRow(query,
		guest.Name, guest.Gender, guest.DateOfBirth, guest.Nationality,
		guest.Phone, guest.Email, guest.Address, guest.Description,
		guest.CreatedAt, guest.CreatedBy,
	).Scan(&guest.ID, &guest.CreatedAt)

	if err != nil {
		if translated := translatePQError(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: creating guest: %v", ErrDatabaseError, err)
	}
	return guest, nil
}

func (r *guestRepository) GetGuestByID(executor SQLExecutor, id int64) (*models.Guest, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectGuestFields + " FROM guests WHERE id = $1"
	return scanGuest(executor.QueryRow(query, id))
}

func (r *guestRepository) GetGuests(filters models.GuestFilters) ([]models.Guest, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectGuestFields + ", COUNT(*) OVER() AS total_count FROM guests")

	var conditions []string
	var args []interface{}
	argCount := 1

	addCondition := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argCount))
		args = append(args, value)
		argCount++
	}

	if filters.Name != nil && *filters.Name != "" {
		addCondition("name ILIKE $%d", "%"+*filters.Name+"%")
	}
	if filters.Phone != nil && *filters.Phone != "" {
		addCondition("phone ILIKE $%d", "%"+*filters.Phone+"%")
	}
	if filters.Email != nil && *filters.Email != "" {
		addCondition("email ILIKE $%d", "%"+*filters.Email+"%")
	}
	if filters.Nationality != nil && *filters.Nationality != "" {
		addCondition("nationality ILIKE $%d", "%"+*filters.Nationality+"%")
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY name ASC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying guests: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	guests := []models.Guest{}
	var totalCount int
	for rows.Next() {
		var guest models.Guest
		if err := rows.Scan(
			&guest.ID, &guest.Name, &guest.Gender, &guest.DateOfBirth, &guest.Nationality,
			&guest.Phone, &guest.Email, &guest.Address, &guest.Description,
			&guest.CreatedAt, &guest.CreatedBy, &guest.UpdatedAt, &guest.UpdatedBy,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning guest: %v", ErrDatabaseError, err)
		}
		guests = append(guests, guest)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating guest rows: %v", ErrDatabaseError, err)
	}
	return guests, totalCount, nil
}

func (r *guestRepository) UpdateGuest(guest *models.Guest) (*models.Guest, error) {
	query := `UPDATE guests SET
	            name = $1, gender = $2, date_of_birth = $3, nationality = $4, phone = $5,
	            email = $6, address = $7, description = $8, updated_at = $9, updated_by = $10
	          WHERE id = $11
	          RETURNING updated_at`

	now := time.Now()
	guest.UpdatedAt = &now

	err := r.db.QueryRow(query,
		guest.Name, guest.Gender, guest.DateOfBirth, guest.Nationality, guest.Phone,
		guest.Email, guest.Address, guest.Description, guest.UpdatedAt, guest.UpdatedBy,
		guest.ID,
	).Scan(&guest.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating guest ID %d: %v", ErrDatabaseError, guest.ID, err)
	}
	return guest, nil
}

func (r *guestRepository) DeleteGuest(id int64) error {
	result, err := r.db.Exec(`DELETE FROM guests WHERE id = $1`, id)
	if err != nil {
		if translated := translatePQError(err); translated != nil {
			return translated
		}
		return fmt.Errorf("%w: deleting guest ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *guestRepository) CountBookingsByGuest(guestID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM bookings WHERE primary_guest_id = $1`, guestID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting bookings for guest ID %d: %v", ErrDatabaseError, guestID, err)
	}
	return count, nil
}
