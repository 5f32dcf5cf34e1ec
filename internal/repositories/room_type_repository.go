package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hms_backend/internal/models"
)

// RoomTypeRepository defines the interface for room type reference data operations.
type RoomTypeRepository interface {
	CreateRoomType(roomType *models.RoomType) (*models.RoomType, error)
	GetRoomTypeByID(executor SQLExecutor, id int64) (*models.RoomType, error)
	GetRoomTypes(page, pageSize int, name *string) ([]models.RoomType, int, error)
	UpdateRoomType(roomType *models.RoomType) (*models.RoomType, error)
	DeleteRoomType(id int64) error
	CountRoomsByType(roomTypeID int64) (int, error)
}

type roomTypeRepository struct {
	db *sql.DB
}

// NewRoomTypeRepository creates a new instance of RoomTypeRepository.
func NewRoomTypeRepository(db *sql.DB) RoomTypeRepository {
	return &roomTypeRepository{db: db}
}

const selectRoomTypeFields = `
	id, code, name, base_occupancy, max_occupancy,
	base_rate, hour_rate, extra_adult_fee, extra_child_fee, description,
	created_at, created_by, updated_at, updated_by
`

func scanRoomType(row scanner) (*models.RoomType, error) {
	var rt models.RoomType
	err := row.Scan(
		&rt.ID, &rt.Code, &rt.Name, &rt.BaseOccupancy, &rt.MaxOccupancy,
		&rt.BaseRate, &rt.HourRate, &rt.ExtraAdultFee, &rt.ExtraChildFee, &rt.Description,
		&rt.CreatedAt, &rt.CreatedBy, &rt.UpdatedAt, &rt.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning room type: %v", ErrDatabaseError, err)
	}
	return &rt, nil
}

func (r *roomTypeRepository) CreateRoomType(roomType *models.RoomType) (*models.RoomType, error) {
	query := `INSERT INTO room_types
	            (code, name, base_occupancy, max_occupancy, base_rate, hour_rate,
	             extra_adult_fee, extra_child_fee, description, created_at, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id, created_at`

	roomType.CreatedAt = time.Now()

	err := r.db.QueryRow(query,
		roomType.Code, roomType.Name, roomType.BaseOccupancy, roomType.MaxOccupancy,
		roomType.BaseRate, roomType.HourRate, roomType.ExtraAdultFee, roomType.ExtraChildFee,
		roomType.Description, roomType.CreatedAt, roomType.CreatedBy,
	).Scan(&roomType.ID, &roomType.CreatedAt)

	if err != nil {
		if translated := translatePQError(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: creating room type: %v", ErrDatabaseError, err)
	}
	return roomType, nil
}

func (r *roomTypeRepository) GetRoomTypeByID(executor SQLExecutor, id int64) (*models.RoomType, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectRoomTypeFields + " FROM room_types WHERE id = $1"
	return scanRoomType(executor.QueryRow(query, id))
}

func (r *roomTypeRepository) GetRoomTypes(page, pageSize int, name *string) ([]models.RoomType, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectRoomTypeFields + ", COUNT(*) OVER() AS total_count FROM room_types")

	var args []interface{}
	argCount := 1

	if name != nil && *name != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE name ILIKE $%d OR code ILIKE $%d", argCount, argCount))
		args = append(args, "%"+*name+"%")
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY code ASC")

	if pageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, pageSize)
		argCount++
		if page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (page-1)*pageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying room types: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	roomTypes := []models.RoomType{}
	var totalCount int
	for rows.Next() {
		var rt models.RoomType
		if err := rows.Scan(
			&rt.ID, &rt.Code, &rt.Name, &rt.BaseOccupancy, &rt.MaxOccupancy,
			&rt.BaseRate, &rt.HourRate, &rt.ExtraAdultFee, &rt.ExtraChildFee, &rt.Description,
			&rt.CreatedAt, &rt.CreatedBy, &rt.UpdatedAt, &rt.UpdatedBy,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning room type: %v", ErrDatabaseError, err)
		}
		roomTypes = append(roomTypes, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating room type rows: %v", ErrDatabaseError, err)
	}
	return roomTypes, totalCount, nil
}

func (r *roomTypeRepository) UpdateRoomType(roomType *models.RoomType) (*models.RoomType, error) {
	query := `UPDATE room_types SET
	            code = $1, name = $2, base_occupancy = $3, max_occupancy = $4,
	            base_rate = $5, hour_rate = $6, extra_adult_fee = $7, extra_child_fee = $8,
	            description = $9, updated_at = $10, updated_by = $11
	          WHERE id = $12
	          RETURNING updated_at`

	now := time.Now()
	roomType.UpdatedAt = &now

	err := r.db.QueryRow(query,
		roomType.Code, roomType.Name, roomType.BaseOccupancy, roomType.MaxOccupancy,
		roomType.BaseRate, roomType.HourRate, roomType.ExtraAdultFee, roomType.ExtraChildFee,
		roomType.Description, roomType.UpdatedAt, roomType.UpdatedBy, roomType.ID,
	).Scan(&roomType.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if translated := translatePQError(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: updating room type ID %d: %v", ErrDatabaseError, roomType.ID, err)
	}
	return roomType, nil
}

func (r *roomTypeRepository) DeleteRoomType(id int64) error {
	result, err := r.db.Exec(`DELETE FROM room_types WHERE id = $1`, id)
	if err != nil {
		if translated := translatePQError(err); translated != nil {
			return translated
		}
		return fmt.Errorf("%w: deleting room type ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *roomTypeRepository) CountRoomsByType(roomTypeID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM rooms WHERE room_type_id = $1`, roomTypeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting rooms for room type ID %d: %v", ErrDatabaseError, roomTypeID, err)
	}
	return count, nil
}
