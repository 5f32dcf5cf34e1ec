package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hms_backend/internal/models"
)

// RoomRepository defines the interface for room-related database operations.
type RoomRepository interface {
	CreateRoom(room *models.Room) (*models.Room, error)
	GetRoomByID(executor SQLExecutor, id int64) (*models.Room, error)
	GetRooms(filters models.RoomFilters) ([]models.Room, int, error)
	UpdateRoom(room *models.Room) (*models.Room, error)
	DeleteRoom(id int64) error

	// GetRoomForUpdate locks the room row inside the caller's transaction so
	// concurrent bookings for the same room serialize on it.
	GetRoomForUpdate(executor SQLExecutor, id int64) (*models.Room, error)
	UpdateRoomState(executor SQLExecutor, id int64, status, housekeepingStatus string, updatedBy *int64) error
	CountBookingsByRoom(roomID int64) (int, error)
	GetAvailableRooms(checkin time.Time, checkout *time.Time, roomTypeID *int64) ([]models.Room, error)
}

type roomRepository struct {
	db *sql.DB
}

// NewRoomRepository creates a new instance of RoomRepository.
func NewRoomRepository(db *sql.DB) RoomRepository {
	return &roomRepository{db: db}
}

const selectRoomFields = `
	r.id, r.name, r.room_type_id, r.description, r.status, r.housekeeping_status,
	r.created_at, r.created_by, r.updated_at, r.updated_by,
	rt.id, rt.code, rt.name, rt.base_occupancy, rt.max_occupancy,
	rt.base_rate, rt.hour_rate, rt.extra_adult_fee, rt.extra_child_fee
`

func scanRoom(row scanner) (*models.Room, error) {
	var room models.Room
	var roomType models.RoomType
	err := row.Scan(
		&room.ID, &room.Name, &room.RoomTypeID, &room.Description, &room.Status, &room.HousekeepingStatus,
		&room.CreatedAt, &room.CreatedBy, &room.UpdatedAt, &room.UpdatedBy,
		&roomType.ID, &roomType.Code, &roomType.Name, &roomType.BaseOccupancy, &roomType.MaxOccupancy,
		&roomType.BaseRate, &roomType.HourRate, &roomType.ExtraAdultFee, &roomType.ExtraChildFee,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning room: %v", ErrDatabaseError, err)
	}
	room.RoomType = &roomType
	return &room, nil
}

func (r *roomRepository) CreateRoom(room *models.Room) (*models.Room, error) {
	query := `INSERT INTO rooms (name, room_type_id, description, status, housekeeping_status, created_at, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at`

	room.CreatedAt = time.Now()
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}
	if room.HousekeepingStatus == "" {
		room.HousekeepingStatus = models.HousekeepingStatusClean
	}

	err := r.db.QueryRow(query,
		room.Name, room.RoomTypeID, room.Description, room.Status, room.HousekeepingStatus,
		room.CreatedAt, room.CreatedBy,
	).Scan(&room.ID, &room.CreatedAt)

	if err != nil {
		if translated := translatePQError(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: creating room: %v", ErrDatabaseError, err)
	}
	return room, nil
}

func (r *roomRepository) GetRoomByID(executor SQLExecutor, id int64) (*models.Room, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectRoomFields + ` FROM rooms r
	          JOIN room_types rt ON rt.id = r.room_type_id
	          WHERE r.id = $1`
	return scanRoom(executor.QueryRow(query, id))
}

func (r *roomRepository) GetRoomForUpdate(executor SQLExecutor, id int64) (*models.Room, error) {
	query := `SELECT id, name, room_type_id, description, status, housekeeping_status,
	                 created_at, created_by, updated_at, updated_by
	          FROM rooms WHERE id = $1 FOR UPDATE`

	var room models.Room
	err := executor.QueryRow(query, id).Scan(
		&room.ID, &room.Name, &room.RoomTypeID, &room.Description, &room.Status, &room.HousekeepingStatus,
		&room.CreatedAt, &room.CreatedBy, &room.UpdatedAt, &room.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: locking room ID %d: %v", ErrDatabaseError, id, err)
	}
	return &room, nil
}

func (r *roomRepository) GetRooms(filters models.RoomFilters) ([]models.Room, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectRoomFields + `, COUNT(*) OVER() AS total_count
	  FROM rooms r
	  JOIN room_types rt ON rt.id = r.room_type_id`)

	var conditions []string
	var args []interface{}
	argCount := 1

	addCondition := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argCount))
		args = append(args, value)
		argCount++
	}

	if filters.Name != nil && *filters.Name != "" {
		addCondition("r.name ILIKE $%d", "%"+*filters.Name+"%")
	}
	if filters.RoomTypeID != nil {
		addCondition("r.room_type_id = $%d", *filters.RoomTypeID)
	}
	if filters.Status != nil && *filters.Status != "" {
		addCondition("r.status = $%d", *filters.Status)
	}
	if filters.HousekeepingStatus != nil && *filters.HousekeepingStatus != "" {
		addCondition("r.housekeeping_status = $%d", *filters.HousekeepingStatus)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY r.name ASC")

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
		return nil, 0, fmt.Errorf("%w: querying rooms: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	var totalCount int
	for rows.Next() {
		var room models.Room
		var roomType models.RoomType
		if err := rows.Scan(
			&room.ID, &room.Name, &room.RoomTypeID, &room.Description, &room.Status, &room.HousekeepingStatus,
			&room.CreatedAt, &room.CreatedBy, &room.UpdatedAt, &room.UpdatedBy,
			&roomType.ID, &roomType.Code, &roomType.Name, &roomType.BaseOccupancy, &roomType.MaxOccupancy,
			&roomType.BaseRate, &roomType.HourRate, &roomType.ExtraAdultFee, &roomType.ExtraChildFee,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning room: %v", ErrDatabaseError, err)
		}
		room.RoomType = &roomType
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating room rows: %v", ErrDatabaseError, err)
	}
	return rooms, totalCount, nil
}

func (r *roomRepository) UpdateRoom(room *models.Room) (*models.Room, error) {
	query := `UPDATE rooms SET
	            name = $1, room_type_id = $2, description = $3, status = $4, housekeeping_status = $5,
	            updated_at = $6, updated_by = $7
	          WHERE id = $8
	          RETURNING updated_at`

	now := time.Now()
	room.UpdatedAt = &now

	err := r.db.QueryRow(query,
		room.Name, room.RoomTypeID, room.Description, room.Status, room.HousekeepingStatus,
		room.UpdatedAt, room.UpdatedBy, room.ID,
	).Scan(&room.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if translated := translatePQError(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: updating room ID %d: %v", ErrDatabaseError, room.ID, err)
	}
	return room, nil
}

func (r *roomRepository) UpdateRoomState(executor SQLExecutor, id int64, status, housekeepingStatus string, updatedBy *int64) error {
	result, err := executor.Exec(
		`UPDATE rooms SET status = $1, housekeeping_status = $2, updated_at = $3, updated_by = $4 WHERE id = $5`,
		status, housekeepingStatus, time.Now(), updatedBy, id,
	)
	if err != nil {
		return fmt.Errorf("%w: updating room state for room ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *roomRepository) DeleteRoom(id int64) error {
	result, err := r.db.Exec(`DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		if translated := translatePQError(err); translated != nil {
			return translated
		}
		return fmt.Errorf("%w: deleting room ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *roomRepository) CountBookingsByRoom(roomID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM bookings WHERE room_id = $1`, roomID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting bookings for room ID %d: %v", ErrDatabaseError, roomID, err)
	}
	return count, nil
}

func (r *roomRepository) GetAvailableRooms(checkin time.Time, checkout *time.Time, roomTypeID *int64) ([]models.Room, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectRoomFields + ` FROM rooms r
	  JOIN room_types rt ON rt.id = r.room_type_id
	  WHERE r.status <> $1
	    AND NOT EXISTS (
	      SELECT 1 FROM bookings b
	      WHERE b.room_id = r.id
	        AND b.status NOT IN ($2, $3, $4)
	        AND ($6::timestamptz IS NULL OR b.checkin < $6)
	        AND (b.checkout IS NULL OR b.checkout > $5)
	    )`)
	args := []interface{}{
		models.RoomStatusOutOfService,
		models.BookingStatusCheckedOut, models.BookingStatusCancelled, models.BookingStatusNoShow,
		checkin, checkout,
	}

	if roomTypeID != nil {
		queryBuilder.WriteString(" AND r.room_type_id = $7")
		args = append(args, *roomTypeID)
	}
	queryBuilder.WriteString(" ORDER BY r.name ASC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying available rooms: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		var room models.Room
		var roomType models.RoomType
		if err := rows.Scan(
			&room.ID, &room.Name, &room.RoomTypeID, &room.Description, &room.Status, &room.HousekeepingStatus,
			&room.CreatedAt, &room.CreatedBy, &room.UpdatedAt, &room.UpdatedBy,
			&roomType.ID, &roomType.Code, &roomType.Name, &roomType.BaseOccupancy, &roomType.MaxOccupancy,
			&roomType.BaseRate, &roomType.HourRate, &roomType.ExtraAdultFee, &roomType.ExtraChildFee,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning available room: %v", ErrDatabaseError, err)
		}
		room.RoomType = &roomType
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating available room rows: %v", ErrDatabaseError, err)
	}
	return rooms, nil
}
