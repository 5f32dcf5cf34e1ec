package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hms_backend/internal/models"
)

// UserRepository defines the interface for staff account database operations.
type UserRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(executor SQLExecutor, id int64) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUsers(filters models.UserFilters) ([]models.User, int, error)
	UpdateUser(user *models.User) (*models.User, error)
	UpdatePassword(id int64, passwordHash string, updatedBy *int64) error
	UpdateLastLogin(id int64) error
	DeleteUser(id int64) error
	CountUsers() (int, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const selectUserFields = `
	id, username, role, password_hash, status, last_login_at,
	created_at, created_by, updated_at, updated_by
`

func scanUser(row scanner) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Role, &user.PasswordHash, &user.Status, &user.LastLoginAt,
		&user.CreatedAt, &user.CreatedBy, &user.UpdatedAt, &user.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
	}
	return &user, nil
}

func (r *userRepository) CreateUser(user *models.User) (*models.User, error) {
	query := `INSERT INTO users (username, role, password_hash, status, created_at, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`

	user.CreatedAt = time.Now()
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}

	err := r.db.QueryRow(query,
		user.Username, user.Role, user.PasswordHash, user.Status, user.CreatedAt, user.CreatedBy,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if translated := translatePQError(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user, nil
}

func (r *userRepository) GetUserByID(executor SQLExecutor, id int64) (*models.User, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectUserFields + " FROM users WHERE id = $1"
	return scanUser(executor.QueryRow(query, id))
}

func (r *userRepository) GetUserByUsername(username string) (*models.User, error) {
	query := "SELECT " + selectUserFields + " FROM users WHERE username = $1"
	return scanUser(r.db.QueryRow(query, username))
}

func (r *userRepository) GetUsers(filters models.UserFilters) ([]models.User, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectUserFields + ", COUNT(*) OVER() AS total_count FROM users")

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Username != nil && *filters.Username != "" {
		conditions = append(conditions, fmt.Sprintf("username ILIKE $%d", argCount))
		args = append(args, "%"+*filters.Username+"%")
		argCount++
	}
	if filters.Role != nil && *filters.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argCount))
		args = append(args, *filters.Role)
		argCount++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY username ASC")

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
		return nil, 0, fmt.Errorf("%w: querying users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	users := []models.User{}
	var totalCount int
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Role, &user.PasswordHash, &user.Status, &user.LastLoginAt,
			&user.CreatedAt, &user.CreatedBy, &user.UpdatedAt, &user.UpdatedBy,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating user rows: %v", ErrDatabaseError, err)
	}
	return users, totalCount, nil
}

func (r *userRepository) UpdateUser(user *models.User) (*models.User, error) {
	query := `UPDATE users SET
	            username = $1, role = $2, status = $3, updated_at = $4, updated_by = $5
	          WHERE id = $6
	          RETURNING updated_at`

	now := time.Now()
	user.UpdatedAt = &now

	err := r.db.QueryRow(query,
		user.Username, user.Role, user.Status, user.UpdatedAt, user.UpdatedBy, user.ID,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if translated := translatePQError(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: updating user ID %d: %v", ErrDatabaseError, user.ID, err)
	}
	return user, nil
}

func (r *userRepository) UpdatePassword(id int64, passwordHash string, updatedBy *int64) error {
	result, err := r.db.Exec(
		`UPDATE users SET password_hash = $1, updated_at = $2, updated_by = $3 WHERE id = $4`,
		passwordHash, time.Now(), updatedBy, id,
	)
	if err != nil {
		return fmt.Errorf("%w: updating password for user ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(id int64) error {
	_, err := r.db.Exec(`UPDATE users SET last_login_at = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating last login for user ID %d: %v", ErrDatabaseError, id, err)
	}
	return nil
}

func (r *userRepository) DeleteUser(id int64) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if translated := translatePQError(err); translated != nil {
			return translated
		}
		return fmt.Errorf("%w: deleting user ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) CountUsers() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting users: %v", ErrDatabaseError, err)
	}
	return count, nil
}
