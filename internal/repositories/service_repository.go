package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hms_backend/internal/models"
)

// ServiceRepository defines the interface for billable service catalog operations.
type ServiceRepository interface {
	CreateService(service *models.Service) (*models.Service, error)
	GetServiceByID(executor SQLExecutor, id int64) (*models.Service, error)
	GetServices(filters models.ServiceFilters) ([]models.Service, int, error)
	UpdateService(service *models.Service) (*models.Service, error)
	DeleteService(id int64) error
	CountUsagesByService(serviceID int64) (int, error)
}

type serviceRepository struct {
	db *sql.DB
}

// NewServiceRepository creates a new instance of ServiceRepository.
func NewServiceRepository(db *sql.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

const selectServiceFields = `
	id, name, unit, price, description, status,
	created_at, created_by, updated_at, updated_by
`

func scanService(row scanner) (*models.Service, error) {
	var service models.Service
	err := row.Scan(
		&service.ID, &service.Name, &service.Unit, &service.Price, &service.Description, &service.Status,
		&service.CreatedAt, &service.CreatedBy, &service.UpdatedAt, &service.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning service: %v", ErrDatabaseError, err)
	}
	return &service, nil
}

func (r *serviceRepository) CreateService(service *models.Service) (*models.Service, error) {
	query := `INSERT INTO services (name, unit, price, description, status, created_at, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at`

	service.CreatedAt = time.Now()
	if service.Status == "" {
		service.Status = models.ServiceStatusActive
	}

	err := r.db.QueryRow(query,
		service.Name, service.Unit, service.Price, service.Description, service.Status,
		service.CreatedAt, service.CreatedBy,
	).Scan(&service.ID, &service.CreatedAt)

	if err != nil {
		if translated := translatePQError(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: creating service: %v", ErrDatabaseError, err)
	}
	return service, nil
}

func (r *serviceRepository) GetServiceByID(executor SQLExecutor, id int64) (*models.Service, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectServiceFields + " FROM services WHERE id = $1"
	return scanService(executor.QueryRow(query, id))
}

func (r *serviceRepository) GetServices(filters models.ServiceFilters) ([]models.Service, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectServiceFields + ", COUNT(*) OVER() AS total_count FROM services")

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Name != nil && *filters.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argCount))
		args = append(args, "%"+*filters.Name+"%")
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
		return nil, 0, fmt.Errorf("%w: querying services: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	services := []models.Service{}
	var totalCount int
	for rows.Next() {
		var service models.Service
		if err := rows.Scan(
			&service.ID, &service.Name, &service.Unit, &service.Price, &service.Description, &service.Status,
			&service.CreatedAt, &service.CreatedBy, &service.UpdatedAt, &service.UpdatedBy,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning service: %v", ErrDatabaseError, err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating service rows: %v", ErrDatabaseError, err)
	}
	return services, totalCount, nil
}

func (r *serviceRepository) UpdateService(service *models.Service) (*models.Service, error) {
	query := `UPDATE services SET
	            name = $1, unit = $2, price = $3, description = $4, status = $5,
	            updated_at = $6, updated_by = $7
	          WHERE id = $8
	          RETURNING updated_at`

	now := time.Now()
	service.UpdatedAt = &now

	err := r.db.QueryRow(query,
		service.Name, service.Unit, service.Price, service.Description, service.Status,
		service.UpdatedAt, service.UpdatedBy, service.ID,
	).Scan(&service.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if translated := translatePQError(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: updating service ID %d: %v", ErrDatabaseError, service.ID, err)
	}
	return service, nil
}

func (r *serviceRepository) DeleteService(id int64) error {
	result, err := r.db.Exec(`DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		if translated := translatePQError(err); translated != nil {
			return translated
		}
		return fmt.Errorf("%w: deleting service ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *serviceRepository) CountUsagesByService(serviceID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM booking_details WHERE service_id = $1`, serviceID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting usages for service ID %d: %v", ErrDatabaseError, serviceID, err)
	}
	return count, nil
}
