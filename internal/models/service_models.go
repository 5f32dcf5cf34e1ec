package models

import "time"

// ServiceStatus values stored in services.status.
const (
	ServiceStatusActive   = "Active"
	ServiceStatusInactive = "Inactive"
)

func IsValidServiceStatus(status string) bool {
	return status == ServiceStatusActive || status == ServiceStatusInactive
}

// Service is a billable hotel service (laundry, minibar, ...) referenced by ledger lines.
type Service struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name" binding:"required"`
	Unit        string     `json:"unit" db:"unit" binding:"required"`
	Price       float64    `json:"price" db:"price"`
	Description *string    `json:"description,omitempty" db:"description"`
	Status      string     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	CreatedBy   *int64     `json:"created_by,omitempty" db:"created_by"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	UpdatedBy   *int64     `json:"updated_by,omitempty" db:"updated_by"`
}

// ServiceFilters defines the available filters for querying services.
type ServiceFilters struct {
	Name     *string `form:"name"`
	Status   *string `form:"status"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}
