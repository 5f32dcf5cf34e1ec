package models

import "time"

// UserRole values stored in users.role.
const (
	UserRoleManager      = "Manager"
	UserRoleReceptionist = "Receptionist"
	UserRoleHousekeeping = "Housekeeping"
	UserRoleAccountant   = "Accountant"
)

func IsValidUserRole(role string) bool {
	switch role {
	case UserRoleManager, UserRoleReceptionist, UserRoleHousekeeping, UserRoleAccountant:
		return true
	default:
		return false
	}
}

// UserStatus values stored in users.status.
const (
	UserStatusActive = "Active"
	UserStatusLocked = "Locked"
)

func IsValidUserStatus(status string) bool {
	return status == UserStatusActive || status == UserStatusLocked
}

// User is a staff account.
type User struct {
	ID           int64      `json:"id" db:"id"`
	Username     string     `json:"username" db:"username" binding:"required"`
	Role         string     `json:"role" db:"role"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Status       string     `json:"status" db:"status"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	CreatedBy    *int64     `json:"created_by,omitempty" db:"created_by"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	UpdatedBy    *int64     `json:"updated_by,omitempty" db:"updated_by"`
}

// UserFilters defines the available filters for querying users.
type UserFilters struct {
	Username *string `form:"username"`
	Role     *string `form:"role"`
	Status   *string `form:"status"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}

// Actor is the authenticated identity attributed on audit columns.
// The core only needs the ID and role; token verification happens upstream.
type Actor struct {
	ID       int64
	Username string
	Role     string
}
