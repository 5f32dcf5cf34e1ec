package models

import "time"

// Gender values stored in guests.gender.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

func IsValidGender(gender string) bool {
	switch gender {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// Guest represents a hotel guest (reference data for bookings).
type Guest struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name" binding:"required"`
	Gender      *string    `json:"gender,omitempty" db:"gender"`
	DateOfBirth *string    `json:"date_of_birth,omitempty" db:"date_of_birth"` // YYYY-MM-DD, parsed when needed
	Nationality *string    `json:"nationality,omitempty" db:"nationality"`
	Phone       *string    `json:"phone,omitempty" db:"phone"`
	Email       *string    `json:"email,omitempty" db:"email"`
	Address     *string    `json:"address,omitempty" db:"address"`
	Description *string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	CreatedBy   *int64     `json:"created_by,omitempty" db:"created_by"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	UpdatedBy   *int64     `json:"updated_by,omitempty" db:"updated_by"`
}

// GuestFilters defines the available filters for querying guests.
type GuestFilters struct {
	Name        *string `form:"name"`
	Phone       *string `form:"phone"`
	Email       *string `form:"email"`
	Nationality *string `form:"nationality"`
	Page        int     `form:"page"`
	PageSize    int     `form:"page_size"`
}
