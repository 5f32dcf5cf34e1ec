package models

import "time"

// RoomStatus values stored in rooms.status.
const (
	RoomStatusAvailable    = "Available"
	RoomStatusOccupied     = "Occupied"
	RoomStatusOutOfService = "OutOfService"
)

func IsValidRoomStatus(status string) bool {
	switch status {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusOutOfService:
		return true
	default:
		return false
	}
}

// HousekeepingStatus values stored in rooms.housekeeping_status.
const (
	HousekeepingStatusClean      = "Clean"
	HousekeepingStatusDirty      = "Dirty"
	HousekeepingStatusInspected  = "Inspected"
	HousekeepingStatusOutOfOrder = "OutOfOrder"
)

func IsValidHousekeepingStatus(status string) bool {
	switch status {
	case HousekeepingStatusClean,
		HousekeepingStatusDirty,
		HousekeepingStatusInspected,
		HousekeepingStatusOutOfOrder:
		return true
	default:
		return false
	}
}

// Room represents one physical hotel room.
type Room struct {
	ID                 int64      `json:"id" db:"id"`
	Name               string     `json:"name" db:"name" binding:"required"`
	RoomTypeID         int64      `json:"room_type_id" db:"room_type_id" binding:"required"`
	Description        *string    `json:"description,omitempty" db:"description"`
	Status             string     `json:"status" db:"status"`
	HousekeepingStatus string     `json:"housekeeping_status" db:"housekeeping_status"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	CreatedBy          *int64     `json:"created_by,omitempty" db:"created_by"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	UpdatedBy          *int64     `json:"updated_by,omitempty" db:"updated_by"`

	RoomType *RoomType `json:"room_type,omitempty"`
}

// RoomFilters defines the available filters for querying rooms.
type RoomFilters struct {
	Name               *string `form:"name"`
	RoomTypeID         *int64  `form:"room_type_id"`
	Status             *string `form:"status"`
	HousekeepingStatus *string `form:"housekeeping_status"`
	Page               int     `form:"page"`
	PageSize           int     `form:"page_size"`
}

// RoomType is reference data describing a class of rooms and its rates.
type RoomType struct {
	ID            int64      `json:"id" db:"id"`
	Code          string     `json:"code" db:"code" binding:"required"`
	Name          string     `json:"name" db:"name" binding:"required"`
	BaseOccupancy int        `json:"base_occupancy" db:"base_occupancy"`
	MaxOccupancy  int        `json:"max_occupancy" db:"max_occupancy"`
	BaseRate      float64    `json:"base_rate" db:"base_rate"`
	HourRate      float64    `json:"hour_rate" db:"hour_rate"`
	ExtraAdultFee float64    `json:"extra_adult_fee" db:"extra_adult_fee"`
	ExtraChildFee float64    `json:"extra_child_fee" db:"extra_child_fee"`
	Description   *string    `json:"description,omitempty" db:"description"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	CreatedBy     *int64     `json:"created_by,omitempty" db:"created_by"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	UpdatedBy     *int64     `json:"updated_by,omitempty" db:"updated_by"`
}
