package models

import "time"

// BookingDetailType values stored in booking_details.type.
const (
	BookingDetailTypeRoom       = "Room"
	BookingDetailTypeService    = "Service"
	BookingDetailTypeFee        = "Fee"
	BookingDetailTypeAdjustment = "Adjustment"
)

func IsValidBookingDetailType(detailType string) bool {
	switch detailType {
	case BookingDetailTypeRoom,
		BookingDetailTypeService,
		BookingDetailTypeFee,
		BookingDetailTypeAdjustment:
		return true
	default:
		return false
	}
}

// BookingDetail is one charge line (room, service, fee or adjustment) on a booking's ledger.
// Amount is the stored line total; it is not recomputed from quantity/unit price at read time.
type BookingDetail struct {
	ID             int64      `json:"id" db:"id"`
	BookingID      int64      `json:"booking_id" db:"booking_id"`
	Type           string     `json:"type" db:"type"`
	ServiceID      *int64     `json:"service_id,omitempty" db:"service_id"`
	IssuedAt       time.Time  `json:"issued_at" db:"issued_at"`
	Description    *string    `json:"description,omitempty" db:"description"`
	Quantity       float64    `json:"quantity" db:"quantity"`
	UnitPrice      float64    `json:"unit_price" db:"unit_price"`
	DiscountAmount float64    `json:"discount_amount" db:"discount_amount"`
	Amount         float64    `json:"amount" db:"amount"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	CreatedBy      *int64     `json:"created_by,omitempty" db:"created_by"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	UpdatedBy      *int64     `json:"updated_by,omitempty" db:"updated_by"`

	Service *Service `json:"service,omitempty"`
}

// BookingDetailFilters defines the available filters for ledger line queries.
type BookingDetailFilters struct {
	BookingID  *int64     `form:"booking_id"`
	Type       *string    `form:"type"`
	ServiceID  *int64     `form:"service_id"`
	MinAmount  *float64   `form:"min_amount"`
	MaxAmount  *float64   `form:"max_amount"`
	IssuedFrom *time.Time `form:"issued_from"`
	IssuedTo   *time.Time `form:"issued_to"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}
