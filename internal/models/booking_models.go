package models

import "time"

// BookingStatus values stored in bookings.status.
const (
	BookingStatusReserved   = "Reserved"
	BookingStatusCheckedIn  = "CheckedIn"
	BookingStatusCheckedOut = "CheckedOut"
	BookingStatusCancelled  = "Cancelled"
	BookingStatusNoShow     = "NoShow"
)

// IsValidBookingStatus checks if the provided status string is a known booking status.
func IsValidBookingStatus(status string) bool {
	switch status {
	case BookingStatusReserved,
		BookingStatusCheckedIn,
		BookingStatusCheckedOut,
		BookingStatusCancelled,
		BookingStatusNoShow:
		return true
	default:
		return false
	}
}

// IsTerminalBookingStatus reports whether the status admits no further transitions.
func IsTerminalBookingStatus(status string) bool {
	switch status {
	case BookingStatusCheckedOut, BookingStatusCancelled, BookingStatusNoShow:
		return true
	default:
		return false
	}
}

// ChargeType values stored in bookings.charge_type.
const (
	ChargeTypeHour  = "Hour"
	ChargeTypeNight = "Night"
)

func IsValidChargeType(chargeType string) bool {
	return chargeType == ChargeTypeHour || chargeType == ChargeTypeNight
}

// PaymentStatus values stored in bookings.payment_status.
// Derived from the ledgers, not independently authoritative.
const (
	PaymentStatusUnpaid  = "Unpaid"
	PaymentStatusPartial = "Partial"
	PaymentStatusPaid    = "Paid"
)

func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	default:
		return false
	}
}

// Booking represents one room reserved for one guest over a time interval.
type Booking struct {
	ID             int64      `json:"id" db:"id"`
	BookingNo      string     `json:"booking_no" db:"booking_no"`
	ChargeType     string     `json:"charge_type" db:"charge_type"`
	Checkin        time.Time  `json:"checkin" db:"checkin"`
	Checkout       *time.Time `json:"checkout,omitempty" db:"checkout"`
	RoomID         int64      `json:"room_id" db:"room_id"`
	RoomTypeID     int64      `json:"room_type_id" db:"room_type_id"`
	PrimaryGuestID *int64     `json:"primary_guest_id,omitempty" db:"primary_guest_id"`
	NumAdults      int        `json:"num_adults" db:"num_adults"`
	NumChildren    int        `json:"num_children" db:"num_children"`
	Status         string     `json:"status" db:"status"`
	PaymentStatus  string     `json:"payment_status" db:"payment_status"`
	Notes          *string    `json:"notes,omitempty" db:"notes"`

	// Ledger rollups, populated on single-booking reads.
	TotalAmount float64 `json:"total_amount"`
	PaidAmount  float64 `json:"paid_amount"`
	Balance     float64 `json:"balance"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	CreatedBy *int64     `json:"created_by,omitempty" db:"created_by"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	UpdatedBy *int64     `json:"updated_by,omitempty" db:"updated_by"`
}

// BookingFilters defines the available filters for querying booking histories.
type BookingFilters struct {
	BookingNo        *string    `form:"booking_no"`
	ChargeType       *string    `form:"charge_type"`
	CheckinFrom      *time.Time `form:"checkin_from"`
	CheckinTo        *time.Time `form:"checkin_to"`
	CheckoutFrom     *time.Time `form:"checkout_from"`
	CheckoutTo       *time.Time `form:"checkout_to"`
	RoomID           *int64     `form:"room_id"`
	RoomName         *string    `form:"room_name"`
	RoomTypeID       *int64     `form:"room_type_id"`
	RoomTypeName     *string    `form:"room_type_name"`
	PrimaryGuestID   *int64     `form:"primary_guest_id"`
	PrimaryGuestName *string    `form:"primary_guest_name"`
	Status           *string    `form:"status"`
	PaymentStatus    *string    `form:"payment_status"`
	Notes            *string    `form:"notes"`
	Page             int        `form:"page"`
	PageSize         int        `form:"page_size"`
}

// TodayBooking is the front-desk board row: bookings whose interval covers today.
type TodayBooking struct {
	ID                  int64      `json:"id"`
	BookingNo           string     `json:"booking_no"`
	ChargeType          string     `json:"charge_type"`
	Checkin             time.Time  `json:"checkin"`
	Checkout            *time.Time `json:"checkout,omitempty"`
	RoomID              int64      `json:"room_id"`
	RoomName            string     `json:"room_name"`
	RoomTypeID          int64      `json:"room_type_id"`
	RoomTypeName        string     `json:"room_type_name"`
	PrimaryGuestID      *int64     `json:"primary_guest_id,omitempty"`
	PrimaryGuestName    *string    `json:"primary_guest_name,omitempty"`
	PrimaryGuestPhone   *string    `json:"primary_guest_phone,omitempty"`
	NumAdults           int        `json:"num_adults"`
	NumChildren         int        `json:"num_children"`
	TotalRoomCharges    float64    `json:"total_room_charges"`
	TotalServiceCharges float64    `json:"total_service_charges"`
	Status              string     `json:"status"`
	PaymentStatus       string     `json:"payment_status"`
	Notes               *string    `json:"notes,omitempty"`
}

// BookingHistory is the archive row with ledger rollups, used by the histories listing.
type BookingHistory struct {
	ID                int64      `json:"id"`
	BookingNo         string     `json:"booking_no"`
	ChargeType        string     `json:"charge_type"`
	Checkin           time.Time  `json:"checkin"`
	Checkout          *time.Time `json:"checkout,omitempty"`
	RoomID            int64      `json:"room_id"`
	RoomName          string     `json:"room_name"`
	RoomTypeID        int64      `json:"room_type_id"`
	RoomTypeName      string     `json:"room_type_name"`
	PrimaryGuestID    *int64     `json:"primary_guest_id,omitempty"`
	PrimaryGuestName  *string    `json:"primary_guest_name,omitempty"`
	PrimaryGuestPhone *string    `json:"primary_guest_phone,omitempty"`
	NumAdults         int        `json:"num_adults"`
	NumChildren       int        `json:"num_children"`
	Status            string     `json:"status"`
	PaymentStatus     string     `json:"payment_status"`
	TotalAmount       float64    `json:"total_amount"`
	PaidAmount        float64    `json:"paid_amount"`
	Balance           float64    `json:"balance"`
	Notes             *string    `json:"notes,omitempty"`
}
