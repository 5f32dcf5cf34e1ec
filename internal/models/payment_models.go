package models

import "time"

// PaymentMethod values stored in payments.payment_method.
const (
	PaymentMethodCash  = "Cash"
	PaymentMethodCard  = "Card"
	PaymentMethodOther = "Other"
)

func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodOther:
		return true
	default:
		return false
	}
}

// Payment is one recorded money receipt against a booking's ledger.
type Payment struct {
	ID            int64      `json:"id" db:"id"`
	BookingID     int64      `json:"booking_id" db:"booking_id"`
	PaidAt        time.Time  `json:"paid_at" db:"paid_at"`
	PaymentMethod string     `json:"payment_method" db:"payment_method"`
	ReferenceNo   *string    `json:"reference_no,omitempty" db:"reference_no"`
	Amount        float64    `json:"amount" db:"amount"`
	PayerName     *string    `json:"payer_name,omitempty" db:"payer_name"`
	Notes         *string    `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	CreatedBy     *int64     `json:"created_by,omitempty" db:"created_by"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	UpdatedBy     *int64     `json:"updated_by,omitempty" db:"updated_by"`
}

// PaymentFilters defines the available filters for payment queries.
type PaymentFilters struct {
	BookingID     *int64     `form:"booking_id"`
	PaymentMethod *string    `form:"payment_method"`
	ReferenceNo   *string    `form:"reference_no"`
	PayerName     *string    `form:"payer_name"`
	MinAmount     *float64   `form:"min_amount"`
	MaxAmount     *float64   `form:"max_amount"`
	PaidFrom      *time.Time `form:"paid_from"`
	PaidTo        *time.Time `form:"paid_to"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size"`
}
