package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hms_backend/internal/models"
	"hms_backend/internal/repositories"
)

var (
	ErrValidation = errors.New("validation error")

	ErrBookingNotFound       = errors.New("booking not found")
	ErrRoomNotAvailable      = errors.New("room is not available for the requested period")
	ErrBookingNoConflict     = errors.New("booking number already taken, retry")
	ErrInvalidBookingStatus  = errors.New("operation not allowed in current booking status")
	ErrBookingHasPayments    = errors.New("booking has recorded payments and cannot be deleted")
	ErrRoomOccupancyExceeded = errors.New("guest count exceeds room type max occupancy")
	ErrBookingDetailNotFound = errors.New("booking detail not found")
	ErrPaymentNotFound       = errors.New("payment not found")
)

const bookingNoPrefix = "BKG"

// Auto-settlement payment attributes written on checkout.
const (
	settlementPayerName = "System"
	settlementNotes     = "Auto-generated payment on checkout"
)

// CreateBookingRequest is used for creating a new booking.
type CreateBookingRequest struct {
	ChargeType     string     `json:"charge_type" binding:"required"`
	Checkin        time.Time  `json:"checkin" binding:"required"`
	Checkout       *time.Time `json:"checkout"`
	RoomID         int64      `json:"room_id" binding:"required"`
	PrimaryGuestID *int64     `json:"primary_guest_id"`
	NumAdults      int        `json:"num_adults" binding:"required,gt=0"`
	NumChildren    int        `json:"num_children" binding:"gte=0"`
	Notes          *string    `json:"notes"`
}

// UpdateBookingRequest is used for amending a booking before it is closed.
type UpdateBookingRequest struct {
	ChargeType     *string    `json:"charge_type"`
	Checkin        *time.Time `json:"checkin"`
	Checkout       *time.Time `json:"checkout"`
	RoomID         *int64     `json:"room_id"`
	PrimaryGuestID *int64     `json:"primary_guest_id"`
	NumAdults      *int       `json:"num_adults"`
	NumChildren    *int       `json:"num_children"`
	Notes          *string    `json:"notes"`
}

// CreateBookingDetailRequest is used for adding a charge line to a booking.
type CreateBookingDetailRequest struct {
	Type           string   `json:"type" binding:"required"`
	ServiceID      *int64   `json:"service_id"`
	Description    *string  `json:"description"`
	Quantity       float64  `json:"quantity" binding:"required,gt=0"`
	UnitPrice      float64  `json:"unit_price"`
	DiscountAmount float64  `json:"discount_amount"`
	Amount         *float64 `json:"amount"`
}

// CreatePaymentRequest is used for recording a payment against a booking.
type CreatePaymentRequest struct {
	PaymentMethod string     `json:"payment_method" binding:"required"`
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	PaidAt        *time.Time `json:"paid_at"`
	ReferenceNo   *string    `json:"reference_no"`
	PayerName     *string    `json:"payer_name"`
	Notes         *string    `json:"notes"`
}

// CancelBookingRequest carries the optional cancellation reason.
type CancelBookingRequest struct {
	Reason *string `json:"reason"`
}

// BookingService defines the booking lifecycle and ledger operations.
type BookingService interface {
	CreateBooking(req CreateBookingRequest, actor *models.Actor) (*models.Booking, error)
	GetBookingByID(id int64) (*models.Booking, error)
	GetTodayBookings(page, pageSize int) ([]models.TodayBooking, int, error)
	GetBookingHistories(filters models.BookingFilters) ([]models.BookingHistory, int, error)
	UpdateBooking(id int64, req UpdateBookingRequest, actor *models.Actor) (*models.Booking, error)
	DeleteBooking(id int64) error

	CheckIn(id int64, actor *models.Actor) (*models.Booking, error)
	CheckOut(id int64, actor *models.Actor) (*models.Booking, error)
	Cancel(id int64, req CancelBookingRequest, actor *models.Actor) (*models.Booking, error)
	MarkNoShow(id int64, actor *models.Actor) (*models.Booking, error)

	AddBookingDetail(bookingID int64, req CreateBookingDetailRequest, actor *models.Actor) (*models.BookingDetail, error)
	GetBookingDetails(bookingID int64, filters models.BookingDetailFilters) ([]models.BookingDetail, int, error)
	DeleteBookingDetail(bookingID, detailID int64, actor *models.Actor) error

	AddPayment(bookingID int64, req CreatePaymentRequest, actor *models.Actor) (*models.Payment, error)
	GetPayments(bookingID int64, filters models.PaymentFilters) ([]models.Payment, int, error)
	DeletePayment(bookingID, paymentID int64, actor *models.Actor) error
}

type bookingService struct {
	bookingRepo  repositories.BookingRepository
	detailRepo   repositories.BookingDetailRepository
	paymentRepo  repositories.PaymentRepository
	roomRepo     repositories.RoomRepository
	roomTypeRepo repositories.RoomTypeRepository
	guestRepo    repositories.GuestRepository
	serviceRepo  repositories.ServiceRepository
	db           *sql.DB
}

// NewBookingService creates a new instance of BookingService.
func NewBookingService(
	br repositories.BookingRepository,
	dr repositories.BookingDetailRepository,
	pr repositories.PaymentRepository,
	rr repositories.RoomRepository,
	rtr repositories.RoomTypeRepository,
	gr repositories.GuestRepository,
	sr repositories.ServiceRepository,
	db *sql.DB,
) BookingService {
	return &bookingService{
		bookingRepo:  br,
		detailRepo:   dr,
		paymentRepo:  pr,
		roomRepo:     rr,
		roomTypeRepo: rtr,
		guestRepo:    gr,
		serviceRepo:  sr,
		db:           db,
	}
}

// nextBookingNo builds the next sequential number for today, e.g. BKG250901007.
// Must run inside a transaction holding the room lock so two concurrent
// creates cannot read the same max.
func (s *bookingService) nextBookingNo(tx repositories.SQLExecutor, now time.Time) (string, error) {
	prefix := bookingNoPrefix + now.Format("060102")
	maxNo, err := s.bookingRepo.MaxBookingNo(tx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to query max booking number: %w", err)
	}
	seq := 1
	if maxNo != nil {
		suffix := strings.TrimPrefix(*maxNo, prefix)
		if parsed, parseErr := strconv.Atoi(suffix); parseErr == nil {
			seq = parsed + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, seq), nil
}

func (s *bookingService) validateDates(checkin time.Time, checkout *time.Time) error {
	if checkout != nil && !checkout.After(checkin) {
		return fmt.Errorf("%w: checkout must be after checkin", ErrValidation)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// validateCheckinNotPast rejects check-in dates before today. The comparison is
// at day granularity so walk-ins booked for earlier the same day still pass.
func (s *bookingService) validateCheckinNotPast(checkin time.Time) error {
	if startOfDay(checkin).Before(startOfDay(time.Now())) {
		return fmt.Errorf("%w: checkin must not be in the past", ErrValidation)
	}
	return nil
}

func (s *bookingService) CreateBooking(req CreateBookingRequest, actor *models.Actor) (*models.Booking, error) {
	if !models.IsValidChargeType(req.ChargeType) {
		return nil, fmt.Errorf("%w: unknown charge type %q", ErrValidation, req.ChargeType)
	}
	if req.NumAdults+req.NumChildren <= 0 {
		return nil, fmt.Errorf("%w: booking must have at least one occupant", ErrValidation)
	}
	if err := s.validateDates(req.Checkin, req.Checkout); err != nil {
		return nil, err
	}
	if err := s.validateCheckinNotPast(req.Checkin); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the room row so concurrent bookings for the same room serialize
	// before the availability check.
	room, err := s.roomRepo.GetRoomForUpdate(tx, req.RoomID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: room ID %d", ErrRoomNotFound, req.RoomID)
		}
		return nil, fmt.Errorf("failed to lock room %d: %w", req.RoomID, err)
	}
	if room.Status == models.RoomStatusOutOfService {
		return nil, fmt.Errorf("%w: room %s is out of service", ErrRoomNotAvailable, room.Name)
	}

	roomType, err := s.roomTypeRepo.GetRoomTypeByID(tx, room.RoomTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room type %d: %w", room.RoomTypeID, err)
	}
	if req.NumAdults+req.NumChildren > roomType.MaxOccupancy {
		return nil, fmt.Errorf("%w: %d guests, max %d for type %s",
			ErrRoomOccupancyExceeded, req.NumAdults+req.NumChildren, roomType.MaxOccupancy, roomType.Code)
	}

	if req.PrimaryGuestID != nil {
		if _, err := s.guestRepo.GetGuestByID(tx, *req.PrimaryGuestID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: guest ID %d", ErrGuestNotFound, *req.PrimaryGuestID)
			}
			return nil, fmt.Errorf("failed to fetch guest %d: %w", *req.PrimaryGuestID, err)
		}
	}

	booked, err := s.bookingRepo.IsRoomBooked(tx, req.RoomID, req.Checkin, req.Checkout, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check room availability: %w", err)
	}
	if booked {
		return nil, fmt.Errorf("%w: room %s", ErrRoomNotAvailable, room.Name)
	}

	bookingNo, err := s.nextBookingNo(tx, time.Now())
	if err != nil {
		return nil, err
	}

	booking := models.Booking{
		BookingNo:      bookingNo,
		ChargeType:     req.ChargeType,
		Checkin:        req.Checkin,
		Checkout:       req.Checkout,
		RoomID:         room.ID,
		RoomTypeID:     room.RoomTypeID,
		PrimaryGuestID: req.PrimaryGuestID,
		NumAdults:      req.NumAdults,
		NumChildren:    req.NumChildren,
		Status:         models.BookingStatusReserved,
		PaymentStatus:  models.PaymentStatusUnpaid,
		Notes:          req.Notes,
	}
	if actor != nil {
		booking.CreatedBy = &actor.ID
	}

	created, err := s.bookingRepo.CreateBooking(tx, &booking)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrBookingNoConflict, bookingNo)
		}
		return nil, fmt.Errorf("failed to create booking record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking transaction: %w", err)
	}
	return s.GetBookingByID(created.ID)
}

func (s *bookingService) GetBookingByID(id int64) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetBookingByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking by ID: %w", err)
	}
	return booking, nil
}

func (s *bookingService) GetTodayBookings(page, pageSize int) ([]models.TodayBooking, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	bookings, totalCount, err := s.bookingRepo.GetTodayBookings(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get today bookings: %w", err)
	}
	return bookings, totalCount, nil
}

func (s *bookingService) GetBookingHistories(filters models.BookingFilters) ([]models.BookingHistory, int, error) {
	histories, totalCount, err := s.bookingRepo.GetBookingHistories(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get booking histories: %w", err)
	}
	return histories, totalCount, nil
}

func (s *bookingService) UpdateBooking(id int64, req UpdateBookingRequest, actor *models.Actor) (*models.Booking, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	booking, err := s.bookingRepo.GetBookingByID(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking %d: %w", id, err)
	}
	if models.IsTerminalBookingStatus(booking.Status) {
		return nil, fmt.Errorf("%w: booking %s is %s", ErrInvalidBookingStatus, booking.BookingNo, booking.Status)
	}

	if req.ChargeType != nil {
		if !models.IsValidChargeType(*req.ChargeType) {
			return nil, fmt.Errorf("%w: unknown charge type %q", ErrValidation, *req.ChargeType)
		}
		booking.ChargeType = *req.ChargeType
	}

	roomChanged := req.RoomID != nil && *req.RoomID != booking.RoomID
	datesChanged := false
	if req.Checkin != nil && !req.Checkin.Equal(booking.Checkin) {
		if err := s.validateCheckinNotPast(*req.Checkin); err != nil {
			return nil, err
		}
		booking.Checkin = *req.Checkin
		datesChanged = true
	}
	if req.Checkout != nil {
		booking.Checkout = req.Checkout
		datesChanged = true
	}
	if err := s.validateDates(booking.Checkin, booking.Checkout); err != nil {
		return nil, err
	}
	if roomChanged {
		booking.RoomID = *req.RoomID
	}
	if req.PrimaryGuestID != nil {
		if _, err := s.guestRepo.GetGuestByID(tx, *req.PrimaryGuestID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: guest ID %d", ErrGuestNotFound, *req.PrimaryGuestID)
			}
			return nil, fmt.Errorf("failed to fetch guest %d: %w", *req.PrimaryGuestID, err)
		}
		booking.PrimaryGuestID = req.PrimaryGuestID
	}
	if req.NumAdults != nil {
		booking.NumAdults = *req.NumAdults
	}
	if req.NumChildren != nil {
		booking.NumChildren = *req.NumChildren
	}
	if booking.NumAdults+booking.NumChildren <= 0 {
		return nil, fmt.Errorf("%w: booking must have at least one occupant", ErrValidation)
	}
	if req.Notes != nil {
		booking.Notes = req.Notes
	}

	room, err := s.roomRepo.GetRoomForUpdate(tx, booking.RoomID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: room ID %d", ErrRoomNotFound, booking.RoomID)
		}
		return nil, fmt.Errorf("failed to lock room %d: %w", booking.RoomID, err)
	}
	if roomChanged && room.Status == models.RoomStatusOutOfService {
		return nil, fmt.Errorf("%w: room %s is out of service", ErrRoomNotAvailable, room.Name)
	}
	booking.RoomTypeID = room.RoomTypeID

	roomType, err := s.roomTypeRepo.GetRoomTypeByID(tx, room.RoomTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room type %d: %w", room.RoomTypeID, err)
	}
	if booking.NumAdults+booking.NumChildren > roomType.MaxOccupancy {
		return nil, fmt.Errorf("%w: %d guests, max %d for type %s",
			ErrRoomOccupancyExceeded, booking.NumAdults+booking.NumChildren, roomType.MaxOccupancy, roomType.Code)
	}

	if roomChanged || datesChanged {
		excludeID := booking.ID
		booked, err := s.bookingRepo.IsRoomBooked(tx, booking.RoomID, booking.Checkin, booking.Checkout, &excludeID)
		if err != nil {
			return nil, fmt.Errorf("failed to check room availability: %w", err)
		}
		if booked {
			return nil, fmt.Errorf("%w: room %s", ErrRoomNotAvailable, room.Name)
		}
	}

	if actor != nil {
		booking.UpdatedBy = &actor.ID
	}
	if _, err := s.bookingRepo.UpdateBooking(tx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking update: %w", err)
	}
	return s.GetBookingByID(id)
}

func (s *bookingService) DeleteBooking(id int64) error {
	booking, err := s.GetBookingByID(id)
	if err != nil {
		return err
	}
	paymentCount, err := s.paymentRepo.CountByBooking(nil, id)
	if err != nil {
		return fmt.Errorf("failed to count payments for booking %d: %w", id, err)
	}
	if paymentCount > 0 {
		return fmt.Errorf("%w: booking %s", ErrBookingHasPayments, booking.BookingNo)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if booking.Status == models.BookingStatusCheckedIn {
		room, err := s.roomRepo.GetRoomForUpdate(tx, booking.RoomID)
		if err != nil {
			return fmt.Errorf("failed to lock room %d: %w", booking.RoomID, err)
		}
		if err := s.roomRepo.UpdateRoomState(tx, room.ID, models.RoomStatusAvailable, models.HousekeepingStatusDirty, booking.UpdatedBy); err != nil {
			return fmt.Errorf("failed to release room %d: %w", room.ID, err)
		}
	}
	// Ledger lines go with the booking (FK cascade).
	if err := s.bookingRepo.DeleteBooking(tx, id); err != nil {
		return fmt.Errorf("failed to delete booking %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking delete: %w", err)
	}
	return nil
}

func (s *bookingService) CheckIn(id int64, actor *models.Actor) (*models.Booking, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	booking, err := s.bookingRepo.GetBookingByID(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking %d: %w", id, err)
	}
	// Repeated check-in is a no-op.
	if booking.Status == models.BookingStatusCheckedIn {
		return booking, nil
	}
	if booking.Status != models.BookingStatusReserved {
		return nil, fmt.Errorf("%w: cannot check in a %s booking", ErrInvalidBookingStatus, booking.Status)
	}

	room, err := s.roomRepo.GetRoomForUpdate(tx, booking.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock room %d: %w", booking.RoomID, err)
	}

	booking.Checkin = time.Now()
	booking.Status = models.BookingStatusCheckedIn
	if actor != nil {
		booking.UpdatedBy = &actor.ID
	}
	if _, err := s.bookingRepo.UpdateBooking(tx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking %d: %w", id, err)
	}
	if err := s.roomRepo.UpdateRoomState(tx, room.ID, models.RoomStatusOccupied, room.HousekeepingStatus, booking.UpdatedBy); err != nil {
		return nil, fmt.Errorf("failed to mark room %d occupied: %w", room.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit check-in: %w", err)
	}
	return s.GetBookingByID(id)
}

func (s *bookingService) CheckOut(id int64, actor *models.Actor) (*models.Booking, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	booking, err := s.bookingRepo.GetBookingByID(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking %d: %w", id, err)
	}
	if booking.Status != models.BookingStatusCheckedIn {
		return nil, fmt.Errorf("%w: cannot check out a %s booking", ErrInvalidBookingStatus, booking.Status)
	}

	room, err := s.roomRepo.GetRoomForUpdate(tx, booking.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock room %d: %w", booking.RoomID, err)
	}

	total, err := s.detailRepo.SumAmountByBooking(tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to sum charges for booking %d: %w", id, err)
	}
	paid, err := s.paymentRepo.SumAmountByBooking(tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments for booking %d: %w", id, err)
	}

	now := time.Now()
	var actorID *int64
	if actor != nil {
		actorID = &actor.ID
	}

	// Settle any remaining balance as a system payment so the folio closes at zero.
	if remaining := total - paid; remaining > 0 {
		payerName := settlementPayerName
		notes := settlementNotes
		referenceNo := booking.BookingNo
		settlement := models.Payment{
			BookingID:     id,
			PaidAt:        now,
			PaymentMethod: models.PaymentMethodOther,
			ReferenceNo:   &referenceNo,
			Amount:        remaining,
			PayerName:     &payerName,
			Notes:         &notes,
			CreatedBy:     actorID,
		}
		if _, err := s.paymentRepo.CreatePayment(tx, &settlement); err != nil {
			return nil, fmt.Errorf("failed to record settlement payment for booking %d: %w", id, err)
		}
	}

	booking.Checkout = &now
	booking.Status = models.BookingStatusCheckedOut
	booking.PaymentStatus = models.PaymentStatusPaid
	booking.UpdatedBy = actorID
	if _, err := s.bookingRepo.UpdateBooking(tx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking %d: %w", id, err)
	}
	if err := s.roomRepo.UpdateRoomState(tx, room.ID, models.RoomStatusAvailable, models.HousekeepingStatusDirty, actorID); err != nil {
		return nil, fmt.Errorf("failed to release room %d: %w", room.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit check-out: %w", err)
	}
	return s.GetBookingByID(id)
}

func (s *bookingService) Cancel(id int64, req CancelBookingRequest, actor *models.Actor) (*models.Booking, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	booking, err := s.bookingRepo.GetBookingByID(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking %d: %w", id, err)
	}
	if models.IsTerminalBookingStatus(booking.Status) {
		return nil, fmt.Errorf("%w: booking %s is %s", ErrInvalidBookingStatus, booking.BookingNo, booking.Status)
	}

	var actorID *int64
	if actor != nil {
		actorID = &actor.ID
	}

	if booking.Status == models.BookingStatusCheckedIn {
		room, err := s.roomRepo.GetRoomForUpdate(tx, booking.RoomID)
		if err != nil {
			return nil, fmt.Errorf("failed to lock room %d: %w", booking.RoomID, err)
		}
		if err := s.roomRepo.UpdateRoomState(tx, room.ID, models.RoomStatusAvailable, models.HousekeepingStatusDirty, actorID); err != nil {
			return nil, fmt.Errorf("failed to release room %d: %w", room.ID, err)
		}
	}

	if req.Reason != nil && *req.Reason != "" {
		reason := "Cancelled: " + *req.Reason
		if booking.Notes != nil && *booking.Notes != "" {
			reason = *booking.Notes + "; " + reason
		}
		booking.Notes = &reason
	}
	booking.Status = models.BookingStatusCancelled
	booking.UpdatedBy = actorID
	if _, err := s.bookingRepo.UpdateBooking(tx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cancellation: %w", err)
	}
	return s.GetBookingByID(id)
}

func (s *bookingService) MarkNoShow(id int64, actor *models.Actor) (*models.Booking, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	booking, err := s.bookingRepo.GetBookingByID(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking %d: %w", id, err)
	}
	if models.IsTerminalBookingStatus(booking.Status) {
		return nil, fmt.Errorf("%w: booking %s is %s", ErrInvalidBookingStatus, booking.BookingNo, booking.Status)
	}

	var actorID *int64
	if actor != nil {
		actorID = &actor.ID
	}

	if booking.Status == models.BookingStatusCheckedIn {
		room, err := s.roomRepo.GetRoomForUpdate(tx, booking.RoomID)
		if err != nil {
			return nil, fmt.Errorf("failed to lock room %d: %w", booking.RoomID, err)
		}
		if err := s.roomRepo.UpdateRoomState(tx, room.ID, models.RoomStatusAvailable, models.HousekeepingStatusDirty, actorID); err != nil {
			return nil, fmt.Errorf("failed to release room %d: %w", room.ID, err)
		}
	}

	booking.Status = models.BookingStatusNoShow
	booking.UpdatedBy = actorID
	if _, err := s.bookingRepo.UpdateBooking(tx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit no-show: %w", err)
	}
	return s.GetBookingByID(id)
}

// mutableBooking loads the booking inside tx and rejects ledger mutations
// once the booking is closed.
func (s *bookingService) mutableBooking(tx repositories.SQLExecutor, id int64) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetBookingByID(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking %d: %w", id, err)
	}
	if models.IsTerminalBookingStatus(booking.Status) {
		return nil, fmt.Errorf("%w: booking %s is %s", ErrInvalidBookingStatus, booking.BookingNo, booking.Status)
	}
	return booking, nil
}

// refreshPaymentStatus recomputes the derived payment status from the ledgers.
func (s *bookingService) refreshPaymentStatus(tx repositories.SQLExecutor, booking *models.Booking) error {
	total, err := s.detailRepo.SumAmountByBooking(tx, booking.ID)
	if err != nil {
		return fmt.Errorf("failed to sum charges for booking %d: %w", booking.ID, err)
	}
	paid, err := s.paymentRepo.SumAmountByBooking(tx, booking.ID)
	if err != nil {
		return fmt.Errorf("failed to sum payments for booking %d: %w", booking.ID, err)
	}

	status := models.PaymentStatusUnpaid
	switch {
	case paid > 0 && paid >= total && total > 0:
		status = models.PaymentStatusPaid
	case paid > 0:
		status = models.PaymentStatusPartial
	}
	if status == booking.PaymentStatus {
		return nil
	}
	booking.PaymentStatus = status
	if _, err := s.bookingRepo.UpdateBooking(tx, booking); err != nil {
		return fmt.Errorf("failed to update payment status for booking %d: %w", booking.ID, err)
	}
	return nil
}

func (s *bookingService) AddBookingDetail(bookingID int64, req CreateBookingDetailRequest, actor *models.Actor) (*models.BookingDetail, error) {
	if !models.IsValidBookingDetailType(req.Type) {
		return nil, fmt.Errorf("%w: unknown detail type %q", ErrValidation, req.Type)
	}
	if req.Type == models.BookingDetailTypeService && req.ServiceID == nil {
		return nil, fmt.Errorf("%w: service lines require service_id", ErrValidation)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if req.UnitPrice < 0 {
		return nil, fmt.Errorf("%w: unit price must not be negative", ErrValidation)
	}
	if req.DiscountAmount < 0 {
		return nil, fmt.Errorf("%w: discount must not be negative", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	booking, err := s.mutableBooking(tx, bookingID)
	if err != nil {
		return nil, err
	}

	unitPrice := req.UnitPrice
	if req.ServiceID != nil {
		service, err := s.serviceRepo.GetServiceByID(tx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: service ID %d", ErrServiceNotFound, *req.ServiceID)
			}
			return nil, fmt.Errorf("failed to fetch service %d: %w", *req.ServiceID, err)
		}
		if service.Status != models.ServiceStatusActive {
			return nil, fmt.Errorf("%w: service %s is inactive", ErrValidation, service.Name)
		}
		if unitPrice == 0 {
			unitPrice = service.Price
		}
	}

	amount := req.Quantity*unitPrice - req.DiscountAmount
	if req.Amount != nil {
		amount = *req.Amount
	}

	detail := models.BookingDetail{
		BookingID:      bookingID,
		Type:           req.Type,
		ServiceID:      req.ServiceID,
		Description:    req.Description,
		Quantity:       req.Quantity,
		UnitPrice:      unitPrice,
		DiscountAmount: req.DiscountAmount,
		Amount:         amount,
	}
	if actor != nil {
		detail.CreatedBy = &actor.ID
	}
	created, err := s.detailRepo.CreateBookingDetail(tx, &detail)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking detail: %w", err)
	}
	if err := s.refreshPaymentStatus(tx, booking); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking detail: %w", err)
	}
	return created, nil
}

func (s *bookingService) GetBookingDetails(bookingID int64, filters models.BookingDetailFilters) ([]models.BookingDetail, int, error) {
	if _, err := s.GetBookingByID(bookingID); err != nil {
		return nil, 0, err
	}
	filters.BookingID = &bookingID
	details, totalCount, err := s.detailRepo.GetBookingDetails(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get booking details: %w", err)
	}
	return details, totalCount, nil
}

func (s *bookingService) DeleteBookingDetail(bookingID, detailID int64, actor *models.Actor) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	booking, err := s.mutableBooking(tx, bookingID)
	if err != nil {
		return err
	}
	detail, err := s.detailRepo.GetBookingDetailByID(tx, detailID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookingDetailNotFound
		}
		return fmt.Errorf("failed to get booking detail %d: %w", detailID, err)
	}
	if detail.BookingID != bookingID {
		return ErrBookingDetailNotFound
	}
	if err := s.detailRepo.DeleteBookingDetail(tx, detailID); err != nil {
		return fmt.Errorf("failed to delete booking detail %d: %w", detailID, err)
	}
	if err := s.refreshPaymentStatus(tx, booking); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking detail delete: %w", err)
	}
	return nil
}

func (s *bookingService) AddPayment(bookingID int64, req CreatePaymentRequest, actor *models.Actor) (*models.Payment, error) {
	if !models.IsValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.PaymentMethod)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	booking, err := s.mutableBooking(tx, bookingID)
	if err != nil {
		return nil, err
	}

	payment := models.Payment{
		BookingID:     bookingID,
		PaymentMethod: req.PaymentMethod,
		Amount:        req.Amount,
		ReferenceNo:   req.ReferenceNo,
		PayerName:     req.PayerName,
		Notes:         req.Notes,
	}
	if req.PaidAt != nil {
		payment.PaidAt = *req.PaidAt
	}
	if actor != nil {
		payment.CreatedBy = &actor.ID
	}
	created, err := s.paymentRepo.CreatePayment(tx, &payment)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	if err := s.refreshPaymentStatus(tx, booking); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}
	return created, nil
}

func (s *bookingService) GetPayments(bookingID int64, filters models.PaymentFilters) ([]models.Payment, int, error) {
	if _, err := s.GetBookingByID(bookingID); err != nil {
		return nil, 0, err
	}
	filters.BookingID = &bookingID
	payments, totalCount, err := s.paymentRepo.GetPayments(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get payments: %w", err)
	}
	return payments, totalCount, nil
}

func (s *bookingService) DeletePayment(bookingID, paymentID int64, actor *models.Actor) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	booking, err := s.mutableBooking(tx, bookingID)
	if err != nil {
		return err
	}
	payment, err := s.paymentRepo.GetPaymentByID(tx, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("failed to get payment %d: %w", paymentID, err)
	}
	if payment.BookingID != bookingID {
		return ErrPaymentNotFound
	}
	if err := s.paymentRepo.DeletePayment(tx, paymentID); err != nil {
		return fmt.Errorf("failed to delete payment %d: %w", paymentID, err)
	}
	if err := s.refreshPaymentStatus(tx, booking); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit payment delete: %w", err)
	}
	return nil
}
