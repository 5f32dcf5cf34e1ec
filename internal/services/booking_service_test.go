package services

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"hms_backend/internal/models"
	"hms_backend/internal/repositories"
)

// A stub driver so services can open and commit transactions in tests.
// All statement work happens through mocked repositories, never the driver.

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (stubConn) Close() error                        { return nil }
func (stubConn) Begin() (driver.Tx, error)           { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

var registerStubDriver sync.Once

func newStubDB(t *testing.T) *sql.DB {
	t.Helper()
	registerStubDriver.Do(func() { sql.Register("servicestub", stubDriver{}) })
	db, err := sql.Open("servicestub", "")
	if err != nil {
		t.Fatalf("opening stub db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// --- repository mocks ---

type mockBookingRepo struct {
	createFn    func(booking *models.Booking) (*models.Booking, error)
	getByIDFn   func(id int64) (*models.Booking, error)
	updateFn    func(booking *models.Booking) (*models.Booking, error)
	deleteFn    func(id int64) error
	isBookedFn  func(roomID int64, checkin time.Time, checkout *time.Time, exclude *int64) (bool, error)
	maxNoFn     func(prefix string) (*string, error)
	updateCalls int
}

func (m *mockBookingRepo) CreateBooking(_ repositories.SQLExecutor, b *models.Booking) (*models.Booking, error) {
	if m.createFn == nil {
		b.ID = 1
		return b, nil
	}
	return m.createFn(b)
}

func (m *mockBookingRepo) GetBookingByID(_ repositories.SQLExecutor, id int64) (*models.Booking, error) {
	if m.getByIDFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.getByIDFn(id)
}

func (m *mockBookingRepo) GetBookingByNo(_ repositories.SQLExecutor, _ string) (*models.Booking, error) {
	return nil, repositories.ErrNotFound
}

func (m *mockBookingRepo) GetTodayBookings(_, _ int) ([]models.TodayBooking, int, error) {
	return nil, 0, nil
}

func (m *mockBookingRepo) GetBookingHistories(_ models.BookingFilters) ([]models.BookingHistory, int, error) {
	return nil, 0, nil
}

func (m *mockBookingRepo) UpdateBooking(_ repositories.SQLExecutor, b *models.Booking) (*models.Booking, error) {
	m.updateCalls++
	if m.updateFn == nil {
		return b, nil
	}
	return m.updateFn(b)
}

func (m *mockBookingRepo) DeleteBooking(_ repositories.SQLExecutor, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(id)
}

func (m *mockBookingRepo) IsRoomBooked(_ repositories.SQLExecutor, roomID int64, checkin time.Time, checkout *time.Time, exclude *int64) (bool, error) {
	if m.isBookedFn == nil {
		return false, nil
	}
	return m.isBookedFn(roomID, checkin, checkout, exclude)
}

func (m *mockBookingRepo) MaxBookingNo(_ repositories.SQLExecutor, prefix string) (*string, error) {
	if m.maxNoFn == nil {
		return nil, nil
	}
	return m.maxNoFn(prefix)
}

type mockDetailRepo struct {
	createFn func(detail *models.BookingDetail) (*models.BookingDetail, error)
	getFn    func(id int64) (*models.BookingDetail, error)
	deleteFn func(id int64) error
	sumFn    func(bookingID int64) (float64, error)
}

func (m *mockDetailRepo) CreateBookingDetail(_ repositories.SQLExecutor, d *models.BookingDetail) (*models.BookingDetail, error) {
	if m.createFn == nil {
		d.ID = 1
		return d, nil
	}
	return m.createFn(d)
}

func (m *mockDetailRepo) GetBookingDetailByID(_ repositories.SQLExecutor, id int64) (*models.BookingDetail, error) {
	if m.getFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.getFn(id)
}

func (m *mockDetailRepo) GetBookingDetails(_ models.BookingDetailFilters) ([]models.BookingDetail, int, error) {
	return nil, 0, nil
}

func (m *mockDetailRepo) DeleteBookingDetail(_ repositories.SQLExecutor, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(id)
}

func (m *mockDetailRepo) SumAmountByBooking(_ repositories.SQLExecutor, bookingID int64) (float64, error) {
	if m.sumFn == nil {
		return 0, nil
	}
	return m.sumFn(bookingID)
}

type mockPaymentRepo struct {
	createFn func(payment *models.Payment) (*models.Payment, error)
	getFn    func(id int64) (*models.Payment, error)
	deleteFn func(id int64) error
	sumFn    func(bookingID int64) (float64, error)
	countFn  func(bookingID int64) (int, error)
}

func (m *mockPaymentRepo) CreatePayment(_ repositories.SQLExecutor, p *models.Payment) (*models.Payment, error) {
	if m.createFn == nil {
		p.ID = 1
		return p, nil
	}
	return m.createFn(p)
}

func (m *mockPaymentRepo) GetPaymentByID(_ repositories.SQLExecutor, id int64) (*models.Payment, error) {
	if m.getFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.getFn(id)
}

func (m *mockPaymentRepo) GetPayments(_ models.PaymentFilters) ([]models.Payment, int, error) {
	return nil, 0, nil
}

func (m *mockPaymentRepo) DeletePayment(_ repositories.SQLExecutor, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(id)
}

func (m *mockPaymentRepo) SumAmountByBooking(_ repositories.SQLExecutor, bookingID int64) (float64, error) {
	if m.sumFn == nil {
		return 0, nil
	}
	return m.sumFn(bookingID)
}

func (m *mockPaymentRepo) CountByBooking(_ repositories.SQLExecutor, bookingID int64) (int, error) {
	if m.countFn == nil {
		return 0, nil
	}
	return m.countFn(bookingID)
}

type mockRoomRepo struct {
	createFn        func(r *models.Room) (*models.Room, error)
	getForUpdateFn  func(id int64) (*models.Room, error)
	deleteFn        func(id int64) error
	countBookingsFn func(id int64) (int, error)
	availableFn     func(checkin time.Time, checkout *time.Time, roomTypeID *int64) ([]models.Room, error)
	stateCalls      []string
}

func (m *mockRoomRepo) CreateRoom(r *models.Room) (*models.Room, error) {
	if m.createFn == nil {
		r.ID = 1
		return r, nil
	}
	return m.createFn(r)
}

func (m *mockRoomRepo) GetRoomByID(_ repositories.SQLExecutor, id int64) (*models.Room, error) {
	if m.getForUpdateFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.getForUpdateFn(id)
}

func (m *mockRoomRepo) GetRooms(_ models.RoomFilters) ([]models.Room, int, error) {
	return nil, 0, nil
}

func (m *mockRoomRepo) UpdateRoom(r *models.Room) (*models.Room, error) { return r, nil }

func (m *mockRoomRepo) DeleteRoom(id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(id)
}

func (m *mockRoomRepo) GetRoomForUpdate(_ repositories.SQLExecutor, id int64) (*models.Room, error) {
	if m.getForUpdateFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.getForUpdateFn(id)
}

func (m *mockRoomRepo) UpdateRoomState(_ repositories.SQLExecutor, id int64, status, housekeepingStatus string, _ *int64) error {
	m.stateCalls = append(m.stateCalls, fmt.Sprintf("%d:%s:%s", id, status, housekeepingStatus))
	return nil
}

func (m *mockRoomRepo) CountBookingsByRoom(id int64) (int, error) {
	if m.countBookingsFn == nil {
		return 0, nil
	}
	return m.countBookingsFn(id)
}

func (m *mockRoomRepo) GetAvailableRooms(checkin time.Time, checkout *time.Time, roomTypeID *int64) ([]models.Room, error) {
	if m.availableFn == nil {
		return nil, nil
	}
	return m.availableFn(checkin, checkout, roomTypeID)
}

type mockRoomTypeRepo struct {
	createFn     func(rt *models.RoomType) (*models.RoomType, error)
	getFn        func(id int64) (*models.RoomType, error)
	updateFn     func(rt *models.RoomType) (*models.RoomType, error)
	deleteFn     func(id int64) error
	countRoomsFn func(id int64) (int, error)
}

func (m *mockRoomTypeRepo) CreateRoomType(rt *models.RoomType) (*models.RoomType, error) {
	if m.createFn == nil {
		rt.ID = 1
		return rt, nil
	}
	return m.createFn(rt)
}

func (m *mockRoomTypeRepo) GetRoomTypeByID(_ repositories.SQLExecutor, id int64) (*models.RoomType, error) {
	if m.getFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.getFn(id)
}

func (m *mockRoomTypeRepo) GetRoomTypes(_, _ int, _ *string) ([]models.RoomType, int, error) {
	return nil, 0, nil
}

func (m *mockRoomTypeRepo) UpdateRoomType(rt *models.RoomType) (*models.RoomType, error) {
	if m.updateFn == nil {
		return rt, nil
	}
	return m.updateFn(rt)
}

func (m *mockRoomTypeRepo) DeleteRoomType(id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(id)
}

func (m *mockRoomTypeRepo) CountRoomsByType(id int64) (int, error) {
	if m.countRoomsFn == nil {
		return 0, nil
	}
	return m.countRoomsFn(id)
}

type mockGuestRepo struct {
	getFn           func(id int64) (*models.Guest, error)
	createFn        func(g *models.Guest) (*models.Guest, error)
	deleteFn        func(id int64) error
	countBookingsFn func(id int64) (int, error)
}

func (m *mockGuestRepo) CreateGuest(g *models.Guest) (*models.Guest, error) {
	if m.createFn == nil {
		g.ID = 1
		return g, nil
	}
	return m.createFn(g)
}

func (m *mockGuestRepo) GetGuestByID(_ repositories.SQLExecutor, id int64) (*models.Guest, error) {
	if m.getFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.getFn(id)
}

func (m *mockGuestRepo) GetGuests(_ models.GuestFilters) ([]models.Guest, int, error) {
	return nil, 0, nil
}

func (m *mockGuestRepo) UpdateGuest(g *models.Guest) (*models.Guest, error) { return g, nil }

func (m *mockGuestRepo) DeleteGuest(id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(id)
}

func (m *mockGuestRepo) CountBookingsByGuest(id int64) (int, error) {
	if m.countBookingsFn == nil {
		return 0, nil
	}
	return m.countBookingsFn(id)
}

type mockServiceRepo struct {
	getFn         func(id int64) (*models.Service, error)
	countUsagesFn func(id int64) (int, error)
}

func (m *mockServiceRepo) CreateService(s *models.Service) (*models.Service, error) {
	s.ID = 1
	return s, nil
}

func (m *mockServiceRepo) GetServiceByID(_ repositories.SQLExecutor, id int64) (*models.Service, error) {
	if m.getFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.getFn(id)
}

func (m *mockServiceRepo) GetServices(_ models.ServiceFilters) ([]models.Service, int, error) {
	return nil, 0, nil
}

func (m *mockServiceRepo) UpdateService(s *models.Service) (*models.Service, error) { return s, nil }
func (m *mockServiceRepo) DeleteService(_ int64) error                              { return nil }

func (m *mockServiceRepo) CountUsagesByService(id int64) (int, error) {
	if m.countUsagesFn == nil {
		return 0, nil
	}
	return m.countUsagesFn(id)
}

// --- fixtures ---

type bookingFixture struct {
	svc         *bookingService
	bookingRepo *mockBookingRepo
	detailRepo  *mockDetailRepo
	paymentRepo *mockPaymentRepo
	roomRepo    *mockRoomRepo
}

func newBookingFixture(t *testing.T) *bookingFixture {
	bookingRepo := &mockBookingRepo{}
	detailRepo := &mockDetailRepo{}
	paymentRepo := &mockPaymentRepo{}
	roomRepo := &mockRoomRepo{
		getForUpdateFn: func(id int64) (*models.Room, error) {
			return &models.Room{
				ID:                 id,
				Name:               "101",
				RoomTypeID:         1,
				Status:             models.RoomStatusAvailable,
				HousekeepingStatus: models.HousekeepingStatusClean,
			}, nil
		},
	}
	roomTypeRepo := &mockRoomTypeRepo{
		getFn: func(id int64) (*models.RoomType, error) {
			return &models.RoomType{ID: id, Code: "STD", Name: "Standard", BaseOccupancy: 2, MaxOccupancy: 2}, nil
		},
	}
	svc := NewBookingService(
		bookingRepo, detailRepo, paymentRepo, roomRepo, roomTypeRepo,
		&mockGuestRepo{}, &mockServiceRepo{}, newStubDB(t),
	).(*bookingService)

	return &bookingFixture{
		svc:         svc,
		bookingRepo: bookingRepo,
		detailRepo:  detailRepo,
		paymentRepo: paymentRepo,
		roomRepo:    roomRepo,
	}
}

func reservedBooking() *models.Booking {
	return &models.Booking{
		ID:            7,
		BookingNo:     "BKG250901001",
		ChargeType:    models.ChargeTypeNight,
		Checkin:       time.Date(2025, 9, 1, 14, 0, 0, 0, time.UTC),
		RoomID:        1,
		RoomTypeID:    1,
		NumAdults:     2,
		Status:        models.BookingStatusReserved,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
}

// --- tests ---

func TestNextBookingNo(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		maxNo *string
		want  string
	}{
		{"first of day", nil, "BKG250901001"},
		{"increments", strPtr("BKG250901007"), "BKG250901008"},
		{"three digit rollover", strPtr("BKG250901099"), "BKG250901100"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newBookingFixture(t)
			f.bookingRepo.maxNoFn = func(prefix string) (*string, error) {
				if prefix != "BKG250901" {
					t.Fatalf("prefix = %q, want BKG250901", prefix)
				}
				return tc.maxNo, nil
			}
			got, err := f.svc.nextBookingNo(nil, now)
			if err != nil {
				t.Fatalf("nextBookingNo: %v", err)
			}
			if got != tc.want {
				t.Fatalf("nextBookingNo = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	f := newBookingFixture(t)
	f.bookingRepo.isBookedFn = func(int64, time.Time, *time.Time, *int64) (bool, error) {
		return true, nil
	}

	checkin := time.Now().Add(24 * time.Hour)
	checkout := checkin.Add(48 * time.Hour)
	_, err := f.svc.CreateBooking(CreateBookingRequest{
		ChargeType: models.ChargeTypeNight,
		Checkin:    checkin,
		Checkout:   &checkout,
		RoomID:     1,
		NumAdults:  2,
	}, nil)
	if !errors.Is(err, ErrRoomNotAvailable) {
		t.Fatalf("err = %v, want ErrRoomNotAvailable", err)
	}
}

func TestCreateBookingOccupancyExceeded(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.CreateBooking(CreateBookingRequest{
		ChargeType:  models.ChargeTypeNight,
		Checkin:     time.Now().Add(24 * time.Hour),
		RoomID:      1,
		NumAdults:   2,
		NumChildren: 1, // max occupancy in fixture is 2
	}, nil)
	if !errors.Is(err, ErrRoomOccupancyExceeded) {
		t.Fatalf("err = %v, want ErrRoomOccupancyExceeded", err)
	}
}

func TestCreateBookingRejectsInvertedDates(t *testing.T) {
	f := newBookingFixture(t)

	checkin := time.Now().Add(24 * time.Hour)
	checkout := checkin.Add(-4 * time.Hour)
	_, err := f.svc.CreateBooking(CreateBookingRequest{
		ChargeType: models.ChargeTypeNight,
		Checkin:    checkin,
		Checkout:   &checkout,
		RoomID:     1,
		NumAdults:  1,
	}, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreateBookingRejectsPastCheckin(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.CreateBooking(CreateBookingRequest{
		ChargeType: models.ChargeTypeNight,
		Checkin:    time.Now().AddDate(0, 0, -2),
		RoomID:     1,
		NumAdults:  1,
	}, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreateBookingReserved(t *testing.T) {
	f := newBookingFixture(t)
	var created *models.Booking
	f.bookingRepo.createFn = func(b *models.Booking) (*models.Booking, error) {
		b.ID = 42
		created = b
		return b, nil
	}
	f.bookingRepo.getByIDFn = func(id int64) (*models.Booking, error) { return created, nil }

	booking, err := f.svc.CreateBooking(CreateBookingRequest{
		ChargeType: models.ChargeTypeNight,
		Checkin:    time.Now().Add(24 * time.Hour),
		RoomID:     1,
		NumAdults:  2,
	}, &models.Actor{ID: 3, Username: "reception", Role: models.UserRoleReceptionist})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.Status != models.BookingStatusReserved {
		t.Fatalf("status = %q, want Reserved", booking.Status)
	}
	if booking.PaymentStatus != models.PaymentStatusUnpaid {
		t.Fatalf("payment status = %q, want Unpaid", booking.PaymentStatus)
	}
	if len(booking.BookingNo) != 12 || booking.BookingNo[:3] != "BKG" {
		t.Fatalf("booking no = %q, want BKGyymmddnnn", booking.BookingNo)
	}
	if booking.CreatedBy == nil || *booking.CreatedBy != 3 {
		t.Fatalf("created_by = %v, want 3", booking.CreatedBy)
	}
}

func TestCreateBookingNumberCollision(t *testing.T) {
	f := newBookingFixture(t)
	f.bookingRepo.createFn = func(*models.Booking) (*models.Booking, error) {
		return nil, repositories.ErrDuplicateKey
	}

	_, err := f.svc.CreateBooking(CreateBookingRequest{
		ChargeType: models.ChargeTypeNight,
		Checkin:    time.Now().Add(24 * time.Hour),
		RoomID:     1,
		NumAdults:  2,
	}, nil)
	if !errors.Is(err, ErrBookingNoConflict) {
		t.Fatalf("err = %v, want ErrBookingNoConflict", err)
	}
}

func TestCheckInIdempotent(t *testing.T) {
	f := newBookingFixture(t)
	b := reservedBooking()
	b.Status = models.BookingStatusCheckedIn
	f.bookingRepo.getByIDFn = func(int64) (*models.Booking, error) { return b, nil }

	got, err := f.svc.CheckIn(b.ID, nil)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if got.Status != models.BookingStatusCheckedIn {
		t.Fatalf("status = %q, want CheckedIn", got.Status)
	}
	if f.bookingRepo.updateCalls != 0 {
		t.Fatalf("update called %d times on repeated check-in, want 0", f.bookingRepo.updateCalls)
	}
}

func TestCheckInMarksRoomOccupied(t *testing.T) {
	f := newBookingFixture(t)
	b := reservedBooking()
	f.bookingRepo.getByIDFn = func(int64) (*models.Booking, error) { return b, nil }

	got, err := f.svc.CheckIn(b.ID, nil)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if got.Status != models.BookingStatusCheckedIn {
		t.Fatalf("status = %q, want CheckedIn", got.Status)
	}
	if len(f.roomRepo.stateCalls) != 1 || f.roomRepo.stateCalls[0] != "1:Occupied:Clean" {
		t.Fatalf("room state calls = %v, want [1:Occupied:Clean]", f.roomRepo.stateCalls)
	}
}

func TestCheckInRejectsTerminalStatuses(t *testing.T) {
	for _, status := range []string{
		models.BookingStatusCheckedOut,
		models.BookingStatusCancelled,
		models.BookingStatusNoShow,
	} {
		t.Run(status, func(t *testing.T) {
			f := newBookingFixture(t)
			b := reservedBooking()
			b.Status = status
			f.bookingRepo.getByIDFn = func(int64) (*models.Booking, error) { return b, nil }

			if _, err := f.svc.CheckIn(b.ID, nil); !errors.Is(err, ErrInvalidBookingStatus) {
				t.Fatalf("err = %v, want ErrInvalidBookingStatus", err)
			}
		})
	}
}

func TestCheckOutSettlesRemainingBalance(t *testing.T) {
	f := newBookingFixture(t)
	b := reservedBooking()
	b.Status = models.BookingStatusCheckedIn
	f.bookingRepo.getByIDFn = func(int64) (*models.Booking, error) { return b, nil }
	f.detailRepo.sumFn = func(int64) (float64, error) { return 400000 + 80000, nil }
	f.paymentRepo.sumFn = func(int64) (float64, error) { return 300000, nil }

	var settlement *models.Payment
	f.paymentRepo.createFn = func(p *models.Payment) (*models.Payment, error) {
		settlement = p
		return p, nil
	}

	got, err := f.svc.CheckOut(b.ID, &models.Actor{ID: 5, Role: models.UserRoleReceptionist})
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}

	if settlement == nil {
		t.Fatal("expected a settlement payment")
	}
	if settlement.Amount != 180000 {
		t.Fatalf("settlement amount = %v, want 180000", settlement.Amount)
	}
	if settlement.PaymentMethod != models.PaymentMethodOther {
		t.Fatalf("settlement method = %q, want Other", settlement.PaymentMethod)
	}
	if settlement.PayerName == nil || *settlement.PayerName != "System" {
		t.Fatalf("settlement payer = %v, want System", settlement.PayerName)
	}
	if settlement.ReferenceNo == nil || *settlement.ReferenceNo != b.BookingNo {
		t.Fatalf("settlement reference = %v, want %s", settlement.ReferenceNo, b.BookingNo)
	}

	if got.Status != models.BookingStatusCheckedOut {
		t.Fatalf("status = %q, want CheckedOut", got.Status)
	}
	if got.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("payment status = %q, want Paid", got.PaymentStatus)
	}
	if got.Checkout == nil {
		t.Fatal("checkout timestamp not set")
	}
	if len(f.roomRepo.stateCalls) != 1 || f.roomRepo.stateCalls[0] != "1:Available:Dirty" {
		t.Fatalf("room state calls = %v, want [1:Available:Dirty]", f.roomRepo.stateCalls)
	}
}

func TestCheckOutSkipsSettlementWhenPaidInFull(t *testing.T) {
	f := newBookingFixture(t)
	b := reservedBooking()
	b.Status = models.BookingStatusCheckedIn
	f.bookingRepo.getByIDFn = func(int64) (*models.Booking, error) { return b, nil }
	f.detailRepo.sumFn = func(int64) (float64, error) { return 250000, nil }
	f.paymentRepo.sumFn = func(int64) (float64, error) { return 250000, nil }
	f.paymentRepo.createFn = func(p *models.Payment) (*models.Payment, error) {
		t.Fatal("no settlement payment expected when balance is zero")
		return nil, nil
	}

	got, err := f.svc.CheckOut(b.ID, nil)
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if got.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("payment status = %q, want Paid", got.PaymentStatus)
	}
}

func TestCheckOutRequiresCheckedIn(t *testing.T) {
	for _, status := range []string{
		models.BookingStatusReserved,
		models.BookingStatusCheckedOut,
		models.BookingStatusCancelled,
	} {
		t.Run(status, func(t *testing.T) {
			f := newBookingFixture(t)
			b := reservedBooking()
			b.Status = status
			f.bookingRepo.getByIDFn = func(int64) (*models.Booking, error) { return b, nil }

			if _, err := f.svc.CheckOut(b.ID, nil); !errors.Is(err, ErrInvalidBookingStatus) {
				t.Fatalf("err = %v, want ErrInvalidBookingStatus", err)
			}
		})
	}
}

func TestCancelCheckedInReleasesRoom(t *testing.T) {
	f := newBookingFixture(t)
	b := reservedBooking()
	b.Status = models.BookingStatusCheckedIn
	f.bookingRepo.getByIDFn = func(int64) (*models.Booking, error) { return b, nil }

	reason := "guest emergency"
	got, err := f.svc.Cancel(b.ID, CancelBookingRequest{Reason: &reason}, nil)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got.Status != models.BookingStatusCancelled {
		t.Fatalf("status = %q, want Cancelled", got.Status)
	}
	if len(f.roomRepo.stateCalls) != 1 || f.roomRepo.stateCalls[0] != "1:Available:Dirty" {
		t.Fatalf("room state calls = %v, want [1:Available:Dirty]", f.roomRepo.stateCalls)
	}
	if got.Notes == nil || *got.Notes != "Cancelled: guest emergency" {
		t.Fatalf("notes = %v, want cancellation reason recorded", got.Notes)
	}
}

func TestMarkNoShowFromReserved(t *testing.T) {
	f := newBookingFixture(t)
	b := reservedBooking()
	f.bookingRepo.getByIDFn = func(int64) (*models.Booking, error) { return b, nil }

	got, err := f.svc.MarkNoShow(b.ID, nil)
	if err != nil {
		t.Fatalf("MarkNoShow: %v", err)
	}
	if got.Status != models.BookingStatusNoShow {
		t.Fatalf("status = %s, want %s", got.Status, models.BookingStatusNoShow)
	}
	if len(f.roomRepo.stateCalls) != 0 {
		t.Fatalf("room state changed for a reserved booking: %v", f.roomRepo.stateCalls)
	}
}

func TestMarkNoShowCheckedInReleasesRoom(t *testing.T) {
	f := newBookingFixture(t)
	b := reservedBooking()
	b.Status = models.BookingStatusCheckedIn
	f.bookingRepo.getByIDFn = func(int64) (*models.Booking, error) { return b, nil }

	got, err := f.svc.MarkNoShow(b.ID, nil)
	if err != nil {
		t.Fatalf("MarkNoShow: %v", err)
	}
	if got.Status != models.BookingStatusNoShow {
		t.Fatalf("status = %s, want %s", got.Status, models.BookingStatusNoShow)
	}
	want := "1:" + models.RoomStatusAvailable + ":" + models.HousekeepingStatusDirty
	if len(f.roomRepo.stateCalls) != 1 || f.roomRepo.stateCalls[0] != want {
		t.Fatalf("room state calls = %v, want [%s]", f.roomRepo.stateCalls, want)
	}
}

func TestMarkNoShowRejectsTerminalStatuses(t *testing.T) {
	for _, status := range []string{
		models.BookingStatusCheckedOut,
		models.BookingStatusCancelled,
		models.BookingStatusNoShow,
	} {
		t.Run(status, func(t *testing.T) {
			f := newBookingFixture(t)
			b := reservedBooking()
			b.Status = status
			f.bookingRepo.getByIDFn = func(int64) (*models.Booking, error) { return b, nil }

			if _, err := f.svc.MarkNoShow(b.ID, nil); !errors.Is(err, ErrInvalidBookingStatus) {
				t.Fatalf("err = %v, want ErrInvalidBookingStatus", err)
			}
		})
	}
}

func TestDeleteBookingBlockedByPayments(t *testing.T) {
	f := newBookingFixture(t)
	b := reservedBooking()
	f.bookingRepo.getByIDFn = func(int64) (*models.Booking, error) { return b, nil }
	f.paymentRepo.countFn = func(int64) (int, error) { return 2, nil }

	if err := f.svc.DeleteBooking(b.ID); !errors.Is(err, ErrBookingHasPayments) {
		t.Fatalf("err = %v, want ErrBookingHasPayments", err)
	}
}

func TestAddPaymentUpdatesDerivedStatus(t *testing.T) {
	cases := []struct {
		name  string
		total float64
		paid  float64
		want  string
	}{
		{"partial", 100000, 40000, models.PaymentStatusPartial},
		{"paid in full", 100000, 100000, models.PaymentStatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newBookingFixture(t)
			b := reservedBooking()
			f.bookingRepo.getByIDFn = func(int64) (*models.Booking, error) { return b, nil }
			f.detailRepo.sumFn = func(int64) (float64, error) { return tc.total, nil }
			f.paymentRepo.sumFn = func(int64) (float64, error) { return tc.paid, nil }

			_, err := f.svc.AddPayment(b.ID, CreatePaymentRequest{
				PaymentMethod: models.PaymentMethodCash,
				Amount:        tc.paid,
			}, nil)
			if err != nil {
				t.Fatalf("AddPayment: %v", err)
			}
			if b.PaymentStatus != tc.want {
				t.Fatalf("payment status = %q, want %q", b.PaymentStatus, tc.want)
			}
		})
	}
}

func TestAddPaymentRejectsClosedBooking(t *testing.T) {
	f := newBookingFixture(t)
	b := reservedBooking()
	b.Status = models.BookingStatusCheckedOut
	f.bookingRepo.getByIDFn = func(int64) (*models.Booking, error) { return b, nil }

	_, err := f.svc.AddPayment(b.ID, CreatePaymentRequest{
		PaymentMethod: models.PaymentMethodCash,
		Amount:        1000,
	}, nil)
	if !errors.Is(err, ErrInvalidBookingStatus) {
		t.Fatalf("err = %v, want ErrInvalidBookingStatus", err)
	}
}

func TestAddPaymentValidation(t *testing.T) {
	f := newBookingFixture(t)

	if _, err := f.svc.AddPayment(1, CreatePaymentRequest{PaymentMethod: "Barter", Amount: 100}, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown method: err = %v, want ErrValidation", err)
	}
	if _, err := f.svc.AddPayment(1, CreatePaymentRequest{PaymentMethod: models.PaymentMethodCash, Amount: 0}, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero amount: err = %v, want ErrValidation", err)
	}
}

func TestAddBookingDetailServiceRequiresServiceID(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.AddBookingDetail(1, CreateBookingDetailRequest{
		Type:     models.BookingDetailTypeService,
		Quantity: 1,
	}, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestAddBookingDetailComputesAmount(t *testing.T) {
	f := newBookingFixture(t)
	b := reservedBooking()
	f.bookingRepo.getByIDFn = func(int64) (*models.Booking, error) { return b, nil }

	detail, err := f.svc.AddBookingDetail(b.ID, CreateBookingDetailRequest{
		Type:           models.BookingDetailTypeRoom,
		Quantity:       2,
		UnitPrice:      200000,
		DiscountAmount: 50000,
	}, nil)
	if err != nil {
		t.Fatalf("AddBookingDetail: %v", err)
	}
	if detail.Amount != 350000 {
		t.Fatalf("amount = %v, want 350000", detail.Amount)
	}
}

func TestAddBookingDetailRejectsNegativeFigures(t *testing.T) {
	cases := []struct {
		name string
		req  CreateBookingDetailRequest
	}{
		{"negative quantity", CreateBookingDetailRequest{
			Type: models.BookingDetailTypeRoom, Quantity: -1, UnitPrice: 200000,
		}},
		{"negative unit price", CreateBookingDetailRequest{
			Type: models.BookingDetailTypeRoom, Quantity: 2, UnitPrice: -50000,
		}},
		{"negative discount", CreateBookingDetailRequest{
			Type: models.BookingDetailTypeRoom, Quantity: 2, UnitPrice: 200000, DiscountAmount: -10000,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newBookingFixture(t)
			b := reservedBooking()
			f.bookingRepo.getByIDFn = func(int64) (*models.Booking, error) { return b, nil }

			if _, err := f.svc.AddBookingDetail(b.ID, tc.req, nil); !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func strPtr(s string) *string { return &s }
