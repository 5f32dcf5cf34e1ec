package repositories

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"hms_backend/internal/models"
)

const roomBookedQuery = `SELECT COUNT(*) FROM bookings
	          WHERE room_id = $1
	            AND status NOT IN ($2, $3, $4)
	            AND ($6::timestamptz IS NULL OR checkin < $6)
	            AND (checkout IS NULL OR checkout > $5)`

func newMockDB(t *testing.T) (BookingRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewBookingRepository(db), mock
}

func TestIsRoomBookedOverlapQuery(t *testing.T) {
	repo, mock := newMockDB(t)
	checkin := time.Date(2025, 9, 10, 14, 0, 0, 0, time.UTC)
	checkout := checkin.AddDate(0, 0, 2)

	// Terminal statuses must be excluded and the interval comparison must be
	// strict on both ends so back-to-back stays do not collide.
	mock.ExpectQuery(regexp.QuoteMeta(roomBookedQuery)).
		WithArgs(
			int64(1),
			models.BookingStatusCheckedOut, models.BookingStatusCancelled, models.BookingStatusNoShow,
			checkin, checkout,
		).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	booked, err := repo.IsRoomBooked(nil, 1, checkin, &checkout, nil)
	if err != nil {
		t.Fatalf("IsRoomBooked: %v", err)
	}
	if !booked {
		t.Fatal("booked = false, want true")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestIsRoomBookedOpenEndedStay(t *testing.T) {
	repo, mock := newMockDB(t)
	checkin := time.Date(2025, 9, 10, 14, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(roomBookedQuery)).
		WithArgs(
			int64(1),
			models.BookingStatusCheckedOut, models.BookingStatusCancelled, models.BookingStatusNoShow,
			checkin, nil,
		).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	booked, err := repo.IsRoomBooked(nil, 1, checkin, nil, nil)
	if err != nil {
		t.Fatalf("IsRoomBooked: %v", err)
	}
	if booked {
		t.Fatal("booked = true, want false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestIsRoomBookedExcludesOwnBooking(t *testing.T) {
	repo, mock := newMockDB(t)
	checkin := time.Date(2025, 9, 10, 14, 0, 0, 0, time.UTC)
	checkout := checkin.AddDate(0, 0, 1)
	excludeID := int64(7)

	mock.ExpectQuery(regexp.QuoteMeta(roomBookedQuery+" AND id <> $7")).
		WithArgs(
			int64(1),
			models.BookingStatusCheckedOut, models.BookingStatusCancelled, models.BookingStatusNoShow,
			checkin, checkout, excludeID,
		).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	booked, err := repo.IsRoomBooked(nil, 1, checkin, &checkout, &excludeID)
	if err != nil {
		t.Fatalf("IsRoomBooked: %v", err)
	}
	if booked {
		t.Fatal("booked = true, want false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestMaxBookingNoPrefixFilter(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT MAX(booking_no) FROM bookings WHERE booking_no LIKE $1`)).
		WithArgs("BKG250910%").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow("BKG250910007"))

	maxNo, err := repo.MaxBookingNo(nil, "BKG250910")
	if err != nil {
		t.Fatalf("MaxBookingNo: %v", err)
	}
	if maxNo == nil || *maxNo != "BKG250910007" {
		t.Fatalf("maxNo = %v, want BKG250910007", maxNo)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestMaxBookingNoEmptyDay(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT MAX(booking_no) FROM bookings WHERE booking_no LIKE $1`)).
		WithArgs("BKG250910%").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	maxNo, err := repo.MaxBookingNo(nil, "BKG250910")
	if err != nil {
		t.Fatalf("MaxBookingNo: %v", err)
	}
	if maxNo != nil {
		t.Fatalf("maxNo = %v, want nil", maxNo)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
