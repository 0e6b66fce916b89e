package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavmaity/ParkIt/internal/model"
)

func newBookingRepo(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBookingRepo(db), mock
}

func bookingRows(id string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "spot_id", "spot_number", "booking_date",
		"start_time", "end_time", "amount", "status", "payment_status",
		"transaction_id", "qr_code", "created_at", "updated_at",
	}).AddRow(id, 7, "s1", "A-01", "2026-09-01",
		"09:00", "12:00", 120, "booked", "pending",
		nil, nil, now, now)
}

func TestCreateRechecksOverlapInsideTransaction(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs("s1", "2026-09-01", "12:00", "09:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	b := model.Booking{UserID: 7, SpotID: "s1", BookingDate: "2026-09-01",
		StartTime: "09:00", EndTime: "12:00", Amount: 120}
	require.NoError(t, repo.Create(context.Background(), &b))
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, model.StatusBooked, b.Status)
	assert.Equal(t, model.PaymentPending, b.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLosesRaceAndRollsBack(t *testing.T) {
	repo, mock := newBookingRepo(t)

	// A concurrent insert already holds the window: the locked recheck
	// sees it and the transaction rolls back without inserting.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs("s1", "2026-09-01", "12:00", "09:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	b := model.Booking{UserID: 7, SpotID: "s1", BookingDate: "2026-09-01",
		StartTime: "09:00", EndTime: "12:00", Amount: 120}
	err := repo.Create(context.Background(), &b)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectQuery("SELECT .+ FROM bookings b JOIN parking_spots s").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaidConditionalUpdate(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectExec("UPDATE bookings SET payment_status = 'paid'").
		WithArgs("UPIABCDEF123456", "b1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkPaid(context.Background(), "b1", "UPIABCDEF123456"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaidZeroRowsProbesExistence(t *testing.T) {
	repo, mock := newBookingRepo(t)

	// Booking exists but is not booked/pending: the guard rejects.
	mock.ExpectExec("UPDATE bookings SET payment_status = 'paid'").
		WithArgs("UPIABCDEF123456", "b1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM bookings WHERE id = ?").
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	err := repo.MarkPaid(context.Background(), "b1", "UPIABCDEF123456")
	assert.ErrorIs(t, err, ErrNoTransition)

	// Unknown booking: the probe finds nothing.
	mock.ExpectExec("UPDATE bookings SET payment_status = 'paid'").
		WithArgs("UPIABCDEF123456", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM bookings WHERE id = ?").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	err = repo.MarkPaid(context.Background(), "ghost", "UPIABCDEF123456")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaidRetriesAfterFailedAttempt(t *testing.T) {
	repo, mock := newBookingRepo(t)

	// The guard accepts both pending and failed, so a declined attempt
	// does not block a retry.
	mock.ExpectExec(`UPDATE bookings SET payment_status = 'paid'.+payment_status IN \('pending', 'failed'\)`).
		WithArgs("UPIABCDEF123456", "b1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkPaid(context.Background(), "b1", "UPIABCDEF123456"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaymentFailedFlagsUnpaidBooking(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectExec(`UPDATE bookings SET payment_status = 'failed'`).
		WithArgs("b1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkPaymentFailed(context.Background(), "b1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionRequirePaidAddsGuard(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectExec(`UPDATE bookings SET status = .+ AND payment_status = 'paid'`).
		WithArgs("checked_in", "b1", "booked").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Transition(context.Background(), "b1", model.StatusBooked, model.StatusCheckedIn, true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelFromEitherActiveState(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectExec(`UPDATE bookings SET status = 'cancelled'`).
		WithArgs("b1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), "b1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetQRCodeRequiresPaid(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectExec(`UPDATE bookings SET qr_code = .+ payment_status = 'paid'`).
		WithArgs("payload", "b1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM bookings WHERE id = ?").
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	err := repo.SetQRCode(context.Background(), "b1", "payload")
	assert.ErrorIs(t, err, ErrNoTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountOverlappingParamOrder(t *testing.T) {
	repo, mock := newBookingRepo(t)

	// The predicate is start_time < requestEnd AND requestStart < end_time,
	// so the bound args are (spot, date, end, start).
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs("s1", "2026-09-01", "13:00", "11:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	n, err := repo.CountOverlapping(context.Background(), "s1", "2026-09-01", "11:00", "13:00")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDScansNullableColumns(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectQuery("SELECT .+ FROM bookings b JOIN parking_spots s").
		WithArgs("b1").
		WillReturnRows(bookingRows("b1"))

	b, err := repo.GetByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, "A-01", b.SpotNumber)
	assert.Nil(t, b.TransactionID)
	assert.Nil(t, b.QRCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryAggregates(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\),").
		WillReturnRows(sqlmock.NewRows([]string{"total", "active", "completed", "cancelled", "revenue"}).
			AddRow(10, 3, 5, 2, 940))

	s, err := repo.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, s.Total)
	assert.Equal(t, 3, s.Active)
	assert.Equal(t, 5, s.Completed)
	assert.Equal(t, 2, s.Cancelled)
	assert.Equal(t, int64(940), s.Revenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}
