package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavmaity/ParkIt/internal/model"
)

func lifecycleFixture() (*fakeBookingStore, *BookingLifecycle) {
	spots := newFakeSpotStore(
		model.ParkingSpot{ID: "s1", SpotNumber: "A-01", Status: model.SpotAvailable, HourlyRate: 40},
	)
	bookings := newFakeBookingStore()
	return bookings, NewBookingLifecycle(spots, bookings)
}

func TestCreateBookingValidation(t *testing.T) {
	_, lc := lifecycleFixture()
	ctx := context.Background()

	cases := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{"missing user", func() error {
			_, err := lc.CreateBooking(ctx, 0, "s1", "2026-09-01", "09:00", "12:00", 120)
			return err
		}, ErrValidation},
		{"missing spot", func() error {
			_, err := lc.CreateBooking(ctx, 7, "", "2026-09-01", "09:00", "12:00", 120)
			return err
		}, ErrValidation},
		{"inverted window", func() error {
			_, err := lc.CreateBooking(ctx, 7, "s1", "2026-09-01", "12:00", "09:00", 120)
			return err
		}, ErrValidation},
		{"zero amount", func() error {
			_, err := lc.CreateBooking(ctx, 7, "s1", "2026-09-01", "09:00", "12:00", 0)
			return err
		}, ErrValidation},
		{"unknown spot", func() error {
			_, err := lc.CreateBooking(ctx, 7, "nope", "2026-09-01", "09:00", "12:00", 120)
			return err
		}, ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.run(), tc.wantErr)
		})
	}
}

func TestCreateBookingStartsPendingAndUnpaid(t *testing.T) {
	_, lc := lifecycleFixture()

	b, err := lc.CreateBooking(context.Background(), 7, "s1", "2026-09-01", "09:00", "12:00", 120)
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, model.StatusBooked, b.Status)
	assert.Equal(t, model.PaymentPending, b.PaymentStatus)
	assert.Equal(t, "A-01", b.SpotNumber)
	assert.Nil(t, b.QRCode)
}

func TestCreateBookingConflict(t *testing.T) {
	_, lc := lifecycleFixture()
	ctx := context.Background()

	_, err := lc.CreateBooking(ctx, 7, "s1", "2026-09-01", "09:00", "12:00", 120)
	require.NoError(t, err)

	// Overlapping window on the same spot loses.
	_, err = lc.CreateBooking(ctx, 8, "s1", "2026-09-01", "11:00", "13:00", 80)
	assert.ErrorIs(t, err, ErrConflict)

	// Adjacent window wins: the interval is half-open.
	_, err = lc.CreateBooking(ctx, 8, "s1", "2026-09-01", "12:00", "14:00", 80)
	assert.NoError(t, err)
}

func TestFullLifecycle(t *testing.T) {
	store, lc := lifecycleFixture()
	ctx := context.Background()

	b, err := lc.CreateBooking(ctx, 7, "s1", "2026-09-01", "09:00", "12:00", 120)
	require.NoError(t, err)

	// Entry before payment is rejected.
	assert.ErrorIs(t, lc.AdvanceToCheckedIn(ctx, b.ID), ErrInvalidState)

	// The credential cannot precede payment either.
	assert.ErrorIs(t, lc.IssueQR(ctx, b.ID, "payload"), ErrPrecondition)

	require.NoError(t, lc.ConfirmPayment(ctx, b.ID, "UPIABCDEF123456"))
	got, _ := store.GetByID(ctx, b.ID)
	assert.Equal(t, model.PaymentPaid, got.PaymentStatus)
	require.NotNil(t, got.TransactionID)
	assert.Equal(t, "UPIABCDEF123456", *got.TransactionID)

	// Double confirmation is rejected.
	assert.ErrorIs(t, lc.ConfirmPayment(ctx, b.ID, "UPIABCDEF123456"), ErrInvalidState)

	require.NoError(t, lc.IssueQR(ctx, b.ID, "payload"))

	require.NoError(t, lc.AdvanceToCheckedIn(ctx, b.ID))
	// Re-entry is rejected: the booking is no longer in booked.
	assert.ErrorIs(t, lc.AdvanceToCheckedIn(ctx, b.ID), ErrInvalidState)

	require.NoError(t, lc.AdvanceToCompleted(ctx, b.ID))
	got, _ = store.GetByID(ctx, b.ID)
	assert.Equal(t, model.StatusCompleted, got.Status)

	// Terminal bookings cannot move.
	assert.ErrorIs(t, lc.AdvanceToCompleted(ctx, b.ID), ErrInvalidState)
	assert.ErrorIs(t, lc.Cancel(ctx, b.ID), ErrInvalidState)
}

func TestCancelFromActiveStates(t *testing.T) {
	store, lc := lifecycleFixture()
	ctx := context.Background()

	// Cancel from booked, payment still pending.
	b1, err := lc.CreateBooking(ctx, 7, "s1", "2026-09-01", "09:00", "12:00", 120)
	require.NoError(t, err)
	require.NoError(t, lc.Cancel(ctx, b1.ID))

	// The cancelled window frees up immediately.
	b2, err := lc.CreateBooking(ctx, 8, "s1", "2026-09-01", "09:00", "12:00", 120)
	require.NoError(t, err)

	// Cancel from checked_in.
	require.NoError(t, lc.ConfirmPayment(ctx, b2.ID, "CARD123456789ABC"))
	require.NoError(t, lc.AdvanceToCheckedIn(ctx, b2.ID))
	require.NoError(t, lc.Cancel(ctx, b2.ID))
	got, _ := store.GetByID(ctx, b2.ID)
	assert.Equal(t, model.StatusCancelled, got.Status)
}

func TestLifecycleUnknownBooking(t *testing.T) {
	_, lc := lifecycleFixture()
	ctx := context.Background()

	_, err := lc.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, lc.ConfirmPayment(ctx, "nope", "TXN123456789ABC"), ErrNotFound)
	assert.ErrorIs(t, lc.AdvanceToCheckedIn(ctx, "nope"), ErrNotFound)
	assert.ErrorIs(t, lc.Cancel(ctx, "nope"), ErrNotFound)
	assert.ErrorIs(t, lc.IssueQR(ctx, "nope", "payload"), ErrNotFound)
}
