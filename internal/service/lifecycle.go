package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhinavmaity/ParkIt/internal/model"
	"github.com/abhinavmaity/ParkIt/internal/repository"
)

// BookingStore is the slice of the booking repository the lifecycle
// manager needs.  Every mutation is a conditional write keyed on the
// booking's current state.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (model.Booking, error)
	MarkPaid(ctx context.Context, id, transactionID string) error
	MarkPaymentFailed(ctx context.Context, id string) error
	SetQRCode(ctx context.Context, id, qr string) error
	Transition(ctx context.Context, id string, from, to model.BookingStatus, requirePaid bool) error
	Cancel(ctx context.Context, id string) error
}

// BookingLifecycle owns the booking state machine:
//
//	booked/pending -> booked/paid (+qr) -> checked_in -> completed
//
// with cancellation allowed from booked and checked_in.  All
// transitions are delegated to conditional updates in the store, so a
// transition that loses a race surfaces as ErrInvalidState rather than
// silently overwriting the winner.
type BookingLifecycle struct {
	Spots    SpotStore
	Bookings BookingStore
}

// NewBookingLifecycle constructs a lifecycle manager over the given stores.
func NewBookingLifecycle(spots SpotStore, bookings BookingStore) *BookingLifecycle {
	return &BookingLifecycle{Spots: spots, Bookings: bookings}
}

// CreateBooking validates the request, verifies the spot exists and
// inserts a new booking in the booked/pending state.  The store's
// overlap-checked insert closes the check-then-act race: a concurrent
// create for the same spot and an overlapping window fails with
// ErrConflict instead of double-booking.
func (m *BookingLifecycle) CreateBooking(ctx context.Context, userID uint64, spotID, date, start, end string, amount int64) (model.Booking, error) {
	if userID == 0 || spotID == "" {
		return model.Booking{}, fmt.Errorf("%w: user and spot are required", ErrValidation)
	}
	if err := ValidateWindow(date, start, end); err != nil {
		return model.Booking{}, err
	}
	if amount <= 0 {
		return model.Booking{}, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	spot, err := m.Spots.GetByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, repository.ErrSpotNotFound) {
			return model.Booking{}, fmt.Errorf("%w: spot %s", ErrNotFound, spotID)
		}
		return model.Booking{}, fmt.Errorf("%w: %v", ErrCollaborator, err)
	}

	b := model.Booking{
		UserID:      userID,
		SpotID:      spot.ID,
		SpotNumber:  spot.SpotNumber,
		BookingDate: date,
		StartTime:   start,
		EndTime:     end,
		Amount:      amount,
	}
	if err := m.Bookings.Create(ctx, &b); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return model.Booking{}, fmt.Errorf("%w: spot %s is taken for %s %s-%s", ErrConflict, spot.SpotNumber, date, start, end)
		}
		return model.Booking{}, fmt.Errorf("%w: %v", ErrCollaborator, err)
	}
	return b, nil
}

// ConfirmPayment marks a pending booking as paid and records the
// external transaction reference.  A booking that is already paid,
// cancelled or completed cannot be confirmed again.
func (m *BookingLifecycle) ConfirmPayment(ctx context.Context, bookingID, transactionID string) error {
	if bookingID == "" || transactionID == "" {
		return fmt.Errorf("%w: booking and transaction ids are required", ErrValidation)
	}
	return m.mapTransitionErr(m.Bookings.MarkPaid(ctx, bookingID, transactionID))
}

// RecordPaymentFailure flags a declined payment attempt on a booking
// that is still awaiting payment.  The booking stays open for a retry;
// paid, cancelled and completed bookings reject the write.
func (m *BookingLifecycle) RecordPaymentFailure(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return fmt.Errorf("%w: booking id is required", ErrValidation)
	}
	return m.mapTransitionErr(m.Bookings.MarkPaymentFailed(ctx, bookingID))
}

// IssueQR attaches the serialized QR credential to a booking.  Payment
// must already be confirmed; that invariant is also enforced by the
// store's conditional write, so the QR can never precede payment even
// under concurrent callers.
func (m *BookingLifecycle) IssueQR(ctx context.Context, bookingID, payload string) error {
	if bookingID == "" || payload == "" {
		return fmt.Errorf("%w: booking id and payload are required", ErrValidation)
	}
	b, err := m.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		return fmt.Errorf("%w: %v", ErrCollaborator, err)
	}
	if b.PaymentStatus != model.PaymentPaid {
		return fmt.Errorf("%w: payment not completed for booking %s", ErrPrecondition, bookingID)
	}
	err = m.Bookings.SetQRCode(ctx, bookingID, payload)
	if errors.Is(err, repository.ErrNoTransition) {
		return fmt.Errorf("%w: payment not completed for booking %s", ErrPrecondition, bookingID)
	}
	return m.mapTransitionErr(err)
}

// AdvanceToCheckedIn admits the vehicle: booked -> checked_in.  Only a
// paid booking can be admitted.
func (m *BookingLifecycle) AdvanceToCheckedIn(ctx context.Context, bookingID string) error {
	return m.mapTransitionErr(
		m.Bookings.Transition(ctx, bookingID, model.StatusBooked, model.StatusCheckedIn, true))
}

// AdvanceToCompleted releases the vehicle: checked_in -> completed.
func (m *BookingLifecycle) AdvanceToCompleted(ctx context.Context, bookingID string) error {
	return m.mapTransitionErr(
		m.Bookings.Transition(ctx, bookingID, model.StatusCheckedIn, model.StatusCompleted, false))
}

// Cancel moves a booking to cancelled from booked or checked_in.
// Cancellation does not touch the spot's coarse status: bookability is
// derived from the bookings table, so releasing the window is implicit.
func (m *BookingLifecycle) Cancel(ctx context.Context, bookingID string) error {
	return m.mapTransitionErr(m.Bookings.Cancel(ctx, bookingID))
}

// Get loads a booking, translating repository sentinels.
func (m *BookingLifecycle) Get(ctx context.Context, bookingID string) (model.Booking, error) {
	b, err := m.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return model.Booking{}, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		return model.Booking{}, fmt.Errorf("%w: %v", ErrCollaborator, err)
	}
	return b, nil
}

func (m *BookingLifecycle) mapTransitionErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrBookingNotFound):
		return fmt.Errorf("%w: booking", ErrNotFound)
	case errors.Is(err, repository.ErrNoTransition):
		return fmt.Errorf("%w: transition not allowed from current state", ErrInvalidState)
	default:
		return fmt.Errorf("%w: %v", ErrCollaborator, err)
	}
}
