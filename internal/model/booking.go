package model

import (
	"fmt"
	"time"
)

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusBooked    BookingStatus = "booked"
	StatusCheckedIn BookingStatus = "checked_in"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// validTransitions defines the state machine for booking status transitions.
// A booking advances booked -> checked_in -> completed, or moves to
// cancelled from booked or checked_in.  completed and cancelled are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusBooked:    {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValid returns true if the status is a recognised booking status.
func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo returns true if a transition from this status to the
// target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	allowed, ok := validTransitions[s]
	if !ok {
		return true
	}
	return len(allowed) == 0
}

// IsActive returns true while the booking still occupies its window,
// i.e. it counts against availability.
func (s BookingStatus) IsActive() bool {
	return s == StatusBooked || s == StatusCheckedIn
}

// String returns the string representation of the status.
func (s BookingStatus) String() string { return string(s) }

// ParseBookingStatus converts a string to a BookingStatus.
func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return st, nil
}

// PaymentStatus tracks whether a booking has been paid for.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// IsValid reports whether p is a recognised payment status.
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// Booking is a reservation of a spot for a date/time window as stored
// in the `bookings` table.  Times are half-open: a booking occupies
// [StartTime, EndTime).
//
// Fields:
//  ID            – primary key (UUID string).
//  UserID        – user who created the booking.
//  SpotID        – referenced parking spot.
//  BookingDate   – date of the reservation (YYYY-MM-DD).
//  StartTime     – window start (HH:MM, inclusive).
//  EndTime       – window end (HH:MM, exclusive).
//  Amount        – amount charged in whole currency units.
//  Status        – lifecycle state (booked, checked_in, completed, cancelled).
//  PaymentStatus – payment state (pending, paid, failed).
//  TransactionID – external payment reference, set once paid.
//  QRCode        – serialized QR credential, set only after payment.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Booking struct {
	ID            string        // bookings.id
	UserID        uint64        // bookings.user_id
	SpotID        string        // bookings.spot_id
	SpotNumber    string        // joined from parking_spots (read paths only)
	BookingDate   string        // bookings.booking_date
	StartTime     string        // bookings.start_time
	EndTime       string        // bookings.end_time
	Amount        int64         // bookings.amount
	Status        BookingStatus // bookings.status
	PaymentStatus PaymentStatus // bookings.payment_status
	TransactionID *string       // bookings.transaction_id (nullable)
	QRCode        *string       // bookings.qr_code (nullable)
	CreatedAt     time.Time     // bookings.created_at
	UpdatedAt     time.Time     // bookings.updated_at
}

// BookingSummary aggregates bookings for the admin overview.
type BookingSummary struct {
	Total     int   `json:"total"`
	Active    int   `json:"active"`
	Completed int   `json:"completed"`
	Cancelled int   `json:"cancelled"`
	Revenue   int64 `json:"revenue"`
}
