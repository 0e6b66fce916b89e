package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/abhinavmaity/ParkIt/internal/model"
)

// BookingRepo encapsulates database operations for bookings.  Every
// status mutation is a conditional UPDATE whose WHERE clause names the
// expected source state, so concurrent writers cannot regress a
// booking or skip a lifecycle step: exactly one of two racing updates
// observes the expected state and wins.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo given a DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for multi-repository transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `b.id, b.user_id, b.spot_id, s.spot_number, b.booking_date,
	TIME_FORMAT(b.start_time, '%H:%i'), TIME_FORMAT(b.end_time, '%H:%i'),
	b.amount, b.status, b.payment_status, b.transaction_id, b.qr_code, b.created_at, b.updated_at`

const bookingFrom = ` FROM bookings b JOIN parking_spots s ON s.id = b.spot_id `

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var (
		b     model.Booking
		txnID sql.NullString
		qr    sql.NullString
	)
	err := row.Scan(&b.ID, &b.UserID, &b.SpotID, &b.SpotNumber, &b.BookingDate,
		&b.StartTime, &b.EndTime, &b.Amount, &b.Status, &b.PaymentStatus,
		&txnID, &qr, &b.CreatedAt, &b.UpdatedAt)
	if txnID.Valid {
		b.TransactionID = &txnID.String
	}
	if qr.Valid {
		b.QRCode = &qr.String
	}
	return b, err
}

// CountOverlapping counts active (booked or checked_in) bookings on the
// given spot and date whose half-open [start_time, end_time) window
// intersects [start, end).  Two windows overlap iff s1 < e2 AND s2 < e1.
func (r *BookingRepo) CountOverlapping(ctx context.Context, spotID, date, start, end string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE spot_id = ? AND booking_date = ?
		   AND status IN ('booked', 'checked_in')
		   AND start_time < ? AND ? < end_time`,
		spotID, date, end, start).Scan(&n)
	return n, err
}

// Create inserts a new booking after re-checking the overlap predicate
// inside a transaction.  The SELECT ... FOR UPDATE locks the competing
// active rows for the spot/date so two concurrent creates for an
// overlapping window cannot both pass the check; the loser gets
// ErrConflict.  The booking starts as booked/pending.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var n int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE spot_id = ? AND booking_date = ?
		   AND status IN ('booked', 'checked_in')
		   AND start_time < ? AND ? < end_time
		 FOR UPDATE`,
		b.SpotID, b.BookingDate, b.EndTime, b.StartTime).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}

	b.ID = uuid.NewString()
	b.Status = model.StatusBooked
	b.PaymentStatus = model.PaymentPending
	_, err = tx.ExecContext(ctx,
		`INSERT INTO bookings (id, user_id, spot_id, booking_date, start_time, end_time, amount, status, payment_status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.SpotID, b.BookingDate, b.StartTime, b.EndTime, b.Amount, b.Status, b.PaymentStatus)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID fetches a booking with its spot number joined in.  Returns
// ErrBookingNotFound when the id does not exist.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+bookingFrom+`WHERE b.id = ? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// ListByUser returns all bookings created by a user, newest date first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingColumns+bookingFrom+`WHERE b.user_id = ? ORDER BY b.booking_date DESC, b.start_time DESC`,
		userID)
}

// ListAll returns every booking, newest date first.  Admin only.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingColumns+bookingFrom+`ORDER BY b.booking_date DESC, b.start_time DESC`)
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var bookings []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

// MarkPaid records a confirmed payment on an unpaid booking.  The
// conditional WHERE guarantees a booking is marked paid at most once
// and never after cancellation or completion; a booking whose last
// attempt failed may still be paid on retry.
func (r *BookingRepo) MarkPaid(ctx context.Context, id, transactionID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_status = 'paid', transaction_id = ?, updated_at = NOW()
		 WHERE id = ? AND status = 'booked' AND payment_status IN ('pending', 'failed')`,
		transactionID, id)
	if err != nil {
		return err
	}
	return r.transitionResult(ctx, res, id)
}

// MarkPaymentFailed records a declined payment attempt on an unpaid
// booking.  Repeat declines match the guard again, so the write is
// idempotent until the booking is paid or closed.
func (r *BookingRepo) MarkPaymentFailed(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_status = 'failed', updated_at = NOW()
		 WHERE id = ? AND status = 'booked' AND payment_status IN ('pending', 'failed')`,
		id)
	if err != nil {
		return err
	}
	return r.transitionResult(ctx, res, id)
}

// SetQRCode attaches the serialized QR credential to a booking.  The
// payment_status guard enforces the payment-before-QR invariant at the
// write itself, not just in the caller.
func (r *BookingRepo) SetQRCode(ctx context.Context, id, qr string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET qr_code = ?, updated_at = NOW()
		 WHERE id = ? AND payment_status = 'paid'`,
		qr, id)
	if err != nil {
		return err
	}
	return r.transitionResult(ctx, res, id)
}

// Transition advances a booking from one lifecycle status to another.
// When requirePaid is set the update additionally demands
// payment_status = 'paid' (entry scans must not admit unpaid bookings).
// Returns ErrNoTransition when the booking exists but was not in the
// expected source state, ErrBookingNotFound when it does not exist.
func (r *BookingRepo) Transition(ctx context.Context, id string, from, to model.BookingStatus, requirePaid bool) error {
	query := `UPDATE bookings SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?`
	args := []any{to, id, from}
	if requirePaid {
		query += ` AND payment_status = 'paid'`
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return r.transitionResult(ctx, res, id)
}

// Cancel moves a booking to cancelled from either active state.
func (r *BookingRepo) Cancel(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = 'cancelled', updated_at = NOW()
		 WHERE id = ? AND status IN ('booked', 'checked_in')`,
		id)
	if err != nil {
		return err
	}
	return r.transitionResult(ctx, res, id)
}

// transitionResult maps a zero-row conditional update to either
// ErrBookingNotFound (no such booking) or ErrNoTransition (booking
// exists but the WHERE precondition did not hold).
func (r *BookingRepo) transitionResult(ctx context.Context, res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ? LIMIT 1`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}
	return ErrNoTransition
}

// Summary aggregates counts and paid revenue across all bookings for
// the admin overview.
func (r *BookingRepo) Summary(ctx context.Context) (model.BookingSummary, error) {
	var s model.BookingSummary
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(status IN ('booked', 'checked_in')), 0),
		        COALESCE(SUM(status = 'completed'), 0),
		        COALESCE(SUM(status = 'cancelled'), 0),
		        COALESCE(SUM(CASE WHEN payment_status = 'paid' THEN amount ELSE 0 END), 0)
		 FROM bookings`).
		Scan(&s.Total, &s.Active, &s.Completed, &s.Cancelled, &s.Revenue)
	return s, err
}
