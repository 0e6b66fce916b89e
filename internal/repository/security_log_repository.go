package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/abhinavmaity/ParkIt/internal/model"
)

// SecurityLogRepo provides append and read access to the security_logs
// table.  The table is append-only: there are no update or delete
// operations.
type SecurityLogRepo struct {
	db *sql.DB
}

// NewSecurityLogRepo constructs a SecurityLogRepo given a DB handle.
func NewSecurityLogRepo(db *sql.DB) *SecurityLogRepo { return &SecurityLogRepo{db: db} }

// Append writes one entry/exit audit record.
func (r *SecurityLogRepo) Append(ctx context.Context, bookingID, spotNumber string, action model.ScanAction, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO security_logs (id, booking_id, spot_number, action, timestamp) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), bookingID, spotNumber, action, at.UTC())
	return err
}

// Recent returns the latest audit records, newest first.
func (r *SecurityLogRepo) Recent(ctx context.Context, limit int) ([]model.SecurityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, booking_id, spot_number, action, timestamp, created_at
		 FROM security_logs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var logs []model.SecurityLog
	for rows.Next() {
		var l model.SecurityLog
		if err := rows.Scan(&l.ID, &l.BookingID, &l.SpotNumber, &l.Action, &l.Timestamp, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// CountForBooking returns the number of audit rows for one booking and
// action.  Backs the scan counts on the admin booking detail view.
func (r *SecurityLogRepo) CountForBooking(ctx context.Context, bookingID string, action model.ScanAction) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM security_logs WHERE booking_id = ? AND action = ?`,
		bookingID, action).Scan(&n)
	return n, err
}
