package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/abhinavmaity/ParkIt/internal/model"
)

// TransactionRepo encapsulates database operations for transactions.
// Rows are append-only: they are inserted once per payment attempt and
// never updated except for status finalisation.
type TransactionRepo struct {
	db *sql.DB
}

// NewTransactionRepo constructs a TransactionRepo given a DB handle.
func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

const txnColumns = `id, user_id, booking_id, amount, payment_method, transaction_id, status, created_at`

func scanTxn(row interface{ Scan(...any) error }) (model.Transaction, error) {
	var t model.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.BookingID, &t.Amount, &t.PaymentMethod,
		&t.TransactionID, &t.Status, &t.CreatedAt)
	return t, err
}

// Create inserts a transaction record and fills in its generated row id.
func (r *TransactionRepo) Create(ctx context.Context, t *model.Transaction) error {
	t.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, booking_id, amount, payment_method, transaction_id, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.BookingID, t.Amount, t.PaymentMethod, t.TransactionID, t.Status)
	return err
}

// UpdateStatus finalises a pending transaction row to completed or
// failed.  Rows only move off pending, so a finalised status is never
// rewritten.  Returns ErrTransactionNotFound when no pending row
// matches the external id.
func (r *TransactionRepo) UpdateStatus(ctx context.Context, transactionID string, status model.TransactionStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET status = ? WHERE transaction_id = ? AND status = 'pending'`,
		status, transactionID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// GetByTransactionID looks a transaction up by its external id.  This is
// the read behind payment verification; it never mutates state, so
// verification stays idempotent.  Returns ErrTransactionNotFound when
// no row matches.
func (r *TransactionRepo) GetByTransactionID(ctx context.Context, transactionID string) (model.Transaction, error) {
	t, err := scanTxn(r.db.QueryRowContext(ctx,
		`SELECT `+txnColumns+` FROM transactions WHERE transaction_id = ? LIMIT 1`, transactionID))
	if err == sql.ErrNoRows {
		return model.Transaction{}, ErrTransactionNotFound
	}
	return t, err
}

// ListAll returns every transaction, newest first.  Admin only.
func (r *TransactionRepo) ListAll(ctx context.Context) ([]model.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+txnColumns+` FROM transactions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var txns []model.Transaction
	for rows.Next() {
		t, err := scanTxn(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return txns, nil
}
