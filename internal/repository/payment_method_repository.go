package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/abhinavmaity/ParkIt/internal/model"
)

// PaymentMethodRepo encapsulates database operations for saved payment
// methods.  Ownership is enforced here, as in VehicleRepo.  The
// single-default invariant is kept by clearing the user's existing
// default in the same transaction that sets a new one.
type PaymentMethodRepo struct {
	db *sql.DB
}

// NewPaymentMethodRepo constructs a PaymentMethodRepo given a DB handle.
func NewPaymentMethodRepo(db *sql.DB) *PaymentMethodRepo { return &PaymentMethodRepo{db: db} }

const paymentMethodColumns = `id, user_id, payment_type, card_network, card_last_four, nickname, expiry_date, is_default, created_at, updated_at`

func scanPaymentMethod(row interface{ Scan(...any) error }) (model.PaymentMethod, error) {
	var (
		m        model.PaymentMethod
		network  sql.NullString
		lastFour sql.NullString
		nickname sql.NullString
		expiry   sql.NullString
	)
	err := row.Scan(&m.ID, &m.UserID, &m.PaymentType, &network, &lastFour, &nickname, &expiry,
		&m.IsDefault, &m.CreatedAt, &m.UpdatedAt)
	if network.Valid {
		m.CardNetwork = &network.String
	}
	if lastFour.Valid {
		m.CardLastFour = &lastFour.String
	}
	if nickname.Valid {
		m.Nickname = &nickname.String
	}
	if expiry.Valid {
		m.ExpiryDate = &expiry.String
	}
	return m, err
}

// ListByUser returns a user's saved payment methods, newest first.
func (r *PaymentMethodRepo) ListByUser(ctx context.Context, userID uint64) ([]model.PaymentMethod, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentMethodColumns+` FROM payment_methods WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var methods []model.PaymentMethod
	for rows.Next() {
		m, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return methods, nil
}

// Create saves a payment method and fills in its generated id.  When
// the new method is marked default, the user's previous default is
// cleared in the same transaction.
func (r *PaymentMethodRepo) Create(ctx context.Context, m *model.PaymentMethod) error {
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

	if m.IsDefault {
		if _, err := tx.ExecContext(ctx,
			`UPDATE payment_methods SET is_default = FALSE, updated_at = NOW()
			 WHERE user_id = ? AND is_default = TRUE`, m.UserID); err != nil {
			return err
		}
	}

	m.ID = uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO payment_methods (id, user_id, payment_type, card_network, card_last_four, nickname, expiry_date, is_default)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.PaymentType, m.CardNetwork, m.CardLastFour, m.Nickname, m.ExpiryDate, m.IsDefault); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// SetDefault marks one of the user's methods as default and clears the
// previous default atomically.  Returns ErrPaymentMethodNotFound when
// the id is not owned by the user.
func (r *PaymentMethodRepo) SetDefault(ctx context.Context, userID uint64, id string) error {
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

	if _, err := tx.ExecContext(ctx,
		`UPDATE payment_methods SET is_default = FALSE, updated_at = NOW()
		 WHERE user_id = ? AND is_default = TRUE`, userID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE payment_methods SET is_default = TRUE, updated_at = NOW()
		 WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPaymentMethodNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Delete removes a payment method owned by the given user.
func (r *PaymentMethodRepo) Delete(ctx context.Context, userID uint64, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM payment_methods WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPaymentMethodNotFound
	}
	return nil
}
