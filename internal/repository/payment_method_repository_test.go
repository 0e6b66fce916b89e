package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavmaity/ParkIt/internal/model"
)

func newPaymentMethodRepo(t *testing.T) (*PaymentMethodRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPaymentMethodRepo(db), mock
}

func TestPaymentMethodCreateDefaultDemotesPrevious(t *testing.T) {
	repo, mock := newPaymentMethodRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payment_methods SET is_default = FALSE").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payment_methods").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m := model.PaymentMethod{UserID: 7, PaymentType: "upi", IsDefault: true}
	require.NoError(t, repo.Create(context.Background(), &m))
	assert.NotEmpty(t, m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentMethodCreateNonDefaultSkipsDemotion(t *testing.T) {
	repo, mock := newPaymentMethodRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payment_methods").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m := model.PaymentMethod{UserID: 7, PaymentType: "card"}
	require.NoError(t, repo.Create(context.Background(), &m))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentMethodSetDefaultUnknownID(t *testing.T) {
	repo, mock := newPaymentMethodRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payment_methods SET is_default = FALSE").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE payment_methods SET is_default = TRUE").
		WithArgs("ghost", uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.SetDefault(context.Background(), 7, "ghost")
	assert.ErrorIs(t, err, ErrPaymentMethodNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentMethodDeleteEnforcesOwnership(t *testing.T) {
	repo, mock := newPaymentMethodRepo(t)

	mock.ExpectExec("DELETE FROM payment_methods").
		WithArgs("pm1", uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 9, "pm1")
	assert.ErrorIs(t, err, ErrPaymentMethodNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
