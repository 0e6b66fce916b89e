package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavmaity/ParkIt/internal/model"
)

func newTransactionRepo(t *testing.T) (*TransactionRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTransactionRepo(db), mock
}

func TestUpdateStatusFinalisesPendingRow(t *testing.T) {
	repo, mock := newTransactionRepo(t)

	mock.ExpectExec(`UPDATE transactions SET status = .+ AND status = 'pending'`).
		WithArgs("completed", "UPIABCDEF123456").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "UPIABCDEF123456", model.TxnCompleted)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNeverRewritesFinalisedRow(t *testing.T) {
	repo, mock := newTransactionRepo(t)

	// The row is already completed or failed: the pending guard matches
	// nothing.
	mock.ExpectExec(`UPDATE transactions SET status = .+ AND status = 'pending'`).
		WithArgs("failed", "UPIABCDEF123456").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "UPIABCDEF123456", model.TxnFailed)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
