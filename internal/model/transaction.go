package model

import "time"

// TransactionStatus is the finalisation state of a payment attempt.
type TransactionStatus string

const (
	TxnPending   TransactionStatus = "pending"
	TxnCompleted TransactionStatus = "completed"
	TxnFailed    TransactionStatus = "failed"
)

// Transaction is an immutable record of a payment attempt as stored in
// the `transactions` table.  Rows are created once per successful
// attempt and never updated except for status finalisation.
//
// Fields:
//  ID            – primary key (UUID string).
//  UserID        – user who paid.
//  BookingID     – booking this payment belongs to.
//  Amount        – amount in whole currency units.
//  PaymentMethod – method used (upi, card, ...).
//  TransactionID – externally referenceable id (method prefix + random suffix).
//  Status        – pending, completed or failed.
//  CreatedAt     – creation timestamp.
type Transaction struct {
	ID            string            // transactions.id
	UserID        uint64            // transactions.user_id
	BookingID     string            // transactions.booking_id
	Amount        int64             // transactions.amount
	PaymentMethod string            // transactions.payment_method
	TransactionID string            // transactions.transaction_id
	Status        TransactionStatus // transactions.status
	CreatedAt     time.Time         // transactions.created_at
}
