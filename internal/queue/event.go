// Package queue defines message payloads exchanged over the message
// broker and the background consumer that turns them into audit log
// lines.
package queue

// BookingPaidEvent is published when a payment is reconciled against a
// booking.  It carries enough for downstream consumers to log or
// notify without querying the primary database.
type BookingPaidEvent struct {
	BookingID     string `json:"booking_id"`
	UserID        uint64 `json:"user_id"`
	SpotNumber    string `json:"spot_number"`
	BookingDate   string `json:"booking_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	TransactionID string `json:"transaction_id"`
	PaidAt        string `json:"paid_at"`
}

// ScanEvent is published for every approved entry or exit transition at
// the security gate.
type ScanEvent struct {
	BookingID  string `json:"booking_id"`
	SpotNumber string `json:"spot_number"`
	Action     string `json:"action"` // entry | exit
	ScannedAt  string `json:"scanned_at"`
}
