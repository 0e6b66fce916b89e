package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/abhinavmaity/ParkIt/internal/model"
	"github.com/abhinavmaity/ParkIt/internal/queue"
	"github.com/abhinavmaity/ParkIt/internal/repository"
	"github.com/abhinavmaity/ParkIt/internal/utils"
)

// TransactionStore is the slice of the transaction repository the
// payment service needs.
type TransactionStore interface {
	Create(ctx context.Context, t *model.Transaction) error
	GetByTransactionID(ctx context.Context, transactionID string) (model.Transaction, error)
	UpdateStatus(ctx context.Context, transactionID string, status model.TransactionStatus) error
}

// PaymentRequest describes one payment attempt against a booking.
// CardNumber and UpiID are only inspected for the matching method.
type PaymentRequest struct {
	UserID     uint64
	BookingID  string
	Amount     int64
	Method     string // upi | card | ...
	CardNumber string
	UpiID      string
}

// PaymentResult is returned to the caller.  FailureReason is only set
// when Success is false.
type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// PaymentService reconciles simulated gateway payments with bookings.
// The gateway itself is a fake: it accepts any payment whose identifier
// passes a basic format check and generates a local transaction id.
// Swapping in a real gateway replaces only the check-and-generate step;
// the reconciliation contract stays the same.
type PaymentService struct {
	Txns      TransactionStore
	Lifecycle *BookingLifecycle
	Events    EventPublisher
}

// NewPaymentService constructs a PaymentService.  Events may be nil, in
// which case no events are published.
func NewPaymentService(txns TransactionStore, lifecycle *BookingLifecycle, events EventPublisher) *PaymentService {
	return &PaymentService{Txns: txns, Lifecycle: lifecycle, Events: events}
}

// InitiatePayment runs one payment attempt.  On success it records the
// transaction, marks the booking paid and publishes a BookingPaidEvent.
// A rejected identifier yields Success=false and flags the booking's
// payment as failed, keeping it open for a retry; a booking that is not
// awaiting payment yields ErrInvalidState.
//
// The transaction row is inserted as pending and only finalised to
// completed after the booking's conditional write confirms the payment,
// so a verified transaction id always refers to a reconciled payment.
// An attempt that loses the confirm race leaves a failed row behind.
func (p *PaymentService) InitiatePayment(ctx context.Context, req PaymentRequest) (PaymentResult, error) {
	if req.BookingID == "" || req.UserID == 0 || req.Method == "" {
		return PaymentResult{}, fmt.Errorf("%w: user, booking and method are required", ErrValidation)
	}
	if req.Amount <= 0 {
		return PaymentResult{}, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	booking, err := p.Lifecycle.Get(ctx, req.BookingID)
	if err != nil {
		return PaymentResult{}, err
	}
	if booking.Status != model.StatusBooked || booking.PaymentStatus == model.PaymentPaid {
		return PaymentResult{}, fmt.Errorf("%w: booking %s is not awaiting payment", ErrInvalidState, req.BookingID)
	}

	if reason := checkInstrument(req); reason != "" {
		if err := p.Lifecycle.RecordPaymentFailure(ctx, req.BookingID); err != nil {
			log.Printf("payment: could not record failed attempt for %s: %v", req.BookingID, err)
		}
		return PaymentResult{Success: false, FailureReason: reason}, nil
	}

	transactionID, err := utils.NewTransactionID(req.Method)
	if err != nil {
		return PaymentResult{}, fmt.Errorf("%w: %v", ErrCollaborator, err)
	}
	txn := model.Transaction{
		UserID:        req.UserID,
		BookingID:     req.BookingID,
		Amount:        req.Amount,
		PaymentMethod: strings.ToLower(req.Method),
		TransactionID: transactionID,
		Status:        model.TxnPending,
	}
	if err := p.Txns.Create(ctx, &txn); err != nil {
		return PaymentResult{}, fmt.Errorf("%w: record transaction: %v", ErrCollaborator, err)
	}
	if err := p.Lifecycle.ConfirmPayment(ctx, req.BookingID, transactionID); err != nil {
		if ferr := p.Txns.UpdateStatus(ctx, transactionID, model.TxnFailed); ferr != nil {
			log.Printf("payment: could not mark transaction %s failed: %v", transactionID, ferr)
		}
		return PaymentResult{}, err
	}
	if err := p.Txns.UpdateStatus(ctx, transactionID, model.TxnCompleted); err != nil {
		return PaymentResult{}, fmt.Errorf("%w: finalise transaction: %v", ErrCollaborator, err)
	}

	if p.Events != nil {
		ev := queue.BookingPaidEvent{
			BookingID:     req.BookingID,
			UserID:        req.UserID,
			SpotNumber:    booking.SpotNumber,
			BookingDate:   booking.BookingDate,
			StartTime:     booking.StartTime,
			EndTime:       booking.EndTime,
			Amount:        req.Amount,
			PaymentMethod: txn.PaymentMethod,
			TransactionID: transactionID,
			PaidAt:        time.Now().UTC().Format(time.RFC3339),
		}
		if err := p.Events.PublishBookingPaid(ctx, ev); err != nil {
			log.Printf("payment: booking.paid publish failed for %s: %v", req.BookingID, err)
		}
	}
	return PaymentResult{Success: true, TransactionID: transactionID}, nil
}

// VerifyPayment reports whether a transaction id refers to a recorded
// completed payment.  It is a pure read and safe to call any number of
// times; it never triggers state transitions.
func (p *PaymentService) VerifyPayment(ctx context.Context, transactionID string) (bool, error) {
	if strings.TrimSpace(transactionID) == "" {
		return false, nil
	}
	txn, err := p.Txns.GetByTransactionID(ctx, transactionID)
	if errors.Is(err, repository.ErrTransactionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCollaborator, err)
	}
	return txn.Status == model.TxnCompleted, nil
}

// checkInstrument applies the simulated gateway's format checks and
// returns a failure reason, or "" when the instrument is acceptable.
func checkInstrument(req PaymentRequest) string {
	switch strings.ToLower(req.Method) {
	case "card":
		digits := 0
		for _, r := range req.CardNumber {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		if digits < 13 {
			return "invalid card number"
		}
	case "upi":
		if !strings.Contains(req.UpiID, "@") {
			return "invalid UPI ID"
		}
	}
	return ""
}
