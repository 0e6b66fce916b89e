package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/abhinavmaity/ParkIt/internal/model"
	"github.com/abhinavmaity/ParkIt/internal/queue"
	"github.com/abhinavmaity/ParkIt/internal/utils"
)

// AuditStore appends approved scan transitions to the security log.
type AuditStore interface {
	Append(ctx context.Context, bookingID, spotNumber string, action model.ScanAction, at time.Time) error
}

// ScanOutcome classifies what a scanned credential allows the operator
// to do.
type ScanOutcome string

const (
	// OutcomeInvalid: payload malformed or booking unknown.  Nothing to do.
	OutcomeInvalid ScanOutcome = "invalid"
	// OutcomeEntry: paid booking awaiting entry; operator may approve admission.
	OutcomeEntry ScanOutcome = "entry"
	// OutcomeExit: checked-in booking; operator may approve the exit.
	OutcomeExit ScanOutcome = "exit"
	// OutcomeUnpaid: booking exists but payment is not confirmed; not admissible.
	OutcomeUnpaid ScanOutcome = "unpaid"
	// OutcomeTerminal: booking already completed or cancelled; read-only.
	OutcomeTerminal ScanOutcome = "terminal"
)

// ScanDecision is what the scanner surface shows the operator before
// they approve or deny.
type ScanDecision struct {
	Outcome ScanOutcome   `json:"outcome"`
	Booking model.Booking `json:"booking,omitempty"`
}

// ScanService adjudicates entry/exit scans.  Adjudication is two-step:
// Inspect parses and classifies the credential with no side effects;
// Approve performs the transition, appends the audit entry and
// publishes a scan event.  A denial is simply the absence of an
// Approve call and is not logged.
type ScanService struct {
	Lifecycle *BookingLifecycle
	Logs      AuditStore
	Events    EventPublisher
}

// NewScanService constructs a ScanService.  Events may be nil.
func NewScanService(lifecycle *BookingLifecycle, logs AuditStore, events EventPublisher) *ScanService {
	return &ScanService{Lifecycle: lifecycle, Logs: logs, Events: events}
}

// Inspect decodes a raw scanned credential and classifies the booking
// it references.  Malformed payloads and unknown bookings are both
// surfaced as OutcomeInvalid; no state changes and nothing is logged.
func (s *ScanService) Inspect(ctx context.Context, rawPayload string) (ScanDecision, error) {
	payload, err := utils.DecodeQR(rawPayload)
	if err != nil {
		return ScanDecision{Outcome: OutcomeInvalid}, nil
	}
	b, err := s.Lifecycle.Get(ctx, payload.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ScanDecision{Outcome: OutcomeInvalid}, nil
		}
		return ScanDecision{}, err
	}
	return ScanDecision{Outcome: classify(b), Booking: b}, nil
}

func classify(b model.Booking) ScanOutcome {
	switch b.Status {
	case model.StatusBooked:
		if b.PaymentStatus != model.PaymentPaid {
			return OutcomeUnpaid
		}
		return OutcomeEntry
	case model.StatusCheckedIn:
		return OutcomeExit
	default:
		return OutcomeTerminal
	}
}

// Approve performs the transition the booking's current state calls
// for: entry for a paid booked booking, exit for a checked-in one.
// Exactly one SecurityLog row is appended per approved transition.
// Terminal or unpaid bookings yield ErrInvalidState with no log entry.
func (s *ScanService) Approve(ctx context.Context, bookingID string) (model.ScanAction, error) {
	b, err := s.Lifecycle.Get(ctx, bookingID)
	if err != nil {
		return "", err
	}

	var action model.ScanAction
	switch classify(b) {
	case OutcomeEntry:
		if err := s.Lifecycle.AdvanceToCheckedIn(ctx, bookingID); err != nil {
			return "", err
		}
		action = model.ActionEntry
	case OutcomeExit:
		if err := s.Lifecycle.AdvanceToCompleted(ctx, bookingID); err != nil {
			return "", err
		}
		action = model.ActionExit
	default:
		return "", fmt.Errorf("%w: booking %s is not admissible (status=%s, payment=%s)",
			ErrInvalidState, bookingID, b.Status, b.PaymentStatus)
	}

	now := time.Now().UTC()
	if err := s.Logs.Append(ctx, b.ID, b.SpotNumber, action, now); err != nil {
		// The transition already won; surface the broken audit trail.
		return action, fmt.Errorf("%w: append security log: %v", ErrCollaborator, err)
	}
	if s.Events != nil {
		ev := queue.ScanEvent{
			BookingID:  b.ID,
			SpotNumber: b.SpotNumber,
			Action:     string(action),
			ScannedAt:  now.Format(time.RFC3339),
		}
		if err := s.Events.PublishScan(ctx, ev); err != nil {
			log.Printf("scan: security.scan publish failed for %s: %v", b.ID, err)
		}
	}
	return action, nil
}
