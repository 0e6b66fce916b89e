// Package service implements the booking lifecycle core: availability
// resolution, booking state transitions, payment reconciliation and
// entry/exit scan adjudication.  Handlers translate the sentinel
// errors defined here into HTTP responses.
package service

import "errors"

// ErrValidation signals malformed or missing input to a creation call.
var ErrValidation = errors.New("validation error")

// ErrNotFound signals that a referenced spot, booking or transaction
// does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidState signals an operation attempted from a lifecycle state
// that forbids it, e.g. confirming payment on a cancelled booking.
var ErrInvalidState = errors.New("invalid state")

// ErrPrecondition signals QR issuance attempted before payment.
var ErrPrecondition = errors.New("precondition failed")

// ErrConflict signals that a booking could not be created because an
// active booking already occupies an overlapping window on the spot.
var ErrConflict = errors.New("booking conflict")

// ErrCollaborator signals that the data store or payment collaborator
// failed.  The availability resolver swallows this on its per-spot
// predicate and degrades to coarse availability instead.
var ErrCollaborator = errors.New("collaborator error")
