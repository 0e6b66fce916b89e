// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services and handlers to distinguish between different failure
// scenarios without inspecting SQL driver errors directly.
package repository

import "errors"

// ErrSpotNotFound is returned when a referenced parking spot does not exist.
var ErrSpotNotFound = errors.New("parking spot not found")

// ErrBookingNotFound is returned when a referenced booking does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrTransactionNotFound is returned when no transaction row matches the
// given external transaction id.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrVehicleNotFound is returned when a referenced vehicle does not exist.
var ErrVehicleNotFound = errors.New("vehicle not found")

// ErrPaymentMethodNotFound is returned when a referenced saved payment
// method does not exist or is not owned by the caller.
var ErrPaymentMethodNotFound = errors.New("payment method not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot be performed because of
// conflicting state, such as creating a booking whose time window
// overlaps an existing active booking on the same spot. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrNoTransition is returned by conditional status updates when the
// booking was not in the expected source state, meaning the requested
// transition is not allowed from its current state.
var ErrNoTransition = errors.New("no transition")
