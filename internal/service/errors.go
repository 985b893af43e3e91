package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the base error for any rejected input.
	ErrValidation = errors.New("validation error")

	// ErrRoutingUnavailable is returned when the routing provider cannot answer.
	ErrRoutingUnavailable = errors.New("routing unavailable")

	// ErrInvariantViolation is returned when a verification record breaks its invariants.
	ErrInvariantViolation = errors.New("verification invariant violated")

	// ErrDriverNotVerified is returned when an unverified driver attempts a gated action.
	ErrDriverNotVerified = errors.New("driver is not verified")

	// ErrDriverAlreadyRegistered is returned when the phone number is already registered.
	ErrDriverAlreadyRegistered = errors.New("driver already registered")

	// ErrRideNotActive is returned when cancelling or completing a ride that is not active.
	ErrRideNotActive = errors.New("ride is not active")

	// ErrRideNotOwned is returned when a driver acts on another driver's ride.
	ErrRideNotOwned = errors.New("ride belongs to another driver")
)

// Validation errors. Each one matches ErrValidation with errors.Is.
var (
	ErrMissingEndpoints          = validationError("both source and destination required")
	ErrRejectionReasonRequired   = validationError("rejection reason is required")
	ErrRejectionReasonTooLong    = validationError("rejection reason is too long")
	ErrInvalidVerificationAction = validationError("invalid verification action")
	ErrInvalidStatusFilter       = validationError("invalid status filter")
	ErrInvalidDriverID           = validationError("invalid driver id")
	ErrInvalidRideID             = validationError("invalid ride id")
	ErrInvalidDriverDetails      = validationError("name, phone and license number are required")
	ErrInvalidPrice              = validationError("price per seat must be between 10 and 10000")
	ErrInvalidSeats              = validationError("available seats must be at least 1")
	ErrInvalidDepartureTime      = validationError("departure time must be in the future")
	ErrInvalidSearchDate         = validationError("date must be formatted as YYYY-MM-DD")
)

type validationErr struct {
	msg string
}

func (e *validationErr) Error() string { return e.msg }

func (e *validationErr) Unwrap() error { return ErrValidation }

func validationError(msg string) error {
	return &validationErr{msg: msg}
}

// routingError wraps a provider failure so it matches ErrRoutingUnavailable
// while keeping the cause reachable.
func routingError(cause error) error {
	return fmt.Errorf("%w: %w", ErrRoutingUnavailable, cause)
}
