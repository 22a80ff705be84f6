// Package apperrors defines the recoverable failure kinds of the trip
// accounting core. Callers classify outcomes with errors.Is; none of these
// should ever terminate the process.
package apperrors

import "errors"

var (
	// ErrCapacityExceeded means a reservation asked for more seats than the
	// trip has left.
	ErrCapacityExceeded = errors.New("not enough seats available")

	// ErrNotInTrip means a cancellation referenced a passenger with no group
	// on the trip.
	ErrNotInTrip = errors.New("passenger is not part of this trip")

	// ErrTripAlreadyTerminal means a mutation was attempted on a completed
	// or canceled trip.
	ErrTripAlreadyTerminal = errors.New("trip is already completed or canceled")

	// ErrInvalidTransition covers start/end calls from the wrong state,
	// including unknown trip ids.
	ErrInvalidTransition = errors.New("invalid trip status transition")

	// ErrRecordNotFound means a passenger, driver or trip lookup by id
	// matched nothing.
	ErrRecordNotFound = errors.New("record not found")

	// ErrCorruptState means a stored record could not be decoded.
	ErrCorruptState = errors.New("corrupt persisted state")

	// ErrInvalidInput rejects malformed request parameters (negative
	// distance, out-of-range group size).
	ErrInvalidInput = errors.New("invalid input")
)
