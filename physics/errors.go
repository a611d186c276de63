package physics

import "errors"

var (
	// ErrDegenerateInput is returned for zero-length vectors where a direction is required
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrInvalidBody is returned for bodies with non-positive or non-finite mass or radius
	ErrInvalidBody = errors.New("invalid body")

	// ErrCoincidentBodies is returned when two distinct bodies would share a center
	ErrCoincidentBodies = errors.New("coincident bodies")

	// ErrNonFinite is returned when a tick would produce NaN or Inf state
	ErrNonFinite = errors.New("non-finite state")
)
