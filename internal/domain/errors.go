package domain

import "errors"

// Structural lookup failures surfaced to callers as errors.
// Numeric undefined-ness (non-convergence, zero denominators) is never an
// error; it is represented as an absent value in the snapshot.
var (
	// ErrPositionNotFound indicates the referenced position has no record
	ErrPositionNotFound = errors.New("position not found")

	// ErrCompanyNotFound indicates the referenced company has no record
	ErrCompanyNotFound = errors.New("company not found")
)
