/*
errors.go - Centralized error types for the bi-temporal store

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages should wrap these errors with additional context.

ERROR CATEGORIES:
  1. Interval errors - Malformed valid-time bounds, rejected at the boundary
  2. Instant errors - Zero/invalid timestamps, rejected at the boundary
  3. Identity errors - Mutations that require existing knowledge

NOT ERRORS:
  An unknown logical id on a READ is a normal outcome - reads return absent,
  never an error. "No knowledge exists" must be representable.

USAGE:
  Domain packages can wrap store errors:

    if errors.Is(err, bitemporal.ErrInvalidInterval) {
        return &DomainSpecificError{...}
    }

SEE ALSO:
  - store.go: Uses these errors at the mutation boundary
*/
package bitemporal

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInterval is returned when a mutation would store a valid
	// interval with ValidTo <= ValidFrom. Rejected synchronously, never stored.
	ErrInvalidInterval = errors.New("invalid interval: valid_to not after valid_from")

	// ErrZeroInstant is returned when a mutation is given a zero timestamp.
	// The store rejects malformed instants at the boundary rather than
	// storing values that can never match a query correctly.
	ErrZeroInstant = errors.New("zero time instant")

	// ErrUnknownFact is returned when Invalidate targets a logical id with no
	// recorded history. There is no payload to carry into the marker version.
	ErrUnknownFact = errors.New("unknown fact")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidIntervalError reports the offending bounds.
type InvalidIntervalError struct {
	LogicalID LogicalID
	ValidFrom time.Time
	ValidTo   time.Time
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid interval for %q: valid_to %s not after valid_from %s",
		e.LogicalID, e.ValidTo.Format(time.RFC3339), e.ValidFrom.Format(time.RFC3339))
}

func (e *InvalidIntervalError) Unwrap() error {
	return ErrInvalidInterval
}

// UnknownFactError reports which logical id had no history.
type UnknownFactError struct {
	LogicalID LogicalID
}

func (e *UnknownFactError) Error() string {
	return fmt.Sprintf("unknown fact: no history for %q", e.LogicalID)
}

func (e *UnknownFactError) Unwrap() error {
	return ErrUnknownFact
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrZeroInstant)
}

// IsNotFound returns true if the error indicates missing knowledge.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownFact)
}
