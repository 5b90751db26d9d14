package evidence

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnknownKind is returned when a claim carries an unregistered kind.
	ErrUnknownKind = errors.New("unknown claim kind")

	// ErrConfidenceRange is returned when confidence falls outside [0, 1].
	ErrConfidenceRange = errors.New("confidence outside [0, 1]")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnknownKindError reports the unregistered kind.
type UnknownKindError struct {
	Kind Kind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown claim kind %q: register it before recording", e.Kind)
}

func (e *UnknownKindError) Unwrap() error { return ErrUnknownKind }

// ConfidenceRangeError reports the out-of-range confidence value.
type ConfidenceRangeError struct {
	Kind       Kind
	Confidence decimal.Decimal
}

func (e *ConfidenceRangeError) Error() string {
	return fmt.Sprintf("confidence %s outside [0, 1] for %s claim", e.Confidence, e.Kind)
}

func (e *ConfidenceRangeError) Unwrap() error { return ErrConfidenceRange }
