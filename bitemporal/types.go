/*
Package bitemporal provides the core bi-temporal fact store.

PURPOSE:
  This package records, for every tracked fact, both WHEN it was true in the
  world (valid-time) and WHEN the system learned it (transaction-time), and
  answers queries that combine the two axes. Whether the payload is a citation
  claim, a symbol observation, or an arbitrary caller value, the same engine
  handles versioning, correction, and temporal lookup.

KEY CONCEPTS IN THIS FILE (types.go):
  - FactVersion: One immutable belief about a fact, bounded on both axes
  - LogicalID/VersionID: Type-safe identifiers (entity key vs. record key)
  - Interval: Half-open real-world time range for overlap queries
  - Query: Composable descriptor selecting along both time axes

DESIGN PRINCIPLES:
  1. Immutability: Versions are never edited, only superseded
  2. Two axes, one rule: Containment is half-open [from, to) on both axes
  3. Explicit absence: Open-ended bounds are nil pointers, never sentinels
  4. Auditability: Every version carries a unique record ID

USAGE:
  store := bitemporal.NewStore[Claim]()
  store.Add("pkg/auth#Login", claim, observedAt)
  v := store.Get("pkg/auth#Login", nil) // current knowledge, valid now

SEE ALSO:
  - store.go: Mutation operations (Add, Update, Invalidate)
  - query.go: Read operations (Get, History, AsOf, ValidAt, Query)
  - clock.go: Injectable time source
*/
package bitemporal

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// LogicalID groups all versions that describe the same real-world entity
// across time. Callers choose a stable key (e.g., a file+symbol coordinate).
type LogicalID string

// VersionID uniquely identifies one stored version record.
type VersionID string

func newVersionID() VersionID {
	return VersionID(uuid.NewString())
}

// =============================================================================
// FACT VERSION - One belief, bounded on both time axes
// =============================================================================

// FactVersion is the atomic stored record: a payload asserted true during
// [ValidFrom, ValidTo) in the real world, and held as recorded knowledge
// during [TxFrom, TxTo) by the store.
//
// A nil ValidTo means "still valid, no known end". A nil TxTo means "this is
// the most recently recorded knowledge for its logical id" - the
// current-knowledge version. Exactly one version per logical id is current
// at any moment.
type FactVersion[T any] struct {
	ID        VersionID
	LogicalID LogicalID
	Payload   T

	// Valid-time: when the payload is asserted true in reality.
	ValidFrom time.Time
	ValidTo   *time.Time

	// Transaction-time: when the store held this belief.
	TxFrom time.Time
	TxTo   *time.Time
}

// Current reports whether this is the current-knowledge version.
func (v FactVersion[T]) Current() bool { return v.TxTo == nil }

// ValidContains reports whether the valid interval [ValidFrom, ValidTo)
// contains the instant.
func (v FactVersion[T]) ValidContains(t time.Time) bool {
	return contains(v.ValidFrom, v.ValidTo, t)
}

// TxContains reports whether the transaction interval [TxFrom, TxTo)
// contains the instant.
func (v FactVersion[T]) TxContains(t time.Time) bool {
	return contains(v.TxFrom, v.TxTo, t)
}

// clone returns a copy that shares no pointers with the stored record, so
// history handed to callers can never alias live store state.
func (v FactVersion[T]) clone() FactVersion[T] {
	c := v
	if v.ValidTo != nil {
		end := *v.ValidTo
		c.ValidTo = &end
	}
	if v.TxTo != nil {
		end := *v.TxTo
		c.TxTo = &end
	}
	return c
}

// contains is the single containment rule for both axes: instant >= from,
// and instant < to when to is bounded.
func contains(from time.Time, to *time.Time, instant time.Time) bool {
	if instant.Before(from) {
		return false
	}
	return to == nil || instant.Before(*to)
}

// =============================================================================
// INTERVAL - Half-open real-world range [Start, End)
// =============================================================================

// Interval is a half-open valid-time range. A nil End means unbounded.
type Interval struct {
	Start time.Time
	End   *time.Time
}

// Overlaps reports whether the interval overlaps [from, to), where a nil
// bound on either side means unbounded. Two half-open intervals overlap iff
// each starts before the other ends.
func (iv Interval) Overlaps(from time.Time, to *time.Time) bool {
	if to != nil && !iv.Start.Before(*to) {
		return false
	}
	return iv.End == nil || from.Before(*iv.End)
}

// =============================================================================
// QUERY - Composable selection along both axes
// =============================================================================

// Query narrows reads along either axis. Fields compose independently:
//   - AsOf:        transaction-time instant; nil defaults to "now"
//   - ValidAt:     valid-time instant; nil defaults to "now" unless
//     ValidDuring is set, in which case the point check is skipped
//   - ValidDuring: valid-time range the version must overlap; nil means
//     unfiltered
//
// A nil *Query selects the current-knowledge version that is valid now.
type Query struct {
	AsOf        *time.Time
	ValidAt     *time.Time
	ValidDuring *Interval
}
