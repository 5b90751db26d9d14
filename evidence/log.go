/*
log.go - Domain wrapper over the bi-temporal store

PURPOSE:
  Log is how analyzers record, correct, and retract claims, and how readers
  ask the three questions the platform cares about:
    - What do we believe right now?           Current
    - What did we believe at instant T?       BelievedAt
    - Was it true at real-world instant V?    TrueAt

  Log validates claims at the boundary, then delegates the bi-temporal
  semantics to the store unchanged. It adds nothing to the interval rules -
  that is deliberate: there is exactly one place those rules live.

CORRECTIONS:
  Re-analysis that changes a previously recorded belief calls Correct (the
  old belief stays queryable via BelievedAt) or Retract (the fact is marked
  no longer true from a given instant, history intact). Recording again
  after a retraction re-opens the timeline.

SEE ALSO:
  - types.go: Coordinate, Kind, Claim
  - bitemporal/store.go: The underlying mutation semantics
*/
package evidence

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/evidence-engine/bitemporal"
)

// =============================================================================
// LOG - Claims keyed by coordinate, versioned on both time axes
// =============================================================================

// Log records evidence claims against the bi-temporal store.
type Log struct {
	store *bitemporal.Store[Claim]
}

// NewLog creates an empty log on the system clock.
func NewLog() *Log {
	return &Log{store: bitemporal.NewStore[Claim]()}
}

// NewLogWithClock creates an empty log on the given clock. Tests pin time
// with a bitemporal.ManualClock.
func NewLogWithClock(clock bitemporal.Clock) *Log {
	return &Log{store: bitemporal.NewStoreWithClock[Claim](clock)}
}

// =============================================================================
// RECORDING
// =============================================================================

// Record stores a new claim asserted true from observedAt onward.
// Recording for a coordinate whose claim was retracted re-opens the
// timeline.
func (l *Log) Record(coord Coordinate, claim Claim, observedAt time.Time) error {
	if err := claim.Validate(); err != nil {
		return err
	}
	return l.store.Add(coord.LogicalID(), claim, observedAt)
}

// Correct supersedes the current belief with a corrected claim. The prior
// belief remains queryable via BelievedAt.
func (l *Log) Correct(coord Coordinate, claim Claim, observedAt time.Time) error {
	if err := claim.Validate(); err != nil {
		return err
	}
	return l.store.Update(coord.LogicalID(), claim, observedAt)
}

// Retract records that the claim stopped being true at notTrueAfter. The
// claim drops out of current queries once that instant passes, but stays
// fully queryable historically.
func (l *Log) Retract(coord Coordinate, notTrueAfter time.Time) error {
	return l.store.Invalidate(coord.LogicalID(), notTrueAfter)
}

// =============================================================================
// READING
// =============================================================================

// Current returns the claim version believed and valid right now, or nil.
func (l *Log) Current(coord Coordinate) *bitemporal.FactVersion[Claim] {
	return l.store.Get(coord.LogicalID(), nil)
}

// BelievedAt returns what the log believed about the coordinate at a past
// transaction instant, ignoring real-world validity. Nil if the claim had
// not been recorded yet.
func (l *Log) BelievedAt(coord Coordinate, txInstant time.Time) *bitemporal.FactVersion[Claim] {
	return l.store.AsOf(coord.LogicalID(), txInstant)
}

// TrueAt returns the version asserting the claim true at a real-world
// instant, per everything known now - including claims since retracted.
func (l *Log) TrueAt(coord Coordinate, validInstant time.Time) *bitemporal.FactVersion[Claim] {
	return l.store.ValidAt(coord.LogicalID(), validInstant)
}

// History returns the full audit trail for a coordinate, most recent
// knowledge first.
func (l *Log) History(coord Coordinate) []bitemporal.FactVersion[Claim] {
	return l.store.History(coord.LogicalID())
}

// =============================================================================
// PREDICATE QUERIES
// =============================================================================

// Confident returns current claims whose confidence is at least min,
// one per coordinate, ordered by coordinate.
func (l *Log) Confident(min decimal.Decimal) []bitemporal.FactVersion[Claim] {
	return l.store.Query(func(c Claim) bool {
		return c.Confidence.GreaterThanOrEqual(min)
	}, nil)
}

// ByKind returns current claims of the given kind, one per coordinate.
func (l *Log) ByKind(kind Kind) []bitemporal.FactVersion[Claim] {
	return l.store.Query(func(c Claim) bool { return c.Kind == kind }, nil)
}

// Find exposes the store's combined predicate/axis query for callers that
// need historical filtering (e.g. "citation claims believed last Tuesday").
func (l *Log) Find(predicate func(Claim) bool, q *bitemporal.Query) []bitemporal.FactVersion[Claim] {
	return l.store.Query(predicate, q)
}

// Audit reports bi-temporal invariant violations across all coordinates.
// A healthy log returns nil.
func (l *Log) Audit() []bitemporal.Violation {
	return l.store.Audit()
}
