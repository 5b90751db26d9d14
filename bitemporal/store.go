/*
store.go - The bi-temporal index and its mutation operations

PURPOSE:
  Store owns every fact version, enforces the bi-temporal invariants, and
  exposes the mutation API. Per-id history is an append-only log: versions
  are never edited or deleted, only superseded by inserting a new version
  and closing the previous one's TxTo.

CRITICAL INVARIANTS (hold after every mutation):
  1. Exactly one version per logical id has TxTo == nil (current knowledge)
  2. ValidFrom < ValidTo whenever ValidTo is set
  3. TxFrom < TxTo whenever TxTo is set; TxFrom strictly increases per id
  4. History is immutable once written - supersede, never edit
  5. Containment is half-open [from, to) on both axes

WHY APPEND-ONLY?
  - Audit trail: "what did we believe about X, and when did we learn it"
  - Corrections never destroy the old belief - it stays queryable via AsOf
  - No risk of partial updates corrupting history

MUTATIONS:
  Add:        record a new fact (or re-create one after invalidation)
  Update:     correct previously recorded knowledge
  Invalidate: record that the fact stopped being true at a given instant

CONCURRENCY:
  A single store-wide RWMutex guards the index (expected low write
  contention). The close-and-open pair inside a mutation is atomic with
  respect to readers: no reader ever observes a half-closed version.

SEE ALSO:
  - query.go: Read operations
  - audit.go: Post-hoc invariant verification
*/
package bitemporal

import (
	"sync"
	"time"
)

// =============================================================================
// STORE - Mapping from logical id to its version history
// =============================================================================

// Store is an in-memory bi-temporal index over payloads of type T.
// Per-id history is kept in insertion order, which is transaction order.
type Store[T any] struct {
	mu       sync.RWMutex
	clock    Clock
	versions map[LogicalID][]FactVersion[T]
}

// NewStore creates an empty store on the system clock.
func NewStore[T any]() *Store[T] {
	return NewStoreWithClock[T](SystemClock{})
}

// NewStoreWithClock creates an empty store on the given clock. Tests use a
// ManualClock to pin "now" deterministically.
func NewStoreWithClock[T any](clock Clock) *Store[T] {
	return &Store[T]{
		clock:    clock,
		versions: make(map[LogicalID][]FactVersion[T]),
	}
}

// =============================================================================
// MUTATIONS - Each is one indivisible close-and-open step
// =============================================================================

// Add records a new fact version with an open-ended valid interval starting
// at validFrom. Calling Add for an id whose history was closed by Invalidate
// re-opens the timeline - a supported re-creation pattern, not an error.
//
// If a current version already exists (Add called twice without an
// intervening Invalidate), it is superseded first; the second Add is
// equivalent to Update.
func (s *Store[T]) Add(id LogicalID, payload T, validFrom time.Time) error {
	return s.record(id, payload, validFrom)
}

// Update corrects previously recorded knowledge: the current version is
// closed at "now" and a new version with the corrected payload becomes
// current. The old belief remains queryable via AsOf.
//
// Update on an id with no history behaves like Add; the store does not
// enforce prior existence defensively.
func (s *Store[T]) Update(id LogicalID, payload T, validFrom time.Time) error {
	return s.record(id, payload, validFrom)
}

// record implements Add and Update, which share one semantic: supersede the
// current version (if any) and open a new one. The clock is read exactly
// once, so the closed TxTo and the new TxFrom are the same instant.
func (s *Store[T]) record(id LogicalID, payload T, validFrom time.Time) error {
	if validFrom.IsZero() {
		return ErrZeroInstant
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.closeCurrentLocked(id, now)
	s.versions[id] = append(s.versions[id], FactVersion[T]{
		ID:        newVersionID(),
		LogicalID: id,
		Payload:   payload,
		ValidFrom: validFrom,
		TxFrom:    now,
	})
	return nil
}

// Invalidate records that the fact stopped being true at validTo. The
// current version is closed and a marker version becomes current: same
// payload, same ValidFrom, but a bounded valid interval.
//
// Once validTo has passed, the fact is no longer returned by current
// queries, but the full history remains queryable.
func (s *Store[T]) Invalidate(id LogicalID, validTo time.Time) error {
	if validTo.IsZero() {
		return ErrZeroInstant
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.currentIndexLocked(id)
	if i < 0 {
		return &UnknownFactError{LogicalID: id}
	}
	cur := s.versions[id][i]
	if !validTo.After(cur.ValidFrom) {
		return &InvalidIntervalError{LogicalID: id, ValidFrom: cur.ValidFrom, ValidTo: validTo}
	}

	now := s.clock.Now()
	s.closeCurrentLocked(id, now)
	end := validTo
	s.versions[id] = append(s.versions[id], FactVersion[T]{
		ID:        newVersionID(),
		LogicalID: id,
		Payload:   cur.Payload,
		ValidFrom: cur.ValidFrom,
		ValidTo:   &end,
		TxFrom:    now,
	})
	return nil
}

// closeCurrentLocked closes the current-knowledge version, if any, at the
// given instant. The slot's value is replaced with an updated copy; no
// external reference into the slice exists across mutations.
func (s *Store[T]) closeCurrentLocked(id LogicalID, at time.Time) {
	i := s.currentIndexLocked(id)
	if i < 0 {
		return
	}
	closedAt := at
	s.versions[id][i].TxTo = &closedAt
}

// currentIndexLocked returns the index of the current-knowledge version, or
// -1 if the id has no history or no open version. The open version is always
// the most recently appended one, so scan from the end.
func (s *Store[T]) currentIndexLocked(id LogicalID) int {
	history := s.versions[id]
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].TxTo == nil {
			return i
		}
	}
	return -1
}
