/*
query.go - The four classes of temporal read

PURPOSE:
  Read operations over the bi-temporal index. Reads never mutate state, may
  run concurrently with each other, and return copies - callers can never
  alias live store history.

THE FOUR QUERY CLASSES:
  Get:     current value, or value at any (as_of, valid_at) combination
  AsOf:    what did we believe at a past transaction instant (valid-time
           ignored)
  ValidAt: was it true at a past real-world instant, per everything known now
  Query:   Get semantics across all logical ids, filtered by a payload
           predicate

ABSENCE IS AN ANSWER:
  Every read returns nil/empty for unknown ids or unmatched predicates.
  "No knowledge exists" is a normal, expected outcome, never an error.

ALGORITHMIC NOTES:
  Per-id history is typically a handful of corrections, so reads are linear
  scans. Transaction intervals per id are disjoint, so at most one version
  matches a given as_of instant.

SEE ALSO:
  - store.go: Mutation operations
  - types.go: Containment and overlap rules
*/
package bitemporal

import (
	"sort"
	"time"
)

// =============================================================================
// GET - Point lookup along both axes
// =============================================================================

// Get returns the single version matching the query, or nil.
//
// The version is resolved on the transaction axis first (AsOf, defaulting to
// now), then filtered on the valid axis: ValidAt containment (defaulting to
// now unless ValidDuring is set) and ValidDuring overlap. A nil query means
// "current knowledge, valid now".
func (s *Store[T]) Get(id LogicalID, q *Query) *FactVersion[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(id, q, s.clock.Now())
}

func (s *Store[T]) getLocked(id LogicalID, q *Query, now time.Time) *FactVersion[T] {
	asOf := now
	if q != nil && q.AsOf != nil {
		asOf = *q.AsOf
	}

	v := s.txMatchLocked(id, asOf)
	if v == nil {
		return nil
	}

	switch {
	case q != nil && q.ValidAt != nil:
		if !v.ValidContains(*q.ValidAt) {
			return nil
		}
	case q == nil || q.ValidDuring == nil:
		// Point queries default valid_at to now; a range query replaces the
		// point check entirely.
		if !v.ValidContains(now) {
			return nil
		}
	}

	if q != nil && q.ValidDuring != nil && !q.ValidDuring.Overlaps(v.ValidFrom, v.ValidTo) {
		return nil
	}

	c := v.clone()
	return &c
}

// txMatchLocked returns the version whose transaction interval contains the
// instant. Transaction intervals per id are disjoint, so the first match
// (scanning newest first) is the only match.
func (s *Store[T]) txMatchLocked(id LogicalID, asOf time.Time) *FactVersion[T] {
	history := s.versions[id]
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].TxContains(asOf) {
			return &history[i]
		}
	}
	return nil
}

// =============================================================================
// HISTORY - Full audit trail
// =============================================================================

// History returns all versions for the id, most recent knowledge first.
// Superseded and invalidation-marker versions are included. The returned
// versions are copies; mutating them never affects the store.
func (s *Store[T]) History(id LogicalID) []FactVersion[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.versions[id]
	if len(history) == 0 {
		return nil
	}
	out := make([]FactVersion[T], 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i].clone())
	}
	return out
}

// =============================================================================
// AS-OF - Transaction-axis lookup
// =============================================================================

// AsOf returns what the store believed about the id at txInstant, ignoring
// valid-time entirely. Returns nil if the id had not been created yet at
// that transaction instant.
func (s *Store[T]) AsOf(id LogicalID, txInstant time.Time) *FactVersion[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.txMatchLocked(id, txInstant)
	if v == nil {
		return nil
	}
	c := v.clone()
	return &c
}

// =============================================================================
// VALID-AT - Valid-axis lookup over the full history
// =============================================================================

// ValidAt scans the id's full history - not just the current-knowledge
// version - and returns the version, among those known as of now, whose
// valid interval contains validInstant.
//
// Most recent knowledge is authoritative: the newest version whose
// ValidFrom covers the instant decides. If that version's interval was
// closed before the instant, the store's current belief is "not true then",
// even though an older, superseded version still claims an open-ended
// interval over it.
//
// This answers "was it true at T" even when the live segment has since been
// invalidated and superseded.
func (s *Store[T]) ValidAt(id LogicalID, validInstant time.Time) *FactVersion[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.versions[id]
	for i := len(history) - 1; i >= 0; i-- {
		if validInstant.Before(history[i].ValidFrom) {
			continue
		}
		if history[i].ValidContains(validInstant) {
			c := history[i].clone()
			return &c
		}
		return nil
	}
	return nil
}

// =============================================================================
// QUERY - Predicate scan across all logical ids
// =============================================================================

// Query applies the same as_of/valid_at/valid_during filtering as Get across
// every logical id, then keeps versions whose payload satisfies the
// predicate. At most one version per logical id is returned, ordered by
// logical id for determinism.
func (s *Store[T]) Query(predicate func(T) bool, q *Query) []FactVersion[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.clock.Now()
	ids := make([]LogicalID, 0, len(s.versions))
	for id := range s.versions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []FactVersion[T]
	for _, id := range ids {
		v := s.getLocked(id, q, now)
		if v == nil || !predicate(v.Payload) {
			continue
		}
		out = append(out, *v)
	}
	return out
}

// Len returns the number of logical ids with recorded history.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.versions)
}
