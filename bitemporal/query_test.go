package bitemporal_test

import (
	"testing"
	"time"

	"github.com/warp/evidence-engine/bitemporal"
)

// =============================================================================
// ABSENCE IS AN ANSWER
// =============================================================================

func TestUnknownIDReadsReturnAbsent(t *testing.T) {
	// GIVEN: An empty store
	// THEN: Every read returns absent/empty, never an error or panic

	store, _ := newPinnedStore(day(10))

	if got := store.Get("nope", nil); got != nil {
		t.Errorf("Get = %+v, want nil", got)
	}
	if got := store.History("nope"); got != nil {
		t.Errorf("History = %+v, want nil", got)
	}
	if got := store.AsOf("nope", day(10)); got != nil {
		t.Errorf("AsOf = %+v, want nil", got)
	}
	if got := store.ValidAt("nope", day(10)); got != nil {
		t.Errorf("ValidAt = %+v, want nil", got)
	}
	if got := store.Query(func(payload) bool { return true }, nil); len(got) != 0 {
		t.Errorf("Query = %+v, want empty", got)
	}
}

// =============================================================================
// GET DEFAULTS
// =============================================================================

func TestGetDefaultsToCurrentKnowledgeValidNow(t *testing.T) {
	// GIVEN: A fact whose valid window has ended
	// WHEN: Queried with a nil descriptor
	// THEN: Absent - the default valid_at is "now"

	store, clock := newPinnedStore(day(10))
	if err := store.Add("f1", payload{V: 1}, day(10)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	clock.Set(day(12))
	if err := store.Invalidate("f1", day(15)); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	clock.Set(day(14)) // still inside the valid window
	if got := store.Get("f1", nil); got == nil {
		t.Error("fact inside its valid window should be current")
	}

	clock.Set(day(16)) // window has passed
	if got := store.Get("f1", nil); got != nil {
		t.Errorf("fact past its valid window returned: %+v", got)
	}
}

// =============================================================================
// VALID-DURING RANGE QUERIES
// =============================================================================

func TestValidDuringOverlap(t *testing.T) {
	// GIVEN: A fact valid over [Jan 10, Jan 15), queried long after it ended
	// THEN: Range queries match on half-open overlap, with no interference
	//       from the "valid now" default

	store, clock := newPinnedStore(day(10))
	if err := store.Add("f1", payload{V: 1}, day(10)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	clock.Set(day(11))
	if err := store.Invalidate("f1", day(15)); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	clock.Set(day(20))

	end := func(d int) *time.Time { e := day(d); return &e }
	cases := []struct {
		name  string
		r     bitemporal.Interval
		match bool
	}{
		{"inside window", bitemporal.Interval{Start: day(12), End: end(14)}, true},
		{"starts at valid_to", bitemporal.Interval{Start: day(15), End: end(18)}, false},
		{"ends at valid_from", bitemporal.Interval{Start: day(1), End: end(10)}, false},
		{"last covered instant", bitemporal.Interval{Start: day(14), End: end(15)}, true},
		{"straddles start", bitemporal.Interval{Start: day(8), End: end(11)}, true},
		{"unbounded end", bitemporal.Interval{Start: day(1), End: nil}, true},
		{"unbounded end after window", bitemporal.Interval{Start: day(15), End: nil}, false},
	}

	for _, tc := range cases {
		r := tc.r
		got := store.Get("f1", &bitemporal.Query{ValidDuring: &r})
		if (got != nil) != tc.match {
			t.Errorf("%s: match = %v, want %v", tc.name, got != nil, tc.match)
		}
	}
}

func TestValidAtAndValidDuringBothApply(t *testing.T) {
	// GIVEN: A range that overlaps the fact but a point outside it
	// THEN: Both predicates must pass when both are set

	store, clock := newPinnedStore(day(10))
	if err := store.Add("f1", payload{V: 1}, day(10)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	clock.Set(day(11))
	if err := store.Invalidate("f1", day(15)); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	outside := day(16)
	during := bitemporal.Interval{Start: day(12), End: nil}
	got := store.Get("f1", &bitemporal.Query{ValidAt: &outside, ValidDuring: &during})
	if got != nil {
		t.Errorf("point check should fail even though range overlaps: %+v", got)
	}

	inside := day(13)
	got = store.Get("f1", &bitemporal.Query{ValidAt: &inside, ValidDuring: &during})
	if got == nil {
		t.Error("both predicates hold, want a match")
	}
}

// =============================================================================
// AS-OF IGNORES VALID-TIME
// =============================================================================

func TestAsOfIgnoresValidTime(t *testing.T) {
	// GIVEN: A fact whose valid window has long passed
	// WHEN: Asked what was believed at a past transaction instant
	// THEN: The belief is returned regardless of real-world validity

	store, clock := newPinnedStore(day(10))
	if err := store.Add("f1", payload{V: 1}, day(10)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	clock.Set(day(11))
	if err := store.Invalidate("f1", day(12)); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	clock.Set(day(30))

	got := store.AsOf("f1", day(30))
	if got == nil {
		t.Fatal("AsOf(now) should return the current-knowledge version")
	}
	if got.ValidTo == nil || !got.ValidTo.Equal(day(12)) {
		t.Errorf("expected the invalidation marker, got %+v", got)
	}

	got = store.AsOf("f1", day(10).Add(time.Hour))
	if got == nil || got.ValidTo != nil {
		t.Errorf("AsOf before invalidation should see the open belief, got %+v", got)
	}
}

// =============================================================================
// PREDICATE QUERIES ACROSS IDS
// =============================================================================

func TestQueryReturnsAtMostOnePerIDInOrder(t *testing.T) {
	// GIVEN: Ids with multi-version histories
	// WHEN: Queried with an always-true predicate
	// THEN: One version per id, current knowledge only, ordered by id

	store, clock := newPinnedStore(day(10))
	for _, id := range []bitemporal.LogicalID{"z", "m", "a"} {
		if err := store.Add(id, payload{V: 1}, day(10)); err != nil {
			t.Fatalf("Add(%s) failed: %v", id, err)
		}
		clock.Advance(time.Hour)
		if err := store.Update(id, payload{V: 2}, day(10)); err != nil {
			t.Fatalf("Update(%s) failed: %v", id, err)
		}
		clock.Advance(time.Hour)
	}

	got := store.Query(func(payload) bool { return true }, nil)
	if len(got) != 3 {
		t.Fatalf("matches = %d, want 3 (one per id)", len(got))
	}
	want := []bitemporal.LogicalID{"a", "m", "z"}
	for i, v := range got {
		if v.LogicalID != want[i] {
			t.Errorf("result[%d].LogicalID = %s, want %s", i, v.LogicalID, want[i])
		}
		if v.Payload.V != 2 {
			t.Errorf("result[%d] is not the current belief: %+v", i, v)
		}
	}
}

func TestQueryWithAsOfSeesPastBeliefs(t *testing.T) {
	// GIVEN: A correction recorded after T1
	// WHEN: Querying as_of T1 with a predicate matching the old payload
	// THEN: The superseded belief is returned

	t1 := day(10)
	store, clock := newPinnedStore(t1)
	if err := store.Add("f1", payload{V: 1}, day(10)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	clock.Set(day(20))
	if err := store.Update("f1", payload{V: 2}, day(10)); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got := store.Query(func(p payload) bool { return p.V == 1 }, &bitemporal.Query{AsOf: &t1, ValidAt: &t1})
	if len(got) != 1 {
		t.Fatalf("matches = %d, want the superseded belief", len(got))
	}

	got = store.Query(func(p payload) bool { return p.V == 1 }, nil)
	if len(got) != 0 {
		t.Errorf("superseded belief leaked into a current query: %+v", got)
	}
}

// =============================================================================
// HISTORY ORDERING
// =============================================================================

func TestHistoryOrderedMostRecentFirst(t *testing.T) {
	store, clock := newPinnedStore(day(10))
	if err := store.Add("f1", payload{V: 1}, day(10)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	clock.Advance(time.Hour)
	if err := store.Update("f1", payload{V: 2}, day(11)); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	clock.Advance(time.Hour)
	if err := store.Invalidate("f1", day(15)); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	history := store.History("f1")
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	for i := 1; i < len(history); i++ {
		if !history[i].TxFrom.Before(history[i-1].TxFrom) {
			t.Errorf("history not descending by tx_from at index %d", i)
		}
	}
	if !history[0].Current() {
		t.Error("newest history entry should be the current-knowledge version")
	}
}
