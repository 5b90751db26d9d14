package bitemporal

import (
	"sync"
	"time"
)

// =============================================================================
// CLOCK - Injectable time source
// =============================================================================

// Clock supplies "now" for mutations and for query defaults.
//
// The store reads the clock exactly once per mutation: the same instant
// closes the predecessor's TxTo and opens the successor's TxFrom, so the two
// can never diverge by a tick.
//
// The store assumes the clock moves forward between mutations on the same
// logical id. It does not re-validate this: tests drive the clock explicitly,
// and ordering is the caller's responsibility. Audit reports violations after
// the fact.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. The production default.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a pinned clock for deterministic tests. It only moves when
// told to.
//
// Thread-safety: safe for concurrent use.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a clock pinned at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set pins the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d and returns the new instant.
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
