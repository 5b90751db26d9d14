package bitemporal

import (
	"fmt"
	"time"
)

// =============================================================================
// AUDIT - Post-hoc invariant verification
// =============================================================================

// Violation reports one breach of a store invariant found by Audit.
type Violation struct {
	LogicalID LogicalID
	VersionID VersionID
	Code      string
	Message   string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (id=%s, version=%s)", v.Code, v.Message, v.LogicalID, v.VersionID)
}

// Violation codes reported by Audit.
const (
	ViolationOpenVersionCount = "open_version_count"    // not exactly one TxTo == nil
	ViolationOpenNotLast      = "open_version_not_last" // current version is not the newest
	ViolationInvertedValid    = "inverted_valid_interval"
	ViolationInvertedTx       = "inverted_tx_interval"
	ViolationNonMonotonicTx   = "non_monotonic_tx"
)

// Audit walks every id's history and reports invariant breaches. A healthy
// store returns nil after any sequence of mutations.
//
// The store itself never produces a violation under a forward-moving clock;
// Audit exists so tests can assert that, and so clock misuse (a caller
// driving an injected clock backwards or pinning it across mutations)
// becomes observable rather than silently corrupting query results.
func (s *Store[T]) Audit() []Violation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Violation
	for id, history := range s.versions {
		out = append(out, auditHistory(id, history)...)
	}
	return out
}

func auditHistory[T any](id LogicalID, history []FactVersion[T]) []Violation {
	var out []Violation

	open := 0
	openIndex := -1
	var lastTxFrom time.Time
	for i, v := range history {
		if v.TxTo == nil {
			open++
			openIndex = i
		} else if !v.TxFrom.Before(*v.TxTo) {
			out = append(out, Violation{
				LogicalID: id, VersionID: v.ID, Code: ViolationInvertedTx,
				Message: "tx_from not before tx_to",
			})
		}

		if v.ValidTo != nil && !v.ValidFrom.Before(*v.ValidTo) {
			out = append(out, Violation{
				LogicalID: id, VersionID: v.ID, Code: ViolationInvertedValid,
				Message: "valid_from not before valid_to",
			})
		}

		if i > 0 && !v.TxFrom.After(lastTxFrom) {
			out = append(out, Violation{
				LogicalID: id, VersionID: v.ID, Code: ViolationNonMonotonicTx,
				Message: "tx_from not strictly later than predecessor",
			})
		}
		lastTxFrom = v.TxFrom
	}

	if open != 1 {
		out = append(out, Violation{
			LogicalID: id, Code: ViolationOpenVersionCount,
			Message: fmt.Sprintf("%d open versions, want exactly 1", open),
		})
	} else if openIndex != len(history)-1 {
		out = append(out, Violation{
			LogicalID: id, VersionID: history[openIndex].ID, Code: ViolationOpenNotLast,
			Message: "current-knowledge version is not the newest record",
		})
	}

	return out
}
