/*
Package evidence records beliefs about code on top of the bi-temporal store.

PURPOSE:
  Consumers of the platform (citation checking, symbol verification,
  retrieval, calibration) produce claims about code: "this citation resolves",
  "this symbol exists at this coordinate", "this passage supports that
  answer". Claims are beliefs, not truths - re-analysis corrects or retracts
  them. This package keys claims by stable coordinates and preserves the full
  audit history of what was believed, and when it was learned.

KEY CONCEPTS IN THIS FILE (types.go):
  - Coordinate: Stable file+symbol key for a claim (the logical id)
  - Kind: What class of claim this is, registered by producers
  - Claim: The payload - statement, confidence, source

DESIGN PRINCIPLES:
  1. Confidence is decimal.Decimal: threshold comparisons are exact,
     never subject to float drift
  2. "I don't know" is representable: absent is an answer, never an error
  3. Kinds are registered, not free-form: unregistered kinds are rejected
     at the recording boundary

SEE ALSO:
  - log.go: Recording, correcting, retracting, and querying claims
  - bitemporal: The underlying versioned store
*/
package evidence

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/warp/evidence-engine/bitemporal"
)

// =============================================================================
// COORDINATE - Stable logical id for a claim
// =============================================================================

// Coordinate identifies what a claim is about: a file, optionally narrowed
// to a symbol within it. The same coordinate groups every version of the
// belief over time.
type Coordinate struct {
	File   string
	Symbol string
}

// LogicalID renders the coordinate as the store key, "file#symbol".
// A file-level claim (empty Symbol) keys on the file alone.
func (c Coordinate) LogicalID() bitemporal.LogicalID {
	if c.Symbol == "" {
		return bitemporal.LogicalID(c.File)
	}
	return bitemporal.LogicalID(c.File + "#" + c.Symbol)
}

// =============================================================================
// KIND - Claim classification, registered by producers
// =============================================================================

// Kind classifies a claim by the analysis that produced it.
type Kind string

// Built-in claim kinds, registered on package init.
const (
	KindCitation    Kind = "citation"    // a cited source resolves and supports
	KindSymbol      Kind = "symbol"      // a symbol exists at a coordinate
	KindRetrieval   Kind = "retrieval"   // a retrieved passage is relevant
	KindCalibration Kind = "calibration" // a confidence estimate was scored
)

var (
	kindRegistry = make(map[Kind]bool)
	registryMu   sync.RWMutex
)

// RegisterKind adds a claim kind to the registry. Call from producer package
// init() functions; recording a claim of an unregistered kind is rejected.
func RegisterKind(k Kind) {
	registryMu.Lock()
	defer registryMu.Unlock()
	kindRegistry[k] = true
}

// KnownKind reports whether the kind has been registered.
func KnownKind(k Kind) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return kindRegistry[k]
}

// Kinds returns all registered kinds, sorted.
func Kinds() []Kind {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Kind, 0, len(kindRegistry))
	for k := range kindRegistry {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func init() {
	RegisterKind(KindCitation)
	RegisterKind(KindSymbol)
	RegisterKind(KindRetrieval)
	RegisterKind(KindCalibration)
}

// =============================================================================
// CLAIM - The recorded belief
// =============================================================================

// Claim is the payload stored for each belief version. The store treats it
// as opaque; validation happens at the recording boundary in this package.
type Claim struct {
	Kind       Kind
	Statement  string
	Confidence decimal.Decimal
	Source     string // producing analyzer, e.g. "citation-checker"
	Metadata   map[string]string
}

// Validate rejects malformed claims before they reach the store.
func (c Claim) Validate() error {
	if !KnownKind(c.Kind) {
		return &UnknownKindError{Kind: c.Kind}
	}
	if c.Confidence.IsNegative() || c.Confidence.GreaterThan(decimal.NewFromInt(1)) {
		return &ConfidenceRangeError{Kind: c.Kind, Confidence: c.Confidence}
	}
	return nil
}
