// SPDX-License-Identifier: MIT
// Package lattice: events, statistics and result types shared by the
// reduction and enumeration engines.

package lattice

import "time"

// Operation names used in error contexts, log records and metric labels.
const (
	OpComputeGSO     = "ComputeGSO"
	OpSizeReduce     = "SizeReduce"
	OpLLL            = "LLL"
	OpDeepLLL        = "DeepLLL"
	OpEnumerate      = "Enumerate"
	OpShortestVector = "ShortestVector"
)

// EventKind distinguishes progress notifications.
type EventKind int

const (
	// EventImprovedVector: basis[0] became strictly shorter after a swap or insertion.
	EventImprovedVector EventKind = iota + 1

	// EventSearchCandidate: enumeration recorded a new candidate inside the radius.
	EventSearchCandidate
)

// String returns a stable lowercase name for logs.
func (k EventKind) String() string {
	switch k {
	case EventImprovedVector:
		return "improved_vector"
	case EventSearchCandidate:
		return "search_candidate"
	default:
		return "unknown"
	}
}

// Event is delivered to a ProgressFunc. Slices are fresh copies owned by the receiver.
type Event struct {
	Kind         EventKind
	Norm         float64   // Euclidean norm of Vector
	NormSquared  float64   // Norm²
	Vector       []float64 // lattice vector (basis[0] or the candidate)
	Coefficients []int64   // candidate coefficients; nil for EventImprovedVector
	Iteration    int       // loop iteration (reductions) or visited nodes (enumeration)
}

// ProgressFunc observes progress. Returning a non-nil error aborts the
// running operation at the current checkpoint with an error matching ErrCancelled.
type ProgressFunc func(Event) error

// Stats summarizes one reduction run.
type Stats struct {
	Iterations  int           // state-machine visits
	Swaps       int           // adjacent swaps (LLL)
	Insertions  int           // deep insertions (Deep-LLL)
	Checkpoints int           // cancellation polls performed
	Duration    time.Duration // wall time of the run
}

// EnumResult is the outcome of an enumeration.
//
// Coefficients has length Rows() and is zero outside the searched range;
// Vector = Σ Coefficients[i]·basis[i]. NormSquared is ‖Vector‖² for a search
// starting at row 0 and the projected squared norm otherwise.
type EnumResult struct {
	Coefficients []int64
	Vector       []float64
	NormSquared  float64
	Nodes        int // tree nodes visited
	Candidates   int // candidates recorded (radius tightenings)
}

// MetricsCollector receives one record per finished operation.
// Implementations must be safe for concurrent use when shared across lattices.
type MetricsCollector interface {
	RecordReduction(op string, stats Stats, err error)
	RecordEnumeration(res EnumResult, elapsed time.Duration, err error)
}

// NoopMetrics discards all records.
type NoopMetrics struct{}

// RecordReduction implements MetricsCollector.
func (NoopMetrics) RecordReduction(string, Stats, error) {}

// RecordEnumeration implements MetricsCollector.
func (NoopMetrics) RecordEnumeration(EnumResult, time.Duration, error) {}
