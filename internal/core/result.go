package core

import (
	"math"
	"time"
)

// PlanResult is the outcome of a single planning call.
type PlanResult struct {
	Path     []Cell        // start..goal inclusive, nil when no path exists
	Cost     float64       // +Inf when no path exists
	Expanded int           // states removed from the frontier and expanded
	Elapsed  time.Duration // wall-clock time of the call
}

// NoPath returns the unified "no solution" result carrying the given metrics.
func NoPath(expanded int, elapsed time.Duration) *PlanResult {
	return &PlanResult{
		Cost:     math.Inf(1),
		Expanded: expanded,
		Elapsed:  elapsed,
	}
}

// Found reports whether the result holds a path.
func (r *PlanResult) Found() bool {
	return r != nil && len(r.Path) > 0
}
