// Package algo implements single-agent grid planners.
package algo

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/elektrokombinacija/gridplan/internal/core"
)

// Planner is the interface shared by every search algorithm.
type Planner interface {
	// Plan searches for a path from start to goal. A missing path is
	// reported through the result, not the error; the error is reserved
	// for malformed requests (core.ErrInvalidRequest).
	Plan(w *core.World, start, goal core.Cell) (*core.PlanResult, error)

	// Name returns the algorithm name.
	Name() string
}

// Algorithm names as accepted by NewPlanner.
const (
	NameUCS       = "ucs"
	NameAStar     = "a_star"
	NameAnnealing = "sa"
)

// ErrUnknownAlgorithm is returned by NewPlanner for unrecognised names.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Options select the search mode of UCS and A*.
type Options struct {
	// SpaceTime expands (cell, t) states with a wait action.
	SpaceTime bool
	// KnownDynamic prunes successors occupied by an obstacle at their
	// arrival time. Only meaningful together with SpaceTime.
	KnownDynamic bool
	// Horizon caps the time dimension of space-time search. Zero means
	// World.Horizon().
	Horizon int
}

// Names lists the algorithms in reporting order.
func Names() []string {
	return []string{NameUCS, NameAStar, NameAnnealing}
}

// NewPlanner builds a planner by name. rng is only used by "sa".
func NewPlanner(name string, opts Options, rng *rand.Rand) (Planner, error) {
	switch name {
	case NameUCS:
		return NewUCS(opts), nil
	case NameAStar:
		return NewAStar(opts), nil
	case NameAnnealing:
		return NewAnnealing(DefaultAnnealingConfig(), rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}
