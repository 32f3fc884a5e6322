package algo

import "github.com/elektrokombinacija/gridplan/internal/core"

// UCS is uniform-cost (Dijkstra) search over cells or space-time states.
type UCS struct {
	Options Options
}

// NewUCS creates a UCS planner.
func NewUCS(opts Options) *UCS {
	return &UCS{Options: opts}
}

func (u *UCS) Name() string { return NameUCS }

// Plan expands states in order of accumulated cost.
func (u *UCS) Plan(w *core.World, start, goal core.Cell) (*core.PlanResult, error) {
	return bestFirst(w, start, goal, u.Options, func(core.Cell) float64 { return 0 })
}
