package algo

import "github.com/elektrokombinacija/gridplan/internal/core"

// AStar is UCS guided by the Manhattan distance to the goal. On worlds with
// cells cheaper than 1 the distance is scaled by the cheapest cost so the
// heuristic never overestimates.
type AStar struct {
	Options Options
}

// NewAStar creates an A* planner.
func NewAStar(opts Options) *AStar {
	return &AStar{Options: opts}
}

func (a *AStar) Name() string { return NameAStar }

// Plan expands states in order of cost so far plus Manhattan distance.
func (a *AStar) Plan(w *core.World, start, goal core.Cell) (*core.PlanResult, error) {
	scale := 1.0
	if m := w.MinCost(); m < 1 {
		scale = m
	}
	return bestFirst(w, start, goal, a.Options, func(c core.Cell) float64 {
		return scale * float64(core.Manhattan(c, goal))
	})
}
