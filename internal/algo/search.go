package algo

import (
	"container/heap"
	"time"

	"github.com/elektrokombinacija/gridplan/internal/core"
)

// heuristicFunc estimates the remaining cost from a cell to the goal.
type heuristicFunc func(c core.Cell) float64

// bestFirst is the engine behind UCS and A*. Each call owns its frontier,
// cost map and closed set, so concurrent calls on one World are safe.
func bestFirst(w *core.World, start, goal core.Cell, opts Options, h heuristicFunc) (*core.PlanResult, error) {
	began := time.Now()

	if err := w.Validate(start, goal); err != nil {
		return nil, err
	}

	horizon := opts.Horizon
	if horizon <= 0 {
		horizon = w.Horizon()
	}

	open := &frontier{}
	heap.Init(open)
	seq := 0
	push := func(n *searchNode) {
		n.seq = seq
		seq++
		heap.Push(open, n)
	}

	initial := searchState{Cell: start}
	best := map[searchState]float64{initial: 0}
	closed := make(map[searchState]bool)
	push(&searchNode{state: initial, f: h(start)})

	expanded := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode)

		if closed[current.state] {
			continue
		}
		closed[current.state] = true
		expanded++

		if current.state.Cell == goal {
			path := reconstructPath(current)
			cost := current.g
			if opts.SpaceTime {
				cost = w.PathCost(path)
			}
			return &core.PlanResult{
				Path:     path,
				Cost:     cost,
				Expanded: expanded,
				Elapsed:  time.Since(began),
			}, nil
		}

		if opts.SpaceTime && current.state.T >= horizon {
			continue
		}

		for _, next := range successors(w, current.state, opts) {
			if closed[next] {
				continue
			}
			g := current.g
			if next.Cell != current.state.Cell {
				g += w.Cost(next.Cell)
			}
			if old, seen := best[next]; seen && g >= old {
				continue
			}
			best[next] = g
			push(&searchNode{
				state:  next,
				g:      g,
				f:      g + h(next.Cell),
				parent: current,
			})
		}
	}

	return core.NoPath(expanded, time.Since(began)), nil
}

// successors expands a state. Space-time mode adds a wait action and
// advances time; with KnownDynamic, arrivals on an obstacle are pruned.
func successors(w *core.World, s searchState, opts Options) []searchState {
	cells := w.Neighbors(s.Cell.X, s.Cell.Y)
	if !opts.SpaceTime {
		out := make([]searchState, len(cells))
		for i, c := range cells {
			out[i] = searchState{Cell: c}
		}
		return out
	}

	cells = append(cells, s.Cell)
	nextT := s.T + 1
	out := make([]searchState, 0, len(cells))
	for _, c := range cells {
		if opts.KnownDynamic && w.IsBlockedAt(c.X, c.Y, nextT) {
			continue
		}
		out = append(out, searchState{Cell: c, T: nextT})
	}
	return out
}
