package core

import (
	"fmt"
	"math"
)

// World is an immutable weighted grid with optional moving obstacles.
type World struct {
	Rows, Cols int

	cost      [][]float64 // cost[x][y]; Blocked for walls
	obstacles []*MovingObstacle
}

// NewWorld builds a world from a rectangular cost grid. Every cost must be
// positive or Blocked. The grid is copied.
func NewWorld(costs [][]float64, obstacles ...*MovingObstacle) (*World, error) {
	if len(costs) == 0 || len(costs[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidWorld)
	}

	rows, cols := len(costs), len(costs[0])
	grid := make([][]float64, rows)
	for x, row := range costs {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidWorld, x, len(row), cols)
		}
		for y, c := range row {
			if math.IsNaN(c) || c <= 0 {
				return nil, fmt.Errorf("%w: cell (%d, %d) has non-positive cost %v", ErrInvalidWorld, x, y, c)
			}
		}
		grid[x] = append([]float64(nil), row...)
	}

	for i, o := range obstacles {
		if o == nil {
			return nil, fmt.Errorf("%w: obstacle %d is nil", ErrInvalidWorld, i)
		}
	}

	return &World{
		Rows:      rows,
		Cols:      cols,
		cost:      grid,
		obstacles: append([]*MovingObstacle(nil), obstacles...),
	}, nil
}

// UniformGrid returns a rows x cols cost grid filled with c.
func UniformGrid(rows, cols int, c float64) [][]float64 {
	grid := make([][]float64, rows)
	for x := range grid {
		grid[x] = make([]float64, cols)
		for y := range grid[x] {
			grid[x][y] = c
		}
	}
	return grid
}

// InBounds reports whether c addresses a grid cell.
func (w *World) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < w.Rows && c.Y >= 0 && c.Y < w.Cols
}

// IsValid reports whether (x, y) is in bounds and not Blocked.
func (w *World) IsValid(x, y int) bool {
	return x >= 0 && x < w.Rows && y >= 0 && y < w.Cols && !math.IsInf(w.cost[x][y], 1)
}

// Cost returns the cost of entering c. Out-of-bounds cells are Blocked.
func (w *World) Cost(c Cell) float64 {
	if !w.InBounds(c) {
		return Blocked
	}
	return w.cost[c.X][c.Y]
}

// neighborOffsets in generation order: up, down, left, right.
var neighborOffsets = [4]Cell{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Neighbors returns the 4-connected traversable cells around (x, y).
func (w *World) Neighbors(x, y int) []Cell {
	out := make([]Cell, 0, 4)
	for _, d := range neighborOffsets {
		nx, ny := x+d.X, y+d.Y
		if w.IsValid(nx, ny) {
			out = append(out, Cell{X: nx, Y: ny})
		}
	}
	return out
}

// IsBlockedAt reports whether any moving obstacle occupies (x, y) at time t.
// Static walls are not consulted here.
func (w *World) IsBlockedAt(x, y, t int) bool {
	for _, o := range w.obstacles {
		if p := o.PositionAt(t); p.X == x && p.Y == y {
			return true
		}
	}
	return false
}

// Obstacles returns the moving obstacles in declaration order.
func (w *World) Obstacles() []*MovingObstacle {
	return append([]*MovingObstacle(nil), w.obstacles...)
}

// ObstaclesAt returns every obstacle position at time t.
func (w *World) ObstaclesAt(t int) []Cell {
	if len(w.obstacles) == 0 {
		return nil
	}
	out := make([]Cell, len(w.obstacles))
	for i, o := range w.obstacles {
		out[i] = o.PositionAt(t)
	}
	return out
}

// Validate rejects start/goal cells that are out of bounds or Blocked.
func (w *World) Validate(start, goal Cell) error {
	for _, ep := range []struct {
		name string
		c    Cell
	}{{"start", start}, {"goal", goal}} {
		if !w.InBounds(ep.c) {
			return fmt.Errorf("%w: %s %v outside %dx%d grid", ErrInvalidRequest, ep.name, ep.c, w.Rows, w.Cols)
		}
		if !w.IsValid(ep.c.X, ep.c.Y) {
			return fmt.Errorf("%w: %s %v is blocked", ErrInvalidRequest, ep.name, ep.c)
		}
	}
	return nil
}

// PathCost sums entered-cell costs after the first cell. Consecutive
// repeats are wait steps and cost nothing.
func (w *World) PathCost(path []Cell) float64 {
	if len(path) == 0 {
		return math.Inf(1)
	}
	total := 0.0
	for i := 1; i < len(path); i++ {
		if path[i] == path[i-1] {
			continue
		}
		total += w.Cost(path[i])
	}
	return total
}

// MinCost returns the cheapest traversable cell cost, or Blocked when every
// cell is a wall.
func (w *World) MinCost() float64 {
	m := Blocked
	for _, row := range w.cost {
		for _, c := range row {
			if c < m {
				m = c
			}
		}
	}
	return m
}

// MaxCost returns the highest finite cell cost, at least 1.
func (w *World) MaxCost() float64 {
	m := 1.0
	for _, row := range w.cost {
		for _, c := range row {
			if c != Blocked && c > m {
				m = c
			}
		}
	}
	return m
}

// MaxHorizon caps Horizon when the obstacle periods have a huge common
// multiple.
const MaxHorizon = 1 << 20

// Horizon returns the default time cap for space-time search: rows·cols·L,
// where L is the least common multiple of the obstacle periods (1 without
// obstacles). A state (cell, t) has the same future as (cell, t+L), so some
// optimal path never repeats a (cell, t mod L) pair and arrives before t
// reaches the cap. The result never exceeds MaxHorizon.
func (w *World) Horizon() int {
	cells := w.Rows * w.Cols
	if cells >= MaxHorizon {
		return MaxHorizon
	}
	l := 1
	for _, o := range w.obstacles {
		l = lcm(l, o.Period())
		if l >= MaxHorizon/cells {
			return MaxHorizon
		}
	}
	return cells * l
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}
