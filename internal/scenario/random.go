package scenario

import (
	"fmt"
	"math/rand"

	"github.com/elektrokombinacija/gridplan/internal/core"
)

// RandomParams configures Random.
type RandomParams struct {
	Rows, Cols  int
	MaxCost     int     // costs are uniform integers in [1, MaxCost]
	WallDensity float64 // probability that a cell is blocked
	Obstacles   int     // number of patrolling obstacles
	PatrolLen   int     // cells covered by each patrol
}

// DefaultRandomParams returns a 10x10 grid like Medium with one patrol.
func DefaultRandomParams() RandomParams {
	return RandomParams{
		Rows:        10,
		Cols:        10,
		MaxCost:     5,
		WallDensity: 0.1,
		Obstacles:   1,
		PatrolLen:   3,
	}
}

// Random generates a world. The corners stay open. Each obstacle patrols
// back and forth along a horizontal run of PatrolLen cells starting at a
// random cell, like the obstacle of Dynamic.
func Random(rng *rand.Rand, p RandomParams) (*core.World, error) {
	if p.Rows <= 0 || p.Cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d grid", core.ErrInvalidWorld, p.Rows, p.Cols)
	}
	if p.MaxCost < 1 {
		p.MaxCost = 1
	}
	if p.PatrolLen < 1 {
		p.PatrolLen = 1
	}

	grid := make([][]float64, p.Rows)
	for x := range grid {
		grid[x] = make([]float64, p.Cols)
		for y := range grid[x] {
			grid[x][y] = float64(1 + rng.Intn(p.MaxCost))
			if rng.Float64() < p.WallDensity {
				grid[x][y] = core.Blocked
			}
		}
	}
	grid[0][0] = 1
	grid[p.Rows-1][p.Cols-1] = 1

	obstacles := make([]*core.MovingObstacle, 0, p.Obstacles)
	for i := 0; i < p.Obstacles; i++ {
		o, err := core.NewMovingObstacle(patrol(rng, p)...)
		if err != nil {
			return nil, err
		}
		obstacles = append(obstacles, o)
	}
	return core.NewWorld(grid, obstacles...)
}

// patrol returns a there-and-back cycle: c0, c1, ..., cn, cn-1, ..., c1.
func patrol(rng *rand.Rand, p RandomParams) []core.Cell {
	n := p.PatrolLen
	if n > p.Cols {
		n = p.Cols
	}
	x := rng.Intn(p.Rows)
	y0 := rng.Intn(p.Cols - n + 1)

	cells := make([]core.Cell, 0, 2*n)
	for i := 0; i < n; i++ {
		cells = append(cells, core.Cell{X: x, Y: y0 + i})
	}
	for i := n - 2; i > 0; i-- {
		cells = append(cells, core.Cell{X: x, Y: y0 + i})
	}
	return cells
}
