// Package scenario builds the demonstration and benchmark worlds.
package scenario

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/elektrokombinacija/gridplan/internal/core"
)

// Scenario names accepted by ByName.
const (
	NameSmall   = "small"
	NameMedium  = "medium"
	NameLarge   = "large"
	NameDynamic = "dynamic"
)

// ErrUnknownScenario is returned by ByName for unrecognised names.
var ErrUnknownScenario = errors.New("unknown scenario")

// Names lists the scenarios in experiment order.
func Names() []string {
	return []string{NameSmall, NameMedium, NameLarge, NameDynamic}
}

// ByName builds a scenario. rng seeds the random maps; a nil rng gives
// seed 1.
func ByName(name string, rng *rand.Rand) (*core.World, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	switch name {
	case NameSmall:
		return Small()
	case NameMedium:
		return Medium(rng)
	case NameLarge:
		return Large(rng)
	case NameDynamic:
		return Dynamic()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
}

// Small is a 5x5 unit grid with four interior walls.
func Small() (*core.World, error) {
	grid := core.UniformGrid(5, 5, 1)
	for _, c := range []core.Cell{{X: 1, Y: 1}, {X: 1, Y: 3}, {X: 3, Y: 1}, {X: 3, Y: 3}} {
		grid[c.X][c.Y] = core.Blocked
	}
	return core.NewWorld(grid)
}

// Medium is a 10x10 grid with random costs in [1,5] and two walls.
func Medium(rng *rand.Rand) (*core.World, error) {
	grid := randomCosts(rng, 10, 10)
	grid[4][4] = core.Blocked
	grid[5][5] = core.Blocked
	return core.NewWorld(grid)
}

// Large is a 20x20 grid with random costs in [1,5]. Each column has a 10%
// chance of one wall at a random row; the corners stay open so the default
// corner-to-corner query is always well formed.
func Large(rng *rand.Rand) (*core.World, error) {
	const n = 20
	grid := randomCosts(rng, n, n)
	for y := 0; y < n; y++ {
		if rng.Float64() < 0.1 {
			x := rng.Intn(n)
			if (x == 0 && y == 0) || (x == n-1 && y == n-1) {
				continue
			}
			grid[x][y] = core.Blocked
		}
	}
	return core.NewWorld(grid)
}

// Dynamic is a 10x10 unit grid with one wall and one obstacle patrolling
// (3,3) -> (3,4) -> (3,5) -> (3,4).
func Dynamic() (*core.World, error) {
	grid := core.UniformGrid(10, 10, 1)
	grid[5][5] = core.Blocked
	obs, err := core.NewMovingObstacle(
		core.Cell{X: 3, Y: 3},
		core.Cell{X: 3, Y: 4},
		core.Cell{X: 3, Y: 5},
		core.Cell{X: 3, Y: 4},
	)
	if err != nil {
		return nil, err
	}
	return core.NewWorld(grid, obs)
}

// Corners returns the default query for a world: top-left to bottom-right.
func Corners(w *core.World) (start, goal core.Cell) {
	return core.Cell{}, core.Cell{X: w.Rows - 1, Y: w.Cols - 1}
}

func randomCosts(rng *rand.Rand, rows, cols int) [][]float64 {
	grid := make([][]float64, rows)
	for x := range grid {
		grid[x] = make([]float64, cols)
		for y := range grid[x] {
			grid[x][y] = float64(1 + rng.Intn(5))
		}
	}
	return grid
}
