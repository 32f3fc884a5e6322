package algo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gridplan/internal/core"
)

func TestAnnealingBoundedIterations(t *testing.T) {
	// Goal walled off: every attempt runs to MaxIter.
	w := createGrid(t, 6, 6, core.Cell{X: 4, Y: 5}, core.Cell{X: 5, Y: 4})
	start, goal := core.Cell{X: 0, Y: 0}, core.Cell{X: 5, Y: 5}
	cfg := AnnealingConfig{MaxIter: 50, InitialTemp: 100, CoolingRate: 0.99, Restarts: 3}

	for seed := int64(0); seed < 25; seed++ {
		res, err := NewAnnealing(cfg, rand.New(rand.NewSource(seed))).Plan(w, start, goal)
		require.NoError(t, err)
		assert.False(t, res.Found())
		assert.True(t, math.IsInf(res.Cost, 1))
		assert.Equal(t, cfg.Restarts*cfg.MaxIter, res.Expanded, "seed %d", seed)
	}
}

func TestAnnealingRespectsIterationLimit(t *testing.T) {
	w := createGrid(t, 10, 10, core.Cell{X: 5, Y: 5})
	cfg := AnnealingConfig{MaxIter: 40, InitialTemp: 50, CoolingRate: 0.9, Restarts: 4}

	for seed := int64(0); seed < 25; seed++ {
		res, err := NewAnnealing(cfg, rand.New(rand.NewSource(seed))).Plan(w, core.Cell{}, core.Cell{X: 9, Y: 9})
		require.NoError(t, err)
		assert.LessOrEqual(t, res.Expanded, cfg.Restarts*cfg.MaxIter)
		if res.Found() {
			requireWellFormed(t, w, res, core.Cell{}, core.Cell{X: 9, Y: 9})
		}
	}
}

func TestAnnealingIsolatedStartAborts(t *testing.T) {
	// (0,0) has no traversable neighbors.
	w := createGrid(t, 3, 3, core.Cell{X: 0, Y: 1}, core.Cell{X: 1, Y: 0})
	a := NewAnnealing(AnnealingConfig{MaxIter: 100, Restarts: 5}, rand.New(rand.NewSource(1)))

	res := a.Attempt(w, core.Cell{}, core.Cell{X: 2, Y: 2})
	assert.False(t, res.Found())
	assert.Equal(t, 1, res.Expanded)

	res, err := a.Plan(w, core.Cell{}, core.Cell{X: 2, Y: 2})
	require.NoError(t, err)
	assert.False(t, res.Found())
	assert.Equal(t, 5, res.Expanded)
}

func TestAnnealingSeededRunsRepeat(t *testing.T) {
	w := createGrid(t, 8, 8)
	start, goal := core.Cell{X: 0, Y: 0}, core.Cell{X: 7, Y: 7}

	first, err := NewAnnealing(DefaultAnnealingConfig(), rand.New(rand.NewSource(42))).Plan(w, start, goal)
	require.NoError(t, err)
	second, err := NewAnnealing(DefaultAnnealingConfig(), rand.New(rand.NewSource(42))).Plan(w, start, goal)
	require.NoError(t, err)

	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.Expanded, second.Expanded)
	assert.Equal(t, first.Cost, second.Cost)
}

func TestAnnealingGreedyWhenCold(t *testing.T) {
	// Near-zero temperature rejects every non-improving move, so on an open
	// grid each accepted step gets strictly closer to the goal.
	w := createGrid(t, 6, 6)
	cfg := AnnealingConfig{MaxIter: 500, InitialTemp: 1e-9, CoolingRate: 0.5, Restarts: 1}
	start, goal := core.Cell{X: 0, Y: 0}, core.Cell{X: 5, Y: 5}

	res, err := NewAnnealing(cfg, rand.New(rand.NewSource(3))).Plan(w, start, goal)
	require.NoError(t, err)
	requireWellFormed(t, w, res, start, goal)
	assert.Len(t, res.Path, core.Manhattan(start, goal)+1)
	assert.Equal(t, 10.0, res.Cost)
}

func TestAnnealingConfigDefaults(t *testing.T) {
	a := NewAnnealing(AnnealingConfig{}, nil)
	assert.Equal(t, DefaultAnnealingConfig(), a.Config)

	a = NewAnnealing(AnnealingConfig{MaxIter: 5, CoolingRate: 1.5}, nil)
	assert.Equal(t, 5, a.Config.MaxIter)
	assert.Equal(t, 0.99, a.Config.CoolingRate)
	assert.Equal(t, NameAnnealing, a.Name())
}
