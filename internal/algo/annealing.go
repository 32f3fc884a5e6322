package algo

import (
	"math"
	"math/rand"
	"time"

	"github.com/elektrokombinacija/gridplan/internal/core"
)

// AnnealingConfig tunes the simulated-annealing fallback planner.
type AnnealingConfig struct {
	MaxIter     int     // Iterations per attempt
	InitialTemp float64 // Starting temperature
	CoolingRate float64 // Temperature multiplier per iteration, in (0, 1)
	Restarts    int     // Independent attempts before giving up
}

// DefaultAnnealingConfig returns the standard annealing parameters.
func DefaultAnnealingConfig() AnnealingConfig {
	return AnnealingConfig{
		MaxIter:     1000,
		InitialTemp: 100,
		CoolingRate: 0.99,
		Restarts:    10,
	}
}

// withDefaults fills non-positive fields from DefaultAnnealingConfig.
func (c AnnealingConfig) withDefaults() AnnealingConfig {
	d := DefaultAnnealingConfig()
	if c.MaxIter <= 0 {
		c.MaxIter = d.MaxIter
	}
	if c.InitialTemp <= 0 {
		c.InitialTemp = d.InitialTemp
	}
	if c.CoolingRate <= 0 || c.CoolingRate > 1 {
		c.CoolingRate = d.CoolingRate
	}
	if c.Restarts <= 0 {
		c.Restarts = d.Restarts
	}
	return c
}

// Annealing is a randomized local search toward the goal with restarts.
// It is neither complete nor optimal, and it is not safe for concurrent
// use because it owns its random source.
type Annealing struct {
	Config AnnealingConfig
	rng    *rand.Rand
}

// NewAnnealing creates an annealing planner. A nil rng is replaced by a
// time-seeded source; tests should pass a seeded one.
func NewAnnealing(cfg AnnealingConfig, rng *rand.Rand) *Annealing {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Annealing{
		Config: cfg.withDefaults(),
		rng:    rng,
	}
}

func (a *Annealing) Name() string { return NameAnnealing }

// Plan runs up to Config.Restarts attempts and returns the first success.
// Expansion counts and elapsed time accumulate over every attempt.
func (a *Annealing) Plan(w *core.World, start, goal core.Cell) (*core.PlanResult, error) {
	if err := w.Validate(start, goal); err != nil {
		return nil, err
	}

	total := core.NoPath(0, 0)
	for i := 0; i < a.Config.Restarts; i++ {
		res := a.Attempt(w, start, goal)
		total.Expanded += res.Expanded
		total.Elapsed += res.Elapsed
		if res.Found() {
			total.Path = res.Path
			total.Cost = res.Cost
			return total, nil
		}
	}
	return total, nil
}

// Attempt performs a single annealing walk. The caller is responsible for
// validating start and goal.
func (a *Annealing) Attempt(w *core.World, start, goal core.Cell) *core.PlanResult {
	began := time.Now()

	current := start
	path := []core.Cell{start}
	temp := a.Config.InitialTemp
	expanded := 0

	for i := 0; i < a.Config.MaxIter; i++ {
		expanded++
		if current == goal {
			return &core.PlanResult{
				Path:     path,
				Cost:     w.PathCost(path),
				Expanded: expanded,
				Elapsed:  time.Since(began),
			}
		}

		neighbors := w.Neighbors(current.X, current.Y)
		if len(neighbors) == 0 {
			break
		}
		candidate := neighbors[a.rng.Intn(len(neighbors))]

		delta := float64(core.Manhattan(candidate, goal) - core.Manhattan(current, goal))
		if delta < 0 || a.rng.Float64() < math.Exp(-delta/temp) {
			path = append(path, candidate)
			current = candidate
		}
		temp *= a.Config.CoolingRate
	}

	return core.NoPath(expanded, time.Since(began))
}
