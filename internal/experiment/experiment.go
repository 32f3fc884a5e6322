// Package experiment runs every planner on every scenario and reports the
// results as Markdown, CSV or JSON.
package experiment

import (
	"fmt"
	"log"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/elektrokombinacija/gridplan/internal/algo"
	"github.com/elektrokombinacija/gridplan/internal/core"
	"github.com/elektrokombinacija/gridplan/internal/scenario"
	"github.com/elektrokombinacija/gridplan/internal/sim"
)

// Config selects the experiment grid.
type Config struct {
	Seed       int64
	Maps       []string
	Algorithms []string

	// Logger receives controller notices on the dynamic map. Nil discards.
	Logger *log.Logger
}

// DefaultConfig runs all scenarios against all algorithms with seed 1.
func DefaultConfig() Config {
	return Config{
		Seed:       1,
		Maps:       scenario.Names(),
		Algorithms: algo.Names(),
	}
}

// Row is one map x algorithm measurement.
type Row struct {
	RunID     uuid.UUID
	Seed      int64
	Map       string
	Algorithm string
	Cost      float64
	Expanded  int
	Elapsed   time.Duration
	Found     bool
	Replanned bool
}

// Run executes the experiment. Every query goes from the top-left to the
// bottom-right corner. On the dynamic map each algorithm row runs the
// online controller, since none of the planners see the obstacle.
func Run(cfg Config) ([]Row, error) {
	if len(cfg.Maps) == 0 {
		cfg.Maps = scenario.Names()
	}
	if len(cfg.Algorithms) == 0 {
		cfg.Algorithms = algo.Names()
	}
	for _, name := range cfg.Algorithms {
		if !slices.Contains(algo.Names(), name) {
			return nil, fmt.Errorf("%w: %q", algo.ErrUnknownAlgorithm, name)
		}
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	var rows []Row
	for _, m := range cfg.Maps {
		w, err := scenario.ByName(m, rng)
		if err != nil {
			return nil, err
		}
		start, goal := scenario.Corners(w)

		for _, name := range cfg.Algorithms {
			row := Row{RunID: uuid.New(), Seed: cfg.Seed, Map: m, Algorithm: name}

			if m == scenario.NameDynamic {
				ctrl := sim.NewController(sim.Config{
					Planner:  algo.NewAStar(algo.Options{}),
					Fallback: algo.NewAnnealing(algo.DefaultAnnealingConfig(), rng),
					Logger:   cfg.Logger,
				})
				run, err := ctrl.Run(w, start, goal)
				if err != nil {
					return nil, fmt.Errorf("%s/%s: %w", m, name, err)
				}
				row.RunID = run.ID
				row.fill(&run.PlanResult)
				row.Replanned = run.Replanned
			} else {
				p, err := algo.NewPlanner(name, algo.Options{}, rng)
				if err != nil {
					return nil, err
				}
				res, err := p.Plan(w, start, goal)
				if err != nil {
					return nil, fmt.Errorf("%s/%s: %w", m, name, err)
				}
				row.fill(res)
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (r *Row) fill(res *core.PlanResult) {
	r.Cost = res.Cost
	r.Expanded = res.Expanded
	r.Elapsed = res.Elapsed
	r.Found = res.Found()
}
