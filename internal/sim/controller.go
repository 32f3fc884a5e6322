// Package sim executes a committed plan against obstacles that the planner
// did not see, replanning online when the next move would collide.
package sim

import (
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/elektrokombinacija/gridplan/internal/algo"
	"github.com/elektrokombinacija/gridplan/internal/core"
)

// Phase is a controller state.
type Phase int

const (
	Planning Phase = iota
	Executing
	Replanning
	Succeeded
	Failed
)

func (p Phase) String() string {
	return [...]string{"Planning", "Executing", "Replanning", "Succeeded", "Failed"}[p]
}

// Config configures the controller.
type Config struct {
	// Planner produces the initial, obstacle-unaware plan.
	Planner algo.Planner

	// Fallback replans from the agent's cell after a detected conflict.
	Fallback algo.Planner

	// MaxReplans bounds fallback invocations per run. Time does not advance
	// while replanning, so an obstacle parked on the only way forward would
	// otherwise trigger replans forever.
	MaxReplans int

	// Logger receives replanning notices. Nil discards them.
	Logger *log.Logger
}

// DefaultConfig returns plain A* for planning and annealing with restarts
// (time-seeded) for recovery.
func DefaultConfig() Config {
	return Config{
		Planner:    algo.NewAStar(algo.Options{}),
		Fallback:   algo.NewAnnealing(algo.DefaultAnnealingConfig(), nil),
		MaxReplans: 100,
	}
}

// StepEntry records one committed move.
type StepEntry struct {
	Time      int         `json:"time"`
	Agent     core.Cell   `json:"agent"`
	Obstacles []core.Cell `json:"obstacles,omitempty"`
}

// ReplanEvent records a conflict detected one step ahead.
type ReplanEvent struct {
	Time    int       `json:"time"`    // simulated time when detected
	From    core.Cell `json:"from"`    // agent cell, where replanning starts
	Blocked core.Cell `json:"blocked"` // cell occupied at Time+1
}

// Run is the outcome of one controller execution.
type Run struct {
	core.PlanResult

	ID        uuid.UUID
	Phase     Phase // Succeeded or Failed
	Replanned bool
	Log       []StepEntry
	Events    []ReplanEvent
}

// Controller drives an agent along a plan, replanning on conflicts.
type Controller struct {
	config Config
	logger *log.Logger
}

// NewController creates a controller. Missing planners fall back to
// DefaultConfig.
func NewController(cfg Config) *Controller {
	def := DefaultConfig()
	if cfg.Planner == nil {
		cfg.Planner = def.Planner
	}
	if cfg.Fallback == nil {
		cfg.Fallback = def.Fallback
	}
	if cfg.MaxReplans <= 0 {
		cfg.MaxReplans = def.MaxReplans
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Controller{config: cfg, logger: logger}
}

// Run plans from start to goal and executes the plan, querying the world
// for obstacle occupancy one step ahead of every move. Invalid requests are
// returned as errors wrapping core.ErrInvalidRequest; every other outcome
// is reported through the Run.
func (c *Controller) Run(w *core.World, start, goal core.Cell) (*Run, error) {
	if err := w.Validate(start, goal); err != nil {
		return nil, err
	}

	run := &Run{
		ID:         uuid.New(),
		PlanResult: *core.NoPath(0, 0),
		Phase:      Planning,
	}

	plan, err := c.config.Planner.Plan(w, start, goal)
	if err != nil {
		return nil, fmt.Errorf("initial planning: %w", err)
	}
	run.Expanded += plan.Expanded
	run.Elapsed += plan.Elapsed
	if !plan.Found() {
		run.Phase = Failed
		return run, nil
	}

	current := start
	simTime := 0
	path := plan.Path
	next := 1
	traversed := []core.Cell{start}
	replans := 0

	run.Phase = Executing
	for run.Phase == Executing {
		if next >= len(path) {
			break
		}
		target := path[next]

		if w.IsBlockedAt(target.X, target.Y, simTime+1) {
			if replans >= c.config.MaxReplans {
				c.logger.Printf("obstacle at %v at time %d, giving up after %d replans", target, simTime+1, c.config.MaxReplans)
				run.Phase = Failed
				break
			}

			run.Phase = Replanning
			replans++
			run.Replanned = true
			run.Events = append(run.Events, ReplanEvent{Time: simTime, From: current, Blocked: target})
			c.logger.Printf("obstacle at %v at time %d, replanning from %v", target, simTime+1, current)

			replan, err := c.config.Fallback.Plan(w, current, goal)
			if err != nil {
				return nil, fmt.Errorf("replanning from %v: %w", current, err)
			}
			run.Expanded += replan.Expanded
			run.Elapsed += replan.Elapsed
			if !replan.Found() {
				run.Phase = Failed
				break
			}

			path = replan.Path
			next = 1
			run.Phase = Executing
			continue
		}

		current = target
		next++
		simTime++
		traversed = append(traversed, current)
		run.Log = append(run.Log, StepEntry{
			Time:      simTime,
			Agent:     current,
			Obstacles: w.ObstaclesAt(simTime),
		})
	}

	if run.Phase == Executing && current == goal {
		run.Phase = Succeeded
		run.Path = traversed
		run.Cost = w.PathCost(traversed)
		return run, nil
	}

	run.Phase = Failed
	return run, nil
}

// Steps returns the number of committed moves.
func (r *Run) Steps() int {
	return len(r.Log)
}
