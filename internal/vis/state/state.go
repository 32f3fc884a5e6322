// Package state manages the visualization state.
package state

import (
	"math/rand"

	"github.com/elektrokombinacija/gridplan/internal/algo"
	"github.com/elektrokombinacija/gridplan/internal/core"
	"github.com/elektrokombinacija/gridplan/internal/sim"
)

// State holds the world being shown, the controller run played back over
// it and the playback clock.
type State struct {
	World    *core.World
	Start    core.Cell
	Goal     core.Cell
	Seed     int64
	Run      *sim.Run
	Playback *PlaybackState
	Err      error
}

// NewState runs the controller once with the given seed.
func NewState(w *core.World, start, goal core.Cell, seed int64) *State {
	s := &State{World: w, Start: start, Goal: goal}
	s.Rerun(seed)
	return s
}

// Rerun executes a fresh controller run whose fallback planner is seeded
// with seed, and rewinds playback.
func (s *State) Rerun(seed int64) {
	s.Seed = seed
	ctrl := sim.NewController(sim.Config{
		Planner:  algo.NewAStar(algo.Options{}),
		Fallback: algo.NewAnnealing(algo.DefaultAnnealingConfig(), rand.New(rand.NewSource(seed))),
	})
	s.Run, s.Err = ctrl.Run(s.World, s.Start, s.Goal)

	maxStep := 0
	if s.Run != nil {
		maxStep = len(s.Run.Log)
	}
	s.Playback = NewPlaybackState(maxStep)
}

// Trail returns the agent cells from time 0 through step. Before the first
// logged move the agent is at Start.
func (s *State) Trail(step int) []core.Cell {
	trail := []core.Cell{s.Start}
	if s.Run == nil {
		return trail
	}
	for _, e := range s.Run.Log {
		if e.Time > step {
			break
		}
		trail = append(trail, e.Agent)
	}
	return trail
}

// AgentAt returns the agent cell at step.
func (s *State) AgentAt(step int) core.Cell {
	trail := s.Trail(step)
	return trail[len(trail)-1]
}

// Remaining returns the committed path from the agent's cell at step to
// its end; empty once the agent is past the path or the run failed.
func (s *State) Remaining(step int) []core.Cell {
	if s.Run == nil || !s.Run.Found() {
		return nil
	}
	if step+1 >= len(s.Run.Path) {
		return nil
	}
	return s.Run.Path[step:]
}

// EventsUpTo returns the replanning events detected at or before step.
func (s *State) EventsUpTo(step int) []sim.ReplanEvent {
	if s.Run == nil {
		return nil
	}
	var out []sim.ReplanEvent
	for _, e := range s.Run.Events {
		if e.Time <= step {
			out = append(out, e)
		}
	}
	return out
}

// Current returns the displayed step.
func (s *State) Current() int {
	return s.Playback.Step()
}
