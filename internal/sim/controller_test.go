package sim

import (
	"bytes"
	"errors"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gridplan/internal/algo"
	"github.com/elektrokombinacija/gridplan/internal/core"
)

// createDynamicWorld is a 10x10 unit grid with a wall at (5,5) and an
// obstacle patrolling row 3 across column 4.
func createDynamicWorld(t *testing.T) *core.World {
	t.Helper()
	grid := core.UniformGrid(10, 10, 1)
	grid[5][5] = core.Blocked
	obs, err := core.NewMovingObstacle(core.Cell{X: 3, Y: 3}, core.Cell{X: 3, Y: 4}, core.Cell{X: 3, Y: 5}, core.Cell{X: 3, Y: 4})
	require.NoError(t, err)
	w, err := core.NewWorld(grid, obs)
	require.NoError(t, err)
	return w
}

func seededController(seed int64) *Controller {
	return NewController(Config{
		Planner:  algo.NewAStar(algo.Options{}),
		Fallback: algo.NewAnnealing(algo.DefaultAnnealingConfig(), rand.New(rand.NewSource(seed))),
	})
}

// stubPlanner returns a fixed result for every call.
type stubPlanner struct {
	calls int
	plan  func(start, goal core.Cell) *core.PlanResult
}

func (s *stubPlanner) Name() string { return "stub" }

func (s *stubPlanner) Plan(w *core.World, start, goal core.Cell) (*core.PlanResult, error) {
	s.calls++
	return s.plan(start, goal), nil
}

func TestControllerReplansBeforeCollision(t *testing.T) {
	w := createDynamicWorld(t)
	start, goal := core.Cell{X: 0, Y: 4}, core.Cell{X: 9, Y: 4}

	for _, seed := range []int64{1, 2, 3} {
		run, err := seededController(seed).Run(w, start, goal)
		require.NoError(t, err)
		require.Equal(t, Succeeded, run.Phase, "seed %d", seed)
		require.True(t, run.Replanned)
		require.NotEmpty(t, run.Events)

		// The straight plan down column 4 meets the obstacle at (3,4) at
		// t=3; the conflict is caught from (2,4) at t=2.
		assert.Equal(t, ReplanEvent{Time: 2, From: core.Cell{X: 2, Y: 4}, Blocked: core.Cell{X: 3, Y: 4}}, run.Events[0])

		require.Equal(t, start, run.Path[0])
		require.Equal(t, goal, run.Path[len(run.Path)-1])
		require.Len(t, run.Path, run.Steps()+1)

		for i, e := range run.Log {
			assert.Equal(t, i+1, e.Time)
			assert.Equal(t, run.Path[i+1], e.Agent)
			assert.Equal(t, 1, core.Manhattan(run.Path[i], run.Path[i+1]))
			if w.IsBlockedAt(e.Agent.X, e.Agent.Y, e.Time) {
				t.Fatalf("seed %d: agent collides with obstacle at %v, t=%d", seed, e.Agent, e.Time)
			}
			assert.Equal(t, w.ObstaclesAt(e.Time), e.Obstacles)
		}

		assert.Equal(t, w.PathCost(run.Path), run.Cost)
		assert.GreaterOrEqual(t, run.Cost, 9.0)
	}
}

func TestControllerWithoutObstaclesFollowsPlan(t *testing.T) {
	w, err := core.NewWorld(core.UniformGrid(6, 6, 1))
	require.NoError(t, err)
	start, goal := core.Cell{X: 0, Y: 0}, core.Cell{X: 5, Y: 5}

	plan, err := algo.NewAStar(algo.Options{}).Plan(w, start, goal)
	require.NoError(t, err)

	run, err := seededController(1).Run(w, start, goal)
	require.NoError(t, err)
	assert.Equal(t, Succeeded, run.Phase)
	assert.False(t, run.Replanned)
	assert.Empty(t, run.Events)
	assert.Equal(t, plan.Path, run.Path)
	assert.Equal(t, plan.Cost, run.Cost)
	assert.Equal(t, plan.Expanded, run.Expanded)
	for _, e := range run.Log {
		assert.Nil(t, e.Obstacles)
	}
}

func TestControllerFailsWithoutInitialPlan(t *testing.T) {
	grid := core.UniformGrid(4, 4, 1)
	grid[2][3], grid[3][2] = core.Blocked, core.Blocked
	w, err := core.NewWorld(grid)
	require.NoError(t, err)

	run, err := seededController(1).Run(w, core.Cell{}, core.Cell{X: 3, Y: 3})
	require.NoError(t, err)
	assert.Equal(t, Failed, run.Phase)
	assert.Nil(t, run.Path)
	assert.True(t, math.IsInf(run.Cost, 1))
	assert.Positive(t, run.Expanded)
	assert.Empty(t, run.Log)
}

func TestControllerRejectsInvalidRequest(t *testing.T) {
	w := createDynamicWorld(t)

	_, err := seededController(1).Run(w, core.Cell{X: 5, Y: 5}, core.Cell{X: 9, Y: 9})
	assert.ErrorIs(t, err, core.ErrInvalidRequest)

	_, err = seededController(1).Run(w, core.Cell{}, core.Cell{X: 10, Y: 0})
	assert.ErrorIs(t, err, core.ErrInvalidRequest)
}

func TestControllerFallbackFailure(t *testing.T) {
	w := createDynamicWorld(t)
	fallback := &stubPlanner{plan: func(core.Cell, core.Cell) *core.PlanResult {
		return core.NoPath(11, 0)
	}}
	initial, err := algo.NewAStar(algo.Options{}).Plan(w, core.Cell{X: 0, Y: 4}, core.Cell{X: 9, Y: 4})
	require.NoError(t, err)

	run, err := NewController(Config{Fallback: fallback}).Run(w, core.Cell{X: 0, Y: 4}, core.Cell{X: 9, Y: 4})
	require.NoError(t, err)
	assert.Equal(t, Failed, run.Phase)
	assert.Equal(t, 1, fallback.calls)
	assert.Nil(t, run.Path)
	assert.True(t, math.IsInf(run.Cost, 1))
	assert.Equal(t, initial.Expanded+11, run.Expanded)
	assert.Len(t, run.Log, 2)
}

func TestControllerStopsAfterMaxReplans(t *testing.T) {
	w := createDynamicWorld(t)
	// Always proposes walking straight into the obstacle.
	fallback := &stubPlanner{plan: func(start, goal core.Cell) *core.PlanResult {
		path := []core.Cell{start}
		for x := start.X + 1; x <= goal.X; x++ {
			path = append(path, core.Cell{X: x, Y: start.Y})
		}
		return &core.PlanResult{Path: path, Cost: float64(len(path) - 1), Expanded: 1}
	}}

	var logs bytes.Buffer
	ctl := NewController(Config{Fallback: fallback, MaxReplans: 3, Logger: log.New(&logs, "", 0)})
	run, err := ctl.Run(w, core.Cell{X: 0, Y: 4}, core.Cell{X: 9, Y: 4})
	require.NoError(t, err)

	assert.Equal(t, Failed, run.Phase)
	assert.Equal(t, 3, fallback.calls)
	assert.Len(t, run.Events, fallback.calls, "one event per fallback call")
	assert.Equal(t, 3, strings.Count(logs.String(), "replanning from (2, 4)"))
	assert.Contains(t, logs.String(), "giving up after 3 replans")
}

func TestControllerPropagatesPlannerErrors(t *testing.T) {
	w := createDynamicWorld(t)
	boom := errors.New("boom")
	ctl := NewController(Config{Planner: errPlanner{boom}})

	_, err := ctl.Run(w, core.Cell{}, core.Cell{X: 9, Y: 9})
	assert.ErrorIs(t, err, boom)
}

type errPlanner struct{ err error }

func (p errPlanner) Name() string { return "err" }

func (p errPlanner) Plan(*core.World, core.Cell, core.Cell) (*core.PlanResult, error) {
	return nil, p.err
}

func TestReplanLog(t *testing.T) {
	w := createDynamicWorld(t)
	run, err := seededController(5).Run(w, core.Cell{X: 0, Y: 4}, core.Cell{X: 9, Y: 4})
	require.NoError(t, err)
	require.True(t, run.Replanned)

	var buf bytes.Buffer
	require.NoError(t, WriteReplanLog(&buf, run))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, run.Steps()+1)
	assert.Equal(t, "# run "+run.ID.String(), lines[0])
	assert.Equal(t, "Time 1: Agent at (1, 4), Obstacle at (3, 4)", lines[1])
	assert.Equal(t, "Time 2: Agent at (2, 4), Obstacle at (3, 5)", lines[2])

	path := filepath.Join(t.TempDir(), DefaultReplanLogPath)
	written, err := SaveReplanLog(path, run)
	require.NoError(t, err)
	assert.True(t, written)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(data))
}

func TestSaveReplanLogSkipsQuietRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiet.txt")
	written, err := SaveReplanLog(path, &Run{})
	require.NoError(t, err)
	assert.False(t, written)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFormatObstacles(t *testing.T) {
	assert.Equal(t, "None", formatObstacles(nil))
	assert.Equal(t, "(1, 2), (3, 4)", formatObstacles([]core.Cell{{X: 1, Y: 2}, {X: 3, Y: 4}}))
}

func TestExportJSON(t *testing.T) {
	run := &Run{PlanResult: *core.NoPath(3, 0), Phase: Failed}

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, run))
	assert.Contains(t, buf.String(), `"phase": "Failed"`)
	assert.Contains(t, buf.String(), `"cost": "inf"`)
	assert.Contains(t, buf.String(), `"expanded": 3`)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "Planning", Planning.String())
	assert.Equal(t, "Succeeded", Succeeded.String())
	assert.Equal(t, "Failed", Failed.String())
}
