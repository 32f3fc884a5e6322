package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gridplan/internal/core"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestSinglePlan(t *testing.T) {
	code, out, _ := runCLI(t, "-map", "small", "-algorithm", "ucs", "-seed", "1", "-log", "")
	require.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(out, "Path: [(0, 0), "), out)
	assert.Contains(t, out, "(4, 4)]\n")
	assert.Contains(t, out, "Cost: 8, Expanded: ")
}

func TestKnownDynamicMode(t *testing.T) {
	code, out, _ := runCLI(t, "-map", "dynamic", "-dynamic_mode", "known", "-algorithm", "a_star",
		"-start", "0,4", "-goal", "9,4", "-seed", "1", "-log", "")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Cost: 9, ")
}

func TestUnpredictableWritesLog(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "replan_log.txt")
	code, out, _ := runCLI(t, "-map", "dynamic", "-dynamic_mode", "unpredictable",
		"-start", "0,4", "-goal", "9,4", "-seed", "2", "-log", logFile)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Replan log written to: "+logFile)
	assert.Contains(t, out, "Path: [(0, 4), ")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Time 1: Agent at (1, 4), Obstacle at (3, 4)")
}

func TestUnpredictableJSONExport(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "replan_log.txt")
	code, out, errOut := runCLI(t, "-map", "dynamic", "-dynamic_mode", "unpredictable",
		"-start", "0,4", "-goal", "9,4", "-seed", "2", "-log", logFile, "-format", "json")
	require.Equal(t, exitOK, code)
	assert.Contains(t, errOut, "Replan log written to: "+logFile)

	var rec struct {
		ID        string `json:"id"`
		Phase     string `json:"phase"`
		Replanned bool   `json:"replanned"`
		Events    []struct {
			Time    int       `json:"time"`
			From    core.Cell `json:"from"`
			Blocked core.Cell `json:"blocked"`
		} `json:"events"`
		Log []struct {
			Time int `json:"time"`
		} `json:"log"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rec), out)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "Succeeded", rec.Phase)
	assert.True(t, rec.Replanned)
	require.NotEmpty(t, rec.Events)
	assert.Equal(t, 2, rec.Events[0].Time)
	assert.Equal(t, core.Cell{X: 2, Y: 4}, rec.Events[0].From)
	assert.Equal(t, core.Cell{X: 3, Y: 4}, rec.Events[0].Blocked)
	assert.NotEmpty(t, rec.Log)
}

func TestDemo(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "replan_log.txt")
	code, out, _ := runCLI(t, "-demo", "-map", "dynamic", "-dynamic_mode", "unpredictable",
		"-start", "0,4", "-goal", "9,4", "-seed", "3", "-log", logFile)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Demo simulation (use for screenshots):\n")
	assert.Contains(t, out, ". . . . A . . . . .\n", "agent at (0,4) in the first frame")
	assert.Contains(t, out, "Time: 0\n")

	code, out, _ = runCLI(t, "-demo", "-map", "dynamic", "-log", "")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "Demo only for unpredictable mode on dynamic map\n", out)
}

func TestExperimentFormats(t *testing.T) {
	code, out, _ := runCLI(t, "-experiment", "-seed", "4", "-log", "")
	require.Equal(t, exitOK, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 2+12)
	assert.Equal(t, "| Map | Algorithm | Path Cost | Nodes Expanded | Time (s) |", lines[0])

	code, out, _ = runCLI(t, "-experiment", "-seed", "4", "-format", "csv")
	require.Equal(t, exitOK, code)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1+12)

	code, out, _ = runCLI(t, "-experiment", "-seed", "4", "-format", "json")
	require.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(out, "["))

	code, _, errOut := runCLI(t, "-experiment", "-format", "xml")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "unknown format")
}

func TestPNGSnapshot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "medium.png")
	code, out, _ := runCLI(t, "-map", "medium", "-seed", "5", "-png", file, "-log", "")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Snapshot written to: "+file)

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWorldFile(t *testing.T) {
	grid := core.UniformGrid(3, 3, 1)
	grid[1][1] = core.Blocked
	obs, err := core.NewMovingObstacle(core.Cell{X: 0, Y: 1}, core.Cell{X: 0, Y: 2})
	require.NoError(t, err)
	w, err := core.NewWorld(grid, obs)
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "world.json")
	require.NoError(t, core.SaveWorld(file, w))

	code, out, _ := runCLI(t, "-world", file, "-algorithm", "ucs", "-log", "")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Cost: 4, ")

	code, out, _ = runCLI(t, "-world", file, "-dynamic_mode", "known", "-algorithm", "a_star", "-log", "")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Path: [(0, 0), ")

	code, _, _ = runCLI(t, "-world", filepath.Join(t.TempDir(), "missing.json"), "-log", "")
	assert.Equal(t, exitError, code)
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing map", []string{}, "-map or -world is required"},
		{"blocked start", []string{"-map", "small", "-start", "1,1"}, "invalid planning request"},
		{"out of bounds goal", []string{"-map", "small", "-goal", "9,9"}, "invalid planning request"},
		{"bad cell", []string{"-map", "small", "-start", "1"}, "-start"},
		{"unknown map", []string{"-map", "huge"}, "unknown scenario"},
		{"unknown algorithm", []string{"-map", "small", "-algorithm", "dfs"}, "unknown algorithm"},
		{"unknown mode", []string{"-map", "small", "-dynamic_mode", "sometimes"}, "unknown dynamic mode"},
		{"bad flag", []string{"-bogus"}, "flag provided but not defined"},
		{"json without controller", []string{"-map", "small", "-format", "json"}, "-format json exports controller runs"},
		{"single run csv", []string{"-map", "small", "-format", "csv"}, "unknown format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, append(tt.args, "-log", "")...)
			assert.Equal(t, exitUsage, code)
			assert.Contains(t, errOut, tt.want)
		})
	}
}
