package sim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/elektrokombinacija/gridplan/internal/core"
)

// DefaultReplanLogPath is where the CLI stores the step log of runs that
// replanned.
const DefaultReplanLogPath = "replan_log.txt"

// WriteReplanLog writes one line per committed step:
//
//	Time 3: Agent at (2, 4), Obstacle at (3, 4)
func WriteReplanLog(w io.Writer, run *Run) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# run %s\n", run.ID)
	for _, e := range run.Log {
		fmt.Fprintf(bw, "Time %d: Agent at %v, Obstacle at %s\n", e.Time, e.Agent, formatObstacles(e.Obstacles))
	}
	return bw.Flush()
}

// SaveReplanLog writes the step log to path, but only for runs that
// replanned. It reports whether a file was written.
func SaveReplanLog(path string, run *Run) (bool, error) {
	if !run.Replanned {
		return false, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("create replan log: %w", err)
	}
	if err := WriteReplanLog(f, run); err != nil {
		f.Close()
		return false, fmt.Errorf("write replan log: %w", err)
	}
	return true, f.Close()
}

// runRecord is the JSON form of a run.
type runRecord struct {
	ID        string        `json:"id"`
	Phase     string        `json:"phase"`
	Path      []core.Cell   `json:"path,omitempty"`
	Cost      string        `json:"cost"`
	Expanded  int           `json:"expanded"`
	ElapsedMs float64       `json:"elapsed_ms"`
	Replanned bool          `json:"replanned"`
	Events    []ReplanEvent `json:"events,omitempty"`
	Log       []StepEntry   `json:"log,omitempty"`
}

// ExportJSON writes the run, including its step log, as indented JSON.
func ExportJSON(w io.Writer, run *Run) error {
	rec := runRecord{
		ID:        run.ID.String(),
		Phase:     run.Phase.String(),
		Path:      run.Path,
		Cost:      core.FormatCost(run.Cost),
		Expanded:  run.Expanded,
		ElapsedMs: float64(run.Elapsed.Microseconds()) / 1000,
		Replanned: run.Replanned,
		Events:    run.Events,
		Log:       run.Log,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

func formatObstacles(cells []core.Cell) string {
	if len(cells) == 0 {
		return "None"
	}
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
