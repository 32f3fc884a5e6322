package core

import (
	"encoding/json"
	"fmt"
	"os"
)

// worldFile is the on-disk form of a World. Blocked cells are stored with
// cost 0, which NewWorld never accepts as a real cost.
type worldFile struct {
	Rows      int         `json:"rows"`
	Cols      int         `json:"cols"`
	Costs     [][]float64 `json:"costs"`
	Obstacles [][]Cell    `json:"obstacles,omitempty"`
}

// MarshalJSON encodes the grid and obstacle cycles.
func (w *World) MarshalJSON() ([]byte, error) {
	f := worldFile{Rows: w.Rows, Cols: w.Cols, Costs: make([][]float64, w.Rows)}
	for x, row := range w.cost {
		f.Costs[x] = make([]float64, w.Cols)
		for y, c := range row {
			if c != Blocked {
				f.Costs[x][y] = c
			}
		}
	}
	for _, o := range w.obstacles {
		f.Obstacles = append(f.Obstacles, o.Positions())
	}
	return json.Marshal(f)
}

// UnmarshalJSON decodes a world written by MarshalJSON and validates it
// like NewWorld.
func (w *World) UnmarshalJSON(data []byte) error {
	var f worldFile
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if len(f.Costs) != f.Rows || (f.Rows > 0 && len(f.Costs[0]) != f.Cols) {
		return fmt.Errorf("%w: header says %dx%d", ErrInvalidWorld, f.Rows, f.Cols)
	}

	costs := make([][]float64, len(f.Costs))
	for x, row := range f.Costs {
		costs[x] = make([]float64, len(row))
		for y, c := range row {
			if c == 0 {
				c = Blocked
			}
			costs[x][y] = c
		}
	}

	obstacles := make([]*MovingObstacle, 0, len(f.Obstacles))
	for _, cycle := range f.Obstacles {
		o, err := NewMovingObstacle(cycle...)
		if err != nil {
			return err
		}
		obstacles = append(obstacles, o)
	}

	decoded, err := NewWorld(costs, obstacles...)
	if err != nil {
		return err
	}
	*w = *decoded
	return nil
}

// LoadWorld reads a world file.
func LoadWorld(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	w := new(World)
	if err := json.Unmarshal(data, w); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return w, nil
}

// SaveWorld writes w as indented JSON.
func SaveWorld(path string, w *World) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
