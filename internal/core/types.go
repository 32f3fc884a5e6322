// Package core defines the grid world model shared by the planners.
package core

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Blocked marks a permanently impassable cell in the cost grid.
var Blocked = math.Inf(1)

var (
	// ErrInvalidRequest is returned when a start or goal cell is out of
	// bounds or blocked. It is distinct from "no path found".
	ErrInvalidRequest = errors.New("invalid planning request")

	// ErrInvalidWorld is returned by NewWorld for malformed grids.
	ErrInvalidWorld = errors.New("invalid world")
)

// Cell is a grid coordinate. X is the row, Y the column.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// ParseCell parses "x,y" (spaces allowed around either number).
func ParseCell(s string) (Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Cell{}, fmt.Errorf("parse cell %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Cell{}, fmt.Errorf("parse cell %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Cell{}, fmt.Errorf("parse cell %q: %w", s, err)
	}
	return Cell{X: x, Y: y}, nil
}

// Manhattan returns the 4-connected grid distance between two cells.
func Manhattan(a, b Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// FormatCost renders a path cost, using "inf" for unreachable goals.
func FormatCost(c float64) string {
	if math.IsInf(c, 1) {
		return "inf"
	}
	return fmt.Sprintf("%g", c)
}
