// Package render draws worlds and runs as ASCII frames or PNG snapshots.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/elektrokombinacija/gridplan/internal/core"
)

// Frame prints the world at time t, one row per line: A for the agent, O
// for an obstacle, # for a blocked cell, the cost when above 1 and . for a
// unit cell. A "Time: t" line follows the grid.
func Frame(w io.Writer, world *core.World, agent core.Cell, t int) error {
	occupied := make(map[core.Cell]bool)
	for _, c := range world.ObstaclesAt(t) {
		occupied[c] = true
	}

	var b strings.Builder
	for x := 0; x < world.Rows; x++ {
		for y := 0; y < world.Cols; y++ {
			if y > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(symbol(world, core.Cell{X: x, Y: y}, agent, occupied))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Time: %d\n", t)

	_, err := io.WriteString(w, b.String())
	return err
}

func symbol(world *core.World, c, agent core.Cell, occupied map[core.Cell]bool) string {
	switch {
	case c == agent:
		return "A"
	case occupied[c]:
		return "O"
	}
	cost := world.Cost(c)
	switch {
	case cost == core.Blocked:
		return "#"
	case cost > 1:
		return core.FormatCost(cost)
	default:
		return "."
	}
}

// Demo prints one frame per cell of path, where the i-th cell is the
// agent's position at time i.
func Demo(w io.Writer, world *core.World, path []core.Cell) error {
	for t, c := range path {
		if err := Frame(w, world, c, t); err != nil {
			return err
		}
	}
	return nil
}
