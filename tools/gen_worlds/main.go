// Package main generates random grid worlds for gridplan.
// Generation is deterministic for a given seed.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/elektrokombinacija/gridplan/internal/core"
	"github.com/elektrokombinacija/gridplan/internal/scenario"
)

func main() {
	def := scenario.DefaultRandomParams()

	seed := flag.Int64("seed", 42, "Random seed for deterministic generation")
	count := flag.Int("count", 1, "Number of worlds; world i uses seed+i")
	rows := flag.Int("rows", def.Rows, "Grid rows")
	cols := flag.Int("cols", def.Cols, "Grid columns")
	maxCost := flag.Int("max-cost", def.MaxCost, "Highest cell cost")
	walls := flag.Float64("walls", def.WallDensity, "Wall density (0-1)")
	obstacles := flag.Int("obstacles", def.Obstacles, "Number of patrolling obstacles")
	patrolLen := flag.Int("patrol", def.PatrolLen, "Cells covered by each patrol")
	outputDir := flag.String("output", "testdata", "Output directory")
	scalingMode := flag.Bool("scaling", false, "Generate square worlds of side 10, 20, 50 and 100")

	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	params := scenario.RandomParams{
		Rows:        *rows,
		Cols:        *cols,
		MaxCost:     *maxCost,
		WallDensity: *walls,
		Obstacles:   *obstacles,
		PatrolLen:   *patrolLen,
	}

	var sets []scenario.RandomParams
	if *scalingMode {
		for _, side := range []int{10, 20, 50, 100} {
			p := params
			p.Rows, p.Cols = side, side
			sets = append(sets, p)
		}
	} else {
		sets = append(sets, params)
	}

	failed := false
	for _, p := range sets {
		for i := 0; i < *count; i++ {
			s := *seed + int64(i)
			w, err := scenario.Random(rand.New(rand.NewSource(s)), p)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error generating %dx%d world (seed %d): %v\n", p.Rows, p.Cols, s, err)
				failed = true
				continue
			}

			filename := filepath.Join(*outputDir, fmt.Sprintf("world_%dx%d_%d.json", p.Rows, p.Cols, s))
			if err := core.SaveWorld(filename, w); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing world %s: %v\n", filename, err)
				failed = true
				continue
			}

			fmt.Printf("Generated: %s (%dx%d grid, %d obstacles)\n",
				filename, w.Rows, w.Cols, len(w.Obstacles()))
		}
	}
	if failed {
		os.Exit(1)
	}
}
