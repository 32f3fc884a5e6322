// Command gridplanvis plays back an online replanning run in a window.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/gridplan/internal/core"
	"github.com/elektrokombinacija/gridplan/internal/scenario"
	"github.com/elektrokombinacija/gridplan/internal/vis"
)

func main() {
	mapName := flag.String("map", scenario.NameDynamic, "Scenario: small, medium, large or dynamic")
	startFlag := flag.String("start", "", "Start cell as x,y")
	goalFlag := flag.String("goal", "", "Goal cell as x,y")
	seed := flag.Int64("seed", 1, "Seed for random maps and the fallback planner")
	flag.Parse()

	w, err := scenario.ByName(*mapName, rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Fatal(err)
	}

	start, goal := scenario.Corners(w)
	if *mapName == scenario.NameDynamic {
		// Straight through the obstacle's patrol, so the run replans.
		start, goal = core.Cell{X: 0, Y: 4}, core.Cell{X: 9, Y: 4}
	}
	if *startFlag != "" {
		if start, err = core.ParseCell(*startFlag); err != nil {
			log.Fatal(err)
		}
	}
	if *goalFlag != "" {
		if goal, err = core.ParseCell(*goalFlag); err != nil {
			log.Fatal(err)
		}
	}

	application, err := vis.NewApp(w, start, goal, *seed)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Gridplan Visualizer"),
			app.Size(unit.Dp(1000), unit.Dp(900)),
		)

		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
