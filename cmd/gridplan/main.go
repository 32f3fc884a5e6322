// Command gridplan plans single-agent paths on weighted grids, replays
// online replanning runs and prints experiment tables.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/elektrokombinacija/gridplan/internal/algo"
	"github.com/elektrokombinacija/gridplan/internal/core"
	"github.com/elektrokombinacija/gridplan/internal/experiment"
	"github.com/elektrokombinacija/gridplan/internal/render"
	"github.com/elektrokombinacija/gridplan/internal/scenario"
	"github.com/elektrokombinacija/gridplan/internal/sim"
)

// Dynamic modes.
const (
	modeNone          = "none"
	modeKnown         = "known"
	modeUnpredictable = "unpredictable"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type options struct {
	mapName     string
	world       string
	start       string
	goal        string
	algorithm   string
	dynamicMode string
	experiment  bool
	demo        bool
	seed        int64
	format      string
	summary     bool
	png         string
	logFile     string
	verbose     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("gridplan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.mapName, "map", "", "Scenario: small, medium, large or dynamic")
	fs.StringVar(&opts.world, "world", "", "Load the world from a JSON file instead of -map")
	fs.StringVar(&opts.start, "start", "", "Start cell as x,y (default top-left corner)")
	fs.StringVar(&opts.goal, "goal", "", "Goal cell as x,y (default bottom-right corner)")
	fs.StringVar(&opts.algorithm, "algorithm", algo.NameAStar, "Planner: ucs, a_star or sa")
	fs.StringVar(&opts.dynamicMode, "dynamic_mode", modeNone, "Obstacle handling: none, known or unpredictable")
	fs.BoolVar(&opts.experiment, "experiment", false, "Run every algorithm on every map and print a table")
	fs.BoolVar(&opts.demo, "demo", false, "Print one ASCII frame per step of an unpredictable run")
	fs.Int64Var(&opts.seed, "seed", 0, "Seed for random maps and annealing (0 = time-based)")
	fs.StringVar(&opts.format, "format", "md", "Output: md, csv or json (experiments); md or json (unpredictable runs)")
	fs.BoolVar(&opts.summary, "summary", false, "Append a per-algorithm summary to the Markdown table")
	fs.StringVar(&opts.png, "png", "", "Write a PNG snapshot of the map and path to this file")
	fs.StringVar(&opts.logFile, "log", sim.DefaultReplanLogPath, "Replan log file, written when a run replans")
	fs.BoolVar(&opts.verbose, "v", false, "Print replanning notices to stderr")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	errLog := log.New(stderr, "gridplan: ", 0)
	if opts.seed == 0 {
		opts.seed = time.Now().UnixNano()
	}

	var err error
	switch {
	case opts.experiment:
		err = runExperiment(opts, stdout, errLog)
	case opts.demo:
		err = runDemo(opts, stdout, errLog)
	default:
		err = runSingle(opts, stdout, errLog)
	}

	switch {
	case err == nil:
		return exitOK
	case isUsage(err):
		errLog.Print(err)
		return exitUsage
	default:
		errLog.Print(err)
		return exitError
	}
}

var errUsage = errors.New("usage")

func isUsage(err error) bool {
	return errors.Is(err, errUsage) ||
		errors.Is(err, core.ErrInvalidRequest) ||
		errors.Is(err, scenario.ErrUnknownScenario) ||
		errors.Is(err, algo.ErrUnknownAlgorithm)
}

func controllerLogger(opts options, errLog *log.Logger) *log.Logger {
	if !opts.verbose {
		return nil
	}
	return log.New(errLog.Writer(), "replan: ", 0)
}

func runExperiment(opts options, stdout io.Writer, errLog *log.Logger) error {
	cfg := experiment.DefaultConfig()
	cfg.Seed = opts.seed
	cfg.Logger = controllerLogger(opts, errLog)

	rows, err := experiment.Run(cfg)
	if err != nil {
		return err
	}

	switch opts.format {
	case "md":
		if err := experiment.WriteMarkdown(stdout, rows); err != nil {
			return err
		}
		if opts.summary {
			fmt.Fprintln(stdout)
			return experiment.WriteSummary(stdout, rows)
		}
		return nil
	case "csv":
		return experiment.WriteCSV(stdout, rows)
	case "json":
		return experiment.WriteJSON(stdout, rows)
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, opts.format)
	}
}

// query builds the world and resolves the start and goal flags.
func query(opts options) (*core.World, core.Cell, core.Cell, *rand.Rand, error) {
	if opts.mapName == "" && opts.world == "" {
		return nil, core.Cell{}, core.Cell{}, nil, fmt.Errorf("%w: -map or -world is required", errUsage)
	}
	switch opts.dynamicMode {
	case modeNone, modeKnown, modeUnpredictable:
	default:
		return nil, core.Cell{}, core.Cell{}, nil, fmt.Errorf("%w: unknown dynamic mode %q", errUsage, opts.dynamicMode)
	}

	rng := rand.New(rand.NewSource(opts.seed))
	var (
		w   *core.World
		err error
	)
	if opts.world != "" {
		w, err = core.LoadWorld(opts.world)
	} else {
		w, err = scenario.ByName(opts.mapName, rng)
	}
	if err != nil {
		return nil, core.Cell{}, core.Cell{}, nil, err
	}

	start, goal := scenario.Corners(w)
	if opts.start != "" {
		if start, err = core.ParseCell(opts.start); err != nil {
			return nil, core.Cell{}, core.Cell{}, nil, fmt.Errorf("%w: -start: %v", errUsage, err)
		}
	}
	if opts.goal != "" {
		if goal, err = core.ParseCell(opts.goal); err != nil {
			return nil, core.Cell{}, core.Cell{}, nil, fmt.Errorf("%w: -goal: %v", errUsage, err)
		}
	}
	return w, start, goal, rng, nil
}

func newController(opts options, rng *rand.Rand, errLog *log.Logger) *sim.Controller {
	return sim.NewController(sim.Config{
		Planner:  algo.NewAStar(algo.Options{}),
		Fallback: algo.NewAnnealing(algo.DefaultAnnealingConfig(), rng),
		Logger:   controllerLogger(opts, errLog),
	})
}

func runSingle(opts options, stdout io.Writer, errLog *log.Logger) error {
	w, start, goal, rng, err := query(opts)
	if err != nil {
		return err
	}

	// Of the built-in maps only "dynamic" has obstacles; loaded worlds may.
	dynamic := len(w.Obstacles()) > 0
	controlled := opts.dynamicMode == modeUnpredictable && dynamic

	switch opts.format {
	case "md":
	case "json":
		if !controlled {
			return fmt.Errorf("%w: -format json exports controller runs, use -dynamic_mode unpredictable on a map with obstacles", errUsage)
		}
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, opts.format)
	}

	// JSON owns stdout; notices go to stderr.
	notices := stdout
	if opts.format == "json" {
		notices = errLog.Writer()
	}

	var res *core.PlanResult
	if controlled {
		r, err := newController(opts, rng, errLog).Run(w, start, goal)
		if err != nil {
			return err
		}
		if err := saveLog(opts, r, notices); err != nil {
			return err
		}
		if opts.format == "json" {
			if err := sim.ExportJSON(stdout, r); err != nil {
				return err
			}
		}
		res = &r.PlanResult
	} else {
		known := opts.dynamicMode == modeKnown && dynamic
		p, err := algo.NewPlanner(opts.algorithm, algo.Options{SpaceTime: known, KnownDynamic: known}, rng)
		if err != nil {
			return err
		}
		if res, err = p.Plan(w, start, goal); err != nil {
			return err
		}
	}

	if opts.format == "md" {
		printResult(stdout, res)
	}

	if opts.png != "" {
		if err := render.PNG(opts.png, w, res.Path, render.DefaultPNGOptions()); err != nil {
			return fmt.Errorf("write %s: %w", opts.png, err)
		}
		fmt.Fprintf(notices, "Snapshot written to: %s\n", opts.png)
	}
	return nil
}

func runDemo(opts options, stdout io.Writer, errLog *log.Logger) error {
	w, start, goal, rng, err := query(opts)
	if err != nil {
		return err
	}
	if opts.dynamicMode != modeUnpredictable {
		fmt.Fprintln(stdout, "Demo only for unpredictable mode on dynamic map")
		return nil
	}

	r, err := newController(opts, rng, errLog).Run(w, start, goal)
	if err != nil {
		return err
	}
	if err := saveLog(opts, r, stdout); err != nil {
		return err
	}
	if !r.Found() {
		fmt.Fprintln(stdout, "No path found")
		return nil
	}

	fmt.Fprintln(stdout, "Demo simulation (use for screenshots):")
	return render.Demo(stdout, w, r.Path)
}

func saveLog(opts options, r *sim.Run, stdout io.Writer) error {
	if opts.logFile == "" {
		return nil
	}
	written, err := sim.SaveReplanLog(opts.logFile, r)
	if err != nil {
		return err
	}
	if written {
		fmt.Fprintf(stdout, "Replan log written to: %s\n", opts.logFile)
	}
	return nil
}

func printResult(w io.Writer, res *core.PlanResult) {
	if !res.Found() {
		fmt.Fprintln(w, "No path found")
		return
	}
	cells := make([]string, len(res.Path))
	for i, c := range res.Path {
		cells[i] = c.String()
	}
	fmt.Fprintf(w, "Path: [%s]\n", strings.Join(cells, ", "))
	fmt.Fprintf(w, "Cost: %s, Expanded: %d, Time: %.4f\n",
		core.FormatCost(res.Cost), res.Expanded, res.Elapsed.Seconds())
}
