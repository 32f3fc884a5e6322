// Package main runs the gridplan experiment over a range of seeds and
// collects the results in one CSV file.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/elektrokombinacija/gridplan/internal/experiment"
)

func main() {
	firstSeed := flag.Int64("seed", 1, "First seed")
	seeds := flag.Int("seeds", 10, "Number of seeds; run i uses seed+i")
	outputFile := flag.String("output", "evidence/benchmark_results.csv", "Output CSV file")
	mapFilter := flag.String("map", "", "Run only these maps (comma-separated)")
	algoFilter := flag.String("algorithm", "", "Run only these algorithms (comma-separated)")
	verbose := flag.Bool("verbose", false, "Verbose output")

	flag.Parse()

	outputDir := filepath.Dir(*outputFile)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	cfg := experiment.DefaultConfig()
	if *mapFilter != "" {
		cfg.Maps = strings.Split(*mapFilter, ",")
	}
	if *algoFilter != "" {
		cfg.Algorithms = strings.Split(*algoFilter, ",")
	}

	fmt.Printf("Running benchmarks: %d seeds x %d maps x %d algorithms\n",
		*seeds, len(cfg.Maps), len(cfg.Algorithms))

	var results []experiment.Row
	for i := 0; i < *seeds; i++ {
		cfg.Seed = *firstSeed + int64(i)
		if *verbose {
			fmt.Printf("[%d/%d] seed %d ... ", i+1, *seeds, cfg.Seed)
		} else {
			fmt.Printf("\r[%d/%d] Running...", i+1, *seeds)
		}

		rows, err := experiment.Run(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nError running seed %d: %v\n", cfg.Seed, err)
			os.Exit(1)
		}
		results = append(results, rows...)

		if *verbose {
			found := 0
			for _, r := range rows {
				if r.Found {
					found++
				}
			}
			fmt.Printf("%d/%d found\n", found, len(rows))
		}
	}
	fmt.Println()

	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating results file: %v\n", err)
		os.Exit(1)
	}
	if err := experiment.WriteCSV(file, results); err != nil {
		file.Close()
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}
	if err := file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results written to: %s\n", *outputFile)

	fmt.Println("\n=== BENCHMARK SUMMARY ===")
	if err := experiment.WriteSummary(os.Stdout, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
		os.Exit(1)
	}
}
