package experiment

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elektrokombinacija/gridplan/internal/core"
)

// WriteMarkdown prints the results as a Markdown table.
func WriteMarkdown(w io.Writer, rows []Row) error {
	if _, err := fmt.Fprintln(w, "| Map | Algorithm | Path Cost | Nodes Expanded | Time (s) |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "|---|-----------|-----------|----------------|----------|"); err != nil {
		return err
	}
	for _, r := range rows {
		_, err := fmt.Fprintf(w, "| %s | %s | %s | %d | %.4f |\n",
			r.Map, r.Algorithm, core.FormatCost(r.Cost), r.Expanded, r.Elapsed.Seconds())
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes the results with a header row.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)

	header := []string{
		"run_id", "seed", "map", "algorithm", "cost", "nodes_expanded",
		"time_s", "found", "replanned",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			r.RunID.String(), strconv.FormatInt(r.Seed, 10), r.Map, r.Algorithm, core.FormatCost(r.Cost),
			strconv.Itoa(r.Expanded), fmt.Sprintf("%.4f", r.Elapsed.Seconds()),
			strconv.FormatBool(r.Found), strconv.FormatBool(r.Replanned),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// rowRecord is the JSON form of a Row. The cost is a string because
// encoding/json rejects +Inf.
type rowRecord struct {
	RunID     string  `json:"run_id"`
	Seed      int64   `json:"seed"`
	Map       string  `json:"map"`
	Algorithm string  `json:"algorithm"`
	Cost      string  `json:"cost"`
	Expanded  int     `json:"nodes_expanded"`
	TimeMs    float64 `json:"time_ms"`
	Found     bool    `json:"found"`
	Replanned bool    `json:"replanned"`
}

// WriteJSON writes the results as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	records := make([]rowRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, rowRecord{
			RunID:     r.RunID.String(),
			Seed:      r.Seed,
			Map:       r.Map,
			Algorithm: r.Algorithm,
			Cost:      core.FormatCost(r.Cost),
			Expanded:  r.Expanded,
			TimeMs:    float64(r.Elapsed.Microseconds()) / 1000.0,
			Found:     r.Found,
			Replanned: r.Replanned,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Summary aggregates rows per algorithm.
type Summary struct {
	Algorithm    string
	Runs         int
	Successes    int
	TotalCost    float64
	TotalElapsed float64 // seconds, successful runs only
	Expanded     int
}

// Summarize groups rows by algorithm, preserving first-seen order.
func Summarize(rows []Row) []Summary {
	index := make(map[string]int)
	var out []Summary
	for _, r := range rows {
		i, ok := index[r.Algorithm]
		if !ok {
			i = len(out)
			index[r.Algorithm] = i
			out = append(out, Summary{Algorithm: r.Algorithm})
		}
		s := &out[i]
		s.Runs++
		s.Expanded += r.Expanded
		if r.Found {
			s.Successes++
			s.TotalCost += r.Cost
			s.TotalElapsed += r.Elapsed.Seconds()
		}
	}
	return out
}

// WriteSummary prints the per-algorithm aggregate.
func WriteSummary(w io.Writer, rows []Row) error {
	if _, err := fmt.Fprintf(w, "%-10s %6s %8s %10s %12s %12s\n",
		"Algorithm", "Runs", "Success", "Avg Cost", "Avg Time(s)", "Expanded"); err != nil {
		return err
	}
	for _, s := range Summarize(rows) {
		avgCost, avgTime := 0.0, 0.0
		if s.Successes > 0 {
			avgCost = s.TotalCost / float64(s.Successes)
			avgTime = s.TotalElapsed / float64(s.Successes)
		}
		if _, err := fmt.Fprintf(w, "%-10s %6d %8d %10.2f %12.4f %12d\n",
			s.Algorithm, s.Runs, s.Successes, avgCost, avgTime, s.Expanded); err != nil {
			return err
		}
	}
	return nil
}
