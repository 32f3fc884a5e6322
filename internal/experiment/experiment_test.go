package experiment

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gridplan/internal/algo"
	"github.com/elektrokombinacija/gridplan/internal/scenario"
)

func TestRunCoversEveryPair(t *testing.T) {
	rows, err := Run(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows[0].Seed)
	require.Len(t, rows, len(scenario.Names())*len(algo.Names()))

	i := 0
	for _, m := range scenario.Names() {
		for _, a := range algo.Names() {
			assert.Equal(t, m, rows[i].Map)
			assert.Equal(t, a, rows[i].Algorithm)
			assert.NotEqual(t, uuid.Nil, rows[i].RunID)
			i++
		}
	}

	byKey := make(map[string]Row)
	for _, r := range rows {
		byKey[r.Map+"/"+r.Algorithm] = r
	}
	for _, m := range []string{scenario.NameSmall, scenario.NameMedium, scenario.NameLarge} {
		ucs, astar := byKey[m+"/ucs"], byKey[m+"/a_star"]
		require.True(t, ucs.Found, m)
		require.True(t, astar.Found, m)
		assert.InDelta(t, ucs.Cost, astar.Cost, 1e-9, m)
		assert.LessOrEqual(t, astar.Expanded, ucs.Expanded, m)
	}
	assert.Equal(t, 8.0, byKey["small/ucs"].Cost)
}

func TestRunRejectsUnknownNames(t *testing.T) {
	_, err := Run(Config{Algorithms: []string{"dijkstra"}})
	assert.ErrorIs(t, err, algo.ErrUnknownAlgorithm)

	_, err = Run(Config{Maps: []string{"maze"}})
	assert.ErrorIs(t, err, scenario.ErrUnknownScenario)
}

func TestRunIsSeeded(t *testing.T) {
	cfg := Config{Seed: 3, Maps: []string{scenario.NameMedium, scenario.NameLarge}}

	a, err := Run(cfg)
	require.NoError(t, err)
	b, err := Run(cfg)
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, a[i].Cost, b[i].Cost)
		assert.Equal(t, a[i].Expanded, b[i].Expanded)
	}
}

func sampleRows() []Row {
	return []Row{
		{RunID: uuid.New(), Map: "small", Algorithm: "ucs", Cost: 8, Expanded: 21, Elapsed: 1500 * time.Microsecond, Found: true},
		{RunID: uuid.New(), Map: "small", Algorithm: "sa", Cost: math.Inf(1), Expanded: 10000, Elapsed: 2 * time.Millisecond},
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sampleRows()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| Map | Algorithm | Path Cost | Nodes Expanded | Time (s) |", lines[0])
	assert.Equal(t, "| small | ucs | 8 | 21 | 0.0015 |", lines[2])
	assert.Equal(t, "| small | sa | inf | 10000 | 0.0020 |", lines[3])
}

func TestWriteCSV(t *testing.T) {
	rows := sampleRows()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "run_id", records[0][0])
	assert.Equal(t, rows[0].RunID.String(), records[1][0])
	assert.Equal(t, []string{"0", "small", "sa", "inf", "10000", "0.0020", "false", "false"}, records[2][1:])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRows()))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "8", got[0]["cost"])
	assert.Equal(t, "inf", got[1]["cost"])
	assert.Equal(t, 1.5, got[0]["time_ms"])
	assert.Equal(t, false, got[1]["found"])
}

func TestSummarize(t *testing.T) {
	rows := append(sampleRows(), Row{Map: "medium", Algorithm: "ucs", Cost: 12, Expanded: 40, Found: true})

	sums := Summarize(rows)
	require.Len(t, sums, 2)
	assert.Equal(t, "ucs", sums[0].Algorithm)
	assert.Equal(t, 2, sums[0].Runs)
	assert.Equal(t, 2, sums[0].Successes)
	assert.Equal(t, 20.0, sums[0].TotalCost)
	assert.Equal(t, 61, sums[0].Expanded)
	assert.Equal(t, 0, sums[1].Successes)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, rows))
	assert.Contains(t, buf.String(), "Algorithm")
	assert.Contains(t, buf.String(), "10.00")
}
