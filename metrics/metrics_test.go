package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts graph and analysis events", func(t *testing.T) {
		c := NewCollector()
		c.Start()
		c.AddNode(8)
		c.AddNode(1)
		c.AddEdge()
		c.AddEdge()
		c.AddEdge()
		c.AddLeaf()
		c.StartAnalysis()
		c.AddCycleDraw()

		got := c.Complete()

		require.Equal(t, 2, got.Nodes)
		require.Equal(t, 9, got.Aliases)
		require.Equal(t, 3, got.Edges)
		require.Equal(t, 1, got.Leaves)
		require.Equal(t, 1, got.CycleDraws)
		require.GreaterOrEqual(t, got.BuildDuration, time.Duration(0))
		require.GreaterOrEqual(t, got.AnalyzeDuration, time.Duration(0))
	})

	t.Run("start resets previous counts", func(t *testing.T) {
		c := NewCollector()
		c.Start()
		c.AddNode(1)
		c.Start()

		require.Equal(t, 0, c.Complete().Nodes)
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start()
		c.AddNode(3)
		require.Equal(t, SolveMetric{}, c.Complete())
	})
}

func TestWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report")
	w, err := NewWriter(dir)
	require.NoError(t, err)

	err = w.WriteSolveRecords([]SolveRecord{
		{Game: "stones", SolveMetric: SolveMetric{Nodes: 11, Aliases: 11, Edges: 30, Leaves: 1}},
	})
	require.NoError(t, err)
	err = w.WritePositionRecords("stones", []PositionRecord{
		{Hash: 255, Outcome: "win", Distance: 1},
		{Hash: 16, Outcome: "loss", Distance: 0},
	})
	require.NoError(t, err)

	rows := readCSV(t, filepath.Join(dir, "solves.csv"))
	require.Len(t, rows, 2)
	require.Equal(t, []string{"stones", "11", "11", "30", "1", "0", "0s", "0s"}, rows[1])

	rows = readCSV(t, filepath.Join(dir, "stones.csv"))
	require.Equal(t, [][]string{
		{"hash", "outcome", "distance"},
		{"ff", "win", "1"},
		{"10", "loss", "0"},
	}, rows)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
