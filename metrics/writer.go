package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// SolveRecord is one solved game in a report.
type SolveRecord struct {
	Game string
	SolveMetric
}

// PositionRecord is one solved position in a report.
type PositionRecord struct {
	Hash     uint64
	Outcome  string
	Distance int
}

type Writer struct {
	baseDir string
}

func NewWriter(baseDir string) (*Writer, error) {
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) WriteSolveRecords(records []SolveRecord) error {
	path := filepath.Join(w.baseDir, "solves.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create solve records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "nodes", "aliases", "edges", "leaves", "cycle_draws", "build_duration", "analyze_duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write solve records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Game,
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Aliases),
			strconv.Itoa(record.Edges),
			strconv.Itoa(record.Leaves),
			strconv.Itoa(record.CycleDraws),
			record.BuildDuration.String(),
			record.AnalyzeDuration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write solve record row: %w", err)
		}
	}

	return nil
}

// WritePositionRecords writes the solved table of one game to <game>.csv.
func (w *Writer) WritePositionRecords(game string, records []PositionRecord) error {
	path := filepath.Join(w.baseDir, game+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create position records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	err = writer.Write([]string{"hash", "outcome", "distance"})
	if err != nil {
		return fmt.Errorf("failed to write position records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.FormatUint(record.Hash, 16),
			record.Outcome,
			strconv.Itoa(record.Distance),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write position record row: %w", err)
		}
	}

	return nil
}
