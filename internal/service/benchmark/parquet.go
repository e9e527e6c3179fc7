package benchmark

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// ResultRow is one search of a benchmark run. Skipped searches are stored
// with TimedOut set and zero figures.
type ResultRow struct {
	RunID      string `parquet:"run_id,dict"`
	Depth      int32  `parquet:"depth"`
	Algorithm  string `parquet:"algorithm,dict"`
	Nodes      int64  `parquet:"nodes"`
	DurationMs int64  `parquet:"duration_ms"`
	Column     int32  `parquet:"column"`
	Score      int64  `parquet:"score"`
	TimedOut   bool   `parquet:"timed_out"`
}

// Rows flattens a report, minimax before alpha-beta for every depth.
func (rep *Report) Rows() []ResultRow {
	rows := make([]ResultRow, 0, 2*len(rep.Results))
	for _, r := range rep.Results {
		rows = append(rows,
			newRow(rep.RunID, r.Depth, AlgorithmMinimax, r.Minimax),
			newRow(rep.RunID, r.Depth, AlgorithmAlphaBeta, r.AlphaBeta),
		)
	}
	return rows
}

func newRow(runID string, depth int, algo Algorithm, m Measurement) ResultRow {
	return ResultRow{
		RunID:      runID,
		Depth:      int32(depth),
		Algorithm:  string(algo),
		Nodes:      int64(m.Nodes),
		DurationMs: m.Duration.Milliseconds(),
		Column:     int32(m.Column),
		Score:      int64(m.Score),
		TimedOut:   m.TimedOut,
	}
}

// WriteParquet writes the report rows to outPath through a temp file.
func WriteParquet(outPath string, rep *Report) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rep.Rows(),
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "benchmark_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadParquet loads the rows of a file written by WriteParquet.
func ReadParquet(path string) ([]ResultRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, err
	}

	reader := parquet.NewGenericReader[ResultRow](pf)
	defer reader.Close()

	rows := make([]ResultRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return rows[:n], nil
}
