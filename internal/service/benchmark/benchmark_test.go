package benchmark

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRunnerCountsNodes(t *testing.T) {
	rep, err := NewRunner([]int{1, 2, 3}, 0).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rep.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(rep.Results))
	}

	want := []int{8, 57, 400}
	for i, r := range rep.Results {
		if r.Minimax.Nodes != want[i] {
			t.Errorf("depth %d: minimax nodes = %d, want %d", r.Depth, r.Minimax.Nodes, want[i])
		}
		if r.AlphaBeta.Nodes > r.Minimax.Nodes {
			t.Errorf("depth %d: alpha-beta visited more nodes (%d) than minimax (%d)", r.Depth, r.AlphaBeta.Nodes, r.Minimax.Nodes)
		}
		if r.AlphaBeta.Column != r.Minimax.Column || r.AlphaBeta.Score != r.Minimax.Score {
			t.Errorf("depth %d: algorithms disagree: %+v vs %+v", r.Depth, r.AlphaBeta, r.Minimax)
		}
	}
	if _, ok := rep.Results[2].Efficiency(); !ok {
		t.Error("efficiency should be defined when both searches ran")
	}
}

func TestRunnerTimeBudget(t *testing.T) {
	rep, err := NewRunner([]int{1, 2, 3}, time.Nanosecond).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rep.Results[0].Minimax.TimedOut || rep.Results[0].AlphaBeta.TimedOut {
		t.Fatal("the first depth always runs")
	}
	for _, r := range rep.Results[1:] {
		if !r.Minimax.TimedOut || !r.AlphaBeta.TimedOut {
			t.Errorf("depth %d should be skipped: %+v", r.Depth, r)
		}
		if _, ok := r.Efficiency(); ok {
			t.Errorf("depth %d: efficiency of skipped searches", r.Depth)
		}
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := NewRunner(nil, 0).Run(ctx)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(rep.Results) != 0 {
		t.Fatalf("no depth should run, got %d", len(rep.Results))
	}
}

func sampleReport() *Report {
	return &Report{
		RunID:     "20240102_030405",
		StartedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Results: []DepthResult{
			{
				Depth:     4,
				Minimax:   Measurement{Nodes: 2801, Duration: 400 * time.Millisecond, Column: 4, Score: 12},
				AlphaBeta: Measurement{Nodes: 1000, Duration: 100 * time.Millisecond, Column: 4, Score: 12},
			},
			{
				Depth:     5,
				Minimax:   Measurement{TimedOut: true},
				AlphaBeta: Measurement{Nodes: 4200, Duration: 250 * time.Millisecond, Column: 4, Score: 30},
			},
		},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"PERFORMANCE TEST RESULTS",
		"Date and Time: 2024-01-02 03:04:05",
		"2,801",
		"timeout",
		"Depth 4: Alpha-Beta evaluates 2.80x fewer nodes than standard Minimax",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text report misses %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Depth 5: Alpha-Beta") {
		t.Error("no efficiency line for a skipped depth")
	}
}

func TestWriteLaTeX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLaTeX(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		`\label{tab:nodes_comparison}`,
		`\label{tab:time_comparison}`,
		`4 & 2,801 & 1,000 & 64.3\% \\`,
		`4 & 0.40 & 0.10 & 4.0x \\`,
		`5 & Timeout & 4,200 & - \\`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("LaTeX report misses %q:\n%s", want, out)
		}
	}
}

func TestSaveWritesAllOutputs(t *testing.T) {
	dir := t.TempDir()
	rep := sampleReport()

	files, err := Save(dir, rep)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	for _, p := range []string{files.Text, files.LaTeX, files.Parquet} {
		if !strings.Contains(p, "performance_test_20240102_030405") {
			t.Errorf("unexpected file name %s", p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing output: %v", err)
		}
	}

	rows, err := ReadParquet(files.Parquet)
	if err != nil {
		t.Fatalf("ReadParquet: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[0].Algorithm != string(AlgorithmMinimax) || rows[0].Nodes != 2801 || rows[0].DurationMs != 400 {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if !rows[2].TimedOut || rows[3].Depth != 5 || rows[3].Score != 30 {
		t.Errorf("unexpected depth 5 rows: %+v %+v", rows[2], rows[3])
	}
}

func TestGroupThousands(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		137257:   "137,257",
		-1234567: "-1,234,567",
	}
	for n, want := range tests {
		if got := groupThousands(n); got != want {
			t.Errorf("groupThousands(%d) = %q, want %q", n, got, want)
		}
	}
}
