package benchmark

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

const timeoutLabel = "timeout"

// BaseName is the file name shared by every output of a run.
func (rep *Report) BaseName() string {
	return "performance_test_" + rep.RunID
}

// WriteText writes the human readable summary.
func WriteText(w io.Writer, rep *Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "PERFORMANCE TEST RESULTS: MINIMAX VS ALPHA-BETA PRUNING")
	fmt.Fprintln(bw, strings.Repeat("=", 60))
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "System Information:")
	fmt.Fprintf(bw, "Date and Time: %s\n", rep.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(bw, "Go Version: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if rep.MaxTime > 0 {
		fmt.Fprintf(bw, "Time budget per search: %s\n", rep.MaxTime)
	}
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "%-10s %-20s %-15s %-20s %-15s\n", "Depth", "Minimax Nodes", "Time (sec)", "Alpha-Beta Nodes", "Time (sec)")
	fmt.Fprintln(bw, strings.Repeat("-", 80))
	for _, r := range rep.Results {
		fmt.Fprintf(bw, "%-10d %-20s %-15s %-20s %-15s\n", r.Depth,
			nodesCell(r.Minimax, timeoutLabel), secondsCell(r.Minimax, timeoutLabel),
			nodesCell(r.AlphaBeta, timeoutLabel), secondsCell(r.AlphaBeta, timeoutLabel))
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Efficiency Comparison:")
	for _, r := range rep.Results {
		if ratio, ok := r.Efficiency(); ok {
			fmt.Fprintf(bw, "Depth %d: Alpha-Beta evaluates %.2fx fewer nodes than standard Minimax\n", r.Depth, ratio)
		}
	}

	return bw.Flush()
}

// WriteLaTeX writes a node table and a time table ready to paste into a
// document.
func WriteLaTeX(w io.Writer, rep *Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "% Performance test results for Minimax vs Alpha-Beta pruning")
	fmt.Fprintf(bw, "%% Generated on %s\n\n", rep.StartedAt.Format("2006-01-02 15:04:05"))

	beginTable(bw, "Comparison of Nodes Evaluated: Minimax vs Alpha-Beta Pruning", "tab:nodes_comparison",
		`\textbf{Search Depth} & \textbf{Minimax Nodes} & \textbf{Alpha-Beta Nodes} & \textbf{Improvement (\%)} \\`)
	for _, r := range rep.Results {
		improvement := "-"
		if pct, ok := r.Improvement(); ok {
			improvement = fmt.Sprintf(`%.1f\%%`, pct)
		}
		fmt.Fprintf(bw, "%d & %s & %s & %s \\\\\n", r.Depth,
			nodesCell(r.Minimax, "Timeout"), nodesCell(r.AlphaBeta, "Timeout"), improvement)
	}
	endTable(bw)
	fmt.Fprintln(bw)

	beginTable(bw, "Execution Time Comparison: Minimax vs Alpha-Beta Pruning", "tab:time_comparison",
		`\textbf{Search Depth} & \textbf{Minimax Time (s)} & \textbf{Alpha-Beta Time (s)} & \textbf{Speedup} \\`)
	for _, r := range rep.Results {
		speedup := "-"
		if ratio, ok := r.Speedup(); ok {
			speedup = fmt.Sprintf("%.1fx", ratio)
		}
		fmt.Fprintf(bw, "%d & %s & %s & %s \\\\\n", r.Depth,
			secondsCell(r.Minimax, "Timeout"), secondsCell(r.AlphaBeta, "Timeout"), speedup)
	}
	endTable(bw)

	return bw.Flush()
}

func beginTable(w io.Writer, caption, label, header string) {
	fmt.Fprintln(w, `\begin{table}[htbp]`)
	fmt.Fprintln(w, `\centering`)
	fmt.Fprintf(w, "\\caption{%s}\n", caption)
	fmt.Fprintf(w, "\\label{%s}\n", label)
	fmt.Fprintln(w, `\begin{tabular}{|c|r|r|c|}`)
	fmt.Fprintln(w, `\hline`)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, `\hline`)
}

func endTable(w io.Writer) {
	fmt.Fprintln(w, `\hline`)
	fmt.Fprintln(w, `\end{tabular}`)
	fmt.Fprintln(w, `\end{table}`)
}

func nodesCell(m Measurement, timeout string) string {
	if m.TimedOut {
		return timeout
	}
	return groupThousands(m.Nodes)
}

func secondsCell(m Measurement, timeout string) string {
	if m.TimedOut {
		return timeout
	}
	return strconv.FormatFloat(m.Duration.Seconds(), 'f', 2, 64)
}

// groupThousands formats n with comma separators, e.g. 137,257.
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String()
}

// Files lists the paths Save writes for a report.
type Files struct {
	Text    string
	LaTeX   string
	Parquet string
}

// Save writes the text, LaTeX and Parquet outputs of rep into dir.
func Save(dir string, rep *Report) (Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Files{}, fmt.Errorf("create results dir: %w", err)
	}

	base := filepath.Join(dir, rep.BaseName())
	files := Files{
		Text:    base + ".txt",
		LaTeX:   base + ".tex",
		Parquet: base + ".parquet",
	}

	if err := writeFile(files.Text, rep, WriteText); err != nil {
		return files, err
	}
	if err := writeFile(files.LaTeX, rep, WriteLaTeX); err != nil {
		return files, err
	}
	if err := WriteParquet(files.Parquet, rep); err != nil {
		return files, err
	}
	return files, nil
}

func writeFile(path string, rep *Report, write func(io.Writer, *Report) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f, rep); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
