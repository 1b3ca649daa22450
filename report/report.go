// Package report runs the benchmark matrix and formats the results.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/bfjit/perftab/engine"
)

// Row holds the timing figures for one sample file across all modes.
type Row struct {
	File           string `json:"file"`
	Interpreted    string `json:"interpreted"`
	JitUnoptimized string `json:"jit_unoptimized"`
	JitOptimized   string `json:"jit_optimized"`
}

// Runner executes the engine for one (sample, mode) pair.
type Runner interface {
	Run(ctx context.Context, samplePath string, mode engine.Mode) (*engine.RunResult, error)
}

// WriteHeader prints the fixed table header and separator.
func WriteHeader(w io.Writer) {
	fmt.Fprintln(w, "| file | interpreted time | jit unoptimized | jit optimized |")
	fmt.Fprintln(w, "|------|------------------|-----------------|---------------|")
}

// WriteRow prints one data row.
func WriteRow(w io.Writer, row Row) {
	fmt.Fprintf(w, "%s|%s|%s|%s\n",
		row.File, row.Interpreted, row.JitUnoptimized, row.JitOptimized,
	)
}

// Generate benchmarks every file in all three modes and streams a
// table row per file to w as soon as its runs finish. The collected
// rows are returned for callers that want another rendering.
//
// A crashed or timed-out run is tolerated: extraction is attempted on
// whatever output was captured. Output that cannot be parsed at all
// aborts generation; rows already written to w remain visible.
func Generate(
	ctx context.Context,
	w io.Writer,
	runner Runner,
	sampleDir string,
	files []string,
) ([]Row, error) {
	WriteHeader(w)

	rows := make([]Row, 0, len(files))

	for _, file := range files {
		row := Row{File: file}

		// Invocation order differs from column order: optimized JIT
		// runs before unoptimized.
		for _, mode := range engine.Modes() {
			result, err := runner.Run(ctx, filepath.Join(sampleDir, file), mode)
			if err != nil {
				return rows, fmt.Errorf("run %s (%s): %w", file, mode.Name, err)
			}

			timing, err := engine.ExtractTiming(result.Stdout)
			if err != nil {
				return rows, fmt.Errorf("extract %s (%s): %w", file, mode.Name, err)
			}

			switch mode.Name {
			case engine.Interpreted.Name:
				row.Interpreted = timing
			case engine.JitOptimized.Name:
				row.JitOptimized = timing
			case engine.JitUnoptimized.Name:
				row.JitUnoptimized = timing
			}
		}

		WriteRow(w, row)
		rows = append(rows, row)
	}

	return rows, nil
}

// GenerateJSON writes rows as an indented JSON array to w.
func GenerateJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rows)
}
