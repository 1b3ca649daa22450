// Package main provides the CLI entry point for perftab, a harness
// that benchmarks sample programs across the engine's execution modes.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bfjit/perftab/engine"
	"github.com/bfjit/perftab/report"
	"github.com/bfjit/perftab/samples"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "perftab",
		Short: "Benchmark sample programs across engine execution modes",
		Long: `Perftab runs every sample program through the engine's interpreted,
unoptimized-JIT, and optimized-JIT modes and prints a Markdown table of
the timing figures the engine reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd())

	return root
}

func newRunCmd() *cobra.Command {
	var (
		samplesDir string
		engineCmd  string
		workDir    string
		timeout    time.Duration
		outputJSON bool
		noColor    bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run all samples through all engine modes and print the table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			color.NoColor = color.NoColor || noColor

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))

			return runReport(cmd.Context(), logger, reportConfig{
				samplesDir: samplesDir,
				engineCmd:  engineCmd,
				workDir:    workDir,
				timeout:    timeout,
				outputJSON: outputJSON,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&samplesDir, "samples", "../sample_programs",
		"Directory containing sample programs")
	flags.StringVar(&engineCmd, "engine", strings.Join(engine.DefaultCommand(), " "),
		"Engine launch command (whitespace-split)")
	flags.StringVar(&workDir, "dir", "",
		"Working directory for engine invocations")
	flags.DurationVar(&timeout, "timeout", 0,
		"Per-run time limit (0 = none)")
	flags.BoolVar(&outputJSON, "json", false,
		"Output results as JSON instead of a table")
	flags.BoolVar(&noColor, "no-color", false,
		"Disable colored diagnostics")
	flags.BoolVar(&verbose, "verbose", false,
		"Log each engine invocation")

	return cmd
}

type reportConfig struct {
	samplesDir string
	engineCmd  string
	workDir    string
	timeout    time.Duration
	outputJSON bool
}

func runReport(ctx context.Context, logger *slog.Logger, cfg reportConfig) error {
	command := strings.Fields(cfg.engineCmd)
	if len(command) == 0 {
		return fmt.Errorf("engine command must not be empty")
	}

	files, err := samples.List(cfg.samplesDir)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting benchmark",
		slog.String("samples_dir", cfg.samplesDir),
		slog.String("engine", cfg.engineCmd),
		slog.Int("files", len(files)),
	)

	runner := engine.NewRunner(command, logger)
	runner.Dir = cfg.workDir
	runner.Timeout = cfg.timeout

	// JSON output cannot stream row by row, so the table rendering is
	// discarded and the collected rows are encoded at the end.
	tableOut := io.Writer(os.Stdout)
	if cfg.outputJSON {
		tableOut = io.Discard
	}

	rows, err := report.Generate(ctx, tableOut, runner, cfg.samplesDir, files)
	if err != nil {
		return err
	}

	if cfg.outputJSON {
		if err := report.GenerateJSON(os.Stdout, rows); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	}

	logger.InfoContext(ctx, "benchmark complete",
		slog.Int("rows", len(rows)),
	)

	return nil
}
