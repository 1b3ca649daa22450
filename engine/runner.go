// Package engine manages execution of the external compute engine and
// extraction of timing figures from its output.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/fatih/color"
)

// RunResult holds the captured output of a single engine invocation.
type RunResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	TimedOut bool
}

// Runner launches the engine once per (sample, mode) pair.
type Runner struct {
	// Command is the engine launch command; mode flags and the sample
	// path are appended to it.
	Command []string

	// Dir is the working directory for engine invocations. Empty means
	// inherit the harness's own working directory.
	Dir string

	// Timeout bounds a single invocation. Zero means no bound.
	Timeout time.Duration

	Logger *slog.Logger

	// Warnings receives human-readable diagnostics for non-fatal
	// failures. Defaults to os.Stderr.
	Warnings io.Writer
}

// NewRunner creates a Runner for the given launch command.
func NewRunner(command []string, logger *slog.Logger) *Runner {
	return &Runner{
		Command:  command,
		Logger:   logger.With(slog.String("component", "runner")),
		Warnings: os.Stderr,
	}
}

// Run executes the engine with the mode's flags and the sample path,
// capturing both output streams. A non-zero exit status or a
// timeout-triggered kill is not an error: it is reported as a warning
// and the captured output is returned so extraction can still be
// attempted. Only spawn failures and caller cancellation are fatal.
func (r *Runner) Run(ctx context.Context, samplePath string, mode Mode) (*RunResult, error) {
	if len(r.Command) == 0 {
		return nil, fmt.Errorf("run %s: empty engine command", samplePath)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	args := make([]string, 0, len(r.Command)+len(mode.Flags))
	args = append(args, r.Command[1:]...)
	args = append(args, mode.Flags...)
	args = append(args, samplePath)

	cmd := exec.CommandContext(ctx, r.Command[0], args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.Logger.Debug("running engine",
		slog.String("sample", samplePath),
		slog.String("mode", mode.Name),
	)

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	result := &RunResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		timedOut := errors.Is(ctx.Err(), context.DeadlineExceeded)

		var exitErr *exec.ExitError
		switch {
		case timedOut:
			result.TimedOut = true
			result.ExitCode = -1
			r.warnTimeout(samplePath, mode)

		case errors.Is(ctx.Err(), context.Canceled):
			return nil, ctx.Err()

		case errors.As(err, &exitErr):
			result.ExitCode = exitErr.ExitCode()
			r.warnCrash(samplePath, mode, result)

		default:
			return nil, fmt.Errorf("spawn engine for %s: %w", samplePath, err)
		}
	}

	r.Logger.Debug("engine finished",
		slog.String("sample", samplePath),
		slog.String("mode", mode.Name),
		slog.Duration("wall_time", elapsed),
		slog.Int("exit_code", result.ExitCode),
	)

	return result, nil
}

func (r *Runner) warnCrash(samplePath string, mode Mode, res *RunResult) {
	r.Logger.Warn("engine exited with non-zero status",
		slog.String("sample", samplePath),
		slog.String("mode", mode.Name),
		slog.Int("exit_code", res.ExitCode),
	)
	fmt.Fprintln(r.warnings(), color.YellowString(
		"process crashed (%s, %s, exit %d): %s",
		samplePath, mode.Name, res.ExitCode, bytes.TrimSpace(res.Stderr),
	))
}

func (r *Runner) warnTimeout(samplePath string, mode Mode) {
	r.Logger.Warn("engine timed out",
		slog.String("sample", samplePath),
		slog.String("mode", mode.Name),
		slog.Duration("timeout", r.Timeout),
	)
	fmt.Fprintln(r.warnings(), color.YellowString(
		"process timed out after %s (%s, %s)", r.Timeout, samplePath, mode.Name,
	))
}

func (r *Runner) warnings() io.Writer {
	if r.Warnings != nil {
		return r.Warnings
	}

	return os.Stderr
}
