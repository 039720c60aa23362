package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"ctp/internal/config"
	"ctp/internal/domain"
	"ctp/internal/ui"
)

// ErrInterrupted is returned when the user aborts a run. Verdicts already
// streamed stay valid; no summary is printed.
var ErrInterrupted = errors.New("test run interrupted")

// Session runs tests strictly one at a time, streaming a verdict line as
// each test completes
type Session struct {
	config   *config.Config
	runner   *Runner
	output   io.Writer
	diag     io.Writer
	progress *ui.ProgressBar
}

// NewSession creates a new Session writing verdict lines to output
func NewSession(cfg *config.Config, runner *Runner, output io.Writer) *Session {
	return &Session{
		config: cfg,
		runner: runner,
		output: output,
		diag:   os.Stderr,
	}
}

// SetProgress sets the progress bar for the session
func (s *Session) SetProgress(progress *ui.ProgressBar) {
	s.progress = progress
}

// SetDiagnostics redirects error detail away from os.Stderr
func (s *Session) SetDiagnostics(w io.Writer) {
	s.diag = w
}

// Execute runs all tests sequentially. Simulator subprocesses never
// overlap: each child is fully terminated before the next test starts.
// Cancelling ctx aborts the whole run after killing the in-flight child.
func (s *Session) Execute(ctx context.Context, tests []domain.Test) ([]domain.TestResult, time.Duration, error) {
	startTime := time.Now()

	var results []domain.TestResult
	var passed, failed int

	for _, test := range tests {
		if ctx.Err() != nil {
			return results, time.Since(startTime), ErrInterrupted
		}

		result := s.runTest(ctx, test)
		if ctx.Err() != nil {
			return results, time.Since(startTime), ErrInterrupted
		}

		if result.Verdict.Passed {
			passed++
			color.New(color.FgGreen).Fprintf(s.output, "PASS: %s\n", test.ID())
		} else {
			failed++
			color.New(color.FgRed).Fprintf(s.output, "FAIL: %s (%s)\n", test.ID(), result.Verdict.Reason)
		}
		results = append(results, result)

		if s.progress != nil {
			s.progress.Update(len(results), passed, failed)
		}
	}

	if s.progress != nil {
		s.progress.Finish()
	}
	fmt.Fprintf(s.output, "Passed %d/%d tests\n", passed, len(results))

	return results, time.Since(startTime), nil
}

// runTest shields the loop from panics in a single test; anything escaping
// the runner's own error handling fails just that test.
func (s *Session) runTest(ctx context.Context, test domain.Test) (result domain.TestResult) {
	defer func() {
		if rec := recover(); rec != nil {
			fmt.Fprintf(s.diag, "test %s: %v\n", test.ID(), rec)
			result = domain.TestResult{
				Test:    test,
				Verdict: domain.Fail(domain.ReasonUnknown),
			}
		}
	}()
	return s.runner.Run(ctx, test, s.config.Flags.Pipelined)
}
