package execution

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ctp/internal/comparison"
	"ctp/internal/config"
	"ctp/internal/domain"
)

// The simulator runs headless, streaming the trace table as binary CSV.
var simulatorArgs = []string{"-tty", "table,binary,csv"}

// Runner executes a single circuit test against its reference output
type Runner struct {
	config *config.Config
	diag   io.Writer
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg, diag: os.Stderr}
}

// SetDiagnostics redirects error detail away from os.Stderr
func (r *Runner) SetDiagnostics(w io.Writer) {
	r.diag = w
}

// Run executes the simulator for a single circuit and compares its output
// stream against the reference table. A pipelined run is requested per test
// but silently downgraded when the test has no pipelined reference.
func (r *Runner) Run(ctx context.Context, test domain.Test, pipelined bool) domain.TestResult {
	start := time.Now()
	pipelined = pipelined && test.CanPipeline()

	result := domain.TestResult{
		Test:      test,
		Pipelined: pipelined,
	}

	cmp, err := r.execute(ctx, test, pipelined)
	switch {
	case err == nil && cmp.Passed:
		result.Verdict = domain.Pass()
	case err == nil:
		result.Verdict = domain.Fail(domain.ReasonMismatch)
		result.MismatchRow = cmp.MismatchRow
		result.ExpectedRow = strings.Join(cmp.Expected, ",")
		result.ActualRow = strings.Join(cmp.Actual, ",")
	default:
		result.Verdict = domain.Fail(domain.ReasonErrored)
		result.Err = err
		fmt.Fprintf(r.diag, "test %s: %v\n", test.ID(), err)
	}
	result.Duration = time.Since(start)
	return result
}

// execute launches the simulator, streams the comparison and writes the
// observed rows to the capture file. The capture is skipped when the test
// errors or the run is interrupted; the subprocess is terminated on every
// exit path.
func (r *Runner) execute(ctx context.Context, test domain.Test, pipelined bool) (comparison.Result, error) {
	reference, err := os.Open(test.ReferencePath(pipelined))
	if err != nil {
		return comparison.Result{}, fmt.Errorf("failed to open reference output: %w", err)
	}
	defer reference.Close()

	args := append(simulatorArgs, test.Path)
	proc, err := startProcess(r.config.GetSimulatorPath(), args, r.config.SimulatorEnv())
	if err != nil {
		return comparison.Result{}, fmt.Errorf("failed to start simulator: %w", err)
	}
	defer proc.release()

	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			proc.terminate()
		case <-watchDone:
		}
	}()

	result, err := comparison.Compare(ctx, proc.stdout, reference)
	if err != nil {
		return comparison.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return comparison.Result{}, err
	}
	if err := r.writeCapture(test, result.Rows); err != nil {
		return comparison.Result{}, err
	}
	return result, nil
}

// writeCapture stores the observed rows next to the circuit, creating the
// student-output directory as needed and overwriting any previous capture.
func (r *Runner) writeCapture(test domain.Test, rows [][]string) error {
	var buf bytes.Buffer
	if err := comparison.WriteTable(&buf, rows); err != nil {
		return fmt.Errorf("failed to encode capture: %w", err)
	}

	capturePath := test.CapturePath()
	if err := os.MkdirAll(filepath.Dir(capturePath), 0755); err != nil {
		return fmt.Errorf("failed to create capture dir: %w", err)
	}
	if err := os.WriteFile(capturePath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write capture: %w", err)
	}
	return nil
}
