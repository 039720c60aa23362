package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ctp/internal/config"
	"ctp/internal/discovery"
	"ctp/internal/domain"
	"ctp/internal/execution"
	"ctp/internal/storage"
	"ctp/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config   *config.Config
	scanner  *discovery.Scanner
	filter   *discovery.Filter
	executor execution.Executor
	storage  storage.Storage
	viewer   ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	executor execution.Executor,
	st storage.Storage,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:   cfg,
		scanner:  scanner,
		filter:   filter,
		executor: executor,
		storage:  st,
		viewer:   viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// Discover tests
	paths, err := rc.scanner.Scan(args)
	if err != nil {
		return err
	}

	// Filter tests
	paths = rc.filter.FilterByName(paths, rc.config.Flags.NameFilter)

	tests := make([]domain.Test, 0, len(paths))
	for _, path := range paths {
		tests = append(tests, domain.NewTest(path))
	}

	// Create and set progress bar
	if len(tests) > 0 {
		rc.executor.SetProgress(ui.NewProgressBar(len(tests)))
	}

	// Execute tests; an empty set still prints the 0/0 summary
	results, duration, err := rc.executor.Execute(cmd.Context(), tests)
	if err != nil {
		return err
	}

	// Collect failure details
	var failures []domain.TestFailure
	for _, result := range results {
		if !result.Verdict.Passed {
			failures = append(failures, failureDetail(result))
		}
	}

	// Save results
	if err := rc.storage.Save(results, failures, duration, rc.config.Flags.Pipelined); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	// Optionally open the failure viewer
	if rc.config.Flags.ShowFails && len(failures) > 0 {
		output, err := rc.storage.Load()
		if err != nil {
			return err
		}
		return rc.viewer.View(output)
	}

	return nil
}

// failureDetail converts a failed result into its persisted diagnostic form.
// The capture path is recorded only when a capture was actually written.
func failureDetail(result domain.TestResult) domain.TestFailure {
	failure := domain.TestFailure{
		TestName:      result.Test.Name,
		CircuitPath:   result.Test.Path,
		Reason:        result.Verdict.Reason,
		ReferencePath: result.Test.ReferencePath(result.Pipelined),
		MismatchRow:   result.MismatchRow,
		ExpectedRow:   result.ExpectedRow,
		ActualRow:     result.ActualRow,
	}
	if result.Verdict.Reason == domain.ReasonMismatch {
		failure.CapturePath = result.Test.CapturePath()
	}
	if result.Err != nil {
		failure.ErrorDetails = result.Err.Error()
	}
	return failure
}
