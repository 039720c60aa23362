package commands

import (
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ctp/internal/config"
	"ctp/internal/discovery"
	"ctp/internal/storage"
	"ctp/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}
	tests, err := lc.scanner.Scan(args)
	if err != nil {
		return err
	}

	// Filter tests
	tests = lc.filter.FilterByName(tests, lc.config.Flags.NameFilter)

	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	return lc.formatter.PrintTestList(tests, lc.config.Flags.Pipelined, lc.failedPathsFromLastRun())
}

// failedPathsFromLastRun returns normalized circuit paths that failed in the
// last saved run; nil when no run has been saved yet.
func (lc *ListCommand) failedPathsFromLastRun() map[string]struct{} {
	output, err := lc.storage.Load()
	if err != nil {
		return nil
	}

	failed := make(map[string]struct{}, len(output.Details))
	for _, failure := range output.Details {
		failed[normalizedPathForKey(lc.config.ProjectPath, failure.CircuitPath)] = struct{}{}
	}
	return failed
}

// normalizedPathForKey returns a path key for matching (same logic as ui package).
func normalizedPathForKey(projectPath, path string) string {
	p := path
	if projectPath != "" {
		if rel, err := filepath.Rel(projectPath, path); err == nil && rel != ".." && !strings.HasPrefix(rel, "..") {
			p = rel
		}
	}
	p = filepath.ToSlash(p)
	p = strings.TrimSuffix(p, ".circ")
	return strings.ToLower(p)
}
