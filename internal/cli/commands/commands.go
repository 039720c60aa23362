package commands

import (
	"os"

	"github.com/spf13/cobra"

	"ctp/internal/cli"
	"ctp/internal/config"
	"ctp/internal/discovery"
	"ctp/internal/execution"
	"ctp/internal/storage"
	"ctp/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run   *RunCommand
	List  *ListCommand
	Stats *StatsCommand
	Fails *FailsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner()
	filter := discovery.NewFilter()
	runner := execution.NewRunner(cfg)
	session := execution.NewSession(cfg, runner, os.Stdout)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	failureViewer := ui.NewFailureViewer(jsonStorage)

	return &Commands{
		Run:   NewRunCommand(cfg, scanner, filter, session, jsonStorage, failureViewer),
		List:  NewListCommand(cfg, scanner, filter, formatter, jsonStorage),
		Stats: NewStatsCommand(cfg, formatter),
		Fails: NewFailsCommand(cfg, jsonStorage, failureViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Run circuit tests",
		Long:  "Discover circuit tests under the given paths and run each through the simulator, comparing its trace against the reference output",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Resolve config from defaults, environment and flags after parsing
			*cfg = *config.Load(flags.ToConfigFlags())
			return nil
		},
	}
	runCmd.Flags().BoolVarP(&flags.Pipelined, "pipelined", "p", false, "Check against reference output for 2-stage pipeline (when applicable)")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*adder*' or 'alu?.circ')")
	runCmd.Flags().StringVar(&flags.Simulator, "simulator", "", "Path to the simulator binary (overrides "+config.SimulatorEnvVar+")")
	runCmd.Flags().BoolVar(&flags.ShowFails, "fails", false, "Open the failure viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List discovered circuit tests",
		Long:  "Discover and list circuit tests without executing them, marking tests that cannot run pipelined and tests with missing reference output",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			*cfg = *config.Load(flags.ToConfigFlags())
			return nil
		},
	}
	listCmd.Flags().BoolVarP(&flags.Pipelined, "pipelined", "p", false, "Check reference output for the 2-stage pipeline")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*adder*' or 'alu?.circ')")
	rootCmd.AddCommand(listCmd)

	// Stats command
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics for the last run",
		Long:  "Display the summary table of the last saved test run",
		RunE:  c.Stats.Execute,
	}
	rootCmd.AddCommand(statsCmd)

	// Fails command
	failsCmd := &cobra.Command{
		Use:   "fails",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last test run in an interactive viewer",
		RunE:  c.Fails.Execute,
	}
	rootCmd.AddCommand(failsCmd)
}
