package commands

import (
	"github.com/spf13/cobra"

	"ctp/internal/config"
	"ctp/internal/ui"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewStatsCommand creates a new StatsCommand
func NewStatsCommand(cfg *config.Config, formatter *ui.Formatter) *StatsCommand {
	return &StatsCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command
func (sc *StatsCommand) Execute(cmd *cobra.Command, args []string) error {
	return sc.formatter.PrintMetaStats()
}
