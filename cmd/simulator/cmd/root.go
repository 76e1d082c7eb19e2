package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "simulator",
	Short: "Minute-resolution short-term trading simulator",
	Long: `Simulator replays minute-resolution market data against a short-term
trading strategy with exact fee and tax accounting.

It provides tools for:
  - Running multi-day backtests from a day plan and minute archives
  - Journaling realized trades and day snapshots to SQLite or CSV
  - Querying past runs from the SQLite journal
  - Printing a markdown summary of a finished run`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
