package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/focalpoint94/Quant-ShortTerm-Simulator/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the SQLite journal",
	Long: `Query past backtest runs from the SQLite journal.

Subcommands:
  runs    - List registered runs, newest first
  trades  - List a run's realized trades
  days    - List a run's day snapshots

Examples:
  simulator journal runs
  simulator journal trades 01J9ZK...
  simulator journal trades 01J9ZK... --date 20210702
  simulator journal days 01J9ZK...`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List registered runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalTradesCmd = &cobra.Command{
	Use:   "trades <run-id>",
	Short: "List a run's realized trades",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrades,
}

var journalDaysCmd = &cobra.Command{
	Use:   "days <run-id>",
	Short: "List a run's day snapshots",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDays,
}

var (
	journalDBPath string
	journalDate   string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalTradesCmd)
	journalCmd.AddCommand(journalDaysCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./simulator.sqlite", "path to SQLite journal DB")
	journalTradesCmd.Flags().StringVar(&journalDate, "date", "", "restrict to one trading date (YYYYMMDD)")
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	fmt.Printf("%-28s %-16s %-10s %-10s\n", "RUN", "STRATEGY", "START", "END")
	for _, r := range runs {
		fmt.Printf("%-28s %-16s %-10s %-10s\n", r.RunID, r.Strategy, r.StartDate, r.EndDate)
	}
	return nil
}

func runJournalTrades(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	var trades []journal.TradeRecord
	if journalDate != "" {
		trades, err = j.ListTradesByDate(args[0], journalDate)
	} else {
		trades, err = j.ListTradesByRun(args[0])
	}
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Printf("%-10s %-8s %12s %12s %8s %8s %14s %5s\n",
		"DATE", "CODE", "BUY", "SELL", "QTY", "YIELD%", "PROFIT", "DAYS")
	for _, t := range trades {
		fmt.Printf("%-10s %-8s %12.2f %12.2f %8d %8.2f %14.2f %5d\n",
			t.Date, t.Code, t.BuyPrice, t.SellPrice, t.Quantity, t.YieldPct, t.Profit, t.HoldingDays)
	}
	return nil
}

func runJournalDays(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	days, err := j.ListDaysByRun(args[0])
	if err != nil {
		return fmt.Errorf("query days: %w", err)
	}

	fmt.Printf("%-10s %16s %16s %8s %5s %7s %5s\n",
		"DATE", "ASSETS", "CASH", "YIELD%", "OPEN", "BOUGHT", "SOLD")
	for _, d := range days {
		fmt.Printf("%-10s %16.2f %16.2f %8.2f %5d %7d %5d\n",
			d.Date, d.Assets, d.Cash, d.YieldPct, d.Open, d.Bought, d.Sold)
	}
	return nil
}
