package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/focalpoint94/Quant-ShortTerm-Simulator/backtest"
	"github.com/focalpoint94/Quant-ShortTerm-Simulator/config"
	"github.com/focalpoint94/Quant-ShortTerm-Simulator/feed"
	"github.com/focalpoint94/Quant-ShortTerm-Simulator/internal/id"
	"github.com/focalpoint94/Quant-ShortTerm-Simulator/journal"
	"github.com/focalpoint94/Quant-ShortTerm-Simulator/market"
	"github.com/focalpoint94/Quant-ShortTerm-Simulator/reporting"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest over a day plan",
	Long: `Run replays each trading day of the plan against the configured
strategy, journals the results and prints a markdown summary.

Example:
  simulator run --config strat.yaml --plan plan.yaml --refs refs.yaml --data ./minutes`,
	RunE: runRun,
}

var (
	runConfigPath string
	runPlanPath   string
	runRefsPath   string
	runDataDir    string
	runJournal    string
	runDBPath     string
	runTradesCSV  string
	runDaysCSV    string
	runRefRetries int
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "strategy config file, YAML or JSON (default: built-in reference strategy)")
	runCmd.Flags().StringVarP(&runPlanPath, "plan", "p", "", "day plan YAML (required)")
	runCmd.Flags().StringVarP(&runRefsPath, "refs", "r", "", "reference prices YAML (required)")
	runCmd.Flags().StringVar(&runDataDir, "data", "./minutes", "minute archive root directory")
	runCmd.Flags().StringVarP(&runJournal, "journal", "j", "sqlite", "journal backend (sqlite, csv, none)")
	runCmd.Flags().StringVarP(&runDBPath, "db", "d", "./simulator.sqlite", "path to SQLite journal DB")
	runCmd.Flags().StringVar(&runTradesCSV, "trades-csv", "./trades.csv", "trades CSV path (journal=csv)")
	runCmd.Flags().StringVar(&runDaysCSV, "days-csv", "./days.csv", "day snapshot CSV path (journal=csv)")
	runCmd.Flags().IntVar(&runRefRetries, "ref-retries", 1, "attempts per reference price lookup")

	runCmd.MarkFlagRequired("plan")
	runCmd.MarkFlagRequired("refs")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if runConfigPath != "" {
		var err error
		cfg, err = config.LoadFromFile(runConfigPath)
		if err != nil {
			return err
		}
	}
	strat, err := cfg.Compile()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	plan, err := feed.LoadPlan(runPlanPath)
	if err != nil {
		return err
	}
	if len(plan.Days) == 0 {
		return fmt.Errorf("plan has no trading days")
	}

	var refs market.ReferenceSource
	refs, err = feed.LoadRefs(runRefsPath)
	if err != nil {
		return err
	}
	if runRefRetries > 1 {
		refs = feed.RetryRefs{Inner: refs, Attempts: runRefRetries}
	}

	runID := id.New()
	dates := plan.Dates()

	jnl, err := openJournal(runID, strat.Name, dates)
	if err != nil {
		return err
	}
	if jnl != nil {
		defer jnl.Close()
	}

	runner := &backtest.Runner{
		Strategy: strat,
		Schedule: plan,
		Feed:     feed.DirFeed{Root: runDataDir},
		Refs:     refs,
		Journal:  jnl,
		RunID:    runID,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(reporting.Summarize(res).Markdown())
	return nil
}

// openJournal builds the selected journal backend. The SQLite backend also
// registers the run so queries can find it later.
func openJournal(runID, strategy string, dates []string) (journal.Journal, error) {
	switch runJournal {
	case "none":
		return nil, nil

	case "csv":
		return journal.NewCSV(runTradesCSV, runDaysCSV)

	case "sqlite":
		j, err := journal.NewSQLite(runDBPath)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		err = j.BeginRun(journal.RunRecord{
			RunID:     runID,
			Strategy:  strategy,
			StartDate: dates[0],
			EndDate:   dates[len(dates)-1],
		})
		if err != nil {
			j.Close()
			return nil, fmt.Errorf("register run: %w", err)
		}
		return j, nil

	default:
		return nil, fmt.Errorf("unknown journal backend %q (supported: sqlite, csv, none)", runJournal)
	}
}
