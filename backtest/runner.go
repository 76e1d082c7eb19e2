// Package backtest drives the execution simulator across a range of
// trading days. Days run strictly in order: holding-day counters, the
// asset baseline and the repurchase exclusion all depend on the previous
// day's final ledger state.
package backtest

import (
	"context"
	"fmt"

	"github.com/focalpoint94/Quant-ShortTerm-Simulator/config"
	"github.com/focalpoint94/Quant-ShortTerm-Simulator/journal"
	"github.com/focalpoint94/Quant-ShortTerm-Simulator/ledger"
	"github.com/focalpoint94/Quant-ShortTerm-Simulator/market"
	"github.com/focalpoint94/Quant-ShortTerm-Simulator/sim"
)

// Schedule supplies the trading dates and each day's candidate list and
// simulator flags. The candidate selection heuristics behind it are
// external collaborators.
type Schedule interface {
	Dates() []string
	Candidates(date string) ([]string, error)
	DayFlags(date string) sim.Flags
}

// MinuteFeed materializes one session's minute quotes for a set of codes.
type MinuteFeed interface {
	Day(date string, codes []string) (*market.Day, error)
}

// Runner wires one backtest run together.
type Runner struct {
	Strategy config.Strategy
	Schedule Schedule
	Feed     MinuteFeed
	Refs     market.ReferenceSource
	Journal  journal.Journal // optional
	RunID    string
}

// Result accumulates the run's day snapshots.
type Result struct {
	RunID       string
	Strategy    string
	InitialCash float64
	FinalAssets float64
	Days        []sim.DayResult
}

// Run executes the whole schedule. A day's results are only accepted (and
// journaled) after its close; any error aborts the run with no partial-day
// state recorded.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.Schedule == nil {
		return Result{}, fmt.Errorf("backtest: Schedule is required")
	}
	if r.Feed == nil {
		return Result{}, fmt.Errorf("backtest: Feed is required")
	}
	if r.Refs == nil {
		return Result{}, fmt.Errorf("backtest: Refs is required")
	}

	led := ledger.New(r.Strategy.InitialCash, r.Strategy.MaxPositions, r.Strategy.TaxRate, r.Strategy.FeeRate)

	res := Result{
		RunID:       r.RunID,
		Strategy:    r.Strategy.Name,
		InitialCash: r.Strategy.InitialCash,
		FinalAssets: r.Strategy.InitialCash,
	}

	for _, date := range r.Schedule.Dates() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		candidates, err := r.Schedule.Candidates(date)
		if err != nil {
			return Result{}, fmt.Errorf("candidates for %s: %w", date, err)
		}

		day, err := r.Feed.Day(date, unionCodes(candidates, led.Codes()))
		if err != nil {
			return Result{}, fmt.Errorf("minute feed for %s: %w", date, err)
		}

		session, err := sim.NewSession(date, r.Strategy, led, day, candidates, r.Refs)
		if err != nil {
			return Result{}, err
		}

		dr := session.Run(r.Schedule.DayFlags(date))

		if err := r.record(dr, led); err != nil {
			return Result{}, fmt.Errorf("journal %s: %w", date, err)
		}

		res.Days = append(res.Days, dr)
		res.FinalAssets = dr.TotalAssets
	}

	return res, nil
}

func (r *Runner) record(dr sim.DayResult, led *ledger.Ledger) error {
	if r.Journal == nil {
		return nil
	}
	for _, rt := range dr.Realized {
		err := r.Journal.RecordTrade(journal.TradeRecord{
			RunID:       r.RunID,
			Date:        dr.Date,
			Code:        rt.Code,
			BuyPrice:    rt.BuyPrice,
			SellPrice:   rt.SellPrice,
			Quantity:    rt.Quantity,
			YieldPct:    rt.YieldPct,
			Profit:      rt.Profit,
			HoldingDays: rt.HoldingDays,
		})
		if err != nil {
			return err
		}
	}
	return r.Journal.RecordDay(journal.DayRecord{
		RunID:    r.RunID,
		Date:     dr.Date,
		Assets:   dr.TotalAssets,
		Cash:     led.Cash(),
		YieldPct: dr.YieldPct,
		Open:     dr.OpenCount,
		Bought:   dr.BoughtCodes,
		Sold:     dr.SoldCodes,
	})
}

func unionCodes(candidates, held []string) []string {
	seen := make(map[string]struct{}, len(candidates)+len(held))
	out := make([]string, 0, len(candidates)+len(held))
	for _, c := range candidates {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	for _, c := range held {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
