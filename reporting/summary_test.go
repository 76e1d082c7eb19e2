package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/focalpoint94/Quant-ShortTerm-Simulator/backtest"
	"github.com/focalpoint94/Quant-ShortTerm-Simulator/ledger"
	"github.com/focalpoint94/Quant-ShortTerm-Simulator/sim"
)

func testResult() backtest.Result {
	return backtest.Result{
		RunID:       "01RUN",
		Strategy:    "shortterm",
		InitialCash: 1_000_000,
		FinalAssets: 1_060_000,
		Days: []sim.DayResult{
			{
				Date:        "20210701",
				TotalAssets: 980_000,
				Realized: []ledger.RealizedTrade{
					{Code: "A", Profit: -20_000, YieldPct: -2, HoldingDays: 0},
				},
			},
			{
				Date:        "20210702",
				TotalAssets: 1_100_000,
				Realized: []ledger.RealizedTrade{
					{Code: "B", Profit: 80_000, YieldPct: 8, HoldingDays: 1},
					{Code: "C", Profit: 40_000, YieldPct: 3, HoldingDays: 3},
				},
			},
			{Date: "20210705", TotalAssets: 1_060_000},
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(testResult())

	assert.Equal(t, "01RUN", s.RunID)
	assert.Equal(t, 3, s.Days)
	assert.Equal(t, 3, s.Trades)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.InDelta(t, 66.6667, s.WinRatePct, 1e-3)
	assert.InDelta(t, 3.0, s.AvgTradeYieldPct, 1e-9) // (-2 + 8 + 3) / 3
	assert.InDelta(t, 4.0/3, s.AvgHoldingDays, 1e-9)
	assert.InDelta(t, 6.0, s.CumulativeReturnPct, 1e-9)
	assert.Equal(t, map[int]int{0: 1, 1: 1, 3: 1}, s.HoldingDaysHist)
}

func TestSummarizeMaxDrawdown(t *testing.T) {
	s := Summarize(testResult())

	// Initial cash is the first peak: 1_000_000 -> 980_000 is a 2% dip.
	// The later 1_100_000 -> 1_060_000 drop is only ~3.64%.
	assert.InDelta(t, 40_000.0/1_100_000*100, s.MaxDrawdownPct, 1e-9)
}

func TestSummarizeEmptyRun(t *testing.T) {
	s := Summarize(backtest.Result{InitialCash: 1_000_000, FinalAssets: 1_000_000})

	assert.Zero(t, s.Trades)
	assert.Zero(t, s.WinRatePct)
	assert.Zero(t, s.MaxDrawdownPct)
	assert.Zero(t, s.CumulativeReturnPct)
}

func TestMarkdown(t *testing.T) {
	out := Summarize(testResult()).Markdown()

	assert.Contains(t, out, "# Backtest 01RUN")
	assert.Contains(t, out, "Strategy: shortterm")
	assert.Contains(t, out, "| Cumulative return | 6.00% |")
	assert.Contains(t, out, "| Wins / losses | 2 / 1 |")
}
