// Package reporting turns a backtest result into summary statistics and a
// small markdown report. Charts and spreadsheets are out of scope.
package reporting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/focalpoint94/Quant-ShortTerm-Simulator/backtest"
)

// Summary is the aggregate view of one run.
type Summary struct {
	RunID    string
	Strategy string
	Days     int

	Trades     int
	Wins       int
	Losses     int
	WinRatePct float64

	AvgTradeYieldPct float64
	AvgHoldingDays   float64
	HoldingDaysHist  map[int]int

	AvgDayYieldPct float64
	BestDayPct     float64
	WorstDayPct    float64

	CumulativeReturnPct float64
	MaxDrawdownPct      float64
	FinalAssets         float64
}

// Summarize computes the run statistics from the day series.
func Summarize(res backtest.Result) Summary {
	s := Summary{
		RunID:       res.RunID,
		Strategy:    res.Strategy,
		Days:        len(res.Days),
		FinalAssets: res.FinalAssets,
	}
	if res.InitialCash > 0 {
		s.CumulativeReturnPct = (res.FinalAssets - res.InitialCash) / res.InitialCash * 100
	}

	s.HoldingDaysHist = make(map[int]int)

	var yieldSum, holdSum, daySum float64
	for i, d := range res.Days {
		daySum += d.YieldPct
		if i == 0 || d.YieldPct > s.BestDayPct {
			s.BestDayPct = d.YieldPct
		}
		if i == 0 || d.YieldPct < s.WorstDayPct {
			s.WorstDayPct = d.YieldPct
		}
		for _, rt := range d.Realized {
			s.Trades++
			yieldSum += rt.YieldPct
			holdSum += float64(rt.HoldingDays)
			s.HoldingDaysHist[rt.HoldingDays]++
			if rt.Profit > 0 {
				s.Wins++
			} else if rt.Profit < 0 {
				s.Losses++
			}
		}
	}
	if s.Days > 0 {
		s.AvgDayYieldPct = daySum / float64(s.Days)
	}
	if s.Trades > 0 {
		s.WinRatePct = float64(s.Wins) / float64(s.Trades) * 100
		s.AvgTradeYieldPct = yieldSum / float64(s.Trades)
		s.AvgHoldingDays = holdSum / float64(s.Trades)
	}

	s.MaxDrawdownPct = maxDrawdown(res)
	return s
}

// maxDrawdown is the largest peak-to-trough loss of the day-close asset
// series, as a positive percentage.
func maxDrawdown(res backtest.Result) float64 {
	peak := res.InitialCash
	var worst float64
	for _, d := range res.Days {
		if d.TotalAssets > peak {
			peak = d.TotalAssets
		}
		if peak > 0 {
			dd := (peak - d.TotalAssets) / peak * 100
			if dd > worst {
				worst = dd
			}
		}
	}
	return worst
}

// Markdown renders the summary as a two-column table.
func (s Summary) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Backtest %s\n\n", s.RunID)
	if s.Strategy != "" {
		fmt.Fprintf(&b, "Strategy: %s\n\n", s.Strategy)
	}
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Trading days | %d |\n", s.Days)
	fmt.Fprintf(&b, "| Final assets | %.2f |\n", s.FinalAssets)
	fmt.Fprintf(&b, "| Cumulative return | %.2f%% |\n", s.CumulativeReturnPct)
	fmt.Fprintf(&b, "| Max drawdown | %.2f%% |\n", s.MaxDrawdownPct)
	fmt.Fprintf(&b, "| Realized trades | %d |\n", s.Trades)
	fmt.Fprintf(&b, "| Wins / losses | %d / %d |\n", s.Wins, s.Losses)
	fmt.Fprintf(&b, "| Win rate | %.2f%% |\n", s.WinRatePct)
	fmt.Fprintf(&b, "| Avg trade yield | %.2f%% |\n", s.AvgTradeYieldPct)
	fmt.Fprintf(&b, "| Avg holding days | %.2f |\n", s.AvgHoldingDays)
	fmt.Fprintf(&b, "| Avg day yield | %.2f%% |\n", s.AvgDayYieldPct)
	fmt.Fprintf(&b, "| Best / worst day | %.2f%% / %.2f%% |\n", s.BestDayPct, s.WorstDayPct)

	if len(s.HoldingDaysHist) > 0 {
		b.WriteString("\n## Holding days\n\n| Days | Trades |\n|---|---|\n")
		for _, days := range sortedKeys(s.HoldingDaysHist) {
			fmt.Fprintf(&b, "| %d | %d |\n", days, s.HoldingDaysHist[days])
		}
	}
	return b.String()
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
