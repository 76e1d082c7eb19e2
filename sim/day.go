package sim

import "github.com/focalpoint94/Quant-ShortTerm-Simulator/ledger"

// Flags are the per-day toggles set by the driver.
type Flags struct {
	EntriesEnabled bool
	LiquidateAll   bool
}

// DayResult is the snapshot one session hands back to the driver. The
// position snapshot is taken just before CloseDay, so holding-day counts
// reflect the state during the session.
type DayResult struct {
	Date      string
	Positions []ledger.Position
	Realized  []ledger.RealizedTrade
	Fills     []ledger.Fill

	ProfitChange float64
	YieldPct     float64
	TotalAssets  float64

	BoughtCodes int // distinct instruments bought today
	SoldCodes   int // distinct instruments sold today
	OpenCount   int
}

func countDistinct(fills []ledger.Fill, side ledger.Side) int {
	seen := make(map[string]struct{})
	for _, f := range fills {
		if f.Side == side {
			seen[f.Code] = struct{}{}
		}
	}
	return len(seen)
}
