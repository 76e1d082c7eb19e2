// Package journal persists simulation output: realized trades and per-day
// account snapshots, tagged with the run they belong to. Rows for a day are
// only recorded after the ledger's day close, so a journal never contains
// partial-day state.
package journal

// TradeRecord is one realized trade as reported by the simulator.
type TradeRecord struct {
	RunID       string
	Date        string // realization date, YYYYMMDD
	Code        string
	BuyPrice    float64
	SellPrice   float64
	Quantity    int64
	YieldPct    float64
	Profit      float64
	HoldingDays int
}

// DayRecord is the end-of-day account snapshot.
type DayRecord struct {
	RunID    string
	Date     string
	Assets   float64
	Cash     float64
	YieldPct float64
	Open     int
	Bought   int
	Sold     int
}

// RunRecord identifies one backtest run.
type RunRecord struct {
	RunID     string
	Strategy  string
	StartDate string
	EndDate   string
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordDay(DayRecord) error
	Close() error
}
