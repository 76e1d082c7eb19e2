package ledger

// Class distinguishes the two instrument kinds the fee/tax formula knows
// about. Equity sales carry the transaction tax, fund sales do not.
type Class int

const (
	Equity Class = iota
	Fund
)

func (c Class) String() string {
	if c == Fund {
		return "fund"
	}
	return "equity"
}

// Position is one open holding with a single weighted-average cost basis.
// At most one Position per instrument code is open at a time; repeated buys
// merge into it.
type Position struct {
	Code        string
	Date        string // acquisition date, YYYYMMDD
	Minute      string // acquisition minute, HHMM
	AvgPrice    float64
	Quantity    int64
	MarkPrice   float64
	YieldPct    float64 // unrealized, net of fees/taxes
	HoldingDays int     // advanced only by CloseDay
	Class       Class
}

// RealizedTrade records a full or partial sale of a Position. Immutable
// once appended.
type RealizedTrade struct {
	Code        string
	BuyPrice    float64
	SellPrice   float64
	Quantity    int64
	YieldPct    float64
	Profit      float64 // currency units, net of fees/taxes
	HoldingDays int
	Date        string
}

// Side marks the direction of a Fill.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Sell {
		return "sell"
	}
	return "buy"
}

// Fill is one atomic execution appended to the day's transaction log.
type Fill struct {
	Side     Side
	Date     string
	Minute   string
	Code     string
	Price    float64
	Quantity int64
	Class    Class
}
