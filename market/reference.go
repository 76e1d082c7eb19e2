package market

// RefBar carries the reference prices for one instrument on one trading
// day: the prior session's OHLC and the current session's open. Entry and
// exit price rules are anchored on these values.
type RefBar struct {
	PriorOpen   float64
	PriorHigh   float64
	PriorLow    float64
	PriorClose  float64
	SessionOpen float64
}

// PivotLevels are the five classic floor-trader levels derived from the
// prior session's high/low/close.
type PivotLevels struct {
	Pivot    float64
	Support1 float64
	Support2 float64
	Resist1  float64
	Resist2  float64
}

// Pivots derives the pivot levels from the prior-session bar.
func (b RefBar) Pivots() PivotLevels {
	p := (b.PriorHigh + b.PriorLow + b.PriorClose) / 3
	return PivotLevels{
		Pivot:    p,
		Support1: 2*p - b.PriorHigh,
		Support2: p - b.PriorHigh + b.PriorLow,
		Resist1:  2*p - b.PriorLow,
		Resist2:  p + b.PriorHigh - b.PriorLow,
	}
}

// ReferenceSource resolves reference bars for a given day and instrument.
// Lookups are idempotent and side-effect free, so implementations may cache
// or prefetch freely.
type ReferenceSource interface {
	RefBar(date, code string) (RefBar, error)
}
