// Package ledger is the authoritative bookkeeping for one simulated
// account: cash, open positions, realized trades and the day's transaction
// log. It knows nothing about strategy rules or market data; the execution
// simulator drives it through Buy/Sell/MarkToMarket/CloseDay.
package ledger

// Ledger tracks one account across a whole simulation run. Positions are
// held in an ordered map keyed by instrument code, so there is at most one
// lot per code and iteration follows acquisition order.
type Ledger struct {
	assets       float64 // cash + marked position value, updated at CloseDay
	cash         float64
	maxPositions int
	taxRate      float64
	feeRate      float64

	order     []string
	positions map[string]*Position

	realized []RealizedTrade
	fills    []Fill
}

func New(initialCash float64, maxPositions int, taxRate, feeRate float64) *Ledger {
	return &Ledger{
		assets:       initialCash,
		cash:         initialCash,
		maxPositions: maxPositions,
		taxRate:      taxRate,
		feeRate:      feeRate,
		positions:    make(map[string]*Position),
	}
}

// unitProfit is the net profit of selling one unit bought at buy for sell.
// Equity sales pay the transaction tax on top of both fee legs.
func (l *Ledger) unitProfit(buy, sell float64, class Class) float64 {
	if class == Fund {
		return sell - buy - buy*l.feeRate - sell*l.feeRate
	}
	return sell - buy - buy*l.feeRate - sell*(l.taxRate+l.feeRate)
}

func (l *Ledger) yieldPct(buy, sell float64, class Class) float64 {
	return l.unitProfit(buy, sell, class) / buy * 100
}

// Buy executes one buy fill. It fails only when the position cap is reached
// and the code is not already held; averaging into an existing lot is never
// blocked by the cap. Repeated buys of a held code merge by
// quantity-weighted average price, keeping the lot's acquisition date and
// holding-day count.
func (l *Ledger) Buy(date, minute, code string, price float64, quantity int64, class Class) bool {
	pos, held := l.positions[code]
	if !held && len(l.order) >= l.maxPositions {
		return false
	}

	l.cash -= price * float64(quantity) * (1 + l.feeRate)

	if held {
		newQty := pos.Quantity + quantity
		pos.AvgPrice = (pos.AvgPrice*float64(pos.Quantity) + price*float64(quantity)) / float64(newQty)
		pos.Quantity = newQty
		pos.MarkPrice = price
		pos.YieldPct = l.yieldPct(pos.AvgPrice, price, class)
	} else {
		l.positions[code] = &Position{
			Code:      code,
			Date:      date,
			Minute:    minute,
			AvgPrice:  price,
			Quantity:  quantity,
			MarkPrice: price,
			YieldPct:  l.yieldPct(price, price, class),
			Class:     class,
		}
		l.order = append(l.order, code)
	}

	l.fills = append(l.fills, Fill{
		Side: Buy, Date: date, Minute: minute, Code: code,
		Price: price, Quantity: quantity, Class: class,
	})
	return true
}

// Sell executes one sell fill against the held lot. It fails, with no state
// change, when the code is not held or quantity exceeds the lot. A full
// sale removes the lot; a partial sale decrements it in place and leaves
// the holding-day count untouched.
func (l *Ledger) Sell(date, minute, code string, price float64, quantity int64, class Class) bool {
	pos, held := l.positions[code]
	if !held || quantity > pos.Quantity {
		return false
	}

	proceeds := price * float64(quantity)
	if class == Fund {
		l.cash += proceeds - proceeds*l.feeRate
	} else {
		l.cash += proceeds - proceeds*(l.taxRate+l.feeRate)
	}

	l.realized = append(l.realized, RealizedTrade{
		Code:        code,
		BuyPrice:    pos.AvgPrice,
		SellPrice:   price,
		Quantity:    quantity,
		YieldPct:    l.yieldPct(pos.AvgPrice, price, class),
		Profit:      float64(quantity) * l.unitProfit(pos.AvgPrice, price, class),
		HoldingDays: pos.HoldingDays,
		Date:        date,
	})
	l.fills = append(l.fills, Fill{
		Side: Sell, Date: date, Minute: minute, Code: code,
		Price: price, Quantity: quantity, Class: class,
	})

	if quantity == pos.Quantity {
		delete(l.positions, code)
		for i, c := range l.order {
			if c == code {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	} else {
		pos.Quantity -= quantity
	}
	return true
}

// MarkToMarket overwrites each open position's mark price, in position
// order, then recomputes unrealized yields. Extra prices are ignored;
// positions beyond the given prices keep their previous mark.
func (l *Ledger) MarkToMarket(prices []float64) {
	for i, code := range l.order {
		if i >= len(prices) {
			break
		}
		l.positions[code].MarkPrice = prices[i]
	}
	for _, code := range l.order {
		pos := l.positions[code]
		pos.YieldPct = l.yieldPct(pos.AvgPrice, pos.MarkPrice, pos.Class)
	}
}

// CloseDay settles the trading day: it revalues total assets from cash and
// marked positions, advances every open position's holding-day count,
// computes the day P&L against the previous baseline and clears the day's
// realized-trade and fill lists. It must be called exactly once per trading
// day, after all buys and sells. This is the only place holding-day
// counters and the asset baseline move.
func (l *Ledger) CloseDay() (profitChange, yieldPct, totalAssets float64) {
	var positionValue float64
	for _, code := range l.order {
		pos := l.positions[code]
		positionValue += float64(pos.Quantity) * pos.MarkPrice
		pos.HoldingDays++
	}

	totalAssets = l.cash + positionValue
	profitChange = totalAssets - l.assets
	yieldPct = profitChange / l.assets * 100
	l.assets = totalAssets

	l.realized = nil
	l.fills = nil
	return profitChange, yieldPct, totalAssets
}

// Positions returns copies of the open positions in acquisition order.
func (l *Ledger) Positions() []Position {
	out := make([]Position, 0, len(l.order))
	for _, code := range l.order {
		out = append(out, *l.positions[code])
	}
	return out
}

// Codes returns the held instrument codes in acquisition order.
func (l *Ledger) Codes() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Position returns a copy of the lot for code, if held.
func (l *Ledger) Position(code string) (Position, bool) {
	pos, ok := l.positions[code]
	if !ok {
		return Position{}, false
	}
	return *pos, true
}

// Realized returns a copy of the day's realized trades so far.
func (l *Ledger) Realized() []RealizedTrade {
	out := make([]RealizedTrade, len(l.realized))
	copy(out, l.realized)
	return out
}

// Fills returns a copy of the day's transaction log so far.
func (l *Ledger) Fills() []Fill {
	out := make([]Fill, len(l.fills))
	copy(out, l.fills)
	return out
}

func (l *Ledger) Cash() float64     { return l.cash }
func (l *Ledger) OpenCount() int    { return len(l.order) }
func (l *Ledger) MaxPositions() int { return l.maxPositions }

// TotalAssets returns the asset baseline set at the previous CloseDay.
// Position sizing divides this by the position cap.
func (l *Ledger) TotalAssets() float64 { return l.assets }
