package sim

// sellWindow sells qty of code across the slot window [start, end),
// consuming each traded slot's volume until the quantity is filled. Slots
// without a trade are skipped but still consume the window. Any residual
// after the window is force-sold at the last price observed inside it (or
// at fallback when the window saw no trade at all) so the day's accounting
// always balances; that optimistic fill is specified policy.
func (s *Session) sellWindow(code string, qty int64, start, end int, fallback float64) {
	remaining := qty
	lastPrice := fallback
	lastSlot := start
	for i := start; i < end; i++ {
		lastSlot = i
		price, vol := s.day.At(i, code)
		if price == 0 || vol == 0 {
			continue
		}
		lastPrice = price
		if vol >= remaining {
			s.led.Sell(s.date, s.day.Stamp(i), code, price, remaining, s.strat.Class)
			remaining = 0
			break
		}
		s.led.Sell(s.date, s.day.Stamp(i), code, price, vol, s.strat.Class)
		remaining -= vol
	}
	if remaining > 0 && lastPrice > 0 {
		s.led.Sell(s.date, s.day.Stamp(lastSlot), code, lastPrice, remaining, s.strat.Class)
	}
}

// buyWindow buys up to qty of code across at most fillWindow slots starting
// at start, never touching the closing-auction slot. Unlike sells there is
// no force fill: an unfilled residual is simply abandoned. Reports whether
// any fill happened.
func (s *Session) buyWindow(code string, qty int64, start int) bool {
	end := min(start+fillWindow, s.day.Len()-1)
	remaining := qty
	bought := false
	for i := start; i < end; i++ {
		price, vol := s.day.At(i, code)
		if price == 0 || vol == 0 {
			continue
		}
		if vol >= remaining {
			if s.led.Buy(s.date, s.day.Stamp(i), code, price, remaining, s.strat.Class) {
				bought = true
			}
			break
		}
		if !s.led.Buy(s.date, s.day.Stamp(i), code, price, vol, s.strat.Class) {
			break
		}
		bought = true
		remaining -= vol
	}
	return bought
}
