// Package sim runs the per-day minute-tick execution simulation. Given a
// prioritized candidate list, a materialized minute feed and the compiled
// strategy, a Session drives the Ledger through liquidation passes, the
// entry/exit minute loop and mark-to-market, and returns the day snapshot.
package sim

import (
	"fmt"

	"github.com/focalpoint94/Quant-ShortTerm-Simulator/config"
	"github.com/focalpoint94/Quant-ShortTerm-Simulator/ledger"
	"github.com/focalpoint94/Quant-ShortTerm-Simulator/market"
)

const (
	// fillWindow is the number of consecutive minute slots a partial-fill
	// scan may span.
	fillWindow = 5
	// closeWindow is the slot span of the end-of-session maturity pass.
	closeWindow = 6
)

// targets are the per-code prices resolved once before the minute loop.
type targets struct {
	entry        float64
	exit         float64
	maturityExit float64
}

// Session simulates one trading day. It exclusively owns the Ledger for
// the duration of Run; processing is strictly sequential.
type Session struct {
	date       string
	strat      config.Strategy
	led        *ledger.Ledger
	day        *market.Day
	candidates []string
	targets    map[string]targets

	boughtToday map[string]bool // same-day re-entry guard
}

// NewSession prepares one day's simulation. Candidates must already be
// filtered for data availability; the session applies the repurchase
// exclusion itself and resolves all entry/exit target prices up front from
// refs. A reference failure aborts the day before any ledger mutation.
func NewSession(date string, strat config.Strategy, led *ledger.Ledger, day *market.Day,
	candidates []string, refs market.ReferenceSource) (*Session, error) {

	held := led.Codes()
	if !strat.AllowRepurchase || strat.UseMaturity {
		heldSet := make(map[string]struct{}, len(held))
		for _, c := range held {
			heldSet[c] = struct{}{}
		}
		kept := make([]string, 0, len(candidates))
		for _, c := range candidates {
			if _, ok := heldSet[c]; !ok {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	s := &Session{
		date:        date,
		strat:       strat,
		led:         led,
		day:         day,
		candidates:  candidates,
		targets:     make(map[string]targets, len(candidates)+len(held)),
		boughtToday: make(map[string]bool),
	}

	for _, code := range candidates {
		if err := s.resolveTargets(code, refs); err != nil {
			return nil, err
		}
	}
	for _, code := range held {
		if _, ok := s.targets[code]; ok {
			continue
		}
		if err := s.resolveTargets(code, refs); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Session) resolveTargets(code string, refs market.ReferenceSource) error {
	ref, err := refs.RefBar(s.date, code)
	if err != nil {
		return fmt.Errorf("reference prices for %s on %s: %w", code, s.date, err)
	}
	tg := targets{
		entry: s.strat.Entry.TargetPrice(ref),
		exit:  s.strat.Exit.TargetPrice(ref),
	}
	if s.strat.UseMaturity && s.strat.MaturityExit.Limit() {
		tg.maturityExit = s.strat.MaturityExit.TargetPrice(ref)
	}
	s.targets[code] = tg
	return nil
}

// Run executes the day: liquidation passes, the minute loop, the
// end-of-session maturity pass and CloseDay. It returns the day snapshot.
func (s *Session) Run(flags Flags) DayResult {
	if flags.LiquidateAll {
		s.liquidatePass(0)
	}
	if s.strat.UseMaturity && s.strat.MaturityExit.Kind == config.ExitNextSessionOpen {
		s.maturityOpenPass()
	}

	for t := 0; t < s.day.Len(); t++ {
		if flags.EntriesEnabled && s.led.OpenCount() < s.strat.MaxPositions {
			s.entryPhase(t)
		}
		s.exitPhase(t)
		s.mark(t)
	}

	if s.strat.UseMaturity && s.strat.MaturityExit.Kind == config.ExitSameSessionClose {
		s.maturityClosePass()
	}

	res := DayResult{
		Date:      s.date,
		Positions: s.led.Positions(),
		Realized:  s.led.Realized(),
		Fills:     s.led.Fills(),
	}
	res.ProfitChange, res.YieldPct, res.TotalAssets = s.led.CloseDay()
	res.BoughtCodes = countDistinct(res.Fills, ledger.Buy)
	res.SoldCodes = countDistinct(res.Fills, ledger.Sell)
	res.OpenCount = len(res.Positions)
	return res
}

// liquidatePass sells every open position over the first fillWindow slots.
func (s *Session) liquidatePass(start int) {
	for _, pos := range s.led.Positions() {
		s.sellWindow(pos.Code, pos.Quantity, start, start+fillWindow, pos.MarkPrice)
	}
}

// maturityOpenPass force-sells matured positions at the session open.
func (s *Session) maturityOpenPass() {
	for _, pos := range s.led.Positions() {
		if pos.HoldingDays >= s.strat.MaturityDays {
			s.sellWindow(pos.Code, pos.Quantity, 0, fillWindow, pos.MarkPrice)
		}
	}
}

// maturityClosePass sells positions one day short of maturity over the last
// closeWindow slots, closing auction included.
func (s *Session) maturityClosePass() {
	for _, pos := range s.led.Positions() {
		if pos.HoldingDays >= s.strat.MaturityDays-1 {
			s.sellWindow(pos.Code, pos.Quantity, s.day.Len()-closeWindow, s.day.Len(), pos.MarkPrice)
		}
	}
}

// entryPhase walks the candidate list in priority order and opens positions
// whose entry trigger, exit-contradiction and break-even checks all pass.
func (s *Session) entryPhase(t int) {
	for _, code := range s.candidates {
		if s.led.OpenCount() >= s.strat.MaxPositions {
			return
		}
		if s.boughtToday[code] {
			continue
		}
		price, vol := s.day.At(t, code)
		if price == 0 || vol == 0 {
			continue
		}
		tg := s.targets[code]
		if price > tg.entry || price >= tg.exit {
			continue
		}
		if price > s.strat.BreakEvenPrice(tg.exit) {
			continue
		}
		qty := int64(s.led.TotalAssets() / float64(s.strat.MaxPositions) / price)
		if qty <= 0 {
			continue
		}
		if s.buyWindow(code, qty, t) {
			s.boughtToday[code] = true
		}
	}
}

// exitPhase evaluates every open position at minute t. Take-profit and
// stop-loss take precedence over the rule-based exit; once maturity is
// reached the post-maturity rule replaces the regular one. At most one exit
// fires per position per minute.
func (s *Session) exitPhase(t int) {
	for _, pos := range s.led.Positions() {
		if s.strat.UseMinHold && pos.HoldingDays < s.strat.MinHoldDays {
			continue
		}
		price, vol := s.day.At(t, pos.Code)
		if price == 0 || vol == 0 {
			continue
		}

		winPrice := pos.AvgPrice * (1 + s.strat.TargetMarginPct/100)
		if price >= winPrice || (s.strat.UseStopLoss && price <= pos.AvgPrice*(1+s.strat.LossMarginPct/100)) {
			s.sellWindow(pos.Code, pos.Quantity, t, min(t+fillWindow, s.day.Len()-1), price)
			continue
		}

		target := s.targets[pos.Code].exit
		if s.strat.UseMaturity && pos.HoldingDays >= s.strat.MaturityDays {
			if !s.strat.MaturityExit.Limit() {
				continue
			}
			target = s.targets[pos.Code].maturityExit
		}
		if price >= target {
			s.sellWindow(pos.Code, pos.Quantity, t, min(t+fillWindow, s.day.Len()-1), price)
		}
	}
}

// mark refreshes every open position's mark price from minute t, carrying
// the previous mark forward when the minute had no trade.
func (s *Session) mark(t int) {
	positions := s.led.Positions()
	if len(positions) == 0 {
		return
	}
	prices := make([]float64, len(positions))
	for i, pos := range positions {
		price, vol := s.day.At(t, pos.Code)
		if price == 0 || vol == 0 {
			prices[i] = pos.MarkPrice
		} else {
			prices[i] = price
		}
	}
	s.led.MarkToMarket(prices)
}
