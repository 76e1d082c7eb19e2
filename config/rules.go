package config

import (
	"fmt"

	"github.com/focalpoint94/Quant-ShortTerm-Simulator/market"
)

// EntryRuleKind selects how the target entry price is derived.
type EntryRuleKind int

const (
	// EntryPriorCloseOffset anchors on the prior session's close plus a
	// percentage offset.
	EntryPriorCloseOffset EntryRuleKind = iota
	// EntryVolatilityBreakout uses sessionOpen + k*(priorHigh-priorLow).
	EntryVolatilityBreakout
)

// EntryRule is the compiled entry-price rule. Exactly one payload field is
// meaningful, chosen by Kind at config validation time.
type EntryRule struct {
	Kind      EntryRuleKind
	OffsetPct float64 // EntryPriorCloseOffset
	K         float64 // EntryVolatilityBreakout
}

func (k EntryRuleKind) String() string {
	if k == EntryVolatilityBreakout {
		return "volatility-breakout"
	}
	return "prior-close-offset"
}

// TargetPrice resolves the entry trigger price from the day's reference bar.
func (r EntryRule) TargetPrice(ref market.RefBar) float64 {
	switch r.Kind {
	case EntryVolatilityBreakout:
		return ref.SessionOpen + r.K*(ref.PriorHigh-ref.PriorLow)
	default:
		return ref.PriorClose * (1 + r.OffsetPct/100)
	}
}

// PivotLevel names one of the five pivot anchors.
type PivotLevel int

const (
	LevelPivot PivotLevel = iota
	LevelSupport1
	LevelSupport2
	LevelResist1
	LevelResist2
)

// ExitRuleKind selects how the rule-based exit price is derived. The two
// non-limit kinds are only valid as post-maturity rules: they do not yield
// a price, they schedule a forced liquidation pass instead.
type ExitRuleKind int

const (
	ExitPriorCloseOffset ExitRuleKind = iota
	ExitPivot
	ExitNextSessionOpen
	ExitSameSessionClose
)

// ExitRule is the compiled exit-price rule.
type ExitRule struct {
	Kind      ExitRuleKind
	Level     PivotLevel // ExitPivot
	OffsetPct float64
}

// Limit reports whether the rule resolves to a target price.
func (r ExitRule) Limit() bool {
	return r.Kind == ExitPriorCloseOffset || r.Kind == ExitPivot
}

// TargetPrice resolves the exit target price from the day's reference bar.
// Only valid for limit rules.
func (r ExitRule) TargetPrice(ref market.RefBar) float64 {
	var anchor float64
	switch r.Kind {
	case ExitPivot:
		pv := ref.Pivots()
		switch r.Level {
		case LevelSupport1:
			anchor = pv.Support1
		case LevelSupport2:
			anchor = pv.Support2
		case LevelResist1:
			anchor = pv.Resist1
		case LevelResist2:
			anchor = pv.Resist2
		default:
			anchor = pv.Pivot
		}
	default:
		anchor = ref.PriorClose
	}
	return anchor * (1 + r.OffsetPct/100)
}

func parseEntryRule(c EntryConfig) (EntryRule, error) {
	switch c.Rule {
	case "prior-close-offset":
		return EntryRule{Kind: EntryPriorCloseOffset, OffsetPct: c.OffsetPct}, nil
	case "volatility-breakout":
		if c.K <= 0 {
			return EntryRule{}, fmt.Errorf("entry.k must be positive for volatility-breakout")
		}
		return EntryRule{Kind: EntryVolatilityBreakout, K: c.K}, nil
	default:
		return EntryRule{}, fmt.Errorf("unknown entry rule %q", c.Rule)
	}
}

func parsePivotLevel(s string) (PivotLevel, error) {
	switch s {
	case "", "pivot":
		return LevelPivot, nil
	case "support1":
		return LevelSupport1, nil
	case "support2":
		return LevelSupport2, nil
	case "resist1":
		return LevelResist1, nil
	case "resist2":
		return LevelResist2, nil
	default:
		return 0, fmt.Errorf("unknown pivot level %q", s)
	}
}

func parseExitRule(c ExitConfig, allowPass bool) (ExitRule, error) {
	switch c.Rule {
	case "prior-close-offset":
		return ExitRule{Kind: ExitPriorCloseOffset, OffsetPct: c.OffsetPct}, nil
	case "pivot":
		level, err := parsePivotLevel(c.Level)
		if err != nil {
			return ExitRule{}, err
		}
		return ExitRule{Kind: ExitPivot, Level: level, OffsetPct: c.OffsetPct}, nil
	case "next-session-open":
		if !allowPass {
			return ExitRule{}, fmt.Errorf("exit rule %q is only valid as a maturity exit", c.Rule)
		}
		return ExitRule{Kind: ExitNextSessionOpen}, nil
	case "same-session-close":
		if !allowPass {
			return ExitRule{}, fmt.Errorf("exit rule %q is only valid as a maturity exit", c.Rule)
		}
		return ExitRule{Kind: ExitSameSessionClose}, nil
	default:
		return ExitRule{}, fmt.Errorf("unknown exit rule %q", c.Rule)
	}
}
