package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focalpoint94/Quant-ShortTerm-Simulator/ledger"
	"github.com/focalpoint94/Quant-ShortTerm-Simulator/market"
)

func TestCompileDefault(t *testing.T) {
	s, err := Default().Compile()
	require.NoError(t, err)

	assert.Equal(t, ledger.Equity, s.Class)
	assert.Equal(t, EntryPriorCloseOffset, s.Entry.Kind)
	assert.Equal(t, ExitPivot, s.Exit.Kind)
	assert.True(t, s.UseMaturity)
	assert.Equal(t, 3, s.MaturityDays)
}

func TestCompileRejectsInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cash", func(c *Config) { c.InitialCash = 0 }},
		{"zero positions", func(c *Config) { c.MaxPositions = 0 }},
		{"negative fee", func(c *Config) { c.FeeRate = -1 }},
		{"bad class", func(c *Config) { c.Class = "bond" }},
		{"bad entry rule", func(c *Config) { c.Entry.Rule = "limit" }},
		{"breakout without k", func(c *Config) { c.Entry = EntryConfig{Rule: "volatility-breakout"} }},
		{"bad exit rule", func(c *Config) { c.Exit.Rule = "market" }},
		{"bad pivot level", func(c *Config) { c.Exit.Level = "support3" }},
		{"pass rule as plain exit", func(c *Config) { c.Exit = ExitConfig{Rule: "same-session-close"} }},
		{"maturity without days", func(c *Config) { c.Maturity = HoldConfig{Enabled: true, Days: 0} }},
		{"min hold above maturity", func(c *Config) {
			c.MinHold = HoldConfig{Enabled: true, Days: 5}
			c.Maturity = HoldConfig{Enabled: true, Days: 3}
		}},
		{"bad maturity exit", func(c *Config) { c.MaturityExit.Rule = "market" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			_, err := cfg.Compile()
			assert.Error(t, err)
		})
	}
}

func TestEntryTargetPrice(t *testing.T) {
	ref := market.RefBar{PriorHigh: 110, PriorLow: 90, PriorClose: 100, SessionOpen: 102}

	offset := EntryRule{Kind: EntryPriorCloseOffset, OffsetPct: -1.5}
	assert.InDelta(t, 98.5, offset.TargetPrice(ref), 1e-9)

	breakout := EntryRule{Kind: EntryVolatilityBreakout, K: 0.5}
	assert.InDelta(t, 102+0.5*20, breakout.TargetPrice(ref), 1e-9)
}

func TestExitTargetPrice(t *testing.T) {
	ref := market.RefBar{PriorHigh: 110, PriorLow: 90, PriorClose: 100}

	tests := []struct {
		name string
		rule ExitRule
		want float64
	}{
		{"prior close offset", ExitRule{Kind: ExitPriorCloseOffset, OffsetPct: -3}, 97},
		{"pivot", ExitRule{Kind: ExitPivot, Level: LevelPivot}, 100},
		{"support1 with offset", ExitRule{Kind: ExitPivot, Level: LevelSupport1, OffsetPct: 1}, 90 * 1.01},
		{"resist2", ExitRule{Kind: ExitPivot, Level: LevelResist2}, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.rule.TargetPrice(ref), 1e-9)
		})
	}
}

func TestBreakEvenPrice(t *testing.T) {
	s := Strategy{Class: ledger.Equity, TaxRate: 0.003, FeeRate: 0.000088}
	assert.InDelta(t, 100*(1-0.000088-0.003)/(1+0.000088), s.BreakEvenPrice(100), 1e-9)

	s.Class = ledger.Fund
	assert.InDelta(t, 100*(1-0.000088)/(1+0.000088), s.BreakEvenPrice(100), 1e-9)
}

func TestLoadFromFileYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "strategy.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
name: test
initial_cash: 1000000
max_positions: 5
tax_rate: 0.003
fee_rate: 0.000088
class: equity
entry:
  rule: volatility-breakout
  k: 0.4
target_margin_pct: 10
exit:
  rule: prior-close-offset
  offset_pct: -3
`), 0o644))

	cfg, err := LoadFromFile(yamlPath)
	require.NoError(t, err)
	s, err := cfg.Compile()
	require.NoError(t, err)
	assert.Equal(t, EntryVolatilityBreakout, s.Entry.Kind)
	assert.Equal(t, 0.4, s.Entry.K)
	assert.Equal(t, 5, s.MaxPositions)

	jsonPath := filepath.Join(dir, "strategy.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  "name": "test",
  "initial_cash": 1000000,
  "max_positions": 5,
  "entry": {"rule": "prior-close-offset", "offset_pct": -1.5},
  "exit": {"rule": "pivot", "level": "pivot"}
}`), 0o644))

	cfg, err = LoadFromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "prior-close-offset", cfg.Entry.Rule)
}
