// Package config loads and validates the simulation configuration. Rule
// variants arrive as string tags in YAML (JSON is accepted as a fallback)
// and are compiled once into typed rules; nothing is re-parsed per tick.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/focalpoint94/Quant-ShortTerm-Simulator/ledger"
)

// Config is the file-facing configuration.
type Config struct {
	Name         string  `json:"name" yaml:"name"`
	InitialCash  float64 `json:"initial_cash" yaml:"initial_cash"`
	MaxPositions int     `json:"max_positions" yaml:"max_positions"`
	TaxRate      float64 `json:"tax_rate" yaml:"tax_rate"`
	FeeRate      float64 `json:"fee_rate" yaml:"fee_rate"`
	Class        string  `json:"class" yaml:"class"` // "equity" or "fund"

	Entry           EntryConfig    `json:"entry" yaml:"entry"`
	AllowRepurchase bool           `json:"allow_repurchase" yaml:"allow_repurchase"`
	TargetMarginPct float64        `json:"target_margin_pct" yaml:"target_margin_pct"`
	StopLoss        StopLossConfig `json:"stop_loss" yaml:"stop_loss"`
	MinHold         HoldConfig     `json:"min_holding_days" yaml:"min_holding_days"`
	Maturity        HoldConfig     `json:"max_holding_days" yaml:"max_holding_days"`
	Exit            ExitConfig     `json:"exit" yaml:"exit"`
	MaturityExit    ExitConfig     `json:"maturity_exit" yaml:"maturity_exit"`
}

type EntryConfig struct {
	Rule      string  `json:"rule" yaml:"rule"`
	OffsetPct float64 `json:"offset_pct,omitempty" yaml:"offset_pct,omitempty"`
	K         float64 `json:"k,omitempty" yaml:"k,omitempty"`
}

type ExitConfig struct {
	Rule      string  `json:"rule" yaml:"rule"`
	Level     string  `json:"level,omitempty" yaml:"level,omitempty"`
	OffsetPct float64 `json:"offset_pct,omitempty" yaml:"offset_pct,omitempty"`
}

type StopLossConfig struct {
	Enabled   bool    `json:"enabled" yaml:"enabled"`
	MarginPct float64 `json:"margin_pct" yaml:"margin_pct"`
}

type HoldConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Days    int  `json:"days" yaml:"days"`
}

// Strategy is the compiled, validated form consumed by the simulator.
type Strategy struct {
	Name         string
	InitialCash  float64
	MaxPositions int
	TaxRate      float64
	FeeRate      float64
	Class        ledger.Class

	Entry           EntryRule
	AllowRepurchase bool
	TargetMarginPct float64
	UseStopLoss     bool
	LossMarginPct   float64
	UseMinHold      bool
	MinHoldDays     int
	UseMaturity     bool
	MaturityDays    int
	Exit            ExitRule
	MaturityExit    ExitRule
}

// BreakEvenPrice is the highest entry price at which exiting at target
// would still clear transaction costs.
func (s Strategy) BreakEvenPrice(target float64) float64 {
	if s.Class == ledger.Fund {
		return target * (1 - s.FeeRate) / (1 + s.FeeRate)
	}
	return target * (1 - s.FeeRate - s.TaxRate) / (1 + s.FeeRate)
}

// LoadFromFile loads a configuration file, trying YAML first and JSON as a
// fallback.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

// Compile validates the configuration and resolves the rule variants. Any
// inconsistency here is fatal: the run must not start.
func (c *Config) Compile() (Strategy, error) {
	var s Strategy

	if c.InitialCash <= 0 {
		return s, fmt.Errorf("initial_cash must be positive")
	}
	if c.MaxPositions <= 0 {
		return s, fmt.Errorf("max_positions must be positive")
	}
	if c.TaxRate < 0 || c.FeeRate < 0 {
		return s, fmt.Errorf("tax_rate and fee_rate must not be negative")
	}

	switch c.Class {
	case "", "equity":
		s.Class = ledger.Equity
	case "fund":
		s.Class = ledger.Fund
	default:
		return s, fmt.Errorf("class must be \"equity\" or \"fund\", got %q", c.Class)
	}

	entry, err := parseEntryRule(c.Entry)
	if err != nil {
		return s, err
	}
	exit, err := parseExitRule(c.Exit, false)
	if err != nil {
		return s, fmt.Errorf("exit: %w", err)
	}

	if c.MinHold.Enabled && c.MinHold.Days < 0 {
		return s, fmt.Errorf("min_holding_days.days must not be negative")
	}
	if c.Maturity.Enabled && c.Maturity.Days <= 0 {
		return s, fmt.Errorf("max_holding_days.days must be positive")
	}
	if c.MinHold.Enabled && c.Maturity.Enabled && c.MinHold.Days > c.Maturity.Days {
		return s, fmt.Errorf("min_holding_days.days exceeds max_holding_days.days")
	}

	var maturityExit ExitRule
	if c.Maturity.Enabled {
		maturityExit, err = parseExitRule(c.MaturityExit, true)
		if err != nil {
			return s, fmt.Errorf("maturity_exit: %w", err)
		}
	}

	s.Name = c.Name
	s.InitialCash = c.InitialCash
	s.MaxPositions = c.MaxPositions
	s.TaxRate = c.TaxRate
	s.FeeRate = c.FeeRate
	s.Entry = entry
	s.AllowRepurchase = c.AllowRepurchase
	s.TargetMarginPct = c.TargetMarginPct
	s.UseStopLoss = c.StopLoss.Enabled
	s.LossMarginPct = c.StopLoss.MarginPct
	s.UseMinHold = c.MinHold.Enabled
	s.MinHoldDays = c.MinHold.Days
	s.UseMaturity = c.Maturity.Enabled
	s.MaturityDays = c.Maturity.Days
	s.Exit = exit
	s.MaturityExit = maturityExit
	return s, nil
}

// Default returns a configuration with the reference strategy parameters.
func Default() *Config {
	return &Config{
		Name:            "shortterm",
		InitialCash:     10_000_000,
		MaxPositions:    10,
		TaxRate:         0.003,
		FeeRate:         0.000088,
		Class:           "equity",
		Entry:           EntryConfig{Rule: "prior-close-offset", OffsetPct: -1.5},
		TargetMarginPct: 4.5,
		StopLoss:        StopLossConfig{Enabled: false, MarginPct: -10},
		Maturity:        HoldConfig{Enabled: true, Days: 3},
		Exit:            ExitConfig{Rule: "pivot", Level: "pivot"},
		MaturityExit:    ExitConfig{Rule: "pivot", Level: "pivot"},
	}
}
