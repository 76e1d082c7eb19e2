package feed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/focalpoint94/Quant-ShortTerm-Simulator/sim"
)

// Plan is the run schedule: the ordered trading dates with each day's
// prioritized candidate list and flags. It stands in for the candidate
// ranking and index-gate heuristics, which live outside the core.
type Plan struct {
	Days []PlanDay `yaml:"days"`

	byDate map[string]int
}

type PlanDay struct {
	Date           string   `yaml:"date"`
	Candidates     []string `yaml:"candidates"`
	EntriesEnabled bool     `yaml:"entries_enabled"`
	LiquidateAll   bool     `yaml:"liquidate_all"`
}

// LoadPlan reads and indexes a YAML run plan.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if err := p.index(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Plan) index() error {
	p.byDate = make(map[string]int, len(p.Days))
	prev := ""
	for i, d := range p.Days {
		if d.Date == "" {
			return fmt.Errorf("plan day %d has no date", i)
		}
		if d.Date <= prev {
			return fmt.Errorf("plan dates must be strictly increasing, got %s after %s", d.Date, prev)
		}
		p.byDate[d.Date] = i
		prev = d.Date
	}
	return nil
}

// Dates returns the trading dates in order.
func (p *Plan) Dates() []string {
	out := make([]string, len(p.Days))
	for i, d := range p.Days {
		out[i] = d.Date
	}
	return out
}

// Candidates returns the day's prioritized candidate codes.
func (p *Plan) Candidates(date string) ([]string, error) {
	i, ok := p.byDate[date]
	if !ok {
		return nil, fmt.Errorf("no plan entry for %s", date)
	}
	return p.Days[i].Candidates, nil
}

// DayFlags returns the day's simulator toggles.
func (p *Plan) DayFlags(date string) sim.Flags {
	i, ok := p.byDate[date]
	if !ok {
		return sim.Flags{}
	}
	return sim.Flags{
		EntriesEnabled: p.Days[i].EntriesEnabled,
		LiquidateAll:   p.Days[i].LiquidateAll,
	}
}
