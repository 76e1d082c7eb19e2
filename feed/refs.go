package feed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/focalpoint94/Quant-ShortTerm-Simulator/market"
)

// FileRefs serves reference bars from a YAML file:
//
//	"20210702":
//	  "005930":
//	    prior_open: 80000
//	    prior_high: 81500
//	    prior_low: 79800
//	    prior_close: 81000
//	    session_open: 80900
type FileRefs struct {
	bars map[string]map[string]refBar
}

type refBar struct {
	PriorOpen   float64 `yaml:"prior_open"`
	PriorHigh   float64 `yaml:"prior_high"`
	PriorLow    float64 `yaml:"prior_low"`
	PriorClose  float64 `yaml:"prior_close"`
	SessionOpen float64 `yaml:"session_open"`
}

func LoadRefs(path string) (*FileRefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference prices: %w", err)
	}
	var bars map[string]map[string]refBar
	if err := yaml.Unmarshal(data, &bars); err != nil {
		return nil, fmt.Errorf("parse reference prices: %w", err)
	}
	return &FileRefs{bars: bars}, nil
}

func (r *FileRefs) RefBar(date, code string) (market.RefBar, error) {
	b, ok := r.bars[date][code]
	if !ok {
		return market.RefBar{}, fmt.Errorf("no reference bar for %s on %s", code, date)
	}
	return market.RefBar{
		PriorOpen:   b.PriorOpen,
		PriorHigh:   b.PriorHigh,
		PriorLow:    b.PriorLow,
		PriorClose:  b.PriorClose,
		SessionOpen: b.SessionOpen,
	}, nil
}

// RetryRefs retries a flaky inner source with a bounded attempt count and
// fixed backoff. Reference lookups are idempotent, so retrying is safe.
type RetryRefs struct {
	Inner    market.ReferenceSource
	Attempts int
	Backoff  time.Duration
}

func (r RetryRefs) RefBar(date, code string) (market.RefBar, error) {
	attempts := r.Attempts
	if attempts <= 0 {
		attempts = 3
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 && r.Backoff > 0 {
			time.Sleep(r.Backoff)
		}
		var bar market.RefBar
		bar, err = r.Inner.RefBar(date, code)
		if err == nil {
			return bar, nil
		}
	}
	return market.RefBar{}, fmt.Errorf("reference lookup failed after %d attempts: %w", attempts, err)
}
