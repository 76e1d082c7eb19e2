// Package feed supplies the simulation's inputs from files: minute-quote
// archives, the run plan (trading dates, candidate lists, day flags) and
// reference prices. Everything is read-only; the core owns no persisted
// state.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/focalpoint94/Quant-ShortTerm-Simulator/market"
)

// DirFeed reads minute archives laid out as <root>/A<code>/<date>.json,
// one file per instrument per day, each an array of minute rows:
//
//	[{"time":"0901","price":81000,"volume":1200}, ...]
//
// A missing file means the instrument did not trade that day; it is not an
// error.
type DirFeed struct {
	Root string
}

type minuteRow struct {
	Time   string  `json:"time"`
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
}

// Day materializes one session's quotes for the given codes. Rows with
// stamps outside the session timeline are dropped.
func (f DirFeed) Day(date string, codes []string) (*market.Day, error) {
	day := market.NewDay()
	for _, code := range codes {
		path := filepath.Join(f.Root, "A"+code, date+".json")
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read minute archive: %w", err)
		}

		var rows []minuteRow
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("parse minute archive %s: %w", path, err)
		}
		for _, r := range rows {
			day.Add(r.Time, market.Quote{Code: code, Price: r.Price, Volume: r.Volume})
		}
	}
	return day, nil
}
