package journal

import (
	"encoding/csv"
	"os"
	"strconv"
)

// CSVJournal writes trades and day snapshots to a pair of CSV files.
type CSVJournal struct {
	trades *csv.Writer
	days   *csv.Writer
	tf, df *os.File
}

func NewCSV(tradesPath, daysPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	df, err := os.Create(daysPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	dw := csv.NewWriter(df)

	if err := tw.Write([]string{"run_id", "date", "code", "buy_price", "sell_price", "quantity", "yield_pct", "profit", "holding_days"}); err != nil {
		return nil, err
	}
	if err := dw.Write([]string{"run_id", "date", "assets", "cash", "yield_pct", "open_positions", "bought", "sold"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	dw.Flush()
	if err := dw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{trades: tw, days: dw, tf: tf, df: df}, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.RunID,
		t.Date,
		t.Code,
		f(t.BuyPrice),
		f(t.SellPrice),
		strconv.FormatInt(t.Quantity, 10),
		f(t.YieldPct),
		f(t.Profit),
		strconv.Itoa(t.HoldingDays),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordDay(d DayRecord) error {
	err := j.days.Write([]string{
		d.RunID,
		d.Date,
		f(d.Assets),
		f(d.Cash),
		f(d.YieldPct),
		strconv.Itoa(d.Open),
		strconv.Itoa(d.Bought),
		strconv.Itoa(d.Sold),
	})
	if err != nil {
		return err
	}
	j.days.Flush()
	return j.days.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	j.days.Flush()
	if err := j.tf.Close(); err != nil {
		j.df.Close()
		return err
	}
	return j.df.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
