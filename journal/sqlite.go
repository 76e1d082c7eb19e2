package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// BeginRun registers a run before its first trade or day row.
func (j *SQLite) BeginRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs (run_id, strategy, start_date, end_date)
		VALUES (?, ?, ?, ?)`,
		r.RunID, r.Strategy, r.StartDate, r.EndDate,
	)
	return err
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(run_id, date, code, buy_price, sell_price, quantity, yield_pct, profit, holding_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.RunID, t.Date, t.Code, t.BuyPrice, t.SellPrice,
		t.Quantity, t.YieldPct, t.Profit, t.HoldingDays,
	)
	return err
}

func (j *SQLite) RecordDay(d DayRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO days
		(run_id, date, assets, cash, yield_pct, open_positions, bought, sold)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.RunID, d.Date, d.Assets, d.Cash, d.YieldPct, d.Open, d.Bought, d.Sold,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
