package journal

import "fmt"

// GetRun returns one run's metadata.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord
	row := j.db.QueryRow(`
		SELECT run_id, strategy, start_date, end_date
		FROM runs WHERE run_id = ?`, runID)
	if err := row.Scan(&rec.RunID, &rec.Strategy, &rec.StartDate, &rec.EndDate); err != nil {
		return RunRecord{}, fmt.Errorf("run %q: %w", runID, err)
	}
	return rec, nil
}

// ListRuns returns all registered runs, newest first (ULIDs sort by time).
func (j *SQLite) ListRuns() ([]RunRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, strategy, start_date, end_date
		FROM runs ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(&rec.RunID, &rec.Strategy, &rec.StartDate, &rec.EndDate); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListTradesByRun returns a run's realized trades in date order.
func (j *SQLite) ListTradesByRun(runID string) ([]TradeRecord, error) {
	return j.listTrades(`
		SELECT run_id, date, code, buy_price, sell_price, quantity, yield_pct, profit, holding_days
		FROM trades WHERE run_id = ? ORDER BY date ASC`, runID)
}

// ListTradesByDate returns the trades a run realized on one day.
func (j *SQLite) ListTradesByDate(runID, date string) ([]TradeRecord, error) {
	return j.listTrades(`
		SELECT run_id, date, code, buy_price, sell_price, quantity, yield_pct, profit, holding_days
		FROM trades WHERE run_id = ? AND date = ?`, runID, date)
}

func (j *SQLite) listTrades(query string, args ...any) ([]TradeRecord, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.Date,
			&rec.Code,
			&rec.BuyPrice,
			&rec.SellPrice,
			&rec.Quantity,
			&rec.YieldPct,
			&rec.Profit,
			&rec.HoldingDays,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListDaysByRun returns a run's day snapshots in date order.
func (j *SQLite) ListDaysByRun(runID string) ([]DayRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, date, assets, cash, yield_pct, open_positions, bought, sold
		FROM days WHERE run_id = ? ORDER BY date ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DayRecord
	for rows.Next() {
		var rec DayRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.Date,
			&rec.Assets,
			&rec.Cash,
			&rec.YieldPct,
			&rec.Open,
			&rec.Bought,
			&rec.Sold,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
