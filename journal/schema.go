package journal

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	strategy TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	run_id TEXT NOT NULL,
	date TEXT NOT NULL,
	code TEXT NOT NULL,
	buy_price REAL NOT NULL,
	sell_price REAL NOT NULL,
	quantity INTEGER NOT NULL,
	yield_pct REAL NOT NULL,
	profit REAL NOT NULL,
	holding_days INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS days (
	run_id TEXT NOT NULL,
	date TEXT NOT NULL,
	assets REAL NOT NULL,
	cash REAL NOT NULL,
	yield_pct REAL NOT NULL,
	open_positions INTEGER NOT NULL,
	bought INTEGER NOT NULL,
	sold INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id, date);
CREATE INDEX IF NOT EXISTS idx_days_run ON days(run_id, date);
`
