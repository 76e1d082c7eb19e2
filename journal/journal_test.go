package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrade(runID string) TradeRecord {
	return TradeRecord{
		RunID:       runID,
		Date:        "20210702",
		Code:        "005930",
		BuyPrice:    1000,
		SellPrice:   1100,
		Quantity:    100,
		YieldPct:    9.98,
		Profit:      9981.52,
		HoldingDays: 2,
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.sqlite")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	run := RunRecord{RunID: "01RUN", Strategy: "shortterm", StartDate: "20210701", EndDate: "20210731"}
	require.NoError(t, j.BeginRun(run))

	require.NoError(t, j.RecordTrade(sampleTrade("01RUN")))
	require.NoError(t, j.RecordDay(DayRecord{
		RunID: "01RUN", Date: "20210702", Assets: 1_009_981.52, Cash: 1_009_981.52,
		YieldPct: 0.998, Open: 0, Bought: 1, Sold: 1,
	}))

	got, err := j.GetRun("01RUN")
	require.NoError(t, err)
	assert.Equal(t, run, got)

	trades, err := j.ListTradesByRun("01RUN")
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "005930", trades[0].Code)
	assert.Equal(t, int64(100), trades[0].Quantity)
	assert.InDelta(t, 9981.52, trades[0].Profit, 1e-9)

	trades, err = j.ListTradesByDate("01RUN", "20210702")
	require.NoError(t, err)
	assert.Len(t, trades, 1)
	trades, err = j.ListTradesByDate("01RUN", "20210703")
	require.NoError(t, err)
	assert.Empty(t, trades)

	days, err := j.ListDaysByRun("01RUN")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].Bought)

	runs, err := j.ListRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSQLiteGetRunMissing(t *testing.T) {
	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	_, err = j.GetRun("nope")
	assert.Error(t, err)
}

func TestCSVJournalWritesRows(t *testing.T) {
	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	daysPath := filepath.Join(dir, "days.csv")

	j, err := NewCSV(tradesPath, daysPath)
	require.NoError(t, err)

	require.NoError(t, j.RecordTrade(sampleTrade("01RUN")))
	require.NoError(t, j.RecordDay(DayRecord{RunID: "01RUN", Date: "20210702", Assets: 1000, Cash: 900}))
	require.NoError(t, j.Close())

	tf, err := os.Open(tradesPath)
	require.NoError(t, err)
	defer tf.Close()
	rows, err := csv.NewReader(tf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one trade")
	assert.Equal(t, "run_id", rows[0][0])
	assert.Equal(t, "005930", rows[1][2])
	assert.Equal(t, "100", rows[1][5])

	df, err := os.Open(daysPath)
	require.NoError(t, err)
	defer df.Close()
	rows, err = csv.NewReader(df).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "20210702", rows[1][1])
}
