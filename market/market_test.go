package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeline(t *testing.T) {
	stamps := Timeline()

	// 59 + 300 + 21 session minutes plus the closing auction slot.
	require.Len(t, stamps, 381)
	assert.Equal(t, "0901", stamps[0])
	assert.Equal(t, "0959", stamps[58])
	assert.Equal(t, "1000", stamps[59])
	assert.Equal(t, "1520", stamps[379])
	assert.Equal(t, "1530", stamps[380])
}

func TestDayAddAndAt(t *testing.T) {
	d := NewDay()

	require.True(t, d.Add("0901", Quote{Code: "005930", Price: 81000, Volume: 1200}))
	require.True(t, d.Add("1530", Quote{Code: "005930", Price: 81500, Volume: 300}))
	assert.False(t, d.Add("1525", Quote{Code: "005930", Price: 1, Volume: 1}), "stamp outside session")

	p, v := d.At(0, "005930")
	assert.Equal(t, 81000.0, p)
	assert.Equal(t, int64(1200), v)

	p, v = d.At(1, "005930")
	assert.Zero(t, p, "no trade in empty slot")
	assert.Zero(t, v)

	p, _ = d.At(d.Len()-1, "005930")
	assert.Equal(t, 81500.0, p)
}

func TestPivots(t *testing.T) {
	b := RefBar{PriorHigh: 110, PriorLow: 90, PriorClose: 100}
	pv := b.Pivots()

	assert.InDelta(t, 100.0, pv.Pivot, 1e-9)
	assert.InDelta(t, 90.0, pv.Support1, 1e-9)
	assert.InDelta(t, 80.0, pv.Support2, 1e-9)
	assert.InDelta(t, 110.0, pv.Resist1, 1e-9)
	assert.InDelta(t, 120.0, pv.Resist2, 1e-9)
}
