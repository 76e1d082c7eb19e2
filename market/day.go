package market

// Quote is the best observed price/volume pair for one instrument in one
// minute slot. A missing quote means no trade that minute.
type Quote struct {
	Code   string
	Price  float64
	Volume int64
}

// Day holds one session's minute quotes, fully materialized before the
// simulation loop runs. Slots follow Timeline() order.
type Day struct {
	stamps []string
	index  map[string]int
	slots  []map[string]Quote
}

func NewDay() *Day {
	stamps := Timeline()
	index := make(map[string]int, len(stamps))
	slots := make([]map[string]Quote, len(stamps))
	for i, s := range stamps {
		index[s] = i
		slots[i] = make(map[string]Quote)
	}
	return &Day{stamps: stamps, index: index, slots: slots}
}

// Len returns the number of minute slots in the session.
func (d *Day) Len() int { return len(d.stamps) }

// Stamp returns the minute stamp for slot i.
func (d *Day) Stamp(i int) string { return d.stamps[i] }

// Add records a quote at the given minute stamp. Quotes outside the session
// timeline are dropped and reported via the return value.
func (d *Day) Add(stamp string, q Quote) bool {
	i, ok := d.index[stamp]
	if !ok {
		return false
	}
	d.slots[i][q.Code] = q
	return true
}

// At returns the price and volume for code at slot i. A zero price or
// volume means no trade that minute.
func (d *Day) At(i int, code string) (price float64, volume int64) {
	q, ok := d.slots[i][code]
	if !ok {
		return 0, 0
	}
	return q.Price, q.Volume
}
