package ledger

import "github.com/mamadbah2/factory/internal/domain/models"

// Discrepancy is a stock row whose count is not explained by the warehouse
// log minus production consumption.
type Discrepancy struct {
	Key      models.StockKey `json:"key"`
	Logged   int             `json:"logged"`
	Consumed int             `json:"consumed"`
	Expected int             `json:"expected"`
	Actual   int             `json:"actual"`
}

// CheckConservation compares every stock row with the sum of its warehouse
// log entries minus what active machine work consumed from it.
func CheckConservation(st *models.State) []Discrepancy {
	logged := map[models.StockKey]int{}
	for _, l := range st.WarehouseLogs {
		logged[l.Key()] += l.Quantity
	}
	consumed := map[models.StockKey]int{}
	for _, w := range st.MachineWorks {
		for _, e := range w.Entries {
			consumed[e.Raw.Key()] += e.Raw.Quantity
		}
	}

	keys := map[models.StockKey]int{}
	for k := range logged {
		keys[k] = 0
	}
	for k := range consumed {
		keys[k] = 0
	}
	table := NewStockTable(&st.Stocks)
	for _, row := range st.Stocks {
		keys[row.Key()] = 0
	}

	var out []Discrepancy
	for _, key := range sortedStockKeys(keys) {
		expected := logged[key] - consumed[key]
		actual := table.Get(key)
		if expected != actual {
			out = append(out, Discrepancy{
				Key:      key,
				Logged:   logged[key],
				Consumed: consumed[key],
				Expected: expected,
				Actual:   actual,
			})
		}
	}
	return out
}
