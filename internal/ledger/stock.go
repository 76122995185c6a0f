package ledger

import (
	"sort"

	"github.com/mamadbah2/factory/internal/domain/models"
)

// StockTable is a view over the raw stock rows of a snapshot.
type StockTable struct {
	rows *[]models.RawStockEntry
}

// NewStockTable wraps the given rows. Mutations write through to the slice.
func NewStockTable(rows *[]models.RawStockEntry) StockTable {
	return StockTable{rows: rows}
}

func (t StockTable) index(key models.StockKey) int {
	for i, row := range *t.rows {
		if row.Key() == key {
			return i
		}
	}
	return -1
}

// Get returns the bag count for the key; absent rows count as zero.
func (t StockTable) Get(key models.StockKey) int {
	if i := t.index(key); i >= 0 {
		return (*t.rows)[i].Count
	}
	return 0
}

// Upsert returns the row for key, creating it with a zero count if needed.
func (t StockTable) Upsert(key models.StockKey) *models.RawStockEntry {
	if i := t.index(key); i >= 0 {
		return &(*t.rows)[i]
	}
	*t.rows = append(*t.rows, models.RawStockEntry{Type: key.Type, Size: key.Size, Color: key.Color})
	return &(*t.rows)[len(*t.rows)-1]
}

// Adjust adds delta to the row. A result below zero is rejected and leaves
// the table untouched.
func (t StockTable) Adjust(key models.StockKey, delta int) error {
	current := t.Get(key)
	if current+delta < 0 {
		return &models.InsufficientStockError{
			Kind:      models.CounterRaw,
			Key:       key.String(),
			Required:  -delta,
			Available: current,
		}
	}
	if delta == 0 {
		return nil
	}
	t.Upsert(key).Count = current + delta
	return nil
}

// Rows returns a copy of the table ordered by type, size and color.
func (t StockTable) Rows() []models.RawStockEntry {
	out := append([]models.RawStockEntry(nil), (*t.rows)...)
	sort.SliceStable(out, func(i, j int) bool {
		return stockKeyLess(out[i].Key(), out[j].Key())
	})
	return out
}

func stockKeyLess(a, b models.StockKey) bool {
	if a.Type != b.Type {
		return a.Type.Name() < b.Type.Name()
	}
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return a.Color < b.Color
}

func sortedStockKeys(m map[models.StockKey]int) []models.StockKey {
	keys := make([]models.StockKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return stockKeyLess(keys[i], keys[j]) })
	return keys
}

// ReceiveStock books a delivery of bags and logs it.
func ReceiveStock(st *models.State, key models.StockKey, quantity int, id, date string) (models.WarehouseLog, error) {
	if err := key.Validate(); err != nil {
		return models.WarehouseLog{}, err
	}
	if quantity <= 0 {
		return models.WarehouseLog{}, &models.ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if err := NewStockTable(&st.Stocks).Adjust(key, quantity); err != nil {
		return models.WarehouseLog{}, err
	}
	entry := newLog(key, quantity, id, date)
	st.WarehouseLogs = append(st.WarehouseLogs, entry)
	return entry, nil
}

// SetCount reconciles a row with a physical count. The signed difference is
// applied and logged; a count that already matches logs nothing.
func SetCount(st *models.State, key models.StockKey, count int, id, date string) (models.WarehouseLog, bool, error) {
	if err := key.Validate(); err != nil {
		return models.WarehouseLog{}, false, err
	}
	if count < 0 {
		return models.WarehouseLog{}, false, &models.ValidationError{Field: "count", Reason: "must not be negative"}
	}
	table := NewStockTable(&st.Stocks)
	delta := count - table.Get(key)
	if delta == 0 {
		table.Upsert(key)
		return models.WarehouseLog{}, false, nil
	}
	if err := table.Adjust(key, delta); err != nil {
		return models.WarehouseLog{}, false, err
	}
	entry := newLog(key, delta, id, date)
	st.WarehouseLogs = append(st.WarehouseLogs, entry)
	return entry, true, nil
}

// RemoveLog deletes a warehouse log entry and takes its quantity back out of
// stock, so the log keeps explaining the balance.
func RemoveLog(st *models.State, id string) (models.WarehouseLog, error) {
	idx := -1
	for i := range st.WarehouseLogs {
		if st.WarehouseLogs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.WarehouseLog{}, &models.NotFoundError{Entity: "warehouse log", ID: id}
	}
	entry := st.WarehouseLogs[idx]
	if err := NewStockTable(&st.Stocks).Adjust(entry.Key(), -entry.Quantity); err != nil {
		return models.WarehouseLog{}, err
	}
	st.WarehouseLogs = append(st.WarehouseLogs[:idx], st.WarehouseLogs[idx+1:]...)
	return entry, nil
}

func newLog(key models.StockKey, quantity int, id, date string) models.WarehouseLog {
	return models.WarehouseLog{
		ID:       id,
		Date:     date,
		Type:     key.Type,
		Size:     key.Size,
		Color:    key.Color,
		Quantity: quantity,
	}
}
