package ledger

import "github.com/mamadbah2/factory/internal/domain/models"

// Counters reads and writes the per-model in-production and finished counts.
type Counters struct {
	models *[]models.FabricModel
}

// NewCounters wraps the model catalogue of a snapshot.
func NewCounters(catalogue *[]models.FabricModel) Counters {
	return Counters{models: catalogue}
}

func (c Counters) find(id string) *models.FabricModel {
	for i := range *c.models {
		if (*c.models)[i].ID == id {
			return &(*c.models)[i]
		}
	}
	return nil
}

// Exists reports whether the model is in the catalogue.
func (c Counters) Exists(id string) bool {
	return c.find(id) != nil
}

// Get returns the counter of the given kind for a model.
func (c Counters) Get(kind models.CounterKind, id string) (int, bool) {
	m := c.find(id)
	if m == nil {
		return 0, false
	}
	if kind == models.CounterFinished {
		return m.StockCount, true
	}
	return m.ProducedCount, true
}

func (c Counters) set(kind models.CounterKind, id string, value int) {
	m := c.find(id)
	if m == nil {
		return
	}
	if kind == models.CounterFinished {
		m.StockCount = value
		return
	}
	m.ProducedCount = value
}
