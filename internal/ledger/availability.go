package ledger

import (
	"sort"

	"github.com/mamadbah2/factory/internal/domain/models"
)

// Availability is how many units of a model one machine produced that have
// not been invoiced from that machine yet.
type Availability struct {
	MachineName string `json:"machineName"`
	ModelID     string `json:"modelId"`
	Produced    int    `json:"produced"`
	Sold        int    `json:"sold"`
	Available   int    `json:"available"`
}

type machineModel struct {
	machine string
	model   string
}

// SalesAvailability lists positive availabilities per (machine, model). It
// guides invoice entry only; the finished counter is what sales are checked
// against.
func SalesAvailability(st *models.State) []Availability {
	produced := map[machineModel]int{}
	for _, w := range st.MachineWorks {
		for _, e := range w.Entries {
			produced[machineModel{w.MachineName, e.Produced.ModelID}] += e.Produced.Quantity
		}
	}
	sold := map[machineModel]int{}
	for _, c := range st.SalesCustomers {
		for _, inv := range c.Invoices {
			for _, item := range inv.Items {
				sold[machineModel{item.MachineName, item.ModelID}] += item.Quantity
			}
		}
	}

	var out []Availability
	for key, qty := range produced {
		if left := qty - sold[key]; left > 0 {
			out = append(out, Availability{
				MachineName: key.machine,
				ModelID:     key.model,
				Produced:    qty,
				Sold:        sold[key],
				Available:   left,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MachineName != out[j].MachineName {
			return out[i].MachineName < out[j].MachineName
		}
		return out[i].ModelID < out[j].ModelID
	})
	return out
}
