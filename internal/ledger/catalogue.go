package ledger

import (
	"strings"

	"github.com/mamadbah2/factory/internal/domain/models"
)

// AddModel puts a model in the catalogue with both counters at zero.
func AddModel(st *models.State, m models.FabricModel) error {
	if err := validateModel(m); err != nil {
		return err
	}
	if st.ModelIndex(m.ID) >= 0 {
		return &models.ValidationError{Field: "id", Reason: "duplicate model " + m.ID}
	}
	m.StockCount, m.ProducedCount = 0, 0
	st.Models = append(st.Models, m)
	return nil
}

// EditModel replaces a model's description. Counters are owned by the ledger
// and are carried over unchanged.
func EditModel(st *models.State, m models.FabricModel) (models.FabricModel, error) {
	idx := st.ModelIndex(m.ID)
	if idx < 0 {
		return models.FabricModel{}, &models.NotFoundError{Entity: "model", ID: m.ID}
	}
	if err := validateModel(m); err != nil {
		return models.FabricModel{}, err
	}
	m.StockCount = st.Models[idx].StockCount
	m.ProducedCount = st.Models[idx].ProducedCount
	st.Models[idx] = m
	return m, nil
}

// RemoveModel deletes a model nothing refers to.
func RemoveModel(st *models.State, id string) error {
	idx := st.ModelIndex(id)
	if idx < 0 {
		return &models.NotFoundError{Entity: "model", ID: id}
	}
	if where := ModelReference(st, id); where != "" {
		return &models.ValidationError{Field: "id", Reason: "model " + id + " is used by " + where}
	}
	st.Models = append(st.Models[:idx], st.Models[idx+1:]...)
	return nil
}

// ModelReference names the first record that refers to the model, or
// returns "" when there is none.
func ModelReference(st *models.State, id string) string {
	for _, w := range st.MachineWorks {
		for _, e := range w.Entries {
			if e.Produced.ModelID == id {
				return "machine work " + w.ID
			}
		}
	}
	for _, w := range st.ProcessingWorks {
		for _, e := range w.Entries {
			if e.ModelID == id {
				return "processing work " + w.ID
			}
		}
	}
	for _, c := range st.SalesCustomers {
		for _, inv := range c.Invoices {
			for _, item := range inv.Items {
				if item.ModelID == id {
					return "invoice " + inv.ID
				}
			}
		}
	}
	return ""
}

func validateModel(m models.FabricModel) error {
	if strings.TrimSpace(m.Name) == "" {
		return &models.ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(m.Code) == "" {
		return &models.ValidationError{Field: "code", Reason: "required"}
	}
	if m.Length < 0 || m.Width < 0 || m.SleeveLength < 0 || m.SleeveWidth < 0 {
		return &models.ValidationError{Field: "dimensions", Reason: "must not be negative"}
	}
	return nil
}
