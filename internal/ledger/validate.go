package ledger

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/factory/internal/domain/models"
)

// ValidateMachineWork checks a production record can be booked against st.
func ValidateMachineWork(st *models.State, w models.MachineWork) error {
	if strings.TrimSpace(w.MachineName) == "" {
		return &models.ValidationError{Field: "machineName", Reason: "required"}
	}
	if err := requireCustomer(st, models.RoleProducer, w.CustomerID); err != nil {
		return err
	}
	if len(w.Entries) == 0 {
		return &models.ValidationError{Field: "entries", Reason: "at least one entry is required"}
	}
	counters := NewCounters(&st.Models)
	for i, e := range w.Entries {
		field := fmt.Sprintf("entries[%d]", i)
		if strings.TrimSpace(e.Raw.Color) == "" {
			return &models.ValidationError{Field: field + ".raw.color", Reason: "required"}
		}
		if err := e.Raw.Key().Validate(); err != nil {
			return err
		}
		if e.Raw.Quantity < 0 {
			return &models.ValidationError{Field: field + ".raw.quantity", Reason: "must not be negative"}
		}
		if e.Produced.ModelID == "" {
			return &models.ValidationError{Field: field + ".produced.modelId", Reason: "required"}
		}
		if !counters.Exists(e.Produced.ModelID) {
			return &models.ValidationError{Field: field + ".produced.modelId", Reason: "unknown model " + e.Produced.ModelID}
		}
		if e.Produced.Quantity < 0 {
			return &models.ValidationError{Field: field + ".produced.quantity", Reason: "must not be negative"}
		}
		if e.Produced.Price.IsNegative() {
			return &models.ValidationError{Field: field + ".produced.price", Reason: "must not be negative"}
		}
	}
	return nil
}

// ValidateProcessingWork checks a processing record can be booked against st.
func ValidateProcessingWork(st *models.State, w models.ProcessingWork) error {
	if strings.TrimSpace(w.MachineName) == "" {
		return &models.ValidationError{Field: "machineName", Reason: "required"}
	}
	if err := requireCustomer(st, models.RoleContractor, w.CustomerID); err != nil {
		return err
	}
	if len(w.Entries) == 0 {
		return &models.ValidationError{Field: "entries", Reason: "at least one entry is required"}
	}
	counters := NewCounters(&st.Models)
	for i, e := range w.Entries {
		field := fmt.Sprintf("entries[%d]", i)
		if e.ModelID == "" {
			return &models.ValidationError{Field: field + ".modelId", Reason: "required"}
		}
		if !counters.Exists(e.ModelID) {
			return &models.ValidationError{Field: field + ".modelId", Reason: "unknown model " + e.ModelID}
		}
		if e.QuantitySent < 0 || e.QuantityReceived < 0 {
			return &models.ValidationError{Field: field, Reason: "quantities must not be negative"}
		}
		if e.Price.IsNegative() {
			return &models.ValidationError{Field: field + ".price", Reason: "must not be negative"}
		}
	}
	return nil
}

// ValidateInvoice checks a sales invoice can be booked against st.
func ValidateInvoice(st *models.State, inv models.Invoice) error {
	if len(inv.Items) == 0 {
		return &models.ValidationError{Field: "items", Reason: "at least one item is required"}
	}
	counters := NewCounters(&st.Models)
	for i, item := range inv.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.ModelID == "" {
			return &models.ValidationError{Field: field + ".modelId", Reason: "required"}
		}
		if !counters.Exists(item.ModelID) {
			return &models.ValidationError{Field: field + ".modelId", Reason: "unknown model " + item.ModelID}
		}
		if item.Quantity <= 0 {
			return &models.ValidationError{Field: field + ".quantity", Reason: "must be positive"}
		}
		if item.Price.IsNegative() {
			return &models.ValidationError{Field: field + ".price", Reason: "must not be negative"}
		}
	}
	return nil
}

func requireCustomer(st *models.State, role models.Role, id string) error {
	if id == "" {
		return &models.ValidationError{Field: "customerId", Reason: "required"}
	}
	if st.CustomerIndex(role, id) < 0 {
		return &models.ValidationError{Field: "customerId", Reason: fmt.Sprintf("unknown %s %s", role, id)}
	}
	return nil
}
