package ledger

import (
	"github.com/mamadbah2/factory/internal/domain/models"
)

// CreateMachineWork books a new production record.
func (l *Ledger) CreateMachineWork(st *models.State, w models.MachineWork) (Result, error) {
	if st.MachineWorkIndex(w.ID) >= 0 {
		return Result{}, &models.ValidationError{Field: "id", Reason: "duplicate machine work " + w.ID}
	}
	if err := ValidateMachineWork(st, w); err != nil {
		return Result{}, err
	}
	res, err := l.ApplyMachineWork(st, nil, &w)
	if err != nil {
		return Result{}, err
	}
	st.MachineWorks = append(st.MachineWorks, w)
	return res, nil
}

// UpdateMachineWork replaces a production record, undoing its previous effect.
func (l *Ledger) UpdateMachineWork(st *models.State, w models.MachineWork) (Result, error) {
	idx := st.MachineWorkIndex(w.ID)
	if idx < 0 {
		return Result{}, &models.NotFoundError{Entity: "machine work", ID: w.ID}
	}
	if err := ValidateMachineWork(st, w); err != nil {
		return Result{}, err
	}
	old := st.MachineWorks[idx]
	res, err := l.ApplyMachineWork(st, &old, &w)
	if err != nil {
		return Result{}, err
	}
	st.MachineWorks[idx] = w
	return res, nil
}

// DeleteMachineWork removes a production record and gives its raw material back.
func (l *Ledger) DeleteMachineWork(st *models.State, id string) (Result, error) {
	idx := st.MachineWorkIndex(id)
	if idx < 0 {
		return Result{}, &models.NotFoundError{Entity: "machine work", ID: id}
	}
	old := st.MachineWorks[idx]
	res, err := l.ApplyMachineWork(st, &old, nil)
	if err != nil {
		return Result{}, err
	}
	st.MachineWorks = append(st.MachineWorks[:idx], st.MachineWorks[idx+1:]...)
	return res, nil
}

// DeleteMachineWorks removes several production records; all or none.
func (l *Ledger) DeleteMachineWorks(st *models.State, ids []string) (Result, error) {
	return l.atomically(st, func(work *models.State) (Result, error) {
		var total Result
		for _, id := range ids {
			res, err := l.DeleteMachineWork(work, id)
			if err != nil {
				return Result{}, err
			}
			total.merge(res)
		}
		return total, nil
	})
}

// CreateProcessingWork books a new processing record.
func (l *Ledger) CreateProcessingWork(st *models.State, w models.ProcessingWork) (Result, error) {
	if st.ProcessingWorkIndex(w.ID) >= 0 {
		return Result{}, &models.ValidationError{Field: "id", Reason: "duplicate processing work " + w.ID}
	}
	if err := ValidateProcessingWork(st, w); err != nil {
		return Result{}, err
	}
	res, err := l.ApplyProcessingWork(st, nil, &w)
	if err != nil {
		return Result{}, err
	}
	st.ProcessingWorks = append(st.ProcessingWorks, w)
	return res, nil
}

// UpdateProcessingWork replaces a processing record, undoing its previous effect.
func (l *Ledger) UpdateProcessingWork(st *models.State, w models.ProcessingWork) (Result, error) {
	idx := st.ProcessingWorkIndex(w.ID)
	if idx < 0 {
		return Result{}, &models.NotFoundError{Entity: "processing work", ID: w.ID}
	}
	if err := ValidateProcessingWork(st, w); err != nil {
		return Result{}, err
	}
	old := st.ProcessingWorks[idx]
	res, err := l.ApplyProcessingWork(st, &old, &w)
	if err != nil {
		return Result{}, err
	}
	st.ProcessingWorks[idx] = w
	return res, nil
}

// DeleteProcessingWork removes a processing record and returns sent units to
// in-production.
func (l *Ledger) DeleteProcessingWork(st *models.State, id string) (Result, error) {
	idx := st.ProcessingWorkIndex(id)
	if idx < 0 {
		return Result{}, &models.NotFoundError{Entity: "processing work", ID: id}
	}
	old := st.ProcessingWorks[idx]
	res, err := l.ApplyProcessingWork(st, &old, nil)
	if err != nil {
		return Result{}, err
	}
	st.ProcessingWorks = append(st.ProcessingWorks[:idx], st.ProcessingWorks[idx+1:]...)
	return res, nil
}

// CreateInvoice issues an invoice to a sales customer.
func (l *Ledger) CreateInvoice(st *models.State, customerID string, inv models.Invoice) (Result, error) {
	c, err := salesCustomer(st, customerID)
	if err != nil {
		return Result{}, err
	}
	if c.InvoiceIndex(inv.ID) >= 0 {
		return Result{}, &models.ValidationError{Field: "id", Reason: "duplicate invoice " + inv.ID}
	}
	if err := ValidateInvoice(st, inv); err != nil {
		return Result{}, err
	}
	res, err := l.ApplySalesInvoice(st, nil, &inv)
	if err != nil {
		return Result{}, err
	}
	inv.Total = inv.ComputeTotal()
	c.Invoices = append(c.Invoices, inv)
	return res, nil
}

// UpdateInvoice replaces an invoice, adjusting finished units by the difference.
func (l *Ledger) UpdateInvoice(st *models.State, customerID string, inv models.Invoice) (Result, error) {
	c, err := salesCustomer(st, customerID)
	if err != nil {
		return Result{}, err
	}
	idx := c.InvoiceIndex(inv.ID)
	if idx < 0 {
		return Result{}, &models.NotFoundError{Entity: "invoice", ID: inv.ID}
	}
	if err := ValidateInvoice(st, inv); err != nil {
		return Result{}, err
	}
	old := c.Invoices[idx]
	res, err := l.ApplySalesInvoice(st, &old, &inv)
	if err != nil {
		return Result{}, err
	}
	inv.Total = inv.ComputeTotal()
	c.Invoices[idx] = inv
	return res, nil
}

// DeleteInvoice removes an invoice and returns its units to finished stock.
func (l *Ledger) DeleteInvoice(st *models.State, customerID, invoiceID string) (Result, error) {
	c, err := salesCustomer(st, customerID)
	if err != nil {
		return Result{}, err
	}
	idx := c.InvoiceIndex(invoiceID)
	if idx < 0 {
		return Result{}, &models.NotFoundError{Entity: "invoice", ID: invoiceID}
	}
	old := c.Invoices[idx]
	res, err := l.ApplySalesInvoice(st, &old, nil)
	if err != nil {
		return Result{}, err
	}
	c.Invoices = append(c.Invoices[:idx], c.Invoices[idx+1:]...)
	return res, nil
}

// DeleteCustomer removes an account together with every record it owns.
// Unless writeOff is set, each record is undone through the ledger first, so
// the inventory it moved is restored; otherwise the records are dropped and
// their inventory effect stays.
func (l *Ledger) DeleteCustomer(st *models.State, role models.Role, id string, writeOff bool) (Result, error) {
	if st.CustomerIndex(role, id) < 0 {
		return Result{}, &models.NotFoundError{Entity: string(role), ID: id}
	}
	return l.atomically(st, func(work *models.State) (Result, error) {
		var total Result
		switch role {
		case models.RoleProducer:
			for _, wid := range machineWorkIDs(work, id) {
				if writeOff {
					idx := work.MachineWorkIndex(wid)
					work.MachineWorks = append(work.MachineWorks[:idx], work.MachineWorks[idx+1:]...)
					continue
				}
				res, err := l.DeleteMachineWork(work, wid)
				if err != nil {
					return Result{}, err
				}
				total.merge(res)
			}
		case models.RoleContractor:
			for _, wid := range processingWorkIDs(work, id) {
				if writeOff {
					idx := work.ProcessingWorkIndex(wid)
					work.ProcessingWorks = append(work.ProcessingWorks[:idx], work.ProcessingWorks[idx+1:]...)
					continue
				}
				res, err := l.DeleteProcessingWork(work, wid)
				if err != nil {
					return Result{}, err
				}
				total.merge(res)
			}
		case models.RoleSales:
			if writeOff {
				break
			}
			for _, invoiceID := range invoiceIDs(work.SalesCustomers[work.CustomerIndex(role, id)]) {
				res, err := l.DeleteInvoice(work, id, invoiceID)
				if err != nil {
					return Result{}, err
				}
				total.merge(res)
			}
		}
		customers := work.Customers(role)
		idx := work.CustomerIndex(role, id)
		*customers = append((*customers)[:idx], (*customers)[idx+1:]...)
		return total, nil
	})
}

// DeleteCustomers removes several accounts of one role; all or none.
func (l *Ledger) DeleteCustomers(st *models.State, role models.Role, ids []string, writeOff bool) (Result, error) {
	return l.atomically(st, func(work *models.State) (Result, error) {
		var total Result
		for _, id := range ids {
			res, err := l.DeleteCustomer(work, role, id, writeOff)
			if err != nil {
				return Result{}, err
			}
			total.merge(res)
		}
		return total, nil
	})
}

// atomically runs fn on a copy of st and copies the result back only when fn
// succeeds.
func (l *Ledger) atomically(st *models.State, fn func(work *models.State) (Result, error)) (Result, error) {
	work := st.Clone()
	res, err := fn(work)
	if err != nil {
		return Result{}, err
	}
	*st = *work
	if res.Adjustment.Raw == nil {
		res.Adjustment = newAdjustment()
	}
	return res, nil
}

func salesCustomer(st *models.State, id string) (*models.Customer, error) {
	idx := st.CustomerIndex(models.RoleSales, id)
	if idx < 0 {
		return nil, &models.NotFoundError{Entity: string(models.RoleSales), ID: id}
	}
	return &st.SalesCustomers[idx], nil
}

func machineWorkIDs(st *models.State, customerID string) []string {
	var ids []string
	for _, w := range st.MachineWorks {
		if w.CustomerID == customerID {
			ids = append(ids, w.ID)
		}
	}
	return ids
}

func processingWorkIDs(st *models.State, customerID string) []string {
	var ids []string
	for _, w := range st.ProcessingWorks {
		if w.CustomerID == customerID {
			ids = append(ids, w.ID)
		}
	}
	return ids
}

func invoiceIDs(c models.Customer) []string {
	ids := make([]string, 0, len(c.Invoices))
	for _, inv := range c.Invoices {
		ids = append(ids, inv.ID)
	}
	return ids
}
