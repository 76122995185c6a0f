package models

import "slices"

// SchemaVersion is written with every save. Documents without a version are
// legacy browser exports and are read as version 0.
const SchemaVersion = 1

// State is the complete snapshot of the factory. It is owned by the state
// store and only ever handed to the ledger by pointer.
type State struct {
	SchemaVersion   int
	Stocks          []RawStockEntry
	WarehouseLogs   []WarehouseLog
	Models          []FabricModel
	MachineWorks    []MachineWork
	ProcessingWorks []ProcessingWork
	Producers       []Customer
	Contractors     []Customer
	SalesCustomers  []Customer
	Expenses        []Expense
}

// NewState returns an empty snapshot at the current schema version.
func NewState() *State {
	return &State{
		SchemaVersion:   SchemaVersion,
		Stocks:          []RawStockEntry{},
		WarehouseLogs:   []WarehouseLog{},
		Models:          []FabricModel{},
		MachineWorks:    []MachineWork{},
		ProcessingWorks: []ProcessingWork{},
		Producers:       []Customer{},
		Contractors:     []Customer{},
		SalesCustomers:  []Customer{},
		Expenses:        []Expense{},
	}
}

// Customers returns the collection backing the given role.
func (s *State) Customers(role Role) *[]Customer {
	switch role {
	case RoleProducer:
		return &s.Producers
	case RoleContractor:
		return &s.Contractors
	default:
		return &s.SalesCustomers
	}
}

// ModelIndex returns the position of the model or -1.
func (s *State) ModelIndex(id string) int {
	for i := range s.Models {
		if s.Models[i].ID == id {
			return i
		}
	}
	return -1
}

// MachineWorkIndex returns the position of the record or -1.
func (s *State) MachineWorkIndex(id string) int {
	for i := range s.MachineWorks {
		if s.MachineWorks[i].ID == id {
			return i
		}
	}
	return -1
}

// ProcessingWorkIndex returns the position of the record or -1.
func (s *State) ProcessingWorkIndex(id string) int {
	for i := range s.ProcessingWorks {
		if s.ProcessingWorks[i].ID == id {
			return i
		}
	}
	return -1
}

// CustomerIndex returns the position of the account within its role or -1.
func (s *State) CustomerIndex(role Role, id string) int {
	customers := *s.Customers(role)
	for i := range customers {
		if customers[i].ID == id {
			return i
		}
	}
	return -1
}

// ExpenseIndex returns the position of the expense or -1.
func (s *State) ExpenseIndex(id string) int {
	for i := range s.Expenses {
		if s.Expenses[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone deep-copies the snapshot so a mutation can run on the copy and be
// discarded if it fails.
func (s *State) Clone() *State {
	if s == nil {
		return NewState()
	}
	out := &State{
		SchemaVersion:   s.SchemaVersion,
		Stocks:          slices.Clone(s.Stocks),
		WarehouseLogs:   slices.Clone(s.WarehouseLogs),
		Models:          slices.Clone(s.Models),
		MachineWorks:    slices.Clone(s.MachineWorks),
		ProcessingWorks: slices.Clone(s.ProcessingWorks),
		Producers:       cloneCustomers(s.Producers),
		Contractors:     cloneCustomers(s.Contractors),
		SalesCustomers:  cloneCustomers(s.SalesCustomers),
		Expenses:        slices.Clone(s.Expenses),
	}
	for i := range out.MachineWorks {
		out.MachineWorks[i].Entries = slices.Clone(out.MachineWorks[i].Entries)
	}
	for i := range out.ProcessingWorks {
		out.ProcessingWorks[i].Entries = slices.Clone(out.ProcessingWorks[i].Entries)
	}
	return out
}

func cloneCustomers(in []Customer) []Customer {
	out := slices.Clone(in)
	for i := range out {
		out[i].Invoices = slices.Clone(out[i].Invoices)
		for j := range out[i].Invoices {
			out[i].Invoices[j].Items = slices.Clone(out[i].Invoices[j].Items)
		}
		out[i].Payments = slices.Clone(out[i].Payments)
	}
	return out
}
