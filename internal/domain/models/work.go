package models

import "github.com/shopspring/decimal"

// RawConsumption is the raw side of a production entry.
type RawConsumption struct {
	Type     MaterialType `json:"type"`
	Size     MaterialSize `json:"size"`
	Color    string       `json:"color"`
	Quantity int          `json:"quantity"`
}

// Key returns the stock row the entry consumes from.
func (r RawConsumption) Key() StockKey {
	return StockKey{Type: r.Type, Size: r.Size, Color: r.Color}
}

// ProducedOutput is the garment side of a production entry.
type ProducedOutput struct {
	ModelID  string          `json:"modelId"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// ProductionEntry consumes raw bags and produces units of one model.
type ProductionEntry struct {
	Raw      RawConsumption `json:"raw"`
	Produced ProducedOutput `json:"produced"`
}

// MachineWork is a production run on a knitting machine, billed by its producer.
type MachineWork struct {
	ID          string            `json:"id"`
	CustomerID  string            `json:"customerId"`
	MachineName string            `json:"machineName"`
	Date        string            `json:"date"`
	Entries     []ProductionEntry `json:"entries"`
}

// Value is the producer's invoice value for the run.
func (w MachineWork) Value() decimal.Decimal {
	total := decimal.Zero
	for _, e := range w.Entries {
		total = total.Add(e.Produced.Price.Mul(decimal.NewFromInt(int64(e.Produced.Quantity))))
	}
	return total
}

// ProcessingEntry sends in-production units of a model out for finishing and
// records how many came back.
type ProcessingEntry struct {
	ModelID          string          `json:"modelId"`
	QuantitySent     int             `json:"quantitySent"`
	QuantityReceived int             `json:"quantityReceived"`
	Price            decimal.Decimal `json:"price"`
}

// ProcessingWork is a batch handled by an outside finishing contractor.
type ProcessingWork struct {
	ID          string            `json:"id"`
	CustomerID  string            `json:"customerId"`
	MachineName string            `json:"machineName"`
	Date        string            `json:"date"`
	Entries     []ProcessingEntry `json:"entries"`
}

// Value is the contractor's invoice value: received units at the agreed price.
func (w ProcessingWork) Value() decimal.Decimal {
	total := decimal.Zero
	for _, e := range w.Entries {
		total = total.Add(e.Price.Mul(decimal.NewFromInt(int64(e.QuantityReceived))))
	}
	return total
}
