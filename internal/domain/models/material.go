package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MaterialType identifies the kind of bagged raw material. The persisted values
// are the labels the workshop has always written on its records.
type MaterialType string

const (
	MaterialDough MaterialType = "عجينة"
	MaterialAndy  MaterialType = "أندي"
)

// ParseMaterialType accepts either the stored label or its English name.
func ParseMaterialType(value string) (MaterialType, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "DOUGH", string(MaterialDough):
		return MaterialDough, nil
	case "ANDY", string(MaterialAndy):
		return MaterialAndy, nil
	}
	return "", fmt.Errorf("unknown material type %q", value)
}

// Name returns the English name used in logs and reports.
func (t MaterialType) Name() string {
	switch t {
	case MaterialDough:
		return "DOUGH"
	case MaterialAndy:
		return "ANDY"
	}
	return string(t)
}

// UnmarshalJSON normalizes English names to the stored labels.
func (t *MaterialType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseMaterialType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MaterialSize is the bag size of raw material.
type MaterialSize int

const (
	Size18 MaterialSize = 18
	Size24 MaterialSize = 24
)

// Valid reports whether the size is one the warehouse stocks.
func (s MaterialSize) Valid() bool {
	return s == Size18 || s == Size24
}

// StockKey addresses one row of the raw stock table.
type StockKey struct {
	Type  MaterialType `json:"type"`
	Size  MaterialSize `json:"size"`
	Color string       `json:"color"`
}

func (k StockKey) String() string {
	return fmt.Sprintf("%s/%d/%s", k.Type.Name(), k.Size, k.Color)
}

// Validate checks the key is addressable.
func (k StockKey) Validate() error {
	if _, err := ParseMaterialType(string(k.Type)); err != nil {
		return &ValidationError{Field: "type", Reason: err.Error()}
	}
	if !k.Size.Valid() {
		return &ValidationError{Field: "size", Reason: fmt.Sprintf("size %d is not stocked", k.Size)}
	}
	return nil
}

// RawStockEntry is the running balance of one (type, size, color).
type RawStockEntry struct {
	Type  MaterialType `json:"type"`
	Size  MaterialSize `json:"size"`
	Color string       `json:"color"`
	Count int          `json:"count"`
}

// Key returns the row's table key.
func (e RawStockEntry) Key() StockKey {
	return StockKey{Type: e.Type, Size: e.Size, Color: e.Color}
}

// WarehouseLog is a signed change to raw stock made by a person rather than by
// production: receipts are positive, reconciliations carry the computed delta.
type WarehouseLog struct {
	ID       string       `json:"id"`
	Date     string       `json:"date"`
	Type     MaterialType `json:"type"`
	Size     MaterialSize `json:"size"`
	Color    string       `json:"color"`
	Quantity int          `json:"quantity"`
}

// Key returns the stock row the log entry touched.
func (l WarehouseLog) Key() StockKey {
	return StockKey{Type: l.Type, Size: l.Size, Color: l.Color}
}
