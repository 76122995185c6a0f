package models

import "fmt"

// ValidationError reports a draft that cannot become a record.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CounterKind names the bounded counter a check ran against.
type CounterKind string

const (
	CounterRaw          CounterKind = "raw"
	CounterInProduction CounterKind = "in_production"
	CounterFinished     CounterKind = "finished"
)

// InsufficientStockError reports that a mutation needs more of a counter than
// is available. Key is a stock key for raw material and a model id otherwise.
type InsufficientStockError struct {
	Kind      CounterKind
	Key       string
	Required  int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient %s for %s: required %d, available %d (short %d)",
		e.Kind, e.Key, e.Required, e.Available, e.Shortfall())
}

// Shortfall is how many units are missing.
func (e *InsufficientStockError) Shortfall() int {
	return e.Required - e.Available
}

// NotFoundError reports a record id that no longer exists.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}
