// Package ledger holds the inventory rules every production, processing and
// sales record goes through. Each operation takes the record's previous form
// (nil on create) and its new form (nil on delete), checks the new form
// against what is available once the previous form is given back, and only
// then moves the counters. A rejected call leaves the snapshot untouched.
package ledger

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/mamadbah2/factory/internal/domain/models"
)

// Policy decides what happens when undoing a record would push a counter
// below zero, e.g. finished units were sold after the processing batch that
// produced them.
type Policy string

const (
	// PolicyReject refuses the edit or delete.
	PolicyReject Policy = "reject"
	// PolicyClamp applies it, stops the counter at zero and reports the clamp.
	PolicyClamp Policy = "clamp"
)

// ParsePolicy validates a policy name.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(value) {
	case PolicyReject, PolicyClamp:
		return Policy(value), nil
	}
	return "", fmt.Errorf("unknown reversal policy %q", value)
}

// Adjustment is the set of counter deltas one mutation applies.
type Adjustment struct {
	Raw          map[models.StockKey]int
	InProduction map[string]int
	Finished     map[string]int
}

func newAdjustment() Adjustment {
	return Adjustment{
		Raw:          map[models.StockKey]int{},
		InProduction: map[string]int{},
		Finished:     map[string]int{},
	}
}

// IsZero reports whether the adjustment moves nothing.
func (a Adjustment) IsZero() bool {
	return len(a.Raw) == 0 && len(a.InProduction) == 0 && len(a.Finished) == 0
}

func (a Adjustment) merge(other Adjustment) {
	for k, v := range other.Raw {
		addDelta(a.Raw, k, v)
	}
	for k, v := range other.InProduction {
		addDelta(a.InProduction, k, v)
	}
	for k, v := range other.Finished {
		addDelta(a.Finished, k, v)
	}
}

func addDelta[K comparable](m map[K]int, key K, delta int) {
	if v := m[key] + delta; v != 0 {
		m[key] = v
	} else {
		delete(m, key)
	}
}

// Clamp records a counter that was stopped at zero under PolicyClamp.
type Clamp struct {
	Kind    models.CounterKind `json:"kind"`
	Key     string             `json:"key"`
	Wanted  int                `json:"wanted"`
	Applied int                `json:"applied"`
}

// Result describes a committed mutation.
type Result struct {
	Adjustment Adjustment
	Clamps     []Clamp
}

func (r *Result) merge(other Result) {
	if r.Adjustment.Raw == nil {
		r.Adjustment = newAdjustment()
	}
	r.Adjustment.merge(other.Adjustment)
	r.Clamps = append(r.Clamps, other.Clamps...)
}

// Ledger applies reversible counter updates to a snapshot.
type Ledger struct {
	policy Policy
	logger *zap.Logger
}

// New builds a ledger with the given reversal policy.
func New(policy Policy, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy == "" {
		policy = PolicyReject
	}
	return &Ledger{policy: policy, logger: logger}
}

// Policy returns the configured reversal policy.
func (l *Ledger) Policy() Policy {
	return l.policy
}

// ApplyMachineWork moves raw stock into in-production units. Either argument
// may be nil.
func (l *Ledger) ApplyMachineWork(st *models.State, old, next *models.MachineWork) (Result, error) {
	oldRaw, oldProduced := machineTotals(old)
	newRaw, newProduced := machineTotals(next)

	adj := newAdjustment()
	table := NewStockTable(&st.Stocks)
	for _, key := range sortedStockKeys(newRaw) {
		required := newRaw[key]
		available := table.Get(key) + oldRaw[key]
		if required > available {
			return Result{}, &models.InsufficientStockError{
				Kind:      models.CounterRaw,
				Key:       key.String(),
				Required:  required,
				Available: available,
			}
		}
	}
	for key, qty := range oldRaw {
		addDelta(adj.Raw, key, qty)
	}
	for key, qty := range newRaw {
		addDelta(adj.Raw, key, -qty)
	}
	for id, qty := range oldProduced {
		addDelta(adj.InProduction, id, -qty)
	}
	for id, qty := range newProduced {
		addDelta(adj.InProduction, id, qty)
	}

	return l.commit(st, adj)
}

// ApplyProcessingWork moves in-production units out to the contractor and
// finished units back in. Sent quantities are bounded by the in-production
// count; received quantities are not.
func (l *Ledger) ApplyProcessingWork(st *models.State, old, next *models.ProcessingWork) (Result, error) {
	oldSent, oldReceived := processingTotals(old)
	newSent, newReceived := processingTotals(next)

	counters := NewCounters(&st.Models)
	for _, id := range sortedIDs(newSent) {
		current, _ := counters.Get(models.CounterInProduction, id)
		required := newSent[id]
		available := current + oldSent[id]
		if required > available {
			return Result{}, &models.InsufficientStockError{
				Kind:      models.CounterInProduction,
				Key:       id,
				Required:  required,
				Available: available,
			}
		}
	}

	adj := newAdjustment()
	for id, qty := range oldSent {
		addDelta(adj.InProduction, id, qty)
	}
	for id, qty := range newSent {
		addDelta(adj.InProduction, id, -qty)
	}
	for id, qty := range oldReceived {
		addDelta(adj.Finished, id, -qty)
	}
	for id, qty := range newReceived {
		addDelta(adj.Finished, id, qty)
	}

	return l.commit(st, adj)
}

// ApplySalesInvoice takes sold units out of the finished count.
func (l *Ledger) ApplySalesInvoice(st *models.State, old, next *models.Invoice) (Result, error) {
	oldSold := invoiceTotals(old)
	newSold := invoiceTotals(next)

	counters := NewCounters(&st.Models)
	for _, id := range sortedIDs(newSold) {
		current, _ := counters.Get(models.CounterFinished, id)
		required := newSold[id]
		available := current + oldSold[id]
		if required > available {
			return Result{}, &models.InsufficientStockError{
				Kind:      models.CounterFinished,
				Key:       id,
				Required:  required,
				Available: available,
			}
		}
	}

	adj := newAdjustment()
	for id, qty := range oldSold {
		addDelta(adj.Finished, id, qty)
	}
	for id, qty := range newSold {
		addDelta(adj.Finished, id, -qty)
	}

	return l.commit(st, adj)
}

// commit checks the model counters the adjustment lowers, then writes every
// delta. Nothing is written if a check fails.
func (l *Ledger) commit(st *models.State, adj Adjustment) (Result, error) {
	counters := NewCounters(&st.Models)
	table := NewStockTable(&st.Stocks)

	// Deltas against models that have since been removed from the catalogue
	// have nothing left to move.
	for _, m := range []map[string]int{adj.InProduction, adj.Finished} {
		for id := range m {
			if !counters.Exists(id) {
				delete(m, id)
			}
		}
	}

	var clamps []Clamp
	for _, kind := range []models.CounterKind{models.CounterInProduction, models.CounterFinished} {
		deltas := adj.deltas(kind)
		for _, id := range sortedIDs(deltas) {
			current, _ := counters.Get(kind, id)
			next := current + deltas[id]
			if next >= 0 {
				continue
			}
			if l.policy != PolicyClamp {
				return Result{}, &models.InsufficientStockError{
					Kind:      kind,
					Key:       id,
					Required:  -deltas[id],
					Available: current,
				}
			}
			clamps = append(clamps, Clamp{Kind: kind, Key: id, Wanted: next, Applied: 0})
		}
	}
	for _, key := range sortedStockKeys(adj.Raw) {
		if next := table.Get(key) + adj.Raw[key]; next < 0 {
			return Result{}, &models.InsufficientStockError{
				Kind:      models.CounterRaw,
				Key:       key.String(),
				Required:  -adj.Raw[key],
				Available: table.Get(key),
			}
		}
	}

	for key, delta := range adj.Raw {
		table.Upsert(key).Count += delta
	}
	for _, kind := range []models.CounterKind{models.CounterInProduction, models.CounterFinished} {
		for id, delta := range adj.deltas(kind) {
			current, _ := counters.Get(kind, id)
			counters.set(kind, id, max(current+delta, 0))
		}
	}

	for _, c := range clamps {
		l.logger.Warn("counter clamped at zero",
			zap.String("kind", string(c.Kind)),
			zap.String("model_id", c.Key),
			zap.Int("wanted", c.Wanted))
	}

	return Result{Adjustment: adj, Clamps: clamps}, nil
}

func (a Adjustment) deltas(kind models.CounterKind) map[string]int {
	if kind == models.CounterFinished {
		return a.Finished
	}
	return a.InProduction
}

func machineTotals(w *models.MachineWork) (map[models.StockKey]int, map[string]int) {
	raw := map[models.StockKey]int{}
	produced := map[string]int{}
	if w == nil {
		return raw, produced
	}
	for _, e := range w.Entries {
		raw[e.Raw.Key()] += e.Raw.Quantity
		produced[e.Produced.ModelID] += e.Produced.Quantity
	}
	return raw, produced
}

func processingTotals(w *models.ProcessingWork) (map[string]int, map[string]int) {
	sent := map[string]int{}
	received := map[string]int{}
	if w == nil {
		return sent, received
	}
	for _, e := range w.Entries {
		sent[e.ModelID] += e.QuantitySent
		received[e.ModelID] += e.QuantityReceived
	}
	return sent, received
}

func invoiceTotals(inv *models.Invoice) map[string]int {
	sold := map[string]int{}
	if inv == nil {
		return sold
	}
	for _, item := range inv.Items {
		sold[item.ModelID] += item.Quantity
	}
	return sold
}

func sortedIDs(m map[string]int) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
