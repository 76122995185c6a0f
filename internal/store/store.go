// Package store owns the factory snapshot. Mutations run on a copy and are
// swapped in only when they succeed, after which every collection is saved.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/factory/internal/domain/models"
	"github.com/mamadbah2/factory/internal/repository/blob"
)

func init() {
	// Money is stored as JSON numbers, the way the documents have always held it.
	decimal.MarshalJSONWithoutQuotes = true
}

const metaBlob = "factory_meta"

type meta struct {
	SchemaVersion int `json:"schemaVersion"`
}

type collection struct {
	name string
	ref  func(st *models.State) any
}

var collections = []collection{
	{"factory_stocks", func(st *models.State) any { return &st.Stocks }},
	{"factory_warehouse_logs", func(st *models.State) any { return &st.WarehouseLogs }},
	{"factory_models", func(st *models.State) any { return &st.Models }},
	{"factory_machines", func(st *models.State) any { return &st.MachineWorks }},
	{"factory_processing", func(st *models.State) any { return &st.ProcessingWorks }},
	{"factory_producers", func(st *models.State) any { return &st.Producers }},
	{"factory_contractors", func(st *models.State) any { return &st.Contractors }},
	{"factory_customers", func(st *models.State) any { return &st.SalesCustomers }},
	{"factory_expenses", func(st *models.State) any { return &st.Expenses }},
}

// BlobNames lists every document the store reads and writes.
func BlobNames() []string {
	names := []string{metaBlob}
	for _, c := range collections {
		names = append(names, c.name)
	}
	return names
}

// Store holds the snapshot and serializes access to it.
type Store struct {
	mu      sync.RWMutex
	state   *models.State
	repo    blob.Repository
	logger  *zap.Logger
	pending error
}

// New returns a store holding an empty snapshot. Call Load to read persisted data.
func New(repo blob.Repository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		state:  models.NewState(),
		repo:   repo,
		logger: logger,
	}
}

// Load reads every collection. A missing document is an empty collection.
func (s *Store) Load(ctx context.Context) error {
	st := models.NewState()

	var m meta
	found, err := s.loadInto(ctx, metaBlob, &m)
	if err != nil {
		return err
	}
	if !found {
		m.SchemaVersion = 0
	}
	if m.SchemaVersion > models.SchemaVersion {
		return fmt.Errorf("stored schema version %d is newer than supported version %d", m.SchemaVersion, models.SchemaVersion)
	}

	for _, c := range collections {
		if _, err := s.loadInto(ctx, c.name, c.ref(st)); err != nil {
			return err
		}
	}

	st.SchemaVersion = m.SchemaVersion
	upgraded := upgrade(st)

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()

	s.logger.Info("state loaded",
		zap.Int("schema_version", m.SchemaVersion),
		zap.Bool("upgraded", upgraded),
		zap.Int("models", len(st.Models)),
		zap.Int("machine_works", len(st.MachineWorks)),
		zap.Int("processing_works", len(st.ProcessingWorks)),
	)
	return nil
}

func (s *Store) loadInto(ctx context.Context, name string, target any) (bool, error) {
	data, err := s.repo.Load(ctx, name)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load %s: %w", name, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return true, nil
}

// upgrade brings a snapshot to the current schema and reports whether
// anything had to change.
func upgrade(st *models.State) bool {
	changed := fillEmpty(st)
	if st.SchemaVersion < 1 {
		// Version 0 documents may carry invoices whose total was never written.
		for _, role := range models.Roles {
			customers := *st.Customers(role)
			for i := range customers {
				for j := range customers[i].Invoices {
					inv := &customers[i].Invoices[j]
					if inv.Total.IsZero() && len(inv.Items) > 0 {
						inv.Total = inv.ComputeTotal()
					}
				}
			}
		}
		changed = true
	}
	st.SchemaVersion = models.SchemaVersion
	return changed
}

// fillEmpty replaces null collections with empty ones.
func fillEmpty(st *models.State) bool {
	changed := false
	fill := func(isNil bool, set func()) {
		if isNil {
			set()
			changed = true
		}
	}
	fill(st.Stocks == nil, func() { st.Stocks = []models.RawStockEntry{} })
	fill(st.WarehouseLogs == nil, func() { st.WarehouseLogs = []models.WarehouseLog{} })
	fill(st.Models == nil, func() { st.Models = []models.FabricModel{} })
	fill(st.MachineWorks == nil, func() { st.MachineWorks = []models.MachineWork{} })
	fill(st.ProcessingWorks == nil, func() { st.ProcessingWorks = []models.ProcessingWork{} })
	fill(st.Producers == nil, func() { st.Producers = []models.Customer{} })
	fill(st.Contractors == nil, func() { st.Contractors = []models.Customer{} })
	fill(st.SalesCustomers == nil, func() { st.SalesCustomers = []models.Customer{} })
	fill(st.Expenses == nil, func() { st.Expenses = []models.Expense{} })

	for _, role := range models.Roles {
		customers := *st.Customers(role)
		for i := range customers {
			fill(customers[i].Invoices == nil, func() { customers[i].Invoices = []models.Invoice{} })
			fill(customers[i].Payments == nil, func() { customers[i].Payments = []models.Payment{} })
		}
	}
	return changed
}

// Snapshot returns a private copy of the current state.
func (s *Store) Snapshot() *models.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Read runs fn against the live state under a read lock. fn must not retain
// or modify the state.
func (s *Store) Read(fn func(st *models.State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// Update runs fn on a copy of the state. When fn returns nil the copy becomes
// the current state and is saved; otherwise the current state is untouched and
// fn's error is returned. Save failures are logged and retried by Flush.
func (s *Store) Update(ctx context.Context, fn func(st *models.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.Clone()
	if err := fn(work); err != nil {
		return err
	}
	s.state = work

	if err := s.saveAll(context.WithoutCancel(ctx), work); err != nil {
		s.pending = err
		s.logger.Error("failed to persist state", zap.Error(err))
		return nil
	}
	s.pending = nil
	return nil
}

// Flush saves the current state and returns the error, if any.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveAll(ctx, s.state); err != nil {
		s.pending = err
		return err
	}
	s.pending = nil
	return nil
}

// Pending returns the last save error not yet cleared by a successful save.
func (s *Store) Pending() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending
}

func (s *Store) saveAll(ctx context.Context, st *models.State) error {
	if err := s.save(ctx, metaBlob, meta{SchemaVersion: models.SchemaVersion}); err != nil {
		return err
	}
	for _, c := range collections {
		if err := s.save(ctx, c.name, c.ref(st)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) save(ctx context.Context, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := s.repo.Save(ctx, name, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}
