package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/factory/internal/domain/models"
	"github.com/mamadbah2/factory/internal/repository/blob"
)

type failingRepo struct {
	*blob.Memory
	fail bool
}

func (r *failingRepo) Save(ctx context.Context, name string, data []byte) error {
	if r.fail {
		return errors.New("disk full")
	}
	return r.Memory.Save(ctx, name, data)
}

func TestLoadEmptyRepository(t *testing.T) {
	s := New(blob.NewMemory(), nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	st := s.Snapshot()
	if st.SchemaVersion != models.SchemaVersion {
		t.Fatalf("schema version = %d, want %d", st.SchemaVersion, models.SchemaVersion)
	}
	if st.Stocks == nil || st.SalesCustomers == nil || st.Expenses == nil {
		t.Fatalf("collections should be empty, not nil")
	}
}

func TestLoadUpgradesLegacyDocuments(t *testing.T) {
	ctx := context.Background()
	repo := blob.NewMemory()
	_ = repo.Save(ctx, "factory_stocks", []byte(`[{"type":"عجينة","size":24,"color":"white","count":6}]`))
	_ = repo.Save(ctx, "factory_customers", []byte(`[{"id":"s1","name":"Ali","phone":"","invoices":[{"id":"i1","date":"2024-01-02","items":[{"modelId":"m1","machineName":"K1","quantity":3,"price":2.5}]}]}]`))
	_ = repo.Save(ctx, "factory_expenses", []byte(`null`))

	s := New(repo, nil)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	st := s.Snapshot()

	if len(st.Stocks) != 1 || st.Stocks[0].Type != models.MaterialDough || st.Stocks[0].Count != 6 {
		t.Fatalf("unexpected stocks: %+v", st.Stocks)
	}
	inv := st.SalesCustomers[0].Invoices[0]
	if !inv.Total.Equal(decimal.RequireFromString("7.5")) {
		t.Fatalf("invoice total = %s, want 7.5", inv.Total)
	}
	if st.SalesCustomers[0].Payments == nil {
		t.Fatalf("payments should be upgraded to an empty list")
	}
	if st.Expenses == nil {
		t.Fatalf("null expenses should load as empty")
	}
}

func TestLoadRejectsNewerSchema(t *testing.T) {
	ctx := context.Background()
	repo := blob.NewMemory()
	_ = repo.Save(ctx, metaBlob, []byte(`{"schemaVersion":99}`))

	if err := New(repo, nil).Load(ctx); err == nil {
		t.Fatalf("expected an error for a newer schema")
	}
}

func TestUpdateCommitsAndPersists(t *testing.T) {
	ctx := context.Background()
	repo := blob.NewMemory()
	s := New(repo, nil)

	err := s.Update(ctx, func(st *models.State) error {
		st.Expenses = append(st.Expenses, models.Expense{
			ID: "e1", Date: "2024-01-01", Category: models.ExpenseRent,
			Description: "January", Amount: decimal.NewFromInt(300),
		})
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	data, err := repo.Load(ctx, "factory_expenses")
	if err != nil {
		t.Fatalf("expenses not saved: %v", err)
	}
	if !strings.Contains(string(data), `"amount":300`) {
		t.Fatalf("amount should be a JSON number, got %s", data)
	}

	reloaded := New(repo, nil)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reloaded.Snapshot().Expenses; len(got) != 1 || got[0].ID != "e1" {
		t.Fatalf("reloaded expenses = %+v", got)
	}
	if len(repo.Names()) != len(BlobNames()) {
		t.Fatalf("saved %d blobs, want %d", len(repo.Names()), len(BlobNames()))
	}
}

func TestUpdateFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	s := New(blob.NewMemory(), nil)

	boom := errors.New("boom")
	err := s.Update(ctx, func(st *models.State) error {
		st.Models = append(st.Models, models.FabricModel{ID: "m1"})
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update error = %v, want boom", err)
	}
	if n := len(s.Snapshot().Models); n != 0 {
		t.Fatalf("failed update leaked %d models", n)
	}
}

func TestSaveFailureIsKeptForFlush(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepo{Memory: blob.NewMemory(), fail: true}
	s := New(repo, nil)

	err := s.Update(ctx, func(st *models.State) error {
		st.Models = append(st.Models, models.FabricModel{ID: "m1", Name: "Polo", Code: "P1"})
		return nil
	})
	if err != nil {
		t.Fatalf("save failures must not reach the caller: %v", err)
	}
	if len(s.Snapshot().Models) != 1 {
		t.Fatalf("committed state lost after save failure")
	}
	if s.Pending() == nil {
		t.Fatalf("expected a pending save error")
	}
	if err := s.Flush(ctx); err == nil {
		t.Fatalf("Flush should report the failing repository")
	}

	repo.fail = false
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if s.Pending() != nil {
		t.Fatalf("pending error should clear after a successful flush")
	}
}
