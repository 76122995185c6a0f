package factory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/factory/internal/domain/models"
	"github.com/mamadbah2/factory/internal/ledger"
	"github.com/mamadbah2/factory/internal/repository/blob"
	"github.com/mamadbah2/factory/internal/store"
)

type fixture struct {
	svc      *Service
	repo     *blob.Memory
	model    models.FabricModel
	producer models.Customer
	finisher models.Customer
	shop     models.Customer
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	ctx := context.Background()
	repo := blob.NewMemory()
	st := store.New(repo, nil)
	if err := st.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	seq := 0
	base := []Option{
		WithClock(func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	}
	svc := NewService(st, ledger.New(ledger.PolicyReject, nil), nil, append(base, opts...)...)

	f := &fixture{svc: svc, repo: repo}
	var err error
	if f.model, err = svc.CreateModel(ctx, ModelDraft{Name: "Polo", Code: "P-1"}); err != nil {
		t.Fatalf("CreateModel: %v", err)
	}
	if f.producer, err = svc.CreateCustomer(ctx, models.RoleProducer, CustomerDraft{Name: "Knitter"}); err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if f.finisher, err = svc.CreateCustomer(ctx, models.RoleContractor, CustomerDraft{Name: "Finisher"}); err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if f.shop, err = svc.CreateCustomer(ctx, models.RoleSales, CustomerDraft{Name: "Shop"}); err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if _, err := svc.ReceiveStock(ctx, StockReceiptDraft{
		MaterialDraft: MaterialDraft{Type: "DOUGH", Size: 24, Color: "white"},
		Quantity:      10,
	}); err != nil {
		t.Fatalf("ReceiveStock: %v", err)
	}
	return f
}

func (f *fixture) machineDraft(raw, produced int) MachineWorkDraft {
	var e ProductionEntryDraft
	e.Raw.Type, e.Raw.Size, e.Raw.Color, e.Raw.Quantity = "DOUGH", 24, "white", raw
	e.Produced.ModelID, e.Produced.Quantity, e.Produced.Price = f.model.ID, produced, decimal.NewFromInt(2)
	return MachineWorkDraft{CustomerID: f.producer.ID, MachineName: "K1", Entries: []ProductionEntryDraft{e}}
}

func (f *fixture) processingDraft(sent, received int) ProcessingWorkDraft {
	return ProcessingWorkDraft{CustomerID: f.finisher.ID, MachineName: "F1", Entries: []ProcessingEntryDraft{
		{ModelID: f.model.ID, QuantitySent: sent, QuantityReceived: received, Price: decimal.NewFromInt(1)},
	}}
}

func (f *fixture) invoiceDraft(qty int) InvoiceDraft {
	return InvoiceDraft{Items: []InvoiceItemDraft{
		{ModelID: f.model.ID, MachineName: "K1", Quantity: qty, Price: decimal.NewFromInt(10)},
	}}
}

func (f *fixture) counters(t *testing.T) (raw, inProduction, finished int) {
	t.Helper()
	for _, row := range f.svc.Stocks() {
		raw += row.Count
	}
	m, err := f.svc.Model(f.model.ID)
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	return raw, m.ProducedCount, m.StockCount
}

func TestRecordLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	w, err := f.svc.CreateMachineWork(ctx, f.machineDraft(4, 20))
	if err != nil {
		t.Fatalf("CreateMachineWork: %v", err)
	}
	if w.Date != "2026-03-01" {
		t.Fatalf("default date = %q", w.Date)
	}
	if _, err := f.svc.CreateProcessingWork(ctx, f.processingDraft(15, 12)); err != nil {
		t.Fatalf("CreateProcessingWork: %v", err)
	}
	inv, err := f.svc.CreateInvoice(ctx, f.shop.ID, f.invoiceDraft(5))
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if !inv.Total.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("invoice total = %s, want 50", inv.Total)
	}

	raw, inProd, finished := f.counters(t)
	if raw != 6 || inProd != 5 || finished != 7 {
		t.Fatalf("counters = %d/%d/%d, want 6/5/7", raw, inProd, finished)
	}

	if _, err := f.svc.AddPayment(ctx, models.RoleProducer, f.producer.ID, PaymentDraft{Amount: decimal.NewFromInt(15)}); err != nil {
		t.Fatalf("AddPayment: %v", err)
	}
	producer, err := f.svc.Customer(models.RoleProducer, f.producer.ID)
	if err != nil {
		t.Fatalf("Customer: %v", err)
	}
	if !producer.Invoiced.Equal(decimal.NewFromInt(40)) || !producer.Balance.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("producer totals = %s/%s, want 40/25", producer.Invoiced, producer.Balance)
	}
	shop, _ := f.svc.Customer(models.RoleSales, f.shop.ID)
	if !shop.Balance.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("shop balance = %s, want 50", shop.Balance)
	}

	history, err := f.svc.ModelHistory(f.model.ID)
	if err != nil || len(history) != 1 || history[0].Quantity != 20 {
		t.Fatalf("ModelHistory = %+v, %v", history, err)
	}
	if avail := f.svc.SalesAvailability(); len(avail) != 1 || avail[0].Available != 15 {
		t.Fatalf("SalesAvailability = %+v", avail)
	}

	var verr *models.ValidationError
	if err := f.svc.DeleteModel(ctx, f.model.ID); !errors.As(err, &verr) {
		t.Fatalf("DeleteModel on a used model = %v", err)
	}

	if _, err := f.svc.DeleteInvoice(ctx, f.shop.ID, inv.ID); err != nil {
		t.Fatalf("DeleteInvoice: %v", err)
	}
	if _, _, finished := f.counters(t); finished != 12 {
		t.Fatalf("finished after invoice delete = %d, want 12", finished)
	}
}

func TestRejectedMutationKeepsStateAndStorage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.svc.CreateMachineWork(ctx, f.machineDraft(4, 20)); err != nil {
		t.Fatalf("CreateMachineWork: %v", err)
	}
	before, err := f.repo.Load(ctx, "factory_stocks")
	if err != nil {
		t.Fatalf("Load stocks: %v", err)
	}

	_, err = f.svc.CreateMachineWork(ctx, f.machineDraft(7, 1))
	var stockErr *models.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Shortfall() != 1 {
		t.Fatalf("shortfall = %d, want 1", stockErr.Shortfall())
	}

	after, _ := f.repo.Load(ctx, "factory_stocks")
	if string(before) != string(after) {
		t.Fatalf("stored stock changed after a rejected mutation:\n%s\n%s", before, after)
	}
	if raw, _, _ := f.counters(t); raw != 6 {
		t.Fatalf("raw = %d, want 6", raw)
	}
	if n := len(f.svc.MachineWorks()); n != 1 {
		t.Fatalf("machine works = %d, want 1", n)
	}
}

func TestDraftValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	draft := f.machineDraft(1, 1)
	draft.Entries[0].Raw.Type = "wool"
	var verr *models.ValidationError
	if _, err := f.svc.CreateMachineWork(ctx, draft); !errors.As(err, &verr) {
		t.Fatalf("unknown material = %v, want ValidationError", err)
	}
	if verr.Field != "entries[0].raw.type" {
		t.Fatalf("field = %q", verr.Field)
	}

	if _, err := f.svc.AddExpense(ctx, ExpenseDraft{Category: "snacks", Description: "x", Amount: decimal.NewFromInt(1)}); !errors.As(err, &verr) {
		t.Fatalf("unknown category = %v", err)
	}
	e, err := f.svc.AddExpense(ctx, ExpenseDraft{Description: "misc", Amount: decimal.NewFromInt(7)})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if e.Category != models.ExpenseGeneral {
		t.Fatalf("default category = %q", e.Category)
	}
	if sum := f.svc.ExpenseSummary(); !sum.Total.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("expense total = %s", sum.Total)
	}
}

func TestStockCountAndLogDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	material := MaterialDraft{Type: "عجينة", Size: 24, Color: "white"}

	entry, logged, err := f.svc.SetStockCount(ctx, StockCountDraft{MaterialDraft: material, Count: 3})
	if err != nil || !logged || entry.Quantity != -7 {
		t.Fatalf("SetStockCount = %+v, %v, %v", entry, logged, err)
	}
	if _, logged, _ := f.svc.SetStockCount(ctx, StockCountDraft{MaterialDraft: material, Count: 3}); logged {
		t.Fatalf("matching count should not log")
	}

	logs := f.svc.WarehouseLogs()
	if len(logs) != 2 || logs[0].ID != entry.ID {
		t.Fatalf("logs = %+v, want the reconciliation first", logs)
	}

	receipt := logs[1]
	if err := f.svc.DeleteWarehouseLog(ctx, receipt.ID); err == nil {
		t.Fatalf("deleting a receipt of 10 with 3 bags left should fail")
	}
	if err := f.svc.DeleteWarehouseLog(ctx, entry.ID); err != nil {
		t.Fatalf("DeleteWarehouseLog: %v", err)
	}
	if raw, _, _ := f.counters(t); raw != 10 {
		t.Fatalf("raw after undoing the reconciliation = %d, want 10", raw)
	}
}

func TestDeleteCustomerPolicies(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		opts    []Option
		wantRaw int
	}{
		{"reverse", nil, 10},
		{"write off", []Option{WithCustomerWriteOff(true)}, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.opts...)
			if _, err := f.svc.CreateMachineWork(ctx, f.machineDraft(4, 20)); err != nil {
				t.Fatalf("CreateMachineWork: %v", err)
			}
			if _, err := f.svc.DeleteCustomer(ctx, models.RoleProducer, f.producer.ID); err != nil {
				t.Fatalf("DeleteCustomer: %v", err)
			}
			if raw, _, _ := f.counters(t); raw != tc.wantRaw {
				t.Fatalf("raw = %d, want %d", raw, tc.wantRaw)
			}
			if len(f.svc.MachineWorks()) != 0 || len(f.svc.Customers(models.RoleProducer)) != 0 {
				t.Fatalf("customer records left behind")
			}
		})
	}
}

func TestBulkDeleteIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	w1, err := f.svc.CreateMachineWork(ctx, f.machineDraft(2, 5))
	if err != nil {
		t.Fatalf("CreateMachineWork: %v", err)
	}
	w2, err := f.svc.CreateMachineWork(ctx, f.machineDraft(2, 5))
	if err != nil {
		t.Fatalf("CreateMachineWork: %v", err)
	}

	var nf *models.NotFoundError
	if _, err := f.svc.DeleteMachineWorks(ctx, []string{w1.ID, "missing"}); !errors.As(err, &nf) {
		t.Fatalf("bulk delete with a missing id = %v", err)
	}
	if n := len(f.svc.MachineWorks()); n != 2 {
		t.Fatalf("machine works = %d after failed bulk delete, want 2", n)
	}

	if _, err := f.svc.DeleteMachineWorks(ctx, []string{w1.ID, w2.ID}); err != nil {
		t.Fatalf("DeleteMachineWorks: %v", err)
	}
	if raw, inProd, _ := f.counters(t); raw != 10 || inProd != 0 {
		t.Fatalf("counters = %d/%d, want 10/0", raw, inProd)
	}
}
