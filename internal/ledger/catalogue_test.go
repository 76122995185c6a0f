package ledger_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/factory/internal/domain/models"
	"github.com/mamadbah2/factory/internal/ledger"
)

func TestModelCatalogue(t *testing.T) {
	l := ledger.New(ledger.PolicyReject, nil)
	st := newState(t, 10)

	if err := ledger.AddModel(st, models.FabricModel{ID: "m3", Name: "Vest"}); err == nil {
		t.Fatalf("model without code accepted")
	}
	if err := ledger.AddModel(st, models.FabricModel{ID: "m3", Name: "Vest", Code: "V-1", StockCount: 50}); err != nil {
		t.Fatalf("AddModel: %v", err)
	}
	if got := st.Models[st.ModelIndex("m3")].StockCount; got != 0 {
		t.Fatalf("new model finished = %d, want 0", got)
	}

	if _, err := l.CreateMachineWork(st, machineWork("w1", production(white24, 2, "m3", 8))); err != nil {
		t.Fatalf("CreateMachineWork: %v", err)
	}

	edited, err := ledger.EditModel(st, models.FabricModel{ID: "m3", Name: "Vest v2", Code: "V-2"})
	if err != nil {
		t.Fatalf("EditModel: %v", err)
	}
	if edited.ProducedCount != 8 {
		t.Fatalf("edit lost in-production counter: %+v", edited)
	}

	var verr *models.ValidationError
	if err := ledger.RemoveModel(st, "m3"); !errors.As(err, &verr) {
		t.Fatalf("RemoveModel of a used model = %v, want ValidationError", err)
	}
	if err := ledger.RemoveModel(st, "m2"); err != nil {
		t.Fatalf("RemoveModel: %v", err)
	}
	var nf *models.NotFoundError
	if err := ledger.RemoveModel(st, "m2"); !errors.As(err, &nf) {
		t.Fatalf("second RemoveModel = %v, want NotFoundError", err)
	}
}

func TestExpenses(t *testing.T) {
	st := models.NewState()
	add := func(id string, category models.ExpenseCategory, amount int64) error {
		return ledger.AddExpense(st, models.Expense{
			ID: id, Date: "2026-02-01", Category: category,
			Description: "x", Amount: decimal.NewFromInt(amount),
		})
	}

	if err := add("e1", models.ExpenseRent, 300); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if err := add("e2", models.ExpenseThread, 40); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if err := add("e3", models.ExpenseThread, 60); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if err := add("e4", models.ExpenseRent, 0); err == nil {
		t.Fatalf("zero expense accepted")
	}
	if err := add("e5", "snacks", 5); err == nil {
		t.Fatalf("unknown category accepted")
	}

	total, byCategory := ledger.ExpenseTotals(st.Expenses)
	if !total.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("total = %s, want 400", total)
	}
	if got := byCategory[models.ExpenseThread]; !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("thread = %s, want 100", got)
	}

	if err := ledger.RemoveExpense(st, "e1"); err != nil {
		t.Fatalf("RemoveExpense: %v", err)
	}
	if total, _ := ledger.ExpenseTotals(st.Expenses); !total.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("total after delete = %s, want 100", total)
	}
}

func TestSalesAvailabilityByMachine(t *testing.T) {
	l := ledger.New(ledger.PolicyReject, nil)
	st := newState(t, 20)

	w := machineWork("w1", production(white24, 2, "m1", 10))
	if _, err := l.CreateMachineWork(st, w); err != nil {
		t.Fatalf("CreateMachineWork: %v", err)
	}
	other := machineWork("w2", production(white24, 1, "m1", 4))
	other.MachineName = "K2"
	if _, err := l.CreateMachineWork(st, other); err != nil {
		t.Fatalf("CreateMachineWork: %v", err)
	}
	if _, err := l.CreateProcessingWork(st, processingWork("pw1", models.ProcessingEntry{ModelID: "m1", QuantitySent: 14, QuantityReceived: 14})); err != nil {
		t.Fatalf("CreateProcessingWork: %v", err)
	}
	if _, err := l.CreateInvoice(st, "s1", invoice("i1", "m1", 4)); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	sold := invoice("i2", "m1", 4)
	sold.Items[0].MachineName = "K2"
	if _, err := l.CreateInvoice(st, "s1", sold); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	got := ledger.SalesAvailability(st)
	if len(got) != 1 {
		t.Fatalf("availability = %+v, want only K1", got)
	}
	if got[0].MachineName != "K1" || got[0].Available != 6 || got[0].Sold != 4 {
		t.Fatalf("unexpected availability %+v", got[0])
	}
}
