package ledger_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/factory/internal/domain/models"
	"github.com/mamadbah2/factory/internal/ledger"
)

func TestPaymentsAndBalances(t *testing.T) {
	st := newState(t, 10)
	st.Models[0].StockCount = 10
	l := ledger.New(ledger.PolicyReject, nil)

	if _, err := l.CreateMachineWork(st, machineWork("w1", production(white24, 4, "m1", 8))); err != nil {
		t.Fatalf("machine work: %v", err)
	}
	if _, err := l.CreateProcessingWork(st, processingWork("pw1",
		models.ProcessingEntry{ModelID: "m1", QuantitySent: 8, QuantityReceived: 6, Price: decimal.NewFromFloat(1.5)})); err != nil {
		t.Fatalf("processing: %v", err)
	}
	if _, err := l.CreateInvoice(st, "s1", invoice("i1", "m1", 4)); err != nil {
		t.Fatalf("invoice: %v", err)
	}

	for _, amount := range []int64{0, -5} {
		err := ledger.AddPayment(st, models.RoleSales, "s1", models.Payment{ID: "x", Amount: decimal.NewFromInt(amount)})
		var vErr *models.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("AddPayment(%d) error = %v, want ValidationError", amount, err)
		}
	}
	if err := ledger.AddPayment(st, models.RoleSales, "s1", models.Payment{ID: "pay1", Amount: decimal.NewFromInt(55)}); err != nil {
		t.Fatalf("AddPayment: %v", err)
	}
	if err := ledger.AddPayment(st, models.RoleProducer, "p1", models.Payment{ID: "pay2", Amount: decimal.NewFromInt(20)}); err != nil {
		t.Fatalf("AddPayment producer: %v", err)
	}

	cases := []struct {
		role models.Role
		idx  int
		want string
	}{
		{models.RoleProducer, 0, "4"},   // 8 x 3 - 20
		{models.RoleContractor, 0, "9"}, // 6 x 1.5
		{models.RoleSales, 0, "-15"},    // 4 x 10 - 55
	}
	for _, tc := range cases {
		c := (*st.Customers(tc.role))[tc.idx]
		if got := ledger.Balance(st, tc.role, c); got.String() != tc.want {
			t.Fatalf("%s balance = %s, want %s", tc.role, got, tc.want)
		}
	}

	if err := ledger.RemovePayment(st, models.RoleSales, "s1", "pay1"); err != nil {
		t.Fatalf("RemovePayment: %v", err)
	}
	if got := ledger.Balance(st, models.RoleSales, st.SalesCustomers[0]); got.String() != "40" {
		t.Fatalf("balance after removal = %s, want 40", got)
	}
	var nf *models.NotFoundError
	if err := ledger.RemovePayment(st, models.RoleSales, "s1", "pay1"); !errors.As(err, &nf) {
		t.Fatalf("second removal error = %v, want NotFoundError", err)
	}
}

func TestRemoveLogReversesQuantity(t *testing.T) {
	st := newState(t, 10)
	l := ledger.New(ledger.PolicyReject, nil)

	if _, err := l.CreateMachineWork(st, machineWork("w1", production(white24, 7, "m1", 1))); err != nil {
		t.Fatalf("machine work: %v", err)
	}
	_, err := ledger.RemoveLog(st, "log-0")
	requireInsufficient(t, err, models.CounterRaw, 10, 3)
	if len(st.WarehouseLogs) != 1 {
		t.Fatalf("log removed despite rejection")
	}

	if _, err := ledger.ReceiveStock(st, white24, 5, "log-1", "2026-01-06"); err != nil {
		t.Fatalf("ReceiveStock: %v", err)
	}
	if _, err := ledger.RemoveLog(st, "log-1"); err != nil {
		t.Fatalf("RemoveLog: %v", err)
	}
	if got := ledger.NewStockTable(&st.Stocks).Get(white24); got != 3 {
		t.Fatalf("stock = %d, want 3", got)
	}
	if d := ledger.CheckConservation(st); len(d) != 0 {
		t.Fatalf("conservation broken: %+v", d)
	}
}

func TestCheckConservationFindsTampering(t *testing.T) {
	st := newState(t, 10)
	st.Stocks[0].Count = 12

	d := ledger.CheckConservation(st)
	if len(d) != 1 {
		t.Fatalf("discrepancies = %+v, want one", d)
	}
	if d[0].Expected != 10 || d[0].Actual != 12 {
		t.Fatalf("unexpected discrepancy %+v", d[0])
	}
}

func TestStockTableAdjustRejectsNegative(t *testing.T) {
	st := newState(t, 2)
	table := ledger.NewStockTable(&st.Stocks)

	if err := table.Adjust(white24, -3); err == nil {
		t.Fatalf("expected rejection")
	}
	if table.Get(white24) != 2 {
		t.Fatalf("stock changed on rejection")
	}
	red := models.StockKey{Type: models.MaterialAndy, Size: models.Size18, Color: "red"}
	if err := table.Adjust(red, 4); err != nil {
		t.Fatalf("Adjust new row: %v", err)
	}
	if len(table.Rows()) != 2 || table.Get(red) != 4 {
		t.Fatalf("upsert failed: %+v", table.Rows())
	}
}
