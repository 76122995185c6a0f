package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMaterialTypeAcceptsEnglishNames(t *testing.T) {
	cases := []struct {
		in   string
		want MaterialType
	}{
		{`"DOUGH"`, MaterialDough},
		{`"andy"`, MaterialAndy},
		{`"عجينة"`, MaterialDough},
	}
	for _, tc := range cases {
		var got MaterialType
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Unmarshal(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}

	var bad MaterialType
	if err := json.Unmarshal([]byte(`"wool"`), &bad); err == nil {
		t.Fatalf("unknown material accepted")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	st := NewState()
	st.MachineWorks = []MachineWork{{ID: "w1", Entries: []ProductionEntry{{Raw: RawConsumption{Quantity: 1}}}}}
	st.SalesCustomers = []Customer{{ID: "s1", Invoices: []Invoice{{ID: "i1", Items: []InvoiceItem{{Quantity: 2}}}}}}

	cp := st.Clone()
	cp.MachineWorks[0].Entries[0].Raw.Quantity = 9
	cp.SalesCustomers[0].Invoices[0].Items[0].Quantity = 9
	cp.SalesCustomers[0].Payments = append(cp.SalesCustomers[0].Payments, Payment{ID: "p"})

	if st.MachineWorks[0].Entries[0].Raw.Quantity != 1 {
		t.Fatalf("machine work entries shared with clone")
	}
	if st.SalesCustomers[0].Invoices[0].Items[0].Quantity != 2 {
		t.Fatalf("invoice items shared with clone")
	}
	if len(st.SalesCustomers[0].Payments) != 0 {
		t.Fatalf("payments shared with clone")
	}
}

func TestRecordValues(t *testing.T) {
	w := MachineWork{Entries: []ProductionEntry{
		{Produced: ProducedOutput{Quantity: 4, Price: decimal.NewFromFloat(2.5)}},
		{Produced: ProducedOutput{Quantity: 2, Price: decimal.NewFromInt(1)}},
	}}
	if got := w.Value(); !got.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("machine work value = %s, want 12", got)
	}

	p := ProcessingWork{Entries: []ProcessingEntry{{QuantitySent: 10, QuantityReceived: 8, Price: decimal.NewFromInt(3)}}}
	if got := p.Value(); !got.Equal(decimal.NewFromInt(24)) {
		t.Fatalf("processing value = %s, want 24", got)
	}
}
