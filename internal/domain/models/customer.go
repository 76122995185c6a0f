package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Role tags which relationship an account represents. Each role keeps its own
// collection even though the documents share one shape.
type Role string

const (
	RoleProducer   Role = "producer"
	RoleContractor Role = "contractor"
	RoleSales      Role = "sales"
)

// Roles lists every role in display order.
var Roles = []Role{RoleProducer, RoleContractor, RoleSales}

// ParseRole accepts the singular role name or the plural used in URLs.
func ParseRole(value string) (Role, error) {
	switch value {
	case "producer", "producers":
		return RoleProducer, nil
	case "contractor", "contractors":
		return RoleContractor, nil
	case "sales", "customer", "customers":
		return RoleSales, nil
	}
	return "", fmt.Errorf("unknown role %q", value)
}

// InvoiceItem is one sold line, tied to the machine that produced the units.
type InvoiceItem struct {
	ModelID     string          `json:"modelId"`
	MachineName string          `json:"machineName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Invoice is a stored sale to a sales customer.
type Invoice struct {
	ID    string          `json:"id"`
	Date  string          `json:"date"`
	Items []InvoiceItem   `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// ComputeTotal sums quantity times price across the items.
func (inv Invoice) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Payment is cash collected from, or paid to, an account.
type Payment struct {
	ID     string          `json:"id"`
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Customer is an account in one of the three roles.
type Customer struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Invoices []Invoice `json:"invoices"`
	Payments []Payment `json:"payments"`
}

// Paid sums the account's payments.
func (c Customer) Paid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// InvoiceIndex returns the position of the invoice or -1.
func (c Customer) InvoiceIndex(id string) int {
	for i := range c.Invoices {
		if c.Invoices[i].ID == id {
			return i
		}
	}
	return -1
}
