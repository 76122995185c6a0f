package factory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/factory/internal/domain/models"
	"github.com/mamadbah2/factory/internal/ledger"
)

// Account is a customer with its computed totals.
type Account struct {
	models.Customer
	Role     models.Role     `json:"role"`
	Invoiced decimal.Decimal `json:"invoiced"`
	Paid     decimal.Decimal `json:"paid"`
	Balance  decimal.Decimal `json:"balance"`
}

func account(st *models.State, role models.Role, c models.Customer) Account {
	invoiced := ledger.Invoiced(st, role, c)
	paid := c.Paid()
	return Account{
		Customer: c,
		Role:     role,
		Invoiced: invoiced,
		Paid:     paid,
		Balance:  invoiced.Sub(paid),
	}
}

// CreateCustomer opens an account under a role.
func (s *Service) CreateCustomer(ctx context.Context, role models.Role, d CustomerDraft) (models.Customer, error) {
	c := models.Customer{
		ID:       s.newID(),
		Name:     strings.TrimSpace(d.Name),
		Phone:    strings.TrimSpace(d.Phone),
		Invoices: []models.Invoice{},
		Payments: []models.Payment{},
	}
	err := s.change(ctx, string(role)+".create", c.ID, func(st *models.State) error {
		return ledger.AddCustomer(st, role, c)
	})
	if err != nil {
		return models.Customer{}, err
	}
	return c, nil
}

// UpdateCustomer edits an account's name and phone.
func (s *Service) UpdateCustomer(ctx context.Context, role models.Role, id string, d CustomerDraft) (Account, error) {
	err := s.change(ctx, string(role)+".update", id, func(st *models.State) error {
		return ledger.RenameCustomer(st, role, id, strings.TrimSpace(d.Name), strings.TrimSpace(d.Phone))
	})
	if err != nil {
		return Account{}, err
	}
	return s.Customer(role, id)
}

// DeleteCustomer removes an account and the records it owns.
func (s *Service) DeleteCustomer(ctx context.Context, role models.Role, id string) ([]ledger.Clamp, error) {
	return s.commit(ctx, string(role)+".delete", id, func(st *models.State) (ledger.Result, error) {
		return s.ledger.DeleteCustomer(st, role, id, s.writeOff)
	})
}

// DeleteCustomers removes several accounts of one role; all or none.
func (s *Service) DeleteCustomers(ctx context.Context, role models.Role, ids []string) ([]ledger.Clamp, error) {
	return s.commit(ctx, string(role)+".delete_bulk", strings.Join(ids, ","), func(st *models.State) (ledger.Result, error) {
		return s.ledger.DeleteCustomers(st, role, ids, s.writeOff)
	})
}

// Customers lists the accounts of a role with their totals.
func (s *Service) Customers(role models.Role) []Account {
	var out []Account
	s.store.Read(func(st *models.State) {
		st = st.Clone()
		for _, c := range *st.Customers(role) {
			out = append(out, account(st, role, c))
		}
	})
	return out
}

// Customer returns one account with its totals.
func (s *Service) Customer(role models.Role, id string) (Account, error) {
	for _, a := range s.Customers(role) {
		if a.ID == id {
			return a, nil
		}
	}
	return Account{}, &models.NotFoundError{Entity: string(role), ID: id}
}

// CreateInvoice issues an invoice to a sales customer.
func (s *Service) CreateInvoice(ctx context.Context, customerID string, d InvoiceDraft) (models.Invoice, error) {
	inv := s.invoice(s.newID(), d)
	if _, err := s.commit(ctx, "invoice.create", inv.ID, func(st *models.State) (ledger.Result, error) {
		return s.ledger.CreateInvoice(st, customerID, inv)
	}); err != nil {
		return models.Invoice{}, err
	}
	inv.Total = inv.ComputeTotal()
	return inv, nil
}

// UpdateInvoice replaces an invoice.
func (s *Service) UpdateInvoice(ctx context.Context, customerID, invoiceID string, d InvoiceDraft) (models.Invoice, []ledger.Clamp, error) {
	inv := s.invoice(invoiceID, d)
	clamps, err := s.commit(ctx, "invoice.update", invoiceID, func(st *models.State) (ledger.Result, error) {
		return s.ledger.UpdateInvoice(st, customerID, inv)
	})
	if err != nil {
		return models.Invoice{}, nil, err
	}
	inv.Total = inv.ComputeTotal()
	return inv, clamps, nil
}

// DeleteInvoice removes an invoice and returns its units to finished stock.
func (s *Service) DeleteInvoice(ctx context.Context, customerID, invoiceID string) ([]ledger.Clamp, error) {
	return s.commit(ctx, "invoice.delete", invoiceID, func(st *models.State) (ledger.Result, error) {
		return s.ledger.DeleteInvoice(st, customerID, invoiceID)
	})
}

// AddPayment records a payment on an account.
func (s *Service) AddPayment(ctx context.Context, role models.Role, customerID string, d PaymentDraft) (models.Payment, error) {
	p := models.Payment{ID: s.newID(), Date: s.dateOr(d.Date), Amount: d.Amount}
	err := s.change(ctx, "payment.create", p.ID, func(st *models.State) error {
		return ledger.AddPayment(st, role, customerID, p)
	})
	if err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

// RemovePayment deletes a payment from an account.
func (s *Service) RemovePayment(ctx context.Context, role models.Role, customerID, paymentID string) error {
	return s.change(ctx, "payment.delete", paymentID, func(st *models.State) error {
		return ledger.RemovePayment(st, role, customerID, paymentID)
	})
}
