package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/factory/internal/domain/models"
)

// AddCustomer registers an account under a role.
func AddCustomer(st *models.State, role models.Role, c models.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return &models.ValidationError{Field: "name", Reason: "required"}
	}
	if st.CustomerIndex(role, c.ID) >= 0 {
		return &models.ValidationError{Field: "id", Reason: "duplicate account " + c.ID}
	}
	if c.Invoices == nil {
		c.Invoices = []models.Invoice{}
	}
	if c.Payments == nil {
		c.Payments = []models.Payment{}
	}
	customers := st.Customers(role)
	*customers = append(*customers, c)
	return nil
}

// RenameCustomer updates the contact details of an account.
func RenameCustomer(st *models.State, role models.Role, id, name, phone string) error {
	if strings.TrimSpace(name) == "" {
		return &models.ValidationError{Field: "name", Reason: "required"}
	}
	idx := st.CustomerIndex(role, id)
	if idx < 0 {
		return &models.NotFoundError{Entity: string(role), ID: id}
	}
	c := &(*st.Customers(role))[idx]
	c.Name = name
	c.Phone = phone
	return nil
}

// AddPayment records money received from, or paid to, an account.
func AddPayment(st *models.State, role models.Role, customerID string, p models.Payment) error {
	if !p.Amount.IsPositive() {
		return &models.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	idx := st.CustomerIndex(role, customerID)
	if idx < 0 {
		return &models.NotFoundError{Entity: string(role), ID: customerID}
	}
	c := &(*st.Customers(role))[idx]
	c.Payments = append(c.Payments, p)
	return nil
}

// RemovePayment deletes a payment. Payments never touch inventory.
func RemovePayment(st *models.State, role models.Role, customerID, paymentID string) error {
	idx := st.CustomerIndex(role, customerID)
	if idx < 0 {
		return &models.NotFoundError{Entity: string(role), ID: customerID}
	}
	c := &(*st.Customers(role))[idx]
	for i := range c.Payments {
		if c.Payments[i].ID == paymentID {
			c.Payments = append(c.Payments[:i], c.Payments[i+1:]...)
			return nil
		}
	}
	return &models.NotFoundError{Entity: "payment", ID: paymentID}
}

// Invoiced is what the account has been billed. Producers and contractors are
// billed implicitly by the value of their work records; sales customers by
// their stored invoices.
func Invoiced(st *models.State, role models.Role, c models.Customer) decimal.Decimal {
	total := decimal.Zero
	switch role {
	case models.RoleProducer:
		for _, w := range st.MachineWorks {
			if w.CustomerID == c.ID {
				total = total.Add(w.Value())
			}
		}
	case models.RoleContractor:
		for _, w := range st.ProcessingWorks {
			if w.CustomerID == c.ID {
				total = total.Add(w.Value())
			}
		}
	default:
		for _, inv := range c.Invoices {
			total = total.Add(inv.Total)
		}
	}
	return total
}

// Balance is invoiced minus paid. Positive means money is still owed.
func Balance(st *models.State, role models.Role, c models.Customer) decimal.Decimal {
	return Invoiced(st, role, c).Sub(c.Paid())
}
