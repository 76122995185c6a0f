package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/factory/internal/domain/models"
	"github.com/mamadbah2/factory/internal/service/factory"
)

// Accounts lists the accounts of a role with their totals.
func (h *FactoryHandler) Accounts(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	accounts := h.svc.Customers(role)
	if accounts == nil {
		accounts = []factory.Account{}
	}
	c.JSON(http.StatusOK, accounts)
}

// Account returns one account.
func (h *FactoryHandler) Account(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	a, err := h.svc.Customer(role, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// CreateAccount opens an account.
func (h *FactoryHandler) CreateAccount(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	var d factory.CustomerDraft
	if !bindJSON(c, h.logger, &d) {
		return
	}
	customer, err := h.svc.CreateCustomer(c.Request.Context(), role, d)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// UpdateAccount edits contact details.
func (h *FactoryHandler) UpdateAccount(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	var d factory.CustomerDraft
	if !bindJSON(c, h.logger, &d) {
		return
	}
	a, err := h.svc.UpdateCustomer(c.Request.Context(), role, c.Param("id"), d)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DeleteAccount removes an account and its records.
func (h *FactoryHandler) DeleteAccount(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	clamps, err := h.svc.DeleteCustomer(c.Request.Context(), role, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, clampsBody("deleted", c.Param("id"), clamps))
}

// DeleteAccounts removes several accounts of one role.
func (h *FactoryHandler) DeleteAccounts(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	var body factory.IDList
	if !bindJSON(c, h.logger, &body) {
		return
	}
	clamps, err := h.svc.DeleteCustomers(c.Request.Context(), role, body.IDs)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, clampsBody("deleted", body.IDs, clamps))
}

// AddPayment records a payment on an account.
func (h *FactoryHandler) AddPayment(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	var d factory.PaymentDraft
	if !bindJSON(c, h.logger, &d) {
		return
	}
	p, err := h.svc.AddPayment(c.Request.Context(), role, c.Param("id"), d)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// RemovePayment deletes a payment.
func (h *FactoryHandler) RemovePayment(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	if err := h.svc.RemovePayment(c.Request.Context(), role, c.Param("id"), c.Param("paymentId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateInvoice issues an invoice to a sales customer.
func (h *FactoryHandler) CreateInvoice(c *gin.Context) {
	var d factory.InvoiceDraft
	if !bindJSON(c, h.logger, &d) {
		return
	}
	inv, err := h.svc.CreateInvoice(c.Request.Context(), c.Param("id"), d)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// UpdateInvoice replaces an invoice.
func (h *FactoryHandler) UpdateInvoice(c *gin.Context) {
	var d factory.InvoiceDraft
	if !bindJSON(c, h.logger, &d) {
		return
	}
	inv, clamps, err := h.svc.UpdateInvoice(c.Request.Context(), c.Param("id"), c.Param("invoiceId"), d)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, clampsBody("invoice", inv, clamps))
}

// DeleteInvoice removes an invoice.
func (h *FactoryHandler) DeleteInvoice(c *gin.Context) {
	clamps, err := h.svc.DeleteInvoice(c.Request.Context(), c.Param("id"), c.Param("invoiceId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, clampsBody("deleted", c.Param("invoiceId"), clamps))
}

// Expenses lists expenses.
func (h *FactoryHandler) Expenses(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Expenses())
}

// ExpenseSummary totals expenses.
func (h *FactoryHandler) ExpenseSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ExpenseSummary())
}

// ExpenseCategories lists the accepted categories.
func (h *FactoryHandler) ExpenseCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.ExpenseCategories)
}

// AddExpense books an expense.
func (h *FactoryHandler) AddExpense(c *gin.Context) {
	var d factory.ExpenseDraft
	if !bindJSON(c, h.logger, &d) {
		return
	}
	e, err := h.svc.AddExpense(c.Request.Context(), d)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// DeleteExpense removes an expense.
func (h *FactoryHandler) DeleteExpense(c *gin.Context) {
	if err := h.svc.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
