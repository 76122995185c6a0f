package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/factory/internal/domain/models"
)

// AddExpense validates and books an outflow.
func AddExpense(st *models.State, e models.Expense) error {
	if strings.TrimSpace(e.Description) == "" {
		return &models.ValidationError{Field: "description", Reason: "required"}
	}
	if !e.Amount.IsPositive() {
		return &models.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if _, err := models.ParseExpenseCategory(string(e.Category)); err != nil {
		return &models.ValidationError{Field: "category", Reason: err.Error()}
	}
	if st.ExpenseIndex(e.ID) >= 0 {
		return &models.ValidationError{Field: "id", Reason: "duplicate expense " + e.ID}
	}
	st.Expenses = append(st.Expenses, e)
	return nil
}

// RemoveExpense deletes an expense.
func RemoveExpense(st *models.State, id string) error {
	idx := st.ExpenseIndex(id)
	if idx < 0 {
		return &models.NotFoundError{Entity: "expense", ID: id}
	}
	st.Expenses = append(st.Expenses[:idx], st.Expenses[idx+1:]...)
	return nil
}

// ExpenseTotals sums expenses overall and per category.
func ExpenseTotals(expenses []models.Expense) (decimal.Decimal, map[models.ExpenseCategory]decimal.Decimal) {
	total := decimal.Zero
	byCategory := map[models.ExpenseCategory]decimal.Decimal{}
	for _, e := range expenses {
		total = total.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}
	return total, byCategory
}
