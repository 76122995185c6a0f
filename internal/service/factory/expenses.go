package factory

import (
	"context"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/factory/internal/domain/models"
	"github.com/mamadbah2/factory/internal/ledger"
)

// ExpenseSummary totals expenses overall and per category.
type ExpenseSummary struct {
	Total      decimal.Decimal                            `json:"total"`
	ByCategory map[models.ExpenseCategory]decimal.Decimal `json:"byCategory"`
}

// AddExpense books an outflow.
func (s *Service) AddExpense(ctx context.Context, d ExpenseDraft) (models.Expense, error) {
	category, err := models.ParseExpenseCategory(d.Category)
	if err != nil {
		return models.Expense{}, &models.ValidationError{Field: "category", Reason: err.Error()}
	}
	e := models.Expense{
		ID:          s.newID(),
		Date:        s.dateOr(d.Date),
		Category:    category,
		Description: strings.TrimSpace(d.Description),
		Amount:      d.Amount,
	}
	if err := s.change(ctx, "expense.create", e.ID, func(st *models.State) error {
		return ledger.AddExpense(st, e)
	}); err != nil {
		return models.Expense{}, err
	}
	return e, nil
}

// DeleteExpense removes an expense.
func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	return s.change(ctx, "expense.delete", id, func(st *models.State) error {
		return ledger.RemoveExpense(st, id)
	})
}

// Expenses lists expenses, newest first.
func (s *Service) Expenses() []models.Expense {
	var out []models.Expense
	s.store.Read(func(st *models.State) {
		out = slices.Clone(st.Expenses)
	})
	slices.SortStableFunc(out, func(a, b models.Expense) int {
		return strings.Compare(b.Date, a.Date)
	})
	return out
}

// ExpenseSummary totals the expenses.
func (s *Service) ExpenseSummary() ExpenseSummary {
	var sum ExpenseSummary
	s.store.Read(func(st *models.State) {
		sum.Total, sum.ByCategory = ledger.ExpenseTotals(st.Expenses)
	})
	return sum
}
