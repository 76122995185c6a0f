package reporting

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/factory/internal/domain/models"
)

var roleTitles = map[models.Role]string{
	models.RoleProducer:   "Producers",
	models.RoleContractor: "Contractors",
	models.RoleSales:      "Customers",
}

// StockText lists the raw stock table.
func StockText(sum Summary) string {
	if len(sum.Stocks) == 0 {
		return "Raw stock: empty."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Raw stock (%s): %d bags\n", sum.Date, sum.RawTotal)
	for _, row := range sum.Stocks {
		fmt.Fprintf(&b, "- %s %d %s: %d\n", row.Type.Name(), row.Size, row.Color, row.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ModelsText lists the model counters.
func ModelsText(sum Summary) string {
	if len(sum.Models) == 0 {
		return "Models: none registered."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Models (%s): %d in production, %d finished\n", sum.Date, sum.InProduction, sum.Finished)
	for _, m := range sum.Models {
		fmt.Fprintf(&b, "- %s %s: %d in production, %d finished\n", m.Code, m.Name, m.InProduction, m.Finished)
	}
	return strings.TrimRight(b.String(), "\n")
}

// BalancesText lists every account with a non-zero balance and the role totals.
func BalancesText(sum Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Balances (%s)\n", sum.Date)
	for _, total := range sum.RoleTotals {
		fmt.Fprintf(&b, "%s: %s\n", roleTitles[total.Role], total.Balance.StringFixed(2))
		for _, line := range sum.Balances {
			if line.Role != total.Role || line.Balance.IsZero() {
				continue
			}
			fmt.Fprintf(&b, "- %s: %s\n", line.Name, line.Balance.StringFixed(2))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// ExpensesText lists spend per category.
func ExpensesText(sum Summary) string {
	if len(sum.Expenses) == 0 {
		return "Expenses: none recorded."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Expenses: %s\n", sum.ExpenseTotal.StringFixed(2))
	for _, c := range sum.Expenses {
		fmt.Fprintf(&b, "- %s: %s\n", c.Category, c.Amount.StringFixed(2))
	}
	return strings.TrimRight(b.String(), "\n")
}

// SummaryText is the weekly report body.
func SummaryText(sum Summary) string {
	parts := []string{StockText(sum), ModelsText(sum), BalancesText(sum), ExpensesText(sum)}
	if n := len(sum.Discrepancies); n > 0 {
		parts = append(parts, fmt.Sprintf("Warning: %d stock rows do not match the warehouse log.", n))
	}
	return strings.Join(parts, "\n\n")
}
