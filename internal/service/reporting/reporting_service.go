package reporting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/factory/internal/domain/models"
	"github.com/mamadbah2/factory/internal/ledger"
	repo "github.com/mamadbah2/factory/internal/repository/sheets"
)

const dateLayout = "2006-01-02"

// StateSource hands out private copies of the factory state.
type StateSource interface {
	Snapshot() *models.State
}

// Service builds summaries of the factory state and exports them.
type Service struct {
	source StateSource
	sheets repo.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance. sheets may be nil when
// export is not configured.
func NewService(source StateSource, sheets repo.Repository, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		source: source,
		sheets: sheets,
		logger: logger,
		now:    func() time.Time { return time.Now().In(loc) },
	}
}

// ModelLine is one model's counters.
type ModelLine struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	InProduction int    `json:"inProduction"`
	Finished     int    `json:"finished"`
}

// BalanceLine is one account's totals.
type BalanceLine struct {
	Role     models.Role     `json:"role"`
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Invoiced decimal.Decimal `json:"invoiced"`
	Paid     decimal.Decimal `json:"paid"`
	Balance  decimal.Decimal `json:"balance"`
}

// RoleTotal sums the balances of one role.
type RoleTotal struct {
	Role     models.Role     `json:"role"`
	Invoiced decimal.Decimal `json:"invoiced"`
	Paid     decimal.Decimal `json:"paid"`
	Balance  decimal.Decimal `json:"balance"`
}

// CategoryTotal is the spend in one expense category.
type CategoryTotal struct {
	Category models.ExpenseCategory `json:"category"`
	Amount   decimal.Decimal        `json:"amount"`
}

// Summary is a point-in-time view of stock, counters and money.
type Summary struct {
	Date          string                 `json:"date"`
	Stocks        []models.RawStockEntry `json:"stocks"`
	RawTotal      int                    `json:"rawTotal"`
	Models        []ModelLine            `json:"models"`
	InProduction  int                    `json:"inProduction"`
	Finished      int                    `json:"finished"`
	Balances      []BalanceLine          `json:"balances"`
	RoleTotals    []RoleTotal            `json:"roleTotals"`
	Expenses      []CategoryTotal        `json:"expenses"`
	ExpenseTotal  decimal.Decimal        `json:"expenseTotal"`
	Discrepancies []ledger.Discrepancy   `json:"discrepancies"`
}

// Summary computes the current summary.
func (s *Service) Summary() Summary {
	st := s.source.Snapshot()
	sum := Summary{
		Date:   s.now().Format(dateLayout),
		Stocks: ledger.NewStockTable(&st.Stocks).Rows(),
	}

	for _, row := range sum.Stocks {
		sum.RawTotal += row.Count
	}

	for _, m := range st.Models {
		sum.Models = append(sum.Models, ModelLine{
			ID:           m.ID,
			Name:         m.Name,
			Code:         m.Code,
			InProduction: m.InProduction(),
			Finished:     m.Finished(),
		})
		sum.InProduction += m.InProduction()
		sum.Finished += m.Finished()
	}

	for _, role := range models.Roles {
		total := RoleTotal{Role: role, Invoiced: decimal.Zero, Paid: decimal.Zero, Balance: decimal.Zero}
		for _, c := range *st.Customers(role) {
			line := BalanceLine{
				Role:     role,
				ID:       c.ID,
				Name:     c.Name,
				Invoiced: ledger.Invoiced(st, role, c),
				Paid:     c.Paid(),
			}
			line.Balance = line.Invoiced.Sub(line.Paid)
			sum.Balances = append(sum.Balances, line)

			total.Invoiced = total.Invoiced.Add(line.Invoiced)
			total.Paid = total.Paid.Add(line.Paid)
			total.Balance = total.Balance.Add(line.Balance)
		}
		sum.RoleTotals = append(sum.RoleTotals, total)
	}

	var byCategory map[models.ExpenseCategory]decimal.Decimal
	sum.ExpenseTotal, byCategory = ledger.ExpenseTotals(st.Expenses)
	for category, amount := range byCategory {
		sum.Expenses = append(sum.Expenses, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(sum.Expenses, func(i, j int) bool {
		return sum.Expenses[i].Amount.GreaterThan(sum.Expenses[j].Amount)
	})

	sum.Discrepancies = ledger.CheckConservation(st)
	if len(sum.Discrepancies) > 0 {
		s.logger.Warn("stock conservation broken", zap.Int("rows", len(sum.Discrepancies)))
	}
	return sum
}

// Audit returns the stock rows whose count the warehouse log and machine
// work do not explain.
func (s *Service) Audit() []ledger.Discrepancy {
	return ledger.CheckConservation(s.source.Snapshot())
}
