package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is one of the fixed factory cost categories.
type ExpenseCategory string

const (
	ExpenseBags          ExpenseCategory = "اكياس"
	ExpenseSacks         ExpenseCategory = "شكاير"
	ExpenseRopes         ExpenseCategory = "احبال"
	ExpenseZippers       ExpenseCategory = "سوسته"
	ExpenseElastic       ExpenseCategory = "استك"
	ExpenseThread        ExpenseCategory = "فتل"
	ExpenseButtons       ExpenseCategory = "زراير"
	ExpenseTransport     ExpenseCategory = "نقل (تروسيكل)"
	ExpenseElectricity   ExpenseCategory = "كهرباء"
	ExpensePressRepair   ExpenseCategory = "تصليح مكوه"
	ExpenseFinishRepair  ExpenseCategory = "تصليح تجهيز"
	ExpenseKnitterRepair ExpenseCategory = "تصليح مكن تريكو"
	ExpenseGlue          ExpenseCategory = "لزق"
	ExpenseSpools        ExpenseCategory = "بكر مزوي"
	ExpenseSalaries      ExpenseCategory = "رواتب"
	ExpenseRent          ExpenseCategory = "إيجار"
	ExpenseGeneral       ExpenseCategory = "عامة"
	ExpenseOther         ExpenseCategory = "أخرى"
)

// ExpenseCategories lists the categories in the order they are offered.
var ExpenseCategories = []ExpenseCategory{
	ExpenseBags, ExpenseSacks, ExpenseRopes, ExpenseZippers, ExpenseElastic,
	ExpenseThread, ExpenseButtons, ExpenseTransport, ExpenseElectricity,
	ExpensePressRepair, ExpenseFinishRepair, ExpenseKnitterRepair, ExpenseGlue,
	ExpenseSpools, ExpenseSalaries, ExpenseRent, ExpenseGeneral, ExpenseOther,
}

// ParseExpenseCategory validates a category label. Empty means general.
func ParseExpenseCategory(value string) (ExpenseCategory, error) {
	if value == "" {
		return ExpenseGeneral, nil
	}
	for _, c := range ExpenseCategories {
		if string(c) == value {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown expense category %q", value)
}

// Expense is an outflow with no inventory effect.
type Expense struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}
