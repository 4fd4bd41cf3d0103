package core

import "github.com/shopspring/decimal"

// PerformancePercent is the share of completed priorities, rounded to the
// nearest integer. Zero priorities yield 0, not a division by zero.
func PerformancePercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(completed)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).
		Round(0).IntPart())
}

// Balance is lifetime income minus lifetime expenses.
func Balance(totalIncome, totalExpenses decimal.Decimal) decimal.Decimal {
	return totalIncome.Sub(totalExpenses)
}

// BudgetPercent reports spent against budget as a rounded percentage.
// A zero or negative budget yields 0 so the response never carries NaN or
// infinity.
func BudgetPercent(spent, budget decimal.Decimal) int {
	if budget.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return int(spent.Div(budget).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}
