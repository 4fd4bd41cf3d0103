package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPerformancePercent(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
	}
	for _, tc := range cases {
		if got := PerformancePercent(tc.completed, tc.total); got != tc.want {
			t.Errorf("PerformancePercent(%d, %d) = %d, want %d", tc.completed, tc.total, got, tc.want)
		}
	}
}

func TestBudgetPercentGuardsZeroBudget(t *testing.T) {
	spent := decimal.RequireFromString("100")
	if got := BudgetPercent(spent, decimal.Zero); got != 0 {
		t.Fatalf("zero budget: got %d, want 0", got)
	}
	if got := BudgetPercent(spent, decimal.RequireFromString("400")); got != 25 {
		t.Fatalf("got %d, want 25", got)
	}
	if got := BudgetPercent(decimal.RequireFromString("333"), decimal.RequireFromString("1000")); got != 33 {
		t.Fatalf("got %d, want 33", got)
	}
}

func TestBalance(t *testing.T) {
	got := Balance(decimal.RequireFromString("150.25"), decimal.RequireFromString("50.25"))
	if !got.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("got %s, want 100", got)
	}
}
