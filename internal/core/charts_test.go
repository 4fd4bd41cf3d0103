package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func tx(date string, typ TransactionType, amount string) Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return Transaction{Date: d, Type: typ, Amount: decimal.RequireFromString(amount)}
}

func TestBucketTransactions(t *testing.T) {
	points := BucketTransactions([]Transaction{
		tx("2025-08-05", TransactionExpense, "12.50"),
		tx("2025-08-01", TransactionIncome, "100"),
		tx("2025-08-05", TransactionExpense, "7.50"),
		tx("2025-08-03", TransactionIncome, "40"),
	})

	if len(points) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(points))
	}
	// Sorted ascending by date string, one bucket per day with activity.
	if points[0].Date != "2025-08-01" || points[1].Date != "2025-08-03" || points[2].Date != "2025-08-05" {
		t.Fatalf("unexpected order: %v %v %v", points[0].Date, points[1].Date, points[2].Date)
	}
	if !points[2].Expense.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("expected expense 20, got %s", points[2].Expense)
	}
	if !points[0].Income.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("expected income 100, got %s", points[0].Income)
	}
}

func TestBucketExercises(t *testing.T) {
	d1, _ := time.Parse("2006-01-02", "2025-08-10")
	d2, _ := time.Parse("2006-01-02", "2025-08-12")
	points := BucketExercises([]Exercise{
		{Date: d2, Duration: 20, Calories: 150},
		{Date: d1, Duration: 30, Calories: 200},
		{Date: d1, Duration: 15, Calories: 100},
	})

	if len(points) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(points))
	}
	if points[0].Date != "2025-08-10" || points[0].Duration != 45 || points[0].Calories != 300 {
		t.Fatalf("unexpected first bucket: %+v", points[0])
	}
}

func TestSummariseHabits(t *testing.T) {
	habits := []Habit{
		{Name: "Read", Streak: 4, Completions: []HabitCompletion{{}, {}, {}}},
		{Name: "Run", Streak: 0},
	}
	points := SummariseHabits(habits)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Name != "Read" || points[0].Completions != 3 || points[0].Streak != 4 {
		t.Fatalf("unexpected point: %+v", points[0])
	}
}
