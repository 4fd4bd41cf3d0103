package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TransactionPoint is a per-day income/expense sum for charting.
type TransactionPoint struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// HabitPoint summarises one habit over the charted window.
type HabitPoint struct {
	Name        string `json:"name"`
	Completions int    `json:"completions"`
	Streak      int    `json:"streak"`
}

// ExercisePoint is a per-day duration/calorie sum for charting.
type ExercisePoint struct {
	Date     string `json:"date"`
	Duration int    `json:"duration"`
	Calories int    `json:"calories"`
}

const dateKeyLayout = "2006-01-02"

// BucketTransactions aggregates transactions into one point per calendar day
// with activity, sorted ascending by date string. Missing days are not
// interpolated.
func BucketTransactions(transactions []Transaction) []TransactionPoint {
	byDay := make(map[string]*TransactionPoint)
	for _, t := range transactions {
		key := t.Date.Format(dateKeyLayout)
		p, ok := byDay[key]
		if !ok {
			p = &TransactionPoint{Date: key}
			byDay[key] = p
		}
		if t.Type == TransactionIncome {
			p.Income = p.Income.Add(t.Amount)
		} else {
			p.Expense = p.Expense.Add(t.Amount)
		}
	}
	return sortPoints(byDay)
}

// BucketExercises aggregates exercises into one point per calendar day with
// activity, sorted ascending by date string.
func BucketExercises(exercises []Exercise) []ExercisePoint {
	byDay := make(map[string]*ExercisePoint)
	for _, e := range exercises {
		key := e.Date.Format(dateKeyLayout)
		p, ok := byDay[key]
		if !ok {
			p = &ExercisePoint{Date: key}
			byDay[key] = p
		}
		p.Duration += e.Duration
		p.Calories += e.Calories
	}
	return sortPoints(byDay)
}

// SummariseHabits maps habits to name, in-window completion count, and the
// cached streak.
func SummariseHabits(habits []Habit) []HabitPoint {
	points := make([]HabitPoint, len(habits))
	for i, h := range habits {
		points[i] = HabitPoint{
			Name:        h.Name,
			Completions: len(h.Completions),
			Streak:      h.Streak,
		}
	}
	return points
}

func sortPoints[T any](byDay map[string]*T) []T {
	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	points := make([]T, 0, len(keys))
	for _, k := range keys {
		points = append(points, *byDay[k])
	}
	return points
}
