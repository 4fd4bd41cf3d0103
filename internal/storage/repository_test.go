package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productiv/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedUser(t *testing.T, repo *SQLiteRepository, email string) core.User {
	t.Helper()

	u := core.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
	}
	require.NoError(t, repo.CreateUser(context.Background(), &u))
	return u
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	seedUser(t, repo, "dup@example.com")

	u := core.User{Name: "Other", Email: "dup@example.com", PasswordHash: "y"}
	err := repo.CreateUser(context.Background(), &u)
	assert.ErrorIs(t, err, core.ErrEmailTaken)
}

func TestUpdateBalances(t *testing.T) {
	repo := newTestRepo(t)
	u := seedUser(t, repo, "bal@example.com")
	ctx := context.Background()

	cash := decimal.NewFromInt(120)
	bank := decimal.NewFromInt(880)
	require.NoError(t, repo.UpdateBalances(ctx, u.ID, cash, bank))

	got, err := repo.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.CashBalance.Equal(cash))
	assert.True(t, got.BankBalance.Equal(bank))

	err = repo.UpdateBalances(ctx, "missing", cash, bank)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestTransactionLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	u := seedUser(t, repo, "tx@example.com")
	ctx := context.Background()

	tx := core.Transaction{
		UserID:      u.ID,
		Amount:      decimal.NewFromFloat(42.50),
		Type:        core.TransactionExpense,
		Category:    "food",
		Description: "groceries",
		Date:        time.Now(),
	}
	require.NoError(t, repo.CreateTransaction(ctx, &tx))
	require.NotEmpty(t, tx.ID)

	got, err := repo.GetTransaction(ctx, u.ID, tx.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(tx.Amount))
	assert.Equal(t, core.TransactionExpense, got.Type)

	got.Description = "weekly groceries"
	require.NoError(t, repo.UpdateTransaction(ctx, &got))

	list, err := repo.ListTransactions(ctx, u.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "weekly groceries", list[0].Description)

	require.NoError(t, repo.DeleteTransaction(ctx, u.ID, tx.ID))
	_, err = repo.GetTransaction(ctx, u.ID, tx.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestListTransactionsRange(t *testing.T) {
	repo := newTestRepo(t)
	u := seedUser(t, repo, "range@example.com")
	ctx := context.Background()
	now := time.Now()

	for _, age := range []time.Duration{0, 48 * time.Hour, 30 * 24 * time.Hour} {
		tx := core.Transaction{
			UserID: u.ID,
			Amount: decimal.NewFromInt(10),
			Type:   core.TransactionExpense,
			Date:   now.Add(-age),
		}
		require.NoError(t, repo.CreateTransaction(ctx, &tx))
	}

	from := now.Add(-7 * 24 * time.Hour)
	list, err := repo.ListTransactions(ctx, u.ID, &from, nil)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// Most recent first.
	require.True(t, len(list) >= 2)
	assert.True(t, !list[0].Date.Before(list[1].Date))
}

func TestSumExpensesByCategory(t *testing.T) {
	repo := newTestRepo(t)
	u := seedUser(t, repo, "sum@example.com")
	ctx := context.Background()
	now := time.Now()

	seed := []struct {
		amount   string
		txType   core.TransactionType
		category string
	}{
		{"10.10", core.TransactionExpense, "food"},
		{"5.25", core.TransactionExpense, "food"},
		{"99.00", core.TransactionExpense, "rent"},
		{"50.00", core.TransactionIncome, "food"},
	}
	for _, s := range seed {
		amt, err := decimal.NewFromString(s.amount)
		require.NoError(t, err)
		tx := core.Transaction{
			UserID:   u.ID,
			Amount:   amt,
			Type:     s.txType,
			Category: s.category,
			Date:     now,
		}
		require.NoError(t, repo.CreateTransaction(ctx, &tx))
	}

	sum, err := repo.SumExpensesByCategory(ctx, u.ID, "food",
		now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "15.35", sum.String())
}

func TestHabitCompletions(t *testing.T) {
	repo := newTestRepo(t)
	u := seedUser(t, repo, "habit@example.com")
	ctx := context.Background()

	h := core.Habit{UserID: u.ID, Name: "Read"}
	require.NoError(t, repo.CreateHabit(ctx, &h))
	assert.Equal(t, "daily", h.Frequency)

	now := time.Now()
	for _, d := range []time.Time{now, now.Add(-24 * time.Hour)} {
		c := core.HabitCompletion{HabitID: h.ID, Date: d}
		require.NoError(t, repo.CreateCompletion(ctx, &c))
	}

	start, end := core.DayWindow(now)
	n, err := repo.CountCompletionsInWindow(ctx, h.ID, start, end)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	habits, err := repo.ListHabits(ctx, u.ID, 30)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Len(t, habits[0].Completions, 2)
	// Newest completion first.
	assert.True(t, !habits[0].Completions[0].Date.Before(habits[0].Completions[1].Date))

	require.NoError(t, repo.UpdateStreak(ctx, h.ID, 2))
	got, err := repo.GetHabit(ctx, u.ID, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Streak)
}

func TestGoalWithOKRs(t *testing.T) {
	repo := newTestRepo(t)
	u := seedUser(t, repo, "goal@example.com")
	ctx := context.Background()

	target := decimal.NewFromInt(5000)
	g := core.Goal{
		UserID:      u.ID,
		Title:       "Emergency fund",
		Priority:    "high",
		Timeframe:   "year",
		TargetValue: &target,
	}
	require.NoError(t, repo.CreateGoal(ctx, &g))
	assert.Equal(t, core.GoalActive, g.Status)

	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO okrs (id, goal_id, objective, progress) VALUES (?, ?, ?, ?)`,
		"okr-1", g.ID, "Save 1000 per quarter", 40)
	require.NoError(t, err)

	got, err := repo.GetGoal(ctx, u.ID, g.ID)
	require.NoError(t, err)
	require.Len(t, got.OKRs, 1)
	assert.Equal(t, "Save 1000 per quarter", got.OKRs[0].Objective)
	require.NotNil(t, got.TargetValue)
	assert.True(t, got.TargetValue.Equal(target))
	assert.Nil(t, got.CurrentValue)
}

func TestUserScoping(t *testing.T) {
	repo := newTestRepo(t)
	owner := seedUser(t, repo, "owner@example.com")
	other := seedUser(t, repo, "other@example.com")
	ctx := context.Background()

	p := core.Priority{UserID: owner.ID, Title: "Ship release"}
	require.NoError(t, repo.CreatePriority(ctx, &p))

	_, err := repo.GetPriority(ctx, other.ID, p.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = repo.DeletePriority(ctx, other.ID, p.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	list, err := repo.ListPriorities(ctx, other.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBudgetCategorySpent(t *testing.T) {
	repo := newTestRepo(t)
	u := seedUser(t, repo, "budget@example.com")
	ctx := context.Background()

	b := core.BudgetCategory{
		UserID: u.ID,
		Name:   "Groceries",
		Budget: decimal.NewFromInt(400),
	}
	require.NoError(t, repo.CreateBudgetCategory(ctx, &b))

	require.NoError(t, repo.UpdateSpent(ctx, u.ID, b.ID, decimal.NewFromFloat(123.45)))

	got, err := repo.GetBudgetCategory(ctx, u.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "123.45", got.Spent.String())
}

func TestWeeklyReviewOrder(t *testing.T) {
	repo := newTestRepo(t)
	u := seedUser(t, repo, "review@example.com")
	ctx := context.Background()

	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local)
	for _, weeksAgo := range []int{1, 0, 2} {
		start := monday.AddDate(0, 0, -7*weeksAgo)
		w := core.WeeklyReview{
			UserID:       u.ID,
			WeekStart:    start,
			WeekEnd:      start.AddDate(0, 0, 6),
			Achievements: "shipped things",
		}
		require.NoError(t, repo.CreateWeeklyReview(ctx, &w))
	}

	reviews, err := repo.ListWeeklyReviews(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.True(t, reviews[0].WeekStart.After(reviews[1].WeekStart))
	assert.True(t, reviews[1].WeekStart.After(reviews[2].WeekStart))
}
