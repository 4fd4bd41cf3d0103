package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
)

const (
	AccountCash Account = "cash"
	AccountBank Account = "bank"
)

type (
	TransactionType string
	GoalStatus      string
	Account         string

	User struct {
		ID                string          `json:"id"`
		Name              string          `json:"name"`
		Email             string          `json:"email"`
		PasswordHash      string          `json:"-"`
		StartingBalance   decimal.Decimal `json:"startingBalance"`
		CashBalance       decimal.Decimal `json:"cashBalance"`
		BankBalance       decimal.Decimal `json:"bankBalance"`
		MonthlyBudget     decimal.Decimal `json:"monthlyBudget"`
		DiscoverConnected bool            `json:"discoverConnected"`
		DiscoverLastSync  *time.Time      `json:"discoverLastSync"`
		CreatedAt         time.Time       `json:"createdAt"`
	}

	Transaction struct {
		ID          string          `json:"id"`
		UserID      string          `json:"userId"`
		Amount      decimal.Decimal `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        time.Time       `json:"date"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	Habit struct {
		ID          string            `json:"id"`
		UserID      string            `json:"userId"`
		Name        string            `json:"name"`
		Description string            `json:"description"`
		Frequency   string            `json:"frequency"`
		Streak      int               `json:"streak"`
		Completions []HabitCompletion `json:"completions,omitempty"`
		CreatedAt   time.Time         `json:"createdAt"`
	}

	HabitCompletion struct {
		ID      string    `json:"id"`
		HabitID string    `json:"habitId"`
		Date    time.Time `json:"date"`
	}

	Goal struct {
		ID           string           `json:"id"`
		UserID       string           `json:"userId"`
		Title        string           `json:"title"`
		Description  string           `json:"description"`
		TargetDate   *time.Time       `json:"targetDate"`
		Status       GoalStatus       `json:"status"`
		Progress     int              `json:"progress"`
		Priority     string           `json:"priority"`
		Timeframe    string           `json:"timeframe"`
		CurrentValue *decimal.Decimal `json:"currentValue"`
		TargetValue  *decimal.Decimal `json:"targetValue"`
		OKRs         []OKR            `json:"okrs"`
		CreatedAt    time.Time        `json:"createdAt"`
	}

	// OKR is a read-only sub-objective returned alongside its goal.
	OKR struct {
		ID        string `json:"id"`
		GoalID    string `json:"goalId"`
		Objective string `json:"objective"`
		Progress  int    `json:"progress"`
	}

	Priority struct {
		ID          string     `json:"id"`
		UserID      string     `json:"userId"`
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Completed   bool       `json:"completed"`
		DueDate     *time.Time `json:"dueDate"`
		CreatedAt   time.Time  `json:"createdAt"`
	}

	Exercise struct {
		ID        string    `json:"id"`
		UserID    string    `json:"userId"`
		Name      string    `json:"name"`
		Type      string    `json:"type"`
		Duration  int       `json:"duration"`
		Calories  int       `json:"calories"`
		Date      time.Time `json:"date"`
		CreatedAt time.Time `json:"createdAt"`
	}

	Contact struct {
		ID        string    `json:"id"`
		UserID    string    `json:"userId"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Phone     string    `json:"phone"`
		Company   string    `json:"company"`
		Notes     string    `json:"notes"`
		CreatedAt time.Time `json:"createdAt"`
	}

	WeeklyReview struct {
		ID           string    `json:"id"`
		UserID       string    `json:"userId"`
		WeekStart    time.Time `json:"weekStart"`
		WeekEnd      time.Time `json:"weekEnd"`
		Achievements string    `json:"achievements"`
		Challenges   string    `json:"challenges"`
		Goals        string    `json:"goals"`
		Notes        string    `json:"notes"`
		CreatedAt    time.Time `json:"createdAt"`
	}

	// BudgetCategory carries a cached spent total; the authoritative value
	// is recomputed from expense transactions of the current month.
	BudgetCategory struct {
		ID        string          `json:"id"`
		UserID    string          `json:"userId"`
		Name      string          `json:"name"`
		Budget    decimal.Decimal `json:"budget"`
		Spent     decimal.Decimal `json:"spent"`
		CreatedAt time.Time       `json:"createdAt"`
	}
)

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyCompleted  = errors.New("already completed today")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("cannot transfer to the same account")
	ErrNotConnected      = errors.New("discover account not connected")
	ErrEmailTaken        = errors.New("email already registered")
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

func (s GoalStatus) Valid() bool {
	return s == GoalActive || s == GoalCompleted || s == GoalPaused
}

func (a Account) Valid() bool {
	return a == AccountCash || a == AccountBank
}
