package http

import (
	"net/mail"
	"time"

	"github.com/shopspring/decimal"

	"productiv/internal/core"
)

// Request bodies validate themselves and report per-field problems so the
// client can highlight the offending inputs.

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *registerRequest) Validate() []FieldError {
	var errs []FieldError
	if req.Name == "" {
		errs = append(errs, FieldError{"name", "Name is required"})
	}
	if req.Email == "" {
		errs = append(errs, FieldError{"email", "Email is required"})
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs = append(errs, FieldError{"email", "Email is not valid"})
	}
	if len(req.Password) < 8 {
		errs = append(errs, FieldError{"password", "Password must be at least 8 characters"})
	}
	return errs
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *loginRequest) Validate() []FieldError {
	var errs []FieldError
	if req.Email == "" {
		errs = append(errs, FieldError{"email", "Email is required"})
	}
	if req.Password == "" {
		errs = append(errs, FieldError{"password", "Password is required"})
	}
	return errs
}

type transactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func (req *transactionRequest) Validate() []FieldError {
	var errs []FieldError
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, FieldError{"amount", "Amount must be greater than zero"})
	}
	if !core.TransactionType(req.Type).Valid() {
		errs = append(errs, FieldError{"type", "Type must be income or expense"})
	}
	if _, err := parseDate(req.Date); err != nil {
		errs = append(errs, FieldError{"date", "Date is not valid"})
	}
	return errs
}

type habitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
}

func (req *habitRequest) Validate() []FieldError {
	var errs []FieldError
	if req.Name == "" {
		errs = append(errs, FieldError{"name", "Name is required"})
	}
	switch req.Frequency {
	case "", "daily", "weekly", "monthly":
	default:
		errs = append(errs, FieldError{"frequency", "Frequency must be daily, weekly or monthly"})
	}
	return errs
}

type goalRequest struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	TargetDate   string           `json:"targetDate"`
	Status       string           `json:"status"`
	Progress     int              `json:"progress"`
	Priority     string           `json:"priority"`
	Timeframe    string           `json:"timeframe"`
	CurrentValue *decimal.Decimal `json:"currentValue"`
	TargetValue  *decimal.Decimal `json:"targetValue"`
}

func (req *goalRequest) Validate() []FieldError {
	var errs []FieldError
	if req.Title == "" {
		errs = append(errs, FieldError{"title", "Title is required"})
	}
	if req.Status != "" && !core.GoalStatus(req.Status).Valid() {
		errs = append(errs, FieldError{"status", "Status must be active, completed or paused"})
	}
	if req.Progress < 0 || req.Progress > 100 {
		errs = append(errs, FieldError{"progress", "Progress must be between 0 and 100"})
	}
	if req.TargetDate != "" {
		if _, err := parseDate(req.TargetDate); err != nil {
			errs = append(errs, FieldError{"targetDate", "Target date is not valid"})
		}
	}
	return errs
}

type priorityRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	DueDate     string `json:"dueDate"`
}

func (req *priorityRequest) Validate() []FieldError {
	var errs []FieldError
	if req.Title == "" {
		errs = append(errs, FieldError{"title", "Title is required"})
	}
	if req.DueDate != "" {
		if _, err := parseDate(req.DueDate); err != nil {
			errs = append(errs, FieldError{"dueDate", "Due date is not valid"})
		}
	}
	return errs
}

type exerciseRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Duration int    `json:"duration"`
	Calories int    `json:"calories"`
	Date     string `json:"date"`
}

func (req *exerciseRequest) Validate() []FieldError {
	var errs []FieldError
	if req.Name == "" {
		errs = append(errs, FieldError{"name", "Name is required"})
	}
	if req.Duration <= 0 {
		errs = append(errs, FieldError{"duration", "Duration must be greater than zero"})
	}
	if req.Calories < 0 {
		errs = append(errs, FieldError{"calories", "Calories cannot be negative"})
	}
	if _, err := parseDate(req.Date); err != nil {
		errs = append(errs, FieldError{"date", "Date is not valid"})
	}
	return errs
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
}

func (req *contactRequest) Validate() []FieldError {
	var errs []FieldError
	if req.Name == "" {
		errs = append(errs, FieldError{"name", "Name is required"})
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			errs = append(errs, FieldError{"email", "Email is not valid"})
		}
	}
	return errs
}

type weeklyReviewRequest struct {
	WeekStart    string `json:"weekStart"`
	WeekEnd      string `json:"weekEnd"`
	Achievements string `json:"achievements"`
	Challenges   string `json:"challenges"`
	Goals        string `json:"goals"`
	Notes        string `json:"notes"`
}

func (req *weeklyReviewRequest) Validate() []FieldError {
	var errs []FieldError
	start, startErr := parseDate(req.WeekStart)
	if startErr != nil {
		errs = append(errs, FieldError{"weekStart", "Week start is not valid"})
	}
	end, endErr := parseDate(req.WeekEnd)
	if endErr != nil {
		errs = append(errs, FieldError{"weekEnd", "Week end is not valid"})
	}
	if startErr == nil && endErr == nil && !end.After(start) {
		errs = append(errs, FieldError{"weekEnd", "Week end must be after week start"})
	}
	return errs
}

type budgetCategoryRequest struct {
	Name   string          `json:"name"`
	Budget decimal.Decimal `json:"budget"`
}

func (req *budgetCategoryRequest) Validate() []FieldError {
	var errs []FieldError
	if req.Name == "" {
		errs = append(errs, FieldError{"name", "Name is required"})
	}
	if req.Budget.IsNegative() {
		errs = append(errs, FieldError{"budget", "Budget cannot be negative"})
	}
	return errs
}

type balancesRequest struct {
	CashBalance *decimal.Decimal `json:"cashBalance"`
	BankBalance *decimal.Decimal `json:"bankBalance"`
}

func (req *balancesRequest) Validate() []FieldError {
	if req.CashBalance == nil && req.BankBalance == nil {
		return []FieldError{{"cashBalance", "At least one balance is required"}}
	}
	return nil
}

type monthlyBudgetRequest struct {
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
}

func (req *monthlyBudgetRequest) Validate() []FieldError {
	if req.MonthlyBudget.IsNegative() {
		return []FieldError{{"monthlyBudget", "Monthly budget cannot be negative"}}
	}
	return nil
}

type startingBalanceRequest struct {
	StartingBalance decimal.Decimal `json:"startingBalance"`
}

type transferRequest struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
}

func (req *transferRequest) Validate() []FieldError {
	var errs []FieldError
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, FieldError{"amount", "Amount must be greater than zero"})
	}
	if !core.Account(req.From).Valid() {
		errs = append(errs, FieldError{"from", "From must be cash or bank"})
	}
	if !core.Account(req.To).Valid() {
		errs = append(errs, FieldError{"to", "To must be cash or bank"})
	}
	return errs
}

type importRow struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
}

type importRequest struct {
	Transactions []importRow `json:"transactions"`
}

func (req *importRequest) Validate() []FieldError {
	if len(req.Transactions) == 0 {
		return []FieldError{{"transactions", "Transactions are required"}}
	}
	var errs []FieldError
	for _, row := range req.Transactions {
		if row.Description == "" {
			errs = append(errs, FieldError{"description", "Description is required"})
			break
		}
		if _, err := parseDate(row.Date); err != nil {
			errs = append(errs, FieldError{"date", "Date is not valid"})
			break
		}
	}
	return errs
}

// parseDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates, the two
// shapes clients actually send.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil
	}
	return &t
}
