// Package services holds the business rules between HTTP handlers and
// storage: streak maintenance, transfers, budget recomputes, dashboard
// aggregation and the simulated bank-sync flow.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"productiv/internal/amqp"
	"productiv/internal/core"
	"productiv/internal/storage"
)

// EventPublisher pushes transaction events to the async pipeline.
// A nil publisher disables publishing without disabling writes.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, id, userID, action string) error
}

// TransactionSummary accompanies every transaction listing.
type TransactionSummary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Balance       decimal.Decimal `json:"balance"`
}

type TransactionService struct {
	repo   *storage.SQLiteRepository
	events EventPublisher
	charts *ChartCache
}

func NewTransactionService(repo *storage.SQLiteRepository, events EventPublisher, charts *ChartCache) *TransactionService {
	return &TransactionService{repo: repo, events: events, charts: charts}
}

// List returns transactions newest first, optionally narrowed to one
// calendar month, together with income/expense totals for the result set.
func (s *TransactionService) List(ctx context.Context, userID string, month, year int) ([]core.Transaction, TransactionSummary, error) {
	var from, to *time.Time
	if year > 0 && month >= 1 && month <= 12 {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(0, 1, 0)
		from, to = &start, &end
	}

	transactions, err := s.repo.ListTransactions(ctx, userID, from, to)
	if err != nil {
		return nil, TransactionSummary{}, err
	}

	return transactions, summarise(transactions), nil
}

func (s *TransactionService) Create(ctx context.Context, t *core.Transaction) error {
	if err := s.repo.CreateTransaction(ctx, t); err != nil {
		return err
	}
	s.afterWrite(ctx, t.ID, t.UserID, amqp.ActionCreated)
	return nil
}

func (s *TransactionService) Update(ctx context.Context, t *core.Transaction) error {
	if err := s.repo.UpdateTransaction(ctx, t); err != nil {
		return err
	}
	s.afterWrite(ctx, t.ID, t.UserID, amqp.ActionUpdated)
	return nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteTransaction(ctx, userID, id); err != nil {
		return err
	}
	s.afterWrite(ctx, id, userID, amqp.ActionDeleted)
	return nil
}

func (s *TransactionService) afterWrite(ctx context.Context, id, userID, action string) {
	if s.charts != nil {
		s.charts.InvalidatePrefix(userID + ":")
	}
	if s.events == nil {
		return
	}
	if err := s.events.PublishTransactionEvent(ctx, id, userID, action); err != nil {
		// The write already committed; the worker's ticker will catch up.
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"error", err, "transaction_id", id, "action", action)
	}
}

func summarise(transactions []core.Transaction) TransactionSummary {
	var sum TransactionSummary
	for _, t := range transactions {
		if t.Type == core.TransactionIncome {
			sum.TotalIncome = sum.TotalIncome.Add(t.Amount)
		} else {
			sum.TotalExpenses = sum.TotalExpenses.Add(t.Amount)
		}
	}
	sum.Balance = sum.TotalIncome.Sub(sum.TotalExpenses)
	return sum
}
