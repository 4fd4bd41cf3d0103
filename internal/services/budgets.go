package services

import (
	"context"
	"fmt"
	"time"

	"productiv/internal/core"
	"productiv/internal/storage"
)

type BudgetService struct {
	repo *storage.SQLiteRepository
	now  func() time.Time
}

func NewBudgetService(repo *storage.SQLiteRepository) *BudgetService {
	return &BudgetService{repo: repo, now: time.Now}
}

// List returns the user's budget categories with spent recomputed from
// the current month's expense transactions and persisted back.
func (s *BudgetService) List(ctx context.Context, userID string) ([]core.BudgetCategory, error) {
	categories, err := s.repo.ListBudgetCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, to := monthWindow(s.now())
	for i := range categories {
		spent, err := s.repo.SumExpensesByCategory(ctx, userID, categories[i].Name, from, to)
		if err != nil {
			return nil, fmt.Errorf("recompute spent for %s: %w", categories[i].Name, err)
		}
		if !spent.Equal(categories[i].Spent) {
			if err := s.repo.UpdateSpent(ctx, userID, categories[i].ID, spent); err != nil {
				return nil, err
			}
		}
		categories[i].Spent = spent
	}
	return categories, nil
}

// RecomputeSpent refreshes the cached spent totals for one user. The
// sync worker calls this on every transaction event and on its ticker.
func (s *BudgetService) RecomputeSpent(ctx context.Context, userID string) error {
	_, err := s.List(ctx, userID)
	return err
}

// monthWindow returns [start of the month, start of the next), matching the
// exclusive upper bounds the storage range queries use.
func monthWindow(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 1, 0)
}
