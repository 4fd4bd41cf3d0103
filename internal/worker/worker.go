// Package worker keeps budget-category spent totals in step with
// transaction writes, driven by queue events with a ticker as backstop.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"productiv/internal/amqp"
	"productiv/internal/services"
	"productiv/internal/storage"
)

type SyncWorker struct {
	repo    *storage.SQLiteRepository
	budgets *services.BudgetService
}

func NewSyncWorker(repo *storage.SQLiteRepository, budgets *services.BudgetService) *SyncWorker {
	return &SyncWorker{repo: repo, budgets: budgets}
}

// HandleTransactionEvent recomputes spent totals for the user behind one
// queued event.
func (w *SyncWorker) HandleTransactionEvent(msg *amqp.TransactionEventMessage) error {
	ctx := context.Background()
	if err := w.budgets.RecomputeSpent(ctx, msg.UserID); err != nil {
		return fmt.Errorf("recompute budgets for user %s: %w", msg.UserID, err)
	}

	slog.InfoContext(ctx, "Recomputed budget totals",
		"user_id", msg.UserID,
		"transaction_id", msg.ID,
		"action", msg.Action)
	return nil
}

// RecomputeAll sweeps every user, catching anything a lost message missed.
func (w *SyncWorker) RecomputeAll(ctx context.Context) error {
	ids, err := w.repo.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	for _, id := range ids {
		if err := w.budgets.RecomputeSpent(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to recompute budgets", "error", err, "user_id", id)
		}
	}
	return nil
}
