package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"productiv/internal/core"
)

func (r *SQLiteRepository) CreateBudgetCategory(ctx context.Context, b *core.BudgetCategory) error {
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budget_categories (id, user_id, name, budget, spent, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.Name, b.Budget.String(), b.Spent.String(), toUnix(b.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert budget category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListBudgetCategories(ctx context.Context, userID string) ([]core.BudgetCategory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, budget, spent, created_at
		FROM budget_categories WHERE user_id = ? ORDER BY name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list budget categories: %w", err)
	}
	defer rows.Close()

	categories := []core.BudgetCategory{}
	for rows.Next() {
		b, err := scanBudgetCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, b)
	}
	return categories, rows.Err()
}

func (r *SQLiteRepository) GetBudgetCategory(ctx context.Context, userID, id string) (core.BudgetCategory, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, budget, spent, created_at
		FROM budget_categories WHERE id = ? AND user_id = ?`, id, userID)

	b, err := scanBudgetCategory(row)
	if err != nil {
		if isNoRows(err) {
			return core.BudgetCategory{}, core.ErrNotFound
		}
		return core.BudgetCategory{}, err
	}
	return b, nil
}

func (r *SQLiteRepository) UpdateBudgetCategory(ctx context.Context, b *core.BudgetCategory) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE budget_categories SET name = ?, budget = ?, spent = ?
		WHERE id = ? AND user_id = ?`,
		b.Name, b.Budget.String(), b.Spent.String(), b.ID, b.UserID)
	if err != nil {
		return fmt.Errorf("update budget category: %w", err)
	}
	return requireRow(res)
}

// UpdateSpent refreshes only the cached spent total, used by the
// recompute path after transaction writes.
func (r *SQLiteRepository) UpdateSpent(ctx context.Context, userID, id string, spent decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE budget_categories SET spent = ? WHERE id = ? AND user_id = ?`,
		spent.String(), id, userID)
	if err != nil {
		return fmt.Errorf("update spent: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteBudgetCategory(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budget_categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete budget category: %w", err)
	}
	return requireRow(res)
}

func scanBudgetCategory(row rowScanner) (core.BudgetCategory, error) {
	var (
		b             core.BudgetCategory
		budget, spent string
		created       int64
	)
	if err := row.Scan(&b.ID, &b.UserID, &b.Name, &budget, &spent, &created); err != nil {
		return core.BudgetCategory{}, fmt.Errorf("scan budget category: %w", err)
	}

	var err error
	if b.Budget, err = decimal.NewFromString(budget); err != nil {
		return core.BudgetCategory{}, fmt.Errorf("parse budget: %w", err)
	}
	if b.Spent, err = decimal.NewFromString(spent); err != nil {
		return core.BudgetCategory{}, fmt.Errorf("parse spent: %w", err)
	}
	b.CreatedAt = fromUnix(created)
	return b, nil
}
