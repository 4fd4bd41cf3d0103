package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"productiv/internal/core"
)

func (r *SQLiteRepository) CreateHabit(ctx context.Context, h *core.Habit) error {
	h.ID = uuid.NewString()
	h.CreatedAt = time.Now()
	if h.Frequency == "" {
		h.Frequency = "daily"
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habits (id, user_id, name, description, frequency, streak, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)`,
		h.ID, h.UserID, h.Name, h.Description, h.Frequency, toUnix(h.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert habit: %w", err)
	}
	return nil
}

// ListHabits returns the user's habits newest-first, each with its most
// recent completions attached (up to perHabitCompletions, newest-first).
func (r *SQLiteRepository) ListHabits(ctx context.Context, userID string, perHabitCompletions int) ([]core.Habit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, description, frequency, streak, created_at
		FROM habits WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	habits := []core.Habit{}
	for rows.Next() {
		var (
			h         core.Habit
			createdAt int64
		)
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.Description,
			&h.Frequency, &h.Streak, &createdAt); err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		h.CreatedAt = fromUnix(createdAt)
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range habits {
		completions, err := r.ListCompletions(ctx, habits[i].ID, perHabitCompletions)
		if err != nil {
			return nil, err
		}
		habits[i].Completions = completions
	}
	return habits, nil
}

func (r *SQLiteRepository) GetHabit(ctx context.Context, userID, id string) (core.Habit, error) {
	var (
		h         core.Habit
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, description, frequency, streak, created_at
		FROM habits WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &h.Frequency, &h.Streak, &createdAt)
	if err != nil {
		if isNoRows(err) {
			return core.Habit{}, core.ErrNotFound
		}
		return core.Habit{}, fmt.Errorf("get habit: %w", err)
	}
	h.CreatedAt = fromUnix(createdAt)
	return h, nil
}

func (r *SQLiteRepository) UpdateHabit(ctx context.Context, h *core.Habit) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE habits SET name = ?, description = ?, frequency = ?
		WHERE id = ? AND user_id = ?`,
		h.Name, h.Description, h.Frequency, h.ID, h.UserID)
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteHabit(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM habits WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return requireRow(res)
}

// UpdateStreak persists the cached streak value. The habit write path is the
// only place that recomputes it; writes that bypass CompleteHabit can leave
// the cache stale until the next completion.
func (r *SQLiteRepository) UpdateStreak(ctx context.Context, habitID string, streak int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE habits SET streak = ? WHERE id = ?`, streak, habitID)
	if err != nil {
		return fmt.Errorf("update streak: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CreateCompletion(ctx context.Context, c *core.HabitCompletion) error {
	c.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO habit_completions (id, habit_id, date) VALUES (?, ?, ?)`,
		c.ID, c.HabitID, toUnix(c.Date))
	if err != nil {
		return fmt.Errorf("insert completion: %w", err)
	}
	return nil
}

// ListCompletions returns a habit's completions newest-first; limit <= 0
// means no limit.
func (r *SQLiteRepository) ListCompletions(ctx context.Context, habitID string, limit int) ([]core.HabitCompletion, error) {
	query := `SELECT id, habit_id, date FROM habit_completions WHERE habit_id = ? ORDER BY date DESC`
	args := []any{habitID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	completions := []core.HabitCompletion{}
	for rows.Next() {
		var (
			c    core.HabitCompletion
			date int64
		)
		if err := rows.Scan(&c.ID, &c.HabitID, &date); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		c.Date = fromUnix(date)
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

// CountCompletionsInWindow counts a habit's completions with date in
// [start, end). The duplicate-completion guard queries this before insert.
func (r *SQLiteRepository) CountCompletionsInWindow(ctx context.Context, habitID string, start, end time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM habit_completions
		WHERE habit_id = ? AND date >= ? AND date < ?`,
		habitID, toUnix(start), toUnix(end)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count completions: %w", err)
	}
	return n, nil
}
