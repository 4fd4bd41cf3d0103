package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"productiv/internal/core"
)

func (r *SQLiteRepository) CreateExercise(ctx context.Context, e *core.Exercise) error {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exercises (id, user_id, name, type, duration, calories, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Name, e.Type, e.Duration, e.Calories,
		toUnix(e.Date), toUnix(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert exercise: %w", err)
	}
	return nil
}

// ListExercises returns the user's exercises oldest-first, optionally
// restricted to [from, to].
func (r *SQLiteRepository) ListExercises(ctx context.Context, userID string, from, to *time.Time) ([]core.Exercise, error) {
	query := `SELECT id, user_id, name, type, duration, calories, date, created_at
		FROM exercises WHERE user_id = ?`
	args := []any{userID}
	if from != nil {
		query += ` AND date >= ?`
		args = append(args, toUnix(*from))
	}
	if to != nil {
		query += ` AND date <= ?`
		args = append(args, toUnix(*to))
	}
	query += ` ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	exercises := []core.Exercise{}
	for rows.Next() {
		var (
			e               core.Exercise
			date, createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Type, &e.Duration,
			&e.Calories, &date, &createdAt); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		e.Date = fromUnix(date)
		e.CreatedAt = fromUnix(createdAt)
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (r *SQLiteRepository) DeleteExercise(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM exercises WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return requireRow(res)
}
