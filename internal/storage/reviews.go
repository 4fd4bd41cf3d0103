package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"productiv/internal/core"
)

func (r *SQLiteRepository) CreateWeeklyReview(ctx context.Context, w *core.WeeklyReview) error {
	w.ID = uuid.NewString()
	w.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO weekly_reviews (id, user_id, week_start, week_end, achievements, challenges, goals, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.UserID, toUnix(w.WeekStart), toUnix(w.WeekEnd),
		w.Achievements, w.Challenges, w.Goals, w.Notes, toUnix(w.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert weekly review: %w", err)
	}
	return nil
}

// ListWeeklyReviews returns the user's reviews, most recent week first.
func (r *SQLiteRepository) ListWeeklyReviews(ctx context.Context, userID string) ([]core.WeeklyReview, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, week_start, week_end, achievements, challenges, goals, notes, created_at
		FROM weekly_reviews WHERE user_id = ? ORDER BY week_start DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list weekly reviews: %w", err)
	}
	defer rows.Close()

	reviews := []core.WeeklyReview{}
	for rows.Next() {
		var (
			w                           core.WeeklyReview
			weekStart, weekEnd, created int64
		)
		if err := rows.Scan(&w.ID, &w.UserID, &weekStart, &weekEnd,
			&w.Achievements, &w.Challenges, &w.Goals, &w.Notes, &created); err != nil {
			return nil, fmt.Errorf("scan weekly review: %w", err)
		}
		w.WeekStart = fromUnix(weekStart)
		w.WeekEnd = fromUnix(weekEnd)
		w.CreatedAt = fromUnix(created)
		reviews = append(reviews, w)
	}
	return reviews, rows.Err()
}

func (r *SQLiteRepository) DeleteWeeklyReview(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM weekly_reviews WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete weekly review: %w", err)
	}
	return requireRow(res)
}
