package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"productiv/internal/core"
)

const priorityColumns = `id, user_id, title, description, completed, due_date, created_at`

func (r *SQLiteRepository) CreatePriority(ctx context.Context, p *core.Priority) error {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO priorities (id, user_id, title, description, completed, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Title, p.Description, p.Completed,
		toNullUnix(p.DueDate), toUnix(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert priority: %w", err)
	}
	return nil
}

// ListPriorities returns the user's priorities newest-first; limit <= 0
// means no limit.
func (r *SQLiteRepository) ListPriorities(ctx context.Context, userID string, limit int) ([]core.Priority, error) {
	query := `SELECT ` + priorityColumns + ` FROM priorities WHERE user_id = ? ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.queryPriorities(ctx, query, args...)
}

// ListPrioritiesCreatedBetween returns priorities created in [start, end),
// used for today's performance figure.
func (r *SQLiteRepository) ListPrioritiesCreatedBetween(ctx context.Context, userID string, start, end time.Time) ([]core.Priority, error) {
	return r.queryPriorities(ctx,
		`SELECT `+priorityColumns+` FROM priorities
		WHERE user_id = ? AND created_at >= ? AND created_at < ?
		ORDER BY created_at DESC`,
		userID, toUnix(start), toUnix(end))
}

func (r *SQLiteRepository) UpdatePriority(ctx context.Context, p *core.Priority) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE priorities SET title = ?, description = ?, completed = ?, due_date = ?
		WHERE id = ? AND user_id = ?`,
		p.Title, p.Description, p.Completed, toNullUnix(p.DueDate), p.ID, p.UserID)
	if err != nil {
		return fmt.Errorf("update priority: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) GetPriority(ctx context.Context, userID, id string) (core.Priority, error) {
	priorities, err := r.queryPriorities(ctx,
		`SELECT `+priorityColumns+` FROM priorities WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return core.Priority{}, err
	}
	if len(priorities) == 0 {
		return core.Priority{}, core.ErrNotFound
	}
	return priorities[0], nil
}

func (r *SQLiteRepository) DeletePriority(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM priorities WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete priority: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) queryPriorities(ctx context.Context, query string, args ...any) ([]core.Priority, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query priorities: %w", err)
	}
	defer rows.Close()

	priorities := []core.Priority{}
	for rows.Next() {
		var (
			p         core.Priority
			dueDate   sql.NullInt64
			createdAt int64
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description,
			&p.Completed, &dueDate, &createdAt); err != nil {
			return nil, fmt.Errorf("scan priority: %w", err)
		}
		p.DueDate = fromNullUnix(dueDate)
		p.CreatedAt = fromUnix(createdAt)
		priorities = append(priorities, p)
	}
	return priorities, rows.Err()
}
