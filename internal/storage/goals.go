package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"productiv/internal/core"
)

const goalColumns = `id, user_id, title, description, target_date, status, progress,
	priority, timeframe, current_value, target_value, created_at`

func (r *SQLiteRepository) CreateGoal(ctx context.Context, g *core.Goal) error {
	g.ID = uuid.NewString()
	g.CreatedAt = time.Now()
	if g.Status == "" {
		g.Status = core.GoalActive
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, user_id, title, description, target_date, status,
			progress, priority, timeframe, current_value, target_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Title, g.Description, toNullUnix(g.TargetDate),
		string(g.Status), g.Progress, g.Priority, g.Timeframe,
		nullDecimal(g.CurrentValue), nullDecimal(g.TargetValue), toUnix(g.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

// ListGoals returns the user's goals newest-first with OKRs attached.
func (r *SQLiteRepository) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := []core.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range goals {
		okrs, err := r.listOKRs(ctx, goals[i].ID)
		if err != nil {
			return nil, err
		}
		goals[i].OKRs = okrs
	}
	return goals, nil
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, userID, id string) (core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return core.Goal{}, err
		}
		return core.Goal{}, core.ErrNotFound
	}
	g, err := scanGoal(rows)
	if err != nil {
		return core.Goal{}, err
	}
	rows.Close()

	if g.OKRs, err = r.listOKRs(ctx, g.ID); err != nil {
		return core.Goal{}, err
	}
	return g, nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, g *core.Goal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals
		SET title = ?, description = ?, target_date = ?, status = ?, progress = ?,
			priority = ?, timeframe = ?, current_value = ?, target_value = ?
		WHERE id = ? AND user_id = ?`,
		g.Title, g.Description, toNullUnix(g.TargetDate), string(g.Status),
		g.Progress, g.Priority, g.Timeframe, nullDecimal(g.CurrentValue),
		nullDecimal(g.TargetValue), g.ID, g.UserID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) listOKRs(ctx context.Context, goalID string) ([]core.OKR, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, goal_id, objective, progress FROM okrs WHERE goal_id = ?`, goalID)
	if err != nil {
		return nil, fmt.Errorf("list okrs: %w", err)
	}
	defer rows.Close()

	okrs := []core.OKR{}
	for rows.Next() {
		var o core.OKR
		if err := rows.Scan(&o.ID, &o.GoalID, &o.Objective, &o.Progress); err != nil {
			return nil, fmt.Errorf("scan okr: %w", err)
		}
		okrs = append(okrs, o)
	}
	return okrs, rows.Err()
}

func scanGoal(rows *sql.Rows) (core.Goal, error) {
	var (
		g               core.Goal
		status          string
		targetDate      sql.NullInt64
		current, target sql.NullString
		createdAt       int64
	)
	err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &targetDate,
		&status, &g.Progress, &g.Priority, &g.Timeframe, &current, &target, &createdAt)
	if err != nil {
		return core.Goal{}, fmt.Errorf("scan goal: %w", err)
	}
	g.Status = core.GoalStatus(status)
	g.TargetDate = fromNullUnix(targetDate)
	g.CreatedAt = fromUnix(createdAt)
	if g.CurrentValue, err = parseNullDecimal(current); err != nil {
		return core.Goal{}, fmt.Errorf("parse current value: %w", err)
	}
	if g.TargetValue, err = parseNullDecimal(target); err != nil {
		return core.Goal{}, fmt.Errorf("parse target value: %w", err)
	}
	return g, nil
}

func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func parseNullDecimal(s sql.NullString) (*decimal.Decimal, error) {
	if !s.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
