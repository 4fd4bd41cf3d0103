package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"productiv/internal/core"
)

const userColumns = `id, name, email, password_hash, starting_balance, cash_balance,
	bank_balance, monthly_budget, discover_connected, discover_last_sync, created_at`

// CreateUser inserts a new account. A duplicate email yields
// core.ErrEmailTaken.
func (r *SQLiteRepository) CreateUser(ctx context.Context, u *core.User) error {
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, starting_balance,
			cash_balance, bank_balance, monthly_budget, discover_connected,
			discover_last_sync, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash,
		u.StartingBalance.String(), u.CashBalance.String(),
		u.BankBalance.String(), u.MonthlyBudget.String(),
		u.DiscoverConnected, toNullUnix(u.DiscoverLastSync), toUnix(u.CreatedAt))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return core.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetUser(ctx context.Context, id string) (core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// ListUserIDs returns every user id, for worker-side sweeps.
func (r *SQLiteRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM users`)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// UpdateBalances writes both balances in a single statement so a transfer is
// never half applied.
func (r *SQLiteRepository) UpdateBalances(ctx context.Context, userID string, cash, bank decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET cash_balance = ?, bank_balance = ? WHERE id = ?`,
		cash.String(), bank.String(), userID)
	if err != nil {
		return fmt.Errorf("update balances: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) UpdateMonthlyBudget(ctx context.Context, userID string, budget decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET monthly_budget = ? WHERE id = ?`, budget.String(), userID)
	if err != nil {
		return fmt.Errorf("update monthly budget: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) UpdateStartingBalance(ctx context.Context, userID string, balance decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET starting_balance = ? WHERE id = ?`, balance.String(), userID)
	if err != nil {
		return fmt.Errorf("update starting balance: %w", err)
	}
	return requireRow(res)
}

// SetDiscoverConnection records the bank-sync connection flag and last sync
// timestamp (nil when disconnecting).
func (r *SQLiteRepository) SetDiscoverConnection(ctx context.Context, userID string, connected bool, lastSync *time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET discover_connected = ?, discover_last_sync = ? WHERE id = ?`,
		connected, toNullUnix(lastSync), userID)
	if err != nil {
		return fmt.Errorf("update discover connection: %w", err)
	}
	return requireRow(res)
}

func scanUser(row *sql.Row) (core.User, error) {
	var (
		u                            core.User
		starting, cash, bank, budget string
		lastSync                     sql.NullInt64
		createdAt                    int64
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &starting,
		&cash, &bank, &budget, &u.DiscoverConnected, &lastSync, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrNotFound
		}
		return core.User{}, fmt.Errorf("scan user: %w", err)
	}

	if u.StartingBalance, err = decimal.NewFromString(starting); err != nil {
		return core.User{}, fmt.Errorf("parse starting balance: %w", err)
	}
	if u.CashBalance, err = decimal.NewFromString(cash); err != nil {
		return core.User{}, fmt.Errorf("parse cash balance: %w", err)
	}
	if u.BankBalance, err = decimal.NewFromString(bank); err != nil {
		return core.User{}, fmt.Errorf("parse bank balance: %w", err)
	}
	if u.MonthlyBudget, err = decimal.NewFromString(budget); err != nil {
		return core.User{}, fmt.Errorf("parse monthly budget: %w", err)
	}
	u.DiscoverLastSync = fromNullUnix(lastSync)
	u.CreatedAt = fromUnix(createdAt)
	return u, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
