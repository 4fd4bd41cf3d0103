package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"productiv/internal/core"
)

func (r *SQLiteRepository) CreateContact(ctx context.Context, c *core.Contact) error {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contacts (id, user_id, name, email, phone, company, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, c.Email, c.Phone, c.Company, c.Notes, toUnix(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// ListContacts returns the user's contacts ordered by name.
func (r *SQLiteRepository) ListContacts(ctx context.Context, userID string) ([]core.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, email, phone, company, notes, created_at
		FROM contacts WHERE user_id = ? ORDER BY name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []core.Contact{}
	for rows.Next() {
		var (
			c         core.Contact
			createdAt int64
		)
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone,
			&c.Company, &c.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.CreatedAt = fromUnix(createdAt)
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *SQLiteRepository) UpdateContact(ctx context.Context, c *core.Contact) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE contacts SET name = ?, email = ?, phone = ?, company = ?, notes = ?
		WHERE id = ? AND user_id = ?`,
		c.Name, c.Email, c.Phone, c.Company, c.Notes, c.ID, c.UserID)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) GetContact(ctx context.Context, userID, id string) (core.Contact, error) {
	var (
		c         core.Contact
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, email, phone, company, notes, created_at
		FROM contacts WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Notes, &createdAt)
	if err != nil {
		if isNoRows(err) {
			return core.Contact{}, core.ErrNotFound
		}
		return core.Contact{}, fmt.Errorf("get contact: %w", err)
	}
	c.CreatedAt = fromUnix(createdAt)
	return c, nil
}

func (r *SQLiteRepository) DeleteContact(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM contacts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return requireRow(res)
}
