package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrTemplateNotFound is returned when no row exists for a template key.
var ErrTemplateNotFound = errors.New("template not found")

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a copy of q that runs its statements in tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type QuoteTemplate struct {
	Key       string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const getTemplate = `SELECT key, body, created_at, updated_at FROM quote_templates WHERE key = ?`

func (q *Queries) GetTemplate(ctx context.Context, key string) (QuoteTemplate, error) {
	var t QuoteTemplate
	err := q.db.QueryRowContext(ctx, getTemplate, key).Scan(&t.Key, &t.Body, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return t, fmt.Errorf("%w: %s", ErrTemplateNotFound, key)
	}
	if err != nil {
		return t, fmt.Errorf("failed to get template %q: %w", key, err)
	}
	return t, nil
}

const upsertTemplate = `
INSERT INTO quote_templates (key, body) VALUES (?, ?)
ON CONFLICT (key) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`

func (q *Queries) UpsertTemplate(ctx context.Context, key, body string) error {
	if _, err := q.db.ExecContext(ctx, upsertTemplate, key, body); err != nil {
		return fmt.Errorf("failed to upsert template %q: %w", key, err)
	}
	return nil
}

const listTemplates = `SELECT key, body, created_at, updated_at FROM quote_templates ORDER BY key`

func (q *Queries) ListTemplates(ctx context.Context) ([]QuoteTemplate, error) {
	rows, err := q.db.QueryContext(ctx, listTemplates)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var items []QuoteTemplate
	for rows.Next() {
		var t QuoteTemplate
		if err := rows.Scan(&t.Key, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteTemplate = `DELETE FROM quote_templates WHERE key = ?`

func (q *Queries) DeleteTemplate(ctx context.Context, key string) error {
	if _, err := q.db.ExecContext(ctx, deleteTemplate, key); err != nil {
		return fmt.Errorf("failed to delete template %q: %w", key, err)
	}
	return nil
}
