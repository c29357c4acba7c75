// Package postgres persists the advisor's notification inbox and audit log.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/mfinley/rostercoach/internal/notify"
)

const schema = `
CREATE TABLE IF NOT EXISTS notifications (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL DEFAULT 'info',
	title TEXT NOT NULL,
	body TEXT NOT NULL,
	payload JSONB,
	is_read BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	engine TEXT NOT NULL,
	detail TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// Notification is one inbox row.
type Notification struct {
	ID        string    `db:"id"`
	Kind      string    `db:"kind"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	Payload   []byte    `db:"payload"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}

// Inbox is the sqlx-backed notification store. It satisfies notify.Notifier.
type Inbox struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewInbox wraps an open database handle.
func NewInbox(db *sqlx.DB, timeout time.Duration) *Inbox {
	return &Inbox{db: db, timeout: timeout}
}

// Open connects and applies the schema.
func Open(databaseURL string, timeout time.Duration) (*Inbox, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return NewInbox(db, timeout), nil
}

// Notify appends one notification and returns its id. Failures come back as
// *notify.Error for the caller to surface.
func (i *Inbox) Notify(ctx context.Context, category, title, body string, payload map[string]any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", &notify.Error{Category: category, Err: err}
	}

	id := uuid.NewString()
	_, err = i.db.ExecContext(ctx,
		`INSERT INTO notifications (id, kind, title, body, payload) VALUES ($1, $2, $3, $4, $5)`,
		id, category, title, body, payloadJSON)
	if err != nil {
		return "", &notify.Error{Category: category, Err: err}
	}
	return id, nil
}

// List returns notifications, unread first then newest first, optionally
// filtered by kind.
func (i *Inbox) List(ctx context.Context, kind string) ([]Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	var rows []Notification
	var err error
	if kind != "" {
		err = i.db.SelectContext(ctx, &rows,
			`SELECT id, kind, title, body, payload, is_read, created_at
			 FROM notifications WHERE kind = $1
			 ORDER BY is_read ASC, created_at DESC`, kind)
	} else {
		err = i.db.SelectContext(ctx, &rows,
			`SELECT id, kind, title, body, payload, is_read, created_at
			 FROM notifications
			 ORDER BY is_read ASC, created_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return rows, nil
}

// Get returns one notification by id.
func (i *Inbox) Get(ctx context.Context, id string) (*Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	var n Notification
	err := i.db.GetContext(ctx, &n,
		`SELECT id, kind, title, body, payload, is_read, created_at
		 FROM notifications WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("notification %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching notification: %w", err)
	}
	return &n, nil
}

// MarkRead flags a notification as handled.
func (i *Inbox) MarkRead(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	if _, err := i.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	return nil
}

// UnreadCount returns the number of pending notifications.
func (i *Inbox) UnreadCount(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	var count int
	if err := i.db.GetContext(ctx, &count,
		`SELECT COUNT(1) FROM notifications WHERE is_read = FALSE`); err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}

// RecordAudit appends an audit entry for an engine run.
func (i *Inbox) RecordAudit(ctx context.Context, engine, detail string) error {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	if _, err := i.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, engine, detail) VALUES ($1, $2, $3)`,
		uuid.NewString(), engine, detail); err != nil {
		return fmt.Errorf("recording audit entry: %w", err)
	}
	return nil
}
