package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-reservation/internal/model"
)

// EventRepo provides persistence for events. Mutations that take part
// in admission decisions expose Tx variants so that services can
// compose the read and the write into one transaction. All timestamps
// are stored in UTC.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// spanning multiple repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = `id, title, description, date, location, capacity, status, created_at, updated_at`

func scanEvent(row interface {
	Scan(dest ...interface{}) error
}) (*model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Location,
		&e.Capacity, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event with a generated UUID and returns it.
// The caller decides the initial status; administrators always create
// events in DRAFT.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) (*model.Event, error) {
	e.ID = uuid.New().String()
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	const q = `INSERT INTO events (id, title, description, date, location, capacity, status, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.Title, e.Description, e.Date, e.Location, e.Capacity, e.Status, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return e, nil
}

// GetByID returns a single event or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// GetForUpdateTx loads an event inside tx while acquiring an exclusive
// row-level lock on it. Concurrent transactions performing the same
// lock on that event block until this one commits or rolls back, which
// serialises the check-then-act sequences that read confirmed counts
// and then write admission state.
func (r *EventRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ? FOR UPDATE`
	e, err := scanEvent(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}
	return e, nil
}

// UpdateFieldsTx persists the mutable fields of e within tx. Status is
// intentionally excluded; status changes go through UpdateStatusTx.
func (r *EventRepo) UpdateFieldsTx(ctx context.Context, tx *sql.Tx, e *model.Event) error {
	e.UpdatedAt = time.Now().UTC()
	const q = `UPDATE events SET title = ?, description = ?, date = ?, location = ?, capacity = ?, updated_at = ?
	           WHERE id = ?`
	_, err := tx.ExecContext(ctx, q,
		e.Title, e.Description, e.Date, e.Location, e.Capacity, e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// UpdateStatusTx transitions the event's status within tx.
func (r *EventRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id string, status model.EventStatus) error {
	const q = `UPDATE events SET status = ?, updated_at = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q, status, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	return nil
}

// ListPublished returns PUBLISHED events matching the filters, ordered
// by date ascending. Location matches as a case-insensitive substring.
func (r *EventRepo) ListPublished(ctx context.Context, f model.EventFilters) ([]model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE status = ?`
	args := []interface{}{model.EventPublished}
	if f.DateFrom != nil {
		q += ` AND date >= ?`
		args = append(args, *f.DateFrom)
	}
	if f.DateTo != nil {
		q += ` AND date <= ?`
		args = append(args, *f.DateTo)
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		q += ` AND LOWER(location) LIKE ?`
		args = append(args, "%"+strings.ToLower(loc)+"%")
	}
	q += ` ORDER BY date ASC`
	return r.queryEvents(ctx, q, args...)
}

// ListAll returns every event regardless of status, newest date first.
// Used by the admin dashboard.
func (r *EventRepo) ListAll(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events ORDER BY date DESC`
	return r.queryEvents(ctx, q)
}

func (r *EventRepo) queryEvents(ctx context.Context, q string, args ...interface{}) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// Count returns the total number of events; when status is non-empty
// the count is restricted to that status.
func (r *EventRepo) Count(ctx context.Context, status model.EventStatus) (int64, error) {
	q := `SELECT COUNT(*) FROM events`
	args := []interface{}{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	var n int64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
