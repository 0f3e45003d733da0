package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-reservation/internal/model"
)

// ReservationRepo provides persistence for reservations. It doubles as
// the capacity oracle: CountConfirmedTx and FindActiveTx are the pure
// read operations admission decisions are based on, evaluated inside
// the same transaction that performs the subsequent write.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given
// database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// spanning multiple repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, user_id, event_id, status, created_at, updated_at`

func scanReservation(row interface {
	Scan(dest ...interface{}) error
}) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(&res.ID, &res.UserID, &res.EventID, &res.Status, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateTx inserts a new reservation within tx and returns it with a
// generated UUID. The caller must commit or roll back the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID, eventID string, status model.ReservationStatus) (*model.Reservation, error) {
	now := time.Now().UTC()
	res := &model.Reservation{
		ID:        uuid.New().String(),
		UserID:    userID,
		EventID:   eventID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	const q = `INSERT INTO reservations (id, user_id, event_id, status, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, res.ID, res.UserID, res.EventID, res.Status, res.CreatedAt, res.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert reservation: %w", err)
	}
	return res, nil
}

// GetForUpdateTx loads a reservation inside tx with an exclusive row
// lock, so that two concurrent status transitions on the same
// reservation serialise instead of both passing the status guard.
func (r *ReservationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ? FOR UPDATE`
	res, err := scanReservation(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("lock reservation row: %w", err)
	}
	return res, nil
}

// CountConfirmedTx returns how many CONFIRMED reservations exist for
// the event, evaluated inside tx so the count is consistent with the
// locks the transaction holds. This is the number admission control
// compares against the event's capacity; PENDING reservations do not
// consume capacity.
func (r *ReservationRepo) CountConfirmedTx(ctx context.Context, tx *sql.Tx, eventID string) (int, error) {
	const q = `SELECT COUNT(*) FROM reservations WHERE event_id = ? AND status = ?`
	var n int
	if err := tx.QueryRowContext(ctx, q, eventID, model.ReservationConfirmed).Scan(&n); err != nil {
		return 0, fmt.Errorf("count confirmed reservations: %w", err)
	}
	return n, nil
}

// FindActiveTx returns the user's PENDING or CONFIRMED reservation for
// the event, or nil when none exists. Evaluated inside tx so the
// duplicate check and the insert that follows are atomic.
func (r *ReservationRepo) FindActiveTx(ctx context.Context, tx *sql.Tx, userID, eventID string) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE user_id = ? AND event_id = ? AND status IN (?, ?)
	           LIMIT 1`
	res, err := scanReservation(tx.QueryRowContext(ctx, q, userID, eventID,
		model.ReservationPending, model.ReservationConfirmed))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active reservation: %w", err)
	}
	return res, nil
}

// UpdateStatusTx transitions the reservation's status within tx.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id string, status model.ReservationStatus) error {
	const q = `UPDATE reservations SET status = ?, updated_at = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q, status, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	return nil
}

const detailColumns = `r.id, r.user_id, r.event_id, r.status, r.created_at, r.updated_at,
	       e.id, e.title, e.date, e.location, e.capacity, e.status,
	       u.id, u.email, u.first_name, u.last_name`

func scanDetail(row interface {
	Scan(dest ...interface{}) error
}) (*model.ReservationDetail, error) {
	var d model.ReservationDetail
	err := row.Scan(
		&d.ID, &d.UserID, &d.EventID, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		&d.Event.ID, &d.Event.Title, &d.Event.Date, &d.Event.Location, &d.Event.Capacity, &d.Event.Status,
		&d.User.ID, &d.User.Email, &d.User.FirstName, &d.User.LastName,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDetailByID returns a reservation joined with its event and user
// summaries, or ErrReservationNotFound.
func (r *ReservationRepo) GetDetailByID(ctx context.Context, id string) (*model.ReservationDetail, error) {
	const q = `SELECT ` + detailColumns + `
	           FROM reservations r
	           JOIN events e ON e.id = r.event_id
	           JOIN users u ON u.id = r.user_id
	           WHERE r.id = ?`
	d, err := scanDetail(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("get reservation detail: %w", err)
	}
	return d, nil
}

// ListByEvent returns all reservations for the event joined with user
// and event summaries, newest first. When no reservations exist, an
// empty slice is returned.
func (r *ReservationRepo) ListByEvent(ctx context.Context, eventID string) ([]model.ReservationDetail, error) {
	const q = `SELECT ` + detailColumns + `
	           FROM reservations r
	           JOIN events e ON e.id = r.event_id
	           JOIN users u ON u.id = r.user_id
	           WHERE r.event_id = ?
	           ORDER BY r.created_at DESC`
	return r.queryDetails(ctx, q, eventID)
}

// ListByUser returns all reservations created by the user, newest
// first, joined with event and user summaries.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID string) ([]model.ReservationDetail, error) {
	const q = `SELECT ` + detailColumns + `
	           FROM reservations r
	           JOIN events e ON e.id = r.event_id
	           JOIN users u ON u.id = r.user_id
	           WHERE r.user_id = ?
	           ORDER BY r.created_at DESC`
	return r.queryDetails(ctx, q, userID)
}

func (r *ReservationRepo) queryDetails(ctx context.Context, q string, args ...interface{}) ([]model.ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()
	details := make([]model.ReservationDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		details = append(details, *d)
	}
	return details, rows.Err()
}

// Count returns the total number of reservations across all events.
func (r *ReservationRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return n, nil
}
