package service

import (
	"context"
	"database/sql"

	"github.com/iliyamo/event-reservation/internal/model"
)

// EventStore is the persistence contract the lifecycle managers need
// for events. It is satisfied by repository.EventRepo; tests may
// substitute any implementation backed by a *sql.DB.
type EventStore interface {
	DB() *sql.DB
	Create(ctx context.Context, e *model.Event) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Event, error)
	UpdateFieldsTx(ctx context.Context, tx *sql.Tx, e *model.Event) error
	UpdateStatusTx(ctx context.Context, tx *sql.Tx, id string, status model.EventStatus) error
	ListPublished(ctx context.Context, f model.EventFilters) ([]model.Event, error)
	ListAll(ctx context.Context) ([]model.Event, error)
	Count(ctx context.Context, status model.EventStatus) (int64, error)
}

// ReservationStore is the persistence contract for reservations. The
// CountConfirmedTx/FindActiveTx methods form the capacity oracle: pure
// reads that admission decisions are based on. Satisfied by
// repository.ReservationRepo.
type ReservationStore interface {
	DB() *sql.DB
	CreateTx(ctx context.Context, tx *sql.Tx, userID, eventID string, status model.ReservationStatus) (*model.Reservation, error)
	GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Reservation, error)
	CountConfirmedTx(ctx context.Context, tx *sql.Tx, eventID string) (int, error)
	FindActiveTx(ctx context.Context, tx *sql.Tx, userID, eventID string) (*model.Reservation, error)
	UpdateStatusTx(ctx context.Context, tx *sql.Tx, id string, status model.ReservationStatus) error
	GetDetailByID(ctx context.Context, id string) (*model.ReservationDetail, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.ReservationDetail, error)
	ListByUser(ctx context.Context, userID string) ([]model.ReservationDetail, error)
	Count(ctx context.Context) (int64, error)
}

// UserStore reads user summaries and counts for the admin dashboard.
// Satisfied by repository.UserRepo.
type UserStore interface {
	Count(ctx context.Context) (int64, error)
}
