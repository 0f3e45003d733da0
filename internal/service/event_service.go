package service

import (
	"context"
	"database/sql"

	"github.com/iliyamo/event-reservation/internal/model"
	"github.com/iliyamo/event-reservation/internal/repository"
)

// EventService enforces the event lifecycle: DRAFT -> PUBLISHED ->
// CANCELED, with CANCELED terminal. Capacity reductions are guarded
// against the confirmed-reservation count inside the same transaction
// that locks the event row, so a concurrent confirmation cannot slip
// between the check and the write.
type EventService struct {
	events       EventStore
	reservations ReservationStore
}

// NewEventService constructs an EventService from its stores.
func NewEventService(events EventStore, reservations ReservationStore) *EventService {
	if events == nil || reservations == nil {
		panic("nil store passed to NewEventService")
	}
	return &EventService{events: events, reservations: reservations}
}

// Create persists a new event in DRAFT status and returns it. Field
// validation (capacity >= 1, required title) happens in the transport
// layer before the service is reached.
func (s *EventService) Create(ctx context.Context, e model.Event) (*model.Event, error) {
	e.Status = model.EventDraft
	return s.events.Create(ctx, &e)
}

// Update applies the non-nil fields of patch to the event. It fails
// with repository.ErrEventNotFound when the event does not exist, with
// ErrCanceledEventModify when the event is CANCELED, and with
// ErrCapacityBelowConfirmed when the new capacity would undercut the
// number of confirmed reservations.
func (s *EventService) Update(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	var updated *model.Event
	err := repository.RunTx(ctx, s.events.DB(), func(tx *sql.Tx) error {
		event, err := s.events.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if event.Status == model.EventCanceled {
			return ErrCanceledEventModify
		}
		if patch.Capacity != nil {
			confirmed, err := s.reservations.CountConfirmedTx(ctx, tx, id)
			if err != nil {
				return err
			}
			if *patch.Capacity < confirmed {
				return ErrCapacityBelowConfirmed
			}
			event.Capacity = *patch.Capacity
		}
		if patch.Title != nil {
			event.Title = *patch.Title
		}
		if patch.Description != nil {
			event.Description = *patch.Description
		}
		if patch.Date != nil {
			event.Date = *patch.Date
		}
		if patch.Location != nil {
			event.Location = *patch.Location
		}
		if err := s.events.UpdateFieldsTx(ctx, tx, event); err != nil {
			return err
		}
		updated = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Publish transitions a DRAFT event to PUBLISHED. Publishing an
// already published event is idempotent and performs no write.
// Publishing a cancelled event fails with ErrCanceledEventPublish.
func (s *EventService) Publish(ctx context.Context, id string) (*model.Event, error) {
	var published *model.Event
	err := repository.RunTx(ctx, s.events.DB(), func(tx *sql.Tx) error {
		event, err := s.events.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if event.Status == model.EventCanceled {
			return ErrCanceledEventPublish
		}
		if event.Status == model.EventPublished {
			published = event
			return nil
		}
		if err := s.events.UpdateStatusTx(ctx, tx, id, model.EventPublished); err != nil {
			return err
		}
		event.Status = model.EventPublished
		published = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return published, nil
}

// Cancel transitions the event to CANCELED regardless of its current
// status. Cancelling an already cancelled event repeats the write as a
// silent no-op; reservations for the event keep their own lifecycle.
func (s *EventService) Cancel(ctx context.Context, id string) (*model.Event, error) {
	var canceled *model.Event
	err := repository.RunTx(ctx, s.events.DB(), func(tx *sql.Tx) error {
		event, err := s.events.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.events.UpdateStatusTx(ctx, tx, id, model.EventCanceled); err != nil {
			return err
		}
		event.Status = model.EventCanceled
		canceled = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return canceled, nil
}

// GetPublished returns the event when it exists and is PUBLISHED. A
// missing event and a non-published event produce the identical
// not-found signal so that draft existence does not leak to guests.
func (s *EventService) GetPublished(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != model.EventPublished {
		return nil, repository.ErrEventNotFound
	}
	return event, nil
}

// GetByID returns any event regardless of status. Admin-only callers.
func (s *EventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	return s.events.GetByID(ctx, id)
}

// ListPublished returns PUBLISHED events matching the filters, date
// ascending.
func (s *EventService) ListPublished(ctx context.Context, f model.EventFilters) ([]model.Event, error) {
	return s.events.ListPublished(ctx, f)
}

// ListAll returns every event, newest date first, for the admin
// dashboard.
func (s *EventService) ListAll(ctx context.Context) ([]model.Event, error) {
	return s.events.ListAll(ctx)
}
