package service

import (
	"context"
	"database/sql"
	"log"

	"github.com/iliyamo/event-reservation/internal/model"
	"github.com/iliyamo/event-reservation/internal/repository"
)

// ReservationNotifier receives reservation lifecycle announcements
// after the owning transaction has committed. Implementations are
// best-effort: failures are logged by the implementation and never
// propagate into the request that triggered them.
type ReservationNotifier interface {
	ReservationConfirmed(ctx context.Context, detail model.ReservationDetail)
}

// ReservationService enforces the reservation state machine and seat
// admission control. Admission reads the confirmed count and writes
// the new state inside one transaction that holds an exclusive lock on
// the event row, so two concurrent confirmations of the last seat
// serialise and the loser observes the winner's write.
type ReservationService struct {
	events       EventStore
	reservations ReservationStore
	notifier     ReservationNotifier
}

// NewReservationService constructs a ReservationService. notifier may
// be nil, in which case no lifecycle announcements are published.
func NewReservationService(events EventStore, reservations ReservationStore, notifier ReservationNotifier) *ReservationService {
	if events == nil || reservations == nil {
		panic("nil store passed to NewReservationService")
	}
	return &ReservationService{events: events, reservations: reservations, notifier: notifier}
}

// Create registers a PENDING reservation for userID on eventID. It
// fails with repository.ErrEventNotFound when the event is missing,
// ErrEventNotPublished when the event is not open for reservations,
// ErrEventFull when the confirmed count already reaches capacity, and
// ErrAlreadyReserved when the user holds an active reservation for the
// event. A PENDING reservation does not consume capacity; the capacity
// gate here only refuses obviously full events early.
func (s *ReservationService) Create(ctx context.Context, eventID, userID string) (*model.Reservation, error) {
	var created *model.Reservation
	err := repository.RunTx(ctx, s.reservations.DB(), func(tx *sql.Tx) error {
		event, err := s.events.GetForUpdateTx(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if event.Status != model.EventPublished {
			return ErrEventNotPublished
		}
		confirmed, err := s.reservations.CountConfirmedTx(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if confirmed >= event.Capacity {
			return ErrEventFull
		}
		active, err := s.reservations.FindActiveTx(ctx, tx, userID, eventID)
		if err != nil {
			return err
		}
		if active != nil {
			return ErrAlreadyReserved
		}
		created, err = s.reservations.CreateTx(ctx, tx, userID, eventID, model.ReservationPending)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Confirm transitions a PENDING reservation to CONFIRMED. Capacity is
// re-checked at confirmation time: other reservations may have been
// confirmed since this one was created, and the confirmed count is
// what actually consumes capacity. Fails with
// repository.ErrReservationNotFound, ErrConfirmNotPending or
// ErrEventFull.
func (s *ReservationService) Confirm(ctx context.Context, id string) (*model.Reservation, error) {
	var confirmed *model.Reservation
	err := repository.RunTx(ctx, s.reservations.DB(), func(tx *sql.Tx) error {
		res, err := s.reservations.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if res.Status != model.ReservationPending {
			return ErrConfirmNotPending
		}
		event, err := s.events.GetForUpdateTx(ctx, tx, res.EventID)
		if err != nil {
			return err
		}
		count, err := s.reservations.CountConfirmedTx(ctx, tx, res.EventID)
		if err != nil {
			return err
		}
		if count >= event.Capacity {
			return ErrEventFull
		}
		if err := s.reservations.UpdateStatusTx(ctx, tx, id, model.ReservationConfirmed); err != nil {
			return err
		}
		res.Status = model.ReservationConfirmed
		confirmed = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.announceConfirmed(ctx, id)
	return confirmed, nil
}

// announceConfirmed publishes a confirmation notice after commit.
// Failures are logged and swallowed; notification delivery must never
// fail the confirmation itself.
func (s *ReservationService) announceConfirmed(ctx context.Context, id string) {
	if s.notifier == nil {
		return
	}
	detail, err := s.reservations.GetDetailByID(ctx, id)
	if err != nil {
		log.Printf("reservation-service: load detail for notification failed: %v", err)
		return
	}
	s.notifier.ReservationConfirmed(ctx, *detail)
}

// Refuse transitions a PENDING reservation to REFUSED, a terminal
// status. Fails with ErrRefuseNotPending when the reservation
// already left PENDING.
func (s *ReservationService) Refuse(ctx context.Context, id string) (*model.Reservation, error) {
	return s.transition(ctx, id, model.ReservationRefused, func(res *model.Reservation) error {
		if res.Status != model.ReservationPending {
			return ErrRefuseNotPending
		}
		return nil
	})
}

// CancelByAdmin cancels a PENDING or CONFIRMED reservation on behalf
// of an administrator, freeing any capacity it consumed. Terminal
// reservations fail with ErrReservationNotCancellable.
func (s *ReservationService) CancelByAdmin(ctx context.Context, id string) (*model.Reservation, error) {
	return s.transition(ctx, id, model.ReservationCanceled, func(res *model.Reservation) error {
		if res.Status.Terminal() {
			return ErrReservationNotCancellable
		}
		return nil
	})
}

// CancelByParticipant cancels the participant's own reservation. The
// ownership check is enforced here regardless of upstream
// authorization: a mismatched userID fails with
// ErrNotReservationOwner before any status inspection.
func (s *ReservationService) CancelByParticipant(ctx context.Context, id, userID string) (*model.Reservation, error) {
	return s.transition(ctx, id, model.ReservationCanceled, func(res *model.Reservation) error {
		if res.UserID != userID {
			return ErrNotReservationOwner
		}
		if !res.Status.Active() {
			return ErrReservationNotCancellable
		}
		return nil
	})
}

// transition loads the reservation under an exclusive row lock, runs
// the guard against its current state and writes the target status.
// The lock prevents two racing transitions from both passing their
// guards on the same stale status.
func (s *ReservationService) transition(ctx context.Context, id string, target model.ReservationStatus, guard func(*model.Reservation) error) (*model.Reservation, error) {
	var out *model.Reservation
	err := repository.RunTx(ctx, s.reservations.DB(), func(tx *sql.Tx) error {
		res, err := s.reservations.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := guard(res); err != nil {
			return err
		}
		if err := s.reservations.UpdateStatusTx(ctx, tx, id, target); err != nil {
			return err
		}
		res.Status = target
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByEvent returns all reservations for the event, newest first.
// Fails with repository.ErrEventNotFound when the event is missing.
func (s *ReservationService) ListByEvent(ctx context.Context, eventID string) ([]model.ReservationDetail, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.reservations.ListByEvent(ctx, eventID)
}

// ListByUser returns the participant's reservations, newest first.
func (s *ReservationService) ListByUser(ctx context.Context, userID string) ([]model.ReservationDetail, error) {
	return s.reservations.ListByUser(ctx, userID)
}

// GetDetailForActor returns the joined reservation detail when the
// actor is an administrator or the owning participant; any other actor
// receives ErrForbidden.
func (s *ReservationService) GetDetailForActor(ctx context.Context, id, userID string, isAdmin bool) (*model.ReservationDetail, error) {
	detail, err := s.reservations.GetDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && detail.UserID != userID {
		return nil, ErrForbidden
	}
	return detail, nil
}
