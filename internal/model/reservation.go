package model

import "time"

// ReservationStatus is the closed set of states a reservation moves
// through. PENDING is the sole initial state; REFUSED and CANCELED are
// terminal; CONFIRMED may only move to CANCELED.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationRefused   ReservationStatus = "REFUSED"
	ReservationCanceled  ReservationStatus = "CANCELED"
)

// Valid reports whether s is one of the known reservation statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationRefused, ReservationCanceled:
		return true
	}
	return false
}

// Active reports whether the reservation still occupies the user's
// single slot for an event: one PENDING or CONFIRMED reservation per
// (user, event) pair is allowed at any time.
func (s ReservationStatus) Active() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

// Terminal reports whether no further transition is permitted.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationRefused || s == ReservationCanceled
}

// CanTransitionTo reports whether the transition s -> t is legal.
// Legal edges: PENDING -> CONFIRMED | REFUSED | CANCELED and
// CONFIRMED -> CANCELED. Everything else is rejected.
func (s ReservationStatus) CanTransitionTo(t ReservationStatus) bool {
	switch s {
	case ReservationPending:
		return t == ReservationConfirmed || t == ReservationRefused || t == ReservationCanceled
	case ReservationConfirmed:
		return t == ReservationCanceled
	}
	return false
}

// Reservation records a participant's claim on a seat for an event.
// Reservations are never deleted; they only transition to a terminal
// status so that the history stays auditable.
//
// Fields:
//
//	ID        – opaque UUID identifier.
//	UserID    – participant who created the reservation.
//	EventID   – event being reserved.
//	Status    – state of the reservation (PENDING, CONFIRMED,
//	            REFUSED, CANCELED).
//	CreatedAt – creation timestamp.
//	UpdatedAt – last update timestamp.
type Reservation struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	EventID   string            `json:"event_id"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// UserSummary is the slice of a user record that reservation consumers
// (listings, ticket renderers) need. Account lifecycle itself is
// handled elsewhere.
type UserSummary struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// EventSummary is the slice of an event embedded in reservation
// detail responses.
type EventSummary struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Date     time.Time   `json:"date"`
	Location string      `json:"location"`
	Capacity int         `json:"capacity"`
	Status   EventStatus `json:"status"`
}

// ReservationDetail joins a reservation with summaries of its event
// and user. Detail reads return this shape so downstream consumers can
// render a ticket or a listing without further queries.
type ReservationDetail struct {
	Reservation
	Event EventSummary `json:"event"`
	User  UserSummary  `json:"user"`
}
