package model

import "time"

// EventStatus is the closed set of lifecycle states an event can be in.
// Statuses are stored verbatim in the events.status column.
type EventStatus string

const (
	EventDraft     EventStatus = "DRAFT"
	EventPublished EventStatus = "PUBLISHED"
	EventCanceled  EventStatus = "CANCELED"
)

// Valid reports whether s is one of the known event statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case EventDraft, EventPublished, EventCanceled:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transition.
// CANCELED is the only terminal event status; once an event is
// cancelled neither its status nor its fields may change again.
func (s EventStatus) Terminal() bool { return s == EventCanceled }

// CanTransitionTo reports whether the transition s -> t is legal.
// DRAFT may publish or cancel; PUBLISHED may cancel or stay published
// (publishing twice is a no-op); CANCELED allows nothing except a
// redundant re-cancel, which upper layers treat as a silent re-write.
func (s EventStatus) CanTransitionTo(t EventStatus) bool {
	switch s {
	case EventDraft:
		return t == EventPublished || t == EventCanceled
	case EventPublished:
		return t == EventPublished || t == EventCanceled
	case EventCanceled:
		return t == EventCanceled
	}
	return false
}

// Event represents a schedulable event with finite capacity.
// Events are created in DRAFT by an administrator and become visible
// to participants only once PUBLISHED.
//
// Fields:
//
//	ID          – opaque UUID identifier.
//	Title       – short display title.
//	Description – free-form description.
//	Date        – when the event takes place (UTC).
//	Location    – where the event takes place.
//	Capacity    – maximum number of CONFIRMED reservations (>= 1).
//	Status      – lifecycle state (DRAFT, PUBLISHED, CANCELED).
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – last update timestamp.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	Location    string      `json:"location"`
	Capacity    int         `json:"capacity"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// EventFilters narrows a published-events listing. Zero values mean
// "no restriction". Location matches as a case-insensitive substring.
type EventFilters struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Location string
}

// EventPatch carries a partial update for an event. Nil fields are
// left untouched. Status is deliberately absent: status moves only
// through Publish and Cancel.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
	Capacity    *int
}
