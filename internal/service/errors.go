// Package service implements the event and reservation lifecycle rules.
// Sentinel errors below are the domain failure modes the lifecycle
// managers can report; handlers map them onto HTTP responses with
// errors.Is. Storage-level not-found sentinels live in the repository
// package and pass through services unchanged.
package service

import "errors"

// Invalid-state errors: the entity exists but its current status
// forbids the requested transition.
var (
	// ErrCanceledEventModify rejects field updates on a cancelled
	// event; CANCELED is terminal for events.
	ErrCanceledEventModify = errors.New("cancelled events cannot be modified")

	// ErrCanceledEventPublish rejects publishing a cancelled event.
	ErrCanceledEventPublish = errors.New("a cancelled event cannot be republished")

	// ErrCapacityBelowConfirmed rejects shrinking an event's capacity
	// under the number of already confirmed reservations.
	ErrCapacityBelowConfirmed = errors.New("capacity cannot be lower than confirmed reservations")

	// ErrEventNotPublished rejects reserving an event that is not in
	// the PUBLISHED state.
	ErrEventNotPublished = errors.New("only published events can be reserved")

	// ErrConfirmNotPending rejects confirming a reservation that
	// already left the PENDING state.
	ErrConfirmNotPending = errors.New("only pending reservations can be confirmed")

	// ErrRefuseNotPending rejects refusing a reservation that already
	// left the PENDING state.
	ErrRefuseNotPending = errors.New("only pending reservations can be refused")

	// ErrReservationNotCancellable rejects cancelling a reservation
	// that is already in a terminal state.
	ErrReservationNotCancellable = errors.New("this reservation can no longer be cancelled")
)

// ErrEventFull is the capacity error: admitting one more confirmed
// reservation would exceed the event's capacity.
var ErrEventFull = errors.New("event is full")

// ErrAlreadyReserved is the conflict error: the user already holds an
// active (PENDING or CONFIRMED) reservation for the event.
var ErrAlreadyReserved = errors.New("user already has an active reservation for this event")

// ErrNotReservationOwner is returned when a participant acts on a
// reservation they do not own.
var ErrNotReservationOwner = errors.New("a user may cancel only their own reservations")

// ErrForbidden is returned when the actor may not view the requested
// resource.
var ErrForbidden = errors.New("forbidden")
