// Package repository implements the MySQL persistence layer for events,
// reservations and user summaries. Sentinel errors defined here let
// higher layers distinguish failure scenarios with errors.Is without
// depending on driver-specific error types.
package repository

import "errors"

// ErrEventNotFound is returned when no event exists for the requested
// identifier. Services surface it unchanged and handlers translate it
// into an HTTP 404 response.
var ErrEventNotFound = errors.New("event not found")

// ErrReservationNotFound is returned when no reservation exists for
// the requested identifier.
var ErrReservationNotFound = errors.New("reservation not found")
