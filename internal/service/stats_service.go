package service

import (
	"context"

	"github.com/iliyamo/event-reservation/internal/model"
)

// Stats aggregates the counters shown on the admin dashboard.
type Stats struct {
	TotalEvents          int64 `json:"total_events"`
	TotalPublishedEvents int64 `json:"total_published_events"`
	TotalUsers           int64 `json:"total_users"`
	TotalReservations    int64 `json:"total_reservations"`
}

// StatsService computes platform-wide totals for administrators.
type StatsService struct {
	events       EventStore
	reservations ReservationStore
	users        UserStore
}

// NewStatsService constructs a StatsService from its stores.
func NewStatsService(events EventStore, reservations ReservationStore, users UserStore) *StatsService {
	if events == nil || reservations == nil || users == nil {
		panic("nil store passed to NewStatsService")
	}
	return &StatsService{events: events, reservations: reservations, users: users}
}

// Get returns the current totals. Counts are read independently, not
// in one snapshot; the dashboard tolerates that slack.
func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	totalEvents, err := s.events.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	published, err := s.events.Count(ctx, model.EventPublished)
	if err != nil {
		return nil, err
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	reservations, err := s.reservations.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalEvents:          totalEvents,
		TotalPublishedEvents: published,
		TotalUsers:           users,
		TotalReservations:    reservations,
	}, nil
}
