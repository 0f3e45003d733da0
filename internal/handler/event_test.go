package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-reservation/internal/model"
	"github.com/iliyamo/event-reservation/internal/repository"
	"github.com/iliyamo/event-reservation/internal/service"
)

func newEventHandler(t *testing.T) (*EventHandler, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	svc := service.NewEventService(repository.NewEventRepo(db), repository.NewReservationRepo(db))
	return NewEventHandler(svc), mock, db
}

func TestEventCreateValidation(t *testing.T) {
	h, _, _ := newEventHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"date":"2026-09-10T18:00:00Z","location":"Paris","capacity":10}`},
		{"missing location", `{"title":"Go Meetup","date":"2026-09-10T18:00:00Z","capacity":10}`},
		{"bad date", `{"title":"Go Meetup","date":"next tuesday","location":"Paris","capacity":10}`},
		{"zero capacity", `{"title":"Go Meetup","date":"2026-09-10T18:00:00Z","location":"Paris","capacity":0}`},
		{"negative capacity", `{"title":"Go Meetup","date":"2026-09-10T18:00:00Z","location":"Paris","capacity":-3}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodPost, "/v1/events", tc.body)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestEventCreate(t *testing.T) {
	h, mock, _ := newEventHandler(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO events`)).
		WithArgs(sqlmock.AnyArg(), "Go Meetup", "Monthly meetup", sqlmock.AnyArg(), "Paris", 10,
			string(model.EventDraft), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"title":"Go Meetup","description":"Monthly meetup","date":"2026-09-10T18:00:00Z","location":"Paris","capacity":10}`
	c, rec := newTestContext(t, http.MethodPost, "/v1/events", body)
	require.NoError(t, h.Create(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got model.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, model.EventDraft, got.Status)
	assert.NotEmpty(t, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventUpdateValidation(t *testing.T) {
	h, _, _ := newEventHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"empty title", `{"title":"  "}`},
		{"empty location", `{"location":""}`},
		{"bad date", `{"date":"tomorrow"}`},
		{"zero capacity", `{"capacity":0}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodPatch, "/v1/events/e1", tc.body)
			c.SetParamNames("id")
			c.SetParamValues("e1")
			require.NoError(t, h.Update(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestEventListPublishedBadFilter(t *testing.T) {
	h, _, _ := newEventHandler(t)

	c, rec := newTestContext(t, http.MethodGet, "/v1/events?date_from=yesterday", "")
	require.NoError(t, h.ListPublished(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventGetPublishedNotFound(t *testing.T) {
	h, mock, _ := newEventHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM events WHERE id = ?`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "date", "location", "capacity", "status", "created_at", "updated_at"}))

	c, rec := newTestContext(t, http.MethodGet, "/v1/events/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	require.NoError(t, h.GetPublished(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
