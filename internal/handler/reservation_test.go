package handler

import (
	"database/sql"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-reservation/internal/model"
	"github.com/iliyamo/event-reservation/internal/repository"
	"github.com/iliyamo/event-reservation/internal/service"
)

func newReservationHandler(t *testing.T) (*ReservationHandler, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	svc := service.NewReservationService(repository.NewEventRepo(db), repository.NewReservationRepo(db), nil)
	return NewReservationHandler(svc), mock, db
}

func mockReservationRow(id, userID, eventID string, status model.ReservationStatus) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "user_id", "event_id", "status", "created_at", "updated_at"}).
		AddRow(id, userID, eventID, string(status), now, now)
}

func TestReservationCreateRequiresAuth(t *testing.T) {
	h, _, _ := newReservationHandler(t)

	c, rec := newTestContext(t, http.MethodPost, "/v1/reservations", `{"event_id":"e1"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReservationCreateRequiresEventID(t *testing.T) {
	h, _, _ := newReservationHandler(t)

	c, rec := newTestContext(t, http.MethodPost, "/v1/reservations", `{"event_id":"  "}`)
	c.Set("user_id", "u1")
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReservationCancelDispatchesByRole(t *testing.T) {
	t.Run("admin cancels a foreign confirmed reservation", func(t *testing.T) {
		h, mock, _ := newReservationHandler(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`FROM reservations WHERE id = ? FOR UPDATE`)).
			WithArgs("r1").
			WillReturnRows(mockReservationRow("r1", "someone-else", "e1", model.ReservationConfirmed))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE reservations SET status = ?`)).
			WithArgs(string(model.ReservationCanceled), sqlmock.AnyArg(), "r1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		c, rec := newTestContext(t, http.MethodPatch, "/v1/reservations/r1/cancel", "")
		c.SetParamNames("id")
		c.SetParamValues("r1")
		c.Set("user_id", "admin-1")
		c.Set("role", RoleAdmin)

		require.NoError(t, h.Cancel(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("participant may not cancel a foreign reservation", func(t *testing.T) {
		h, mock, _ := newReservationHandler(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`FROM reservations WHERE id = ? FOR UPDATE`)).
			WithArgs("r1").
			WillReturnRows(mockReservationRow("r1", "someone-else", "e1", model.ReservationConfirmed))
		mock.ExpectRollback()

		c, rec := newTestContext(t, http.MethodPatch, "/v1/reservations/r1/cancel", "")
		c.SetParamNames("id")
		c.SetParamValues("r1")
		c.Set("user_id", "u1")
		c.Set("role", "PARTICIPANT")

		require.NoError(t, h.Cancel(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReservationConfirmConflict(t *testing.T) {
	h, mock, _ := newReservationHandler(t)

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM reservations WHERE id = ? FOR UPDATE`)).
		WithArgs("r1").
		WillReturnRows(mockReservationRow("r1", "u1", "e1", model.ReservationPending))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM events WHERE id = ? FOR UPDATE`)).
		WithArgs("e1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "date", "location", "capacity", "status", "created_at", "updated_at"}).
			AddRow("e1", "Go Meetup", "", now, "Paris", 1, string(model.EventPublished), now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM reservations`)).
		WithArgs("e1", string(model.ReservationConfirmed)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	c, rec := newTestContext(t, http.MethodPatch, "/v1/reservations/r1/confirm", "")
	c.SetParamNames("id")
	c.SetParamValues("r1")

	require.NoError(t, h.Confirm(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
