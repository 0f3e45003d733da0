package handler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-reservation/internal/repository"
	"github.com/iliyamo/event-reservation/internal/service"
)

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"event not found", repository.ErrEventNotFound, http.StatusNotFound},
		{"reservation not found", repository.ErrReservationNotFound, http.StatusNotFound},
		{"user not found", repository.ErrUserNotFound, http.StatusNotFound},
		{"event full", service.ErrEventFull, http.StatusConflict},
		{"already reserved", service.ErrAlreadyReserved, http.StatusConflict},
		{"not owner", service.ErrNotReservationOwner, http.StatusForbidden},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"canceled modify", service.ErrCanceledEventModify, http.StatusBadRequest},
		{"canceled publish", service.ErrCanceledEventPublish, http.StatusBadRequest},
		{"capacity below confirmed", service.ErrCapacityBelowConfirmed, http.StatusBadRequest},
		{"not published", service.ErrEventNotPublished, http.StatusBadRequest},
		{"confirm not pending", service.ErrConfirmNotPending, http.StatusBadRequest},
		{"refuse not pending", service.ErrRefuseNotPending, http.StatusBadRequest},
		{"not cancellable", service.ErrReservationNotCancellable, http.StatusBadRequest},
		{"unknown", errors.New("driver broke"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodGet, "/", "")
			require.NoError(t, serviceError(c, tc.err))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestGetUserID(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/", "")
	_, err := getUserID(c)
	assert.Error(t, err)

	c.Set("user_id", "3f8e8b1a-6f3f-4c2e-9f60-1df1b2c0a111")
	id, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, "3f8e8b1a-6f3f-4c2e-9f60-1df1b2c0a111", id)
}

func TestIsAdmin(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/", "")
	assert.False(t, isAdmin(c))

	c.Set("role", "PARTICIPANT")
	assert.False(t, isAdmin(c))

	c.Set("role", RoleAdmin)
	assert.True(t, isAdmin(c))
}
