package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-reservation/internal/repository"
	"github.com/iliyamo/event-reservation/internal/service"
)

// RoleAdmin matches the "role" claim carried by admin tokens. Any other
// value is treated as a participant.
const RoleAdmin = "ADMIN"

// getUserID extracts the authenticated user's ID from the context. The
// JWT middleware stores it as a string UUID.
func getUserID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("invalid user_id in context")
}

func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == RoleAdmin
}

// serviceError maps service and repository sentinel errors to HTTP
// responses. Missing resources become 404, state-machine violations
// 400, capacity and duplicate conflicts 409, ownership failures 403.
// Anything unrecognised is a 500 with a generic message.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrEventNotFound),
		errors.Is(err, repository.ErrReservationNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEventFull),
		errors.Is(err, service.ErrAlreadyReserved):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotReservationOwner),
		errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrCanceledEventModify),
		errors.Is(err, service.ErrCanceledEventPublish),
		errors.Is(err, service.ErrCapacityBelowConfirmed),
		errors.Is(err, service.ErrEventNotPublished),
		errors.Is(err, service.ErrConfirmNotPending),
		errors.Is(err, service.ErrRefuseNotPending),
		errors.Is(err, service.ErrReservationNotCancellable):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	c.Logger().Errorf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
