package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-reservation/internal/service"
)

// ReservationHandler exposes the reservation workflow: participants
// request and cancel reservations, admins confirm, refuse and cancel
// them.
type ReservationHandler struct {
	Reservations *service.ReservationService
}

func NewReservationHandler(reservations *service.ReservationService) *ReservationHandler {
	if reservations == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: reservations}
}

// Create handles POST /v1/reservations. The body names the event; the
// reserving user comes from the token.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		EventID string `json:"event_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.EventID = strings.TrimSpace(body.EventID)
	if body.EventID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id is required"})
	}

	res, err := h.Reservations.Create(c.Request().Context(), body.EventID, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Confirm handles PATCH /v1/reservations/:id/confirm (admin only).
func (h *ReservationHandler) Confirm(c echo.Context) error {
	res, err := h.Reservations.Confirm(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Refuse handles PATCH /v1/reservations/:id/refuse (admin only).
func (h *ReservationHandler) Refuse(c echo.Context) error {
	res, err := h.Reservations.Refuse(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Cancel handles PATCH /v1/reservations/:id/cancel. Admins may cancel
// any non-terminal reservation; participants only their own active
// ones.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	id := c.Param("id")

	if isAdmin(c) {
		res, err := h.Reservations.CancelByAdmin(ctx, id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, res)
	}
	res, err := h.Reservations.CancelByParticipant(ctx, id, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Get handles GET /v1/reservations/:id. Admins see any reservation,
// participants only their own.
func (h *ReservationHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	detail, err := h.Reservations.GetDetailForActor(c.Request().Context(), c.Param("id"), userID, isAdmin(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// ListMine handles GET /v1/my-reservations.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Reservations.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

// ListByEvent handles GET /v1/events/:id/reservations (admin only).
func (h *ReservationHandler) ListByEvent(c echo.Context) error {
	details, err := h.Reservations.ListByEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}
