package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-reservation/internal/model"
	"github.com/iliyamo/event-reservation/internal/service"
)

// EventHandler exposes event lifecycle and browsing endpoints.
type EventHandler struct {
	Events *service.EventService
}

func NewEventHandler(events *service.EventService) *EventHandler {
	if events == nil {
		panic("nil service passed to NewEventHandler")
	}
	return &EventHandler{Events: events}
}

type createEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
}

// Create handles POST /v1/events. New events always start as drafts.
func (h *EventHandler) Create(c echo.Context) error {
	var body createEventRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Title = strings.TrimSpace(body.Title)
	body.Location = strings.TrimSpace(body.Location)
	if body.Title == "" || body.Location == "" || body.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, date and location are required"})
	}
	date, err := time.Parse(time.RFC3339, body.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be RFC 3339"})
	}
	if body.Capacity < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be at least 1"})
	}

	ev, err := h.Events.Create(c.Request().Context(), model.Event{
		Title:       body.Title,
		Description: body.Description,
		Date:        date,
		Location:    body.Location,
		Capacity:    body.Capacity,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, ev)
}

type updateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Location    *string `json:"location"`
	Capacity    *int    `json:"capacity"`
}

// Update handles PATCH /v1/events/:id. Only the provided fields change;
// status is never writable here.
func (h *EventHandler) Update(c echo.Context) error {
	var body updateEventRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var patch model.EventPatch
	if body.Title != nil {
		t := strings.TrimSpace(*body.Title)
		if t == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "title cannot be empty"})
		}
		patch.Title = &t
	}
	patch.Description = body.Description
	if body.Date != nil {
		d, err := time.Parse(time.RFC3339, *body.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be RFC 3339"})
		}
		patch.Date = &d
	}
	if body.Location != nil {
		l := strings.TrimSpace(*body.Location)
		if l == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "location cannot be empty"})
		}
		patch.Location = &l
	}
	if body.Capacity != nil {
		if *body.Capacity < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be at least 1"})
		}
		patch.Capacity = body.Capacity
	}

	ev, err := h.Events.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// Publish handles PATCH /v1/events/:id/publish. Publishing an already
// published event succeeds without change.
func (h *EventHandler) Publish(c echo.Context) error {
	ev, err := h.Events.Publish(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// Cancel handles PATCH /v1/events/:id/cancel.
func (h *EventHandler) Cancel(c echo.Context) error {
	ev, err := h.Events.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// ListPublished handles GET /v1/events. Optional query parameters:
// date_from and date_to (RFC 3339) bound the event date, location is a
// case-insensitive substring match. Results are ordered by date
// ascending.
func (h *EventHandler) ListPublished(c echo.Context) error {
	var f model.EventFilters
	if v := c.QueryParam("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_from must be RFC 3339"})
		}
		f.DateFrom = &t
	}
	if v := c.QueryParam("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_to must be RFC 3339"})
		}
		f.DateTo = &t
	}
	f.Location = strings.TrimSpace(c.QueryParam("location"))

	events, err := h.Events.ListPublished(c.Request().Context(), f)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}

// GetPublished handles GET /v1/events/:id. Drafts and cancelled events
// are indistinguishable from missing ones.
func (h *EventHandler) GetPublished(c echo.Context) error {
	ev, err := h.Events.GetPublished(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// ListAll handles GET /v1/admin/events: every event regardless of
// status, newest date first.
func (h *EventHandler) ListAll(c echo.Context) error {
	events, err := h.Events.ListAll(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}
