package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-reservation/internal/service"
)

// StatsHandler serves the admin dashboard counters.
type StatsHandler struct {
	Stats *service.StatsService
}

func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	if stats == nil {
		panic("nil service passed to NewStatsHandler")
	}
	return &StatsHandler{Stats: stats}
}

// Get handles GET /v1/admin/stats.
func (h *StatsHandler) Get(c echo.Context) error {
	stats, err := h.Stats.Get(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
