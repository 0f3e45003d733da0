// Package handler contains the HTTP handlers for the event reservation
// API. Handlers bind and validate request payloads, call into the
// service layer and translate its errors to HTTP responses.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a liveness endpoint for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
