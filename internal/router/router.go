// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-reservation/internal/handler"
	"github.com/iliyamo/event-reservation/internal/middleware"
)

// RegisterRoutes registers the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated browse endpoints. The
// cache middleware, when non-nil, wraps the listing and detail routes.
func RegisterPublic(e *echo.Echo, ev *handler.EventHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/events", ev.ListPublished)
	g.GET("/events/:id", ev.GetPublished)
}

// RegisterParticipant registers endpoints available to any
// authenticated user.
func RegisterParticipant(e *echo.Echo, r *handler.ReservationHandler, u *handler.UserHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	g.GET("/me", u.Me)
	g.POST("/reservations", r.Create)
	g.GET("/my-reservations", r.ListMine)
	g.GET("/reservations/:id", r.Get)
	// Cancellation is shared: the handler dispatches on the caller's
	// role, so both admins and participants hit the same route.
	g.PATCH("/reservations/:id/cancel", r.Cancel)
}

// RegisterAdmin registers the event lifecycle, reservation moderation
// and dashboard endpoints. All routes require the ADMIN role.
func RegisterAdmin(e *echo.Echo, ev *handler.EventHandler, r *handler.ReservationHandler, st *handler.StatsHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleAdmin),
	)
	g.POST("/events", ev.Create)
	g.PATCH("/events/:id", ev.Update)
	g.PATCH("/events/:id/publish", ev.Publish)
	g.PATCH("/events/:id/cancel", ev.Cancel)
	g.GET("/events/:id/reservations", r.ListByEvent)

	g.PATCH("/reservations/:id/confirm", r.Confirm)
	g.PATCH("/reservations/:id/refuse", r.Refuse)

	g.GET("/admin/events", ev.ListAll)
	g.GET("/admin/stats", st.Get)
}
