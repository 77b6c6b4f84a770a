// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/galaxy-cinema-booking/internal/handler"
	"github.com/iliyamo/galaxy-cinema-booking/internal/middleware"
)

// Deps is everything Register needs.  Cache and RateLimit may wrap a nil
// Redis client, in which case they pass requests straight through.
type Deps struct {
	Movies    *handler.MovieHandler
	Bookings  *handler.BookingHandler
	Sessions  *handler.SessionHandler
	Auth      *handler.AuthHandler
	Cache     *middleware.ResponseCache
	RateLimit echo.MiddlewareFunc
	// AdminSecret enables the admin guard when non-empty.
	AdminSecret string
}

// Register mounts every route.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")
	admin := middleware.AdminGuard(d.AdminSecret)
	limit := d.RateLimit
	if limit == nil {
		limit = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	// movie slots
	api.GET("/movies", d.Movies.List, d.Cache.Middleware())
	api.POST("/movies", d.Movies.Create, admin)
	api.POST("/movies/seed", d.Movies.Seed, admin)
	api.PUT("/movies/:id", d.Movies.Update, admin)

	// bookings
	api.GET("/bookings", d.Bookings.List, admin)
	api.POST("/bookings", d.Bookings.Create, limit)
	api.DELETE("/bookings", d.Bookings.DeleteAll, admin)

	api.GET("/seatmap", handler.SeatMap)

	// wizard sessions
	s := api.Group("/sessions")
	s.POST("", d.Sessions.Create, limit)
	s.GET("/:id", d.Sessions.Get)
	s.POST("/:id/events", d.Sessions.Event)
	s.GET("/:id/tickets", d.Sessions.Tickets)
	s.GET("/:id/tickets.pdf", d.Sessions.PDF)
	s.DELETE("/:id", d.Sessions.Delete)

	api.POST("/admin/login", d.Auth.Login, limit)
}
