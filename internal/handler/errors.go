// Package handler exposes the HTTP API: the movie slot and booking
// resources used by the booking and admin pages, the server-held booking
// wizard sessions with their ticket downloads, the seat map and the admin
// login.  Every error response is {"error": string}.
package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/galaxy-cinema-booking/internal/middleware"
)

// fail logs err with the request id and writes a generic message.  Store
// and driver errors never reach the client.
func fail(c echo.Context, status int, msg string, err error) error {
	log.Error().Err(err).
		Str("request_id", middleware.RequestID(c)).
		Str("path", c.Path()).
		Msg(msg)
	return c.JSON(status, echo.Map{"error": msg})
}
