package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestLogger assigns a request id (honouring an incoming X-Request-ID),
// echoes it in the response and logs one line per request.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set(ctxRequestID, rid)
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			var ev *zerolog.Event
			switch {
			case status >= 500:
				ev = log.Error().Err(err)
			case status >= 400:
				ev = log.Warn()
			default:
				ev = log.Info()
			}
			ev = ev.Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("query", req.URL.RawQuery).
				Int("status", status).
				Dur("duration", time.Since(start)).
				Str("ip", c.RealIP()).
				Str("user_agent", req.UserAgent())
			if sub := AdminSubject(c); sub != "" {
				ev = ev.Str("admin", sub)
			}
			ev.Msg("HTTP Request")
			return nil
		}
	}
}

// Recover turns a handler panic into a 500 and logs the stack.
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Interface("error", r).
						Str("stack", string(debug.Stack())).
						Str("request_id", RequestID(c)).
						Str("method", c.Request().Method).
						Str("path", c.Request().URL.Path).
						Msg("Panic recovered")
					err = c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
				}
			}()
			return next(c)
		}
	}
}
