package middleware

import "github.com/labstack/echo/v4"

// Context keys set by AdminGuard and RequestLogger.
const (
	ctxAdminSubject = "admin_sub"
	ctxRequestID    = "request_id"
)

// AdminSubject returns the subject of the admin token AdminGuard accepted,
// or "" on routes the guard does not cover.
func AdminSubject(c echo.Context) string {
	s, _ := c.Get(ctxAdminSubject).(string)
	return s
}

// RequestID returns the id RequestLogger assigned to the request.
func RequestID(c echo.Context) string {
	s, _ := c.Get(ctxRequestID).(string)
	return s
}
