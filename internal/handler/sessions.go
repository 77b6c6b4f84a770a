package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/galaxy-cinema-booking/internal/service"
	"github.com/iliyamo/galaxy-cinema-booking/internal/session"
	"github.com/iliyamo/galaxy-cinema-booking/internal/wizard"
)

// SessionHandler drives booking wizard sessions over HTTP.
type SessionHandler struct {
	Flow *service.BookingFlow
}

func NewSessionHandler(f *service.BookingFlow) *SessionHandler {
	return &SessionHandler{Flow: f}
}

// Create opens a session in the details step.
func (h *SessionHandler) Create(c echo.Context) error {
	v, err := h.Flow.Start(c.Request().Context())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *SessionHandler) Get(c echo.Context) error {
	v, err := h.Flow.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// Event applies one wizard event.  Validation problems are part of the
// 200 response; an event the current step does not accept is a 409.
func (h *SessionHandler) Event(c echo.Context) error {
	var ev wizard.Event
	if err := c.Bind(&ev); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if ev.Type == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event type is required"})
	}
	v, err := h.Flow.Dispatch(c.Request().Context(), c.Param("id"), ev)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *SessionHandler) Tickets(c echo.Context) error {
	tickets, err := h.Flow.Tickets(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, tickets)
}

// PDF downloads the issued tickets as one document.
func (h *SessionHandler) PDF(c echo.Context) error {
	doc, name, err := h.Flow.PDF(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, "application/pdf", doc)
}

func (h *SessionHandler) Delete(c echo.Context) error {
	if err := h.Flow.End(c.Request().Context(), c.Param("id")); err != nil {
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SessionHandler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	case errors.Is(err, session.ErrLocked):
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is already being submitted"})
	case errors.Is(err, wizard.ErrInvalidTransition), errors.Is(err, service.ErrNotIssued):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, wizard.ErrUnknownEvent):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return fail(c, http.StatusInternalServerError, "Session request failed", err)
}
