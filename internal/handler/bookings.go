package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/galaxy-cinema-booking/internal/middleware"
	"github.com/iliyamo/galaxy-cinema-booking/internal/service"
)

// BookingHandler serves the booking record store.
type BookingHandler struct {
	Bookings *service.BookingService
}

func NewBookingHandler(b *service.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: b}
}

// List returns every booking, newest first.
func (h *BookingHandler) List(c echo.Context) error {
	list, err := h.Bookings.List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to fetch bookings", err)
	}
	return c.JSON(http.StatusOK, list)
}

// Create stores a booking and returns it with 201.  Rejected input is
// reported with the same generic 500 as a storage failure; the field
// details only go to the log.
func (h *BookingHandler) Create(c echo.Context) error {
	var in service.BookingInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	b, err := h.Bookings.Create(c.Request().Context(), in)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			log.Warn().Str("request_id", middleware.RequestID(c)).Interface("fields", verr.Fields).Msg("booking rejected")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create booking"})
		}
		return fail(c, http.StatusInternalServerError, "Failed to create booking", err)
	}
	return c.JSON(http.StatusCreated, b)
}

// DeleteAll removes every booking.  This cannot be undone.
func (h *BookingHandler) DeleteAll(c echo.Context) error {
	if _, err := h.Bookings.DeleteAll(c.Request().Context()); err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to clear bookings", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All bookings cleared successfully"})
}
