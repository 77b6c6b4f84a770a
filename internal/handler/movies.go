package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
	"github.com/iliyamo/galaxy-cinema-booking/internal/repository"
	"github.com/iliyamo/galaxy-cinema-booking/internal/service"
)

// MovieHandler serves the movie slot directory.
type MovieHandler struct {
	Slots *service.SlotDirectory
}

func NewMovieHandler(slots *service.SlotDirectory) *MovieHandler {
	return &MovieHandler{Slots: slots}
}

// List returns all slots in show-time order.  With ?seed=true an empty
// directory is seeded first.
func (h *MovieHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		slots []model.MovieSlot
		err   error
	)
	if seed, _ := strconv.ParseBool(c.QueryParam("seed")); seed {
		slots, err = h.Slots.EnsureSeeded(ctx)
	} else {
		slots, err = h.Slots.List(ctx)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to fetch movies", err)
	}
	return c.JSON(http.StatusOK, slots)
}

// Seed runs the empty-directory recovery and returns the listing.
func (h *MovieHandler) Seed(c echo.Context) error {
	slots, err := h.Slots.EnsureSeeded(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to seed movies", err)
	}
	return c.JSON(http.StatusOK, slots)
}

// Create stores a new slot and returns it.
func (h *MovieHandler) Create(c echo.Context) error {
	var in model.MovieSlot
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	slot, err := h.Slots.Create(c.Request().Context(), in)
	if err != nil {
		return h.writeError(c, err, "Failed to create movie")
	}
	return c.JSON(http.StatusOK, slot)
}

// Update merges the supplied fields into slot :id and returns the result.
func (h *MovieHandler) Update(c echo.Context) error {
	var p service.SlotPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	slot, err := h.Slots.Update(c.Request().Context(), c.Param("id"), p)
	if err != nil {
		return h.writeError(c, err, "Failed to update movie")
	}
	return c.JSON(http.StatusOK, slot)
}

func (h *MovieHandler) writeError(c echo.Context, err error, msg string) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie", "fields": verr.Fields})
	case errors.Is(err, repository.ErrSlotNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "movie already exists"})
	}
	return fail(c, http.StatusInternalServerError, msg, err)
}
