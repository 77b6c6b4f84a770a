package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/galaxy-cinema-booking/internal/seatmap"
)

// SeatMap returns the fixed hall layout.
func SeatMap(c echo.Context) error {
	return c.JSON(http.StatusOK, seatmap.Grid())
}
