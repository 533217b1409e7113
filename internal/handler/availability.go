package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vmaslov/coworking-booking/internal/booking"
	"github.com/vmaslov/coworking-booking/internal/config"
	"github.com/vmaslov/coworking-booking/internal/repository"
)

// AvailabilityHandler renders the busy grid of a workplace.
type AvailabilityHandler struct {
	Cfg           config.Config
	WorkplaceRepo *repository.WorkplaceRepo
	BookingRepo   *repository.BookingRepo
}

// Get returns the occupied hour buckets of a workplace keyed by date in
// the display timezone.  Bookings whose interval ended less than an hour
// ago are still included, so a grid rendered right around a booking's
// end does not flicker.  The optional exclude_booking_id query parameter
// hides one booking, which keeps a booking's own hours bookable on its
// edit form.
func (h *AvailabilityHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.WorkplaceRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrWorkplaceNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "workplace not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var excludeID uint64
	if s := c.QueryParam("exclude_booking_id"); s != "" {
		excludeID, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid exclude_booking_id"})
		}
	}

	from := time.Now().UTC().Add(-booking.GraceWindow)
	active, err := h.BookingRepo.ListActiveFrom(ctx, id, from, excludeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	busy := booking.Grid(active, h.Cfg.DisplayTimezone)
	return c.JSON(http.StatusOK, echo.Map{
		"workplace_id": id,
		"timezone":     h.Cfg.DisplayTimezone.String(),
		"hours":        slotHours(),
		"busy":         busy,
	})
}

// slotHours lists the whole-hour start choices a booking form offers.
func slotHours() []int {
	hours := make([]int, 24)
	for i := range hours {
		hours[i] = i
	}
	return hours
}
