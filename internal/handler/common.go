// Package handler defines the HTTP handlers of the booking service.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vmaslov/coworking-booking/internal/booking"
	"github.com/vmaslov/coworking-booking/internal/repository"
)

// getUserID extracts the user_id placed in context by the JWT middleware
// and converts it to uint64.  JWT numeric claims arrive as float64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// contextWithTimeout builds a detached context for work that outlives
// the request, such as event publishing from a goroutine.
func contextWithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// conflictWindows renders a conflict error's occupied windows for the
// 409 response body.
func conflictWindows(ce *booking.ConflictError) []echo.Map {
	out := make([]echo.Map, 0, len(ce.Windows))
	for _, w := range ce.Windows {
		out = append(out, echo.Map{"start_time": w.Start, "end_time": w.End})
	}
	return out
}

// bookingErrJSON translates validation and repository failures from the
// booking path into HTTP responses.  Returns false when err was not
// recognized, in which case the caller falls through to a 500.
func bookingErrJSON(c echo.Context, err error) (bool, error) {
	switch {
	case errors.Is(err, booking.ErrResourceInactive):
		return true, c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "workplace is not active"})
	case errors.Is(err, booking.ErrPastBooking):
		return true, c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "start time is in the past"})
	case errors.Is(err, booking.ErrInvalidRange):
		return true, c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "end time must be after start time"})
	case errors.Is(err, repository.ErrWorkplaceNotFound):
		return true, c.JSON(http.StatusNotFound, echo.Map{"error": "workplace not found"})
	case errors.Is(err, repository.ErrBookingNotFound):
		return true, c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, repository.ErrForbidden):
		return true, c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if ce, ok := booking.AsConflict(err); ok {
		return true, c.JSON(http.StatusConflict, echo.Map{
			"error": "time window already booked",
			"busy":  conflictWindows(ce),
		})
	}
	return false, nil
}
