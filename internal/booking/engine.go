package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vmaslov/coworking-booking/internal/model"
)

// secondsPerHour is the divisor for converting an interval length into
// fractional hours.  Division is done in decimal so durations like 2.5h
// price exactly.
var secondsPerHour = decimal.NewFromInt(3600)

// ConflictSource supplies the existing bookings the engine checks a
// request against.  excludeID skips one booking (the one being edited);
// zero excludes nothing.  Implementations must only return bookings that
// still count as conflicts, i.e. ACTIVE ones.
type ConflictSource interface {
	FindOverlapping(ctx context.Context, workplaceID uint64, start, end time.Time, excludeID uint64) ([]model.Booking, error)
}

// Quote validates a requested window against a workplace and prices it.
//
// The checks run in order and the first failure wins:
//  1. the workplace must be active (ErrResourceInactive),
//  2. the start must not be before now (ErrPastBooking),
//  3. the end must be strictly after the start (ErrInvalidRange),
//  4. no active booking of the workplace may overlap the window
//     (*ConflictError, carrying the conflicting intervals).
//
// On success it returns an unpersisted ACTIVE booking with
// TotalPrice = PricePerHour * duration_hours, computed in exact decimal
// arithmetic.  now is injected by the caller for testability.
func Quote(ctx context.Context, src ConflictSource, wp *model.Workplace, userID uint64, start, end, now time.Time, excludeID uint64) (*model.Booking, error) {
	if !wp.IsActive {
		return nil, ErrResourceInactive
	}
	if start.Before(now) {
		return nil, ErrPastBooking
	}
	if !end.After(start) {
		return nil, ErrInvalidRange
	}

	conflicts, err := src.FindOverlapping(ctx, wp.ID, start, end, excludeID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		ce := &ConflictError{Windows: make([]Window, 0, len(conflicts))}
		for _, b := range conflicts {
			ce.Windows = append(ce.Windows, Window{Start: b.StartTime, End: b.EndTime})
		}
		return nil, ce
	}

	return &model.Booking{
		UserID:      userID,
		WorkplaceID: wp.ID,
		StartTime:   start.UTC(),
		EndTime:     end.UTC(),
		TotalPrice:  Price(wp.PricePerHour, start, end),
		Status:      model.BookingStatusActive,
	}, nil
}

// Price computes pricePerHour * duration in hours for the half-open
// interval [start, end), rounded to two decimal places for storage.
// Fractional hours are allowed.
func Price(pricePerHour decimal.Decimal, start, end time.Time) decimal.Decimal {
	seconds := decimal.NewFromInt(int64(end.Sub(start) / time.Second))
	hours := seconds.Div(secondsPerHour)
	return pricePerHour.Mul(hours).Round(2)
}

// SlotTime combines a calendar date ("2006-01-02") and a whole hour in
// the given display timezone into an absolute instant.  Hour granularity
// is enforced here: only hours 0-23 are accepted.
func SlotTime(date string, hour int, loc *time.Location) (time.Time, error) {
	if hour < 0 || hour > 23 {
		return time.Time{}, ErrInvalidRange
	}
	d, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, loc), nil
}
