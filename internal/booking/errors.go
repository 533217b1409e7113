// Package booking implements the conflict detection and pricing rules for
// workplace reservations, plus the derivation of the busy-hours grid used
// by availability views.  The package performs no writes: it reads
// existing bookings through the ConflictSource interface and returns a
// priced, unpersisted booking for the caller to store.  Callers must run
// the check-then-insert sequence inside one transaction (the repository
// layer locks the workplace row) so concurrent requests cannot both pass
// the overlap check.
package booking

import (
	"errors"
	"fmt"
	"time"
)

// Validation failure kinds.  All four are expected, user-correctable
// outcomes and map to 4xx responses at the handler boundary; they are
// never retried.
var (
	// ErrResourceInactive means the workplace does not accept new
	// bookings.  It is reported before any time-range validation.
	ErrResourceInactive = errors.New("workplace is not accepting bookings")

	// ErrPastBooking means the requested start lies before "now".
	ErrPastBooking = errors.New("cannot book in the past")

	// ErrInvalidRange means the requested end is not strictly after the
	// requested start.
	ErrInvalidRange = errors.New("end time must be after start time")
)

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two half-open intervals intersect:
// [s1,e1) overlaps [s2,e2) iff s1 < e2 AND s2 < e1.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// ConflictError is returned when the requested window overlaps existing
// active bookings.  It carries the conflicting intervals so the caller
// can render them.
type ConflictError struct {
	Windows []Window
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("workplace already booked for the requested window (%d conflict(s))", len(e.Windows))
}

// AsConflict unwraps err into a *ConflictError when it is one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
