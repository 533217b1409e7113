package booking

import (
	"sort"
	"time"

	"github.com/vmaslov/coworking-booking/internal/model"
)

// GraceWindow is how far behind "now" availability queries look, so that
// a booking that started shortly before now but is still in progress
// keeps showing up in the grid.
const GraceWindow = time.Hour

// Grid expands bookings into the occupied whole-hour buckets of the
// display timezone, grouped by calendar date.  Keys are "2006-01-02"
// dates; values are ascending, deduplicated hours of day.  A bucket
// [h, h+1) counts as occupied when the booking interval intersects it at
// all, so non-whole-hour boundaries still mark every touched hour.  A
// booking that crosses midnight after conversion contributes buckets to
// both dates.
//
// Cancelled bookings are skipped.  The transformation is pure: identical
// input yields identical output.
func Grid(bookings []model.Booking, loc *time.Location) map[string][]int {
	occupied := make(map[string]map[int]struct{})
	for _, b := range bookings {
		if b.Status == model.BookingStatusCancelled {
			continue
		}
		start := b.StartTime.In(loc)
		end := b.EndTime.In(loc)
		if !end.After(start) {
			continue
		}
		// Floor the start to its containing hour in local wall time, then
		// walk hour by hour while the bucket start is inside the interval.
		cur := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), 0, 0, 0, loc)
		for cur.Before(end) {
			day := cur.Format("2006-01-02")
			hours, ok := occupied[day]
			if !ok {
				hours = make(map[int]struct{})
				occupied[day] = hours
			}
			hours[cur.Hour()] = struct{}{}
			cur = cur.Add(time.Hour)
		}
	}

	out := make(map[string][]int, len(occupied))
	for day, hours := range occupied {
		list := make([]int, 0, len(hours))
		for h := range hours {
			list = append(list, h)
		}
		sort.Ints(list)
		out[day] = list
	}
	return out
}
