package booking

import (
	"reflect"
	"testing"
	"time"

	"github.com/vmaslov/coworking-booking/internal/model"
)

func utc(y int, mo time.Month, d, h, min int) time.Time {
	return time.Date(y, mo, d, h, min, 0, 0, time.UTC)
}

func activeBooking(start, end time.Time) model.Booking {
	return model.Booking{WorkplaceID: 7, StartTime: start, EndTime: end, Status: model.BookingStatusActive}
}

func TestGridMidnightCrossingInDisplayTimezone(t *testing.T) {
	msk := time.FixedZone("UTC+3", 3*60*60)

	// [2024-06-01 22:00Z, 2024-06-02 02:00Z) is 01:00-05:00 on 2024-06-02
	// at UTC+3: hours 1..4 on the following calendar date.
	got := Grid([]model.Booking{
		activeBooking(utc(2024, 6, 1, 22, 0), utc(2024, 6, 2, 2, 0)),
	}, msk)

	want := map[string][]int{"2024-06-02": {1, 2, 3, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("grid = %v, want %v", got, want)
	}
}

func TestGridSpansBothDatesAroundLocalMidnight(t *testing.T) {
	msk := time.FixedZone("UTC+3", 3*60*60)

	// 20:00Z-23:00Z is 23:00-02:00 local: one bucket on the first date,
	// two on the second.
	got := Grid([]model.Booking{
		activeBooking(utc(2024, 6, 1, 20, 0), utc(2024, 6, 1, 23, 0)),
	}, msk)

	want := map[string][]int{
		"2024-06-01": {23},
		"2024-06-02": {0, 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("grid = %v, want %v", got, want)
	}
}

func TestGridPartialHoursMarkEveryTouchedBucket(t *testing.T) {
	// Historical rows may carry non-whole-hour boundaries.  [09:30, 11:15)
	// intersects buckets 9, 10 and 11.
	got := Grid([]model.Booking{
		activeBooking(utc(2024, 6, 1, 9, 30), utc(2024, 6, 1, 11, 15)),
	}, time.UTC)

	want := map[string][]int{"2024-06-01": {9, 10, 11}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("grid = %v, want %v", got, want)
	}
}

func TestGridMergesAndDeduplicatesHours(t *testing.T) {
	got := Grid([]model.Booking{
		activeBooking(utc(2024, 6, 1, 9, 0), utc(2024, 6, 1, 11, 0)),
		activeBooking(utc(2024, 6, 1, 10, 30), utc(2024, 6, 1, 12, 0)),
		activeBooking(utc(2024, 6, 1, 15, 0), utc(2024, 6, 1, 16, 0)),
	}, time.UTC)

	want := map[string][]int{"2024-06-01": {9, 10, 11, 15}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("grid = %v, want %v", got, want)
	}
}

func TestGridSkipsCancelled(t *testing.T) {
	cancelled := activeBooking(utc(2024, 6, 1, 9, 0), utc(2024, 6, 1, 11, 0))
	cancelled.Status = model.BookingStatusCancelled

	got := Grid([]model.Booking{cancelled}, time.UTC)
	if len(got) != 0 {
		t.Fatalf("cancelled booking produced buckets: %v", got)
	}
}

func TestGridIdempotent(t *testing.T) {
	msk := time.FixedZone("UTC+3", 3*60*60)
	in := []model.Booking{
		activeBooking(utc(2024, 6, 1, 22, 0), utc(2024, 6, 2, 2, 0)),
		activeBooking(utc(2024, 6, 1, 8, 0), utc(2024, 6, 1, 9, 0)),
	}

	first := Grid(in, msk)
	second := Grid(in, msk)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("grid not idempotent: %v vs %v", first, second)
	}
}
