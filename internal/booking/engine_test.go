package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vmaslov/coworking-booking/internal/model"
)

// memSource is an in-memory ConflictSource backed by a slice of bookings.
type memSource struct {
	bookings []model.Booking
}

func (m *memSource) FindOverlapping(_ context.Context, workplaceID uint64, start, end time.Time, excludeID uint64) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range m.bookings {
		if b.WorkplaceID != workplaceID || b.Status != model.BookingStatusActive {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if b.StartTime.Before(end) && start.Before(b.EndTime) {
			out = append(out, b)
		}
	}
	return out, nil
}

func testWorkplace(price string) *model.Workplace {
	return &model.Workplace{
		ID:           7,
		CoworkingID:  1,
		Name:         "Desk 7",
		PricePerHour: decimal.RequireFromString(price),
		IsActive:     true,
	}
}

func at(h int) time.Time {
	return time.Date(2024, 6, 1, h, 0, 0, 0, time.UTC)
}

func TestQuoteRejectsConflictingWindow(t *testing.T) {
	src := &memSource{}
	wp := testWorkplace("500.00")
	now := at(8)

	first, err := Quote(context.Background(), src, wp, 1, at(10), at(12), now, 0)
	if err != nil {
		t.Fatalf("first booking: unexpected error %v", err)
	}
	first.ID = 1
	src.bookings = append(src.bookings, *first)

	// Any window overlapping [10,12) must be rejected.
	cases := []struct{ start, end int }{
		{10, 12}, // identical
		{11, 13}, // tail overlap
		{9, 11},  // head overlap
		{9, 13},  // envelope
		{10, 11}, // contained
	}
	for _, tc := range cases {
		_, err := Quote(context.Background(), src, wp, 2, at(tc.start), at(tc.end), now, 0)
		ce, ok := AsConflict(err)
		if !ok {
			t.Fatalf("window [%d,%d): expected ConflictError, got %v", tc.start, tc.end, err)
		}
		if len(ce.Windows) != 1 || !ce.Windows[0].Start.Equal(at(10)) || !ce.Windows[0].End.Equal(at(12)) {
			t.Fatalf("window [%d,%d): conflict payload %+v does not carry the booked interval", tc.start, tc.end, ce.Windows)
		}
	}
}

func TestQuoteExcludesSelfOnEdit(t *testing.T) {
	src := &memSource{bookings: []model.Booking{{
		ID:          42,
		WorkplaceID: 7,
		StartTime:   at(10),
		EndTime:     at(12),
		Status:      model.BookingStatusActive,
	}}}
	wp := testWorkplace("500.00")

	// Re-booking the exact same window while editing booking 42 must not
	// conflict with itself.
	b, err := Quote(context.Background(), src, wp, 1, at(10), at(12), at(8), 42)
	if err != nil {
		t.Fatalf("edit to own window: unexpected error %v", err)
	}
	if !b.TotalPrice.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("edit price = %s, want 1000.00", b.TotalPrice)
	}

	// Without the exclusion the same request conflicts.
	if _, err := Quote(context.Background(), src, wp, 1, at(10), at(12), at(8), 0); err == nil {
		t.Fatal("expected conflict without exclusion")
	}
}

func TestQuoteTouchingWindowsDoNotConflict(t *testing.T) {
	src := &memSource{bookings: []model.Booking{{
		ID:          1,
		WorkplaceID: 7,
		StartTime:   at(9),
		EndTime:     at(10),
		Status:      model.BookingStatusActive,
	}}}
	wp := testWorkplace("500.00")

	// [09,10) and [10,11) share an endpoint but do not overlap.
	if _, err := Quote(context.Background(), src, wp, 2, at(10), at(11), at(8), 0); err != nil {
		t.Fatalf("touching window rejected: %v", err)
	}
}

func TestQuoteCancelledBookingsDoNotConflict(t *testing.T) {
	src := &memSource{bookings: []model.Booking{{
		ID:          1,
		WorkplaceID: 7,
		StartTime:   at(10),
		EndTime:     at(12),
		Status:      model.BookingStatusCancelled,
	}}}
	wp := testWorkplace("500.00")
	if _, err := Quote(context.Background(), src, wp, 2, at(10), at(12), at(8), 0); err != nil {
		t.Fatalf("cancelled booking still blocks the window: %v", err)
	}
}

func TestQuoteRejectsPastStart(t *testing.T) {
	src := &memSource{}
	wp := testWorkplace("500.00")
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := Quote(context.Background(), src, wp, 1, at(11), at(13), now, 0)
	if !errors.Is(err, ErrPastBooking) {
		t.Fatalf("expected ErrPastBooking, got %v", err)
	}
}

func TestQuoteRejectsInvertedRange(t *testing.T) {
	src := &memSource{}
	wp := testWorkplace("500.00")
	for _, tc := range []struct{ start, end int }{{12, 12}, {13, 12}} {
		_, err := Quote(context.Background(), src, wp, 1, at(tc.start), at(tc.end), at(8), 0)
		if !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("window [%d,%d): expected ErrInvalidRange, got %v", tc.start, tc.end, err)
		}
	}
}

func TestQuoteRejectsInactiveWorkplaceFirst(t *testing.T) {
	src := &memSource{}
	wp := testWorkplace("500.00")
	wp.IsActive = false

	// Inactive wins even over an otherwise invalid range.
	_, err := Quote(context.Background(), src, wp, 1, at(13), at(12), at(8), 0)
	if !errors.Is(err, ErrResourceInactive) {
		t.Fatalf("expected ErrResourceInactive, got %v", err)
	}
}

func TestPriceExactDecimal(t *testing.T) {
	// 2.5 hours at 500.00/hour is exactly 1250.00.
	start := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 1, 16, 30, 0, 0, time.UTC)
	got := Price(decimal.RequireFromString("500.00"), start, end)
	if !got.Equal(decimal.RequireFromString("1250.00")) {
		t.Fatalf("price = %s, want 1250.00", got)
	}

	// 45 minutes at 199.99/hour: 149.9925 rounds to 149.99 for storage.
	end = start.Add(45 * time.Minute)
	got = Price(decimal.RequireFromString("199.99"), start, end)
	if !got.Equal(decimal.RequireFromString("149.99")) {
		t.Fatalf("price = %s, want 149.99", got)
	}
}

func TestSlotTime(t *testing.T) {
	msk := time.FixedZone("UTC+3", 3*60*60)

	got, err := SlotTime("2024-06-02", 1, msk)
	if err != nil {
		t.Fatalf("SlotTime: %v", err)
	}
	want := time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("SlotTime = %s, want %s", got.UTC(), want)
	}

	if _, err := SlotTime("2024-06-02", 24, msk); err == nil {
		t.Fatal("hour 24 accepted")
	}
	if _, err := SlotTime("02.06.2024", 10, msk); err == nil {
		t.Fatal("malformed date accepted")
	}
}
