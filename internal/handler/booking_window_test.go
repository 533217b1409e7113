package handler

import (
	"testing"
	"time"
)

func TestWindowSlotSameDay(t *testing.T) {
	start := 9
	end := 11
	req := bookingReq{Date: "2026-03-02", StartHour: &start, EndHour: &end}

	s, e, err := req.window(time.UTC)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if !s.Equal(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", s)
	}
	if !e.Equal(time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", e)
	}
}

func TestWindowSlotSpansDays(t *testing.T) {
	start := 22
	end := 2
	req := bookingReq{Date: "2026-03-02", EndDate: "2026-03-03", StartHour: &start, EndHour: &end}

	s, e, err := req.window(time.UTC)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if !s.Equal(time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", s)
	}
	if !e.Equal(time.Date(2026, 3, 3, 2, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", e)
	}
}

func TestWindowSlotEndHourMidnight(t *testing.T) {
	start := 20
	end := 24
	req := bookingReq{Date: "2026-03-02", EndDate: "2026-03-04", StartHour: &start, EndHour: &end}

	_, e, err := req.window(time.UTC)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if !e.Equal(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v, want midnight after the end date", e)
	}
}

func TestWindowSlotUsesDisplayTimezone(t *testing.T) {
	start := 10
	end := 12
	msk := time.FixedZone("UTC+3", 3*60*60)
	req := bookingReq{Date: "2026-03-02", StartHour: &start, EndHour: &end}

	s, _, err := req.window(msk)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if !s.Equal(time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, want 07:00 UTC", s)
	}
}

func TestWindowIncompleteSlotForm(t *testing.T) {
	start := 9
	for _, req := range []bookingReq{
		{Date: "2026-03-02"},
		{Date: "2026-03-02", StartHour: &start},
		{StartHour: &start},
	} {
		if _, _, err := req.window(time.UTC); err == nil {
			t.Errorf("window(%+v) accepted an incomplete slot form", req)
		}
	}
}

func TestWindowRFC3339(t *testing.T) {
	req := bookingReq{StartTime: "2026-03-02T09:00:00Z", EndTime: "2026-03-03T11:00:00Z"}

	s, e, err := req.window(time.UTC)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if !s.Equal(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)) || !e.Equal(time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC)) {
		t.Errorf("window = [%v, %v)", s, e)
	}
}
