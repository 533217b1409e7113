package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"github.com/vmaslov/coworking-booking/internal/model"
)

func newTestBooking(userID, workplaceID uint64, start, end time.Time) *model.Booking {
	return &model.Booking{
		UserID:      userID,
		WorkplaceID: workplaceID,
		StartTime:   start,
		EndTime:     end,
		TotalPrice:  decimal.RequireFromString("1000.00"),
		Status:      model.BookingStatusActive,
	}
}

func TestFindOverlappingQueryShape(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "workplace_id", "start_time", "end_time",
		"total_price", "status", "created_at", "updated_at",
	}).AddRow(7, 3, 5, start.Add(time.Hour), end.Add(time.Hour), "1500.00", "ACTIVE", start, start)

	// Window args go end-first: start_time < ? takes the requested end,
	// end_time > ? takes the requested start.
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs(uint64(5), end, start, uint64(0)).
		WillReturnRows(rows)

	repo := NewBookingRepo(db)
	got, err := repo.FindOverlapping(context.Background(), 5, start, end, 0)
	if err != nil {
		t.Fatalf("FindOverlapping: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 overlapping booking, got %d", len(got))
	}
	if got[0].ID != 7 {
		t.Fatalf("unexpected booking id %d", got[0].ID)
	}
	if !got[0].TotalPrice.Equal(decimal.RequireFromString("1500.00")) {
		t.Fatalf("total price scanned wrong: %s", got[0].TotalPrice)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelAlreadyCancelled(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Status guard means a second cancel touches zero rows.
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewBookingRepo(db)
	if err := repo.Cancel(context.Background(), 9); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateTxInsertsAndReloads(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "workplace_id", "start_time", "end_time",
			"total_price", "status", "created_at", "updated_at",
		}).AddRow(42, 3, 5, start, end, "1000.00", "ACTIVE", start, start))
	mock.ExpectCommit()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	repo := NewBookingRepo(db)
	booking := newTestBooking(3, 5, start, end)
	if err := repo.CreateTx(context.Background(), tx, booking); err != nil {
		t.Fatalf("CreateTx: %v", err)
	}
	if booking.ID != 42 {
		t.Fatalf("generated id not assigned, got %d", booking.ID)
	}
	if booking.Status != "ACTIVE" {
		t.Fatalf("status after reload: %s", booking.Status)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
