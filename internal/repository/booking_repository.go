package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vmaslov/coworking-booking/internal/model"
)

// BookingRepo provides persistence for bookings.  All timestamp columns
// are stored in UTC.  Writes that depend on the overlap check run
// through Tx variants so the caller can wrap the check-then-insert
// sequence in one transaction; see WorkplaceRepo.LockTx for the per
// workplace row lock that serializes concurrent bookings.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for transaction management.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, user_id, workplace_id, start_time, end_time, total_price, status, created_at, updated_at`

func scanBooking(row interface {
	Scan(dest ...any) error
}, b *model.Booking) error {
	return row.Scan(&b.ID, &b.UserID, &b.WorkplaceID, &b.StartTime, &b.EndTime, &b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

// overlapQuery selects active bookings of a workplace intersecting the
// half-open window [start, end): r.start < end AND r.end > start.  The
// exclude id lets an edit skip the booking being edited; zero matches no
// row and therefore excludes nothing.
const overlapQuery = `SELECT ` + bookingColumns + ` FROM bookings
	WHERE workplace_id = ? AND status = 'ACTIVE'
	  AND start_time < ? AND end_time > ?
	  AND id <> ?
	ORDER BY start_time`

// FindOverlapping implements the conflict source read outside of a
// transaction, for read-only validation previews.
func (r *BookingRepo) FindOverlapping(ctx context.Context, workplaceID uint64, start, end time.Time, excludeID uint64) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, overlapQuery, workplaceID, end.UTC(), start.UTC(), excludeID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// TxSource adapts a transaction into the engine's conflict source so the
// overlap check observes the same snapshot the insert will run in.
func (r *BookingRepo) TxSource(tx *sql.Tx) *TxBookingSource { return &TxBookingSource{tx: tx} }

// TxBookingSource reads overlapping bookings inside a transaction.
type TxBookingSource struct {
	tx *sql.Tx
}

// FindOverlapping mirrors BookingRepo.FindOverlapping within the
// transaction scope.
func (s *TxBookingSource) FindOverlapping(ctx context.Context, workplaceID uint64, start, end time.Time, excludeID uint64) ([]model.Booking, error) {
	rows, err := s.tx.QueryContext(ctx, overlapQuery, workplaceID, end.UTC(), start.UTC(), excludeID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]model.Booking, error) {
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTx inserts a booking within an existing transaction and
// populates the generated ID plus timestamp defaults.  The caller must
// commit or roll back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, workplace_id, start_time, end_time, total_price, status)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.UserID, b.WorkplaceID, b.StartTime.UTC(), b.EndTime.UTC(), b.TotalPrice, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	return scanBooking(tx.QueryRowContext(ctx, sel, b.ID), b)
}

// UpdateWindowTx rewrites the time range and total price of a booking
// within an existing transaction.
func (r *BookingRepo) UpdateWindowTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `UPDATE bookings SET start_time = ?, end_time = ?, total_price = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q, b.StartTime.UTC(), b.EndTime.UTC(), b.TotalPrice, b.ID); err != nil {
		return err
	}
	const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	return scanBooking(tx.QueryRowContext(ctx, sel, b.ID), b)
}

// GetByID fetches a booking regardless of owner.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	var b model.Booking
	if err := scanBooking(r.db.QueryRowContext(ctx, q, id), &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetByIDForUser fetches a booking and enforces ownership: a row owned
// by someone else yields ErrForbidden so handlers can answer 403.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Booking, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}

// ListByUser returns the user's bookings, most recent start first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// ListActiveFrom returns the workplace's active bookings whose interval
// has not ended before the given instant, ordered by start; used to feed
// the busy grid (from already includes the look-back grace).  excludeID
// skips one booking when the grid is rendered for an edit form.
func (r *BookingRepo) ListActiveFrom(ctx context.Context, workplaceID uint64, from time.Time, excludeID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
		WHERE workplace_id = ? AND status = 'ACTIVE' AND end_time >= ? AND id <> ?
		ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q, workplaceID, from.UTC(), excludeID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// Cancel soft-deletes a booking by flipping its status to CANCELLED.
// Cancelled rows stop counting as conflicts but remain for payment
// reconciliation.  Returns ErrBookingNotFound when no active row
// matched.
func (r *BookingRepo) Cancel(ctx context.Context, id uint64) error {
	const q = `UPDATE bookings SET status = 'CANCELLED' WHERE id = ? AND status = 'ACTIVE'`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// CountFutureActiveByWorkplace reports how many active bookings of the
// workplace end after the given instant.  Used to refuse inventory
// deletions that would orphan future bookings.
func (r *BookingRepo) CountFutureActiveByWorkplace(ctx context.Context, workplaceID uint64, now time.Time) (int64, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE workplace_id = ? AND status = 'ACTIVE' AND end_time > ?`
	var n int64
	err := r.db.QueryRowContext(ctx, q, workplaceID, now.UTC()).Scan(&n)
	return n, err
}

// CountFutureActiveByCoworking is CountFutureActiveByWorkplace across
// every workplace of a coworking.
func (r *BookingRepo) CountFutureActiveByCoworking(ctx context.Context, coworkingID uint64, now time.Time) (int64, error) {
	const q = `SELECT COUNT(*) FROM bookings b
		JOIN workplaces w ON w.id = b.workplace_id
		WHERE w.coworking_id = ? AND b.status = 'ACTIVE' AND b.end_time > ?`
	var n int64
	err := r.db.QueryRowContext(ctx, q, coworkingID, now.UTC()).Scan(&n)
	return n, err
}
