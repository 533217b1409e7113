package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vmaslov/coworking-booking/internal/model"
)

// PaymentRepo records booking payments.  Each booking gets at most one
// payment; the unique key on booking_id backs that up at the database
// level.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo constructs a PaymentRepo.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// Create inserts a payment row.  A second payment for the same booking
// hits the unique key and comes back as ErrAlreadyPaid.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	const q = `INSERT INTO payments (booking_id, amount, payment_method, payment_ref, status, paid_at)
VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		p.BookingID, p.Amount, p.PaymentMethod, p.PaymentRef, p.Status, p.PaidAt.UTC())
	if err != nil {
		if isDuplicateErr(err) {
			return ErrAlreadyPaid
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

const paymentColumns = `id, booking_id, amount, payment_method, payment_ref, status, paid_at`

func scanPayment(row interface {
	Scan(dest ...any) error
}, p *model.Payment) error {
	return row.Scan(&p.ID, &p.BookingID, &p.Amount, &p.PaymentMethod, &p.PaymentRef, &p.Status, &p.PaidAt)
}

// GetByBooking returns the payment attached to a booking, if any.
func (r *PaymentRepo) GetByBooking(ctx context.Context, bookingID uint64) (*model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = ?`
	var p model.Payment
	if err := scanPayment(r.db.QueryRowContext(ctx, q, bookingID), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ExistsForBooking reports whether the booking already has a payment.
func (r *PaymentRepo) ExistsForBooking(ctx context.Context, bookingID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM payments WHERE booking_id = ? LIMIT 1`, bookingID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count reports the total number of recorded payments.
func (r *PaymentRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments`).Scan(&n)
	return n, err
}
