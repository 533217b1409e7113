package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatusPaid is the only payment status currently issued.  The
// column is still an enum so that refunds or pending states can be added
// without a data migration.
const PaymentStatusPaid = "PAID"

// Payment is the one-to-one payment record of a booking.  A payment is
// created after the booking exists and its amount must equal the
// booking's total price at creation time.  Deleting the booking cascades
// to the payment.
//
// Fields:
//  ID            – primary key identifier.
//  BookingID     – booking being paid (unique).
//  Amount        – amount paid, equals bookings.total_price.
//  PaymentMethod – free-form method label ("card", "cash", ...).
//  PaymentRef    – server-generated reference for reconciliation.
//  Status        – payment state.
//  PaidAt        – when the payment was recorded.
type Payment struct {
	ID            uint64          // payments.id
	BookingID     uint64          // payments.booking_id (unique)
	Amount        decimal.Decimal // payments.amount
	PaymentMethod string          // payments.payment_method
	PaymentRef    string          // payments.payment_ref
	Status        string          // payments.status
	PaidAt        time.Time       // payments.paid_at
}
