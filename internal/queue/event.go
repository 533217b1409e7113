// Package queue defines message payloads exchanged over the message broker
// and the background consumer that persists them to the booking log.
package queue

// Queue names used for publishing and consuming.  The routing key equals
// the queue name; everything goes through the default exchange.
const (
	QueueBookingConfirmed = "booking.confirmed"
	QueueBookingCancelled = "booking.cancelled"
	QueuePaymentCompleted = "payment.completed"
)

// BookingConfirmedEvent is published when a booking passes validation
// and is committed.  It carries enough context for downstream consumers
// to log or notify without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID     uint64 `json:"booking_id"`
	UserID        uint64 `json:"user_id"`
	WorkplaceID   uint64 `json:"workplace_id"`
	WorkplaceName string `json:"workplace_name"`
	CoworkingID   uint64 `json:"coworking_id"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`
	TotalPrice    string `json:"total_price"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// BookingCancelledEvent is published when an active booking is cancelled.
type BookingCancelledEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	WorkplaceID uint64 `json:"workplace_id"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	CancelledAt string `json:"cancelled_at"`
}

// PaymentCompletedEvent is published when a payment is recorded for a
// booking.
type PaymentCompletedEvent struct {
	PaymentID  uint64 `json:"payment_id"`
	BookingID  uint64 `json:"booking_id"`
	UserID     uint64 `json:"user_id"`
	Amount     string `json:"amount"`
	Method     string `json:"method"`
	PaymentRef string `json:"payment_ref"`
	PaidAt     string `json:"paid_at"`
}
