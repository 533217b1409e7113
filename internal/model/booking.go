package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking statuses are a fixed enumeration known at compile time.
// Cancellation is a soft delete: the row is kept with status CANCELLED so
// payments stay reconcilable, and cancelled bookings never count as
// conflicts.
const (
	BookingStatusActive    = "ACTIVE"
	BookingStatusCancelled = "CANCELLED"
)

// Booking records a user's reservation of a workplace for the half-open
// interval [StartTime, EndTime).  Instants are stored in UTC; the display
// timezone only matters when rendering availability.
//
// Invariants:
//  StartTime < EndTime.
//  For one workplace no two ACTIVE bookings overlap, where [s1,e1) and
//  [s2,e2) overlap iff s1 < e2 AND s2 < e1.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who booked.
//  WorkplaceID – workplace being booked.
//  StartTime   – inclusive start instant (UTC).
//  EndTime     – exclusive end instant (UTC).
//  TotalPrice  – hourly rate times duration, exact decimal.
//  Status      – ACTIVE or CANCELLED.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Booking struct {
	ID          uint64          // bookings.id
	UserID      uint64          // bookings.user_id
	WorkplaceID uint64          // bookings.workplace_id
	StartTime   time.Time       // bookings.start_time (UTC)
	EndTime     time.Time       // bookings.end_time (UTC)
	TotalPrice  decimal.Decimal // bookings.total_price
	Status      string          // bookings.status
	CreatedAt   time.Time       // bookings.created_at
	UpdatedAt   time.Time       // bookings.updated_at
}
