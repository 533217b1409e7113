package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkplaceType is a fixed classification of workplaces (desk, office,
// meeting room and so on).  Rows are managed by administrators.
type WorkplaceType struct {
	ID   uint64 // workplace_types.id
	Name string // workplace_types.name
}

// Workplace represents a single bookable unit inside a coworking.
// Prices are stored as DECIMAL(8,2) and handled with decimal.Decimal
// end to end so that totals never pass through binary floats.
//
// Fields:
//  ID              – primary key identifier.
//  CoworkingID     – owning coworking space.
//  WorkplaceTypeID – classification of the unit.
//  Name            – display name of the unit.
//  PricePerHour    – non-negative hourly rate.
//  IsActive        – only active workplaces accept new bookings.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Workplace struct {
	ID              uint64          // workplaces.id
	CoworkingID     uint64          // workplaces.coworking_id
	WorkplaceTypeID uint64          // workplaces.workplace_type_id
	Name            string          // workplaces.name
	PricePerHour    decimal.Decimal // workplaces.price_per_hour
	IsActive        bool            // workplaces.is_active
	CreatedAt       time.Time       // workplaces.created_at
	UpdatedAt       time.Time       // workplaces.updated_at
}

// WorkplaceImage is a gallery entry attached to a workplace.
type WorkplaceImage struct {
	ID          uint64    // workplace_images.id
	WorkplaceID uint64    // workplace_images.workplace_id
	URL         string    // workplace_images.url
	CreatedAt   time.Time // workplace_images.created_at
}
