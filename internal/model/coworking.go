package model

import "time"

// Coworking represents a coworking space venue that contains bookable
// workplaces.  This struct corresponds to a row in the `coworkings` table.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the space.
//  Address     – street address shown to visitors.
//  Description – free-form description.
//  CreatedAt   – timestamp when the row was created.
//  UpdatedAt   – timestamp of last update.
type Coworking struct {
	ID          uint64    // coworkings.id
	Name        string    // coworkings.name
	Address     string    // coworkings.address
	Description string    // coworkings.description
	CreatedAt   time.Time // coworkings.created_at
	UpdatedAt   time.Time // coworkings.updated_at
}

// CoworkingImage is a gallery entry attached to a coworking.  Only the
// image URL is stored; binary upload and storage are handled outside
// this service.
type CoworkingImage struct {
	ID          uint64    // coworking_images.id
	CoworkingID uint64    // coworking_images.coworking_id
	URL         string    // coworking_images.url
	CreatedAt   time.Time // coworking_images.created_at
}
