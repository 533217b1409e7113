package model

import "time"

// Review is a rating left by a user on a coworking space.  Rating is
// constrained to 1..5 at the handler boundary.
type Review struct {
	ID          uint64    // reviews.id
	UserID      uint64    // reviews.user_id
	CoworkingID uint64    // reviews.coworking_id
	Rating      uint8     // reviews.rating (1-5)
	Comment     string    // reviews.comment
	CreatedAt   time.Time // reviews.created_at
}

// Favorite marks a workplace as bookmarked by a user.  The
// (user, workplace) pair is unique.
type Favorite struct {
	UserID      uint64    // favorites.user_id
	WorkplaceID uint64    // favorites.workplace_id
	AddedAt     time.Time // favorites.added_at
}
