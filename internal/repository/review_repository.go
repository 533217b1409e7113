package repository

import (
	"context"
	"database/sql"

	"github.com/vmaslov/coworking-booking/internal/model"
)

// ReviewRepo stores coworking reviews.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo constructs a ReviewRepo.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts a review and fills in the generated ID.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	const q = `INSERT INTO reviews (user_id, coworking_id, rating, comment) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rv.UserID, rv.CoworkingID, rv.Rating, rv.Comment)
	if err != nil {
		if isFKErr(err) {
			return ErrCoworkingNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// ListByCoworking returns the coworking's reviews, newest first.
func (r *ReviewRepo) ListByCoworking(ctx context.Context, coworkingID uint64) ([]model.Review, error) {
	const q = `SELECT id, user_id, coworking_id, rating, comment, created_at
FROM reviews WHERE coworking_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, coworkingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.CoworkingID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AverageRating returns the mean rating for a coworking, or 0 when it
// has no reviews.
func (r *ReviewRepo) AverageRating(ctx context.Context, coworkingID uint64) (float64, int64, error) {
	const q = `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE coworking_id = ?`
	var (
		avg float64
		n   int64
	)
	err := r.db.QueryRowContext(ctx, q, coworkingID).Scan(&avg, &n)
	return avg, n, err
}

// Delete removes a review owned by the given user.  Other users' reviews
// come back as ErrForbidden so handlers can answer 403.
func (r *ReviewRepo) Delete(ctx context.Context, reviewID, userID uint64) error {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM reviews WHERE id = ?`, reviewID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	if err != nil {
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, reviewID)
	return err
}
