package repository

import (
	"context"
	"database/sql"

	"github.com/vmaslov/coworking-booking/internal/model"
)

// FavoriteRepo stores per-user workplace bookmarks.
type FavoriteRepo struct {
	db *sql.DB
}

// NewFavoriteRepo constructs a FavoriteRepo.
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add bookmarks a workplace for a user.  Re-adding an existing favorite
// is a no-op.
func (r *FavoriteRepo) Add(ctx context.Context, userID, workplaceID uint64) error {
	const q = `INSERT IGNORE INTO favorites (user_id, workplace_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, userID, workplaceID)
	if err != nil && isFKErr(err) {
		return ErrWorkplaceNotFound
	}
	return err
}

// Remove deletes a bookmark.  Removing a bookmark that does not exist
// surfaces as sql.ErrNoRows.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, workplaceID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND workplace_id = ?`, userID, workplaceID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListWorkplaces returns the user's favorited workplaces, newest first.
func (r *FavoriteRepo) ListWorkplaces(ctx context.Context, userID uint64) ([]model.Workplace, error) {
	const q = `SELECT w.id, w.coworking_id, w.workplace_type_id, w.name, w.price_per_hour, w.is_active, w.created_at, w.updated_at
FROM favorites f
JOIN workplaces w ON w.id = f.workplace_id
WHERE f.user_id = ?
ORDER BY f.added_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Workplace
	for rows.Next() {
		var w model.Workplace
		if err := rows.Scan(&w.ID, &w.CoworkingID, &w.WorkplaceTypeID, &w.Name,
			&w.PricePerHour, &w.IsActive, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
