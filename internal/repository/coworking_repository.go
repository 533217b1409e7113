package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/vmaslov/coworking-booking/internal/model"
)

// CoworkingRepo encapsulates queries for coworking spaces and their
// image galleries.
type CoworkingRepo struct {
	db *sql.DB
}

// NewCoworkingRepo constructs a CoworkingRepo with the provided handle.
func NewCoworkingRepo(db *sql.DB) *CoworkingRepo { return &CoworkingRepo{db: db} }

const coworkingColumns = `id, name, address, description, created_at, updated_at`

func scanCoworking(row interface {
	Scan(dest ...any) error
}, c *model.Coworking) error {
	return row.Scan(&c.ID, &c.Name, &c.Address, &c.Description, &c.CreatedAt, &c.UpdatedAt)
}

// Create inserts a coworking and populates the generated ID plus
// timestamp defaults.
func (r *CoworkingRepo) Create(ctx context.Context, c *model.Coworking) error {
	const q = `INSERT INTO coworkings (name, address, description) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Address, c.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	const sel = `SELECT ` + coworkingColumns + ` FROM coworkings WHERE id = ?`
	return scanCoworking(r.db.QueryRowContext(ctx, sel, c.ID), c)
}

// GetByID fetches a coworking by id.
func (r *CoworkingRepo) GetByID(ctx context.Context, id uint64) (*model.Coworking, error) {
	const q = `SELECT ` + coworkingColumns + ` FROM coworkings WHERE id = ?`
	var c model.Coworking
	if err := scanCoworking(r.db.QueryRowContext(ctx, q, id), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCoworkingNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Search returns a page of coworkings plus the total match count.  The
// optional query filters case-insensitively on name, address and
// description.
func (r *CoworkingRepo) Search(ctx context.Context, query string, page, pageSize int) ([]model.Coworking, int64, error) {
	cond := "1=1"
	args := []any{}
	if q := strings.TrimSpace(query); q != "" {
		cond = "(LOWER(name) LIKE ? OR LOWER(address) LIKE ? OR LOWER(description) LIKE ?)"
		like := "%" + strings.ToLower(q) + "%"
		args = append(args, like, like, like)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM coworkings WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := `SELECT ` + coworkingColumns + ` FROM coworkings WHERE ` + cond + ` ORDER BY id LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), pageSize, (page-1)*pageSize)
	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Coworking, 0, pageSize)
	for rows.Next() {
		var c model.Coworking
		if err := scanCoworking(rows, &c); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update rewrites the mutable fields and returns the fresh row.
func (r *CoworkingRepo) Update(ctx context.Context, c *model.Coworking) error {
	const q = `UPDATE coworkings SET name = ?, address = ?, description = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, c.Name, c.Address, c.Description, c.ID); err != nil {
		return err
	}
	const sel = `SELECT ` + coworkingColumns + ` FROM coworkings WHERE id = ?`
	if err := scanCoworking(r.db.QueryRowContext(ctx, sel, c.ID), c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCoworkingNotFound
		}
		return err
	}
	return nil
}

// Delete removes a coworking.  Workplaces and their bookings cascade via
// foreign keys; the caller checks future bookings first.
func (r *CoworkingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM coworkings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCoworkingNotFound
	}
	return nil
}

// Count reports the total number of coworkings.
func (r *CoworkingRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM coworkings`).Scan(&n)
	return n, err
}

// AddImage attaches an image URL to a coworking.
func (r *CoworkingRepo) AddImage(ctx context.Context, img *model.CoworkingImage) error {
	const q = `INSERT INTO coworking_images (coworking_id, url) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, img.CoworkingID, img.URL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	img.ID = uint64(id)
	return nil
}

// ListImages returns the coworking's image rows ordered by id.
func (r *CoworkingRepo) ListImages(ctx context.Context, coworkingID uint64) ([]model.CoworkingImage, error) {
	const q = `SELECT id, coworking_id, url, created_at FROM coworking_images WHERE coworking_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, coworkingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.CoworkingImage
	for rows.Next() {
		var img model.CoworkingImage
		if err := rows.Scan(&img.ID, &img.CoworkingID, &img.URL, &img.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteImage removes one image row.
func (r *CoworkingRepo) DeleteImage(ctx context.Context, imageID uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM coworking_images WHERE id = ?`, imageID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrImageNotFound
	}
	return nil
}
