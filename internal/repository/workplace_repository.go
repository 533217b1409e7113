package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vmaslov/coworking-booking/internal/model"
)

// WorkplaceRepo encapsulates queries for workplaces and their images.
type WorkplaceRepo struct {
	db *sql.DB
}

// NewWorkplaceRepo constructs a WorkplaceRepo with the provided handle.
func NewWorkplaceRepo(db *sql.DB) *WorkplaceRepo { return &WorkplaceRepo{db: db} }

// DB exposes the underlying handle for transaction management.
func (r *WorkplaceRepo) DB() *sql.DB { return r.db }

const workplaceColumns = `id, coworking_id, workplace_type_id, name, price_per_hour, is_active, created_at, updated_at`

func scanWorkplace(row interface {
	Scan(dest ...any) error
}, w *model.Workplace) error {
	return row.Scan(&w.ID, &w.CoworkingID, &w.WorkplaceTypeID, &w.Name, &w.PricePerHour, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
}

// Create inserts a workplace and populates the generated ID and
// timestamp defaults.
func (r *WorkplaceRepo) Create(ctx context.Context, w *model.Workplace) error {
	const q = `INSERT INTO workplaces (coworking_id, workplace_type_id, name, price_per_hour, is_active)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, w.CoworkingID, w.WorkplaceTypeID, w.Name, w.PricePerHour, w.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	w.ID = uint64(id)
	const sel = `SELECT ` + workplaceColumns + ` FROM workplaces WHERE id = ?`
	return scanWorkplace(r.db.QueryRowContext(ctx, sel, w.ID), w)
}

// GetByID fetches a workplace by id.
func (r *WorkplaceRepo) GetByID(ctx context.Context, id uint64) (*model.Workplace, error) {
	const q = `SELECT ` + workplaceColumns + ` FROM workplaces WHERE id = ?`
	var w model.Workplace
	if err := scanWorkplace(r.db.QueryRowContext(ctx, q, id), &w); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkplaceNotFound
		}
		return nil, err
	}
	return &w, nil
}

// LockTx locks the workplace row FOR UPDATE inside the given transaction
// and returns the current record.  Every booking write takes this lock
// first, so two concurrent requests for the same workplace serialize and
// the second one observes the first one's insert in its overlap check.
func (r *WorkplaceRepo) LockTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Workplace, error) {
	const q = `SELECT ` + workplaceColumns + ` FROM workplaces WHERE id = ? FOR UPDATE`
	var w model.Workplace
	if err := scanWorkplace(tx.QueryRowContext(ctx, q, id), &w); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkplaceNotFound
		}
		return nil, err
	}
	return &w, nil
}

// ListByCoworking returns the coworking's workplaces ordered by id.
// When activeOnly is true, inactive units are filtered out.
func (r *WorkplaceRepo) ListByCoworking(ctx context.Context, coworkingID uint64, activeOnly bool) ([]model.Workplace, error) {
	q := `SELECT ` + workplaceColumns + ` FROM workplaces WHERE coworking_id = ?`
	if activeOnly {
		q += ` AND is_active = 1`
	}
	q += ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, coworkingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Workplace
	for rows.Next() {
		var w model.Workplace
		if err := scanWorkplace(rows, &w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the mutable fields of a workplace.  Returns
// ErrWorkplaceNotFound when the row does not exist.
func (r *WorkplaceRepo) Update(ctx context.Context, w *model.Workplace) error {
	const q = `UPDATE workplaces SET name = ?, workplace_type_id = ?, price_per_hour = ?, is_active = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, w.Name, w.WorkplaceTypeID, w.PricePerHour, w.IsActive, w.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		// Distinguish no-op updates from missing rows.
		if _, err := r.GetByID(ctx, w.ID); err != nil {
			return err
		}
	}
	const sel = `SELECT ` + workplaceColumns + ` FROM workplaces WHERE id = ?`
	return scanWorkplace(r.db.QueryRowContext(ctx, sel, w.ID), w)
}

// Deactivate clears the is_active flag.  Existing bookings are not
// touched: deactivation only stops new ones.
func (r *WorkplaceRepo) Deactivate(ctx context.Context, id uint64) error {
	const q = `UPDATE workplaces SET is_active = 0 WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a workplace.  The caller is responsible for checking
// future bookings first (see BookingRepo.CountFutureActiveByWorkplace).
func (r *WorkplaceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workplaces WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWorkplaceNotFound
	}
	return nil
}

// Count reports the total number of workplaces.
func (r *WorkplaceRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workplaces`).Scan(&n)
	return n, err
}

// AddImage attaches an image URL to a workplace.
func (r *WorkplaceRepo) AddImage(ctx context.Context, img *model.WorkplaceImage) error {
	const q = `INSERT INTO workplace_images (workplace_id, url) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, img.WorkplaceID, img.URL)
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

// ListImages returns the workplace's image rows ordered by id.
func (r *WorkplaceRepo) ListImages(ctx context.Context, workplaceID uint64) ([]model.WorkplaceImage, error) {
	const q = `SELECT id, workplace_id, url, created_at FROM workplace_images WHERE workplace_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, workplaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.WorkplaceImage
	for rows.Next() {
		var img model.WorkplaceImage
		if err := rows.Scan(&img.ID, &img.WorkplaceID, &img.URL, &img.CreatedAt); err != nil {
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
func (r *WorkplaceRepo) DeleteImage(ctx context.Context, imageID uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workplace_images WHERE id = ?`, imageID)
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
