package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vmaslov/coworking-booking/internal/model"
)

// WorkplaceTypeRepo manages the workplace type dictionary.
type WorkplaceTypeRepo struct {
	db *sql.DB
}

// NewWorkplaceTypeRepo constructs a WorkplaceTypeRepo.
func NewWorkplaceTypeRepo(db *sql.DB) *WorkplaceTypeRepo { return &WorkplaceTypeRepo{db: db} }

// Create inserts a new type.  Duplicate names surface as ErrConflict.
func (r *WorkplaceTypeRepo) Create(ctx context.Context, t *model.WorkplaceType) error {
	const q = `INSERT INTO workplace_types (name) VALUES (?)`
	res, err := r.db.ExecContext(ctx, q, t.Name)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID fetches a type by id.
func (r *WorkplaceTypeRepo) GetByID(ctx context.Context, id uint64) (*model.WorkplaceType, error) {
	const q = `SELECT id, name FROM workplace_types WHERE id = ?`
	var t model.WorkplaceType
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkplaceTypeNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns all types ordered by name.
func (r *WorkplaceTypeRepo) List(ctx context.Context) ([]model.WorkplaceType, error) {
	const q = `SELECT id, name FROM workplace_types ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.WorkplaceType
	for rows.Next() {
		var t model.WorkplaceType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update renames a type.
func (r *WorkplaceTypeRepo) Update(ctx context.Context, t *model.WorkplaceType) error {
	res, err := r.db.ExecContext(ctx, `UPDATE workplace_types SET name = ? WHERE id = ?`, t.Name, t.ID)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "missing" from "unchanged".
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM workplace_types WHERE id = ?`, t.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrWorkplaceTypeNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a type.  Workplaces referencing it keep it alive via a
// RESTRICT foreign key, which surfaces as ErrConflict.
func (r *WorkplaceTypeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workplace_types WHERE id = ?`, id)
	if err != nil {
		if isFKErr(err) {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWorkplaceTypeNotFound
	}
	return nil
}
