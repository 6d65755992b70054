package repository

import (
	"context"
	"database/sql"

	"github.com/muhammadafan/fresh-harvest-connect/internal/model"
)

// CategoryRepo encapsulates all database queries against the categories
// table.
type CategoryRepo struct{ db *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// Create inserts a new category. The slug must already be derived by the
// caller. A collision on the unique slug index maps to ErrSlugExists, so
// two names normalizing to the same slug conflict even when the inserts
// race: the index decides, not a prior existence check.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	const q = "INSERT INTO categories (name, slug, description, image_url) VALUES (?,?,?,?)"
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Slug, c.Description, c.ImageURL)
	if err != nil {
		if isDuplicate(err) {
			return ErrSlugExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	const qSelect = "SELECT created_at, updated_at FROM categories WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// List returns all categories ordered by name.
func (r *CategoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	const q = `SELECT id, name, slug, description, image_url, created_at, updated_at
	           FROM categories ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Category
	for rows.Next() {
		c := new(model.Category)
		var desc, img sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &desc, &img, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.Description = desc.String
		c.ImageURL = img.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
