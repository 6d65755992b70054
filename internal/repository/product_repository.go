package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/muhammadafan/fresh-harvest-connect/internal/model"
)

// ProductRepo encapsulates all database queries against the products
// table. Image references are stored in a JSON column and (un)marshaled
// here so callers only ever see []string.
type ProductRepo struct{ db *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

const productColumns = `id, farmer_id, name, description, category, images, price, unit,
	quantity_available, is_organic, is_featured, is_available,
	harvest_date, expiry_date, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	var images []byte
	if err := row.Scan(&p.ID, &p.FarmerID, &p.Name, &p.Description, &p.Category,
		&images, &p.Price, &p.Unit, &p.QuantityAvailable,
		&p.IsOrganic, &p.IsFeatured, &p.IsAvailable,
		&p.HarvestDate, &p.ExpiryDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// Create inserts a new product. On success the ID and timestamp fields
// are populated from a follow-up SELECT so callers receive a fully
// populated record.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}
	const q = `INSERT INTO products
		(farmer_id, name, description, category, images, price, unit,
		 quantity_available, is_organic, is_featured, is_available,
		 harvest_date, expiry_date)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q, p.FarmerID, p.Name, p.Description,
		p.Category, images, p.Price, p.Unit, p.QuantityAvailable,
		p.IsOrganic, p.IsFeatured, p.IsAvailable, p.HarvestDate, p.ExpiryDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	created, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = *created
	return nil
}

// GetByID fetches a product by id regardless of owner. Ownership checks
// belong to the handler layer, which needs to distinguish 404 from 401.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	const q = "SELECT " + productColumns + " FROM products WHERE id = ?"
	p, err := scanProduct(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// ListByFarmer returns all products owned by a farmer, newest first.
func (r *ProductRepo) ListByFarmer(ctx context.Context, farmerID uint64) ([]*model.Product, error) {
	const q = "SELECT " + productColumns + " FROM products WHERE farmer_id = ? ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, farmerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

// BrowseFilter narrows the public marketplace listing.
type BrowseFilter struct {
	Category string
	Organic  bool
	Featured bool
}

// ListAvailable returns available products for the public marketplace,
// optionally narrowed by category and flags. Newest first.
func (r *ProductRepo) ListAvailable(ctx context.Context, f BrowseFilter) ([]*model.Product, error) {
	q := "SELECT " + productColumns + " FROM products WHERE is_available = 1"
	args := []any{}
	if f.Category != "" {
		q += " AND category = ?"
		args = append(args, f.Category)
	}
	if f.Organic {
		q += " AND is_organic = 1"
	}
	if f.Featured {
		q += " AND is_featured = 1"
	}
	q += " ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func collectProducts(rows *sql.Rows) ([]*model.Product, error) {
	var out []*model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the mutable fields of a product. The farmer_id column
// is never part of the SET list: ownership cannot be reassigned through
// an update. Returns ErrNotFound when no row matched.
func (r *ProductRepo) Update(ctx context.Context, p *model.Product) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}
	const q = `UPDATE products SET
		name = ?, description = ?, category = ?, images = ?, price = ?, unit = ?,
		quantity_available = ?, is_organic = ?, is_featured = ?, is_available = ?,
		harvest_date = ?, expiry_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Description, p.Category, images,
		p.Price, p.Unit, p.QuantityAvailable, p.IsOrganic, p.IsFeatured,
		p.IsAvailable, p.HarvestDate, p.ExpiryDate, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero rows can also mean a no-op update of identical values;
		// verify existence before reporting not found.
		if _, err := r.GetByID(ctx, p.ID); err != nil {
			return err
		}
	}
	updated, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = *updated
	return nil
}

// Delete removes a product by id. Returns ErrNotFound when absent.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
