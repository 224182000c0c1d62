// Package repository provides data access over Postgres via sqlx.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/presyo/backend/internal/model"
)

// ErrProductNotFound is returned when a product does not exist.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product catalog data access
type ProductRepository interface {
	List(ctx context.Context, categoryID *int64) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetByName(ctx context.Context, name string) (*model.Product, error)
	Search(ctx context.Context, keyword string) ([]model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	UpdatePrice(ctx context.Context, id int64, newPrice decimal.Decimal) error
}

type productRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{db: db}
}

// List returns products, optionally filtered by category
func (r *productRepository) List(ctx context.Context, categoryID *int64) ([]model.Product, error) {
	query := `
		SELECT id, name, filipino_name, category_id, current_price, previous_price,
		       unit, image_url, updated_at
		FROM products
	`
	args := []interface{}{}

	if categoryID != nil {
		query += " WHERE category_id = $1"
		args = append(args, *categoryID)
	}

	query += " ORDER BY name ASC"

	var products []model.Product
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

// GetByID returns a product by ID
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.GetContext(ctx, &product, `
		SELECT id, name, filipino_name, category_id, current_price, previous_price,
		       unit, image_url, updated_at
		FROM products WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &product, nil
}

// GetByName returns a product by its English or Filipino name (case-insensitive).
// Used by the bulletin importer to match parsed entries to catalog rows.
func (r *productRepository) GetByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	err := r.db.GetContext(ctx, &product, `
		SELECT id, name, filipino_name, category_id, current_price, previous_price,
		       unit, image_url, updated_at
		FROM products
		WHERE LOWER(name) = LOWER($1) OR LOWER(filipino_name) = LOWER($1)
		LIMIT 1
	`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return &product, nil
}

// Search returns products whose names match the keyword
func (r *productRepository) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.SelectContext(ctx, &products, `
		SELECT id, name, filipino_name, category_id, current_price, previous_price,
		       unit, image_url, updated_at
		FROM products
		WHERE name ILIKE '%' || $1 || '%' OR filipino_name ILIKE '%' || $1 || '%'
		ORDER BY name ASC
	`, keyword)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

// Create inserts a new product
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (
			name, filipino_name, category_id, current_price, previous_price, unit, image_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, updated_at
	`

	return r.db.QueryRowContext(ctx, query,
		product.Name, product.FilipinoName, product.CategoryID,
		product.CurrentPrice, product.PreviousPrice, product.Unit, product.ImageURL,
	).Scan(&product.ID, &product.UpdatedAt)
}

// UpdatePrice records a new current price, shifting the old current price
// into previous_price. Single-step history; the full trail is the
// price_history ledger.
func (r *productRepository) UpdatePrice(ctx context.Context, id int64, newPrice decimal.Decimal) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE products SET
			previous_price = current_price,
			current_price = $1,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, newPrice, id)
	if err != nil {
		return fmt.Errorf("update price: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrProductNotFound
	}

	return nil
}
