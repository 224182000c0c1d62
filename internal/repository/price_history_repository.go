package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/presyo/backend/internal/model"
)

// PriceHistoryRepository defines the interface for the append-only price ledger
type PriceHistoryRepository interface {
	Append(ctx context.Context, productID int64, price decimal.Decimal) error
	ListByProduct(ctx context.Context, productID int64, days int) ([]model.PriceHistoryEntry, error)
}

type priceHistoryRepository struct {
	db *sqlx.DB
}

// NewPriceHistoryRepository creates a new price history repository
func NewPriceHistoryRepository(db *sqlx.DB) PriceHistoryRepository {
	return &priceHistoryRepository{db: db}
}

// Append records a price observation
func (r *priceHistoryRepository) Append(ctx context.Context, productID int64, price decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO price_history (product_id, price) VALUES ($1, $2)
	`, productID, price)
	if err != nil {
		return fmt.Errorf("append price history: %w", err)
	}
	return nil
}

// ListByProduct returns the trail for a product over the last N days
func (r *priceHistoryRepository) ListByProduct(ctx context.Context, productID int64, days int) ([]model.PriceHistoryEntry, error) {
	query := `
		SELECT id, product_id, price, recorded_at
		FROM price_history
		WHERE product_id = $1
		  AND recorded_at >= CURRENT_DATE - INTERVAL '%d days'
		ORDER BY recorded_at ASC
	`

	var entries []model.PriceHistoryEntry
	if err := r.db.SelectContext(ctx, &entries, fmt.Sprintf(query, days), productID); err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	return entries, nil
}
