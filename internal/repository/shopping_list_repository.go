package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/presyo/backend/internal/model"
)

// ErrListItemNotFound is returned when a shopping list item does not exist.
var ErrListItemNotFound = errors.New("shopping list item not found")

// ShoppingListRepository defines the interface for session-keyed shopping
// list data access
type ShoppingListRepository interface {
	Add(ctx context.Context, item *model.ShoppingListItem) error
	UpdateQuantity(ctx context.Context, sessionID uuid.UUID, itemID int64, quantity int) error
	Remove(ctx context.Context, sessionID uuid.UUID, itemID int64) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.ShoppingListEntry, error)
	ClearSession(ctx context.Context, sessionID uuid.UUID) error
}

type shoppingListRepository struct {
	db *sqlx.DB
}

// NewShoppingListRepository creates a new shopping list repository
func NewShoppingListRepository(db *sqlx.DB) ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

// Add inserts an item, accumulating quantity when the product is already on
// the session's list
func (r *shoppingListRepository) Add(ctx context.Context, item *model.ShoppingListItem) error {
	query := `
		INSERT INTO shopping_list_items (session_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, product_id)
		DO UPDATE SET quantity = shopping_list_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity, created_at
	`

	return r.db.QueryRowContext(ctx, query,
		item.SessionID, item.ProductID, item.Quantity,
	).Scan(&item.ID, &item.Quantity, &item.CreatedAt)
}

// UpdateQuantity sets the quantity of an item owned by the session
func (r *shoppingListRepository) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, itemID int64, quantity int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE shopping_list_items SET quantity = $1
		WHERE id = $2 AND session_id = $3
	`, quantity, itemID, sessionID)
	if err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrListItemNotFound
	}

	return nil
}

// Remove deletes an item owned by the session
func (r *shoppingListRepository) Remove(ctx context.Context, sessionID uuid.UUID, itemID int64) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM shopping_list_items WHERE id = $1 AND session_id = $2
	`, itemID, sessionID)
	if err != nil {
		return fmt.Errorf("remove item: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrListItemNotFound
	}

	return nil
}

// ListBySession returns the session's items joined with product details
func (r *shoppingListRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.ShoppingListEntry, error) {
	var entries []model.ShoppingListEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT i.id, i.session_id, i.product_id, i.quantity, i.created_at,
		       p.name AS product_name, p.filipino_name, p.unit, p.current_price
		FROM shopping_list_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.session_id = $1
		ORDER BY i.created_at
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list shopping list: %w", err)
	}
	return entries, nil
}

// ClearSession removes every item on the session's list
func (r *shoppingListRepository) ClearSession(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM shopping_list_items WHERE session_id = $1
	`, sessionID); err != nil {
		return fmt.Errorf("clear shopping list: %w", err)
	}
	return nil
}
