package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/presyo/backend/internal/model"
	"github.com/presyo/backend/internal/repository"
)

// ErrInvalidQuantity is returned for non-positive quantities.
var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// ShoppingList is a session's list with its running total.
type ShoppingList struct {
	Items []model.ShoppingListEntry `json:"items"`
	Total decimal.Decimal           `json:"total"`
}

// ShoppingListService handles session-keyed shopping lists.
type ShoppingListService struct {
	listRepo    repository.ShoppingListRepository
	productRepo repository.ProductRepository
}

// NewShoppingListService creates a new shopping list service
func NewShoppingListService(
	listRepo repository.ShoppingListRepository,
	productRepo repository.ProductRepository,
) *ShoppingListService {
	return &ShoppingListService{
		listRepo:    listRepo,
		productRepo: productRepo,
	}
}

// AddItem puts a product on the session's list, accumulating quantity when
// it is already there.
func (s *ShoppingListService) AddItem(ctx context.Context, sessionID uuid.UUID, productID int64, quantity int) (*model.ShoppingListItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("look up product %d: %w", productID, err)
	}

	item := &model.ShoppingListItem{
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
	}

	if err := s.listRepo.Add(ctx, item); err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}

	return item, nil
}

// UpdateQuantity sets an item's quantity; zero or less removes the item.
func (s *ShoppingListService) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, itemID int64, quantity int) error {
	if quantity <= 0 {
		return s.listRepo.Remove(ctx, sessionID, itemID)
	}
	return s.listRepo.UpdateQuantity(ctx, sessionID, itemID, quantity)
}

// RemoveItem deletes an item from the session's list.
func (s *ShoppingListService) RemoveItem(ctx context.Context, sessionID uuid.UUID, itemID int64) error {
	return s.listRepo.Remove(ctx, sessionID, itemID)
}

// GetList returns the session's list with a total at current prices.
func (s *ShoppingListService) GetList(ctx context.Context, sessionID uuid.UUID) (*ShoppingList, error) {
	entries, err := s.listRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for i := range entries {
		total = total.Add(entries[i].LineTotal())
	}

	return &ShoppingList{Items: entries, Total: total}, nil
}

// Clear empties the session's list.
func (s *ShoppingListService) Clear(ctx context.Context, sessionID uuid.UUID) error {
	return s.listRepo.ClearSession(ctx, sessionID)
}
