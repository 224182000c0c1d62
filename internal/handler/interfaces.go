package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/presyo/backend/internal/model"
	"github.com/presyo/backend/internal/service"
)

// CatalogServiceInterface for handler testing
type CatalogServiceInterface interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListProducts(ctx context.Context, categoryID *int64) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	Search(ctx context.Context, keyword string) ([]model.Product, error)
	SeedDefaults(ctx context.Context) (int, error)
}

// AlertServiceInterface for handler testing
type AlertServiceInterface interface {
	Subscribe(ctx context.Context, input service.SubscribeInput) (*model.PriceAlert, error)
	Unsubscribe(ctx context.Context, id int64, email string) error
	ListByEmail(ctx context.Context, email string) ([]model.PriceAlert, error)
	RunPass(ctx context.Context) (*service.RunSummary, error)
	LastPriceCheck(ctx context.Context) (time.Time, error)
	FiringsToday(ctx context.Context, productID int64) (int, error)
}

// PriceServiceInterface for handler testing
type PriceServiceInterface interface {
	RecordPrice(ctx context.Context, productID int64, newPrice decimal.Decimal) (*model.Product, error)
	GetHistory(ctx context.Context, productID int64, days int) ([]model.PriceHistoryEntry, error)
}

// ShoppingListServiceInterface for handler testing
type ShoppingListServiceInterface interface {
	AddItem(ctx context.Context, sessionID uuid.UUID, productID int64, quantity int) (*model.ShoppingListItem, error)
	UpdateQuantity(ctx context.Context, sessionID uuid.UUID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, sessionID uuid.UUID, itemID int64) error
	GetList(ctx context.Context, sessionID uuid.UUID) (*service.ShoppingList, error)
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

// AuthServiceInterface for handler testing
type AuthServiceInterface interface {
	Login(ctx context.Context, input service.LoginInput) (*service.AuthResponse, error)
}

// ImporterInterface for handler testing. The importer package implements it.
type ImporterInterface interface {
	Run(ctx context.Context) (*model.ImportSummary, error)
}
