package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/presyo/backend/internal/model"
)

// Shared testify mocks for the repository interfaces.

type MockPriceAlertRepo struct {
	mock.Mock
}

func (m *MockPriceAlertRepo) Create(ctx context.Context, alert *model.PriceAlert) error {
	args := m.Called(ctx, alert)
	if alert.ID == 0 {
		alert.ID = 1
		alert.IsActive = true
		alert.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockPriceAlertRepo) GetByID(ctx context.Context, id int64) (*model.PriceAlert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PriceAlert), args.Error(1)
}

func (m *MockPriceAlertRepo) ListByEmail(ctx context.Context, email string) ([]model.PriceAlert, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PriceAlert), args.Error(1)
}

func (m *MockPriceAlertRepo) ListActiveByProduct(ctx context.Context, productID int64) ([]model.PriceAlert, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PriceAlert), args.Error(1)
}

func (m *MockPriceAlertRepo) Deactivate(ctx context.Context, id int64, email string) error {
	args := m.Called(ctx, id, email)
	return args.Error(0)
}

func (m *MockPriceAlertRepo) ListCandidates(ctx context.Context) ([]model.ProductAlertCandidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductAlertCandidate), args.Error(1)
}

func (m *MockPriceAlertRepo) LogFiring(ctx context.Context, firing *model.AlertFiring) error {
	args := m.Called(ctx, firing)
	if firing.ID == 0 {
		firing.ID = 1
		firing.TriggeredAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockPriceAlertRepo) CountFiringsSince(ctx context.Context, productID int64, since time.Time) (int, error) {
	args := m.Called(ctx, productID, since)
	return args.Int(0), args.Error(1)
}

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) List(ctx context.Context, categoryID *int64) ([]model.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepo) GetByName(ctx context.Context, name string) (*model.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepo) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepo) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepo) UpdatePrice(ctx context.Context, id int64, newPrice decimal.Decimal) error {
	args := m.Called(ctx, id, newPrice)
	return args.Error(0)
}

type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

type MockAppConfigRepo struct {
	mock.Mock
}

func (m *MockAppConfigRepo) Get(ctx context.Context, key string) (*model.AppConfig, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AppConfig), args.Error(1)
}

func (m *MockAppConfigRepo) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type MockPriceHistoryRepo struct {
	mock.Mock
}

func (m *MockPriceHistoryRepo) Append(ctx context.Context, productID int64, price decimal.Decimal) error {
	args := m.Called(ctx, productID, price)
	return args.Error(0)
}

func (m *MockPriceHistoryRepo) ListByProduct(ctx context.Context, productID int64, days int) ([]model.PriceHistoryEntry, error) {
	args := m.Called(ctx, productID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PriceHistoryEntry), args.Error(1)
}

type MockShoppingListRepo struct {
	mock.Mock
}

func (m *MockShoppingListRepo) Add(ctx context.Context, item *model.ShoppingListItem) error {
	args := m.Called(ctx, item)
	if item.ID == 0 {
		item.ID = 1
		item.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockShoppingListRepo) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, itemID int64, quantity int) error {
	args := m.Called(ctx, sessionID, itemID, quantity)
	return args.Error(0)
}

func (m *MockShoppingListRepo) Remove(ctx context.Context, sessionID uuid.UUID, itemID int64) error {
	args := m.Called(ctx, sessionID, itemID)
	return args.Error(0)
}

func (m *MockShoppingListRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.ShoppingListEntry, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ShoppingListEntry), args.Error(1)
}

func (m *MockShoppingListRepo) ClearSession(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminUser), args.Error(1)
}

func (m *MockAdminRepo) Create(ctx context.Context, admin *model.AdminUser) error {
	args := m.Called(ctx, admin)
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	return args.Error(0)
}

// MockNotifier records deliveries and can fail selectively per recipient.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(recipient string, fired model.FiredAlert) error {
	args := m.Called(recipient, fired)
	return args.Error(0)
}
