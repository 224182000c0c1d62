package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/presyo/backend/internal/model"
	"github.com/presyo/backend/internal/repository"
)

// CatalogService handles category and product browsing.
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// ListCategories returns all catalog categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// ListProducts returns products, optionally filtered by category.
func (s *CatalogService) ListProducts(ctx context.Context, categoryID *int64) ([]model.Product, error) {
	return s.productRepo.List(ctx, categoryID)
}

// GetProduct returns a single product.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// Search performs a keyword search over English and Filipino names. Blank
// keywords return the full catalog rather than erroring.
func (s *CatalogService) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.productRepo.List(ctx, nil)
	}
	return s.productRepo.Search(ctx, keyword)
}

// SeedDefaults populates an empty catalog with a starter set of market
// staples. A non-empty catalog is left untouched so reseeding a live
// deployment cannot duplicate products.
func (s *CatalogService) SeedDefaults(ctx context.Context) (int, error) {
	existing, err := s.productRepo.List(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("check existing catalog: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	// Sample retail prices from DA Metro Manila bulletins, late 2024.
	// The importer overwrites these on its first run.
	categories := []model.Category{
		{Name: "Rice", Icon: "🌾"},
		{Name: "Fish", Icon: "🐟"},
		{Name: "Meat", Icon: "🥩"},
		{Name: "Vegetables", Icon: "🥬"},
		{Name: "Fruits", Icon: "🍌"},
	}

	for i := range categories {
		if err := s.categoryRepo.Create(ctx, &categories[i]); err != nil {
			return 0, fmt.Errorf("seed category %s: %w", categories[i].Name, err)
		}
	}

	products := []model.Product{
		{Name: "Well-milled Rice", FilipinoName: "Bigas", CategoryID: categories[0].ID, CurrentPrice: decimal.NewFromFloat(48.00), Unit: "kg"},
		{Name: "Regular-milled Rice", CategoryID: categories[0].ID, CurrentPrice: decimal.NewFromFloat(42.00), Unit: "kg"},
		{Name: "Round Scad", FilipinoName: "Galunggong", CategoryID: categories[1].ID, CurrentPrice: decimal.NewFromFloat(200.00), Unit: "kg"},
		{Name: "Milkfish", FilipinoName: "Bangus", CategoryID: categories[1].ID, CurrentPrice: decimal.NewFromFloat(190.00), Unit: "kg"},
		{Name: "Tilapia", CategoryID: categories[1].ID, CurrentPrice: decimal.NewFromFloat(140.00), Unit: "kg"},
		{Name: "Pork Belly", FilipinoName: "Liempo", CategoryID: categories[2].ID, CurrentPrice: decimal.NewFromFloat(380.00), Unit: "kg"},
		{Name: "Whole Chicken", FilipinoName: "Manok", CategoryID: categories[2].ID, CurrentPrice: decimal.NewFromFloat(185.00), Unit: "kg"},
		{Name: "Red Onion", FilipinoName: "Sibuyas", CategoryID: categories[3].ID, CurrentPrice: decimal.NewFromFloat(120.00), Unit: "kg"},
		{Name: "Garlic", FilipinoName: "Bawang", CategoryID: categories[3].ID, CurrentPrice: decimal.NewFromFloat(160.00), Unit: "kg"},
		{Name: "Tomato", FilipinoName: "Kamatis", CategoryID: categories[3].ID, CurrentPrice: decimal.NewFromFloat(80.00), Unit: "kg"},
		{Name: "Cabbage", FilipinoName: "Repolyo", CategoryID: categories[3].ID, CurrentPrice: decimal.NewFromFloat(90.00), Unit: "kg"},
		{Name: "Saba Banana", FilipinoName: "Saging na Saba", CategoryID: categories[4].ID, CurrentPrice: decimal.NewFromFloat(60.00), Unit: "kg"},
		{Name: "Mango", FilipinoName: "Mangga", CategoryID: categories[4].ID, CurrentPrice: decimal.NewFromFloat(170.00), Unit: "kg"},
	}

	for i := range products {
		products[i].PreviousPrice = products[i].CurrentPrice
		if err := s.productRepo.Create(ctx, &products[i]); err != nil {
			return 0, fmt.Errorf("seed product %s: %w", products[i].Name, err)
		}
	}

	return len(products), nil
}
