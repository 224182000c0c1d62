package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/presyo/backend/internal/model"
	"github.com/presyo/backend/internal/repository"
)

// ErrInvalidPrice is returned for non-positive price updates.
var ErrInvalidPrice = errors.New("price must be greater than zero")

// PriceService records price updates and serves the history ledger.
type PriceService struct {
	productRepo repository.ProductRepository
	historyRepo repository.PriceHistoryRepository
	logger      *slog.Logger
}

// NewPriceService creates a new price service
func NewPriceService(
	productRepo repository.ProductRepository,
	historyRepo repository.PriceHistoryRepository,
	logger *slog.Logger,
) *PriceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PriceService{
		productRepo: productRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// RecordPrice applies a new current price to a product, shifting the old
// current price into previous_price, and appends the observation to the
// history ledger. A ledger failure is logged but does not undo the update;
// the ledger is a trend-reporting collaborator, not the alert source.
func (s *PriceService) RecordPrice(ctx context.Context, productID int64, newPrice decimal.Decimal) (*model.Product, error) {
	if !newPrice.IsPositive() {
		return nil, ErrInvalidPrice
	}

	if err := s.productRepo.UpdatePrice(ctx, productID, newPrice); err != nil {
		return nil, fmt.Errorf("record price for product %d: %w", productID, err)
	}

	if err := s.historyRepo.Append(ctx, productID, newPrice); err != nil {
		s.logger.Error("appending price history failed",
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()),
		)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("reload product %d: %w", productID, err)
	}

	return product, nil
}

// GetHistory returns a product's price trail over the last N days.
func (s *PriceService) GetHistory(ctx context.Context, productID int64, days int) ([]model.PriceHistoryEntry, error) {
	if days <= 0 {
		days = 30
	}
	return s.historyRepo.ListByProduct(ctx, productID, days)
}
