package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/presyo/backend/internal/model"
)

func TestPriceService_RecordPrice(t *testing.T) {
	t.Parallel()

	t.Run("shifts previous price and appends history", func(t *testing.T) {
		t.Parallel()

		productRepo := new(MockProductRepo)
		historyRepo := new(MockPriceHistoryRepo)
		svc := NewPriceService(productRepo, historyRepo, nil)

		updated := sampleProduct()
		updated.CurrentPrice = d(48)
		updated.PreviousPrice = d(45)

		productRepo.On("UpdatePrice", mock.Anything, int64(7), d(48)).Return(nil)
		historyRepo.On("Append", mock.Anything, int64(7), d(48)).Return(nil)
		productRepo.On("GetByID", mock.Anything, int64(7)).Return(updated, nil)

		product, err := svc.RecordPrice(context.Background(), 7, d(48))

		assert.NoError(t, err)
		assert.True(t, product.CurrentPrice.Equal(d(48)))
		assert.True(t, product.PreviousPrice.Equal(d(45)))
		productRepo.AssertExpectations(t)
		historyRepo.AssertExpectations(t)
	})

	t.Run("rejects non-positive prices", func(t *testing.T) {
		t.Parallel()

		productRepo := new(MockProductRepo)
		historyRepo := new(MockPriceHistoryRepo)
		svc := NewPriceService(productRepo, historyRepo, nil)

		_, err := svc.RecordPrice(context.Background(), 7, d(0))
		assert.ErrorIs(t, err, ErrInvalidPrice)

		_, err = svc.RecordPrice(context.Background(), 7, d(-12.50))
		assert.ErrorIs(t, err, ErrInvalidPrice)

		productRepo.AssertNotCalled(t, "UpdatePrice", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("history failure does not undo the update", func(t *testing.T) {
		t.Parallel()

		productRepo := new(MockProductRepo)
		historyRepo := new(MockPriceHistoryRepo)
		svc := NewPriceService(productRepo, historyRepo, nil)

		productRepo.On("UpdatePrice", mock.Anything, int64(7), d(48)).Return(nil)
		historyRepo.On("Append", mock.Anything, int64(7), d(48)).Return(errors.New("ledger down"))
		productRepo.On("GetByID", mock.Anything, int64(7)).Return(sampleProduct(), nil)

		_, err := svc.RecordPrice(context.Background(), 7, d(48))

		assert.NoError(t, err)
	})

	t.Run("update failure surfaces the repository error", func(t *testing.T) {
		t.Parallel()

		productRepo := new(MockProductRepo)
		historyRepo := new(MockPriceHistoryRepo)
		svc := NewPriceService(productRepo, historyRepo, nil)

		productRepo.On("UpdatePrice", mock.Anything, int64(7), d(48)).
			Return(errors.New("connection reset"))

		_, err := svc.RecordPrice(context.Background(), 7, d(48))

		assert.Error(t, err)
		historyRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPriceService_GetHistory(t *testing.T) {
	t.Parallel()

	productRepo := new(MockProductRepo)
	historyRepo := new(MockPriceHistoryRepo)
	svc := NewPriceService(productRepo, historyRepo, nil)

	entries := []model.PriceHistoryEntry{{ID: 1, ProductID: 7, Price: d(45)}}
	historyRepo.On("ListByProduct", mock.Anything, int64(7), 30).Return(entries, nil)

	// zero and negative windows fall back to the 30-day default
	got, err := svc.GetHistory(context.Background(), 7, 0)
	assert.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.GetHistory(context.Background(), 7, -5)
	assert.NoError(t, err)

	historyRepo.AssertNumberOfCalls(t, "ListByProduct", 2)
}
