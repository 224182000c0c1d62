package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func productRows(t *testing.T) *sqlmock.Rows {
	t.Helper()

	return sqlmock.NewRows([]string{
		"id", "name", "filipino_name", "category_id", "current_price",
		"previous_price", "unit", "image_url", "updated_at",
	})
}

func TestProductRepository_GetByID(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	rows := productRows(t).
		AddRow(int64(1), "Rice (well-milled)", "Bigas", int64(1),
			decimal.NewFromInt(45), decimal.NewFromInt(48), "kg", "", time.Now())

	mock.ExpectQuery(`FROM products WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	product, err := repo.GetByID(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "Bigas", product.FilipinoName)
	assert.Equal(t, "Bigas", product.DisplayName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`FROM products WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Search(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	rows := productRows(t).
		AddRow(int64(2), "Red Onion", "Sibuyas", int64(2),
			decimal.NewFromInt(120), decimal.NewFromInt(110), "kg", "", time.Now())

	mock.ExpectQuery(`ILIKE`).
		WithArgs("sibuyas").
		WillReturnRows(rows)

	products, err := repo.Search(context.Background(), "sibuyas")

	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Red Onion", products[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdatePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "shifts current into previous",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`SET\s+previous_price = current_price,\s+current_price = \$1`).
					WithArgs(decimal.NewFromInt(42), int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "missing product",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`SET\s+previous_price = current_price,\s+current_price = \$1`).
					WithArgs(decimal.NewFromInt(42), int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			repo := NewProductRepository(db)

			tt.setupMock(mock)

			err := repo.UpdatePrice(context.Background(), 1, decimal.NewFromInt(42))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
