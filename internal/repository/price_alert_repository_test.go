package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/presyo/backend/internal/model"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestNewPriceAlertRepository(t *testing.T) {
	t.Parallel()

	db, _ := newMockDB(t)
	repo := NewPriceAlertRepository(db)
	assert.NotNil(t, repo)
}

func TestPriceAlertRepository_Create(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewPriceAlertRepository(db)

	ctx := context.Background()
	alert := &model.PriceAlert{
		Email:       "juan@example.com",
		ProductID:   7,
		TargetPrice: decimal.NewFromInt(50),
		AlertType:   model.AlertTypeBelow,
	}

	rows := sqlmock.NewRows([]string{"id", "is_active", "created_at"}).
		AddRow(int64(1), true, time.Now())

	mock.ExpectQuery(`INSERT INTO price_alerts`).
		WithArgs(alert.Email, alert.ProductID, alert.TargetPrice, alert.AlertType).
		WillReturnRows(rows)

	err := repo.Create(ctx, alert)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), alert.ID)
	assert.True(t, alert.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPriceAlertRepository_GetByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		wantErr   bool
		errType   error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "email", "product_id", "target_price", "alert_type", "is_active", "created_at"}).
					AddRow(int64(3), "juan@example.com", int64(7), decimal.NewFromInt(50), "below", true, time.Now())
				mock.ExpectQuery(`SELECT id, email, product_id, target_price, alert_type, is_active, created_at`).
					WithArgs(int64(3)).
					WillReturnRows(rows)
			},
			wantErr: false,
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, email, product_id, target_price, alert_type, is_active, created_at`).
					WithArgs(int64(3)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errType: ErrAlertNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			repo := NewPriceAlertRepository(db)

			tt.setupMock(mock)

			alert, err := repo.GetByID(context.Background(), 3)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errType != nil {
					assert.ErrorIs(t, err, tt.errType)
				}
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, alert)
				assert.Equal(t, int64(3), alert.ID)
				assert.Equal(t, model.AlertTypeBelow, alert.AlertType)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPriceAlertRepository_Deactivate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE price_alerts SET is_active = false`).
					WithArgs(int64(3), "juan@example.com").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "wrong email owns nothing",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE price_alerts SET is_active = false`).
					WithArgs(int64(3), "juan@example.com").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrAlertNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			repo := NewPriceAlertRepository(db)

			tt.setupMock(mock)

			err := repo.Deactivate(context.Background(), 3, "juan@example.com")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPriceAlertRepository_ListCandidates(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewPriceAlertRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "filipino_name", "category_id", "current_price",
		"previous_price", "unit", "image_url", "updated_at", "active_alerts",
	}).
		AddRow(int64(1), "Rice (well-milled)", "Bigas", int64(1), decimal.NewFromInt(45), decimal.NewFromInt(48), "kg", "", now, 5).
		AddRow(int64(2), "Red Onion", "Sibuyas", int64(2), decimal.NewFromInt(120), decimal.NewFromInt(120), "kg", "", now, 2)

	mock.ExpectQuery(`JOIN price_alerts a ON a.product_id = p.id AND a.is_active = true`).
		WillReturnRows(rows)

	candidates, err := repo.ListCandidates(context.Background())

	assert.NoError(t, err)
	assert.Len(t, candidates, 2)
	assert.Equal(t, 5, candidates[0].ActiveAlerts)
	assert.Equal(t, "Bigas", candidates[0].FilipinoName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPriceAlertRepository_LogFiring(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewPriceAlertRepository(db)

	rows := sqlmock.NewRows([]string{"id", "triggered_at"}).AddRow(int64(99), time.Now())
	mock.ExpectQuery(`INSERT INTO price_alert_logs`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	firing := &model.AlertFiring{AlertID: 3}
	err := repo.LogFiring(context.Background(), firing)

	assert.NoError(t, err)
	assert.Equal(t, int64(99), firing.ID)
	assert.False(t, firing.TriggeredAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPriceAlertRepository_CountFiringsSince(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewPriceAlertRepository(db)

	since := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"count"}).AddRow(4)
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(int64(7), since).
		WillReturnRows(rows)

	count, err := repo.CountFiringsSince(context.Background(), 7, since)

	assert.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
