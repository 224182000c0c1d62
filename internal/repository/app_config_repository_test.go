package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/presyo/backend/internal/model"
)

func TestAppConfigRepository_Get(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewAppConfigRepository(db)

	rows := sqlmock.NewRows([]string{"config_key", "config_value", "updated_at"}).
		AddRow(model.ConfigKeyLastPriceCheck, "2026-08-31T06:00:00Z", time.Now())

	mock.ExpectQuery(`SELECT config_key, config_value, updated_at FROM app_config`).
		WithArgs(model.ConfigKeyLastPriceCheck).
		WillReturnRows(rows)

	cfg, err := repo.Get(context.Background(), model.ConfigKeyLastPriceCheck)

	assert.NoError(t, err)
	assert.Equal(t, "2026-08-31T06:00:00Z", cfg.ConfigValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppConfigRepository_Get_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewAppConfigRepository(db)

	mock.ExpectQuery(`SELECT config_key, config_value, updated_at FROM app_config`).
		WithArgs("never_written").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "never_written")

	assert.ErrorIs(t, err, ErrConfigNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppConfigRepository_Set(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewAppConfigRepository(db)

	mock.ExpectExec(`INSERT INTO app_config`).
		WithArgs(model.ConfigKeyLastPriceCheck, "2026-08-31T06:30:00Z").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Set(context.Background(), model.ConfigKeyLastPriceCheck, "2026-08-31T06:30:00Z")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
