package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/presyo/backend/internal/model"
)

// ErrConfigNotFound is returned when a config key has never been written.
var ErrConfigNotFound = errors.New("config key not found")

// AppConfigRepository defines the interface for the persisted key-value store
type AppConfigRepository interface {
	Get(ctx context.Context, key string) (*model.AppConfig, error)
	Set(ctx context.Context, key, value string) error
}

type appConfigRepository struct {
	db *sqlx.DB
}

// NewAppConfigRepository creates a new app config repository
func NewAppConfigRepository(db *sqlx.DB) AppConfigRepository {
	return &appConfigRepository{db: db}
}

// Get returns the value stored under key
func (r *appConfigRepository) Get(ctx context.Context, key string) (*model.AppConfig, error) {
	var cfg model.AppConfig
	err := r.db.GetContext(ctx, &cfg, `
		SELECT config_key, config_value, updated_at FROM app_config WHERE config_key = $1
	`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("get config: %w", err)
	}
	return &cfg, nil
}

// Set upserts the value stored under key
func (r *appConfigRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_config (config_key, config_value)
		VALUES ($1, $2)
		ON CONFLICT (config_key)
		DO UPDATE SET config_value = EXCLUDED.config_value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("set config: %w", err)
	}
	return nil
}
