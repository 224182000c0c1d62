package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/presyo/backend/internal/model"
)

// ErrAlertNotFound is returned when a price alert does not exist.
var ErrAlertNotFound = errors.New("price alert not found")

// PriceAlertRepository defines the interface for alert subscription and
// firing-log data access
type PriceAlertRepository interface {
	Create(ctx context.Context, alert *model.PriceAlert) error
	GetByID(ctx context.Context, id int64) (*model.PriceAlert, error)
	ListByEmail(ctx context.Context, email string) ([]model.PriceAlert, error)
	ListActiveByProduct(ctx context.Context, productID int64) ([]model.PriceAlert, error)
	Deactivate(ctx context.Context, id int64, email string) error
	ListCandidates(ctx context.Context) ([]model.ProductAlertCandidate, error)
	LogFiring(ctx context.Context, firing *model.AlertFiring) error
	CountFiringsSince(ctx context.Context, productID int64, since time.Time) (int, error)
}

type priceAlertRepository struct {
	db *sqlx.DB
}

// NewPriceAlertRepository creates a new price alert repository
func NewPriceAlertRepository(db *sqlx.DB) PriceAlertRepository {
	return &priceAlertRepository{db: db}
}

// Create inserts a new alert subscription
func (r *priceAlertRepository) Create(ctx context.Context, alert *model.PriceAlert) error {
	query := `
		INSERT INTO price_alerts (email, product_id, target_price, alert_type, is_active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id, is_active, created_at
	`

	return r.db.QueryRowContext(ctx, query,
		alert.Email, alert.ProductID, alert.TargetPrice, alert.AlertType,
	).Scan(&alert.ID, &alert.IsActive, &alert.CreatedAt)
}

// GetByID returns an alert by ID
func (r *priceAlertRepository) GetByID(ctx context.Context, id int64) (*model.PriceAlert, error) {
	var alert model.PriceAlert
	err := r.db.GetContext(ctx, &alert, `
		SELECT id, email, product_id, target_price, alert_type, is_active, created_at
		FROM price_alerts WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return &alert, nil
}

// ListByEmail returns all alerts belonging to a subscriber
func (r *priceAlertRepository) ListByEmail(ctx context.Context, email string) ([]model.PriceAlert, error) {
	var alerts []model.PriceAlert
	err := r.db.SelectContext(ctx, &alerts, `
		SELECT id, email, product_id, target_price, alert_type, is_active, created_at
		FROM price_alerts WHERE email = $1 ORDER BY created_at DESC
	`, email)
	if err != nil {
		return nil, fmt.Errorf("list alerts by email: %w", err)
	}
	return alerts, nil
}

// ListActiveByProduct returns the active alerts for a product
func (r *priceAlertRepository) ListActiveByProduct(ctx context.Context, productID int64) ([]model.PriceAlert, error) {
	var alerts []model.PriceAlert
	err := r.db.SelectContext(ctx, &alerts, `
		SELECT id, email, product_id, target_price, alert_type, is_active, created_at
		FROM price_alerts WHERE product_id = $1 AND is_active = true
		ORDER BY created_at
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}
	return alerts, nil
}

// Deactivate soft-deletes an alert by flipping is_active. Rows are never
// hard-deleted while firing log rows reference them.
func (r *priceAlertRepository) Deactivate(ctx context.Context, id int64, email string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE price_alerts SET is_active = false WHERE id = $1 AND email = $2
	`, id, email)
	if err != nil {
		return fmt.Errorf("deactivate alert: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrAlertNotFound
	}

	return nil
}

// ListCandidates returns products that have at least one active alert, with
// current and previous price, ordered by descending active-alert count.
// The ordering is presentational (run summaries list busiest products first).
func (r *priceAlertRepository) ListCandidates(ctx context.Context) ([]model.ProductAlertCandidate, error) {
	var candidates []model.ProductAlertCandidate
	err := r.db.SelectContext(ctx, &candidates, `
		SELECT p.id, p.name, p.filipino_name, p.category_id, p.current_price,
		       p.previous_price, p.unit, p.image_url, p.updated_at,
		       COUNT(a.id) AS active_alerts
		FROM products p
		JOIN price_alerts a ON a.product_id = p.id AND a.is_active = true
		GROUP BY p.id
		ORDER BY active_alerts DESC, p.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list alert candidates: %w", err)
	}
	return candidates, nil
}

// LogFiring appends one row to the firing log
func (r *priceAlertRepository) LogFiring(ctx context.Context, firing *model.AlertFiring) error {
	query := `
		INSERT INTO price_alert_logs (alert_id)
		VALUES ($1)
		RETURNING id, triggered_at
	`

	if err := r.db.QueryRowContext(ctx, query, firing.AlertID).
		Scan(&firing.ID, &firing.TriggeredAt); err != nil {
		return fmt.Errorf("log firing: %w", err)
	}
	return nil
}

// CountFiringsSince answers "how many alerts fired for product P since T"
func (r *priceAlertRepository) CountFiringsSince(ctx context.Context, productID int64, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM price_alert_logs l
		JOIN price_alerts a ON a.id = l.alert_id
		WHERE a.product_id = $1 AND l.triggered_at >= $2
	`, productID, since)
	if err != nil {
		return 0, fmt.Errorf("count firings: %w", err)
	}
	return count, nil
}
