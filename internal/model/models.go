package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups products for catalog browsing (e.g. rice, vegetables, meat).
type Category struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Icon      string    `db:"icon" json:"icon,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Product is a tracked market commodity. PreviousPrice always holds the value
// CurrentPrice had before the most recent price update (single-step history);
// the full trail lives in price_history.
type Product struct {
	ID            int64           `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	FilipinoName  string          `db:"filipino_name" json:"filipinoName"`
	CategoryID    int64           `db:"category_id" json:"categoryId"`
	CurrentPrice  decimal.Decimal `db:"current_price" json:"currentPrice"`
	PreviousPrice decimal.Decimal `db:"previous_price" json:"previousPrice"`
	Unit          string          `db:"unit" json:"unit"` // kg, piece, bundle, liter
	ImageURL      string          `db:"image_url" json:"imageUrl,omitempty"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

// DisplayName prefers the Filipino name when present.
func (p *Product) DisplayName() string {
	if p.FilipinoName != "" {
		return p.FilipinoName
	}
	return p.Name
}

// ShoppingListItem is one line of a session-keyed shopping list. Sessions are
// anonymous uuid tokens minted by the server; there are no user accounts.
type ShoppingListItem struct {
	ID        int64     `db:"id" json:"id"`
	SessionID uuid.UUID `db:"session_id" json:"sessionId"`
	ProductID int64     `db:"product_id" json:"productId"`
	Quantity  int       `db:"quantity" json:"quantity"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ShoppingListEntry is a list item joined with its product for display.
type ShoppingListEntry struct {
	ShoppingListItem
	ProductName  string          `db:"product_name" json:"productName"`
	FilipinoName string          `db:"filipino_name" json:"filipinoName"`
	Unit         string          `db:"unit" json:"unit"`
	CurrentPrice decimal.Decimal `db:"current_price" json:"currentPrice"`
}

// LineTotal returns quantity × current price.
func (e *ShoppingListEntry) LineTotal() decimal.Decimal {
	return e.CurrentPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// AppConfig is a persisted key-value setting, e.g. last_price_check.
type AppConfig struct {
	ConfigKey   string    `db:"config_key" json:"configKey"`
	ConfigValue string    `db:"config_value" json:"configValue"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ConfigKeyLastPriceCheck stamps the end of each alert runner pass so
// external monitoring can detect staleness.
const ConfigKeyLastPriceCheck = "last_price_check"

// ImportSummary reports one bulletin import run.
type ImportSummary struct {
	Source     string    `json:"source"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Parsed     int       `json:"parsed"`
	Matched    int       `json:"matched"`
	Updated    int       `json:"updated"`
	Skipped    int       `json:"skipped"`
}

// AdminUser can mutate prices and trigger imports. Regular subscribers are
// identified only by email and have no account.
type AdminUser struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
