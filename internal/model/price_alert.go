package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertType enumerates the supported alert conditions.
type AlertType string

const (
	// AlertTypeBelow fires while the new price is strictly below the target.
	AlertTypeBelow AlertType = "below"
	// AlertTypeAbove fires while the new price is strictly above the target.
	AlertTypeAbove AlertType = "above"
	// AlertTypeChange fires on any price movement, either direction.
	AlertTypeChange AlertType = "change"
)

// IsValid reports whether t is a recognized alert type.
func (t AlertType) IsValid() bool {
	switch t {
	case AlertTypeBelow, AlertTypeAbove, AlertTypeChange:
		return true
	}
	return false
}

// RequiresTarget reports whether the type evaluates target_price.
func (t AlertType) RequiresTarget() bool {
	return t == AlertTypeBelow || t == AlertTypeAbove
}

// PriceAlert is a subscriber's standing request to be notified when a
// product's price satisfies a condition. Unsubscribing flips IsActive rather
// than deleting the row, so firing log references stay intact.
type PriceAlert struct {
	ID          int64           `db:"id" json:"id"`
	Email       string          `db:"email" json:"email"`
	ProductID   int64           `db:"product_id" json:"productId"`
	TargetPrice decimal.Decimal `db:"target_price" json:"targetPrice"`
	AlertType   AlertType       `db:"alert_type" json:"alertType"`
	IsActive    bool            `db:"is_active" json:"isActive"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
}

// AlertFiring is one append-only log row per satisfied alert condition in a
// runner pass. Never mutated after insert.
type AlertFiring struct {
	ID          int64     `db:"id" json:"id"`
	AlertID     int64     `db:"alert_id" json:"alertId"`
	TriggeredAt time.Time `db:"triggered_at" json:"triggeredAt"`
}

// ProductAlertCandidate is a product carrying its count of active alerts,
// as loaded at the start of a runner pass.
type ProductAlertCandidate struct {
	Product
	ActiveAlerts int `db:"active_alerts" json:"activeAlerts"`
}

// FiredAlert pairs an alert with the price transition that satisfied it,
// handed to the notifier.
type FiredAlert struct {
	Alert    PriceAlert
	Product  Product
	OldPrice decimal.Decimal
	NewPrice decimal.Decimal
}
