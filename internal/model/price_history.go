package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistoryEntry is one row of the append-only price ledger, written on
// every recorded price update. Used for trend reporting only; the alert
// matcher never reads it.
type PriceHistoryEntry struct {
	ID         int64           `db:"id" json:"id"`
	ProductID  int64           `db:"product_id" json:"productId"`
	Price      decimal.Decimal `db:"price" json:"price"`
	RecordedAt time.Time       `db:"recorded_at" json:"recordedAt"`
}
