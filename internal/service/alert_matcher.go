package service

import (
	"github.com/shopspring/decimal"

	"github.com/presyo/backend/internal/model"
)

// ShouldFire decides whether a price transition satisfies an alert condition.
// Pure function over its four inputs.
//
// below and above consult only the new price, so an alert keeps firing on
// every pass while the condition holds rather than only on the crossing.
// That is the intended subscription semantics, not a bug.
//
// An unrecognized alert type never fires.
func ShouldFire(alertType model.AlertType, targetPrice, oldPrice, newPrice decimal.Decimal) bool {
	switch alertType {
	case model.AlertTypeBelow:
		return newPrice.LessThan(targetPrice)
	case model.AlertTypeAbove:
		return newPrice.GreaterThan(targetPrice)
	case model.AlertTypeChange:
		return !newPrice.Equal(oldPrice)
	}
	return false
}
