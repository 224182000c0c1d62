// Package currency provides standardized price formatting across the application.
// All monetary amounts are stored as decimal.Decimal to avoid floating-point errors.
package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents an ISO 4217 currency code.
type Currency string

// PHP is the Philippine Peso. Market prices are published in pesos.
const PHP Currency = "PHP"

// DefaultCurrency is the currency used when none is specified.
const DefaultCurrency = PHP

// CurrencyInfo contains metadata about a currency.
type CurrencyInfo struct {
	Code          Currency
	Name          string
	Symbol        string
	DecimalPlaces int
	SymbolBefore  bool
}

var currencies = map[Currency]CurrencyInfo{
	PHP: {Code: PHP, Name: "Philippine Peso", Symbol: "₱", DecimalPlaces: 2, SymbolBefore: true},
}

// GetInfo returns metadata for a currency code.
func GetInfo(code Currency) (CurrencyInfo, bool) {
	info, ok := currencies[code]
	return info, ok
}

// Money represents a monetary amount with currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

// NewMoney creates a new Money value.
func NewMoney(amount decimal.Decimal, curr Currency) Money {
	if curr == "" {
		curr = DefaultCurrency
	}
	return Money{Amount: amount, Currency: curr}
}

// Peso creates a PHP Money value.
func Peso(amount decimal.Decimal) Money {
	return NewMoney(amount, PHP)
}

// Format returns a formatted string representation, e.g. "₱45.00".
func (m Money) Format() string {
	info, ok := GetInfo(m.Currency)
	if !ok {
		return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
	}

	rounded := m.Amount.StringFixed(int32(info.DecimalPlaces))
	if info.SymbolBefore {
		return info.Symbol + rounded
	}
	return rounded + info.Symbol
}

// FormatPerUnit formats a price with its unit of measure, e.g. "₱45.00/kg".
func (m Money) FormatPerUnit(unit string) string {
	if unit == "" {
		return m.Format()
	}
	return m.Format() + "/" + unit
}

// FormatPeso is a convenience for the common case of formatting a peso price.
func FormatPeso(amount decimal.Decimal) string {
	return Peso(amount).Format()
}
