package models

import (
	"github.com/shopspring/decimal"
)

// CentsToDecimal converts minor units to the decimal amount, exactly
// cents / 100.
func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatCents renders minor units with two decimal places, e.g. 12345 -> "123.45".
func FormatCents(cents int64) string {
	return CentsToDecimal(cents).StringFixed(2)
}
