// Package currencyutils converts statement amount text to integer minor units.
package currencyutils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// IsNegative reports whether amount text carries a minus sign anywhere.
// Statements print refunds as "-12.00" or "12.00-".
func IsNegative(text string) bool {
	return strings.Contains(text, "-")
}

// StandardizeAmount strips sign, thousands separators and surrounding
// whitespace, e.g. "-1,234.56 " -> "1234.56".
func StandardizeAmount(text string) string {
	text = strings.ReplaceAll(text, "-", "")
	text = strings.ReplaceAll(text, ",", "")
	return strings.TrimSpace(text)
}

// ParseCents parses amount text into unsigned minor units, rounding half to
// even on the cents value. "1,234.56" and "-1,234.56" both give 123456.
func ParseCents(text string) (int64, error) {
	standardized := StandardizeAmount(text)
	if standardized == "" {
		return 0, fmt.Errorf("empty amount %q", text)
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", text, err)
	}

	return amount.Mul(hundred).RoundBank(0).IntPart(), nil
}
