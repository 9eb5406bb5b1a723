package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SentinelDate marks a transaction whose statement date could not be parsed.
// It is kept for compatibility with existing reports; new consumers should
// check TransactionRecord.DateValid instead of comparing against it.
var SentinelDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// TransactionRecord is a categorized transaction.
type TransactionRecord struct {
	Name      string    `json:"name"`
	Cents     int64     `json:"cents"`
	Date      time.Time `json:"date"`
	DateValid bool      `json:"date_valid"`
	Category  string    `json:"category"`
	Direction Direction `json:"direction"`
}

// Amount returns the decimal amount, exactly Cents / 100.
func (r TransactionRecord) Amount() decimal.Decimal {
	return CentsToDecimal(r.Cents)
}

// Description renders the one-line form kept in category logs, e.g.
// "coffee shop: $4.50 date:03/14/2025".
func (r TransactionRecord) Description() string {
	return fmt.Sprintf("%s: $%s date:%s", r.Name, r.Amount().StringFixed(2), r.Date.Format(DateLayoutDisplay))
}

// IsCategorized reports whether a category has been assigned.
func (r TransactionRecord) IsCategorized() bool {
	return r.Category != ""
}
