// Package models provides the data structures shared by the statement
// pipeline: raw candidates, categorized transaction records and category
// configuration.
package models

// Direction tells whether a candidate was a charge or a refund/reversal.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Candidate is a raw transaction carved out of statement text, before
// categorization. Name keeps the case and spacing found in the source and
// Date is the month/day token without a year.
type Candidate struct {
	Name  string `csv:"name" json:"name"`
	Cents int64  `csv:"cents" json:"cents"`
	Date  string `csv:"date" json:"date"`
}

// CategoryConfig is one entry of the category table as loaded from
// configuration. An entry with no keywords is the fallback category.
type CategoryConfig struct {
	ID       string   `yaml:"id" json:"id"`
	Synonyms []string `yaml:"synonyms" json:"synonyms"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// IsFallback reports whether the entry can only be selected as a default.
func (c CategoryConfig) IsFallback() bool {
	return len(c.Keywords) == 0
}

// CandidateColumns are the CSV headers of a CandidateRow.
var CandidateColumns = []string{"direction", "date", "name", "cents"}

// CandidateRow is the CSV form of a candidate, used to export extraction
// results and to feed them back without re-reading the statement.
type CandidateRow struct {
	Direction Direction `csv:"direction"`
	Date      string    `csv:"date"`
	Name      string    `csv:"name"`
	Cents     int64     `csv:"cents"`
}

// Candidate returns the row without its direction.
func (r CandidateRow) Candidate() Candidate {
	return Candidate{Name: r.Name, Cents: r.Cents, Date: r.Date}
}
