// Package categorizer turns raw statement candidates into categorized
// transaction records using an ordered category table.
package categorizer

import (
	"strings"

	"fjacquet/statement-budget/internal/categorytable"
	"fjacquet/statement-budget/internal/dateutils"
	"fjacquet/statement-budget/internal/logging"
	"fjacquet/statement-budget/internal/models"
)

// Categorizer assigns categories from an immutable table. It is safe for
// concurrent use.
type Categorizer struct {
	table  *categorytable.Table
	logger logging.Logger
}

// New creates a Categorizer over table. A nil logger discards output.
func New(table *categorytable.Table, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Categorizer{table: table, logger: logger}
}

// Table returns the category table in use.
func (c *Categorizer) Table() *categorytable.Table {
	return c.table
}

// Assign normalizes a candidate for the given year and assigns its category.
// The name is lower-cased but not trimmed. A date token that is not a valid
// month/day in year resolves to models.SentinelDate with DateValid false.
// The returned record is a debit; callers categorizing credits set Direction.
func (c *Categorizer) Assign(cand models.Candidate, year int) models.TransactionRecord {
	name := strings.ToLower(cand.Name)

	date, ok := dateutils.ResolveOrSentinel(cand.Date, year)
	if !ok {
		c.logger.Debug("Unparseable statement date, using sentinel",
			logging.F(logging.FieldMerchant, cand.Name),
			logging.F("date", cand.Date),
			logging.F(logging.FieldYear, year))
	}

	category := c.table.Search(name)

	return models.TransactionRecord{
		Name:      name,
		Cents:     cand.Cents,
		Date:      date,
		DateValid: ok,
		Category:  category.ID,
		Direction: models.DirectionDebit,
	}
}

// AssignAll assigns every candidate, keeping order.
func (c *Categorizer) AssignAll(cands []models.Candidate, year int) []models.TransactionRecord {
	records := make([]models.TransactionRecord, 0, len(cands))
	for _, cand := range cands {
		records = append(records, c.Assign(cand, year))
	}
	return records
}

// Explanation describes why a merchant name landed in its category.
type Explanation struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Keyword  string `json:"keyword,omitempty"`
	Fallback bool   `json:"fallback"`
}

// Explain reports the category and the keyword that matched name.
func (c *Categorizer) Explain(name string) Explanation {
	lowered := strings.ToLower(name)
	cat, keyword, ok := c.table.Match(lowered)
	return Explanation{
		Name:     lowered,
		Category: cat.ID,
		Keyword:  keyword,
		Fallback: !ok,
	}
}
