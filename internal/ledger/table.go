package ledger

import (
	"fjacquet/statement-budget/internal/models"

	"github.com/shopspring/decimal"
)

// TotalLabel names the trailing total row of a rendered table.
const TotalLabel = "Total"

// TransactionsLabel precedes the descriptions in a positional row.
const TransactionsLabel = "transactions:"

// Row is one category of a rendered table.
type Row struct {
	Category     string   `json:"category"`
	Cents        int64    `json:"cents"`
	Total        string   `json:"total"`
	Transactions []string `json:"transactions"`
}

// Amount returns the row total as a decimal.
func (r Row) Amount() decimal.Decimal {
	return models.CentsToDecimal(r.Cents)
}

// Table is the tabular summary consumed by report writers.
type Table struct {
	Rows       []Row  `json:"categories"`
	TotalCents int64  `json:"total_cents"`
	Total      string `json:"total"`
}

// RenderTable renders one row per category in table order plus the total.
func (l *Ledger) RenderTable() Table {
	t := Table{Rows: make([]Row, 0, len(l.ids))}
	for _, id := range l.ids {
		acc := l.accs[id]
		row := Row{
			Category:     id,
			Cents:        acc.cents,
			Transactions: append([]string(nil), acc.transactions...),
		}
		row.Total = row.Amount().StringFixed(2)
		t.Rows = append(t.Rows, row)
		t.TotalCents += acc.cents
	}
	t.Total = models.FormatCents(t.TotalCents)
	return t
}

// Records returns positional rows: category name in column 0, total in
// column 1, then TransactionsLabel and the descriptions. An empty row and a
// TotalLabel row follow the categories.
func (t Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+2)
	for _, r := range t.Rows {
		rec := make([]string, 0, len(r.Transactions)+3)
		rec = append(rec, r.Category, r.Total, TransactionsLabel)
		rec = append(rec, r.Transactions...)
		records = append(records, rec)
	}
	records = append(records, []string{}, []string{TotalLabel, t.Total})
	return records
}
