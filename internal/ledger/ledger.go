// Package ledger accumulates categorized transactions into per-category
// totals and description logs for one statement run.
package ledger

import (
	"fmt"
	"strings"

	"fjacquet/statement-budget/internal/categorytable"
	"fjacquet/statement-budget/internal/models"
)

type accumulator struct {
	cents        int64
	transactions []string
}

// Ledger holds one accumulator per category of its table. Totals are kept in
// cents and only converted to decimal when rendered. A Ledger belongs to a
// single run and is not safe for concurrent use.
type Ledger struct {
	table *categorytable.Table
	ids   []string
	accs  map[string]*accumulator
	count int
}

// New creates a Ledger with a zero accumulator for every category.
func New(table *categorytable.Table) *Ledger {
	l := &Ledger{
		table: table,
		ids:   table.IDs(),
		accs:  make(map[string]*accumulator, table.Len()),
	}
	for _, id := range l.ids {
		l.accs[id] = &accumulator{}
	}
	return l
}

// Add adds rec's amount to its category and appends its description.
// Records with an empty or unknown category go to the fallback category.
func (l *Ledger) Add(rec models.TransactionRecord) {
	id := l.table.Fallback().ID
	if rec.IsCategorized() {
		id = rec.Category
	}
	acc, ok := l.accs[id]
	if !ok {
		acc = l.accs[l.table.Fallback().ID]
	}
	acc.cents += rec.Cents
	acc.transactions = append(acc.transactions, rec.Description())
	l.count++
}

// AddAll adds every record in order.
func (l *Ledger) AddAll(recs []models.TransactionRecord) {
	for _, rec := range recs {
		l.Add(rec)
	}
}

// Total returns the accumulated cents of a category, 0 if unknown.
func (l *Ledger) Total(id string) int64 {
	if acc, ok := l.accs[id]; ok {
		return acc.cents
	}
	return 0
}

// Transactions returns a copy of a category's description log.
func (l *Ledger) Transactions(id string) []string {
	if acc, ok := l.accs[id]; ok {
		return append([]string(nil), acc.transactions...)
	}
	return nil
}

// GrandTotal sums every category total.
func (l *Ledger) GrandTotal() int64 {
	var sum int64
	for _, id := range l.ids {
		sum += l.accs[id].cents
	}
	return sum
}

// Count returns the number of records added.
func (l *Ledger) Count() int {
	return l.count
}

// IsZero reports whether every category total is zero.
func (l *Ledger) IsZero() bool {
	for _, id := range l.ids {
		if l.accs[id].cents != 0 {
			return false
		}
	}
	return true
}

// RenderText renders every category in table order followed by the grand
// total:
//
//	dining out: $4.50
//	 transactions: [coffee shop: $4.50 date:03/14/2025]
//	...
//	Total statement: $4.50
func (l *Ledger) RenderText() string {
	var b strings.Builder
	for _, id := range l.ids {
		acc := l.accs[id]
		fmt.Fprintf(&b, "%s: $%s\n transactions: [%s]\n",
			id, models.FormatCents(acc.cents), strings.Join(acc.transactions, ", "))
	}
	fmt.Fprintf(&b, "Total statement: $%s\n", models.FormatCents(l.GrandTotal()))
	return b.String()
}
