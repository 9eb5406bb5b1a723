// Package categorytable holds the ordered, immutable table of spending
// categories and the first-match keyword search over it.
package categorytable

import (
	_ "embed"
	"fmt"
	"strings"

	"fjacquet/statement-budget/internal/models"
)

//go:embed default_categories.yaml
var defaultCategoriesYAML []byte

// Category is one immutable table entry.
type Category struct {
	ID       string
	Synonyms []string
	Keywords []string
}

// IsFallback reports whether this is the catch-all entry.
func (c Category) IsFallback() bool {
	return len(c.Keywords) == 0
}

// Table is an ordered category table with exactly one fallback entry.
// Order defines both match priority and report row order.
type Table struct {
	categories []Category
	index      map[string]int
	fallback   int
}

// New validates entries and builds a Table. Keywords are lower-cased.
func New(entries []models.CategoryConfig) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("category table is empty")
	}

	t := &Table{
		categories: make([]Category, 0, len(entries)),
		index:      make(map[string]int, len(entries)),
		fallback:   -1,
	}

	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("category at position %d has no id", i)
		}
		if _, dup := t.index[e.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %q", e.ID)
		}

		keywords := make([]string, 0, len(e.Keywords))
		for _, k := range e.Keywords {
			if k == "" {
				return nil, fmt.Errorf("category %q has an empty keyword", e.ID)
			}
			keywords = append(keywords, strings.ToLower(k))
		}

		if len(keywords) == 0 {
			if t.fallback >= 0 {
				return nil, fmt.Errorf("categories %q and %q both have no keywords; exactly one fallback is allowed",
					t.categories[t.fallback].ID, e.ID)
			}
			t.fallback = i
		}

		t.index[e.ID] = i
		t.categories = append(t.categories, Category{
			ID:       e.ID,
			Synonyms: append([]string(nil), e.Synonyms...),
			Keywords: keywords,
		})
	}

	if t.fallback < 0 {
		return nil, fmt.Errorf("category table has no fallback entry (an entry with no keywords)")
	}
	return t, nil
}

// Default returns the built-in statement category table.
func Default() *Table {
	entries, err := Parse(defaultCategoriesYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in category table: %v", err))
	}
	t, err := New(entries)
	if err != nil {
		panic(fmt.Sprintf("built-in category table: %v", err))
	}
	return t
}

// Search returns the first category, in table order, with a keyword that is
// a substring of name. Keywords within a category are tried in order. Names
// are expected to be lower-cased already; matching is case-sensitive. When
// nothing matches, the fallback category is returned.
func (t *Table) Search(name string) Category {
	c, _, _ := t.Match(name)
	return c
}

// Match is Search that also reports which keyword hit. ok is false when the
// fallback was returned.
func (t *Table) Match(name string) (c Category, keyword string, ok bool) {
	for _, cat := range t.categories {
		for _, k := range cat.Keywords {
			if strings.Contains(name, k) {
				return cat, k, true
			}
		}
	}
	return t.categories[t.fallback], "", false
}

// Fallback returns the catch-all category.
func (t *Table) Fallback() Category {
	return t.categories[t.fallback]
}

// Lookup returns the category with the given id.
func (t *Table) Lookup(id string) (Category, bool) {
	i, ok := t.index[id]
	if !ok {
		return Category{}, false
	}
	return t.categories[i], true
}

// Categories returns the entries in table order. The slice is a copy.
func (t *Table) Categories() []Category {
	return append([]Category(nil), t.categories...)
}

// IDs returns the category ids in table order.
func (t *Table) IDs() []string {
	ids := make([]string, len(t.categories))
	for i, c := range t.categories {
		ids[i] = c.ID
	}
	return ids
}

// Len returns the number of categories.
func (t *Table) Len() int {
	return len(t.categories)
}

// Configs returns the table as configuration entries, in order.
func (t *Table) Configs() []models.CategoryConfig {
	out := make([]models.CategoryConfig, len(t.categories))
	for i, c := range t.categories {
		out[i] = models.CategoryConfig{
			ID:       c.ID,
			Synonyms: append([]string(nil), c.Synonyms...),
			Keywords: append([]string(nil), c.Keywords...),
		}
	}
	return out
}
