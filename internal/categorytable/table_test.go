package categorytable

import (
	"testing"

	"fjacquet/statement-budget/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	table, err := New([]models.CategoryConfig{
		{ID: "groceries", Keywords: []string{"safeway", "trader joe"}},
		{ID: "dining out", Synonyms: []string{"restaurants"}, Keywords: []string{"coffee", "cafe", "pho"}},
		{ID: "travel", Keywords: []string{"united", "cafe"}},
		{ID: "other", Synonyms: []string{"miscellaneous"}},
	})
	require.NoError(t, err)
	return table
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.CategoryConfig
		wantErr string
	}{
		{"empty", nil, "empty"},
		{"missing id", []models.CategoryConfig{{Keywords: []string{"a"}}, {ID: "other"}}, "no id"},
		{"duplicate id", []models.CategoryConfig{{ID: "a", Keywords: []string{"x"}}, {ID: "a"}}, "duplicate"},
		{"no fallback", []models.CategoryConfig{{ID: "a", Keywords: []string{"x"}}}, "no fallback"},
		{"two fallbacks", []models.CategoryConfig{{ID: "a"}, {ID: "b"}}, "exactly one fallback"},
		{"empty keyword", []models.CategoryConfig{{ID: "a", Keywords: []string{""}}, {ID: "b"}}, "empty keyword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_LowercasesKeywords(t *testing.T) {
	table, err := New([]models.CategoryConfig{
		{ID: "amazon", Keywords: []string{"AMZN"}},
		{ID: "other"},
	})
	require.NoError(t, err)
	assert.Equal(t, "amazon", table.Search("amzn mktp us").ID)
}

func TestSearch_FirstMatchWins(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keyword match", "starbucks coffee #123", "dining out"},
		{"earlier category wins over later shared keyword", "airport cafe", "dining out"},
		{"later category when only it matches", "united 0162345", "travel"},
		{"substring inside word", "pho kitchen", "dining out"},
		{"fallback on no match", "zzz_unrecognized_merchant_123", "other"},
		{"case sensitive against lower-cased names", "SAFEWAY", "other"},
		{"empty name falls back", "", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Search(tt.in).ID)
		})
	}
}

func TestMatch_ReportsKeyword(t *testing.T) {
	table := testTable(t)

	c, kw, ok := table.Match("the cafe at coffee corner")
	assert.True(t, ok)
	assert.Equal(t, "dining out", c.ID)
	assert.Equal(t, "coffee", kw, "keywords are tried in order, not by position in the name")

	c, kw, ok = table.Match("nothing here")
	assert.False(t, ok)
	assert.Equal(t, "other", c.ID)
	assert.Empty(t, kw)
}

func TestTableAccessors(t *testing.T) {
	table := testTable(t)

	assert.Equal(t, 4, table.Len())
	assert.Equal(t, []string{"groceries", "dining out", "travel", "other"}, table.IDs())
	assert.Equal(t, "other", table.Fallback().ID)
	assert.True(t, table.Fallback().IsFallback())

	c, ok := table.Lookup("dining out")
	require.True(t, ok)
	assert.Equal(t, []string{"restaurants"}, c.Synonyms)

	_, ok = table.Lookup("nope")
	assert.False(t, ok)

	cats := table.Categories()
	cats[0].ID = "mutated"
	assert.Equal(t, "groceries", table.Categories()[0].ID)

	cfgs := table.Configs()
	require.Len(t, cfgs, 4)
	assert.True(t, cfgs[3].IsFallback())
}

func TestDefault(t *testing.T) {
	table := Default()

	assert.Equal(t, 14, table.Len())
	assert.Equal(t, "gas/electric", table.IDs()[0])
	assert.Equal(t, "other", table.Fallback().ID)

	tests := map[string]string{
		"starbucks store 123":           "dining out",
		"amzn mktp us*2k3":              "amazon",
		"king soopers #0001":            "groceries",
		"express tolls":                 "tolls",
		"vueling airlufnl9s barcelona":  "travel",
		"netflix.com":                   "subscription services",
		"zzz_unrecognized_merchant_123": "other",
	}
	for name, want := range tests {
		assert.Equal(t, want, table.Search(name).ID, name)
	}
}

func TestDefault_PriorityFollowsTableOrder(t *testing.T) {
	table := Default()

	// "food and gas" sits under gas/electric, which precedes dining out's "food truck".
	assert.Equal(t, "gas/electric", table.Search("food and gas food truck").ID)
	// "shell" (gas/electric) precedes "sushi" (dining out).
	assert.Equal(t, "gas/electric", table.Search("shell sushi bar").ID)
}
