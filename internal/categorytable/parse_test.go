package categorytable

import (
	"testing"

	"fjacquet/statement-budget/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_MappingKeepsDocumentOrder(t *testing.T) {
	data := []byte(`
zeta:
  synonyms: [last letter]
  keywords: ["zz"]
alpha:
  keywords: ["aa", " bar "]
other:
  synonyms: [miscellaneous]
  keywords: []
`)
	entries, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "zeta", entries[0].ID)
	assert.Equal(t, []string{"last letter"}, entries[0].Synonyms)
	assert.Equal(t, "alpha", entries[1].ID)
	assert.Equal(t, []string{"aa", " bar "}, entries[1].Keywords)
	assert.Equal(t, "other", entries[2].ID)
	assert.True(t, entries[2].IsFallback())
}

func TestParse_NullBodyIsFallback(t *testing.T) {
	entries, err := Parse([]byte("groceries:\n  keywords: [safeway]\nother:\n"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[1].IsFallback())
}

func TestParse_ListForm(t *testing.T) {
	data := []byte(`
- id: groceries
  keywords: [safeway]
- id: other
`)
	entries, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryConfig{
		{ID: "groceries", Keywords: []string{"safeway"}},
		{ID: "other"},
	}, entries)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty document", ""},
		{"scalar root", "just a string"},
		{"bad yaml", "a: [unclosed"},
		{"bad body", "groceries:\n  keywords: {nested: map}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestMarshal_RoundTripsOrder(t *testing.T) {
	in := []models.CategoryConfig{
		{ID: "tolls", Synonyms: []string{"tolls"}, Keywords: []string{"express tolls"}},
		{ID: "amazon", Keywords: []string{"amzn", "amazon"}},
		{ID: "other"},
	}

	data, err := Marshal(in)
	require.NoError(t, err)

	out, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "tolls", out[0].ID)
	assert.Equal(t, []string{"amzn", "amazon"}, out[1].Keywords)
	assert.True(t, out[2].IsFallback())

	_, err = New(out)
	assert.NoError(t, err)
}

func TestParse_DefaultTableDocument(t *testing.T) {
	entries, err := Parse(defaultCategoriesYAML)
	require.NoError(t, err)

	fallbacks := 0
	for _, e := range entries {
		if e.IsFallback() {
			fallbacks++
		}
	}
	assert.Equal(t, 1, fallbacks)
}
