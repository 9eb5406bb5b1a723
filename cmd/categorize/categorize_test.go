package categorize

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/statement-budget/internal/categorytable"
	"fjacquet/statement-budget/internal/config"
	"fjacquet/statement-budget/internal/container"
	"fjacquet/statement-budget/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Statement.StartMarker = "Transaction Description"
	cfg.Report.Formats = []string{"text"}
	cfg.Report.Delimiter = ","

	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestExplain(t *testing.T) {
	var out bytes.Buffer
	Explain(newTestContainer(t), []string{"SAFEWAY Store", "Zzqqy Widget Co"}, &out)

	assert.Equal(t,
		"SAFEWAY Store -> groceries (keyword \"safeway\")\n"+
			"Zzqqy Widget Co -> other (fallback)\n",
		out.String())
}

func TestList(t *testing.T) {
	var out bytes.Buffer
	List(newTestContainer(t), &out)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 14)
	assert.True(t, strings.HasPrefix(lines[0], " 1. gas/electric: fuel, "))
	assert.Equal(t, "14. other (fallback)", lines[13])
}

func TestExport(t *testing.T) {
	c := newTestContainer(t)
	path := filepath.Join(t.TempDir(), "nested", "categories.yaml")

	var out bytes.Buffer
	require.NoError(t, Export(c, path, &out))
	assert.Equal(t, "Wrote 14 categories to "+path+"\n", out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	entries, err := categorytable.Parse(data)
	require.NoError(t, err)
	table, err := categorytable.New(entries)
	require.NoError(t, err)
	assert.Equal(t, c.GetTable().IDs(), table.IDs())
	assert.Equal(t, c.GetTable().Search("safeway store").ID, table.Search("safeway store").ID)
}
