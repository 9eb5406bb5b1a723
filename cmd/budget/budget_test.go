package budget

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/statement-budget/internal/config"
	"fjacquet/statement-budget/internal/container"
	"fjacquet/statement-budget/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementText = `Transaction Description
03/14
03/15
1234567ABCDEFGHIJ
Starbucks Coffee
4.50
03/20
03/21
7654321ZYXWVUTSRQ
Refund Safeway
-10.00
TOTAL FEES FOR THIS PERIOD
`

func newTestContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Statement.StartMarker = "Transaction Description"
	cfg.Statement.EndMarkers = []string{"TOTAL FEES FOR THIS PERIOD"}
	cfg.Statement.MaskMarker = "X"
	cfg.Report.Directory = t.TempDir()
	cfg.Report.Formats = []string{"text"}
	cfg.Report.Delimiter = ","
	cfg.Batch.Workers = 2

	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func writeStatement(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(statementText), 0600))
	return path
}

func TestRun(t *testing.T) {
	c := newTestContainer(t)
	input := writeStatement(t, "dec2024.txt")
	outDir := t.TempDir()

	var out bytes.Buffer
	err := Run(context.Background(), c, input, outDir, []string{"text", "json"}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Total statement: $4.50")
	assert.Contains(t, out.String(), "Credits:")
	assert.FileExists(t, filepath.Join(outDir, "dec2024.txt"))
	assert.FileExists(t, filepath.Join(outDir, "dec2024.json"))
}

func TestRun_DefaultOutputDirectory(t *testing.T) {
	c := newTestContainer(t)
	input := writeStatement(t, "jan2023.txt")

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), c, input, "", nil, &out))
	assert.FileExists(t, filepath.Join(c.GetConfig().Report.Directory, "jan2023.txt"))
	assert.NoFileExists(t, filepath.Join(c.GetConfig().Report.Directory, "jan2023.xlsx"))
}

func TestRun_Errors(t *testing.T) {
	c := newTestContainer(t)

	tests := []struct {
		name    string
		input   string
		formats []string
		wantErr string
	}{
		{"no input", "", nil, "no statement given"},
		{"no year in name", writeStatement(t, "statement.txt"), nil, "pass --year"},
		{"bad format", writeStatement(t, "dec2024.txt"), []string{"doc"}, "unsupported report format"},
		{"unsupported extension", "dec2024.docx", nil, "dec2024.docx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Run(context.Background(), c, tt.input, t.TempDir(), tt.formats, &out)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, strings.TrimSpace(out.String()))
		})
	}
}
