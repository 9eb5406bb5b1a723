package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "Transaction Description", cfg.Statement.StartMarker)
	assert.Len(t, cfg.Statement.EndMarkers, 3)
	assert.Equal(t, "X", cfg.Statement.MaskMarker)
	assert.Zero(t, cfg.Statement.Year)
	assert.Equal(t, []string{"text", "xlsx"}, cfg.Report.Formats)
	assert.Equal(t, "combinedBudget.xlsx", cfg.Report.CombinedFile)
	assert.Equal(t, ',', cfg.DelimiterRune())
	assert.Equal(t, 4, cfg.Batch.Workers)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "budget.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
statement:
  year: 2024
  end_markers: ["END OF LIST"]
report:
  formats: [csv, json]
  delimiter: ";"
batch:
  workers: 2
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2024, cfg.Statement.Year)
	assert.Equal(t, []string{"END OF LIST"}, cfg.Statement.EndMarkers)
	assert.Equal(t, []string{"csv", "json"}, cfg.Report.Formats)
	assert.Equal(t, ';', cfg.DelimiterRune())
	assert.Equal(t, 2, cfg.Batch.Workers)
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("BUDGET_LOG_FORMAT", "json")
	t.Setenv("BUDGET_STATEMENT_YEAR", "2023")
	t.Setenv("BUDGET_CATEGORIES_FILE", "/tmp/cats.yaml")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 2023, cfg.Statement.Year)
	assert.Equal(t, "/tmp/cats.yaml", cfg.Categories.File)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"long delimiter", func(c *Config) { c.Report.Delimiter = ";;" }, "single character"},
		{"bad year", func(c *Config) { c.Statement.Year = 24 }, "four-digit year"},
		{"empty start marker", func(c *Config) { c.Statement.StartMarker = " " }, "start_marker"},
		{"empty end marker", func(c *Config) { c.Statement.EndMarkers = []string{""} }, "end_markers"},
		{"no workers", func(c *Config) { c.Batch.Workers = 0 }, "batch.workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	assert.NoError(t, validateConfig(validConfig()))
}

func validConfig() *Config {
	cfg := &Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Report.Delimiter = ","
	cfg.Statement.StartMarker = "Transaction Description"
	cfg.Batch.Workers = 1
	return cfg
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BUDGET_TEST_ONLY_VAR=from-dotenv\n"), 0600))
	t.Setenv("BUDGET_TEST_ONLY_VAR", "")
	require.NoError(t, os.Unsetenv("BUDGET_TEST_ONLY_VAR"))

	assert.Equal(t, path, loadEnvFile(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-dotenv", os.Getenv("BUDGET_TEST_ONLY_VAR"))
	assert.Empty(t, loadEnvFile(filepath.Join(dir, "missing.env")))
}
