// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. BUDGET_LOG_LEVEL.
const EnvPrefix = "BUDGET"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Categories struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`

	Statement struct {
		// Year 0 means "take it from the file name".
		Year        int      `mapstructure:"year" yaml:"year"`
		StartMarker string   `mapstructure:"start_marker" yaml:"start_marker"`
		EndMarkers  []string `mapstructure:"end_markers" yaml:"end_markers"`
		MaskMarker  string   `mapstructure:"mask_marker" yaml:"mask_marker"`
	} `mapstructure:"statement" yaml:"statement"`

	Report struct {
		Directory    string   `mapstructure:"directory" yaml:"directory"`
		Formats      []string `mapstructure:"formats" yaml:"formats"`
		CombinedFile string   `mapstructure:"combined_file" yaml:"combined_file"`
		Delimiter    string   `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"report" yaml:"report"`

	Batch struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"batch" yaml:"batch"`
}

// DelimiterRune returns the CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Report.Delimiter)
	return r
}

// Load builds the configuration: defaults, then the config file, then
// BUDGET_* environment variables. An empty configFile searches
// $HOME/.statement-budget, ./.statement-budget and . for config.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.statement-budget")
		v.AddConfigPath(".statement-budget")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("categories.file", "")

	v.SetDefault("statement.year", 0)
	v.SetDefault("statement.start_marker", "Transaction Description")
	v.SetDefault("statement.end_markers", []string{
		"Transactions continued on next page",
		"TOTAL FEES FOR THIS PERIOD",
		"TOTAL INTEREST FOR THIS PERIOD",
	})
	v.SetDefault("statement.mask_marker", "X")

	v.SetDefault("report.directory", "reports")
	v.SetDefault("report.formats", []string{"text", "xlsx"})
	v.SetDefault("report.combined_file", "combinedBudget.xlsx")
	v.SetDefault("report.delimiter", ",")

	v.SetDefault("batch.workers", 4)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.Report.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.Report.Delimiter)
	}

	if y := config.Statement.Year; y != 0 && (y < 1000 || y > 9999) {
		return fmt.Errorf("statement.year must be a four-digit year or 0, got: %d", y)
	}

	if strings.TrimSpace(config.Statement.StartMarker) == "" {
		return fmt.Errorf("statement.start_marker must not be empty")
	}

	for _, m := range config.Statement.EndMarkers {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("statement.end_markers must not contain empty markers")
		}
	}

	if config.Batch.Workers < 1 || config.Batch.Workers > 64 {
		return fmt.Errorf("batch.workers must be between 1 and 64, got: %d", config.Batch.Workers)
	}

	return nil
}
