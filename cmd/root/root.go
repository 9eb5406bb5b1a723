// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/statement-budget/internal/config"
	"fjacquet/statement-budget/internal/container"
	"fjacquet/statement-budget/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	Year       int
	Categories string
	ConfigFile string
	LogLevel   string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewDiscardLogger()

	// AppContainer is built before any subcommand runs.
	AppContainer *container.Container

	// SharedFlags holds the persistent flag values.
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "statement-budget",
		Short: "Turn credit-card statements into a categorized spending budget.",
		Long: `statement-budget reads credit-card statement PDFs, rebuilds the itemized
transactions, sorts them into spending categories by keyword, and writes
per-category totals as text, CSV, JSON or spreadsheet reports.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initContainer()
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input statement file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory")
	Cmd.PersistentFlags().IntVarP(&SharedFlags.Year, "year", "y", 0, "Statement year (default: from config, then from the file name)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Categories, "categories", "", "Category table YAML file")
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.statement-budget, .statement-budget or .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func initContainer() error {
	config.LoadEnv()

	cfg, err := config.Load(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	ApplyFlags(cfg, SharedFlags)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

// ApplyFlags lets explicitly set flags override the loaded configuration.
func ApplyFlags(cfg *config.Config, flags CommonFlags) {
	if flags.Categories != "" {
		cfg.Categories.File = flags.Categories
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.Year != 0 {
		cfg.Statement.Year = flags.Year
	}
}

// GetContainer returns the initialized container.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application container is not initialized")
	}
	return AppContainer, nil
}
