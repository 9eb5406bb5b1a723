package main

import (
	"os"
	"strings"

	"fjacquet/statement-budget/cmd/batch"
	"fjacquet/statement-budget/cmd/budget"
	"fjacquet/statement-budget/cmd/categorize"
	"fjacquet/statement-budget/cmd/extract"
	"fjacquet/statement-budget/cmd/root"
	"fjacquet/statement-budget/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// .env first, so BUDGET_* variables reach viper and the level below.
	config.LoadEnv()
	logrus.SetLevel(envLogLevel())

	root.Init()

	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(extract.Cmd)
}

// envLogLevel reads BUDGET_LOG_LEVEL for the standard logrus logger, which
// is used before the configured logger exists.
func envLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv(config.EnvPrefix + "_LOG_LEVEL")))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
