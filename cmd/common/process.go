// Package common contains shared functionality for command handlers
package common

import (
	"fmt"

	"fjacquet/statement-budget/internal/dateutils"
	"fjacquet/statement-budget/internal/report"
)

// ResolveYear picks the statement year: the configured year (flag or
// config) when set, otherwise the year at the end of the file name.
func ResolveYear(configured int, path string) (int, error) {
	if configured != 0 {
		return configured, nil
	}
	year, err := dateutils.YearFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("%w; pass --year", err)
	}
	return year, nil
}

// Formats returns the formats named on the command line, or fallback when
// none were given.
func Formats(names []string, fallback []report.Format) ([]report.Format, error) {
	if len(names) == 0 {
		return fallback, nil
	}
	return report.ParseFormats(names)
}

// OutputDir returns dir, or fallback when dir is empty.
func OutputDir(dir, fallback string) string {
	if dir != "" {
		return dir
	}
	return fallback
}
