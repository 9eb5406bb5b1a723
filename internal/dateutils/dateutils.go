// Package dateutils resolves statement month/day tokens into calendar dates.
package dateutils

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fjacquet/statement-budget/internal/models"
)

// ResolveMonthDay parses a "MM/DD" token for the given year. One-digit
// months and days are accepted. Invalid calendar dates are errors.
func ResolveMonthDay(token string, year int) (time.Time, error) {
	return time.Parse(models.DateLayoutStatement, fmt.Sprintf("%s/%d", token, year))
}

// ResolveOrSentinel is ResolveMonthDay that substitutes models.SentinelDate
// on failure. ok is false when the sentinel was used.
func ResolveOrSentinel(token string, year int) (date time.Time, ok bool) {
	t, err := ResolveMonthDay(token, year)
	if err != nil {
		return models.SentinelDate, false
	}
	return t, true
}

// YearFromFilename takes the year from the last four characters of the file
// stem, e.g. "statements/dec2024.pdf" -> 2024.
func YearFromFilename(path string) (int, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if len(stem) < 4 {
		return 0, fmt.Errorf("file name %q is too short to carry a year", filepath.Base(path))
	}

	year, err := strconv.Atoi(stem[len(stem)-4:])
	if err != nil || year < 1000 {
		return 0, fmt.Errorf("file name %q does not end with a four-digit year", filepath.Base(path))
	}
	return year, nil
}
