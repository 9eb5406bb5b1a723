// Package common provides the CSV helpers shared by the report writer and
// the candidate export/import commands.
package common

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is used when no delimiter is configured.
const DefaultDelimiter = ','

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string, delimiter rune) ([]TCSVRow, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	return ReadCSV[TCSVRow](file, delimiter)
}

// ReadCSV reads CSV rows from r.
func ReadCSV[TCSVRow any](r io.Reader, delimiter rune) ([]TCSVRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiterOrDefault(delimiter)
	reader.TrimLeadingSpace = true

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return rows, nil
}

// ReadCSVFileWithHeaders is ReadCSVFile for files that must carry every
// column in required. gocsv leaves fields of missing columns at their zero
// value, so a file from another tool would otherwise decode without error.
func ReadCSVFileWithHeaders[TCSVRow any](filePath string, delimiter rune, required ...string) ([]TCSVRow, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	if err := checkHeaders(data, delimiter, required); err != nil {
		return nil, err
	}
	return ReadCSV[TCSVRow](bytes.NewReader(data), delimiter)
}

func checkHeaders(data []byte, delimiter rune, required []string) error {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiterOrDefault(delimiter)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return fmt.Errorf("CSV data has no header row")
	}
	if err != nil {
		return fmt.Errorf("error reading CSV header: %w", err)
	}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = true
	}
	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("CSV header is missing columns %s (have %s)",
			strings.Join(missing, ", "), strings.Join(header, ", "))
	}
	return nil
}

// MarshalCSV renders rows, header first, with the given delimiter.
func MarshalCSV[TCSVRow any](rows []TCSVRow, delimiter rune) ([]byte, error) {
	if rows == nil {
		rows = []TCSVRow{}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiterOrDefault(delimiter)

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(w)); err != nil {
		return nil, fmt.Errorf("error writing CSV data: %w", err)
	}
	return buf.Bytes(), nil
}

func delimiterOrDefault(d rune) rune {
	if d == 0 {
		return DefaultDelimiter
	}
	return d
}
