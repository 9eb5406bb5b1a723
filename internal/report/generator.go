// Package report writes the summaries of processed statements.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/statement-budget/internal/common"
	"fjacquet/statement-budget/internal/fileutils"
	"fjacquet/statement-budget/internal/ledger"
	"fjacquet/statement-budget/internal/logging"
	"fjacquet/statement-budget/internal/models"
	"fjacquet/statement-budget/internal/statement"
)

// Format is an output format of the generator.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// DefaultFormats are written when none are requested.
var DefaultFormats = []Format{FormatText, FormatXLSX}

// Extension returns the file extension of f.
func (f Format) Extension() string {
	if f == FormatText {
		return ".txt"
	}
	return "." + string(f)
}

// ParseFormats validates format names. An empty list gives DefaultFormats.
func ParseFormats(names []string) ([]Format, error) {
	if len(names) == 0 {
		return append([]Format(nil), DefaultFormats...), nil
	}

	seen := make(map[Format]bool, len(names))
	formats := make([]Format, 0, len(names))
	for _, n := range names {
		f := Format(strings.ToLower(strings.TrimSpace(n)))
		switch f {
		case FormatText, FormatCSV, FormatXLSX, FormatJSON:
		default:
			return nil, fmt.Errorf("unsupported report format: %s", n)
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// Generator renders statement results to report files.
type Generator struct {
	logger    logging.Logger
	delimiter rune
}

// NewGenerator creates a Generator. delimiter applies to CSV output.
func NewGenerator(logger logging.Logger, delimiter rune) *Generator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Generator{logger: logger, delimiter: delimiter}
}

// Write renders res in every format and writes "<stem>.<ext>" files into
// dir, stem being the document name without extension. Every format is
// rendered before anything is written, so a rendering failure leaves no
// files behind. It returns the written paths.
func (g *Generator) Write(res *statement.Result, dir string, formats ...Format) ([]string, error) {
	if len(formats) == 0 {
		formats = DefaultFormats
	}

	rendered := make([][]byte, len(formats))
	for i, f := range formats {
		data, err := g.Render(res, f)
		if err != nil {
			return nil, fmt.Errorf("error rendering %s report for %s: %w", f, res.Document, err)
		}
		rendered[i] = data
	}

	stem := fileutils.Stem(res.Document)
	paths := make([]string, 0, len(formats))
	for i, f := range formats {
		path := filepath.Join(dir, stem+f.Extension())
		if err := fileutils.WriteFile(path, rendered[i]); err != nil {
			return paths, fmt.Errorf("error writing %s: %w", path, err)
		}
		g.logger.Info("Report written",
			logging.F(logging.FieldFormat, string(f)),
			logging.F(logging.FieldOutputFile, path),
			logging.F(logging.FieldRunID, res.RunID))
		paths = append(paths, path)
	}
	return paths, nil
}

// Render renders res in one format.
func (g *Generator) Render(res *statement.Result, f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return []byte(RenderText(res)), nil
	case FormatCSV:
		return common.MarshalCSV(SummaryRows(res), g.delimiter)
	case FormatXLSX:
		return RenderWorkbook(res)
	case FormatJSON:
		return renderJSON(res)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", f)
	}
}

// RenderText is the debit ledger text, followed by the credits ledger when
// the statement had refunds.
func RenderText(res *statement.Result) string {
	text := res.Debits.RenderText()
	if res.Credits.Count() > 0 {
		text += "\nCredits:\n" + res.Credits.RenderText()
	}
	return text
}

// SummaryRow is one CSV summary line.
type SummaryRow struct {
	Direction    models.Direction `csv:"direction"`
	Category     string           `csv:"category"`
	Total        string           `csv:"total"`
	Count        int              `csv:"count"`
	Transactions string           `csv:"transactions"`
}

// SummaryRows lists every debit category, then the credit categories that
// received anything.
func SummaryRows(res *statement.Result) []SummaryRow {
	var rows []SummaryRow
	for _, r := range res.Debits.RenderTable().Rows {
		rows = append(rows, summaryRow(models.DirectionDebit, r))
	}
	for _, r := range res.Credits.RenderTable().Rows {
		if len(r.Transactions) > 0 {
			rows = append(rows, summaryRow(models.DirectionCredit, r))
		}
	}
	return rows
}

func summaryRow(d models.Direction, r ledger.Row) SummaryRow {
	return SummaryRow{
		Direction:    d,
		Category:     r.Category,
		Total:        r.Total,
		Count:        len(r.Transactions),
		Transactions: strings.Join(r.Transactions, "; "),
	}
}

type jsonReport struct {
	RunID    string                     `json:"run_id"`
	Document string                     `json:"document"`
	Year     int                        `json:"year"`
	Debits   ledger.Table               `json:"debits"`
	Credits  ledger.Table               `json:"credits"`
	Records  []models.TransactionRecord `json:"transactions"`
}

func renderJSON(res *statement.Result) ([]byte, error) {
	out, err := json.MarshalIndent(jsonReport{
		RunID:    res.RunID,
		Document: filepath.Base(res.Document),
		Year:     res.Year,
		Debits:   res.Debits.RenderTable(),
		Credits:  res.Credits.RenderTable(),
		Records:  res.Records,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}
