package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"fjacquet/statement-budget/internal/fileutils"
	"fjacquet/statement-budget/internal/logging"
	"fjacquet/statement-budget/internal/statement"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet   = "Sheet1"
	maxSheetName   = 31
	moneyNumFmt    = "$#,##0.00"
	chartAnchor    = "E2"
	chartTitle     = "Spending by category"
	fallbackSheet  = "Statement"
	totalColumnIdx = 1
)

// RenderWorkbook renders the debit table of res as a one-sheet workbook:
// category names in column A, totals in column B, descriptions after
// them, a total row, and a pie chart over A/B.
func RenderWorkbook(res *statement.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(res.Document)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, err
	}
	if err := writeSheet(f, sheet, res.Debits.RenderTable().Records()); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSheet writes positional records, formats column B as money and adds
// a pie chart over the category rows (the rows before the first empty one).
func writeSheet(f *excelize.File, sheet string, records [][]string) error {
	categories := len(records)
	for i, rec := range records {
		if len(rec) == 0 && categories == len(records) {
			categories = i
		}
		for j, value := range rec {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := setCell(f, sheet, cell, j, value); err != nil {
				return err
			}
		}
	}

	numFmt := moneyNumFmt
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}
	if len(records) > 0 {
		if err := f.SetCellStyle(sheet, "B1", fmt.Sprintf("B%d", len(records)), style); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
		return err
	}

	if categories == 0 {
		return nil
	}
	return f.AddChart(sheet, chartAnchor, &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       chartTitle,
			Categories: fmt.Sprintf("'%s'!$A$1:$A$%d", sheet, categories),
			Values:     fmt.Sprintf("'%s'!$B$1:$B$%d", sheet, categories),
		}},
		Title:    []excelize.RichTextRun{{Text: chartTitle}},
		Legend:   excelize.ChartLegend{Position: "right"},
		PlotArea: excelize.ChartPlotArea{ShowPercent: true},
	})
}

func setCell(f *excelize.File, sheet, cell string, col int, value string) error {
	if col == totalColumnIdx {
		if d, err := decimal.NewFromString(value); err == nil {
			return f.SetCellFloat(sheet, cell, d.InexactFloat64(), 2, 64)
		}
	}
	return f.SetCellStr(sheet, cell, value)
}

// SheetName derives a valid worksheet name from a document path.
func SheetName(document string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, fileutils.Stem(document))
	name = strings.Trim(name, "'")
	if name == "" {
		return fallbackSheet
	}
	return truncate(name, maxSheetName)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func uniqueSheetName(base string, used map[string]bool) string {
	name := base
	for i := 2; used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

// CombineWorkbooks copies the first sheet of every workbook in files into
// one sheet each of a new workbook at out, in order, with a pie chart per
// sheet.
func (g *Generator) CombineWorkbooks(files []string, out string) error {
	if len(files) == 0 {
		return fmt.Errorf("no workbooks to combine")
	}

	dst := excelize.NewFile()
	defer dst.Close()

	used := make(map[string]bool, len(files))
	for i, file := range files {
		records, err := readFirstSheet(file)
		if err != nil {
			return err
		}

		sheet := uniqueSheetName(SheetName(file), used)
		if i == 0 {
			err = dst.SetSheetName(defaultSheet, sheet)
		} else {
			_, err = dst.NewSheet(sheet)
		}
		if err != nil {
			return fmt.Errorf("error adding sheet %q: %w", sheet, err)
		}

		if err := writeSheet(dst, sheet, records); err != nil {
			return fmt.Errorf("error copying %s: %w", file, err)
		}
	}
	dst.SetActiveSheet(0)

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(out)); err != nil {
		return err
	}
	if err := dst.SaveAs(out); err != nil {
		return fmt.Errorf("error saving combined workbook: %w", err)
	}

	g.logger.Info("Combined workbook written",
		logging.F(logging.FieldOutputFile, out),
		logging.F(logging.FieldCount, len(files)))
	return nil
}

func readFirstSheet(file string) ([][]string, error) {
	src, err := excelize.OpenFile(file)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook %s: %w", file, err)
	}
	defer src.Close()

	sheets := src.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", file)
	}
	rows, err := src.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("error reading workbook %s: %w", file, err)
	}
	return rows, nil
}

