package textextract

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"os/exec"
	"sort"
	"strings"

	"fjacquet/statement-budget/internal/fileutils"
	"fjacquet/statement-budget/internal/logging"
	"fjacquet/statement-budget/internal/parsererror"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF-")

// Gaps between glyphs, in multiples of the font size. A gap wider than
// cellGap starts a new cell (and a new line); a gap wider than wordGap
// inside a cell is a space.
const (
	cellGap = 1.0
	wordGap = 0.2
)

// runPdftotext extracts a PDF with the poppler pdftotext command. Without
// -layout, pdftotext puts every table cell on its own line.
var runPdftotext = func(path string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %w", err)
	}
	out, err := exec.Command("pdftotext", "-enc", "UTF-8", path, "-").Output()
	if err != nil {
		return "", fmt.Errorf("error running pdftotext: %w", err)
	}
	return string(out), nil
}

// PDFExtractor reads statement PDFs with github.com/ledongthuc/pdf and falls
// back to pdftotext when the library fails or finds no text.
type PDFExtractor struct {
	logger logging.Logger
}

// NewPDFExtractor creates a PDFExtractor. A nil logger discards output.
func NewPDFExtractor(logger logging.Logger) *PDFExtractor {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &PDFExtractor{logger: logger}
}

// ExtractLines returns the lines of every page, in page order.
func (e *PDFExtractor) ExtractLines(path string) ([]string, error) {
	if err := validatePDF(path); err != nil {
		return nil, err
	}

	lines, libErr := readWithLibrary(path)
	if libErr == nil && len(lines) > 0 {
		e.logger.Debug("Extracted PDF text",
			logging.F(logging.FieldDocument, path),
			logging.F(logging.FieldCount, len(lines)))
		return lines, nil
	}

	e.logger.WithError(libErr).Warn("PDF library found no text, trying pdftotext",
		logging.F(logging.FieldDocument, path))

	text, err := runPdftotext(path)
	if err != nil {
		if libErr != nil {
			return nil, fmt.Errorf("PDF text extraction failed: %v; fallback: %w", libErr, err)
		}
		return nil, err
	}
	return SplitLines(text), nil
}

func validatePDF(path string) error {
	if !fileutils.FileExists(path) {
		return &parsererror.ValidationError{FilePath: path, Reason: "file does not exist"}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	head := make([]byte, len(pdfMagic))
	n, _ := f.Read(head)
	if !bytes.Equal(head[:n], pdfMagic) {
		return &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "PDF",
			Msg:            "missing %PDF- header",
		}
	}
	return nil
}

// readWithLibrary emits one line per table cell, page after page. Glyphs
// are grouped into rows by baseline, ordered left to right, and split into
// cells on column gaps.
func readWithLibrary(path string) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		lines = append(lines, cellLines(page.Content().Text)...)
	}
	return lines, nil
}

// cellLines turns positioned glyphs into lines, top row first, one line
// per cell.
func cellLines(texts []pdf.Text) []string {
	rows := make(map[int][]pdf.Text)
	for _, t := range texts {
		y := int(math.Round(t.Y))
		rows[y] = append(rows[y], t)
	}

	ys := make([]int, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	var lines []string
	for _, y := range ys {
		lines = append(lines, rowCells(rows[y])...)
	}
	return lines
}

func rowCells(row []pdf.Text) []string {
	sort.SliceStable(row, func(a, b int) bool { return row[a].X < row[b].X })

	var cells []string
	var cell strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cell.String()); s != "" {
			cells = append(cells, s)
		}
		cell.Reset()
	}

	for i, t := range row {
		if i > 0 {
			prev := row[i-1]
			size := math.Max(prev.FontSize, 1)
			gap := t.X - glyphEnd(prev)
			switch {
			case gap > cellGap*size:
				flush()
			case gap > wordGap*size && !strings.HasSuffix(cell.String(), " "):
				cell.WriteByte(' ')
			}
		}
		cell.WriteString(t.S)
	}
	flush()
	return cells
}

// glyphEnd is the right edge of t. Fonts without a Widths array report
// zero width; half an em stands in for it.
func glyphEnd(t pdf.Text) float64 {
	if t.W > 0 {
		return t.X + t.W
	}
	return t.X + t.FontSize/2
}
