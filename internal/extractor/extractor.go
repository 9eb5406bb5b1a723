// Package extractor carves raw transaction candidates out of the flat line
// stream of a credit-card statement.
//
// Extraction runs in two phases. The itemized section is first captured
// between a start marker and one of several end markers, possibly several
// times for multi-page statements. The captured lines are then scanned in
// order: a reference line opens a block whose name and date sit at fixed
// offsets around it, and every amount line that follows is emitted with that
// block's name and date.
package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/statement-budget/internal/currencyutils"
	"fjacquet/statement-budget/internal/logging"
	"fjacquet/statement-budget/internal/models"
	"fjacquet/statement-budget/internal/parsererror"
)

var (
	referencePattern = regexp.MustCompile(`\d{7}\S{10}`)
	amountPattern    = regexp.MustCompile(`\.\d\d$`)
)

// Default statement markers.
const (
	DefaultStartMarker = "Transaction Description"
	DefaultMaskMarker  = "X"
)

// DefaultEndMarkers end a captured section.
var DefaultEndMarkers = []string{
	"Transactions continued on next page",
	"TOTAL FEES FOR THIS PERIOD",
	"TOTAL INTEREST FOR THIS PERIOD",
}

// Layout places the name and date lines of a transaction block relative to
// its reference line.
type Layout struct {
	DateOffset int
	NameOffset int
}

// DefaultLayout is the block layout of the supported statements: the date
// two lines above the reference number, the merchant name right below it.
func DefaultLayout() Layout {
	return Layout{DateOffset: -2, NameOffset: 1}
}

// Options configures an Extractor. The zero value of a field means its default.
type Options struct {
	StartMarker string
	EndMarkers  []string
	Layout      Layout
	// MaskMarker ends the block scan when found on a debit amount line
	// (the masked card-number summary that follows the itemized list).
	MaskMarker string
}

// DefaultOptions returns the options for the supported statement layout.
func DefaultOptions() Options {
	return Options{
		StartMarker: DefaultStartMarker,
		EndMarkers:  append([]string(nil), DefaultEndMarkers...),
		Layout:      DefaultLayout(),
		MaskMarker:  DefaultMaskMarker,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.StartMarker == "" {
		o.StartMarker = d.StartMarker
	}
	if len(o.EndMarkers) == 0 {
		o.EndMarkers = d.EndMarkers
	}
	if o.Layout == (Layout{}) {
		o.Layout = d.Layout
	}
	if o.MaskMarker == "" {
		o.MaskMarker = d.MaskMarker
	}
	return o
}

// Result holds the candidates of one statement, in statement order.
type Result struct {
	Debits  []models.Candidate
	Credits []models.Candidate
}

// Len returns the number of candidates in both sequences.
func (r *Result) Len() int {
	return len(r.Debits) + len(r.Credits)
}

// Rows flattens the result into CSV rows, debits first.
func (r *Result) Rows() []models.CandidateRow {
	rows := make([]models.CandidateRow, 0, r.Len())
	for _, c := range r.Debits {
		rows = append(rows, models.CandidateRow{Direction: models.DirectionDebit, Date: c.Date, Name: c.Name, Cents: c.Cents})
	}
	for _, c := range r.Credits {
		rows = append(rows, models.CandidateRow{Direction: models.DirectionCredit, Date: c.Date, Name: c.Name, Cents: c.Cents})
	}
	return rows
}

// Extractor turns statement lines into candidates. It holds no per-statement
// state and may be shared.
type Extractor struct {
	opts   Options
	logger logging.Logger
}

// New creates an Extractor. A nil logger discards output.
func New(opts Options, logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Extractor{opts: opts.withDefaults(), logger: logger}
}

// Options returns the effective options.
func (e *Extractor) Options() Options {
	return e.opts
}

// Capture returns the lines of every itemized section. Marker lines are not
// included.
func (e *Extractor) Capture(lines []string) []string {
	var captured []string
	capturing := false
	for _, line := range lines {
		if strings.Contains(line, e.opts.StartMarker) {
			capturing = true
			continue
		}
		if !capturing {
			continue
		}
		if e.isEndMarker(line) {
			capturing = false
			continue
		}
		captured = append(captured, line)
	}
	return captured
}

func (e *Extractor) isEndMarker(line string) bool {
	for _, m := range e.opts.EndMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// Extract captures the itemized sections of lines and scans them into debit
// and credit candidates. An amount line that cannot be tied to a block fails
// the whole statement with a *parsererror.StructureError. No candidates is
// not an error.
func (e *Extractor) Extract(lines []string) (*Result, error) {
	captured := e.Capture(lines)
	e.logger.Debug("Captured itemized section",
		logging.F(logging.FieldCount, len(captured)))

	s := &scanner{layout: e.opts.Layout, lines: captured}
	res := &Result{}

	for i, line := range captured {
		if referencePattern.MatchString(line) {
			if err := s.openBlock(i); err != nil {
				return nil, err
			}
		}

		if !amountPattern.MatchString(line) {
			continue
		}

		credit := currencyutils.IsNegative(line)
		if !credit && e.opts.MaskMarker != "" && strings.Contains(line, e.opts.MaskMarker) {
			e.logger.Warn("Masked amount line ends the transaction list",
				logging.F(logging.FieldLineIndex, i),
				logging.F(logging.FieldLine, line))
			break
		}

		c, err := s.candidate(i)
		if err != nil {
			return nil, err
		}
		if credit {
			res.Credits = append(res.Credits, c)
		} else {
			res.Debits = append(res.Debits, c)
		}
	}

	e.logger.Debug("Extracted candidates",
		logging.F(logging.FieldDebits, len(res.Debits)),
		logging.F(logging.FieldCredits, len(res.Credits)))
	return res, nil
}

// block is the transaction block opened by the latest reference line.
type block struct {
	name string
	date string
}

// scanner is the per-statement state of the block scan.
type scanner struct {
	layout  Layout
	lines   []string
	current *block
}

func (s *scanner) openBlock(i int) error {
	name, err := s.at(i, s.layout.NameOffset, "name")
	if err != nil {
		return err
	}
	date, err := s.at(i, s.layout.DateOffset, "date")
	if err != nil {
		return err
	}
	s.current = &block{name: name, date: date}
	return nil
}

func (s *scanner) at(i, offset int, what string) (string, error) {
	j := i + offset
	if j < 0 || j >= len(s.lines) {
		return "", &parsererror.StructureError{
			LineIndex: i,
			Line:      s.lines[i],
			Reason:    fmt.Sprintf("%s line at offset %+d is outside the itemized section", what, offset),
		}
	}
	return s.lines[j], nil
}

func (s *scanner) candidate(i int) (models.Candidate, error) {
	line := s.lines[i]
	if s.current == nil {
		return models.Candidate{}, &parsererror.StructureError{
			LineIndex: i,
			Line:      line,
			Reason:    "amount line before any reference line",
		}
	}

	cents, err := currencyutils.ParseCents(line)
	if err != nil {
		return models.Candidate{}, &parsererror.ParseError{
			Parser: "extractor",
			Field:  "amount",
			Value:  line,
			Err:    err,
		}
	}

	return models.Candidate{Name: s.current.name, Cents: cents, Date: s.current.date}, nil
}
