// Package statement runs one statement document through extraction,
// categorization and aggregation.
package statement

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/statement-budget/internal/categorizer"
	"fjacquet/statement-budget/internal/common"
	"fjacquet/statement-budget/internal/extractor"
	"fjacquet/statement-budget/internal/ledger"
	"fjacquet/statement-budget/internal/logging"
	"fjacquet/statement-budget/internal/models"
	"fjacquet/statement-budget/internal/parsererror"
	"fjacquet/statement-budget/internal/textextract"

	"github.com/google/uuid"
)

// Processing stages named in DocumentError.
const (
	StageValidate = "validate"
	StageText     = "extract text"
	StageScan     = "scan transactions"
	StageImport   = "import candidates"
)

// ExtCandidates marks a candidate CSV written by the extract command.
const ExtCandidates = ".csv"

// Result is the outcome of one statement run. Debits and Credits are
// separate ledgers; credits never reach debit totals.
type Result struct {
	RunID      string
	Document   string
	Year       int
	Candidates *extractor.Result
	Debits     *ledger.Ledger
	Credits    *ledger.Ledger
	Records    []models.TransactionRecord
}

// IsEmpty reports whether no transactions were found at all.
func (r *Result) IsEmpty() bool {
	return r.Debits.Count() == 0 && r.Credits.Count() == 0
}

// Processor runs statements end to end. Each call builds fresh ledgers, so
// a Processor may be used for several documents concurrently.
type Processor struct {
	text        textextract.Extractor
	extractor   *extractor.Extractor
	categorizer *categorizer.Categorizer
	logger      logging.Logger
	delimiter   rune
}

// NewProcessor wires a Processor from its collaborators.
func NewProcessor(text textextract.Extractor, ex *extractor.Extractor, cat *categorizer.Categorizer, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Processor{text: text, extractor: ex, categorizer: cat, logger: logger, delimiter: common.DefaultDelimiter}
}

// WithDelimiter sets the delimiter of candidate CSV input.
func (p *Processor) WithDelimiter(d rune) *Processor {
	if d != 0 {
		p.delimiter = d
	}
	return p
}

// Process extracts the lines of the document at path and processes them.
// A candidate CSV is categorized directly, skipping the scan. Every failure
// is a *parsererror.DocumentError naming path.
func (p *Processor) Process(ctx context.Context, path string, year int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, &parsererror.DocumentError{Document: path, Stage: StageValidate, Err: err}
	}
	if err := validateYear(path, year); err != nil {
		return nil, &parsererror.DocumentError{Document: path, Stage: StageValidate, Err: err}
	}

	if strings.EqualFold(filepath.Ext(path), ExtCandidates) {
		rows, err := common.ReadCSVFileWithHeaders[models.CandidateRow](path, p.delimiter, models.CandidateColumns...)
		if err != nil {
			return nil, &parsererror.DocumentError{Document: path, Stage: StageImport, Err: err}
		}
		cands, err := candidatesFromRows(rows)
		if err != nil {
			return nil, &parsererror.DocumentError{Document: path, Stage: StageImport, Err: err}
		}
		return p.ProcessCandidates(ctx, path, cands, year)
	}

	lines, err := p.text.ExtractLines(path)
	if err != nil {
		return nil, &parsererror.DocumentError{Document: path, Stage: StageText, Err: err}
	}
	return p.ProcessLines(ctx, path, lines, year)
}

// ProcessLines processes already extracted lines. document only labels
// logs and errors.
func (p *Processor) ProcessLines(ctx context.Context, document string, lines []string, year int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, &parsererror.DocumentError{Document: document, Stage: StageValidate, Err: err}
	}
	if err := validateYear(document, year); err != nil {
		return nil, &parsererror.DocumentError{Document: document, Stage: StageValidate, Err: err}
	}

	cands, err := p.extractor.Extract(lines)
	if err != nil {
		p.logger.WithError(err).Error("Statement scan failed",
			logging.F(logging.FieldDocument, document))
		return nil, &parsererror.DocumentError{Document: document, Stage: StageScan, Err: err}
	}
	if len(lines) > 0 && cands.Len() == 0 {
		p.logger.Debug("Scan found no candidates",
			logging.F(logging.FieldDocument, document),
			logging.F(logging.FieldCount, len(lines)))
	}
	return p.ProcessCandidates(ctx, document, cands, year)
}

// ProcessCandidates categorizes and aggregates extracted candidates into
// fresh ledgers.
func (p *Processor) ProcessCandidates(ctx context.Context, document string, cands *extractor.Result, year int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, &parsererror.DocumentError{Document: document, Stage: StageValidate, Err: err}
	}
	if err := validateYear(document, year); err != nil {
		return nil, &parsererror.DocumentError{Document: document, Stage: StageValidate, Err: err}
	}

	start := time.Now()
	runID := uuid.NewString()
	logger := p.logger.WithFields(
		logging.F(logging.FieldRunID, runID),
		logging.F(logging.FieldDocument, document),
		logging.F(logging.FieldYear, year))

	table := p.categorizer.Table()
	res := &Result{
		RunID:      runID,
		Document:   document,
		Year:       year,
		Candidates: cands,
		Debits:     ledger.New(table),
		Credits:    ledger.New(table),
		Records:    make([]models.TransactionRecord, 0, cands.Len()),
	}

	debits := p.categorizer.AssignAll(cands.Debits, year)
	credits := p.categorizer.AssignAll(cands.Credits, year)
	for i := range credits {
		credits[i].Direction = models.DirectionCredit
	}
	res.Debits.AddAll(debits)
	res.Credits.AddAll(credits)
	res.Records = append(append(res.Records, debits...), credits...)

	switch {
	case res.IsEmpty():
		logger.Warn("No transactions found; check statement markers")
	case res.Debits.IsZero():
		logger.Warn("Statement debits total zero",
			logging.F(logging.FieldCredits, len(credits)))
	}

	logger.Info("Statement processed",
		logging.F(logging.FieldDebits, len(cands.Debits)),
		logging.F(logging.FieldCredits, len(cands.Credits)),
		logging.F(logging.FieldCents, res.Debits.GrandTotal()),
		logging.F(logging.FieldDurationMS, time.Since(start).Milliseconds()))
	return res, nil
}

func validateYear(document string, year int) error {
	if year < 1000 || year > 9999 {
		return &parsererror.ValidationError{
			FilePath: document,
			Reason:   fmt.Sprintf("statement year %d is not a four-digit year", year),
		}
	}
	return nil
}

func candidatesFromRows(rows []models.CandidateRow) (*extractor.Result, error) {
	res := &extractor.Result{}
	for i, r := range rows {
		if strings.TrimSpace(r.Name) == "" {
			return nil, &parsererror.ParseError{
				Parser: "candidates",
				Field:  "name",
				Value:  r.Name,
				Err:    fmt.Errorf("row %d: merchant name is empty", i+1),
			}
		}
		switch r.Direction {
		case models.DirectionDebit, "":
			res.Debits = append(res.Debits, r.Candidate())
		case models.DirectionCredit:
			res.Credits = append(res.Credits, r.Candidate())
		default:
			return nil, &parsererror.ParseError{
				Parser: "candidates",
				Field:  "direction",
				Value:  string(r.Direction),
				Err:    fmt.Errorf("row %d: expected %q or %q", i+1, models.DirectionDebit, models.DirectionCredit),
			}
		}
	}
	return res, nil
}
