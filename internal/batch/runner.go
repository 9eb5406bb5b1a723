// Package batch processes a directory of statements, each in isolation, and
// combines their workbooks.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/statement-budget/internal/dateutils"
	"fjacquet/statement-budget/internal/fileutils"
	"fjacquet/statement-budget/internal/logging"
	"fjacquet/statement-budget/internal/parsererror"
	"fjacquet/statement-budget/internal/report"
	"fjacquet/statement-budget/internal/statement"
	"fjacquet/statement-budget/internal/textextract"

	"golang.org/x/sync/errgroup"
)

// DefaultCombinedFile is the name of the combined workbook.
const DefaultCombinedFile = "combinedBudget.xlsx"

// InputExtensions are the statement files Discover picks up.
var InputExtensions = []string{textextract.ExtPDF, textextract.ExtText, statement.ExtCandidates}

// Options controls a batch run.
type Options struct {
	// Year overrides the year taken from each file name when non-zero.
	Year      int
	OutputDir string
	Formats   []report.Format
	// CombinedFile is written into OutputDir when XLSX output is enabled.
	// Empty disables combining.
	CombinedFile string
	Workers      int
}

// Outcome is the result of one document.
type Outcome struct {
	Document string
	Year     int
	Result   *statement.Result
	Files    []string
	Err      error
}

// Summary collects the outcomes of a run, in input order.
type Summary struct {
	Outcomes     []Outcome
	CombinedFile string
}

// Failed returns the outcomes that ended in an error.
func (s *Summary) Failed() []Outcome {
	var out []Outcome
	for _, o := range s.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Succeeded returns the outcomes that produced reports.
func (s *Summary) Succeeded() []Outcome {
	var out []Outcome
	for _, o := range s.Outcomes {
		if o.Err == nil {
			out = append(out, o)
		}
	}
	return out
}

// Runner drives the statement processor and report generator over many
// documents.
type Runner struct {
	processor *statement.Processor
	generator *report.Generator
	logger    logging.Logger
}

// NewRunner creates a Runner.
func NewRunner(processor *statement.Processor, generator *report.Generator, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Runner{processor: processor, generator: generator, logger: logger}
}

// Discover lists the statement files directly inside dir.
func (r *Runner) Discover(dir string) ([]string, error) {
	files, err := fileutils.ListFilesWithExtensions(dir, InputExtensions...)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Discovered statements",
		logging.F(logging.FieldDirectory, dir),
		logging.F(logging.FieldCount, len(files)))
	return files, nil
}

// Run processes files with at most opts.Workers documents in flight. A
// failing document is recorded in its Outcome and does not stop the others.
// The returned error is reserved for cancellation and for failing to write
// the combined workbook.
func (r *Runner) Run(ctx context.Context, files []string, opts Options) (*Summary, error) {
	start := time.Now()
	formats := opts.Formats
	if len(formats) == 0 {
		formats = report.DefaultFormats
	}

	summary := &Summary{Outcomes: make([]Outcome, len(files))}

	// Reports are named after the file stem, so dec2024.pdf and dec2024.csv
	// would write the same files. The first document keeps the stem.
	owners := make(map[string]string, len(files))

	var g errgroup.Group
	g.SetLimit(workers(opts.Workers))
	for i, file := range files {
		stem := strings.ToLower(fileutils.Stem(file))
		if owner, taken := owners[stem]; taken {
			summary.Outcomes[i] = duplicateStem(file, owner, opts.Year)
			continue
		}
		owners[stem] = file

		g.Go(func() error {
			summary.Outcomes[i] = r.runOne(ctx, file, opts.Year, opts.OutputDir, formats)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	for _, o := range summary.Failed() {
		r.logger.WithError(o.Err).Error("Statement failed",
			logging.F(logging.FieldDocument, o.Document))
	}

	if opts.CombinedFile != "" && containsFormat(formats, report.FormatXLSX) {
		combined, err := r.combine(summary, opts)
		if err != nil {
			return summary, err
		}
		summary.CombinedFile = combined
	}

	r.logger.Info("Batch finished",
		logging.F(logging.FieldCount, len(files)),
		logging.F("failed", len(summary.Failed())),
		logging.F(logging.FieldDurationMS, time.Since(start).Milliseconds()))
	return summary, nil
}

func duplicateStem(file, owner string, year int) Outcome {
	return Outcome{
		Document: file,
		Year:     year,
		Err: &parsererror.DocumentError{
			Document: file,
			Stage:    statement.StageValidate,
			Err: &parsererror.ValidationError{
				FilePath: file,
				Reason:   fmt.Sprintf("reports would overwrite those of %s", owner),
			},
		},
	}
}

func (r *Runner) runOne(ctx context.Context, file string, year int, outDir string, formats []report.Format) Outcome {
	o := Outcome{Document: file, Year: year}
	if o.Year == 0 {
		y, err := dateutils.YearFromFilename(file)
		if err != nil {
			o.Err = &parsererror.DocumentError{
				Document: file,
				Stage:    statement.StageValidate,
				Err:      &parsererror.ValidationError{FilePath: file, Reason: err.Error()},
			}
			return o
		}
		o.Year = y
	}

	res, err := r.processor.Process(ctx, file, o.Year)
	if err != nil {
		o.Err = err
		return o
	}
	o.Result = res

	files, err := r.generator.Write(res, outDir, formats...)
	o.Files = files
	if err != nil {
		o.Err = &parsererror.DocumentError{Document: file, Stage: "write report", Err: err}
	}
	return o
}

func (r *Runner) combine(summary *Summary, opts Options) (string, error) {
	var workbooks []string
	for _, o := range summary.Succeeded() {
		for _, f := range o.Files {
			if filepath.Ext(f) == report.FormatXLSX.Extension() {
				workbooks = append(workbooks, f)
			}
		}
	}
	if len(workbooks) == 0 {
		r.logger.Warn("No workbooks to combine")
		return "", nil
	}

	out := opts.CombinedFile
	if !filepath.IsAbs(out) {
		out = filepath.Join(opts.OutputDir, out)
	}
	if err := r.generator.CombineWorkbooks(workbooks, out); err != nil {
		return "", fmt.Errorf("error combining workbooks: %w", err)
	}
	return out, nil
}

func workers(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func containsFormat(formats []report.Format, f report.Format) bool {
	for _, x := range formats {
		if x == f {
			return true
		}
	}
	return false
}
