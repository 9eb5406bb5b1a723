// Package textextract turns statement documents into the ordered text lines
// consumed by the extractor.
package textextract

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"fjacquet/statement-budget/internal/logging"
	"fjacquet/statement-budget/internal/parsererror"
)

// Extractor produces the lines of a document in top-to-bottom,
// page-concatenated reading order.
type Extractor interface {
	ExtractLines(path string) ([]string, error)
}

// Supported document extensions.
const (
	ExtPDF  = ".pdf"
	ExtText = ".txt"
)

// SupportedExtensions lists the extensions ForPath accepts.
var SupportedExtensions = []string{ExtPDF, ExtText}

// ForPath picks an extractor from the file extension.
func ForPath(path string, logger logging.Logger) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtPDF:
		return NewPDFExtractor(logger), nil
	case ExtText:
		return NewTextFileExtractor(), nil
	default:
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: strings.Join(SupportedExtensions, " or "),
			Msg:            "unsupported statement file extension",
		}
	}
}

// SplitLines splits extracted text into lines. Carriage returns and form
// feeds are dropped; trailing empty lines are removed.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\f", "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Dispatcher chooses an Extractor per file with ForPath.
type Dispatcher struct {
	logger logging.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(logger logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Dispatcher{logger: logger}
}

// ExtractLines extracts path with the extractor for its extension.
func (d *Dispatcher) ExtractLines(path string) ([]string, error) {
	ex, err := ForPath(path, d.logger)
	if err != nil {
		return nil, err
	}
	return ex.ExtractLines(path)
}

// MockExtractor returns canned lines per path, or Lines for any path not in
// ByPath. It is safe for concurrent use.
type MockExtractor struct {
	Lines  []string
	ByPath map[string][]string
	Err    error

	mu    sync.Mutex
	calls []string
}

// Calls returns the paths requested so far.
func (m *MockExtractor) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// ExtractLines returns the canned lines or error.
func (m *MockExtractor) ExtractLines(path string) ([]string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, path)
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if lines, ok := m.ByPath[path]; ok {
		return lines, nil
	}
	if m.Lines == nil && m.ByPath != nil {
		return nil, fmt.Errorf("no canned lines for %s", path)
	}
	return m.Lines, nil
}
