package textextract

import (
	"fmt"
	"os"

	"fjacquet/statement-budget/internal/fileutils"
	"fjacquet/statement-budget/internal/parsererror"
)

// TextFileExtractor reads pre-extracted statement text, one line per line.
type TextFileExtractor struct{}

// NewTextFileExtractor creates a TextFileExtractor.
func NewTextFileExtractor() *TextFileExtractor {
	return &TextFileExtractor{}
}

// ExtractLines reads the file at path and splits it into lines.
func (e *TextFileExtractor) ExtractLines(path string) ([]string, error) {
	if !fileutils.FileExists(path) {
		return nil, &parsererror.ValidationError{FilePath: path, Reason: "file does not exist"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading statement text: %w", err)
	}
	return SplitLines(string(data)), nil
}
