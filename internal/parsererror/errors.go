// Package parsererror defines the typed errors returned while turning a
// statement document into categorized transactions.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrMalformedStatement is matched by every StructureError via errors.Is.
var ErrMalformedStatement = errors.New("malformed statement structure")

// ParseError represents a value that could not be parsed.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents an input rejected before processing started.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError represents a file that is not in the format a
// collaborator expects (e.g. not a PDF).
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// StructureError reports a statement whose line layout breaks the block
// assumptions of the extractor, e.g. an amount line seen before any
// reference line.
type StructureError struct {
	LineIndex int
	Line      string
	Reason    string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%v at captured line %d (%q): %s",
		ErrMalformedStatement, e.LineIndex, e.Line, e.Reason)
}

func (e *StructureError) Is(target error) bool {
	return target == ErrMalformedStatement
}

// DocumentError ties a failure to the statement document it came from.
type DocumentError struct {
	Document string
	Stage    string
	Err      error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("statement %s: %s: %v", e.Document, e.Stage, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
