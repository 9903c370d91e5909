package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoHeader is returned when the input holds no header line.
var ErrNoHeader = errors.New("input has no header row")

// ErrInvalidOptions is wrapped by Options.Validate failures.
var ErrInvalidOptions = errors.New("invalid ingest options")

// ParseError reports a selected field that is not a number. Ingestion
// aborts on the first one.
type ParseError struct {
	Line   int // 1-based line in the input, header included
	Column int // index into the raw record
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: column %d: could not parse %q as float: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FieldError reports a record too short for a referenced column.
type FieldError struct {
	Line   int
	Column int
	Width  int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("line %d: column %d out of range for record with %d fields", e.Line, e.Column, e.Width)
}
