package domain

import (
	"errors"
	"fmt"
)

// ErrParse is matched (errors.Is) by every *ParseError.
var ErrParse = errors.New("parse error")

// ErrInvalidBounds is returned when a configured grid has Min greater than Max.
var ErrInvalidBounds = errors.New("invalid bounds")

// ErrEmptyInput is returned by input sources for lines that carry nothing after sanitizing.
var ErrEmptyInput = errors.New("empty input")

// ParseError describes a command line that could not be turned into a Command.
// It is the only condition the command language reports as a failure; every
// other malformed input degrades to a no-op.
type ParseError struct {
	// Source names the batch file the line came from. Empty for inline input.
	Source string
	// Line is 1-based within Source, 0 for inline input.
	Line  int
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Source != "" && e.Input == "":
		return fmt.Sprintf("%s:%d: cannot parse: %v", e.Source, e.Line, e.Err)
	case e.Source != "":
		return fmt.Sprintf("%s:%d: cannot parse %q: %v", e.Source, e.Line, e.Input, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: cannot parse %q: %v", e.Line, e.Input, e.Err)
	default:
		return fmt.Sprintf("cannot parse %q: %v", e.Input, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) true for any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
