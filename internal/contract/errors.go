package contract

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is returned when a view has no rows to render.
var ErrEmptyResult = errors.New("no records in the requested window")

// ParseError describes a log row that could not be turned into a record.
type ParseError struct {
	Line   int    // 1-based line number in the source
	Row    string // Raw row text
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
