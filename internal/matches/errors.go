package matches

import (
	"errors"
	"fmt"
)

// ErrEmptyGroup is returned when Prepare is called without a cohort label.
var ErrEmptyGroup = errors.New("matches: group label must not be empty")

// DataFormatError reports a required field that is missing, unparseable, or non-numeric.
type DataFormatError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *DataFormatError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("data format: line %d column %q value %q: %v", e.Line, e.Column, e.Value, e.Err)
	case e.Column != "":
		return fmt.Sprintf("data format: column %q: %v", e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("data format: line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("data format: %v", e.Err)
	}
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}
