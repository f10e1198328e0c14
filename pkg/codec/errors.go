package codec

import (
	"errors"
	"fmt"

	"github.com/cqusn/smartcar/pkg/model"
)

var (
	// ErrLengthMismatch is returned by Encode when cars and students differ in length
	ErrLengthMismatch = model.ErrLengthMismatch
	// ErrReservedCharacter marks a text value containing a separator (strict encode only)
	ErrReservedCharacter = errors.New("value contains a reserved separator")
	// ErrEmptyNumber marks an empty numeric segment (strict decode only)
	ErrEmptyNumber = errors.New("empty numeric field")
	// ErrTooFewFields marks a line that cannot hold every column
	ErrTooFewFields = errors.New("too few fields")
)

// FieldError reports a single field that could not be encoded or decoded.
// Line is 1-based and zero when the field did not come from a line.
type FieldError struct {
	Line  int    `json:"line,omitempty"`
	Field string `json:"field"`
	Value string `json:"value"`
	Err   error  `json:"-"`
}

func (e *FieldError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: field %s: %q: %v", e.Line, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("field %s: %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// LineError reports a line that could not be split into columns
type LineError struct {
	Line   int   `json:"line"`
	Fields int   `json:"fields"`
	Err    error `json:"-"`
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v (%d fields, need at least %d)", e.Line, e.Err, e.Fields, len(layout))
}

func (e *LineError) Unwrap() error {
	return e.Err
}
