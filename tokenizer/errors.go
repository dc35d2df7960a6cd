package tokenizer

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSeparator is returned for a row with no ';' before its end.
	ErrMissingSeparator = errors.New("missing separator")
	// ErrMissingNewline is returned in strict mode for a last row that is not
	// newline terminated.
	ErrMissingNewline = errors.New("missing newline")
	// ErrRowTooLarge is returned for a row that does not fit in the stash after
	// the maximum number of page refills.
	ErrRowTooLarge = errors.New("row too large")
)

// ParseError is a malformed row. Err is one of the sentinels above or a
// decimal.NumError for a bad value.
type ParseError struct {
	Row int64
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
