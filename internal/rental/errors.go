package rental

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord marks a row whose date or numeric fields cannot be trusted.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrDuplicateLabel is returned when a code mapping would merge two codes.
	ErrDuplicateLabel = errors.New("duplicate label in code mapping")
)

// MalformedError describes a single rejected input row.
type MalformedError struct {
	Line  int // 1-based line in the source, 0 when unknown
	Field string
	Value string
	Err   error
}

func (e *MalformedError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: field %s=%q: %v", e.Line, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("field %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}
