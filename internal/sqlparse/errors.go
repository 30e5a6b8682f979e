package sqlparse

import (
	"errors"
	"fmt"
)

// SyntaxError reports malformed input: an unexpected token, an unbalanced
// parenthesis, a dangling operator, or a clause the grammar does not allow.
// Offset is the byte position in the parsed text where the problem was
// detected. It is always non-negative.
type SyntaxError struct {
	Message string
	Offset  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Message)
}

// UnsupportedError reports a construct the grammar recognizes but
// deliberately does not implement, such as LIKE, IN, joins, or GROUP BY.
// Distinct from SyntaxError so callers can tell "you wrote invalid SQL"
// apart from "valid SQL we refuse to translate".
type UnsupportedError struct {
	Feature string
	Offset  int
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported feature at offset %d: %s", e.Offset, e.Feature)
}

func syntaxErrorf(offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Offset: offset}
}

func unsupported(offset int, feature string) *UnsupportedError {
	return &UnsupportedError{Feature: feature, Offset: offset}
}

// IsSyntaxError reports whether err is (or wraps) a SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// IsUnsupportedError reports whether err is (or wraps) an UnsupportedError.
func IsUnsupportedError(err error) bool {
	var ue *UnsupportedError
	return errors.As(err, &ue)
}

// ShiftOffset rebases the offset of a SyntaxError or UnsupportedError by
// delta. Used by callers that parse a clause extracted from a larger
// statement and want errors positioned in the original string. Other error
// types are returned unchanged.
func ShiftOffset(err error, delta int) error {
	var se *SyntaxError
	if errors.As(err, &se) {
		return &SyntaxError{Message: se.Message, Offset: se.Offset + delta}
	}
	var ue *UnsupportedError
	if errors.As(err, &ue) {
		return &UnsupportedError{Feature: ue.Feature, Offset: ue.Offset + delta}
	}
	return err
}
