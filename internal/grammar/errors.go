package grammar

import (
	"errors"
	"fmt"
)

// Syntax error codes.
const (
	CodeDanglingSeparator = "dangling_separator"
	CodeTooLong           = "too_long"
)

// SyntaxError reports query text that cannot be decomposed into clauses.
type SyntaxError struct {
	Code    string
	Pos     int // byte offset into the query text
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("query syntax error at offset %d: %s", e.Pos, e.Message)
}

// IsSyntaxError reports whether err is or wraps a *SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// AsSyntaxError extracts a *SyntaxError from err.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	ok := errors.As(err, &se)
	return se, ok
}
