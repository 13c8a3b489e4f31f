package jsonnum

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedNumber reports a token that is not a valid number literal.
	ErrMalformedNumber = errors.New("malformed number")
	// ErrTypeMismatch reports a valid number outside the requested type's domain.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidJSON reports structural problems around a number: a missing
	// token, an unexpected character or trailing data.
	ErrInvalidJSON = errors.New("invalid JSON")
)

// NumberError describes a failed numeric read.
type NumberError struct {
	Op     string // requested type, e.g. "int32" or "decimal"
	Offset int    // absolute source offset of the token start
	Value  string // parsed value for type mismatches, raw token otherwise
	Err    error  // one of the sentinel errors
	Cause  error  // underlying strconv or apd error, if any
}

func (e *NumberError) Error() string {
	switch {
	case e.Err == ErrTypeMismatch:
		return fmt.Sprintf("jsonnum: %s at position %d: found value %s outside the requested type", e.Op, e.Offset, e.Value)
	case e.Cause != nil:
		return fmt.Sprintf("jsonnum: error parsing %s at position %d: %v", e.Op, e.Offset, e.Cause)
	default:
		return fmt.Sprintf("jsonnum: error parsing %s at position %d: %v", e.Op, e.Offset, e.Err)
	}
}

func (e *NumberError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func newNumberError(op string, offset int, value string, sentinel, cause error) *NumberError {
	return &NumberError{Op: op, Offset: offset, Value: value, Err: sentinel, Cause: cause}
}

// ErrorKind classifies err for metrics labels.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, ErrMalformedNumber):
		return "malformed"
	case errors.Is(err, ErrInvalidJSON):
		return "invalid_json"
	default:
		return "io"
	}
}
