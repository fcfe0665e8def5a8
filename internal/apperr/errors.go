package apperr

import (
	"errors"
	"fmt"
)

// Code classifies an application error for transport mapping.
type Code string

const (
	CodeInvalid      Code = "INVALID"
	CodeConflict     Code = "CONFLICT"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInternal     Code = "INTERNAL"
)

// Error is an application-level error with a semantic code and,
// for validation failures, per-field detail.
type Error struct {
	Code    Code
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a classification to an underlying error.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Validation builds an INVALID error carrying field-level reasons.
func Validation(fields map[string][]string) *Error {
	return &Error{Code: CodeInvalid, Message: "Invalid input", Fields: fields}
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var aErr *Error
	if errors.As(err, &aErr) {
		return aErr.Code == code
	}
	return false
}
