// Package errors provides structured error types for permrank.
//
// Every ranking, unranking and counting function in the module reports misuse
// through an *Error carrying a machine-readable [Code]. This gives the CLI and
// the HTTP API one place to map failures to exit codes, status codes and
// user-facing messages.
//
// # Error Codes
//
//   - RANGE_VIOLATION: a rank outside [0, count) for the given (n, k, scheme)
//   - LENGTH_MISMATCH: buffer or slice lengths that disagree with n or k
//   - INVALID_*: malformed input (permutation, alphabet, scheme, config)
//   - OVERFLOW: a count or rank that does not fit the requested integer width
//   - NETWORK_ERROR, INTERNAL_ERROR: failures of the outer layers
//
// # Usage
//
//	err := errors.RangeViolation(rank, count)
//	if errors.Is(err, errors.ErrCodeRangeViolation) {
//	    // rank was too large
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "redis get %s", key)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Argument errors raised by the algorithm packages
	ErrCodeRangeViolation Code = "RANGE_VIOLATION"
	ErrCodeLengthMismatch Code = "LENGTH_MISMATCH"
	ErrCodeOverflow       Code = "OVERFLOW"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidAlphabet Code = "INVALID_ALPHABET"
	ErrCodeInvalidScheme   Code = "INVALID_SCHEME"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeTimeout  Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RangeViolation reports a rank that is not below count.
// The arguments are formatted with %v so both uint64 and *big.Int work.
func RangeViolation(rank, count any) *Error {
	return New(ErrCodeRangeViolation, "rank %v out of range [0, %v)", rank, count)
}

// LengthMismatch reports a slice whose length disagrees with what the
// operation expects.
func LengthMismatch(what string, got, want int) *Error {
	return New(ErrCodeLengthMismatch, "%s has length %d, want %d", what, got, want)
}

// Overflow reports a value that does not fit into 64 bits.
func Overflow(format string, args ...any) *Error {
	return New(ErrCodeOverflow, format+" overflows uint64", args...)
}
