// Package errors provides structured error types for offwiki.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the TUI, CLI commands and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages rendered inline in the reader
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes mirror the reader's failure taxonomy:
//   - PARSE_ERROR: no content container could be located in an article
//   - FETCH_ERROR: an article could not be retrieved from the archive
//   - NOT_FOUND / DECODE_ERROR: archive-level lookup and decode failures
//   - ARCHIVE_OPEN: the archive could not be opened (the only fatal error)
//   - INVALID_*: input validation failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotFound, "article not found: %s", path)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // Handle missing article
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFetch, origErr, "fetch %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidPath  Code = "INVALID_PATH"
	ErrCodeInvalidQuery Code = "INVALID_QUERY"

	// Document errors
	ErrCodeParse Code = "PARSE_ERROR"

	// Archive errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeDecode      Code = "DECODE_ERROR"
	ErrCodeFetch       Code = "FETCH_ERROR"
	ErrCodeArchiveOpen Code = "ARCHIVE_OPEN"

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
// It unwraps the error chain looking for an *Error with a matching code,
// so a FETCH_ERROR wrapping a NOT_FOUND matches both codes.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, followed by
// the user message of the cause when there is one.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
