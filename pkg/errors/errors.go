// Package errors provides structured error types for the FlowCanvas graph core.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The code set is closed: every fallible graph operation fails with exactly
// one of the codes below. All of them indicate either a caller logic bug or
// a genuine constraint violation that requires different input - none are
// transient, and none should be retried.
//
// # Usage
//
//	err := errors.New(errors.CodeNodeExists, "node %q already exists", id)
//	if errors.Is(err, errors.CodeNodeExists) {
//	    // Handle duplicate node
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.CodeInvalidState, origErr, "import state")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for graph constraint violations. Callers branch on these,
// never on message text.
const (
	// Entity existence errors
	CodeNodeExists         Code = "NODE_EXISTS"
	CodeNodeNotFound       Code = "NODE_NOT_FOUND"
	CodeConnectionExists   Code = "CONNECTION_EXISTS"
	CodeConnectionNotFound Code = "CONNECTION_NOT_FOUND"
	CodeGroupExists        Code = "GROUP_EXISTS"
	CodeGroupNotFound      Code = "GROUP_NOT_FOUND"
	CodeTemplateExists     Code = "TEMPLATE_EXISTS"
	CodeTemplateNotFound   Code = "TEMPLATE_NOT_FOUND"

	// Port resolution and compatibility errors
	CodePortNotFound          Code = "PORT_NOT_FOUND"
	CodePortDirectionMismatch Code = "PORT_DIRECTION_MISMATCH"
	CodePortConnectionLimit   Code = "PORT_CONNECTION_LIMIT"
	CodePortColorMismatch     Code = "PORT_COLOR_MISMATCH"

	// Structural validation failures not covered by a more specific code
	CodeInvalidState Code = "INVALID_STATE"
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
