// Package errors provides structured error types for the awis client.
//
// This package defines error codes and types that enable:
//   - Callers to branch on the cause of a failed fetch
//   - Machine-readable error codes for the CLI and HTTP front end
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Whole-call failures carry one of:
//   - TRANSPORT_FAILURE: network errors, timeouts, non-success HTTP status
//   - SERVICE_FAULT: the service answered with a fault document
//   - MALFORMED_RESPONSE: the body is not XML or holds no usable data
//   - INVALID_*: input rejected before any request was sent
//
// FIELD_PARSE marks a single field that could not be converted; it is
// reported next to the result and never aborts a call.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidHost, "host cannot be empty")
//	if errors.Is(err, errors.ErrCodeInvalidHost) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTransport, origErr, "GET %s", host)
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
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidHost          Code = "INVALID_HOST"
	ErrCodeInvalidResponseGroup Code = "INVALID_RESPONSE_GROUP"
	ErrCodeMissingCredentials   Code = "MISSING_CREDENTIALS"

	// Fetch failures
	ErrCodeTransport         Code = "TRANSPORT_FAILURE"
	ErrCodeServiceFault      Code = "SERVICE_FAULT"
	ErrCodeMalformedResponse Code = "MALFORMED_RESPONSE"

	// Field-local failures
	ErrCodeFieldParse Code = "FIELD_PARSE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// IsFetchFailure reports whether err aborted a fetch: a transport failure,
// a service fault or a malformed response.
func IsFetchFailure(err error) bool {
	switch GetCode(err) {
	case ErrCodeTransport, ErrCodeServiceFault, ErrCodeMalformedResponse:
		return true
	}
	return false
}
