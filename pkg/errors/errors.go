// Package errors provides structured error types for the apodwall application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the pipeline stages
//   - Machine-readable error codes for exit-code mapping and log filtering
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Each code names a failure stage of the run:
//   - CONFIG_ERROR: environment configuration invalid, reported before any network call
//   - AUTH_ERROR / NETWORK_ERROR / UPSTREAM_ERROR: fetch-stage failures
//   - UNSUPPORTED_MEDIA: not a failure, but the defined "nothing to do today" skip
//   - DECODE_ERROR / FONT_UNAVAILABLE: compose-stage failures
//   - PATH_TRANSLATION_ERROR / IO_ERROR / PERMISSION_ERROR: delivery failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfig, "APOD_API_KEY is not set")
//	if errors.Is(err, errors.ErrCodeConfig) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for each failure kind in the run taxonomy.
const (
	// Configuration errors (pre-network, fatal)
	ErrCodeConfig Code = "CONFIG_ERROR"

	// Fetch-stage errors
	ErrCodeAuth     Code = "AUTH_ERROR"
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeUpstream Code = "UPSTREAM_ERROR"

	// Skip outcome: today's entry is not a raster image
	ErrCodeUnsupportedMedia Code = "UNSUPPORTED_MEDIA"

	// Compose-stage errors
	ErrCodeDecode          Code = "DECODE_ERROR"
	ErrCodeFontUnavailable Code = "FONT_UNAVAILABLE"

	// Delivery errors
	ErrCodePathTranslation Code = "PATH_TRANSLATION_ERROR"
	ErrCodeIO              Code = "IO_ERROR"
	ErrCodePermission      Code = "PERMISSION_ERROR"

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
