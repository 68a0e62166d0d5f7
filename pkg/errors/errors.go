// Package errors provides structured error types for ssnmovie.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the review server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Input problems are split into two fatal families that abort a run before
// any image is written:
//   - INPUT_FORMAT: a network or annotation file cannot be parsed
//   - SCHEMA: an annotation table lacks the Hit_Id or Gene column
//
// Rendering failures carry RENDER and are usually wrapped in a
// [ThresholdError] naming the threshold that failed.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSchema, "missing column %q", "Gene")
//	if errors.Is(err, errors.ErrCodeSchema) {
//	    // Handle schema error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInputFormat, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Fatal input errors
	ErrCodeInputFormat Code = "INPUT_FORMAT"
	ErrCodeSchema      Code = "SCHEMA"

	// Option validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidScheme Code = "INVALID_SCHEME"
	ErrCodeInvalidLayout Code = "INVALID_LAYOUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Rendering errors
	ErrCodeRender Code = "RENDER"

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
// It unwraps the error chain and stops at the first coded error, which is
// either an *Error or a typed error with a Code method such as
// [ThresholdError].
func Is(err error, code Code) bool {
	return code != "" && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the chain holds no coded error.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case interface{ Code() Code }:
			return e.Code()
		}
		err = errors.Unwrap(err)
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

// ThresholdError reports which threshold of which annotation source failed
// to render. Downstream comparisons assume a complete set of frames, so a
// sweep never skips a failed threshold silently.
type ThresholdError struct {
	Source    string  // Annotation source directory name (e.g. "KOFAM")
	Threshold float64 // Alignment score cutoff of the failed frame
	Err       error
}

// Error implements the error interface.
func (e *ThresholdError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("threshold %g: %v", e.Threshold, e.Err)
	}
	return fmt.Sprintf("%s threshold %g: %v", e.Source, e.Threshold, e.Err)
}

// Unwrap returns the underlying render error.
func (e *ThresholdError) Unwrap() error { return e.Err }

// Code returns the error code for this error type.
func (e *ThresholdError) Code() Code {
	return ErrCodeRender
}

// FailedThreshold extracts the failing threshold from err, if any.
func FailedThreshold(err error) (float64, bool) {
	var te *ThresholdError
	if errors.As(err, &te) {
		return te.Threshold, true
	}
	return 0, false
}
