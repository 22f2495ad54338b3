// Package errors provides structured error types for FRAME.
//
// Every validation failure in the geometry and netlist packages is reported
// as an [*Error] carrying a machine-readable [Code]. Construction is
// all-or-nothing: a constructor either returns a fully valid value or an
// error, never a partially built one.
//
// # Error Codes
//
// Codes are grouped by the kind of failure:
//   - Schema errors: UNKNOWN_ATTRIBUTE
//   - Type/range errors: INVALID_TYPE, INVALID_SHAPE, INVALID_REGION,
//     INVALID_WEIGHT, INVALID_EDGE, INVALID_MODULE
//   - Referential errors: UNKNOWN_MODULE, DUPLICATE_MODULE
//   - Outer layers: INVALID_INPUT, INVALID_FORMAT, NOT_FOUND, INTERNAL_ERROR
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownModule, "unknown module %q in edge", name)
//	if errors.Is(err, errors.ErrCodeUnknownModule) {
//	    // Handle referential error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, yamlErr, "decode netlist")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Schema errors
	ErrCodeUnknownAttribute Code = "UNKNOWN_ATTRIBUTE"

	// Type and range errors
	ErrCodeInvalidType   Code = "INVALID_TYPE"
	ErrCodeInvalidShape  Code = "INVALID_SHAPE"
	ErrCodeInvalidRegion Code = "INVALID_REGION"
	ErrCodeInvalidWeight Code = "INVALID_WEIGHT"
	ErrCodeInvalidEdge   Code = "INVALID_EDGE"
	ErrCodeInvalidModule Code = "INVALID_MODULE"

	// Referential errors
	ErrCodeUnknownModule   Code = "UNKNOWN_MODULE"
	ErrCodeDuplicateModule Code = "DUPLICATE_MODULE"

	// Input and resource errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeNotFound      Code = "NOT_FOUND"

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
// Returns empty string if the chain holds no *Error.
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

// IsValidation reports whether err carries one of the construction-time
// validation codes (schema, type/range or referential).
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnknownAttribute, ErrCodeInvalidType, ErrCodeInvalidShape,
		ErrCodeInvalidRegion, ErrCodeInvalidWeight, ErrCodeInvalidEdge,
		ErrCodeInvalidModule, ErrCodeUnknownModule, ErrCodeDuplicateModule:
		return true
	}
	return false
}
