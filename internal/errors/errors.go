// Package errors provides centralized error definitions and error handling
// utilities for keydesk. It defines domain-specific errors for the API
// boundary, error constructors with context wrapping, and classification
// helpers that map errors to the transient notification text shown to the
// user.
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors
var (
	// ErrUnauthorized indicates the server rejected the request credential.
	ErrUnauthorized = New("unauthorized")
	// ErrNotFound indicates the requested assignment does not exist.
	ErrNotFound = New("assignment not found")
	// ErrEmptyField indicates a required form field was empty.
	ErrEmptyField = New("required field is empty")
)

// API operation names used in APIError.Op.
const (
	OpList   = "list"
	OpIssue  = "issue"
	OpReturn = "return"
	OpLogin  = "login"
)

// APIError represents a failed call to the key assignment service.
// StatusCode is zero when the request never produced a response
// (network error, timeout).
type APIError struct {
	Op         string // operation: "list", "issue", "return", "login"
	StatusCode int    // HTTP status code, 0 for transport failures
	Err        error  // underlying cause
}

// Error implements the error interface for APIError
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("api %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches the given sentinel.
// Authentication failures match ErrUnauthorized; 404 responses match
// ErrNotFound.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == 401 || e.StatusCode == 403
	case ErrNotFound:
		return e.StatusCode == 404
	}
	return false
}

// NewAPIError creates an APIError for the given operation.
func NewAPIError(op string, statusCode int, err error) *APIError {
	return &APIError{Op: op, StatusCode: statusCode, Err: err}
}

// ValidationError indicates invalid user input caught before a request is
// sent.
type ValidationError struct {
	Field string // form field name
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Unwrap returns ErrEmptyField so callers can match with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrEmptyField
}

// NewValidationError creates a ValidationError for an empty form field.
func NewValidationError(field string) *ValidationError {
	return &ValidationError{Field: field}
}

// IsUserFacing reports whether the error is safe to surface to the user as
// a notification. API and validation errors are user-facing; anything else
// is an internal error and gets a generic message.
func IsUserFacing(err error) bool {
	var apiErr *APIError
	var valErr *ValidationError
	return As(err, &apiErr) || As(err, &valErr)
}

// UserMessage returns the transient notification text for an error.
// The client does not distinguish auth failures from other failures; every
// failed operation maps to a single generic message per operation.
func UserMessage(err error) string {
	var valErr *ValidationError
	if As(err, &valErr) {
		return fmt.Sprintf("%s is required.", valErr.Field)
	}

	var apiErr *APIError
	if As(err, &apiErr) {
		switch apiErr.Op {
		case OpList:
			return "Failed to fetch issued keys."
		case OpIssue:
			return "Error issuing key."
		case OpReturn:
			return "Error returning key."
		case OpLogin:
			return "Login failed. Check your credentials."
		}
	}

	return "Something went wrong. Please try again."
}
