package services

import (
	"errors"
	"fmt"
	"net/http"
)

// ===============================
// ERROR TYPES
// ===============================

// ServiceError is the structured error returned by every service operation.
// The Type and StatusCode drive the uniform error envelope at the boundary.
type ServiceError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Cause      error  `json:"-"`
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// GetStatusCode returns the HTTP status code mapped to this error.
func (e *ServiceError) GetStatusCode() int {
	if e.StatusCode > 0 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// Error type identifiers.
const (
	TypeValidation   = "VALIDATION_ERROR"
	TypeNotFound     = "NOT_FOUND"
	TypeForbidden    = "FORBIDDEN"
	TypeUnauthorized = "UNAUTHORIZED"
	TypeConflict     = "CONFLICT"
	TypeInternal     = "INTERNAL_ERROR"
)

// ===============================
// ERROR CONSTRUCTORS
// ===============================

// NewValidationError creates an invalid-argument error.
func NewValidationError(message string, cause error) *ServiceError {
	return &ServiceError{
		Type:       TypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{
		Type:       TypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewForbiddenError creates a forbidden error.
func NewForbiddenError(message string) *ServiceError {
	return &ServiceError{
		Type:       TypeForbidden,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewUnauthorizedError creates an unauthorized error.
func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{
		Type:       TypeUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewConflictError creates a conflict error.
func NewConflictError(message string) *ServiceError {
	return &ServiceError{
		Type:       TypeConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewInternalError creates an internal error wrapping a store failure.
func NewInternalError(message string, cause error) *ServiceError {
	return &ServiceError{
		Type:       TypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ===============================
// ERROR INSPECTION
// ===============================

// AsServiceError extracts a *ServiceError from an error chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsNotFound reports whether err is a not-found service error.
func IsNotFound(err error) bool {
	se, ok := AsServiceError(err)
	return ok && se.Type == TypeNotFound
}

// IsForbidden reports whether err is a forbidden service error.
func IsForbidden(err error) bool {
	se, ok := AsServiceError(err)
	return ok && se.Type == TypeForbidden
}
