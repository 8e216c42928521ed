package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeDuplicate  ErrorType = "duplicate"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypeDatabase   ErrorType = "database"
)

// FieldViolation names a single constraint violation on one field,
// with a locale-resolved message.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError represents a structured API error
type APIError struct {
	Type        ErrorType        `json:"type"`
	Code        string           `json:"code"`
	Message     string           `json:"message"`
	Violations  []FieldViolation `json:"violations,omitempty"`
	HTTPStatus  int              `json:"-"`
	InternalErr error            `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if len(e.Violations) > 0 {
		return fmt.Sprintf("%s (%s): %d violation(s)", e.Message, e.Code, len(e.Violations))
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.InternalErr
}

// NewAPIError creates a new API error
func NewAPIError(errorType ErrorType, code, message string, httpStatus int) *APIError {
	return &APIError{
		Type:       errorType,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// ValidationError creates a validation error carrying the full violation set
func ValidationError(message string, violations []FieldViolation) *APIError {
	err := NewAPIError(ErrorTypeValidation, "CONSTRAINT_VIOLATION", message, http.StatusBadRequest)
	err.Violations = violations
	return err
}

// InvalidIDError creates a validation error for an identifier that fails
// the minimum-id constraint
func InvalidIDError(resource string, id uint64, violations []FieldViolation) *APIError {
	err := NewAPIError(ErrorTypeValidation, "INVALID_ID",
		fmt.Sprintf("invalid %s id %d", resource, id), http.StatusBadRequest)
	err.Violations = violations
	return err
}

// NotFoundError creates a not found error
func NotFoundError(resource string) *APIError {
	return NewAPIError(ErrorTypeNotFound, "RESOURCE_NOT_FOUND",
		fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// NotFoundByIDError creates a not found error for a numeric id lookup
func NotFoundByIDError(resource string, id uint64) *APIError {
	return NewAPIError(ErrorTypeNotFound, "RESOURCE_NOT_FOUND",
		fmt.Sprintf("%s with id %d not found", resource, id), http.StatusNotFound)
}

// DuplicateError signals a uniqueness invariant violated on a field
func DuplicateError(field, value string) *APIError {
	return NewAPIError(ErrorTypeDuplicate, "DUPLICATE_VALUE",
		fmt.Sprintf("%s %q already exists", field, value), http.StatusConflict)
}

// ConflictError creates a business-rule conflict error
func ConflictError(message string) *APIError {
	return NewAPIError(ErrorTypeConflict, "RESOURCE_CONFLICT", message, http.StatusConflict)
}

// InternalError creates an internal server error
func InternalError(message string) *APIError {
	return NewAPIError(ErrorTypeInternal, "INTERNAL_ERROR", message, http.StatusInternalServerError)
}

// DatabaseError creates a database error with the failed operation attached
func DatabaseError(operation string, cause error) *APIError {
	return &APIError{
		Type:        ErrorTypeDatabase,
		Code:        "DATABASE_ERROR",
		Message:     fmt.Sprintf("database operation failed: %s", operation),
		HTTPStatus:  http.StatusInternalServerError,
		InternalErr: cause,
	}
}

// IsAPIError checks if an error is an APIError
func IsAPIError(err error) bool {
	_, ok := err.(*APIError)
	return ok
}

// GetAPIError extracts APIError from an error
func GetAPIError(err error) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return nil
}
