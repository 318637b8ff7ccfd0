// Package apperror provides structured error handling for the pipeline.
// All business errors must use AppError so callers can route failures to the
// error log without string matching.
package apperror

import (
	"errors"
	"fmt"
)

// Error codes following the pipeline's failure taxonomy
const (
	// Infrastructure errors
	CodeInternal = "INTERNAL_ERROR"
	CodeDatabase = "DATABASE_ERROR"

	// Validation errors (malformed records, reconciliation failures)
	CodeValidation    = "VALIDATION_ERROR"
	CodeTotalMismatch = "TOTAL_MISMATCH"

	// Store constraint violations
	CodeDuplicate      = "DUPLICATE_ENTRY"
	CodeForeignKey     = "FOREIGN_KEY_VIOLATION"
	CodeCheckViolation = "CHECK_VIOLATION"

	// Not found (erasure target lookup)
	CodeNotFound = "NOT_FOUND"
)

// AppError is the standard error type for the pipeline.
// It implements the error interface and carries structured details for the
// error log payloads.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field names, amounts, etc.)
	Details map[string]any `json:"details,omitempty"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error
func NewValidation(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewTotalMismatch creates a reconciliation error for a transaction whose
// order lines do not sum to its declared total.
func NewTotalMismatch(transactionID, lineSum, declaredTotal string) *AppError {
	return &AppError{
		Code: CodeTotalMismatch,
		Message: fmt.Sprintf("%s: sum of order lines %s is not equal to purchase cost total %s",
			transactionID, lineSum, declaredTotal),
		Details: map[string]any{
			"transaction_id": transactionID,
			"line_sum":       lineSum,
			"declared_total": declaredTotal,
		},
	}
}

// NewNotFound creates a not found error
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", entity),
		Details: map[string]any{"entity": entity, "id": id},
	}
}

// NewDuplicate creates a duplicate entry error
func NewDuplicate(entity string, id any) *AppError {
	return &AppError{
		Code:    CodeDuplicate,
		Message: fmt.Sprintf("%s with this key already exists", entity),
		Details: map[string]any{"entity": entity, "id": id},
	}
}

// NewForeignKey creates a referential integrity error
func NewForeignKey(entity string, id any) *AppError {
	return &AppError{
		Code:    CodeForeignKey,
		Message: fmt.Sprintf("%s references a missing row", entity),
		Details: map[string]any{"entity": entity, "id": id},
	}
}

// NewCheckViolation creates a check constraint error
func NewCheckViolation(entity string, id any) *AppError {
	return &AppError{
		Code:    CodeCheckViolation,
		Message: fmt.Sprintf("%s violates a check constraint", entity),
		Details: map[string]any{"entity": entity, "id": id},
	}
}

// NewDatabase creates a generic store error
func NewDatabase(err error) *AppError {
	return &AppError{
		Code:    CodeDatabase,
		Message: "store operation failed",
		Err:     err,
	}
}

// NewInternal creates an internal error
func NewInternal(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound
	}
	return false
}

// IsTotalMismatch checks if error is CodeTotalMismatch
func IsTotalMismatch(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeTotalMismatch
	}
	return false
}
