// Package apperror provides structured error handling for the data layer.
// All business errors must use AppError so callers can branch on Code.
package apperror

import (
	"errors"
	"fmt"
)

// Error codes
const (
	// Validation errors — input rejected before any mutation
	CodeValidation = "VALIDATION_ERROR"

	// Business rule violations
	CodeInsufficientStock = "INSUFFICIENT_STOCK"

	// Not found — referenced id does not exist in its collection
	CodeNotFound = "NOT_FOUND"

	// Storage errors — the persistence layer failed to durably write
	CodeStorage = "STORAGE_ERROR"

	// Concurrency — detected divergence between expected and persisted state
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"

	// Authorization errors (PIN gate)
	CodeUnauthorized = "UNAUTHORIZED"

	// Infrastructure errors
	CodeInternal = "INTERNAL_ERROR"
)

// AppError is the standard error type for the data layer.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, quantities, etc.)
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

// NewValidation creates a validation error.
func NewValidation(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewNotFound creates a not found error.
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", entity),
		Details: map[string]any{"entity": entity, "id": id},
	}
}

// NewInsufficientStock creates a stock shortage error.
func NewInsufficientStock(product, warehouse string, requested, available int) *AppError {
	return &AppError{
		Code:    CodeInsufficientStock,
		Message: fmt.Sprintf("insufficient stock for %q in warehouse %q", product, warehouse),
		Details: map[string]any{
			"product":   product,
			"warehouse": warehouse,
			"requested": requested,
			"available": available,
		},
	}
}

// NewStorage creates a storage failure error. Write failures must propagate,
// never be swallowed.
func NewStorage(op string, err error) *AppError {
	return &AppError{
		Code:    CodeStorage,
		Message: fmt.Sprintf("storage %s failed", op),
		Err:     err,
	}
}

// NewConcurrentModification creates an optimistic locking error.
func NewConcurrentModification(collection string) *AppError {
	return &AppError{
		Code:    CodeConcurrentModification,
		Message: "collection was modified by another writer",
		Details: map[string]any{"collection": collection},
	}
}

// NewUnauthorized creates an authorization error.
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewInternal creates an internal error.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

// --- Helper functions ---

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func is(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsValidation checks if error is CodeValidation or CodeInsufficientStock.
func IsValidation(err error) bool {
	return is(err, CodeValidation) || is(err, CodeInsufficientStock)
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return is(err, CodeNotFound)
}

// IsStorage checks if error is CodeStorage
func IsStorage(err error) bool {
	return is(err, CodeStorage)
}

// IsConcurrentModification checks if error is CodeConcurrentModification
func IsConcurrentModification(err error) bool {
	return is(err, CodeConcurrentModification)
}

// IsUnauthorized checks if error is CodeUnauthorized
func IsUnauthorized(err error) bool {
	return is(err, CodeUnauthorized)
}
