package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Fern error code.
type ErrorCode string

const (
	ErrInvalidRequest     ErrorCode = "INVALID_REQUEST"     // 400
	ErrNotFound           ErrorCode = "NOT_FOUND"           // 404
	ErrConflict           ErrorCode = "CONFLICT"            // 409
	ErrServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE" // 502
	ErrInternal           ErrorCode = "INTERNAL"            // 500
)

// FernError represents a structured error with code, status, and details.
type FernError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *FernError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *FernError {
	return &FernError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing record.
func NewNotFound(identifier string) *FernError {
	return &FernError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewConflict creates a 409 error for general conflicts.
func NewConflict(msg string) *FernError {
	return &FernError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewServiceUnavailable creates a 502 error for a failed upstream call
// (AI summarization, network). These are non-fatal and retryable by the user.
func NewServiceUnavailable(service string, err error) *FernError {
	msg := fmt.Sprintf("%s is unreachable", service)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", service, err)
	}
	return &FernError{
		Code:    ErrServiceUnavailable,
		Status:  502,
		Message: msg,
		Details: map[string]any{"service": service},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message is generic; the original error is kept in Details for logging
// so internal details (paths, SQL) never leak to callers.
func NewInternal(err error) *FernError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &FernError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error is a FernError with the given code.
// Wrapped FernErrors are unwrapped.
func Is(err error, code ErrorCode) bool {
	var fErr *FernError
	if stderrors.As(err, &fErr) {
		return fErr.Code == code
	}
	return false
}
