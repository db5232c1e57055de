// Package errors provides custom error types for the assetdesk API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Employee errors.
var (
	ErrEmployeeNotFound  = &AppError{Code: "EMPLOYEE_NOT_FOUND", Message: "Employee not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmployee = &AppError{Code: "DUPLICATE_EMPLOYEE", Message: "An employee with this code or email already exists", StatusCode: http.StatusConflict}
)

// Asset errors.
var (
	ErrAssetNotFound     = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
	ErrDuplicateAsset    = &AppError{Code: "DUPLICATE_ASSET", Message: "An asset with this code or serial number already exists", StatusCode: http.StatusConflict}
	ErrAssetNotAvailable = &AppError{Code: "ASSET_NOT_AVAILABLE", Message: "Asset is not available for assignment", StatusCode: http.StatusConflict}
	ErrAssetRetired      = &AppError{Code: "ASSET_RETIRED", Message: "Asset is retired and cannot change status", StatusCode: http.StatusConflict}
)

// Assignment errors.
var (
	ErrAssignmentNotFound  = &AppError{Code: "ASSIGNMENT_NOT_FOUND", Message: "Assignment not found", StatusCode: http.StatusNotFound}
	ErrAssignmentNotActive = &AppError{Code: "ASSIGNMENT_NOT_ACTIVE", Message: "Assignment is no longer active", StatusCode: http.StatusConflict}
	ErrAssignmentActive    = &AppError{Code: "ASSIGNMENT_ACTIVE", Message: "Assignment is still active", StatusCode: http.StatusConflict}
)
