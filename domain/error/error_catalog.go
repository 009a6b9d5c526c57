package error

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode represents a unique error code
type ErrorCode string

// Error codes for different categories. The prefix selects the HTTP status.
const (
	// Authentication Errors (1xxx)
	ErrCodeInvalidCredentials ErrorCode = "AUTH_1001"
	ErrCodeUserNotFound       ErrorCode = "AUTH_1002"
	ErrCodeInvalidToken       ErrorCode = "AUTH_1003"
	ErrCodeTokenExpired       ErrorCode = "AUTH_1004"

	// Validation Errors (2xxx)
	ErrCodeInvalidEmail     ErrorCode = "VALID_2001"
	ErrCodeInvalidPassword  ErrorCode = "VALID_2002"
	ErrCodeInvalidRequest   ErrorCode = "VALID_2005"
	ErrCodeValidationFailed ErrorCode = "VALID_2006"

	// Rate Limiting Errors (3xxx)
	ErrCodeRateLimitExceeded ErrorCode = "RATE_3001"

	// Resource Errors (4xxx)
	ErrCodeResourceNotFound ErrorCode = "RES_4001"
	ErrCodeResourceConflict ErrorCode = "RES_4002"

	// Database Errors (5xxx)
	ErrCodeDatabaseError    ErrorCode = "DB_5001"
	ErrCodeAuditWriteFailed ErrorCode = "DB_5002"

	// Server Errors (6xxx)
	ErrCodeInternalServerError ErrorCode = "SERVER_6001"

	// Security Errors (7xxx)
	ErrCodeForbidden ErrorCode = "SEC_7001"
)

// AppError represents a structured application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string, details string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// Authentication errors
func ErrInvalidCredentials(details string) *AppError {
	return NewAppError(ErrCodeInvalidCredentials, "Invalid credentials.", details, nil)
}

func ErrUserNotFound(userID int64) *AppError {
	return NewAppError(ErrCodeUserNotFound, "User not found", fmt.Sprintf("User ID: %d", userID), nil)
}

func ErrInvalidToken(details string) *AppError {
	return NewAppError(ErrCodeInvalidToken, "Invalid token", details, nil)
}

// Validation errors
func ErrInvalidRequest(details string) *AppError {
	return NewAppError(ErrCodeInvalidRequest, "Invalid request", details, nil)
}

func ErrValidation(field, details string) *AppError {
	return NewAppError(ErrCodeValidationFailed, "The given data was invalid.", fmt.Sprintf("%s: %s", field, details), nil)
}

// Rate limiting errors
func ErrRateLimitExceeded(attempts int, window string) *AppError {
	return NewAppError(ErrCodeRateLimitExceeded, "Too many login attempts. Please try again later.", fmt.Sprintf("Attempts: %d, Window: %s", attempts, window), nil)
}

// Resource errors
func ErrNotFound(resource string, id int64) *AppError {
	return NewAppError(ErrCodeResourceNotFound, resource+" not found", fmt.Sprintf("ID: %d", id), nil)
}

func ErrConflict(resource, details string) *AppError {
	return NewAppError(ErrCodeResourceConflict, resource+" already exists", details, nil)
}

func ErrResourceInUse(resource, details string) *AppError {
	return NewAppError(ErrCodeResourceConflict, resource+" is still referenced", details, nil)
}

// Database errors
func ErrDatabaseError(operation string, cause error) *AppError {
	return NewAppError(ErrCodeDatabaseError, "Database operation failed", fmt.Sprintf("Operation: %s", operation), cause)
}

func ErrAuditWriteFailed(entityType string, cause error) *AppError {
	return NewAppError(ErrCodeAuditWriteFailed, "Audit log could not be recorded", fmt.Sprintf("Entity: %s", entityType), cause)
}

// Server errors
func ErrInternalServerError(details string, cause error) *AppError {
	return NewAppError(ErrCodeInternalServerError, "Internal server error", details, cause)
}

// Security errors
func ErrForbidden(details string) *AppError {
	return NewAppError(ErrCodeForbidden, "This action is unauthorized.", details, nil)
}

var statusByPrefix = map[string]int{
	"AUTH":   http.StatusUnauthorized,
	"VALID":  http.StatusUnprocessableEntity,
	"RATE":   http.StatusTooManyRequests,
	"DB":     http.StatusInternalServerError,
	"SERVER": http.StatusInternalServerError,
	"SEC":    http.StatusForbidden,
}

// GetHTTPStatusCode maps an error to the HTTP status code it should be reported with.
func GetHTTPStatusCode(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeResourceNotFound:
		return http.StatusNotFound
	case ErrCodeResourceConflict:
		return http.StatusConflict
	}
	prefix, _, _ := strings.Cut(string(appErr.Code), "_")
	if status, ok := statusByPrefix[prefix]; ok {
		return status
	}
	return http.StatusInternalServerError
}
