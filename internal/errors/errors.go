package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"

	// Storage errors
	ErrCodePersistence = "PERSISTENCE_FAILURE"

	// Service errors
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NotFoundf creates a not-found error with a formatted message.
func NotFoundf(format string, args ...interface{}) *APIError {
	return NewAPIError(ErrCodeNotFound, fmt.Sprintf(format, args...))
}

// AlreadyExistsf creates a uniqueness-violation error with a formatted message.
func AlreadyExistsf(format string, args ...interface{}) *APIError {
	return NewAPIError(ErrCodeAlreadyExists, fmt.Sprintf(format, args...))
}

// Validationf creates a validation error with a formatted message.
func Validationf(format string, args ...interface{}) *APIError {
	return NewAPIError(ErrCodeInvalidInput, fmt.Sprintf(format, args...))
}

// Persistencef creates a storage-anomaly error with a formatted message.
// It signals a backend condition (an insert or update that returned no row),
// not a business outcome, and is never retried.
func Persistencef(format string, args ...interface{}) *APIError {
	return NewAPIError(ErrCodePersistence, fmt.Sprintf(format, args...))
}

// Unauthorizedf creates an authentication error with a formatted message.
func Unauthorizedf(format string, args ...interface{}) *APIError {
	return NewAPIError(ErrCodeUnauthorized, fmt.Sprintf(format, args...))
}

// Forbiddenf creates an authorization error with a formatted message.
func Forbiddenf(format string, args ...interface{}) *APIError {
	return NewAPIError(ErrCodeForbidden, fmt.Sprintf(format, args...))
}

func is(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return is(err, ErrCodeNotFound) }

// IsAlreadyExists reports whether err is a uniqueness-violation error.
func IsAlreadyExists(err error) bool { return is(err, ErrCodeAlreadyExists) }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return is(err, ErrCodeInvalidInput) }

// IsPersistence reports whether err is a storage-anomaly error.
func IsPersistence(err error) bool { return is(err, ErrCodePersistence) }

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Respond translates a service error into an HTTP response: not-found maps
// to 404, already-exists and validation to 400, unauthorized to 401,
// forbidden to 403, everything else to 500.
func Respond(c *gin.Context, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		InternalError(c, "")
		return
	}

	switch apiErr.Code {
	case ErrCodeNotFound:
		RespondWithError(c, http.StatusNotFound, apiErr)
	case ErrCodeAlreadyExists, ErrCodeInvalidInput:
		RespondWithError(c, http.StatusBadRequest, apiErr)
	case ErrCodeUnauthorized, ErrCodeInvalidCredentials:
		RespondWithError(c, http.StatusUnauthorized, apiErr)
	case ErrCodeForbidden:
		RespondWithError(c, http.StatusForbidden, apiErr)
	default:
		RespondWithError(c, http.StatusInternalServerError, apiErr)
	}
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}
