// Package errors provides the unified application error type for authd.
// Every failure that reaches the wire is represented as an AppError carrying
// an error type, machine-readable code, and the HTTP status to respond with.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Type classifies the error for the response envelope.
	Type ErrorType `json:"type"`
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context, e.g. field-level validation errors.
	Details any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails sets the details payload and returns the receiver.
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// New creates a new AppError.
func New(errType ErrorType, code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Type:       errType,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Common Error Constructors ---

// Validation creates a new AppError for schema validation failures.
// The details payload carries the ordered field error list.
func Validation(details any) *AppError {
	return &AppError{
		Type: TypeValidation, Code: ErrCodeValidation,
		Message: "Validation failed", HTTPStatus: http.StatusBadRequest,
		Details: details,
	}
}

// UserExists creates a new AppError for a duplicate registration.
func UserExists() *AppError {
	return &AppError{
		Type: TypeClient, Code: ErrCodeUserExists,
		Message: "User already exists", HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidCredentials creates a new AppError for a failed login.
// Deliberately identical for unknown email and wrong password.
func InvalidCredentials() *AppError {
	return &AppError{
		Type: TypeClient, Code: ErrCodeInvalidCredentials,
		Message: "Invalid email or password", HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken creates a new AppError for a malformed or forged token.
func InvalidToken() *AppError {
	return &AppError{
		Type: TypeClient, Code: ErrCodeInvalidToken,
		Message: "Invalid authentication token", HTTPStatus: http.StatusUnauthorized,
	}
}

// TokenExpired creates a new AppError for a well-signed but expired token.
func TokenExpired() *AppError {
	return &AppError{
		Type: TypeClient, Code: ErrCodeTokenExpired,
		Message: "Authentication token has expired", HTTPStatus: http.StatusUnauthorized,
	}
}

// Unauthenticated creates a new AppError for a request without credentials.
func Unauthenticated() *AppError {
	return &AppError{
		Type: TypeClient, Code: ErrCodeUnauthenticated,
		Message: "Authentication required", HTTPStatus: http.StatusUnauthorized,
	}
}

// RouteNotFound creates a new AppError for an unmatched route.
func RouteNotFound() *AppError {
	return &AppError{
		Type: TypeClient, Code: ErrCodeRouteNotFound,
		Message: "Route not found", HTTPStatus: http.StatusNotFound,
	}
}

// RateLimited creates a new AppError for too many requests.
func RateLimited() *AppError {
	return &AppError{
		Type: TypeClient, Code: ErrCodeRateLimited,
		Message: "Too many requests, please try again later", HTTPStatus: http.StatusTooManyRequests,
	}
}

// UserCreationFailed creates a new AppError for a failed account insert.
func UserCreationFailed(cause error) *AppError {
	return &AppError{
		Type: TypeServer, Code: ErrCodeUserCreationFailed,
		Message: "User creation failed", HTTPStatus: http.StatusInternalServerError,
		Cause: cause,
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Type: TypeServer, Code: ErrCodeInternal,
		Message: "An unexpected error occurred", HTTPStatus: http.StatusInternalServerError,
		Cause: cause,
	}
}
