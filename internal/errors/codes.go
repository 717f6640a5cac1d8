package errors

// ErrorType classifies an error for the response envelope.
type ErrorType string

const (
	// TypeValidation covers field-level input failures. Always carries details.
	TypeValidation ErrorType = "validation_error"
	// TypeClient covers business-rule and authentication failures.
	TypeClient ErrorType = "client_error"
	// TypeServer covers unexpected internal failures.
	TypeServer ErrorType = "server_error"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Validation errors
const (
	// ErrCodeValidation indicates the request input failed schema validation.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
)

// Client errors
const (
	// ErrCodeUserExists indicates an account with the given email already exists.
	ErrCodeUserExists ErrorCode = "USER_EXISTS"
	// ErrCodeInvalidCredentials indicates the email/password pair did not match.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeInvalidToken indicates the authentication token is malformed or forged.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeTokenExpired indicates the authentication token has expired.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeUnauthenticated indicates no credentials were presented.
	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	// ErrCodeRouteNotFound indicates the requested route does not exist.
	ErrCodeRouteNotFound ErrorCode = "ROUTE_NOT_FOUND"
	// ErrCodeRateLimited indicates the client exceeded the request threshold.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Server errors
const (
	// ErrCodeUserCreationFailed indicates the account could not be persisted.
	ErrCodeUserCreationFailed ErrorCode = "USER_CREATION_FAILED"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
