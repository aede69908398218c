package errors

import (
	"net/http"

	"agora/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches any BaseError carrying the same business code, so errors
// derived through WithDetails still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Session-related errors
	ErrNoAuthenticatedUser = NewBaseError(
		http.StatusUnauthorized,
		"NO_AUTHENTICATED_USER",
		"No user logged in",
		"",
	)

	ErrSessionExpired = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_EXPIRED",
		"Session has expired",
		"",
	)

	ErrReconcilerClosed = NewBaseError(
		http.StatusServiceUnavailable,
		"RECONCILER_CLOSED",
		"Session service is shutting down",
		"",
	)

	// Profile-related errors
	ErrProfileNotFound = NewBaseError(
		http.StatusNotFound,
		"PROFILE_NOT_FOUND",
		"Profile not found",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusConflict,
		"USERNAME_TAKEN",
		"Username is already taken",
		"",
	)

	// Identity-related errors
	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"User already registered",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid login credentials",
		"",
	)

	ErrPasswordMismatch = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_MISMATCH",
		"Passwords do not match",
		"",
	)

	ErrPasswordStrength = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"Password is too weak",
		"",
	)

	ErrPasswordForbiddenWords = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_FORBIDDEN_WORDS",
		"Password contains a forbidden word or pattern",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)

	ErrResetTokenInvalid = NewBaseError(
		http.StatusBadRequest,
		"RESET_TOKEN_INVALID",
		"Password reset link is invalid or has expired",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Invalid or expired refresh token",
		"",
	)

	// OAuth-related errors
	ErrOAuthProviderUnsupported = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_PROVIDER_UNSUPPORTED",
		"OAuth provider is not supported",
		"",
	)

	ErrOAuthStateInvalid = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_STATE_INVALID",
		"OAuth state is invalid or has expired",
		"",
	)

	ErrOAuthFailed = NewBaseError(
		http.StatusUnauthorized,
		"OAUTH_FAILED",
		"OAuth authentication failed",
		"",
	)

	ErrOAuthCodeInvalid = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_CODE_INVALID",
		"Invalid authorization code",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrTooManyRequests = NewBaseError(
		http.StatusTooManyRequests,
		"TOO_MANY_REQUESTS",
		"Too many requests, try again later",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// TransportError means a collaborator (profile store, identity provider,
// event bus) could not be reached. It is never retried automatically.
type TransportError struct {
	err     error
	details string
}

// NewTransportError creates a transport error wrapping the underlying failure.
func NewTransportError(err error, details string) AppError {
	return &TransportError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return errors.Wrap(e.err, "transport failure").Error()
}

// Unwrap returns the underlying failure.
func (e *TransportError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *TransportError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

// ErrorCode returns the business error code
func (e *TransportError) ErrorCode() string {
	return "TRANSPORT_FAILED"
}

// Message returns the user-friendly error message
func (e *TransportError) Message() string {
	return "Service temporarily unavailable, please retry"
}

// Details returns detailed error information
func (e *TransportError) Details() string {
	return e.details
}

// IsTransport reports whether err carries a TransportError.
func IsTransport(err error) bool {
	_, ok := errors.AsType[*TransportError](err)

	return ok
}

// ValidationFailed returns ErrValidationFailed carrying details for the caller.
func ValidationFailed(details string) *BaseError {
	return ErrValidationFailed.WithDetails(details)
}
