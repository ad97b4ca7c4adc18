// Package errors provides unified error handling for the authentication
// subsystem. It implements structured error types with machine-readable
// codes, HTTP status mapping, and retryable detection. Every layer
// translates the failures it understands into an *AppError and passes
// anything else upward untouched.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error. It is never
	// serialized to clients outside development mode.
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

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Validation (400) ---

// Validation creates a new AppError for invalid request input.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// WeakPassword creates a new AppError naming the specific strength rule
// the password failed.
func WeakPassword(reason string) *AppError {
	return &AppError{
		Code: ErrCodeWeakPassword, Message: reason,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// --- Authentication (401) ---

// Unauthorized creates a new AppError for a request without a usable credential.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// InvalidCredentials creates the single generic 401 for a failed login.
// Unknown email and wrong password deliberately produce the same message.
func InvalidCredentials() *AppError {
	return &AppError{
		Code: ErrCodeUnauthorized, Message: "Invalid email or password.",
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// TokenExpired creates a new AppError for an expired token.
func TokenExpired() *AppError {
	return &AppError{
		Code: ErrCodeTokenExpired, Message: "Token has expired.",
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// InvalidToken creates a new AppError for a token with an invalid signature.
func InvalidToken() *AppError {
	return &AppError{
		Code: ErrCodeInvalidToken, Message: "Invalid authentication token.",
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// TokenMalformed creates a new AppError for a structurally invalid token.
func TokenMalformed() *AppError {
	return &AppError{
		Code: ErrCodeTokenMalformed, Message: "Malformed authentication token.",
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// WrongTokenType creates a new AppError for a valid token of the wrong class.
func WrongTokenType(expected string) *AppError {
	return &AppError{
		Code: ErrCodeWrongTokenType, Message: "Invalid token type.",
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
		Details: map[string]any{"expected": expected},
	}
}

// --- Authorization (403) ---

// Forbidden creates a new AppError for insufficient role.
func Forbidden(reason string) *AppError {
	if reason == "" {
		reason = "You don't have permission to perform this action."
	}
	return &AppError{
		Code: ErrCodeForbidden, Message: reason,
		HTTPStatus: http.StatusForbidden, Retryable: false,
	}
}

// --- Conflict (409) ---

// AlreadyExists creates a new AppError for a claimed unique field.
func AlreadyExists(resource string) *AppError {
	return &AppError{
		Code: ErrCodeAlreadyExists, Message: fmt.Sprintf("A %s with these details already exists.", resource),
		HTTPStatus: http.StatusConflict, Retryable: false,
		Details: map[string]any{"resource": resource},
	}
}

// --- Throttling (429) ---

// RateLimited creates a new AppError for an exhausted attempt budget.
// The reset time is carried as unix milliseconds so clients can schedule
// a retry.
func RateLimited(resetAt time.Time) *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: "Too many attempts. Please try again later.",
		HTTPStatus: http.StatusTooManyRequests, Retryable: true,
		Details: map[string]any{"resetTime": resetAt.UnixMilli()},
	}
}

// --- Internal (500) ---

// Internal creates a new AppError for an unexpected failure. The cause is
// kept for logging but never shown to clients outside development mode.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
