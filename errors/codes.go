package errors

// ErrorCode is a machine-readable error code surfaced to clients.
type ErrorCode string

// Validation errors (400)
const (
	// ErrCodeInvalidInput indicates malformed or missing request input.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeWeakPassword indicates the password fails the strength policy.
	ErrCodeWeakPassword ErrorCode = "WEAK_PASSWORD"
)

// Authentication errors (401)
const (
	// ErrCodeUnauthorized indicates the request carries no usable credential.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeTokenExpired indicates the presented token has expired.
	// Callers distinguish this from other token failures to decide whether
	// a refresh attempt makes sense.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeInvalidToken indicates a token whose signature does not verify.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeTokenMalformed indicates a token that is not structurally a JWT.
	ErrCodeTokenMalformed ErrorCode = "TOKEN_MALFORMED"
	// ErrCodeWrongTokenType indicates a cryptographically valid token of the
	// wrong class (e.g. a refresh token where an access token is required).
	ErrCodeWrongTokenType ErrorCode = "WRONG_TOKEN_TYPE"
)

// Authorization errors (403)
const (
	// ErrCodeForbidden indicates the authenticated user lacks the required role.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
)

// Conflict errors (409)
const (
	// ErrCodeAlreadyExists indicates a unique field is already claimed.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Throttling errors (429)
const (
	// ErrCodeRateLimited indicates the client exceeded its attempt budget.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Internal errors (500)
const (
	// ErrCodeInternal indicates an unexpected server-side failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeRateLimited: true,
	ErrCodeInternal:    false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
