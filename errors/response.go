package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON structure returned to clients. The error field
// is always a plain string; resetTime and remainingAttempts appear only on
// rate-limit blocks and failed logins respectively. Detail carries the
// underlying cause and is populated only in development mode.
type ErrorResponse struct {
	Error             string    `json:"error"`
	Code              ErrorCode `json:"code,omitempty"`
	ResetTime         int64     `json:"resetTime,omitempty"`
	RemainingAttempts *int      `json:"remainingAttempts,omitempty"`
	Detail            string    `json:"detail,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
// When includeDetail is true the underlying cause is echoed to the client;
// production deployments must pass false.
func (e *AppError) ToResponse(includeDetail bool) ErrorResponse {
	resp := ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
	if v, ok := e.Details["resetTime"].(int64); ok {
		resp.ResetTime = v
	}
	if v, ok := e.Details["remainingAttempts"].(int); ok {
		resp.RemainingAttempts = &v
	}
	if includeDetail && e.Cause != nil {
		resp.Detail = e.Cause.Error()
	}
	return resp
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
