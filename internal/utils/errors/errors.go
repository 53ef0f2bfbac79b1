// Package errors defines the AppError rendered by the HTTP layer as
// {"error": {"code", "message"}}.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error classes. Every AppError wraps exactly one, and the class fixes the status.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrConflict       = errors.New("resource conflict")
	ErrRateLimited    = errors.New("rate limited")
	ErrBadGateway     = errors.New("bad gateway")
	ErrServiceUnavail = errors.New("service unavailable")
	ErrInternal       = errors.New("internal error")
)

var classStatus = []struct {
	class  error
	status int
}{
	{ErrNotFound, http.StatusNotFound},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrForbidden, http.StatusForbidden},
	{ErrBadRequest, http.StatusBadRequest},
	{ErrConflict, http.StatusConflict},
	{ErrRateLimited, http.StatusTooManyRequests},
	{ErrBadGateway, http.StatusBadGateway},
	{ErrServiceUnavail, http.StatusServiceUnavailable},
}

// AppError is an error with a stable client-facing code.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	StatusCode int            `json:"-"`
	// Err is logged, never rendered.
	Err error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another AppError by code, anything else through the wrapped error.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Err, target)
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: e.Code, Message: e.Message, Details: e.Details}}
}

// StatusOf returns the HTTP status for err, 500 for anything unclassified.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	for _, cs := range classStatus {
		if errors.Is(err, cs.class) {
			return cs.status
		}
	}
	return http.StatusInternalServerError
}

func newError(code, message string, class error) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: StatusOf(class), Err: class}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// NotFound reports a missing resource, e.g. NotFound("payment").
func NotFound(resource string) *AppError {
	return newError("NOT_FOUND", resource+" not found", ErrNotFound)
}

func Unauthorized(message string) *AppError {
	return newError("UNAUTHORIZED", orDefault(message, "authentication required"), ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return newError("FORBIDDEN", orDefault(message, "access denied"), ErrForbidden)
}

func ValidationError(message string) *AppError {
	return newError("VALIDATION_ERROR", message, ErrBadRequest)
}

// Conflict carries a specific code such as ALREADY_PAID or INVALID_TRANSITION.
func Conflict(code, message string) *AppError {
	return newError(orDefault(code, "CONFLICT"), message, ErrConflict)
}

// BadGateway reports a request the payment gateway refused.
func BadGateway(code, message string) *AppError {
	return newError(orDefault(code, "BAD_GATEWAY"), message, ErrBadGateway)
}

// ServiceUnavailable reports a retryable upstream outage.
func ServiceUnavailable(code, message string) *AppError {
	return newError(orDefault(code, "SERVICE_UNAVAILABLE"), orDefault(message, "service temporarily unavailable"), ErrServiceUnavail)
}

func RateLimited(message string) *AppError {
	return newError("RATE_LIMITED", orDefault(message, "too many requests"), ErrRateLimited)
}

// Internal wraps err for the logs. The client only sees message.
func Internal(message string, err error) *AppError {
	appErr := newError("INTERNAL_ERROR", message, ErrInternal)
	if err != nil {
		appErr.Err = err
	}
	return appErr
}
