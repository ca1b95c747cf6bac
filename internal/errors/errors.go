// Package errors holds the error types shared by ingestion and the HTTP surface.
package errors

import (
	"fmt"
	"net/http"
)

// Code identifies a class of API failure in response bodies.
type Code string

const (
	CodeNotFound       Code = "NOT_FOUND"
	CodeInvalidID      Code = "INVALID_ID"
	CodeInvalidRequest Code = "INVALID_REQUEST"
	CodeInternal       Code = "INTERNAL_ERROR"
	CodeRateLimited    Code = "RATE_LIMITED"
	CodeUnavailable    Code = "UNAVAILABLE"
)

var statusByCode = map[Code]int{
	CodeNotFound:       http.StatusNotFound,
	CodeInvalidID:      http.StatusBadRequest,
	CodeInvalidRequest: http.StatusBadRequest,
	CodeInternal:       http.StatusInternalServerError,
	CodeRateLimited:    http.StatusTooManyRequests,
	CodeUnavailable:    http.StatusServiceUnavailable,
}

// Status is the HTTP status answered for c. Unknown codes map to 500.
func (c Code) Status() int {
	if status, ok := statusByCode[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// APIError is sent to clients as {"error": {"code": ..., "message": ...}}.
// The message is client-facing and never carries an underlying cause.
type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Status is the HTTP status the error is answered with.
func (e *APIError) Status() int {
	return e.Code.Status()
}

func apiErrorf(code Code, format string, args ...any) *APIError {
	return &APIError{Code: code, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrInternal    = apiErrorf(CodeInternal, "Internal server error")
	ErrRateLimited = apiErrorf(CodeRateLimited, "Rate limit exceeded")
	ErrUnavailable = apiErrorf(CodeUnavailable, "Card store unavailable")
)

// NotFound reports a missing resource, e.g. NotFound("Pokedex").
func NotFound(resource string) *APIError {
	return apiErrorf(CodeNotFound, "%s not found", resource)
}

// InvalidID reports a path parameter that is not a non-negative integer.
func InvalidID(param string) *APIError {
	return apiErrorf(CodeInvalidID, "Invalid %s: must be an integer", param)
}

// InvalidRequest reports a malformed query.
func InvalidRequest(format string, args ...any) *APIError {
	return apiErrorf(CodeInvalidRequest, format, args...)
}
