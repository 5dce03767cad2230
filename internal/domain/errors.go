package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// QuotaError indicates the caller has exhausted a plan entitlement.
// The reason is a user-facing message and is returned verbatim in the
// response body so the dashboard can display it without translation.
type QuotaError struct {
	Reason string
}

// Error implements the error interface
func (e *QuotaError) Error() string { return e.Reason }

// StatusCode implements the HTTPError interface
func (e *QuotaError) StatusCode() int { return http.StatusTooManyRequests }

// UpstreamError carries a failure from the generation backend. The message is
// the response body text when the backend supplied one, otherwise a generic
// "request failed: {status}" string; callers surface it verbatim.
type UpstreamError struct {
	Status  int
	Message string
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed: %d", e.Status)
}

// StatusCode implements the HTTPError interface. Upstream 4xx statuses pass
// through unchanged; everything else is reported as a bad gateway.
func (e *UpstreamError) StatusCode() int {
	if e.Status >= 400 && e.Status < 500 {
		return e.Status
	}
	return http.StatusBadGateway
}
