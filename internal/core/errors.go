// internal/core/errors.go
package core

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Metrics Service errors
	ErrBackend  = &Error{Code: "BACKEND_ERROR", Message: "backend server error"}
	ErrEndpoint = &Error{Code: "ENDPOINT_ERROR", Message: "endpoint error"}
	ErrParse    = &Error{Code: "PARSE_ERROR", Message: "malformed response"}

	// Rendering errors
	ErrRender = &Error{Code: "RENDER_ERROR", Message: "rendering failed"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	ErrNotFound     = &Error{Code: "NOT_FOUND", Message: "not found"}
	ErrUnauthorized = &Error{Code: "UNAUTHORIZED", Message: "missing or invalid API key"}
	ErrReportFailed = &Error{Code: "REPORT_FAILED", Message: "report export failed"}
)

// StatusError describes a non-2xx response from a Metrics Service endpoint.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%d", e.StatusCode)
	}
	return fmt.Sprintf("%d - %s", e.StatusCode, body)
}

// NewBackendError reports a failed health check.
func NewBackendError(cause error) *Error {
	return WrapError(ErrBackend, cause)
}

// NewEndpointError reports a failed data endpoint, naming it in the message.
func NewEndpointError(endpoint string, cause error) *Error {
	return &Error{
		Code:    ErrEndpoint.Code,
		Message: endpoint + " endpoint error",
		Cause:   cause,
	}
}

// NewParseError reports a body that could not be decoded.
func NewParseError(endpoint string, cause error) *Error {
	return &Error{
		Code:    ErrParse.Code,
		Message: "malformed " + endpoint + " response",
		Cause:   cause,
	}
}

// NewRenderError reports a hydration failure.
func NewRenderError(cause error) *Error {
	return WrapError(ErrRender, cause)
}

// Describe returns the human-readable text of err without the code prefix.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var coreErr *Error
	if errors.As(err, &coreErr) {
		if coreErr.Cause != nil {
			return fmt.Sprintf("%s: %s", coreErr.Message, Describe(coreErr.Cause))
		}
		return coreErr.Message
	}
	return err.Error()
}

// StatusOf returns the status error carried by err, if any.
func StatusOf(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
