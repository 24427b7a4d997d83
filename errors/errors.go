package errors

import (
	"fmt"
	"net/http"

	"github.com/kbukum/devportal/validation"
)

// AppError is the single error type on the devportal request/response path.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// StatusCode is the upstream HTTP status, 0 when no response was obtained.
	StatusCode int `json:"status,omitempty"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Report lists every validation failure (DECODE_FAILURE, INVALID_REQUEST).
	Report *validation.Report `json:"-"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	if e.Report.HasIssues() {
		msg += "\n" + e.Report.Error()
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithStatus records the upstream status and returns the receiver.
func (e *AppError) WithStatus(status int) *AppError {
	e.StatusCode = status
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Constructors ---

// TransportFailure creates an error for a call that produced no response.
func TransportFailure(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTransportFailure, Message: fmt.Sprintf("%s: no response from upstream", operation),
		Retryable: true, Cause: cause,
		Details: map[string]any{"operation": operation},
	}
}

// DecodeFailure creates an error for a response body that failed validation.
func DecodeFailure(status int, report *validation.Report) *AppError {
	e := &AppError{
		Code: ErrCodeDecodeFailure, Message: "response body does not match the expected schema",
		StatusCode: status, Report: report,
	}
	if report != nil {
		e.Cause = report.Cause
	}
	return e
}

// UnknownStatus creates an error for a status outside the operation's enumerated set.
func UnknownStatus(status int) *AppError {
	return &AppError{
		Code: ErrCodeUnknownStatus, Message: "Unknown status code response error",
		StatusCode: status,
		Details:    map[string]any{"status": status},
	}
}

// Unauthorized creates an error for a 401.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Credentials were rejected by the upstream service."
	}
	return &AppError{Code: ErrCodeUnauthorized, Message: reason, StatusCode: http.StatusUnauthorized}
}

// Forbidden creates an error for a 403.
func Forbidden(reason string) *AppError {
	if reason == "" {
		reason = "The upstream service refused the operation."
	}
	return &AppError{Code: ErrCodeForbidden, Message: reason, StatusCode: http.StatusForbidden}
}

// NotFound creates an error for a 404.
func NotFound(reason string) *AppError {
	if reason == "" {
		reason = "The requested resource was not found."
	}
	return &AppError{Code: ErrCodeNotFound, Message: reason, StatusCode: http.StatusNotFound}
}

// BadRequest creates an error for a 400.
func BadRequest(reason string) *AppError {
	if reason == "" {
		reason = "Invalid request"
	}
	return &AppError{Code: ErrCodeBadRequest, Message: reason, StatusCode: http.StatusBadRequest}
}

// Conflict creates an error for a 409.
func Conflict(reason string) *AppError {
	if reason == "" {
		reason = "The request conflicts with the current state of the resource."
	}
	return &AppError{Code: ErrCodeConflict, Message: reason, StatusCode: http.StatusConflict}
}

// Upstream creates an error for a server-side failure.
func Upstream(status int, reason string) *AppError {
	if reason == "" {
		reason = "The upstream service returned an error."
	}
	return &AppError{Code: ErrCodeUpstream, Message: reason, StatusCode: status, Retryable: true}
}

// InvalidRequest creates an error for a request that could not be built.
func InvalidRequest(reason string, report *validation.Report) *AppError {
	return &AppError{Code: ErrCodeInvalidRequest, Message: reason, Report: report}
}

// ForStatus builds the error matching a semantic status code. Statuses without
// a dedicated code become UNKNOWN_STATUS.
func ForStatus(status int, reason string) *AppError {
	switch {
	case status >= http.StatusInternalServerError:
		return Upstream(status, reason)
	case status == http.StatusUnauthorized:
		return Unauthorized(reason)
	case status == http.StatusForbidden:
		return Forbidden(reason)
	case status == http.StatusNotFound:
		return NotFound(reason)
	case status == http.StatusBadRequest:
		return BadRequest(reason)
	case status == http.StatusConflict:
		return Conflict(reason)
	default:
		return UnknownStatus(status)
	}
}
