package errors

import (
	"encoding/json"
	stderrors "errors"
	"strings"
)

const problemTypeBase = "https://devportal.dev/problems/"

// ProblemJSON is an RFC 7807 problem document. Upstream services answer
// errors with this shape and the CLI renders failures with it.
type ProblemJSON struct {
	Type     string         `json:"type,omitempty"`
	Title    string         `json:"title,omitempty"`
	Status   int            `json:"status,omitempty"`
	Detail   string         `json:"detail,omitempty"`
	Instance string         `json:"instance,omitempty"`
	Code     ErrorCode      `json:"code,omitempty"`
	Issues   []string       `json:"issues,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// ToProblem converts an AppError to a problem document.
func (e *AppError) ToProblem() ProblemJSON {
	p := ProblemJSON{
		Type:    problemTypeBase + strings.ToLower(strings.ReplaceAll(string(e.Code), "_", "-")),
		Title:   e.Message,
		Status:  e.StatusCode,
		Code:    e.Code,
		Details: e.Details,
	}
	if e.Cause != nil {
		p.Detail = e.Cause.Error()
	}
	if e.Report.HasIssues() {
		for _, issue := range e.Report.Issues {
			p.Issues = append(p.Issues, issue.String())
		}
	}
	return p
}

// ParseProblem reads a problem document from an upstream error body. It
// reports false when the body is not a JSON object with a title or detail.
func ParseProblem(body []byte) (ProblemJSON, bool) {
	var p ProblemJSON
	if len(body) == 0 || json.Unmarshal(body, &p) != nil {
		return ProblemJSON{}, false
	}
	if p.Title == "" && p.Detail == "" {
		return ProblemJSON{}, false
	}
	return p, true
}

// WithProblem adds title and detail from an upstream problem document to
// the error details. The code and message are left unchanged.
func (e *AppError) WithProblem(body []byte) *AppError {
	p, ok := ParseProblem(body)
	if !ok {
		return e
	}
	if p.Title != "" {
		e.WithDetail("upstream_title", p.Title)
	}
	if p.Detail != "" {
		e.WithDetail("upstream_detail", p.Detail)
	}
	return e
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of err, or "" when err is not an AppError.
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

func hasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// IsTransportFailure reports whether err is a TRANSPORT_FAILURE.
func IsTransportFailure(err error) bool { return hasCode(err, ErrCodeTransportFailure) }

// IsDecodeFailure reports whether err is a DECODE_FAILURE.
func IsDecodeFailure(err error) bool { return hasCode(err, ErrCodeDecodeFailure) }

// IsUnknownStatus reports whether err is an UNKNOWN_STATUS.
func IsUnknownStatus(err error) bool { return hasCode(err, ErrCodeUnknownStatus) }

// IsUnauthorized reports whether err is an UNAUTHORIZED.
func IsUnauthorized(err error) bool { return hasCode(err, ErrCodeUnauthorized) }

// IsForbidden reports whether err is a FORBIDDEN.
func IsForbidden(err error) bool { return hasCode(err, ErrCodeForbidden) }

// IsNotFound reports whether err is a NOT_FOUND.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsBadRequest reports whether err is a BAD_REQUEST.
func IsBadRequest(err error) bool { return hasCode(err, ErrCodeBadRequest) }

// IsConflict reports whether err is a CONFLICT.
func IsConflict(err error) bool { return hasCode(err, ErrCodeConflict) }

// IsUpstream reports whether err is an UPSTREAM_ERROR.
func IsUpstream(err error) bool { return hasCode(err, ErrCodeUpstream) }

// IsInvalidRequest reports whether err is an INVALID_REQUEST.
func IsInvalidRequest(err error) bool { return hasCode(err, ErrCodeInvalidRequest) }

// IsRetryable reports whether err carries the retryable flag.
func IsRetryable(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Retryable
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }
