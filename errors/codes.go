package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Transport errors (no response obtained)
const (
	// ErrCodeTransportFailure indicates the request never produced a response
	// (connection refused or reset, DNS, timeout, malformed response line).
	ErrCodeTransportFailure ErrorCode = "TRANSPORT_FAILURE"
)

// Response shape errors
const (
	// ErrCodeDecodeFailure indicates the body is not JSON or does not match
	// the schema expected for its status.
	ErrCodeDecodeFailure ErrorCode = "DECODE_FAILURE"
	// ErrCodeUnknownStatus indicates a status outside the operation's set.
	ErrCodeUnknownStatus ErrorCode = "UNKNOWN_STATUS"
)

// Semantic API errors
const (
	// ErrCodeUnauthorized indicates a 401, usually misconfigured credentials.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden indicates a 403.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	// ErrCodeNotFound indicates a 404.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeBadRequest indicates the server rejected the request as malformed (400).
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	// ErrCodeConflict indicates a 409.
	ErrCodeConflict ErrorCode = "CONFLICT"
	// ErrCodeUpstream indicates a server-side failure (status >= 500).
	ErrCodeUpstream ErrorCode = "UPSTREAM_ERROR"
)

// Local errors (no transport call made)
const (
	// ErrCodeInvalidRequest indicates the request could not be built from
	// its parameters.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTransportFailure: true,
	ErrCodeUpstream:         true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// Nothing in devportal retries; the flag is advice for callers.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

// Codes returns every known error code in a stable order.
func Codes() []ErrorCode {
	return []ErrorCode{
		ErrCodeTransportFailure,
		ErrCodeDecodeFailure,
		ErrCodeUnknownStatus,
		ErrCodeUnauthorized,
		ErrCodeForbidden,
		ErrCodeNotFound,
		ErrCodeBadRequest,
		ErrCodeConflict,
		ErrCodeUpstream,
		ErrCodeInvalidRequest,
	}
}
