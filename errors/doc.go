// Package errors defines the closed error model returned by every devportal
// client. Each failure carries a machine-readable ErrorCode so callers can
// tell "the service rejected the request", "the service is down" and "the
// response did not match the expected shape" apart without inspecting raw
// status codes. Errors render as RFC 7807 problem documents.
package errors
