package httpclient

import (
	"context"
	"net/http"
)

// Request is a fully built outbound HTTP request. URL is absolute and
// already carries the encoded query string.
type Request struct {
	// Method is the HTTP method (GET, POST, DELETE, ...).
	Method string
	// URL is the absolute request URL.
	URL string
	// Headers are sent as-is, one value per name.
	Headers map[string]string
	// Body is the encoded request body, nil for none.
	Body []byte
}

// Response is the raw result of one HTTP exchange.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, first value per name.
	Headers map[string]string
	// Body is the full response body.
	Body []byte
}

// Transport performs one HTTP exchange. It returns an error only when no
// response was obtained; any status code is a successful exchange.
type Transport interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req Request) (*Response, error)

// Do calls f.
func (f TransportFunc) Do(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
