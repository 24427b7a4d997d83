// Package httpclient is the transport boundary of devportal.
//
// A Transport performs one HTTP exchange and reports an error only when no
// response was obtained. Status codes are never interpreted here; the rest
// package's decoders own that. Client is the default Transport over
// net/http, and tests substitute a TransportFunc or the canned transport in
// httpclient/testutil.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    Timeout:   30 * time.Second,
//	    UserAgent: version.UserAgent(),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    URL:    "https://api.example.com/adm/services/123",
//	})
//
// # HTTP/2
//
// ForceHTTP2 switches to golang.org/x/net/http2: h2 over TLS for https URLs
// and h2c with prior knowledge for http URLs.
package httpclient
