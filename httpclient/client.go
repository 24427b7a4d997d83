package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// Client is the default Transport over net/http. It performs exactly one
// exchange per Do call: no retries, no redirects, no status classification.
type Client struct {
	httpClient *http.Client
	config     Config
}

var _ Transport = (*Client)(nil)

// New creates a new HTTP client with the given configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}

	var rt http.RoundTripper
	if cfg.ForceHTTP2 {
		rt = newHTTP2RoundTripper(tlsCfg, cfg.DialTimeout)
	} else {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.DialContext = (&net.Dialer{Timeout: cfg.DialTimeout}).DialContext
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
		rt = transport
	}

	return &Client{
		httpClient: &http.Client{
			Transport: rt,
			Timeout:   cfg.Timeout,
			// Redirect statuses reach the decoder like any other status.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		config: cfg,
	}, nil
}

// Do executes the request and returns the complete response.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("read response body: %w", err))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}, nil
}

// CloseIdleConnections releases pooled connections.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, NewRequestError(err)
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if httpReq.Header.Get("User-Agent") == "" && c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}

	return httpReq, nil
}

// http2RoundTripper speaks h2 over TLS for https URLs and h2c with prior
// knowledge for http URLs.
type http2RoundTripper struct {
	tls       *http2.Transport
	cleartext *http2.Transport
}

func newHTTP2RoundTripper(tlsCfg *tls.Config, dialTimeout time.Duration) *http2RoundTripper {
	dialer := &net.Dialer{Timeout: dialTimeout}
	return &http2RoundTripper{
		tls: &http2.Transport{TLSClientConfig: tlsCfg},
		cleartext: &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialer.DialContext(ctx, network, addr)
			},
		},
	}
}

func (t *http2RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme == "http" {
		return t.cleartext.RoundTrip(req)
	}
	return t.tls.RoundTrip(req)
}

func (t *http2RoundTripper) CloseIdleConnections() {
	t.tls.CloseIdleConnections()
	t.cleartext.CloseIdleConnections()
}
