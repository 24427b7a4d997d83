package rest

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/devportal/httpclient"
)

type headerParams struct {
	Tenant string
}

func TestComposeHeadersRightBiased(t *testing.T) {
	a := StaticHeaders[headerParams](map[string]string{"X-A": "a", "X-Shared": "a"})
	b := StaticHeaders[headerParams](map[string]string{"X-B": "b", "X-Shared": "b"})

	got := ComposeHeaders(a, b)(headerParams{})
	if got["X-Shared"] != "b" {
		t.Errorf("expected later producer to win, got %q", got["X-Shared"])
	}
	if got["X-A"] != "a" || got["X-B"] != "b" {
		t.Errorf("expected union of both producers, got %v", got)
	}
}

func TestComposeHeadersIgnoresNameCase(t *testing.T) {
	plain := StaticHeaders[headerParams](map[string]string{"content-type": "text/plain", "x-trace": "1"})
	got := ComposeHeaders(plain, JSONContentTypeHeader[headerParams]())(headerParams{})

	if len(got) != 2 {
		t.Fatalf("expected 2 headers, got %v", got)
	}
	if got[HeaderContentType] != ContentTypeJSON {
		t.Errorf("expected later producer to win, got %q", got[HeaderContentType])
	}
	if got["X-Trace"] != "1" {
		t.Errorf("expected canonical X-Trace, got %v", got)
	}

	reversed := ComposeHeaders(JSONContentTypeHeader[headerParams](), plain)(headerParams{})
	if reversed[HeaderContentType] != "text/plain" {
		t.Errorf("expected later producer to win, got %q", reversed[HeaderContentType])
	}
}

func TestComposedHeadersOnTheWire(t *testing.T) {
	seen := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get(HeaderContentType)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := httpclient.New(httpclient.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.CloseIdleConnections()

	headers := ComposeHeaders(
		StaticHeaders[headerParams](map[string]string{"content-type": "text/plain"}),
		JSONContentTypeHeader[headerParams](),
	)
	for i := 0; i < 50; i++ {
		req := httpclient.Request{Method: http.MethodPost, URL: srv.URL, Headers: headers(headerParams{}), Body: []byte("{}")}
		if _, err := client.Do(context.Background(), req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := <-seen; got != ContentTypeJSON {
			t.Fatalf("call %d: expected %q, got %q", i, ContentTypeJSON, got)
		}
	}
}

func TestComposeHeadersAssociative(t *testing.T) {
	a := StaticHeaders[headerParams](map[string]string{"K": "a", "A": "1"})
	b := func(p headerParams) map[string]string { return map[string]string{"K": "b", "T": p.Tenant} }
	c := StaticHeaders[headerParams](map[string]string{"K": "c", "C": "3"})

	params := headerParams{Tenant: "acme"}
	left := ComposeHeaders(ComposeHeaders(a, b), c)(params)
	right := ComposeHeaders(a, ComposeHeaders(b, c))(params)

	if len(left) != len(right) {
		t.Fatalf("expected equal maps, got %v and %v", left, right)
	}
	for k, v := range left {
		if right[k] != v {
			t.Errorf("header %s: expected %q, got %q", k, v, right[k])
		}
	}
	if left["K"] != "c" {
		t.Errorf("expected c to win, got %q", left["K"])
	}
	if left["T"] != "acme" {
		t.Errorf("expected params to reach producer, got %q", left["T"])
	}
}

func TestComposeHeadersSkipsNil(t *testing.T) {
	got := ComposeHeaders(nil, AcceptJSONHeader[headerParams]())(headerParams{})
	if got[HeaderAccept] != ContentTypeJSON {
		t.Errorf("expected Accept header, got %v", got)
	}
}

func TestStaticHeadersAreIsolated(t *testing.T) {
	src := map[string]string{"X": "1"}
	p := StaticHeaders[headerParams](src)
	src["X"] = "2"

	first := p(headerParams{})
	first["X"] = "3"
	if got := p(headerParams{})["X"]; got != "1" {
		t.Errorf("expected 1, got %q", got)
	}
}

func TestBuiltinHeaders(t *testing.T) {
	basic := base64.StdEncoding.EncodeToString([]byte("dev@example.com:secret"))
	tests := []struct {
		name     string
		producer HeaderProducer[headerParams]
		header   string
		want     string
	}{
		{"subscription key", SubscriptionKeyHeader[headerParams]("sub"), "Ocp-Apim-Subscription-Key", "sub"},
		{"functions key", FunctionsKeyHeader[headerParams]("fn"), "X-Functions-Key", "fn"},
		{"basic", BasicAuthHeader[headerParams]("dev@example.com", "secret"), "Authorization", "Basic " + basic},
		{"bearer", BearerHeader[headerParams]("tok"), "Authorization", "Bearer tok"},
		{"content type", JSONContentTypeHeader[headerParams](), "Content-Type", "application/json"},
		{"accept", AcceptJSONHeader[headerParams](), "Accept", "application/json"},
		{"user agent", UserAgentHeader[headerParams]("devportal/1.0"), "User-Agent", "devportal/1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.producer(headerParams{})
			if got[tt.header] != tt.want {
				t.Errorf("expected %s=%q, got %q", tt.header, tt.want, got[tt.header])
			}
		})
	}
}
