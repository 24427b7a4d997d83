package httpclient

import (
	"context"
	"encoding/pem"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClient_Do_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/adm/services/s1" {
			t.Errorf("expected /adm/services/s1, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"service_id":"s1"}`))
	}))
	defer srv.Close()

	c, err := New(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: srv.URL + "/adm/services/s1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("expected json content type, got %q", resp.Headers["Content-Type"])
	}
	if string(resp.Body) != `{"service_id":"s1"}` {
		t.Errorf("unexpected body %s", resp.Body)
	}
}

func TestClient_Do_SendsBodyAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"a":1}` {
			t.Errorf("unexpected body %s", body)
		}
		if got := r.Header.Get("X-Default"); got != "request" {
			t.Errorf("expected request header to win, got %q", got)
		}
		if got := r.Header.Get("X-Only-Default"); got != "d" {
			t.Errorf("expected default header, got %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "devportal-test" {
			t.Errorf("expected configured user agent, got %q", got)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c, err := New(Config{
		Headers:   map[string]string{"X-Default": "default", "X-Only-Default": "d"},
		UserAgent: "devportal-test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := c.Do(context.Background(), Request{
		Method:  http.MethodPost,
		URL:     srv.URL,
		Headers: map[string]string{"X-Default": "request"},
		Body:    []byte(`{"a":1}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
}

func TestClient_Do_ErrorStatusIsNotAnError(t *testing.T) {
	for _, status := range []int{302, 400, 404, 500, 503} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Location", "/elsewhere")
			w.WriteHeader(status)
		}))

		c, _ := New(Config{})
		resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: srv.URL})
		srv.Close()
		if err != nil {
			t.Fatalf("status %d: unexpected error: %v", status, err)
		}
		if resp.StatusCode != status {
			t.Errorf("expected %d, got %d", status, resp.StatusCode)
		}
	}
}

func TestClient_Do_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	c, _ := New(Config{})
	_, err = c.Do(context.Background(), Request{Method: http.MethodGet, URL: "http://" + addr})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsConnection(err) {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestClient_Do_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c, _ := New(Config{Timeout: 50 * time.Millisecond})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: srv.URL})
	if !IsTimeout(err) {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestClient_Do_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c, _ := New(Config{})
	_, err := c.Do(ctx, Request{Method: http.MethodGet, URL: srv.URL})
	if !IsTimeout(err) {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestClient_Do_MalformedResponse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		buf := make([]byte, 1024)
		_, _ = conn.Read(buf)
		_, _ = conn.Write([]byte("not an http response\r\n\r\n"))
		_ = conn.Close()
	}()

	c, _ := New(Config{})
	_, err = c.Do(context.Background(), Request{Method: http.MethodGet, URL: "http://" + ln.Addr().String()})
	if !IsConnection(err) {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestClient_Do_InvalidURL(t *testing.T) {
	c, _ := New(Config{})
	_, err := c.Do(context.Background(), Request{Method: "BAD METHOD", URL: "http://example.com"})
	if err == nil {
		t.Fatal("expected error for invalid method")
	}
	var e *Error
	if !errors.As(err, &e) || e.Code != ErrCodeRequest {
		t.Errorf("expected request error, got %v", err)
	}
}

func TestClient_ForceHTTP2_TLS(t *testing.T) {
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ProtoMajor != 2 {
			t.Errorf("expected HTTP/2, got %s", r.Proto)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	srv.EnableHTTP2 = true
	srv.StartTLS()
	defer srv.Close()

	c, err := New(Config{ForceHTTP2: true, TLS: &TLSConfig{CAFile: writeServerCA(t, srv)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
	c.CloseIdleConnections()
}

func TestClient_TLS_CAFile(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	untrusted, _ := New(Config{})
	if _, err := untrusted.Do(context.Background(), Request{Method: http.MethodGet, URL: srv.URL}); !IsConnection(err) {
		t.Errorf("expected certificate failure as connection error, got %v", err)
	}

	trusted, err := New(Config{TLS: &TLSConfig{CAFile: writeServerCA(t, srv)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := trusted.Do(context.Background(), Request{Method: http.MethodGet, URL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestTransportFunc(t *testing.T) {
	var tr Transport = TransportFunc(func(_ context.Context, req Request) (*Response, error) {
		return &Response{StatusCode: 418, Body: []byte(req.URL)}, nil
	})
	resp, err := tr.Do(context.Background(), Request{URL: "u"})
	if err != nil || resp.StatusCode != 418 || string(resp.Body) != "u" {
		t.Errorf("unexpected response %+v (%v)", resp, err)
	}
}

func writeServerCA(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ca.pem")
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write CA: %v", err)
	}
	return path
}
