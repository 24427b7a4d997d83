package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/devportal/component"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ReceivedRequest is a request seen by Server.
type ReceivedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// Server is a fake upstream: a gin engine served by httptest. Register
// routes on Engine before or after Start.
type Server struct {
	mu       sync.RWMutex
	engine   *gin.Engine
	ts       *httptest.Server
	received []ReceivedRequest
	started  bool
}

var _ TestComponent = (*Server)(nil)

// NewServer creates a stopped fake upstream.
func NewServer() *Server {
	s := &Server{}
	s.engine = s.newEngine()
	return s
}

func (s *Server) newEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), s.record)
	return engine
}

func (s *Server) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	s.mu.Lock()
	s.received = append(s.received, ReceivedRequest{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.RawQuery,
		Header: c.Request.Header.Clone(),
		Body:   body,
	})
	s.mu.Unlock()
	c.Next()
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.Engine().ServeHTTP(w, r)
}

// Engine returns the gin engine for registering routes.
func (s *Server) Engine() *gin.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// Reply registers a route answering with a fixed status and raw body.
func (s *Server) Reply(method, path string, status int, body string) {
	s.Engine().Handle(method, path, func(c *gin.Context) {
		if body == "" {
			c.Status(status)
			return
		}
		c.Data(status, "application/json", []byte(body))
	})
}

// BaseURL returns the server URL, empty before Start.
func (s *Server) BaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ts == nil {
		return ""
	}
	return s.ts.URL
}

// Received returns every request the server has seen.
func (s *Server) Received() []ReceivedRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ReceivedRequest, len(s.received))
	copy(out, s.received)
	return out
}

// --- component.Component ---

func (s *Server) Name() string { return "testutil-server" }

func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("component already started")
	}
	s.ts = httptest.NewServer(http.HandlerFunc(s.serve))
	s.started = true
	return nil
}

func (s *Server) Stop(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil
	}
	s.ts.Close()
	s.ts = nil
	s.started = false
	return nil
}

func (s *Server) Health(_ context.Context) component.Health {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

// --- TestComponent ---

// Reset replaces the engine, dropping every route and recorded request.
// A started server keeps its URL.
func (s *Server) Reset(_ context.Context) error {
	engine := s.newEngine()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine = engine
	s.received = nil
	return nil
}

// Snapshot captures the recorded requests.
func (s *Server) Snapshot(_ context.Context) (interface{}, error) {
	return s.Received(), nil
}

// Restore replaces the recorded requests with a snapshot.
func (s *Server) Restore(_ context.Context, snapshot interface{}) error {
	received, ok := snapshot.([]ReceivedRequest)
	if !ok {
		return fmt.Errorf("testutil: unexpected snapshot type %T", snapshot)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append([]ReceivedRequest(nil), received...)
	return nil
}
