package testutil

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/kbukum/devportal/component"
	"github.com/kbukum/devportal/httpclient"
)

// Reply is a canned outcome of one exchange: a response, or an error when
// Err is set.
type Reply struct {
	Status  int
	Headers map[string]string
	Body    []byte
	Err     error
}

// JSON replies with status and a JSON body.
func JSON(status int, body string) Reply {
	return Reply{Status: status, Headers: map[string]string{"Content-Type": "application/json"}, Body: []byte(body)}
}

// Empty replies with status and no body.
func Empty(status int) Reply {
	return Reply{Status: status}
}

// Text replies with status and a plain-text body.
func Text(status int, body string) Reply {
	return Reply{Status: status, Headers: map[string]string{"Content-Type": "text/plain"}, Body: []byte(body)}
}

// Fail makes the exchange fail without a response.
func Fail(err error) Reply {
	return Reply{Err: err}
}

// Transport is an httpclient.Transport answering from a table of canned
// replies keyed by method and URL. It records every request, answered or
// not. Safe for concurrent use.
type Transport struct {
	mu      sync.Mutex
	replies map[string]Reply
	calls   []httpclient.Request
}

var (
	_ httpclient.Transport = (*Transport)(nil)
	_ TestComponent        = (*Transport)(nil)
)

// NewTransport creates an empty transport.
func NewTransport() *Transport {
	return &Transport{replies: make(map[string]Reply)}
}

func key(method, url string) string { return method + " " + url }

// On sets the reply for method and url, which must match the full request
// URL including the encoded query. It returns t for chaining.
func (t *Transport) On(method, url string, reply Reply) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies[key(method, url)] = reply
	return t
}

// Do records req and returns the reply registered for it. Requests with no
// reply fail as if the connection were refused.
func (t *Transport) Do(_ context.Context, req httpclient.Request) (*httpclient.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	recorded := req
	recorded.Headers = maps.Clone(req.Headers)
	if req.Body != nil {
		recorded.Body = append([]byte(nil), req.Body...)
	}
	t.calls = append(t.calls, recorded)

	reply, ok := t.replies[key(req.Method, req.URL)]
	if !ok {
		return nil, httpclient.NewConnectionError(fmt.Errorf("testutil: no reply for %s", key(req.Method, req.URL)))
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	return &httpclient.Response{
		StatusCode: reply.Status,
		Headers:    maps.Clone(reply.Headers),
		Body:       append([]byte(nil), reply.Body...),
	}, nil
}

// Calls returns the recorded requests in arrival order.
func (t *Transport) Calls() []httpclient.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]httpclient.Request, len(t.calls))
	copy(out, t.calls)
	return out
}

// CallCount returns the number of recorded requests.
func (t *Transport) CallCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.calls)
}

// LastCall returns the most recent request, false when there is none.
func (t *Transport) LastCall() (httpclient.Request, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.calls) == 0 {
		return httpclient.Request{}, false
	}
	return t.calls[len(t.calls)-1], true
}

// --- component.Component ---

func (t *Transport) Name() string { return "testutil-transport" }

func (t *Transport) Start(context.Context) error { return nil }

func (t *Transport) Stop(context.Context) error { return nil }

func (t *Transport) Health(context.Context) component.Health {
	return component.Health{Name: t.Name(), Status: component.StatusHealthy}
}

// --- TestComponent ---

// Reset drops every reply and recorded call.
func (t *Transport) Reset(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies = make(map[string]Reply)
	t.calls = nil
	return nil
}

type transportState struct {
	replies map[string]Reply
	calls   []httpclient.Request
}

// Snapshot captures the reply table and recorded calls.
func (t *Transport) Snapshot(context.Context) (interface{}, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return transportState{
		replies: maps.Clone(t.replies),
		calls:   append([]httpclient.Request(nil), t.calls...),
	}, nil
}

// Restore returns to a snapshot taken by Snapshot.
func (t *Transport) Restore(_ context.Context, snapshot interface{}) error {
	state, ok := snapshot.(transportState)
	if !ok {
		return fmt.Errorf("testutil: unexpected snapshot type %T", snapshot)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies = maps.Clone(state.replies)
	if t.replies == nil {
		t.replies = make(map[string]Reply)
	}
	t.calls = append([]httpclient.Request(nil), state.calls...)
	return nil
}
