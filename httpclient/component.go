package httpclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/devportal/component"
)

// Component wraps a Client with lifecycle management so the CLI can start
// and stop transports through a component.Registry.
type Component struct {
	mu     sync.RWMutex
	client *Client
	config Config
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a new transport component.
// The client is created lazily in Start().
func NewComponent(cfg Config) *Component {
	cfg.ApplyDefaults()
	return &Component{config: cfg}
}

// Name returns the component name.
func (c *Component) Name() string {
	return c.config.Name
}

// Start builds the client.
func (c *Component) Start(_ context.Context) error {
	cl, err := New(c.config)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.client = cl
	c.mu.Unlock()
	return nil
}

// Stop releases idle connections.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.CloseIdleConnections()
		c.client = nil
	}
	return nil
}

// Health reports healthy once the client is built.
func (c *Component) Health(_ context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.client == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe reports the transport settings for the status command.
func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("timeout=%s", c.config.Timeout)
	if c.config.ForceHTTP2 {
		details += " http2"
	}
	if c.config.TLS.IsEnabled() {
		details += " tls"
	}
	return component.Description{
		Name:    c.Name(),
		Type:    "http-transport",
		Details: details,
	}
}

// Client returns the underlying client, nil before Start().
func (c *Component) Client() *Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

// Do implements Transport. It fails with a connection error before Start().
func (c *Component) Do(ctx context.Context, req Request) (*Response, error) {
	cl := c.Client()
	if cl == nil {
		return nil, NewConnectionError(fmt.Errorf("transport %s is not started", c.Name()))
	}
	return cl.Do(ctx, req)
}
