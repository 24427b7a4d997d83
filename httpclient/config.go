package httpclient

import (
	"fmt"
	"time"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultDialTimeout = 10 * time.Second
)

// Config configures the default transport.
type Config struct {
	// Name identifies the transport in health reports and logs.
	Name string `yaml:"name" mapstructure:"name"`

	// Timeout bounds one whole exchange, body included. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// DialTimeout bounds connection establishment. Defaults to 10s.
	DialTimeout time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are default headers applied to all requests. Request headers
	// with the same name win.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent is sent when the request carries no User-Agent header.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// ForceHTTP2 speaks HTTP/2 only: h2 over TLS for https URLs and h2c
	// with prior knowledge for http URLs.
	ForceHTTP2 bool `yaml:"force_http2" mapstructure:"force_http2"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "http"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = defaultDialTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.DialTimeout <= 0 {
		return fmt.Errorf("httpclient: dial_timeout must be positive")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}
