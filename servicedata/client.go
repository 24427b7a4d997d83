// Package servicedata is a client for the service-data lookup that lists
// the services of an organization.
package servicedata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/kbukum/devportal/httpclient"
	"github.com/kbukum/devportal/httpclient/rest"
	"github.com/kbukum/devportal/logger"
	"github.com/kbukum/devportal/observability"
	"github.com/kbukum/devportal/result"
	"github.com/kbukum/devportal/version"
)

// ClientName labels logs, spans and metrics of this client.
const ClientName = "servicedata"

// Config configures the service-data client.
type Config struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// APIKey is sent as X-Functions-Key.
	APIKey string            `yaml:"-" mapstructure:"api_key"`
	HTTP   httpclient.Config `yaml:"http" mapstructure:"http"`
}

// Validate checks that the client can be built.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("servicedata: base_url is required")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("servicedata: api_key is required")
	}
	return nil
}

// Option customises a Client.
type Option func(*options)

type options struct {
	transport httpclient.Transport
	log       *logger.Logger
	metrics   *observability.Metrics
}

// WithTransport replaces the default net/http transport.
func WithTransport(t httpclient.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithLogger sets the logger for per-call logs.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records call metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

type organizationParams struct {
	FiscalCode string `json:"organization_fiscal_code" validate:"organizationfiscalcode"`
}

// Client calls the service-data API. It is safe for concurrent use.
type Client struct {
	organizationServices func(organizationParams) result.Task[rest.Response[json.RawMessage]]
}

// New builds a client. Without WithTransport it sends requests through an
// httpclient.Client configured from cfg.HTTP.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.transport == nil {
		httpCfg := cfg.HTTP
		if httpCfg.Name == "" {
			httpCfg.Name = ClientName
		}
		if httpCfg.UserAgent == "" {
			httpCfg.UserAgent = version.UserAgent()
		}
		hc, err := httpclient.New(httpCfg)
		if err != nil {
			return nil, fmt.Errorf("servicedata: %w", err)
		}
		o.transport = hc
	}

	exec := &rest.Executor{
		BaseURL:    cfg.BaseURL,
		Transport:  o.transport,
		Logger:     o.log,
		Metrics:    o.metrics,
		ClientName: ClientName,
	}

	return &Client{
		organizationServices: rest.Bind(exec, rest.Descriptor[organizationParams, json.RawMessage]{
			Name:    "servicedata.getOrganizationServices",
			Method:  http.MethodGet,
			URL:     func(p organizationParams) string { return rest.Path("/organizations/%s/services", p.FiscalCode) },
			Query:   rest.NoQuery[organizationParams],
			Headers: rest.FunctionsKeyHeader[organizationParams](cfg.APIKey),
			Params:  rest.ValidateStruct[organizationParams],
			Decoder: rest.Compose(
				rest.ServerError[json.RawMessage](""),
				rest.Unauthorized[json.RawMessage](""),
				rest.BadRequest[json.RawMessage](""),
				rest.Forbidden[json.RawMessage](""),
				rest.NotFound[json.RawMessage](""),
				rest.Conflict[json.RawMessage](""),
				// No agreed schema: any well-formed JSON document is accepted.
				rest.JSON[json.RawMessage](http.StatusOK),
			),
		}.MustValidate()),
	}, nil
}

// GetOrganizationServices lists the services of the organization with the
// given fiscal code.
func (c *Client) GetOrganizationServices(orgFiscalCode string) result.Task[rest.Response[json.RawMessage]] {
	return c.organizationServices(organizationParams{FiscalCode: orgFiscalCode})
}
