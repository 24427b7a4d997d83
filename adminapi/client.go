package adminapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/kbukum/devportal/errors"
	"github.com/kbukum/devportal/httpclient"
	"github.com/kbukum/devportal/httpclient/rest"
	"github.com/kbukum/devportal/logger"
	"github.com/kbukum/devportal/observability"
	"github.com/kbukum/devportal/result"
	"github.com/kbukum/devportal/version"
)

// ClientName labels logs, spans and metrics of this client.
const ClientName = "adminapi"

// Config configures the administrative API client.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.example.it".
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// SubscriptionKey is sent as Ocp-Apim-Subscription-Key.
	SubscriptionKey string `yaml:"-" mapstructure:"subscription_key"`
	// HTTP configures the default transport.
	HTTP httpclient.Config `yaml:"http" mapstructure:"http"`
}

// Validate checks that the client can be built.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("adminapi: base_url is required")
	}
	if strings.TrimSpace(c.SubscriptionKey) == "" {
		return fmt.Errorf("adminapi: subscription_key is required")
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

type (
	serviceParams struct {
		ID string `json:"service_id" validate:"notblank"`
	}
	serviceBodyParams struct {
		ID      string  `json:"service_id" validate:"notblank"`
		Service Service `json:"service"`
	}
	newServiceParams struct {
		Service Service `json:"service"`
	}
	messageParams struct {
		FiscalCode string     `json:"fiscal_code" validate:"fiscalcode"`
		Message    NewMessage `json:"message"`
	}
	profileParams struct {
		FiscalCode string `json:"fiscal_code" validate:"fiscalcode"`
	}
	profileBodyParams struct {
		FiscalCode string          `json:"fiscal_code" validate:"fiscalcode"`
		Profile    ExtendedProfile `json:"profile"`
	}
)

// Client calls the administrative API. It is safe for concurrent use.
type Client struct {
	exec *rest.Executor

	getService            func(serviceParams) result.Task[rest.Response[Service]]
	createService         func(newServiceParams) result.Task[rest.Response[ServicePublic]]
	updateService         func(serviceBodyParams) result.Task[rest.Response[ServicePublic]]
	sendMessage           func(messageParams) result.Task[rest.Response[CreatedMessage]]
	createOrUpdateProfile func(profileBodyParams) result.Task[rest.Response[ExtendedProfile]]
	getProfile            func(profileParams) result.Task[rest.Response[Profile]]
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
			return nil, fmt.Errorf("adminapi: %w", err)
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
	key := cfg.SubscriptionKey

	c := &Client{exec: exec}
	c.getService = rest.Bind(exec, rest.Descriptor[serviceParams, Service]{
		Name:    "adminapi.getService",
		Method:  http.MethodGet,
		URL:     func(p serviceParams) string { return rest.Path("/adm/services/%s", p.ID) },
		Query:   rest.NoQuery[serviceParams],
		Headers: rest.SubscriptionKeyHeader[serviceParams](key),
		Params:  rest.ValidateStruct[serviceParams],
		Decoder: responseDecoder(rest.JSON[Service]),
	}.MustValidate())

	c.createService = rest.Bind(exec, rest.Descriptor[newServiceParams, ServicePublic]{
		Name:    "adminapi.createService",
		Method:  http.MethodPost,
		URL:     func(newServiceParams) string { return "/adm/services" },
		Query:   rest.NoQuery[newServiceParams],
		Body:    rest.JSONBody(func(p newServiceParams) any { return p.Service }),
		Headers: jsonHeaders[newServiceParams](key),
		Params:  rest.ValidateStruct[newServiceParams],
		Decoder: responseDecoder(rest.JSON[ServicePublic]),
	}.MustValidate())

	c.updateService = rest.Bind(exec, rest.Descriptor[serviceBodyParams, ServicePublic]{
		Name:    "adminapi.updateService",
		Method:  http.MethodPost,
		URL:     func(p serviceBodyParams) string { return rest.Path("/adm/services/%s", p.ID) },
		Query:   rest.NoQuery[serviceBodyParams],
		Body:    rest.JSONBody(func(p serviceBodyParams) any { return p.Service }),
		Headers: jsonHeaders[serviceBodyParams](key),
		Params:  rest.ValidateStruct[serviceBodyParams],
		Decoder: responseDecoder(rest.JSON[ServicePublic]),
	}.MustValidate())

	c.sendMessage = rest.Bind(exec, rest.Descriptor[messageParams, CreatedMessage]{
		Name:    "adminapi.sendMessage",
		Method:  http.MethodPost,
		URL:     func(p messageParams) string { return rest.Path("/api/v1/messages/%s", p.FiscalCode) },
		Query:   rest.NoQuery[messageParams],
		Body:    rest.JSONBody(func(p messageParams) any { return p.Message }),
		Headers: jsonHeaders[messageParams](key),
		Params:  rest.ValidateStruct[messageParams],
		Decoder: responseDecoder(rest.JSON[CreatedMessage]),
	}.MustValidate())

	c.createOrUpdateProfile = rest.Bind(exec, rest.Descriptor[profileBodyParams, ExtendedProfile]{
		Name:    "adminapi.createOrUpdateProfile",
		Method:  http.MethodPost,
		URL:     func(p profileBodyParams) string { return rest.Path("/api/v1/profiles/%s", p.FiscalCode) },
		Query:   rest.NoQuery[profileBodyParams],
		Body:    rest.JSONBody(func(p profileBodyParams) any { return p.Profile }),
		Headers: jsonHeaders[profileBodyParams](key),
		Params:  rest.ValidateStruct[profileBodyParams],
		Decoder: responseDecoder(rest.JSON[ExtendedProfile]),
	}.MustValidate())

	c.getProfile = rest.Bind(exec, rest.Descriptor[profileParams, Profile]{
		Name:    "adminapi.getProfile",
		Method:  http.MethodGet,
		URL:     func(p profileParams) string { return rest.Path("/api/v1/profiles/%s", p.FiscalCode) },
		Query:   rest.NoQuery[profileParams],
		Headers: rest.SubscriptionKeyHeader[profileParams](key),
		Params:  rest.ValidateStruct[profileParams],
		Decoder: responseDecoder(profileJSON),
	}.MustValidate())

	return c, nil
}

func jsonHeaders[P any](key string) rest.HeaderProducer[P] {
	return rest.ComposeHeaders(rest.SubscriptionKeyHeader[P](key), rest.JSONContentTypeHeader[P]())
}

// responseDecoder is the shared ladder; success decodes the same schema
// for 200 and 201.
func responseDecoder[T any](success func(status int) rest.Decoder[T]) rest.Decoder[T] {
	return rest.Compose(
		rest.ServerError[T](""),
		rest.Unauthorized[T](""),
		rest.BadRequest[T](""),
		rest.Forbidden[T](""),
		rest.NotFound[T](""),
		rest.Conflict[T](""),
		success(http.StatusOK),
		success(http.StatusCreated),
	)
}

func profileJSON(status int) rest.Decoder[Profile] {
	return func(got int, body []byte) (result.Result[rest.Response[Profile]], bool) {
		if got != status {
			return result.Result[rest.Response[Profile]]{}, false
		}
		p, report := decodeProfile(body)
		if report.HasIssues() {
			return result.Fail[rest.Response[Profile]](errors.DecodeFailure(status, report)), true
		}
		return result.Ok(rest.Response[Profile]{Status: status, Value: p}), true
	}
}

// GetService fetches a service by id.
func (c *Client) GetService(id string) result.Task[rest.Response[Service]] {
	return c.getService(serviceParams{ID: id})
}

// CreateService creates a service.
func (c *Client) CreateService(service Service) result.Task[rest.Response[ServicePublic]] {
	return c.createService(newServiceParams{Service: service})
}

// UpdateService replaces the service with id serviceID.
func (c *Client) UpdateService(serviceID string, service Service) result.Task[rest.Response[ServicePublic]] {
	return c.updateService(serviceBodyParams{ID: serviceID, Service: service})
}

// SendMessage sends a message to the citizen with fiscalCode.
func (c *Client) SendMessage(fiscalCode string, message NewMessage) result.Task[rest.Response[CreatedMessage]] {
	return c.sendMessage(messageParams{FiscalCode: fiscalCode, Message: message})
}

// CreateOrUpdateProfile writes the profile of the citizen with fiscalCode.
func (c *Client) CreateOrUpdateProfile(fiscalCode string, profile ExtendedProfile) result.Task[rest.Response[ExtendedProfile]] {
	return c.createOrUpdateProfile(profileBodyParams{FiscalCode: fiscalCode, Profile: profile})
}

// GetProfile fetches the profile of the citizen with fiscalCode.
func (c *Client) GetProfile(fiscalCode string) result.Task[rest.Response[Profile]] {
	return c.getProfile(profileParams{FiscalCode: fiscalCode})
}

// ValueOf extracts the value of a successful response. Only 200 and 201
// carry a value; any other status is an UNKNOWN_STATUS failure.
func ValueOf[T any](r result.Result[rest.Response[T]]) result.Result[T] {
	return result.Chain(r, func(resp rest.Response[T]) result.Result[T] {
		if resp.Status != http.StatusOK && resp.Status != http.StatusCreated {
			return result.Fail[T](errors.UnknownStatus(resp.Status))
		}
		return result.Ok(resp.Value)
	})
}
