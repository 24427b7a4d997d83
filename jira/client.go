package jira

import (
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
const ClientName = "jira"

const (
	// ServiceTagPrefix prefixes the service id in the label linking an
	// issue to its service.
	ServiceTagPrefix = "devportal-service-"
	// DisableLabel marks issues requesting the deactivation of a service.
	DisableLabel = "DISATTIVAZIONE"
	// OK is the value of operations whose success carries no body.
	OK = "OK"

	issueType = "Task"
)

const (
	msgServerError  = "Jira API returns an error"
	msgUnauthorized = "Jira secrets misconfiguration"
	msgBadRequest   = "Invalid request"
	msgWrongJQL     = "Wrong Jira JQL"
	msgNotFound     = "Jira issue not found"
)

var (
	statusSearchFields  = []string{"summary", "status", "assignee", "comment"}
	serviceSearchFields = []string{"summary", "status", "assignee", "comment", "labels"}
)

// Config configures the issue tracker client.
type Config struct {
	// BaseURL is the tracker root, e.g. "https://example.atlassian.net".
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Email and Token authenticate with HTTP basic auth.
	Email string `yaml:"email" mapstructure:"email"`
	Token string `yaml:"-" mapstructure:"token"`

	// BoardID is the project key issues are created in and searched on.
	BoardID string `yaml:"board_id" mapstructure:"board_id"`

	// StatusComplete is the terminal workflow status excluded by
	// SearchServiceIssues. Defaults to "DONE".
	StatusComplete string `yaml:"status_complete" mapstructure:"status_complete"`

	// HTTP configures the default transport.
	HTTP httpclient.Config `yaml:"http" mapstructure:"http"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.StatusComplete == "" {
		c.StatusComplete = "DONE"
	}
}

// Validate checks that the client can be built.
func (c *Config) Validate() error {
	required := []struct{ name, value string }{
		{"base_url", c.BaseURL},
		{"email", c.Email},
		{"token", c.Token},
		{"board_id", c.BoardID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("jira: %s is required", r.name)
		}
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
	createIssueParams struct {
		Title       string   `json:"title" validate:"notblank"`
		Description string   `json:"description" validate:"notblank"`
		ServiceID   string   `json:"service_id" validate:"notblank"`
		Labels      []string `json:"labels" validate:"dive,notblank"`
	}
	issueParams struct {
		IssueID string `json:"issue_id" validate:"notblank"`
	}
	commentParams struct {
		IssueID string `json:"issue_id" validate:"notblank"`
		Comment string `json:"comment" validate:"notblank"`
	}
	transitionParams struct {
		IssueID      string `json:"issue_id" validate:"notblank"`
		TransitionID string `json:"transition_id" validate:"notblank"`
		Comment      string `json:"comment"`
	}
	searchParams struct {
		ServiceID string `json:"service_id" validate:"notblank"`
	}
	statusSearchParams struct {
		ServiceID string `json:"service_id" validate:"notblank"`
		Status    string `json:"status" validate:"notblank"`
	}
)

// Client calls the issue tracker REST API. It is safe for concurrent use.
type Client struct {
	cfg Config

	createIssue     func(createIssueParams) result.Task[rest.Response[CreatedIssue]]
	deleteIssue     func(issueParams) result.Task[rest.Response[string]]
	createComment   func(commentParams) result.Task[rest.Response[CreatedComment]]
	applyTransition func(transitionParams) result.Task[rest.Response[string]]
	issuesByStatus  func(statusSearchParams) result.Task[rest.Response[SearchIssuesResponse]]
	searchIssues    func(searchParams) result.Task[rest.Response[SearchIssuesResponse]]
}

// New builds a client. Without WithTransport it sends requests through an
// httpclient.Client configured from cfg.HTTP.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
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
			return nil, fmt.Errorf("jira: %w", err)
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
	c := &Client{cfg: cfg}

	c.createIssue = rest.Bind(exec, rest.Descriptor[createIssueParams, CreatedIssue]{
		Name:    "jira.createIssue",
		Method:  http.MethodPost,
		URL:     func(createIssueParams) string { return "/rest/api/2/issue" },
		Query:   rest.NoQuery[createIssueParams],
		Body:    rest.JSONBody(c.issuePayload),
		Headers: headers[createIssueParams](cfg),
		Params:  rest.ValidateStruct[createIssueParams],
		Decoder: ladder(msgBadRequest, false, rest.JSON[CreatedIssue](http.StatusCreated)),
	}.MustValidate())

	c.deleteIssue = rest.Bind(exec, rest.Descriptor[issueParams, string]{
		Name:    "jira.deleteIssue",
		Method:  http.MethodDelete,
		URL:     func(p issueParams) string { return rest.Path("/rest/api/2/issue/%s", p.IssueID) },
		Query:   rest.NoQuery[issueParams],
		Headers: headers[issueParams](cfg),
		Params:  rest.ValidateStruct[issueParams],
		Decoder: ladder(msgBadRequest, false, rest.Constant(http.StatusNoContent, OK)),
	}.MustValidate())

	c.createComment = rest.Bind(exec, rest.Descriptor[commentParams, CreatedComment]{
		Name:    "jira.createIssueComment",
		Method:  http.MethodPost,
		URL:     func(p commentParams) string { return rest.Path("/rest/api/2/issue/%s/comment", p.IssueID) },
		Query:   rest.NoQuery[commentParams],
		Body:    rest.JSONBody(func(p commentParams) any { return commentPayload{Body: p.Comment} }),
		Headers: headers[commentParams](cfg),
		Params:  rest.ValidateStruct[commentParams],
		Decoder: ladder(msgBadRequest, false, rest.JSON[CreatedComment](http.StatusCreated)),
	}.MustValidate())

	c.applyTransition = rest.Bind(exec, rest.Descriptor[transitionParams, string]{
		Name:    "jira.applyIssueTransition",
		Method:  http.MethodPost,
		URL:     func(p transitionParams) string { return rest.Path("/rest/api/2/issue/%s/transitions", p.IssueID) },
		Query:   rest.NoQuery[transitionParams],
		Body:    rest.JSONBody(transitionBody),
		Headers: headers[transitionParams](cfg),
		Params:  rest.ValidateStruct[transitionParams],
		Decoder: ladder(msgBadRequest, true, rest.Constant(http.StatusNoContent, OK)),
	}.MustValidate())

	c.issuesByStatus = rest.Bind(exec, rest.Descriptor[statusSearchParams, SearchIssuesResponse]{
		Name:    "jira.getServiceIssuesByStatus",
		Method:  http.MethodPost,
		URL:     searchURL[statusSearchParams],
		Query:   rest.NoQuery[statusSearchParams],
		Body:    rest.JSONBody(func(p statusSearchParams) any { return c.statusSearch(p) }),
		Headers: headers[statusSearchParams](cfg),
		Params:  rest.ValidateStruct[statusSearchParams],
		Decoder: ladder(msgWrongJQL, false, rest.JSON[SearchIssuesResponse](http.StatusOK)),
	}.MustValidate())

	c.searchIssues = rest.Bind(exec, rest.Descriptor[searchParams, SearchIssuesResponse]{
		Name:    "jira.searchServiceIssues",
		Method:  http.MethodPost,
		URL:     searchURL[searchParams],
		Query:   rest.NoQuery[searchParams],
		Body:    rest.JSONBody(func(p searchParams) any { return c.serviceSearch(p) }),
		Headers: headers[searchParams](cfg),
		Params:  rest.ValidateStruct[searchParams],
		Decoder: ladder(msgWrongJQL, false, rest.JSON[SearchIssuesResponse](http.StatusOK)),
	}.MustValidate())

	return c, nil
}

func headers[P any](cfg Config) rest.HeaderProducer[P] {
	return rest.ComposeHeaders(
		rest.AcceptJSONHeader[P](),
		rest.BasicAuthHeader[P](cfg.Email, cfg.Token),
		rest.JSONContentTypeHeader[P](),
	)
}

func searchURL[P any](P) string { return "/rest/api/2/search" }

// ladder is the status ladder shared by every operation. Order matters:
// server errors first, then 404 when the operation maps it, then 401, 400
// and the expected success.
func ladder[T any](badRequest string, mapNotFound bool, success rest.Decoder[T]) rest.Decoder[T] {
	decoders := []rest.Decoder[T]{rest.ServerError[T](msgServerError)}
	if mapNotFound {
		decoders = append(decoders, rest.NotFound[T](msgNotFound))
	}
	decoders = append(decoders,
		rest.Unauthorized[T](msgUnauthorized),
		rest.BadRequest[T](badRequest),
		success,
	)
	return rest.Compose(decoders...)
}

// ServiceLabel returns the label linking issues to serviceID.
func ServiceLabel(serviceID string) string {
	return ServiceTagPrefix + serviceID
}

func (c *Client) issuePayload(p createIssueParams) any {
	labels := append([]string{ServiceLabel(p.ServiceID)}, p.Labels...)
	return issuePayload{Fields: issueFieldsPayload{
		Description: p.Description,
		IssueType:   namedField{Name: issueType},
		Labels:      labels,
		Project:     keyedField{Key: c.cfg.BoardID},
		Summary:     p.Title,
	}}
}

func transitionBody(p transitionParams) any {
	body := transitionPayload{Transition: transitionRef{ID: p.TransitionID}}
	if p.Comment != "" {
		body.Update = &transitionUpdate{Comment: []commentAdd{{Add: commentPayload{Body: p.Comment}}}}
	}
	return body
}

// Identifiers are interpolated into the JQL without quoting, so ids with
// spaces or JQL operators change the query.
func (c *Client) statusSearch(p statusSearchParams) searchPayload {
	label := ServiceLabel(p.ServiceID)
	jql := fmt.Sprintf("project = %s AND issuetype = %s AND (labels = %s OR (labels = %s AND labels = %s)) AND status = %s ORDER BY created DESC",
		c.cfg.BoardID, issueType, label, label, DisableLabel, p.Status)
	return newSearch(statusSearchFields, jql)
}

func (c *Client) serviceSearch(p searchParams) searchPayload {
	jql := fmt.Sprintf("project = %s AND issuetype = %s AND (labels = %s AND status != %s) ORDER BY created DESC",
		c.cfg.BoardID, issueType, ServiceLabel(p.ServiceID), c.cfg.StatusComplete)
	return newSearch(serviceSearchFields, jql)
}

func newSearch(fields []string, jql string) searchPayload {
	return searchPayload{Expand: []string{"names"}, Fields: fields, JQL: jql}
}

// CreateIssue opens a task linked to serviceID. The service label comes
// first, followed by labels.
func (c *Client) CreateIssue(title, description, serviceID string, labels ...string) result.Task[rest.Response[CreatedIssue]] {
	return c.createIssue(createIssueParams{Title: title, Description: description, ServiceID: serviceID, Labels: labels})
}

// DeleteIssue deletes an issue.
func (c *Client) DeleteIssue(issueID string) result.Task[rest.Response[string]] {
	return c.deleteIssue(issueParams{IssueID: issueID})
}

// CreateIssueComment adds a comment to an issue.
func (c *Client) CreateIssueComment(issueID, comment string) result.Task[rest.Response[CreatedComment]] {
	return c.createComment(commentParams{IssueID: issueID, Comment: comment})
}

// ApplyIssueTransition moves an issue through transitionID. A non-empty
// comment is added in the same call.
func (c *Client) ApplyIssueTransition(issueID, transitionID, comment string) result.Task[rest.Response[string]] {
	return c.applyTransition(transitionParams{IssueID: issueID, TransitionID: transitionID, Comment: comment})
}

// GetServiceIssuesByStatus lists the service issues in status, including
// deactivation requests.
func (c *Client) GetServiceIssuesByStatus(serviceID, status string) result.Task[rest.Response[SearchIssuesResponse]] {
	return c.issuesByStatus(statusSearchParams{ServiceID: serviceID, Status: status})
}

// SearchServiceIssues lists the service issues that are not complete.
func (c *Client) SearchServiceIssues(serviceID string) result.Task[rest.Response[SearchIssuesResponse]] {
	return c.searchIssues(searchParams{ServiceID: serviceID})
}
