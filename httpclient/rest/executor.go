package rest

import (
	"context"
	stderrors "errors"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/devportal/errors"
	"github.com/kbukum/devportal/httpclient"
	"github.com/kbukum/devportal/logger"
	"github.com/kbukum/devportal/observability"
	"github.com/kbukum/devportal/result"
	"github.com/kbukum/devportal/validation"
)

var (
	errNoTransport = stderrors.New("rest: executor has no transport")
	errNilResponse = stderrors.New("rest: transport returned no response")
)

// Executor runs descriptors against one upstream service. It holds only
// immutable configuration and is safe for concurrent use.
type Executor struct {
	// BaseURL is prepended to relative descriptor paths.
	BaseURL string
	// Transport performs the HTTP exchange.
	Transport httpclient.Transport
	// Logger receives per-call logs; nil discards them.
	Logger *logger.Logger
	// Metrics records call metrics when not nil.
	Metrics *observability.Metrics
	// ClientName labels spans, metrics and logs.
	ClientName string
}

func (e *Executor) log() *logger.Logger {
	if e.Logger == nil {
		return logger.Nop()
	}
	return e.Logger
}

// Call executes d once with params. Exactly one transport call is made,
// except when the request cannot be built, in which case none is.
func Call[P, T any](ctx context.Context, exec *Executor, d Descriptor[P, T], params P) result.Result[Response[T]] {
	requestID := uuid.NewString()
	ctx = logger.ContextWithRequestID(ctx, requestID)
	log := exec.log().WithComponent(exec.ClientName).WithContext(ctx)

	req, appErr := buildRequest(exec.BaseURL, d, params)
	if appErr != nil {
		log.Warn("request rejected before sending", logger.Fields(
			logger.FieldOperation, d.Name,
			logger.FieldErrorCode, string(appErr.Code),
			logger.FieldIssueCount, len(reportIssues(appErr.Report)),
		))
		if exec.Metrics != nil {
			exec.Metrics.RecordError(ctx, string(appErr.Code), d.Name)
		}
		return result.Fail[Response[T]](appErr)
	}

	oc := observability.NewOperationContext(exec.ClientName, d.Name, requestID, exec.Metrics)
	ctx, span := oc.StartSpanForOperation(ctx, req.Method, req.URL)
	observability.InjectHeaders(ctx, req.Headers)

	res, status := exchange(ctx, exec.Transport, d, req)

	code := ""
	if appErr, ok := errors.AsAppError(res.Err()); ok {
		code = string(appErr.Code)
	}
	oc.EndOperation(ctx, span, status, code, res.Err())

	fields := logger.DurationFields(d.Name, oc.Duration())
	fields[logger.FieldMethod] = req.Method
	fields[logger.FieldStatus] = status
	if err := res.Err(); err != nil {
		fields[logger.FieldErrorCode] = code
		log.WithError(err).Warn("upstream call failed", fields)
	} else {
		log.Debug("upstream call completed", fields)
	}
	return res
}

// exchange performs the transport call and decodes the response. It also
// returns the observed status, 0 when no response was obtained.
func exchange[P, T any](ctx context.Context, transport httpclient.Transport, d Descriptor[P, T], req httpclient.Request) (result.Result[Response[T]], int) {
	if transport == nil {
		return result.Fail[Response[T]](errors.TransportFailure(d.Name, errNoTransport)), 0
	}
	resp, err := transport.Do(ctx, req)
	if err != nil {
		return result.Fail[Response[T]](errors.TransportFailure(d.Name, err)), 0
	}
	if resp == nil {
		return result.Fail[Response[T]](errors.TransportFailure(d.Name, errNilResponse)), 0
	}
	return Decode(d.Decoder, resp.StatusCode, resp.Body), resp.StatusCode
}

// Bind returns the operation as a function from parameters to a deferred
// call. Nothing is sent until the task runs.
func Bind[P, T any](exec *Executor, d Descriptor[P, T]) func(P) result.Task[Response[T]] {
	return func(params P) result.Task[Response[T]] {
		return result.NewTask(func(ctx context.Context) result.Result[Response[T]] {
			return Call(ctx, exec, d, params)
		})
	}
}

// BindValue is Bind without the status.
func BindValue[P, T any](exec *Executor, d Descriptor[P, T]) func(P) result.Task[T] {
	call := Bind(exec, d)
	return func(params P) result.Task[T] {
		return result.MapTask(call(params), func(resp Response[T]) T { return resp.Value })
	}
}

func buildRequest[P, T any](baseURL string, d Descriptor[P, T], params P) (httpclient.Request, *errors.AppError) {
	if d.Params != nil {
		if report := d.Params(params); report.HasIssues() {
			return httpclient.Request{}, errors.InvalidRequest(d.Name+": invalid parameters", report)
		}
	}

	var query map[string]string
	if d.Query != nil {
		query = d.Query(params)
	}
	target, err := joinURL(baseURL, d.URL(params), query)
	if err != nil {
		return httpclient.Request{}, errors.InvalidRequest(d.Name+": invalid url", nil).WithCause(err)
	}

	var body []byte
	if d.Body != nil {
		body, err = d.Body(params)
		if err != nil {
			report := &validation.Report{Cause: err}
			report.Add(validation.Issue{Path: "body", Message: err.Error()})
			return httpclient.Request{}, errors.InvalidRequest(d.Name+": body could not be encoded", report).WithCause(err)
		}
	}

	headers := make(map[string]string)
	if d.Headers != nil {
		copyCanonical(headers, d.Headers(params))
	}

	return httpclient.Request{Method: d.Method, URL: target, Headers: headers, Body: body}, nil
}

// joinURL appends path to base unless path is absolute, then appends the
// encoded query.
func joinURL(base, path string, query map[string]string) (string, error) {
	target := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		switch {
		case path == "":
			target = base
		default:
			target = strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
		}
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", &url.Error{Op: "parse", URL: target, Err: stderrors.New("not an absolute url")}
	}
	if len(query) > 0 {
		values := u.Query()
		for k, v := range query {
			values.Set(k, v)
		}
		u.RawQuery = values.Encode()
	}
	return u.String(), nil
}

func reportIssues(r *validation.Report) []validation.Issue {
	if r == nil {
		return nil
	}
	return r.Issues
}
