package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OperationContext holds observability context for one upstream call.
type OperationContext struct {
	ClientName    string
	OperationName string
	RequestID     string
	StartTime     time.Time
	Metrics       *Metrics
}

// NewOperationContext creates a new operation context.
// If metrics is nil, metric recording is silently skipped.
func NewOperationContext(clientName, operationName, requestID string, metrics *Metrics) *OperationContext {
	return &OperationContext{
		ClientName:    clientName,
		OperationName: operationName,
		RequestID:     requestID,
		StartTime:     time.Now(),
		Metrics:       metrics,
	}
}

type operationContextKey struct{}

// WithOperationContext stores an OperationContext in the context.
func WithOperationContext(ctx context.Context, oc *OperationContext) context.Context {
	return context.WithValue(ctx, operationContextKey{}, oc)
}

// OperationContextFromContext retrieves the OperationContext from context, or nil.
func OperationContextFromContext(ctx context.Context) *OperationContext {
	if oc, ok := ctx.Value(operationContextKey{}).(*OperationContext); ok {
		return oc
	}
	return nil
}

// StartSpanForOperation starts a client span and records the request start metric.
func (oc *OperationContext) StartSpanForOperation(ctx context.Context, method, url string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanHTTPRequest, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String(AttrClientName, oc.ClientName),
		attribute.String(AttrOperationName, oc.OperationName),
		attribute.String(AttrRequestID, oc.RequestID),
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrHTTPURL, url),
	)

	if oc.Metrics != nil {
		oc.Metrics.RecordRequestStart(ctx)
	}
	return WithOperationContext(ctx, oc), span
}

// EndOperation ends the span and records request-end metrics. status is the
// HTTP status (0 when no response was obtained); code is the error code of a
// failed call.
func (oc *OperationContext) EndOperation(ctx context.Context, span trace.Span, status int, code string, err error) {
	duration := time.Since(oc.StartTime)

	outcome := "ok"
	if err != nil {
		outcome = code
		span.RecordError(err)
		span.SetStatus(codes.Error, code)
		span.SetAttributes(
			attribute.String(AttrErrorCode, code),
			attribute.String(AttrErrorMessage, err.Error()),
		)
	}
	if status > 0 {
		span.SetAttributes(attribute.Int(AttrHTTPStatus, status))
	}
	span.SetAttributes(attribute.Int64(AttrDurationMs, duration.Milliseconds()))
	span.End()

	if oc.Metrics != nil {
		oc.Metrics.RecordRequestEnd(ctx, oc.ClientName, oc.OperationName, outcome, duration)
		if err != nil {
			oc.Metrics.RecordError(ctx, code, oc.OperationName)
		}
	}
}

// Duration returns the elapsed time since operation start.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
