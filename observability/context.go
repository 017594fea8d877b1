package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OperationContext tracks one Aspen request from dispatch to completion.
type OperationContext struct {
	Route     string
	Method    string
	RequestID string
	DeviceID  string
	StartTime time.Time
	Metrics   *Metrics
}

// NewOperationContext creates a new operation context.
// If metrics is nil, metric recording is silently skipped.
func NewOperationContext(route, method, requestID, deviceID string, metrics *Metrics) *OperationContext {
	return &OperationContext{
		Route:     route,
		Method:    method,
		RequestID: requestID,
		DeviceID:  deviceID,
		StartTime: time.Now(),
		Metrics:   metrics,
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

// StartSpanForOperation starts the request span, stores oc in the returned
// context and records the request start metric.
func (oc *OperationContext) StartSpanForOperation(ctx context.Context) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanAspenRequest+" "+oc.Method+" "+oc.Route)
	span.SetAttributes(
		attribute.String(AttrRoute, oc.Route),
		attribute.String(AttrMethod, oc.Method),
		attribute.String(AttrRequestID, oc.RequestID),
	)
	if oc.DeviceID != "" {
		span.SetAttributes(attribute.String(AttrDeviceID, oc.DeviceID))
	}

	if oc.Metrics != nil {
		oc.Metrics.RecordRequestStart(ctx)
	}
	return WithOperationContext(ctx, oc), span
}

// EndOperation ends the span and records request-end metrics. status is
// "ok" or the failure code.
func (oc *OperationContext) EndOperation(ctx context.Context, span trace.Span, status string, err error) {
	duration := oc.Duration()

	if err != nil {
		SetSpanError(trace.ContextWithSpan(ctx, span), err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if oc.Metrics != nil {
		oc.Metrics.RecordRequestEnd(ctx, oc.Route, oc.Method, status, duration)
		if err != nil {
			oc.Metrics.RecordError(ctx, status, "aspen")
		}
	}
}

// Duration returns the elapsed time since operation start.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
