package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// TraceIDContextKey carries the request id of an HTTP call or the run id
// of a sweep. traceHandler copies it into every log record.
const TraceIDContextKey contextKey = "trace_id"

// WithTraceID returns ctx carrying traceID
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDContextKey, traceID)
}

// GetTraceID returns the trace id of ctx, or ""
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDContextKey).(string); ok {
		return traceID
	}
	return ""
}

// EnsureTraceID keeps an existing trace id, so a sweep started from a
// request logs under the request id; otherwise it attaches a new UUID.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, uuid.NewString())
}
