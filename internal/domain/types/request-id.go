package types

import "context"

// Context key for request_id (unexported to avoid collisions)
type requestID struct{}

var requestIDKey = &requestID{}

// WithRequestIDContext stores request_id in context
func WithRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns request_id stored by WithRequestIDContext, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
