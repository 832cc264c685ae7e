package tracing

import (
	"context"
)

type keyType int

const (
	componentContextKey keyType = iota
	requestIDContextKey
)

// WithRequestID creates a new context that includes the value requestID.
// Use RequestIDFrom() to get the value back out.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// RequestIDFrom returns the requestID value from context. If that value
// has not been set in the context then the empty string is returned.
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDContextKey).(string); ok {
		return v
	}
	return ""
}

// WithComponent creates a new context that includes the value component.
// Use ComponentFrom() to get the value back out. The component value
// is used to tag OpenTracing spans.
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentContextKey, component)
}

// ComponentFrom returns the component value from context. If that value
// has not been set in the context then the empty string is returned.
func ComponentFrom(ctx context.Context) string {
	if v, ok := ctx.Value(componentContextKey).(string); ok {
		return v
	}
	return ""
}
