package logging

import (
	"context"

	"github.com/google/uuid"
)

type keyType int

const (
	loggerContextKey keyType = iota
)

// From returns the logger in ctx. If no logger is found then the global
// logger is returned. For example if you pass context.Background() then
// you will get back the global logger. From will panic if ctx is nil.
func From(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerContextKey).(*Logger); ok && l != nil {
		return l
	}
	return Global()
}

// NewContext creates a new context that includes logger as a value, extended
// with the optional key-value fields. The logger can be retrieved using From(ctx).
func NewContext(ctx context.Context, logger *Logger, fields ...interface{}) context.Context {
	if logger != nil {
		logger = logger.With(fields...)
	}
	return context.WithValue(ctx, loggerContextKey, logger)
}

// NewRequestContext creates a context with a new request logger. The request
// logger will include the requestId in each trace and is derived from the
// logger found by calling From(ctx). If requestID is empty a new random
// UUID is generated.
func NewRequestContext(ctx context.Context, requestID string) context.Context {
	if len(requestID) == 0 {
		requestID = uuid.NewString()
	}
	logger := From(ctx).With(RequestIDKey, requestID)
	return NewContext(ctx, logger)
}

// NewComponentContext creates a new context that includes a component logger. A
// component logger will trace the field {"component": component}. The parent
// logger is acquired by calling From(ctx).
func NewComponentContext(ctx context.Context, component string, fields ...interface{}) context.Context {
	logger := From(ctx).With(ComponentKey, component)
	return NewContext(ctx, logger, fields...)
}

// NewTestContext is a convenience function for use in unit tests when
// calling functions that expect a context with a logger. Call NewTestContext
// like this: logging.NewTestContext(t.Name()).
func NewTestContext(testName string) context.Context {
	ctx := context.Background()
	logger := New(testName)
	return NewContext(ctx, logger)
}
