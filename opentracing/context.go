package opentracing

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"
)

type keyType int

const (
	tracerContextKey keyType = iota
	scopeContextKey
)

// ContextWithTracer returns a context whose spans are started on tracer
// instead of the global tracer.
func ContextWithTracer(ctx context.Context, tracer opentracing.Tracer) context.Context {
	return context.WithValue(ctx, tracerContextKey, tracer)
}

// TracerFromContext returns the tracer set with ContextWithTracer, or the
// global tracer.
func TracerFromContext(ctx context.Context) opentracing.Tracer {
	if t, ok := ctx.Value(tracerContextKey).(opentracing.Tracer); ok && t != nil {
		return t
	}
	return Global()
}

// ScopeFromContext returns the current scope of ctx, or nil. A span put in
// ctx after the scope, e.g. with opentracing.ContextWithSpan, hides it.
func ScopeFromContext(ctx context.Context) *Scope {
	s, ok := ctx.Value(scopeContextKey).(*Scope)
	if !ok || s == nil {
		return nil
	}
	if s.span != opentracing.SpanFromContext(ctx) {
		return nil
	}
	return s
}

// SpanFromContext returns the `Span` previously associated with `ctx`, or
// `nil` if no such `Span` could be found. Spans of scopes and spans started
// directly through opentracing are found alike.
//
// NOTE: context.Context != SpanContext: the former is Go's intra-process
// context propagation mechanism, and the latter houses OpenTracing's per-Span
// identity and baggage information.
func SpanFromContext(ctx context.Context) opentracing.Span {
	return opentracing.SpanFromContext(ctx)
}
