/*
Package opentracing builds jaeger tracers for a named service and manages active spans.

NewTracer turns a Config into a Tracer that reports finished spans to a local jaeger agent
(or an HTTP collector) through a bounded, periodically flushed buffer. Call Shutdown before
exit to flush what is left; it blocks until the buffer is written or the context expires.

Spans are started with StartActiveSpan or WithActiveSpan. The current span travels in the
context.Context, so concurrent callers build independent span trees:

	err := opentracing.WithActiveSpan(ctx, "say-hello", func(ctx context.Context, scope *opentracing.Scope) error {
		scope.SetTag("hello-to", name)
		return format(ctx, name) // spans started from ctx are children of say-hello
	})

A Scope finishes its span exactly once. Tags and log events added after that are rejected
with an InvalidSpanStateError.
*/
package opentracing
