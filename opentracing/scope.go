package opentracing

import (
	"context"
	"fmt"
	"sync"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"

	"github.com/etsangsplk/hello-tracing/logging"
	"github.com/etsangsplk/hello-tracing/tracing"
)

// Fields are the key-value pairs of one span log event.
type Fields map[string]interface{}

type spanState int

// A scope is active from the moment it is returned until Close.
const (
	stateActive spanState = iota
	stateFinished
)

func (s spanState) String() string {
	switch s {
	case stateActive:
		return "active"
	case stateFinished:
		return "finished"
	}
	return "unknown"
}

// Scope is the handle of an active span. A scope is current for the context
// returned alongside it; child scopes started from that context reference it
// as their parent. The parent context is untouched, so once a child is closed
// the caller's own context still has the parent as current.
//
// Scope is safe for concurrent use, but spans should be mutated from the
// goroutine that owns them.
type Scope struct {
	span          opentracing.Span
	parent        *Scope
	operationName string
	logger        *logging.Logger

	mu    sync.Mutex
	state spanState
}

// StartActiveSpan starts a span named operationName on the tracer of ctx (see
// ContextWithTracer, the global tracer otherwise). The span is a child of the
// current span of ctx, or a root span when ctx has none. The returned context
// carries the new scope as current; the caller must Close the scope, usually
// with defer, or use WithActiveSpan.
func StartActiveSpan(ctx context.Context, operationName string, opts ...opentracing.StartSpanOption) (*Scope, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	return startActiveSpan(ctx, TracerFromContext(ctx), operationName, opts...)
}

func startActiveSpan(ctx context.Context, tracer opentracing.Tracer, operationName string, opts ...opentracing.StartSpanOption) (*Scope, context.Context) {
	parent := ScopeFromContext(ctx)
	parentSpan := SpanFromContext(ctx)

	startOpts := make([]opentracing.StartSpanOption, 0, len(opts)+2)
	startOpts = append(startOpts, opts...)
	if parentSpan != nil {
		startOpts = append(startOpts, opentracing.ChildOf(parentSpan.Context()))
	}
	if component := tracing.ComponentFrom(ctx); component != "" {
		startOpts = append(startOpts, opentracing.Tag{Key: string(ext.Component), Value: component})
	}

	scope := &Scope{
		span:          tracer.StartSpan(operationName, startOpts...),
		parent:        parent,
		operationName: operationName,
		logger:        logging.From(ctx),
		state:         stateActive,
	}

	ctx = opentracing.ContextWithSpan(ctx, scope.span)
	ctx = context.WithValue(ctx, scopeContextKey, scope)
	return scope, ctx
}

// WithActiveSpan runs fn inside a new active span and finishes the span on
// every exit path. A returned error or a panic marks the span as failed and
// is logged to it; the panic is re-raised once the span is finished.
func WithActiveSpan(ctx context.Context, operationName string, fn func(context.Context, *Scope) error, opts ...opentracing.StartSpanOption) (err error) {
	scope, ctx := StartActiveSpan(ctx, operationName, opts...)
	defer func() {
		if r := recover(); r != nil {
			scope.SetError(fmt.Errorf("panic: %v", r))
			scope.Close()
			panic(r)
		}
		if err != nil {
			scope.SetError(err)
		}
		scope.Close()
	}()
	return fn(ctx, scope)
}

// Span returns the underlying span.
func (s *Scope) Span() opentracing.Span {
	return s.span
}

// Parent returns the scope that was current when s was started, or nil.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// OperationName returns the name the span was started with.
func (s *Scope) OperationName() string {
	return s.operationName
}

// Finished reports whether Close has been called.
func (s *Scope) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateFinished
}

// SetTag sets a tag on the span, overwriting any previous value for key.
func (s *Scope) SetTag(key string, value interface{}) error {
	return s.mutate("set tag", func() {
		s.span.SetTag(key, value)
	})
}

// LogKV appends one timestamped event built from fields. Keys are recorded
// in sorted order.
func (s *Scope) LogKV(fields Fields) error {
	fieldBuilder := logging.FieldsBuilder{}
	fieldBuilder.FlattenMapInterface(fields)
	kv := fieldBuilder.Fields()
	spanFields, err := log.InterleavedKVToFields(kv...)
	if err != nil {
		return err
	}
	return s.mutate("log", func() {
		s.span.LogFields(spanFields...)
		if s.logger.DebugEnabled() {
			s.logger.Debug("span event", append([]interface{}{"operation", s.operationName}, kv...)...)
		}
	})
}

// LogKVs appends one event from alternating keys and values, kept in call
// order. Keys must be strings.
func (s *Scope) LogKVs(alternatingKeyValues ...interface{}) error {
	spanFields, err := log.InterleavedKVToFields(alternatingKeyValues...)
	if err != nil {
		return err
	}
	return s.LogFields(spanFields...)
}

// LogFields appends one timestamped event made of typed fields.
func (s *Scope) LogFields(fields ...log.Field) error {
	return s.mutate("log", func() {
		s.span.LogFields(fields...)
	})
}

// SetError marks the span as failed and records err as an error event.
func (s *Scope) SetError(err error) error {
	if err == nil {
		return nil
	}
	return s.mutate("set error", func() {
		ext.Error.Set(s.span, true)
		s.span.LogFields(log.String(tracing.EventKey, "error"), log.Error(err))
	})
}

// Close finishes the span. Only the first call finishes it; later calls are no-ops.
func (s *Scope) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == stateFinished {
		return
	}
	s.state = stateFinished
	s.span.Finish()
}

func (s *Scope) mutate(op string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateActive {
		return &InvalidSpanStateError{OperationName: s.operationName, Op: op}
	}
	fn()
	return nil
}
