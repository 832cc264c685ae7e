// Package greeting prints a greeting inside a small span tree.
package greeting

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	opentracing "github.com/opentracing/opentracing-go"

	"github.com/etsangsplk/hello-tracing/logging"
	ot "github.com/etsangsplk/hello-tracing/opentracing"
	"github.com/etsangsplk/hello-tracing/tracing"
)

// Span operation names.
const (
	SayHelloOperation = "say-hello"
	FormatOperation   = "format"
	PrintOperation    = "print"
)

const component = "greeting"

// Workflow says hello under a root span, optionally splitting the work into
// format and print child spans.
type Workflow struct {
	tracer opentracing.Tracer
	out    io.Writer
	nested bool
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithOutput sets where the greeting is written. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(wf *Workflow) {
		wf.out = w
	}
}

// WithNestedSpans selects between one span per call (false) and a root span
// with format and print children (true, the default).
func WithNestedSpans(nested bool) Option {
	return func(wf *Workflow) {
		wf.nested = nested
	}
}

// New creates a Workflow starting its spans on tracer. A nil tracer falls
// back to the global tracer.
func New(tracer opentracing.Tracer, opts ...Option) *Workflow {
	if tracer == nil {
		tracer = ot.Global()
	}
	wf := &Workflow{
		tracer: tracer,
		out:    os.Stdout,
		nested: true,
	}
	for _, opt := range opts {
		opt(wf)
	}
	return wf
}

// FormatGreeting returns the greeting for helloTo.
func FormatGreeting(helloTo string) string {
	return fmt.Sprintf("Hello, %s!", helloTo)
}

// SayHello writes "Hello, <helloTo>!" followed by a newline. The run is
// correlated by a request ID taken from ctx, or generated, which tags the
// root span and every log line.
func (w *Workflow) SayHello(ctx context.Context, helloTo string) error {
	requestID := tracing.RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = tracing.WithRequestID(ctx, requestID)
	}
	ctx = logging.NewRequestContext(ctx, requestID)
	ctx = logging.NewComponentContext(ctx, component)
	ctx = tracing.WithComponent(ctx, component)
	ctx = ot.ContextWithTracer(ctx, w.tracer)

	err := ot.WithActiveSpan(ctx, SayHelloOperation, func(ctx context.Context, scope *ot.Scope) error {
		if err := scope.SetTag(tracing.HelloToKey, helloTo); err != nil {
			return err
		}
		if err := scope.SetTag(tracing.RequestIDKey, requestID); err != nil {
			return err
		}
		if !w.nested {
			return w.sayHelloFlat(scope, helloTo)
		}
		helloStr, err := w.formatString(ctx, helloTo)
		if err != nil {
			return err
		}
		return w.printHello(ctx, helloStr)
	})
	if err != nil {
		logging.From(ctx).Error(err, "say hello failed", tracing.HelloToKey, helloTo)
	}
	return err
}

func (w *Workflow) sayHelloFlat(scope *ot.Scope, helloTo string) error {
	helloStr := FormatGreeting(helloTo)
	if err := scope.LogKV(ot.Fields{tracing.EventKey: helloStr}); err != nil {
		return err
	}
	if err := w.println(helloStr); err != nil {
		return err
	}
	return scope.LogKV(ot.Fields{tracing.EventKey: "print line"})
}

func (w *Workflow) formatString(ctx context.Context, helloTo string) (string, error) {
	var helloStr string
	err := ot.WithActiveSpan(ctx, FormatOperation, func(ctx context.Context, scope *ot.Scope) error {
		helloStr = FormatGreeting(helloTo)
		return scope.LogKV(ot.Fields{tracing.EventKey: helloStr})
	})
	return helloStr, err
}

func (w *Workflow) printHello(ctx context.Context, helloStr string) error {
	return ot.WithActiveSpan(ctx, PrintOperation, func(ctx context.Context, scope *ot.Scope) error {
		if err := w.println(helloStr); err != nil {
			return err
		}
		return scope.LogKV(ot.Fields{tracing.EventKey: "print line"})
	})
}

func (w *Workflow) println(s string) error {
	if _, err := fmt.Fprintln(w.out, s); err != nil {
		return fmt.Errorf("writing greeting: %w", err)
	}
	return nil
}
