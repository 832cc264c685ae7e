package opentracing

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	jaeger "github.com/uber/jaeger-client-go"
	jaegerConfig "github.com/uber/jaeger-client-go/config"
	"github.com/uber/jaeger-lib/metrics"

	"github.com/etsangsplk/hello-tracing/logging"
)

// DefaultShutdownTimeout bounds Close.
const DefaultShutdownTimeout = 5 * time.Second

// SetGlobalTracer sets the global tracer.
// By default tracer is a no-op tracer. Passing nil tracer will panic.
func SetGlobalTracer(t opentracing.Tracer) {
	if t == nil {
		panic("The global tracer can not be nil")
	}
	opentracing.SetGlobalTracer(t)
}

// Global returns the global tracer. The default is a no-op tracer.
func Global() opentracing.Tracer {
	return opentracing.GlobalTracer()
}

// Option configures NewTracer.
type Option func(*options)

type options struct {
	logger   *logging.Logger
	metrics  metrics.Factory
	reporter jaeger.Reporter
}

// WithLogger sets the logger used for tracer lifecycle and reporter errors.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetricsFactory records reporter and sampler metrics through factory.
func WithMetricsFactory(factory metrics.Factory) Option {
	return func(o *options) {
		if factory != nil {
			o.metrics = factory
		}
	}
}

// WithReporter replaces the agent reporter, e.g. with jaeger.NewInMemoryReporter in tests.
func WithReporter(reporter jaeger.Reporter) Option {
	return func(o *options) {
		o.reporter = reporter
	}
}

// Tracer is an opentracing.Tracer bound to a service name and a collector.
// It owns the background reporter that buffers finished spans and flushes
// them every FlushInterval; Shutdown must be called to flush and release it.
type Tracer struct {
	opentracing.Tracer

	config Config
	closer io.Closer
	logger *logging.Logger

	shutdownOnce sync.Once
	shutdownErr  error
}

// NewTracer returns a Tracer for cfg.ServiceName reporting to the configured
// collector. All spans from this tracer are tagged with the service name.
// You need 1 tracer per service. A *ConfigurationError is returned when cfg
// is not usable.
func NewTracer(cfg Config, opts ...Option) (*Tracer, error) {
	o := options{
		logger:  logging.Global(),
		metrics: metrics.NullFactory,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		o.logger.Error(err, "invalid tracer configuration")
		return nil, err
	}

	jaegerOpts := []jaegerConfig.Option{
		jaegerConfig.Logger(NewLogger(o.logger)),
		jaegerConfig.Metrics(o.metrics),
		jaegerConfig.ContribObserver(NewSpanLoggingObserver(o.logger)),
	}
	if o.reporter != nil {
		jaegerOpts = append(jaegerOpts, jaegerConfig.Reporter(o.reporter))
	}

	tracer, closer, err := jaegerConfiguration(cfg).NewTracer(jaegerOpts...)
	if err != nil {
		err = &ConfigurationError{Field: "jaeger", Reason: "cannot init tracer", Err: err}
		o.logger.Error(err, "cannot init tracer", "serviceName", cfg.ServiceName)
		return nil, err
	}

	o.logger.Info("tracer initialized",
		"serviceName", cfg.ServiceName,
		"agent", cfg.AgentHostPort(),
		"flushInterval", cfg.FlushInterval,
		"disabled", cfg.Disabled)

	return &Tracer{
		Tracer: tracer,
		config: cfg,
		closer: closer,
		logger: o.logger,
	}, nil
}

// jaegerConfiguration translates cfg. Sampling is constant: every span is reported.
func jaegerConfiguration(cfg Config) jaegerConfig.Configuration {
	keys := make([]string, 0, len(cfg.Tags))
	for k := range cfg.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	tags := make([]opentracing.Tag, 0, len(keys))
	for _, k := range keys {
		tags = append(tags, opentracing.Tag{Key: k, Value: cfg.Tags[k]})
	}

	return jaegerConfig.Configuration{
		ServiceName: cfg.ServiceName,
		Disabled:    cfg.Disabled,
		Tags:        tags,
		Sampler: &jaegerConfig.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegerConfig.ReporterConfig{
			QueueSize:           cfg.QueueSize,
			BufferFlushInterval: cfg.FlushInterval,
			LogSpans:            cfg.LogSpans,
			LocalAgentHostPort:  cfg.AgentHostPort(),
			CollectorEndpoint:   cfg.CollectorEndpoint,
		},
	}
}

// Config returns the configuration the tracer was built from.
func (t *Tracer) Config() Config {
	return t.config
}

// StartActiveSpan starts a span on t, see the package level StartActiveSpan.
func (t *Tracer) StartActiveSpan(ctx context.Context, operationName string, opts ...opentracing.StartSpanOption) (*Scope, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	return startActiveSpan(ContextWithTracer(ctx, t), t, operationName, opts...)
}

// Shutdown flushes buffered spans and closes the reporter. It blocks until
// the reporter is closed or ctx is done, in which case ErrShutdownTimeout is
// returned and the remaining spans are dropped. Only the first call does any
// work; later calls return its result.
func (t *Tracer) Shutdown(ctx context.Context) error {
	t.shutdownOnce.Do(func() {
		done := make(chan error, 1)
		go func() {
			done <- t.closer.Close()
		}()

		t.shutdownErr = waitClosed(ctx, done)

		if t.shutdownErr != nil {
			t.logger.Error(t.shutdownErr, "tracer shutdown failed", "serviceName", t.config.ServiceName)
			return
		}
		t.logger.Info("tracer shut down", "serviceName", t.config.ServiceName)
	})
	return t.shutdownErr
}

// waitClosed waits for the result of the reporter's Close. A result that is
// already available wins over an expired ctx.
func waitClosed(ctx context.Context, done <-chan error) error {
	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		select {
		case err = <-done:
		default:
			return fmt.Errorf("%w: %v", ErrShutdownTimeout, ctx.Err())
		}
	}
	if err != nil {
		return fmt.Errorf("closing tracer reporter: %w", err)
	}
	return nil
}

// Close implements io.Closer using DefaultShutdownTimeout.
func (t *Tracer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return t.Shutdown(ctx)
}
