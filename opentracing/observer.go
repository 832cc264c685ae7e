package opentracing

import (
	"sync"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	jaeger "github.com/uber/jaeger-client-go"

	"github.com/etsangsplk/hello-tracing/logging"
)

// SpanLoggingObserver writes a debug log line for every finished span so log
// events can be correlated with the trace in the collector UI. It only
// observes spans while the logger has debug enabled.
type SpanLoggingObserver struct {
	logger *logging.Logger
}

// NewSpanLoggingObserver creates an observer logging to logger.
func NewSpanLoggingObserver(logger *logging.Logger) *SpanLoggingObserver {
	if logger == nil {
		logger = logging.Global()
	}
	return &SpanLoggingObserver{logger: logger}
}

// OnStartSpan implements jaeger.ContribObserver.
func (o *SpanLoggingObserver) OnStartSpan(sp opentracing.Span, operationName string, options opentracing.StartSpanOptions) (jaeger.ContribSpanObserver, bool) {
	if !o.logger.DebugEnabled() {
		return nil, false
	}
	tags := make(map[string]interface{}, len(options.Tags))
	for k, v := range options.Tags {
		tags[k] = v
	}
	start := options.StartTime
	if start.IsZero() {
		start = time.Now()
	}
	return &spanLoggingObserver{
		logger:        o.logger,
		span:          sp,
		operationName: operationName,
		start:         start,
		tags:          tags,
	}, true
}

type spanLoggingObserver struct {
	logger *logging.Logger
	span   opentracing.Span
	start  time.Time

	mu            sync.Mutex
	operationName string
	tags          map[string]interface{}
}

func (o *spanLoggingObserver) OnSetOperationName(operationName string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.operationName = operationName
}

func (o *spanLoggingObserver) OnSetTag(key string, value interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tags[key] = value
}

func (o *spanLoggingObserver) OnFinish(options opentracing.FinishOptions) {
	o.mu.Lock()
	defer o.mu.Unlock()

	finish := options.FinishTime
	if finish.IsZero() {
		finish = time.Now()
	}
	fieldBuilder := logging.FieldsBuilder{}
	fieldBuilder.AddFields("operation", o.operationName, "duration", finish.Sub(o.start))
	if sc, ok := o.span.Context().(jaeger.SpanContext); ok {
		fieldBuilder.AddFields(
			"traceID", sc.TraceID().String(),
			"spanID", sc.SpanID().String(),
			"parentSpanID", sc.ParentID().String())
	}
	fieldBuilder.FlattenMapInterface(o.tags)
	o.logger.Debug("span finished", fieldBuilder.Fields()...)
}
