package opentracing

import (
	"errors"
	"fmt"

	jaegerLogger "github.com/uber/jaeger-client-go/log"

	"github.com/etsangsplk/hello-tracing/logging"
)

var _ jaegerLogger.DebugLogger = (*Logger)(nil)

// Logger adapts our logging package to the jaeger reporter logger so SDK
// messages, including export failures, share the same log format.
type Logger struct {
	logger *logging.Logger
}

// NewLogger creates a new Logger for the tracer reporter. A nil logger falls
// back to the global logger.
func NewLogger(logger *logging.Logger) *Logger {
	if logger == nil {
		logger = logging.Global()
	}
	return &Logger{logger: logger.SetCallstackSkip(1)}
}

// Error logs an error message
func (l *Logger) Error(msg string) {
	l.logger.Error(errors.New(msg), "tracer error", logging.ComponentKey, "jaeger")
}

// Infof logs an info message
func (l *Logger) Infof(msg string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(msg, args...), logging.ComponentKey, "jaeger")
}

// Debugf logs a debug message
func (l *Logger) Debugf(msg string, args ...interface{}) {
	if !l.logger.DebugEnabled() {
		return
	}
	l.logger.Debug(fmt.Sprintf(msg, args...), logging.ComponentKey, "jaeger")
}
