package opentracing

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("tracer configuration error")
	// ErrInvalidSpanState matches every *InvalidSpanStateError.
	ErrInvalidSpanState = errors.New("invalid span state")
	// ErrShutdownTimeout is returned when buffered spans could not be flushed in time.
	ErrShutdownTimeout = errors.New("tracer shutdown timed out")
)

// ConfigurationError reports a tracer configuration that cannot be used.
type ConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("invalid tracer configuration: %s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf(" (%v)", e.Value)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// InvalidSpanStateError is returned when a finished scope is mutated.
type InvalidSpanStateError struct {
	OperationName string
	Op            string
}

func (e *InvalidSpanStateError) Error() string {
	return fmt.Sprintf("cannot %s on finished span %q", e.Op, e.OperationName)
}

func (e *InvalidSpanStateError) Is(target error) bool {
	return target == ErrInvalidSpanState
}
