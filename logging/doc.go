/*
Package logging provides structured leveled JSON logging. It wraps zap and exposes just the
APIs needed to instrument the tracing lessons: a global logger for startup and shutdown paths,
context loggers for request and component scoped fields, and a FieldsBuilder for turning maps
into key-value pairs. Loggers write to stderr by default so that stdout stays reserved for
program output.
*/
package logging
