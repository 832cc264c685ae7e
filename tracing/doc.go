/*
Package tracing holds the context values and key names shared by the logging and
opentracing packages: the request ID that correlates a greeting run across log lines
and spans, and the component name used to tag spans.
*/
package tracing
