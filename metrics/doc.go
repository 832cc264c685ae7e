/*
Package metrics exposes the tracer's own instrumentation in Prometheus form.

The jaeger tracer counts started and finished spans, reporter successes and
failures and the reporter queue length through a jaeger-lib metrics.Factory.
Registry hands it a Factory backed by a Prometheus registry so those numbers
can be inspected after a run:

	reg := metrics.NewRegistry()
	tracer, err := opentracing.NewTracer(cfg, opentracing.WithMetricsFactory(reg.Factory()))
	...
	err = reg.WriteTextfile("/var/lib/node_exporter/hello.prom")

The textfile format is the one read by the node exporter textfile collector.
*/
package metrics
