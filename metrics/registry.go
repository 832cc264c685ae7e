package metrics

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	jaegermetrics "github.com/uber/jaeger-lib/metrics"
	jprom "github.com/uber/jaeger-lib/metrics/prometheus"
)

// Registry owns a private Prometheus registry. Private so that running two
// tracers in one process (tests) does not collide on the default registerer.
type Registry struct {
	registry *prometheus.Registry
	factory  *jprom.Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	return &Registry{
		registry: reg,
		factory:  jprom.New(jprom.WithRegisterer(reg)),
	}
}

// Factory returns the jaeger-lib factory to pass to the tracer.
func (r *Registry) Factory() jaegermetrics.Factory {
	return r.factory
}

// Gatherer returns the underlying registry for callers that want to serve it.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every registered metric to path in the Prometheus text
// format. The file is replaced atomically.
func (r *Registry) WriteTextfile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("metrics textfile path is empty")
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

// Counter returns the value of the counter name with the given labels, or
// false when no such series was registered.
func (r *Registry) Counter(name string, labels map[string]string) (float64, bool) {
	families, err := r.registry.Gather()
	if err != nil {
		return 0, false
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			if m.GetCounter() == nil || !labelsMatch(m.GetLabel(), labels) {
				continue
			}
			return m.GetCounter().GetValue(), true
		}
	}
	return 0, false
}

func labelsMatch(pairs []*dto.LabelPair, want map[string]string) bool {
	if len(pairs) != len(want) {
		return false
	}
	for _, p := range pairs {
		if v, ok := want[p.GetName()]; !ok || v != p.GetValue() {
			return false
		}
	}
	return true
}
