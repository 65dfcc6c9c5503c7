// Package metrics counts component operations with Prometheus and exports
// them in the node_exporter textfile format, which suits a short-lived CLI.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts operations per component on a private registry.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
}

// New returns a recorder whose counters are registered on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartgram",
		Name:      "operations_total",
		Help:      "Component operations performed, by component and operation.",
	}, []string{"component", "operation"})
	reg.MustRegister(ops)
	return &Recorder{registry: reg, operations: ops}
}

// Observe increments the counter for component and operation.
func (r *Recorder) Observe(component, operation string) {
	r.operations.WithLabelValues(component, operation).Inc()
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.registry }

// WriteTextfile writes the current counters to path. An empty path is a
// no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
