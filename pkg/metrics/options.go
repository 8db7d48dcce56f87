package metrics

import (
	"maps"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Manager before its collectors are registered.
type Option func(*Manager)

// WithPrometheusRegistry registers the collectors with registry instead of
// the default registerer. Tests pass a fresh registry per manager.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// WithNamespace replaces the "puimuri" name prefix.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem replaces the "trainer" name segment.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithLatencyBuckets sets the millisecond buckets shared by the build and
// HTTP latency histograms. Buckets are sorted; an empty list is ignored.
func WithLatencyBuckets(buckets ...float64) Option {
	return func(m *Manager) {
		if len(buckets) == 0 {
			return
		}
		b := slices.Clone(buckets)
		slices.Sort(b)
		m.latencyBuckets = slices.Compact(b)
	}
}

// WithConstLabels attaches labels to every series, e.g. the deployment name.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(m *Manager) {
		if len(labels) > 0 {
			m.constLabels = maps.Clone(labels)
		}
	}
}

// WithSampleInterval sets how often RunSystemCollector samples the runtime.
func WithSampleInterval(interval time.Duration) Option {
	return func(m *Manager) {
		if interval > 0 {
			m.sampleInterval = interval
		}
	}
}

// Disabled turns every Record call and runtime sample into a no-op. The
// collectors are still registered so /metrics keeps its shape.
func Disabled() Option {
	return func(m *Manager) {
		m.disabled = true
	}
}
