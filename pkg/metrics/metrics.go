// Package metrics provides optional Prometheus instrumentation for the
// Reago engine. Until Enable is called, every Record function is a no-op,
// so the engine behaves identically in uninstrumented programs.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the Prometheus collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "reago").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the metrics collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "reago",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// collectors holds the Prometheus metrics for the engine.
type collectors struct {
	computationRuns prometheus.Counter
	notifications   prometheus.Counter
	mutations       prometheus.Counter
	liveSessions    prometheus.Gauge
}

var (
	global   *collectors
	globalMu sync.Mutex
)

func initCollectors(config Config) *collectors {
	factory := promauto.With(config.Registry)

	return &collectors{
		computationRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "computation_runs_total",
			Help:        "Total number of tracked computation runs",
			ConstLabels: config.ConstLabels,
		}),

		notifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "notifications_total",
			Help:        "Total number of change notifications fired",
			ConstLabels: config.ConstLabels,
		}),

		mutations: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "mutations_applied_total",
			Help:        "Total number of mutations applied to live output trees",
			ConstLabels: config.ConstLabels,
		}),

		liveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "live_sessions",
			Help:        "Number of connected live sessions",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Enable registers the engine collectors. Safe to call once; subsequent
// calls are ignored so libraries and hosts can both request metrics.
//
// Metrics collected:
//   - reago_computation_runs_total: Counter of tracked computation runs
//   - reago_notifications_total: Counter of change notifications
//   - reago_mutations_applied_total: Counter of applied tree mutations
//   - reago_live_sessions: Gauge of connected live sessions
func Enable(opts ...Option) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = initCollectors(config)
	}
}

// RecordComputationRun records one tracked computation run.
func RecordComputationRun() {
	if global != nil {
		global.computationRuns.Inc()
	}
}

// RecordNotification records one change notification.
func RecordNotification() {
	if global != nil {
		global.notifications.Inc()
	}
}

// RecordMutations records n applied tree mutations.
func RecordMutations(n int) {
	if global != nil && n > 0 {
		global.mutations.Add(float64(n))
	}
}

// RecordSessionStart records a live session connecting.
func RecordSessionStart() {
	if global != nil {
		global.liveSessions.Inc()
	}
}

// RecordSessionEnd records a live session disconnecting.
func RecordSessionEnd() {
	if global != nil {
		global.liveSessions.Dec()
	}
}
