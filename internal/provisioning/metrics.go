package provisioning

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

// Metrics holds the prometheus collectors of one installer run. They live on
// a private registry; the CLI writes them to a node-exporter textfile.
type Metrics struct {
	Registry *prometheus.Registry

	resourceOps      *prometheus.CounterVec
	resourceDuration *prometheus.HistogramVec
	phaseDuration    *prometheus.HistogramVec
	apiRequests      *prometheus.CounterVec
	apiLatency       *prometheus.HistogramVec
	lastRun          *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		resourceOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "premium_app",
				Subsystem: "installer",
				Name:      "resource_operations_total",
				Help:      "Resource operations by category, operation and result",
			},
			[]string{"category", "operation", "result"},
		),

		resourceDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "premium_app",
				Subsystem: "installer",
				Name:      "resource_operation_duration_seconds",
				Help:      "Duration of module operations in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"category", "operation"},
		),

		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "premium_app",
				Subsystem: "installer",
				Name:      "phase_duration_seconds",
				Help:      "Duration of pipeline phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~51s
			},
			[]string{"phase"},
		),

		apiRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "premium_app",
				Subsystem: "purecloud",
				Name:      "api_requests_total",
				Help:      "Platform API requests by method, route and status code",
			},
			[]string{"method", "route", "code"},
		),

		apiLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "premium_app",
				Subsystem: "purecloud",
				Name:      "api_request_duration_seconds",
				Help:      "Platform API request latency in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
			},
			[]string{"method", "route"},
		),

		lastRun: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "premium_app",
				Subsystem: "installer",
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the last run of a command finished, by result",
			},
			[]string{"command", "result"},
		),
	}

	m.Registry.MustRegister(
		m.resourceOps,
		m.resourceDuration,
		m.phaseDuration,
		m.apiRequests,
		m.apiLatency,
		m.lastRun,
	)
	return m
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordResource counts one resource operation.
func (m *Metrics) RecordResource(category config.Category, operation string, err error) {
	if m == nil {
		return
	}
	m.resourceOps.WithLabelValues(string(category), operation, result(err)).Inc()
}

// RecordResourceState counts a create that found an existing resource
// separately from a real create.
func (m *Metrics) RecordResourceState(r Resource) {
	if m == nil {
		return
	}
	res := "existing"
	if r.Created {
		res = "created"
	}
	m.resourceOps.WithLabelValues(string(r.Category), "ensure", res).Inc()
}

// ObserveModule records how long one module operation took.
func (m *Metrics) ObserveModule(category config.Category, operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.resourceDuration.WithLabelValues(string(category), operation).Observe(d.Seconds())
}

// ObservePhase records how long a pipeline phase took.
func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	if m == nil {
		return
	}
	m.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// ObserveRequest records one platform API request. Its signature matches
// purecloud.RequestObserver.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// MarkRun records the end of a command run.
func (m *Metrics) MarkRun(command string, err error) {
	if m == nil {
		return
	}
	m.lastRun.WithLabelValues(command, result(err)).SetToCurrentTime()
}

// WriteTextfile writes every collected metric to path in the text exposition
// format, for the node-exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
