package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aretw0/sift/pkg/schema"
)

// Collector holds all Prometheus metrics for sift.
type Collector struct {
	// Engine metrics
	ValidationsTotal   *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec
	IssuesTotal        *prometheus.CounterVec

	// Host metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
}

// New creates a new metrics collector on the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a new metrics collector with a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		ValidationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sift",
				Name:      "validations_total",
				Help:      "Total number of validation attempts",
			},
			[]string{"schema", "outcome"},
		),
		ValidationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sift",
				Name:      "validation_duration_seconds",
				Help:      "Validation duration in seconds",
				Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
			},
			[]string{"schema"},
		),
		IssuesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sift",
				Name:      "issues_total",
				Help:      "Total number of validation issues by code",
			},
			[]string{"schema", "code"},
		),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sift",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sift",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "sift",
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),
	}
}

// ObserveValidation records the engine metrics for one validation attempt.
func (c *Collector) ObserveValidation(schemaName string, issues schema.Issues, elapsed time.Duration) {
	outcome := "ok"
	if len(issues) > 0 {
		outcome = "fail"
	}
	c.ValidationsTotal.WithLabelValues(schemaName, outcome).Inc()
	c.ValidationDuration.WithLabelValues(schemaName).Observe(elapsed.Seconds())

	for _, issue := range issues {
		c.IssuesTotal.WithLabelValues(schemaName, string(issue.Code)).Inc()
	}
}
