package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// APIMetrics holds Prometheus collectors for outbound ShipEngine calls.
// A nil *APIMetrics is valid and records nothing.
type APIMetrics struct {
	Requests *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewAPIMetrics creates the collectors and registers them with reg.
// Passing a nil registerer creates unregistered collectors, which is handy in tests.
func NewAPIMetrics(reg prometheus.Registerer, namespace string) *APIMetrics {
	if namespace == "" {
		namespace = "shipengine"
	}

	factory := promauto.With(reg)
	subsystem := "client"

	return &APIMetrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "ShipEngine API requests by operation and response status class",
			},
			[]string{"operation", "status"}, // status: 2xx, 4xx, 5xx, error
		),
		Failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "failures_total",
				Help:      "ShipEngine API calls that did not produce a usable response",
			},
			[]string{"operation", "reason"}, // reason: transport, status, decode
		),
		Latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "ShipEngine API call duration (separates carrier slowness from app slowness)",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"},
		),
	}
}

// ObserveRequest records one completed round trip. statusCode is 0 when the
// request never produced a response.
func (m *APIMetrics) ObserveRequest(operation string, statusCode int, d time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(operation, StatusClass(statusCode)).Inc()
	m.Latency.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveFailure records a call that ended in an error.
func (m *APIMetrics) ObserveFailure(operation, reason string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(operation, reason).Inc()
}

// StatusClass buckets an HTTP status code into "2xx", "4xx", etc.
func StatusClass(code int) string {
	if code <= 0 {
		return "error"
	}
	return strconv.Itoa(code/100) + "xx"
}
