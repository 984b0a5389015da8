package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ShippingMetrics holds Prometheus metrics for shipping-level observability:
// what was quoted, bought and voided, as opposed to raw API traffic.
// A nil *ShippingMetrics is valid and records nothing.
type ShippingMetrics struct {
	// Addresses
	AddressValidations *prometheus.CounterVec

	// Rates
	RateQuotes    *prometheus.CounterVec
	RatesReturned prometheus.Histogram
	InvalidRates  *prometheus.CounterVec

	// Labels
	LabelsCreated    *prometheus.CounterVec
	LabelCost        *prometheus.HistogramVec
	LabelsVoided     *prometheus.CounterVec
	LabelsDownloaded *prometheus.CounterVec
	LabelBytes       *prometheus.HistogramVec
}

// NewShippingMetrics creates the shipping collectors and registers them with
// reg. A nil registerer leaves them unregistered.
func NewShippingMetrics(reg prometheus.Registerer, namespace string) *ShippingMetrics {
	if namespace == "" {
		namespace = "shipengine"
	}

	factory := promauto.With(reg)
	subsystem := "shipping"

	return &ShippingMetrics{
		// =======================================================================
		// Addresses
		// =======================================================================
		AddressValidations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "address_validations_total",
				Help:      "Validated addresses by outcome",
			},
			[]string{"status"}, // status: verified, unverified, warning, error
		),

		// =======================================================================
		// Rates
		// =======================================================================
		RateQuotes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rate_quotes_total",
				Help:      "Rate requests sent, by number of carriers asked",
			},
			[]string{"carriers"},
		),
		RatesReturned: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rates_returned",
				Help:      "Usable rates per rate request",
				Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
			},
		),
		InvalidRates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "invalid_rates_total",
				Help:      "Rates the carrier returned as invalid",
			},
			[]string{"carrier_code"},
		),

		// =======================================================================
		// Labels
		// =======================================================================
		LabelsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "labels_created_total",
				Help:      "Labels purchased",
			},
			[]string{"carrier_code", "test_label"},
		),
		LabelCost: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "label_cost",
				Help:      "Label cost including insurance, in the label's currency",
				Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
			},
			[]string{"currency"},
		),
		LabelsVoided: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "labels_voided_total",
				Help:      "Void requests by carrier decision",
			},
			[]string{"approved"},
		),
		LabelsDownloaded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "labels_downloaded_total",
				Help:      "Label artifacts stored",
			},
			[]string{"format"},
		),
		LabelBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "label_bytes",
				Help:      "Size of downloaded label artifacts",
				Buckets:   prometheus.ExponentialBuckets(1024, 4, 7),
			},
			[]string{"format"},
		),
	}
}

func (m *ShippingMetrics) AddressValidated(status string) {
	if m == nil {
		return
	}
	m.AddressValidations.WithLabelValues(status).Inc()
}

// RatesQuoted records one rate request and what came back.
func (m *ShippingMetrics) RatesQuoted(carriers, returned int, invalidCarrierCodes []string) {
	if m == nil {
		return
	}
	m.RateQuotes.WithLabelValues(bucketCount(carriers)).Inc()
	m.RatesReturned.Observe(float64(returned))
	for _, code := range invalidCarrierCodes {
		m.InvalidRates.WithLabelValues(code).Inc()
	}
}

func (m *ShippingMetrics) LabelCreated(carrierCode string, test bool, currency string, cost float64) {
	if m == nil {
		return
	}
	m.LabelsCreated.WithLabelValues(carrierCode, boolLabel(test)).Inc()
	if currency != "" {
		m.LabelCost.WithLabelValues(currency).Observe(cost)
	}
}

func (m *ShippingMetrics) LabelVoided(approved bool) {
	if m == nil {
		return
	}
	m.LabelsVoided.WithLabelValues(boolLabel(approved)).Inc()
}

func (m *ShippingMetrics) LabelDownloaded(format string, size int) {
	if m == nil {
		return
	}
	m.LabelsDownloaded.WithLabelValues(format).Inc()
	m.LabelBytes.WithLabelValues(format).Observe(float64(size))
}

// bucketCount keeps the carriers label bounded.
func bucketCount(n int) string {
	switch {
	case n <= 1:
		return "1"
	case n <= 3:
		return "2-3"
	default:
		return "4+"
	}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
