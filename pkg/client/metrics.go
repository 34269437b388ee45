package client

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records outgoing processor calls
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the client collectors with reg. Collectors already
// registered by another client on the same registry are shared.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "miropay_client_requests_total",
			Help: "Total number of signed requests by method and status code",
		},
		[]string{"method", "code"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "miropay_client_request_duration_seconds",
			Help:    "Signed request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	if err := register(reg, &requests); err != nil {
		return nil, err
	}
	if err := register(reg, &duration); err != nil {
		return nil, err
	}

	return &Metrics{
		requestsTotal:   requests,
		requestDuration: duration,
	}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector *T) error {
	if err := reg.Register(*collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return err
		}
		existing, ok := already.ExistingCollector.(T)
		if !ok {
			return err
		}
		*collector = existing
	}
	return nil
}

// observe is a no-op on a nil receiver
func (m *Metrics) observe(method, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, code).Inc()
	m.requestDuration.WithLabelValues(method).Observe(d.Seconds())
}

func statusLabel(code int) string {
	return strconv.Itoa(code)
}
