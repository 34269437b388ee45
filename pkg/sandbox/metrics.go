package sandbox

import (
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/sdk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests *prometheus.CounterVec
}

func newMetrics(registry *prometheus.Registry, store *Store) *metrics {
	factory := promauto.With(registry)

	m := &metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "miropay_sandbox_requests_total",
				Help: "Total number of sandbox requests by operation and status code",
			},
			[]string{"operation", "code"},
		),
	}

	for _, status := range []sdk.Status{sdk.StatusPending, sdk.StatusPaid, sdk.StatusCanceled} {
		status := status
		factory.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name:        "miropay_sandbox_payments",
				Help:        "Number of stored payments by status",
				ConstLabels: prometheus.Labels{"status": string(status)},
			},
			func() float64 {
				return float64(store.CountByStatus()[status])
			},
		)
	}

	return m
}
