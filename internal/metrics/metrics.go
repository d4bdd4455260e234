package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vyapar_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vyapar_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// PaymentsReceivedTotal counts payments recorded through the ledger
	PaymentsReceivedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vyapar_payments_received_total",
			Help: "Total number of customer payments recorded",
		},
	)

	// PaymentAmountReceived sums payment amounts in rupees
	PaymentAmountReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vyapar_payment_amount_rupees_total",
			Help: "Total payment amount received in rupees",
		},
	)
)
