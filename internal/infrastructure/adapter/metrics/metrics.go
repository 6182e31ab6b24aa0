package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Purchases by product and terminal outcome
	PurchasesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchases_total",
			Help: "Total purchase attempts by product and outcome",
		},
		[]string{"product", "outcome"}, // success|failed|pending
	)

	// Wallet compensations (pending debit refunded after provider failure)
	RefundsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "refunds_total",
			Help: "Total refunds issued for failed purchases",
		},
	)

	// Provider callbacks by provider and disposition
	CallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_callbacks_total",
			Help: "Total provider callbacks by disposition",
		},
		[]string{"provider", "disposition"},
	)

	// External gateway calls
	GatewayCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_calls_total",
			Help: "Total outbound gateway calls by provider and result",
		},
		[]string{"provider", "result"},
	)
)

// Handler serves the /metrics endpoint
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestLatency)
	prometheus.MustRegister(PurchasesTotal)
	prometheus.MustRegister(RefundsTotal)
	prometheus.MustRegister(CallbacksTotal)
	prometheus.MustRegister(GatewayCallsTotal)
}
