package utils

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var metricsRegistry = prometheus.NewRegistry()

var (
	// OrdersPlacedTotal counts finalized orders by outcome status.
	OrdersPlacedTotal = promauto.With(metricsRegistry).NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders finalized, by status",
	}, []string{"status"})

	// LedgerEntriesTotal counts settled ledger entries by direction.
	// Idempotent replays do not count.
	LedgerEntriesTotal = promauto.With(metricsRegistry).NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_entries_total",
		Help: "Total number of settled wallet ledger entries, by direction",
	}, []string{"direction"})

	// ReconcilesTotal counts reconcile calls by outcome.
	ReconcilesTotal = promauto.With(metricsRegistry).NewCounterVec(prometheus.CounterOpts{
		Name: "deposit_reconciles_total",
		Help: "Total number of deposit reconcile attempts, by outcome",
	}, []string{"outcome"})

	// GatewayVerifyDuration observes gateway verification latency.
	GatewayVerifyDuration = promauto.With(metricsRegistry).NewHistogram(prometheus.HistogramOpts{
		Name:    "gateway_verify_duration_seconds",
		Help:    "Time taken by payment gateway verification calls",
		Buckets: prometheus.DefBuckets,
	})
)

// MetricsHandler returns the HTTP handler serving the metrics registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{})
}
