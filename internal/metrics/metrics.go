// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CartMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Cart mutations applied, by operation",
		},
		[]string{"op"},
	)

	CartStorageErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_storage_errors_total",
			Help: "Durable cart storage failures, by operation (load, decode, save)",
		},
		[]string{"op"},
	)

	OrderHandoffsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_handoffs_total",
			Help: "Messaging handoff links generated, by kind",
		},
		[]string{"kind"},
	)

	CatalogBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_circuit_breaker_state",
			Help: "Catalog client circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)
