package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketbot_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticketbot_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	MessagesDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketbot_messages_dispatched_total",
			Help: "Total messages dispatched, by the step that replied",
		},
		[]string{"step"}, // "add", "remove", "contextualize", "silent" or "error"
	)

	PatternsRegistered = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ticketbot_patterns_registered",
			Help: "Ticket prefixes currently recognized",
		},
	)

	TicketsLinked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticketbot_tickets_linked_total",
			Help: "Total ticket references rendered as URLs",
		},
	)

	// Rate limit metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketbot_rate_limit_hits_total",
			Help: "Total rate limit hits",
		},
		[]string{"endpoint"},
	)

	// Infrastructure metrics
	StorageLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticketbot_storage_latency_seconds",
			Help:    "Pattern storage operation latency",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"op"},
	)
)
