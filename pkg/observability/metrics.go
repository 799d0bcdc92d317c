// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the GENIA Twilio relay.
package observability

import "github.com/prometheus/client_golang/prometheus"

// SendBuckets defines histogram buckets suited for a single outbound
// REST call, ranging from 25ms to 30s.
var SendBuckets = []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

var (
	// RequestsTotal counts all HTTP requests by method, route, and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genia_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method and route.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genia_request_duration_seconds",
			Help:    "Request duration",
			Buckets: SendBuckets,
		},
		[]string{"method", "route"},
	)

	// StreamingConnections tracks the number of active SSE streams.
	StreamingConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "genia_streaming_connections_active",
			Help: "Active streaming connections",
		},
	)

	// ProviderRequestsTotal counts send attempts against Twilio by outcome.
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genia_provider_requests_total",
			Help: "Provider send attempts",
		},
		[]string{"status"},
	)

	// ProviderLatency records Twilio send latency in seconds.
	ProviderLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "genia_provider_latency_seconds",
			Help:    "Provider send latency",
			Buckets: SendBuckets,
		},
	)

	// WebhookRequestsTotal counts inbound provider webhooks by outcome.
	WebhookRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genia_webhook_requests_total",
			Help: "Inbound webhook deliveries",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		StreamingConnections,
		ProviderRequestsTotal,
		ProviderLatency,
		WebhookRequestsTotal,
	)
}
