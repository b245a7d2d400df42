// Package metrics provides Prometheus metrics for the studio service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WorkflowsTotal counts workflows accepted into the store by source.
	WorkflowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumina",
			Subsystem: "studio",
			Name:      "workflows_total",
			Help:      "Total number of workflows accepted into the store",
		},
		[]string{"source"}, // "manual", "generated", "seed"
	)

	// IngestFailures counts rejected payloads by reason.
	IngestFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumina",
			Subsystem: "studio",
			Name:      "ingest_failures_total",
			Help:      "Total number of payloads rejected at the ingestion boundary",
		},
		[]string{"reason"}, // "malformed_payload", "invalid_graph"
	)

	// ValidationWarnings counts advisory findings on accepted workflows.
	ValidationWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumina",
			Subsystem: "studio",
			Name:      "validation_warnings_total",
			Help:      "Total number of advisory validation warnings",
		},
		[]string{"code"},
	)

	// AssistantRequestsTotal counts assistant calls by operation and outcome.
	AssistantRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumina",
			Subsystem: "studio",
			Name:      "assistant_requests_total",
			Help:      "Total number of assistant requests",
		},
		[]string{"operation", "outcome"}, // operation: chat, generate, analyze; outcome: success, failure
	)

	// AssistantRequestDuration tracks assistant call latency.
	AssistantRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lumina",
			Subsystem: "studio",
			Name:      "assistant_request_duration_seconds",
			Help:      "Assistant request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"operation"},
	)

	// ChatFragmentsTotal counts streamed chat fragments.
	ChatFragmentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lumina",
			Subsystem: "studio",
			Name:      "chat_fragments_total",
			Help:      "Total number of chat text fragments streamed to clients",
		},
	)

	// SSEActiveConnections tracks open chat streams.
	SSEActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lumina",
			Subsystem: "studio",
			Name:      "sse_active_connections",
			Help:      "Number of currently open SSE connections",
		},
	)

	// SSEConnectionDuration tracks how long chat streams stay open.
	SSEConnectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lumina",
			Subsystem: "studio",
			Name:      "sse_connection_duration_seconds",
			Help:      "SSE connection duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumina",
			Subsystem: "studio",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lumina",
			Subsystem: "studio",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
