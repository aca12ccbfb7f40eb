package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ClassificationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_classifications_total",
			Help: "Total number of emails classified",
		},
		[]string{"intent", "category", "source"},
	)

	FallbackCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_fallback_total",
			Help: "Classifications resolved via the generic-intent fallback",
		},
	)

	ClassificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_classification_duration_seconds",
			Help:    "Single-email classification latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 100µs to ~400ms
		},
	)

	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_batch_size",
			Help:    "Number of emails per batch classification request",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10), // 1 to 512
		},
	)

	TelemetryPublishCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_telemetry_publish_total",
			Help: "Telemetry events published, by outcome",
		},
		[]string{"status"}, // status: success, failed, dropped
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "triage_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

// RecordClassification records one completed classification.
func RecordClassification(intent, category, source string, fallback bool, duration time.Duration) {
	ClassificationCount.WithLabelValues(intent, category, source).Inc()
	if fallback {
		FallbackCount.Inc()
	}
	ClassificationDuration.Observe(duration.Seconds())
}

// RecordBatch records the size of a batch request.
func RecordBatch(size int) {
	BatchSize.Observe(float64(size))
}

// RecordTelemetryPublish counts a telemetry publish attempt by outcome.
func RecordTelemetryPublish(status string) {
	TelemetryPublishCount.WithLabelValues(status).Inc()
}

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
