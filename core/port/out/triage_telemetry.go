package out

import "context"

// ClassificationEvent is the fire-and-forget telemetry record emitted
// after each classification. It never affects the returned result.
type ClassificationEvent struct {
	RequestID        string  `json:"request_id"`
	Intent           string  `json:"intent"`
	Category         string  `json:"category"`
	Confidence       float64 `json:"confidence"`
	Fallback         bool    `json:"fallback"`
	Source           string  `json:"source"`
	ActionCount      int     `json:"action_count"`
	ProcessingTimeMs int64   `json:"processing_time_ms"`
}

// TelemetryPublisher publishes classification events to an external
// collector. Implementations must be safe for concurrent use and must
// never block the classification path for long.
type TelemetryPublisher interface {
	Publish(ctx context.Context, event ClassificationEvent) error
	Close() error
}
