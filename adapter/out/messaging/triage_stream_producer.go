// Package messaging publishes classification telemetry to Redis Streams.
package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"triage_server/core/port/out"
)

// DefaultStream is the stream classification events are appended to
// when no stream name is configured.
const DefaultStream = "triage:events"

// RedisPublisher implements out.TelemetryPublisher over a Redis Stream.
// Publishes go through a circuit breaker so a dead Redis degrades to
// fast local failures instead of piling up timeouts.
type RedisPublisher struct {
	client *redis.Client
	stream string
	cb     *gobreaker.CircuitBreaker
	log    zerolog.Logger
}

// NewRedisPublisher creates a publisher appending to the given stream.
func NewRedisPublisher(client *redis.Client, stream string, log zerolog.Logger) *RedisPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	logger := log.With().Str("component", "telemetry").Logger()

	cbSettings := gobreaker.Settings{
		Name:        "redis-telemetry",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}

	return &RedisPublisher{
		client: client,
		stream: stream,
		cb:     gobreaker.NewCircuitBreaker(cbSettings),
		log:    logger,
	}
}

// Publish appends one classification event to the stream.
func (p *RedisPublisher) Publish(ctx context.Context, event out.ClassificationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal telemetry event: %w", err)
	}

	_, err = p.cb.Execute(func() (interface{}, error) {
		return nil, p.client.XAdd(ctx, &redis.XAddArgs{
			Stream: p.stream,
			ID:     "*",
			MaxLen: 100000,
			Approx: true,
			Values: map[string]interface{}{
				"data": string(data),
			},
		}).Err()
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.stream, err)
	}
	return nil
}

// Close closes the underlying Redis connection.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

var _ out.TelemetryPublisher = (*RedisPublisher)(nil)

// NopPublisher discards all events. Used when no Redis URL is
// configured; telemetry is optional end to end.
type NopPublisher struct{}

// Publish discards the event.
func (NopPublisher) Publish(context.Context, out.ClassificationEvent) error { return nil }

// Close is a no-op.
func (NopPublisher) Close() error { return nil }

var _ out.TelemetryPublisher = NopPublisher{}
