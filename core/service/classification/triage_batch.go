package classification

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/pool"
	"github.com/rs/zerolog"

	"triage_server/core/domain"
	"triage_server/pkg/metrics"
)

// BatchStats is the reduction over a completed batch. It is computed
// after all items finish, never incrementally.
type BatchStats struct {
	Total            int            `json:"total"`
	AvgConfidence    float64        `json:"avg_confidence"`
	FallbackRate     float64        `json:"fallback_rate"`
	SchemaCount      int            `json:"schema_count"`
	CategoryCounts   map[string]int `json:"category_counts"`
	IntentCounts     map[string]int `json:"intent_counts"`
	ElapsedMs        int64          `json:"elapsed_ms"`
	WorkersUsed      int            `json:"workers_used"`
	ActionsSuggested int            `json:"actions_suggested"`
}

// BatchClassifier fans a batch of emails over a worker pool. Items are
// independent, so there is no coordination beyond the final join; each
// worker writes only its own result slot.
type BatchClassifier struct {
	pipeline *Pipeline
	workers  int
	log      zerolog.Logger
}

// NewBatchClassifier creates a batch classifier running up to workers
// classifications concurrently.
func NewBatchClassifier(pipeline *Pipeline, workers int, log zerolog.Logger) *BatchClassifier {
	if workers <= 0 {
		workers = 4
	}
	return &BatchClassifier{
		pipeline: pipeline,
		workers:  workers,
		log:      log.With().Str("component", "batch").Logger(),
	}
}

// ClassifyBatch classifies all emails, preserving input order in the
// returned slice, and reduces the results into aggregate stats.
func (b *BatchClassifier) ClassifyBatch(ctx context.Context, emails []*domain.EmailMessage) ([]*domain.ClassificationResult, BatchStats, error) {
	start := time.Now()
	results := make([]*domain.ClassificationResult, len(emails))

	workers := b.workers
	if len(emails) < workers {
		workers = len(emails)
	}
	if workers == 0 {
		return results, b.reduce(results, start, 0), nil
	}

	worker := pool.WorkerFunc[int](func(ctx context.Context, i int) error {
		results[i] = b.pipeline.Classify(ctx, emails[i])
		return nil
	})

	p := pool.New[int](workers, worker).WithContinueOnError()
	if err := p.Go(ctx); err != nil {
		return nil, BatchStats{}, fmt.Errorf("start batch pool: %w", err)
	}
	for i := range emails {
		p.Submit(i)
	}
	if err := p.Close(ctx); err != nil {
		return nil, BatchStats{}, fmt.Errorf("batch classification: %w", err)
	}

	metrics.RecordBatch(len(emails))
	stats := b.reduce(results, start, workers)
	b.log.Info().
		Int("total", stats.Total).
		Float64("avg_confidence", stats.AvgConfidence).
		Float64("fallback_rate", stats.FallbackRate).
		Int64("elapsed_ms", stats.ElapsedMs).
		Msg("batch classified")
	return results, stats, nil
}

func (b *BatchClassifier) reduce(results []*domain.ClassificationResult, start time.Time, workers int) BatchStats {
	stats := BatchStats{
		Total:          len(results),
		CategoryCounts: make(map[string]int),
		IntentCounts:   make(map[string]int),
		ElapsedMs:      time.Since(start).Milliseconds(),
		WorkersUsed:    workers,
	}
	if len(results) == 0 {
		return stats
	}

	var confidenceSum float64
	fallbacks := 0
	for _, r := range results {
		if r == nil {
			continue
		}
		confidenceSum += r.Confidence
		if r.Fallback {
			fallbacks++
		}
		if r.Source == domain.SourceSchema {
			stats.SchemaCount++
		}
		stats.CategoryCounts[string(r.Category)]++
		stats.IntentCounts[r.Intent]++
		stats.ActionsSuggested += len(r.SuggestedActions)
	}
	stats.AvgConfidence = confidenceSum / float64(len(results))
	stats.FallbackRate = float64(fallbacks) / float64(len(results))
	return stats
}
