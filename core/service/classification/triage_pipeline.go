package classification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"triage_server/core/domain"
	"triage_server/core/port/out"
	"triage_server/core/taxonomy"
	"triage_server/pkg/metrics"
)

const telemetryTimeout = 2 * time.Second

// Pipeline is the classification orchestrator. It is the only component
// with branching control flow: it first tries the schema fast path and
// falls through to pattern matching, then runs the common tail (rules,
// category, priority) over the resolved intent. The pipeline itself is
// stateless between calls; the only shared state is the immutable
// taxonomy and rule tables.
type Pipeline struct {
	tables   *taxonomy.Tables
	intents  *IntentClassifier
	extract  *EntityExtractor
	disambig *Disambiguator
	rules    *RulesEngine
	promo    *PromoClassifier
	priority *PriorityAssignor

	telemetry out.TelemetryPublisher
	latency   *metrics.LatencyTracker
	log       zerolog.Logger
}

// NewPipeline wires the full pipeline over the given tables. telemetry
// may be a no-op publisher; it is never on the critical path.
func NewPipeline(tables *taxonomy.Tables, telemetry out.TelemetryPublisher, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		tables:    tables,
		intents:   NewIntentClassifier(tables.Taxonomy),
		extract:   NewEntityExtractor(),
		disambig:  NewDisambiguator(),
		rules:     NewRulesEngine(tables.Rules),
		promo:     NewPromoClassifier(),
		priority:  NewPriorityAssignor(tables.Rules),
		telemetry: telemetry,
		latency:   metrics.NewLatencyTracker(2000),
		log:       log.With().Str("component", "pipeline").Logger(),
	}
}

// LatencyStats reports windowed classification latency percentiles.
func (p *Pipeline) LatencyStats() metrics.LatencyStats {
	return p.latency.Stats()
}

// Classify runs one email through the pipeline. It is total: every
// input yields a complete result, never an error.
func (p *Pipeline) Classify(ctx context.Context, email *domain.EmailMessage) *domain.ClassificationResult {
	start := time.Now()

	var (
		intent     string
		confidence float64
		fallback   bool
		source     = domain.SourcePattern
		seeded     *domain.ExtractedEntities
	)

	if email.StructuredMarkup != "" {
		schema, err := parseStructuredMarkup(email.StructuredMarkup)
		if err != nil {
			p.log.Debug().Err(err).Msg("structured markup unusable, falling back to pattern path")
		} else {
			intent = schema.Intent
			confidence = 1.0
			source = domain.SourceSchema
			seeded = schema.Entities
		}
	}

	entities := p.extract.Extract(email).Merge(seeded)

	if source == domain.SourcePattern {
		scores := p.intents.Score(email)
		scores = p.disambig.Adjust(scores, email)
		res := p.intents.Resolve(scores, email)
		intent = res.Intent
		confidence = res.Confidence
		fallback = res.Fallback
	}

	actions := p.rules.Suggest(intent, entities)
	if actions == nil {
		// The wire contract is an empty list, not null.
		actions = []domain.SuggestedAction{}
	}
	category := p.promo.Category(email, intent)
	priority := p.priority.Assign(category, intent, entities, actions)
	urgent := p.priority.Urgent(email, entities)
	cta := CallToAction(actions)

	elapsed := time.Since(start)
	result := &domain.ClassificationResult{
		Category:              category,
		Intent:                intent,
		Confidence:            confidence,
		SuggestedActions:      actions,
		Priority:              priority,
		Urgent:                urgent,
		HighestPriorityAction: cta,
		CallToAction:          cta,
		Entities:              entities,
		Source:                source,
		Fallback:              fallback,
		ProcessingTimeMs:      elapsed.Milliseconds(),
	}

	p.latency.Record(elapsed)
	metrics.RecordClassification(intent, string(category), string(source), fallback, elapsed)
	p.emitTelemetry(result)

	p.log.Debug().
		Str("intent", intent).
		Str("category", string(category)).
		Float64("confidence", confidence).
		Bool("fallback", fallback).
		Str("source", string(source)).
		Int("actions", len(actions)).
		Dur("elapsed", elapsed).
		Msg("email classified")

	return result
}

// emitTelemetry publishes the classification event fire-and-forget.
// A slow or failing collector must not affect the returned result.
func (p *Pipeline) emitTelemetry(result *domain.ClassificationResult) {
	if p.telemetry == nil {
		return
	}
	event := out.ClassificationEvent{
		RequestID:        uuid.NewString(),
		Intent:           result.Intent,
		Category:         string(result.Category),
		Confidence:       result.Confidence,
		Fallback:         result.Fallback,
		Source:           string(result.Source),
		ActionCount:      len(result.SuggestedActions),
		ProcessingTimeMs: result.ProcessingTimeMs,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), telemetryTimeout)
		defer cancel()
		if err := p.telemetry.Publish(ctx, event); err != nil {
			metrics.RecordTelemetryPublish("failed")
			p.log.Warn().Err(err).Msg("telemetry publish failed")
			return
		}
		metrics.RecordTelemetryPublish("success")
	}()
}
