package bootstrap

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"triage_server/adapter/out/messaging"
	"triage_server/config"
	"triage_server/core/port/out"
	"triage_server/core/service/classification"
	"triage_server/core/taxonomy"
	"triage_server/infra/database"
	"triage_server/pkg/cache"
)

// Dependencies holds all wired components.
type Dependencies struct {
	Tables      *taxonomy.Tables
	Pipeline    *classification.Pipeline
	Batch       *classification.BatchClassifier
	Telemetry   out.TelemetryPublisher
	Redis       *redis.Client      // nil when REDIS_URL is unset
	ResultCache *cache.ResultCache // nil when REDIS_URL is unset
	Log         zerolog.Logger
}

// NewDependencies loads the classification tables and wires the
// pipeline and its collaborators. Redis is optional end to end: without
// it telemetry is a no-op and caching is disabled.
func NewDependencies(cfg *config.Config, log zerolog.Logger) (*Dependencies, func(), error) {
	tables, err := taxonomy.LoadFiles(cfg.TaxonomyPath, cfg.RulesPath)
	if err != nil {
		return nil, nil, err
	}
	log.Info().
		Int("intents", len(tables.Taxonomy.Intents())).
		Int("rules", len(tables.Rules.Rules())).
		Msg("classification tables loaded")

	var (
		redisClient *redis.Client
		telemetry   out.TelemetryPublisher = messaging.NopPublisher{}
		resultCache *cache.ResultCache
	)
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		telemetry = messaging.NewRedisPublisher(redisClient, cfg.TelemetryStream, log)
		resultCache = cache.NewResultCache(redisClient, 30*time.Minute)
		log.Info().Str("stream", cfg.TelemetryStream).Msg("redis telemetry enabled")
	} else {
		log.Info().Msg("no redis configured, telemetry disabled")
	}

	pipeline := classification.NewPipeline(tables, telemetry, log)
	batch := classification.NewBatchClassifier(pipeline, cfg.BatchWorkers, log)

	deps := &Dependencies{
		Tables:      tables,
		Pipeline:    pipeline,
		Batch:       batch,
		Telemetry:   telemetry,
		Redis:       redisClient,
		ResultCache: resultCache,
		Log:         log,
	}

	cleanup := func() {
		if err := telemetry.Close(); err != nil {
			log.Warn().Err(err).Msg("telemetry close failed")
		}
	}
	return deps, cleanup, nil
}
