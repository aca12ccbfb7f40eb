// Package http contains the inbound HTTP handlers.
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"triage_server/core/domain"
	"triage_server/core/service/classification"
	"triage_server/pkg/cache"
	"triage_server/pkg/response"
)

// EmailRequest is the wire shape of one email to classify.
type EmailRequest struct {
	Subject          string            `json:"subject"`
	Body             string            `json:"body"`
	Snippet          string            `json:"snippet"`
	From             string            `json:"from"`
	Headers          map[string]string `json:"headers"`
	StructuredMarkup string            `json:"structured_markup"`
}

// ToDomain converts the request to the domain email.
func (r *EmailRequest) ToDomain() *domain.EmailMessage {
	return &domain.EmailMessage{
		Subject:          r.Subject,
		Body:             r.Body,
		Snippet:          r.Snippet,
		From:             r.From,
		Headers:          r.Headers,
		StructuredMarkup: r.StructuredMarkup,
	}
}

// BatchRequest is the wire shape of a batch classification call.
type BatchRequest struct {
	Emails []EmailRequest `json:"emails"`
}

// ClassifyHandler exposes the classification pipeline over HTTP.
type ClassifyHandler struct {
	pipeline     *classification.Pipeline
	batch        *classification.BatchClassifier
	cache        *cache.ResultCache // optional
	batchMaxSize int
	log          zerolog.Logger
}

// NewClassifyHandler creates the handler. cache may be nil.
func NewClassifyHandler(pipeline *classification.Pipeline, batch *classification.BatchClassifier, resultCache *cache.ResultCache, batchMaxSize int, log zerolog.Logger) *ClassifyHandler {
	if batchMaxSize <= 0 {
		batchMaxSize = 500
	}
	return &ClassifyHandler{
		pipeline:     pipeline,
		batch:        batch,
		cache:        resultCache,
		batchMaxSize: batchMaxSize,
		log:          log.With().Str("component", "classify_handler").Logger(),
	}
}

// Register registers classification routes.
func (h *ClassifyHandler) Register(app fiber.Router) {
	app.Post("/classify", h.Classify)
	app.Post("/classify/batch", h.ClassifyBatch)
}

// Classify classifies a single email.
// POST /api/classify
func (h *ClassifyHandler) Classify(c *fiber.Ctx) error {
	var req EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	email := req.ToDomain()

	if h.cache != nil {
		if cached := h.cache.Get(c.Context(), email); cached != nil {
			return response.OK(c, response.SelectFields(c, cached))
		}
	}

	result := h.pipeline.Classify(c.Context(), email)

	if h.cache != nil {
		if err := h.cache.Set(c.Context(), email, result); err != nil {
			h.log.Debug().Err(err).Msg("result cache write failed")
		}
	}

	return response.OK(c, response.SelectFields(c, result))
}

// ClassifyBatch classifies a batch of emails concurrently and returns
// per-item results in input order plus aggregate statistics.
// POST /api/classify/batch
func (h *ClassifyHandler) ClassifyBatch(c *fiber.Ctx) error {
	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if len(req.Emails) == 0 {
		return response.BadRequest(c, "emails must not be empty")
	}
	if len(req.Emails) > h.batchMaxSize {
		return response.PayloadTooLarge(c, "batch exceeds maximum size")
	}

	emails := make([]*domain.EmailMessage, len(req.Emails))
	for i := range req.Emails {
		emails[i] = req.Emails[i].ToDomain()
	}

	results, stats, err := h.batch.ClassifyBatch(c.Context(), emails)
	if err != nil {
		h.log.Error().Err(err).Msg("batch classification failed")
		return response.InternalError(c, "batch classification failed")
	}

	return response.OKWithMeta(c, results, &response.Meta{
		Total: stats.Total,
		Stats: stats,
	})
}
