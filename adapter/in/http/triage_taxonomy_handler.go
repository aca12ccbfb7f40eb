package http

import (
	"github.com/gofiber/fiber/v2"

	"triage_server/core/taxonomy"
	"triage_server/pkg/response"
)

// TaxonomyHandler exposes the loaded taxonomy and rule tables read-only,
// so operators can see exactly which configuration a process runs.
type TaxonomyHandler struct {
	tables *taxonomy.Tables
}

// NewTaxonomyHandler creates the handler.
func NewTaxonomyHandler(tables *taxonomy.Tables) *TaxonomyHandler {
	return &TaxonomyHandler{tables: tables}
}

// Register registers taxonomy routes.
func (h *TaxonomyHandler) Register(app fiber.Router) {
	tax := app.Group("/taxonomy")
	tax.Get("/intents", h.ListIntents)
	tax.Get("/intents/:id", h.GetIntent)
	tax.Get("/categories", h.ListCategories)
	tax.Get("/rules", h.ListRules)
}

// ListIntents returns every intent definition in declaration order.
// GET /api/taxonomy/intents
func (h *TaxonomyHandler) ListIntents(c *fiber.Ctx) error {
	intents := h.tables.Taxonomy.Intents()
	return response.OKWithMeta(c, intents, &response.Meta{Total: len(intents)})
}

// GetIntent returns one intent definition by id.
// GET /api/taxonomy/intents/:id
func (h *TaxonomyHandler) GetIntent(c *fiber.Ctx) error {
	def := h.tables.Taxonomy.Lookup(c.Params("id"))
	if def == nil {
		return response.NotFound(c, "unknown intent")
	}
	return response.OK(c, def)
}

// ListCategories returns the distinct category names.
// GET /api/taxonomy/categories
func (h *TaxonomyHandler) ListCategories(c *fiber.Ctx) error {
	categories := h.tables.Taxonomy.Categories()
	return response.OKWithMeta(c, categories, &response.Meta{Total: len(categories)})
}

// ListRules returns every action rule.
// GET /api/taxonomy/rules
func (h *TaxonomyHandler) ListRules(c *fiber.Ctx) error {
	rules := h.tables.Rules.Rules()
	return response.OKWithMeta(c, rules, &response.Meta{Total: len(rules)})
}
