package classification

import (
	"triage_server/core/domain"
	"triage_server/core/taxonomy"
)

// RulesEngine maps a resolved intent plus extracted entities to an
// ordered list of suggested actions. Rules are all-or-nothing: every
// required entity must be present or the rule does not fire.
type RulesEngine struct {
	rules *taxonomy.RuleTable
}

// NewRulesEngine creates an engine over the given rule table.
func NewRulesEngine(rules *taxonomy.RuleTable) *RulesEngine {
	return &RulesEngine{rules: rules}
}

// Suggest returns the suggested actions for the intent, or an empty
// slice when no rule exists or a required entity is missing. The first
// action, when any, is the primary action.
func (e *RulesEngine) Suggest(intent string, entities *domain.ExtractedEntities) []domain.SuggestedAction {
	rule := e.rules.RuleFor(intent)
	if rule == nil {
		return nil
	}
	for _, key := range rule.RequiredEntities {
		if entities == nil || !entities.Has(key) {
			return nil
		}
	}

	actions := make([]domain.SuggestedAction, 0, len(rule.Actions))
	for i, tmpl := range rule.Actions {
		actions = append(actions, domain.SuggestedAction{
			ActionID:    tmpl.ActionID,
			DisplayName: tmpl.DisplayName,
			ActionType:  domain.ActionType(tmpl.ActionType),
			IsPrimary:   i == 0,
			Priority:    tmpl.Priority,
		})
	}
	return actions
}

// CallToAction derives the highest-priority-action label from the
// primary action's display name. Empty when there is no primary action.
func CallToAction(actions []domain.SuggestedAction) string {
	for _, a := range actions {
		if a.IsPrimary {
			return "Swipe Right: " + a.DisplayName
		}
	}
	return ""
}
