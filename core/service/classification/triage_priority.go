package classification

import (
	"strings"

	"triage_server/core/domain"
	"triage_server/core/taxonomy"
)

// Urgent vocabulary matched against subject and snippet. Kept short on
// purpose: broad words like "important" misfire on marketing copy.
var urgentKeywords = []string{
	"urgent", "asap", "immediately", "action required",
	"expires today", "due today", "final notice", "last day",
	"respond by", "time sensitive",
}

// PriorityAssignor derives a priority tier and urgency flag from the
// resolved intent, category, and entities. Priority is a first-match
// cascade: an urgent deadline outranks everything, including the
// ads-goes-low rule, so a promotional email with a same-day deadline is
// still critical.
type PriorityAssignor struct {
	rules *taxonomy.RuleTable
}

// NewPriorityAssignor creates the assignor over the given rule table.
func NewPriorityAssignor(rules *taxonomy.RuleTable) *PriorityAssignor {
	return &PriorityAssignor{rules: rules}
}

// Assign resolves the priority tier for a classified email.
func (p *PriorityAssignor) Assign(category domain.Category, intent string, entities *domain.ExtractedEntities, actions []domain.SuggestedAction) domain.PriorityTier {
	if entities != nil && entities.Deadline != nil && entities.Deadline.IsUrgent {
		return domain.PriorityCritical
	}
	if p.rules.IsCritical(intent) {
		return domain.PriorityCritical
	}
	if p.rules.IsHighPriority(intent) {
		return domain.PriorityHigh
	}
	if category == domain.CategoryAds {
		return domain.PriorityLow
	}
	for _, a := range actions {
		if a.IsPrimary && a.Priority > 0 && a.Priority <= 2 {
			return domain.PriorityHigh
		}
	}
	return domain.PriorityMedium
}

// Urgent reports whether the email is urgent: an urgent keyword in the
// subject or snippet, or an entity-level urgent deadline.
func (p *PriorityAssignor) Urgent(email *domain.EmailMessage, entities *domain.ExtractedEntities) bool {
	if entities != nil && entities.Deadline != nil && entities.Deadline.IsUrgent {
		return true
	}
	headline := strings.ToLower(email.Subject + "\n" + email.EffectiveSnippet())
	for _, kw := range urgentKeywords {
		if strings.Contains(headline, kw) {
			return true
		}
	}
	return false
}
