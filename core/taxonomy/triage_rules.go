package taxonomy

import (
	"fmt"

	"triage_server/core/domain"
)

// ActionTemplate is one declared action in a rule, in rank order.
type ActionTemplate struct {
	ActionID    string `yaml:"action_id" json:"action_id"`
	DisplayName string `yaml:"display_name" json:"display_name"`
	ActionType  string `yaml:"action_type" json:"action_type"`
	Priority    int    `yaml:"priority" json:"priority"`
}

// ActionRule maps an intent to its suggested actions, gated by the
// entity families that must all be present for the rule to fire.
type ActionRule struct {
	Intent           string           `yaml:"intent" json:"intent"`
	RequiredEntities []string         `yaml:"required_entities,omitempty" json:"required_entities,omitempty"`
	Actions          []ActionTemplate `yaml:"actions" json:"actions"`
}

// RuleTable is the read-only action rule configuration, plus the
// priority allow-lists consumed by the priority assignor.
type RuleTable struct {
	Version int

	rules    []ActionRule
	byIntent map[string]*ActionRule

	criticalIntents map[string]bool
	highIntents     map[string]bool
}

type ruleDoc struct {
	Version             int          `yaml:"version"`
	CriticalIntents     []string     `yaml:"critical_intents"`
	HighPriorityIntents []string     `yaml:"high_priority_intents"`
	Rules               []ActionRule `yaml:"rules"`
}

var validActionTypes = map[string]bool{
	string(domain.ActionTypeInApp):     true,
	string(domain.ActionTypeGoTo):      true,
	string(domain.ActionTypeNativeAPI): true,
}

// newRuleTable builds and validates a RuleTable against the taxonomy.
func newRuleTable(doc *ruleDoc, tax *Taxonomy) (*RuleTable, error) {
	rt := &RuleTable{
		Version:         doc.Version,
		rules:           doc.Rules,
		byIntent:        make(map[string]*ActionRule, len(doc.Rules)),
		criticalIntents: make(map[string]bool, len(doc.CriticalIntents)),
		highIntents:     make(map[string]bool, len(doc.HighPriorityIntents)),
	}
	for i := range rt.rules {
		rule := &rt.rules[i]
		if tax.Lookup(rule.Intent) == nil {
			return nil, fmt.Errorf("rules: rule %d references unknown intent %q", i, rule.Intent)
		}
		if _, dup := rt.byIntent[rule.Intent]; dup {
			return nil, fmt.Errorf("rules: duplicate rule for intent %q", rule.Intent)
		}
		if len(rule.Actions) == 0 {
			return nil, fmt.Errorf("rules: rule for %q has no actions", rule.Intent)
		}
		for _, a := range rule.Actions {
			if a.ActionID == "" || a.DisplayName == "" {
				return nil, fmt.Errorf("rules: rule for %q has an incomplete action", rule.Intent)
			}
			if !validActionTypes[a.ActionType] {
				return nil, fmt.Errorf("rules: rule for %q: invalid action type %q", rule.Intent, a.ActionType)
			}
		}
		rt.byIntent[rule.Intent] = rule
	}
	for _, id := range doc.CriticalIntents {
		if tax.Lookup(id) == nil {
			return nil, fmt.Errorf("rules: critical intent %q not in taxonomy", id)
		}
		rt.criticalIntents[id] = true
	}
	for _, id := range doc.HighPriorityIntents {
		if tax.Lookup(id) == nil {
			return nil, fmt.Errorf("rules: high-priority intent %q not in taxonomy", id)
		}
		rt.highIntents[id] = true
	}
	return rt, nil
}

// RuleFor returns the action rule for an intent, or nil when the intent
// has no rule (which yields an empty action list downstream).
func (rt *RuleTable) RuleFor(intent string) *ActionRule {
	return rt.byIntent[intent]
}

// Rules returns all rules in declaration order.
func (rt *RuleTable) Rules() []ActionRule {
	return rt.rules
}

// IsCritical reports whether the intent is in the designated critical set.
func (rt *RuleTable) IsCritical(intent string) bool {
	return rt.criticalIntents[intent]
}

// IsHighPriority reports whether the intent is in the high-priority
// allow-list.
func (rt *RuleTable) IsHighPriority(intent string) bool {
	return rt.highIntents[intent]
}
