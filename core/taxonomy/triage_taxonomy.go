// Package taxonomy holds the injected classification configuration: the
// intent taxonomy and the action rule table. Both are versioned data
// documents, loaded once at startup and immutable afterwards, so
// concurrent readers need no locking.
package taxonomy

import (
	"fmt"
	"strings"
)

// IntentDef defines one intent in the taxonomy: its category, the
// keywords that vote for it, and the keywords that vote against it.
type IntentDef struct {
	ID       string   `yaml:"id" json:"id"`
	Category string   `yaml:"category" json:"category"`
	Triggers []string `yaml:"triggers" json:"triggers"`
	Negative []string `yaml:"negative,omitempty" json:"negative,omitempty"`
}

// Taxonomy is the read-only intent table.
type Taxonomy struct {
	Version       int
	GenericIntent string

	intents []IntentDef
	byID    map[string]*IntentDef
}

type taxonomyDoc struct {
	Version       int         `yaml:"version"`
	GenericIntent string      `yaml:"generic_intent"`
	Intents       []IntentDef `yaml:"intents"`
}

// newTaxonomy builds and validates a Taxonomy from a parsed document.
func newTaxonomy(doc *taxonomyDoc) (*Taxonomy, error) {
	if doc.GenericIntent == "" {
		return nil, fmt.Errorf("taxonomy: generic_intent is required")
	}
	t := &Taxonomy{
		Version:       doc.Version,
		GenericIntent: doc.GenericIntent,
		intents:       doc.Intents,
		byID:          make(map[string]*IntentDef, len(doc.Intents)),
	}
	for i := range t.intents {
		def := &t.intents[i]
		if def.ID == "" {
			return nil, fmt.Errorf("taxonomy: intent %d has empty id", i)
		}
		if def.Category == "" {
			return nil, fmt.Errorf("taxonomy: intent %q has empty category", def.ID)
		}
		if _, dup := t.byID[def.ID]; dup {
			return nil, fmt.Errorf("taxonomy: duplicate intent id %q", def.ID)
		}
		// Triggers are matched case-folded; normalize once at load.
		for j, kw := range def.Triggers {
			def.Triggers[j] = strings.ToLower(strings.TrimSpace(kw))
		}
		for j, kw := range def.Negative {
			def.Negative[j] = strings.ToLower(strings.TrimSpace(kw))
		}
		t.byID[def.ID] = def
	}
	if _, ok := t.byID[t.GenericIntent]; !ok {
		return nil, fmt.Errorf("taxonomy: generic_intent %q not defined", t.GenericIntent)
	}
	return t, nil
}

// Intents returns all intent definitions in declaration order.
func (t *Taxonomy) Intents() []IntentDef {
	return t.intents
}

// Lookup returns the intent definition for id, or nil.
func (t *Taxonomy) Lookup(id string) *IntentDef {
	return t.byID[id]
}

// CategoryOf returns the category for an intent id, or "" if unknown.
func (t *Taxonomy) CategoryOf(id string) string {
	if def := t.byID[id]; def != nil {
		return def.Category
	}
	return ""
}

// Categories returns the distinct categories in first-seen order.
func (t *Taxonomy) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for i := range t.intents {
		cat := t.intents[i].Category
		if !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	return out
}
