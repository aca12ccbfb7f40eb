// Package classification implements the email intent triage pipeline.
//
// The pipeline runs in fixed stages:
//
//	Intent scoring     → weighted trigger matches + category boosts
//	Entity extraction  → deadlines, prices, tracking numbers, invites, ...
//	Disambiguation     → entity/sender corrections on the score map
//	Action suggestion  → precondition-gated rule table lookup
//	Mail/Ads split     → signal-voting promotional classifier
//	Priority/Urgency   → first-match cascade
//
// Every stage is a pure function of its inputs and the injected taxonomy
// and rule tables; identical input yields identical output.
package classification

import (
	"strings"

	"triage_server/core/domain"
	"triage_server/core/taxonomy"
)

// Scoring weights and thresholds.
const (
	weightSubject   = 3.0
	weightSnippet   = 2.0
	weightBody      = 1.0
	negativePenalty = 1.5

	// maxIntentScore is the empirical normalization ceiling for the
	// additive point total. Confidence is a ranking signal relative to
	// it, not a calibrated probability.
	maxIntentScore = 12.0

	// minConfidence is the floor below which the winner is discarded
	// and the fallback heuristic takes over.
	minConfidence = 0.2

	// fallbackConfidence is the fixed confidence reported whenever the
	// fallback heuristic resolves the intent.
	fallbackConfidence = 0.3
)

// IntentResolution is the resolved outcome of intent scoring.
type IntentResolution struct {
	Intent     string
	Confidence float64
	Fallback   bool
}

// IntentClassifier scores every taxonomy intent against an email.
type IntentClassifier struct {
	tax    *taxonomy.Taxonomy
	boosts *BoostRegistry
}

// NewIntentClassifier creates an intent classifier over the injected
// taxonomy, using the default category boost registry.
func NewIntentClassifier(tax *taxonomy.Taxonomy) *IntentClassifier {
	return &IntentClassifier{tax: tax, boosts: DefaultBoostRegistry()}
}

// Score computes the full intent score map for an email.
func (c *IntentClassifier) Score(email *domain.EmailMessage) map[string]float64 {
	fields := newMatchFields(email)
	bctx := newBoostContext(email, fields)

	scores := make(map[string]float64, len(c.tax.Intents()))
	for _, def := range c.tax.Intents() {
		score := 0.0
		for _, kw := range def.Triggers {
			score += fields.weightedCount(kw)
		}
		for _, kw := range def.Negative {
			score -= negativePenalty * fields.weightedCount(kw)
		}
		score += c.boosts.Boost(def.Category, bctx)
		scores[def.ID] = score
	}
	return scores
}

// Resolve picks the winning intent from a score map. The maximum score
// wins; an exact tie prefers any intent over the generic fallback. When
// the winner's confidence falls below the minimum threshold the result
// is overridden by a secondary heuristic and reported at the fixed
// fallback confidence.
func (c *IntentClassifier) Resolve(scores map[string]float64, email *domain.EmailMessage) IntentResolution {
	winner := c.tax.GenericIntent
	best := scores[winner]
	// Iterate in taxonomy declaration order so ties resolve
	// deterministically.
	for _, def := range c.tax.Intents() {
		if def.ID == c.tax.GenericIntent {
			continue
		}
		s := scores[def.ID]
		if s > best || (s == best && winner == c.tax.GenericIntent) {
			winner = def.ID
			best = s
		}
	}

	confidence := best / maxIntentScore
	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < minConfidence {
		return IntentResolution{
			Intent:     c.inferLowConfidenceIntent(email),
			Confidence: fallbackConfidence,
			Fallback:   true,
		}
	}
	return IntentResolution{Intent: winner, Confidence: confidence}
}

// inferLowConfidenceIntent is the secondary heuristic used when no
// intent clears the threshold. It detects newsletter-shaped mail and
// otherwise settles on the generic intent. This path never fails.
func (c *IntentClassifier) inferLowConfidenceIntent(email *domain.EmailMessage) string {
	combined := strings.ToLower(email.Subject + " " + email.Body)
	newsletterMarkers := []string{
		"unsubscribe",
		"view in browser",
		"email preferences",
		"you are receiving this",
		"manage your subscription",
	}
	for _, marker := range newsletterMarkers {
		if strings.Contains(combined, marker) {
			if c.tax.Lookup("marketing.newsletter") != nil {
				return "marketing.newsletter"
			}
			break
		}
	}
	return c.tax.GenericIntent
}

// matchFields holds the case-folded text fields used for keyword
// matching. Entity extraction works on the original text instead.
type matchFields struct {
	subject string
	snippet string
	body    string
}

func newMatchFields(email *domain.EmailMessage) *matchFields {
	return &matchFields{
		subject: strings.ToLower(email.Subject),
		snippet: strings.ToLower(email.EffectiveSnippet()),
		body:    strings.ToLower(email.Body),
	}
}

// weightedCount returns the weighted occurrence count of a keyword
// across subject, snippet and body.
func (f *matchFields) weightedCount(kw string) float64 {
	if kw == "" {
		return 0
	}
	total := weightSubject * float64(strings.Count(f.subject, kw))
	total += weightSnippet * float64(strings.Count(f.snippet, kw))
	total += weightBody * float64(strings.Count(f.body, kw))
	return total
}
