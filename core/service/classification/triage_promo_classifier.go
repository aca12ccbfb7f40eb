package classification

import (
	"strings"

	"triage_server/core/domain"
)

// Promotional keyword vocabulary. Two distinct matches in the subject
// or snippet classify the mail as promotional.
var promoKeywords = []string{
	"sale", "% off", "discount", "deal", "offer", "coupon",
	"promo", "clearance", "free shipping", "limited time",
	"today only", "last chance", "exclusive", "save", "bogo",
	"don't miss", "ends soon", "hurry", "best price", "new arrivals",
}

// Strong phrases classify promotional on a single match.
var strongPromoPhrases = []string{
	"flash sale", "shop now", "buy now", "unbeatable price",
	"doorbuster", "lowest price of the season", "act now",
}

var unsubscribeMarkers = []string{
	"unsubscribe", "opt out", "opt-out", "email preferences",
	"manage your subscription",
}

// PromoClassifier is a signal-voting boolean classifier separating
// promotional mail ("ads") from everything else ("mail"). Signals are
// evaluated in a fixed order and short-circuit on the first hit.
type PromoClassifier struct{}

// NewPromoClassifier creates the classifier.
func NewPromoClassifier() *PromoClassifier {
	return &PromoClassifier{}
}

// IsPromotional reports whether any of the six signals fires:
// unsubscribe header, unsubscribe keyword in the body, two distinct
// promotional keywords, one strong promotional phrase, a marketing
// sender local-part, or a marketing/promotion intent.
func (c *PromoClassifier) IsPromotional(email *domain.EmailMessage, intent string) bool {
	if email.Header("List-Unsubscribe") != "" {
		return true
	}

	body := strings.ToLower(email.Body + "\n" + email.StructuredMarkup)
	for _, m := range unsubscribeMarkers {
		if strings.Contains(body, m) {
			return true
		}
	}

	headline := strings.ToLower(email.Subject + "\n" + email.EffectiveSnippet())
	distinct := 0
	for _, kw := range promoKeywords {
		if strings.Contains(headline, kw) {
			distinct++
			if distinct >= 2 {
				return true
			}
		}
	}

	for _, p := range strongPromoPhrases {
		if strings.Contains(headline, p) {
			return true
		}
	}

	if matchesLocal(email.SenderLocalPart(), marketingLocalParts) {
		return true
	}

	if strings.HasPrefix(intent, "marketing.") || strings.HasPrefix(intent, "ecommerce.promotion") {
		return true
	}

	return false
}

// Category maps the boolean onto the two-valued category.
func (c *PromoClassifier) Category(email *domain.EmailMessage, intent string) domain.Category {
	if c.IsPromotional(email, intent) {
		return domain.CategoryAds
	}
	return domain.CategoryMail
}
