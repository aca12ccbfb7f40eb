package classification

import (
	"regexp"
	"strings"

	"triage_server/core/domain"
)

// Disambiguation bonuses. These are deliberately large relative to the
// per-keyword weights: entity evidence is stronger than shared surface
// vocabulary, and a correction may flip a near-tie.
const (
	boostInvoiceNumber  = 3.0
	penaltyReceiptClash = 2.0
	boostOrderNumber    = 2.5
	boostDiscountPromo  = 2.0
	boostTrackingShape  = 3.0
	boostSenderLocal    = 1.5
)

var dueLanguageRe = regexp.MustCompile(`(?i)\b(?:due|pay by|payment due|amount due|balance due)\b`)

// billingLocalParts and marketingLocalParts are sender local-part
// conventions that hint at the whole category.
var (
	billingLocalParts   = []string{"billing", "invoice", "invoices", "accounts", "payments", "ar"}
	marketingLocalParts = []string{"promo", "promotions", "offers", "deals", "marketing", "newsletter", "news"}
)

// Disambiguator applies targeted score corrections for intents that
// share surface vocabulary. It must run after initial scoring and
// strictly before winner selection: its additive corrections may push a
// second-place intent into first.
type Disambiguator struct{}

// NewDisambiguator creates the disambiguator.
func NewDisambiguator() *Disambiguator {
	return &Disambiguator{}
}

// Adjust returns a corrected copy of the score map. The input map is
// never mutated.
func (d *Disambiguator) Adjust(scores map[string]float64, email *domain.EmailMessage) map[string]float64 {
	adjusted := make(map[string]float64, len(scores))
	for k, v := range scores {
		adjusted[k] = v
	}

	text := email.Subject + "\n" + email.Body
	folded := strings.ToLower(text)
	local := email.SenderLocalPart()

	// Invoice number + due-date language: billing invoice, not a
	// purchase receipt.
	if invoiceNumberRe.MatchString(text) {
		bump(adjusted, "billing.invoice.due", boostInvoiceNumber)
		if dueLanguageRe.MatchString(text) {
			bump(adjusted, "ecommerce.receipt", -penaltyReceiptClash)
		}
	}

	// Order numbers point at e-commerce orders.
	if orderNumberRe.MatchString(text) {
		bump(adjusted, "ecommerce.order.confirmation", boostOrderNumber)
	}

	// Discount percentages and explicit promo-code language are
	// marketing signals.
	if discountPctRe.MatchString(folded) || promoCodeRe.MatchString(text) {
		bump(adjusted, "marketing.promotion", boostDiscountPromo)
	}

	// A carrier tracking shape is near-conclusive for shipping.
	if trackingShapeRe.MatchString(text) {
		bump(adjusted, "ecommerce.shipping.notification", boostTrackingShape)
	}

	// Sender local-part conventions add category-wide bonuses.
	if matchesLocal(local, billingLocalParts) {
		bumpPrefix(adjusted, "billing.", boostSenderLocal)
	}
	if matchesLocal(local, marketingLocalParts) {
		bumpPrefix(adjusted, "marketing.", boostSenderLocal)
	}

	return adjusted
}

func bump(scores map[string]float64, intent string, delta float64) {
	if _, ok := scores[intent]; ok {
		scores[intent] += delta
	}
}

func bumpPrefix(scores map[string]float64, prefix string, delta float64) {
	for id := range scores {
		if strings.HasPrefix(id, prefix) {
			scores[id] += delta
		}
	}
}

func matchesLocal(local string, conventions []string) bool {
	for _, c := range conventions {
		if local == c || strings.HasPrefix(local, c+".") || strings.HasPrefix(local, c+"-") {
			return true
		}
	}
	return false
}
