package classification

import (
	"regexp"
	"strings"

	"triage_server/core/domain"
)

// BoostContext carries the pre-folded email views a boost function
// consults. Building it once per classification keeps the per-category
// functions cheap.
type BoostContext struct {
	Email        *domain.EmailMessage
	Subject      string // lowercased
	Combined     string // lowercased subject + snippet + body
	SenderDomain string
	SenderLocal  string
}

func newBoostContext(email *domain.EmailMessage, fields *matchFields) *BoostContext {
	return &BoostContext{
		Email:        email,
		Subject:      fields.subject,
		Combined:     fields.subject + " " + fields.snippet + " " + fields.body,
		SenderDomain: email.SenderDomain(),
		SenderLocal:  email.SenderLocalPart(),
	}
}

// BoostFunc returns an additive score bonus for one taxonomy category.
type BoostFunc func(ctx *BoostContext) float64

// BoostRegistry maps taxonomy categories to their boost functions, so
// each category's heuristics can be tested and extended in isolation.
type BoostRegistry struct {
	byCategory map[string]BoostFunc
}

// Register installs or replaces the boost function for a category.
func (r *BoostRegistry) Register(category string, fn BoostFunc) {
	r.byCategory[category] = fn
}

// Boost returns the bonus for a category, or 0 when none is registered.
func (r *BoostRegistry) Boost(category string, ctx *BoostContext) float64 {
	if fn, ok := r.byCategory[category]; ok {
		return fn(ctx)
	}
	return 0
}

// Structural patterns shared by boost functions.
var (
	orderNumberRe    = regexp.MustCompile(`(?i)order\s*(?:#|number|no\.?)\s*:?\s*[A-Z0-9-]{4,}`)
	invoiceNumberRe  = regexp.MustCompile(`(?i)(?:invoice\s*#|INV-)\s*[A-Z0-9-]+`)
	trackingShapeRe  = regexp.MustCompile(`\b(1Z[0-9A-Z]{16}|\d{12}|\d{15}|9\d{15,21})\b`)
	meetingURLRe     = regexp.MustCompile(`https?://[^\s]*(?:zoom\.us|meet\.google\.com|teams\.microsoft\.com|webex\.com)[^\s]*`)
	dateTimeRe       = regexp.MustCompile(`(?i)\b(?:mon|tues?|wed(?:nes)?|thu(?:rs)?|fri|sat(?:ur)?|sun)day\b|\b\d{1,2}:\d{2}\s*(?:am|pm)\b|\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}\b`)
	discountPctRe    = regexp.MustCompile(`\b\d{1,2}%\s*off\b`)
	verifyCodeRe     = regexp.MustCompile(`\b\d{6}\b`)
	ticketNumberRe   = regexp.MustCompile(`(?i)(?:ticket|case)\s*#?\s*\d{3,}`)
	currencyAmountRe = regexp.MustCompile(`\$\d{1,3}(?:,\d{3})*(?:\.\d{2})?`)
)

func domainContainsAny(domain string, fragments ...string) bool {
	for _, f := range fragments {
		if strings.Contains(domain, f) {
			return true
		}
	}
	return false
}

func localContainsAny(local string, fragments ...string) bool {
	for _, f := range fragments {
		if strings.Contains(local, f) {
			return true
		}
	}
	return false
}

// DefaultBoostRegistry builds the registry with one boost function per
// taxonomy category.
func DefaultBoostRegistry() *BoostRegistry {
	r := &BoostRegistry{byCategory: make(map[string]BoostFunc)}

	r.Register("e-commerce", func(ctx *BoostContext) float64 {
		bonus := 0.0
		if domainContainsAny(ctx.SenderDomain, "amazon", "ebay", "etsy", "shopify", "shop", "store", "ups.com", "fedex", "usps", "dhl") {
			bonus += 2.0
		}
		if orderNumberRe.MatchString(ctx.Combined) {
			bonus += 2.0
		}
		if trackingShapeRe.MatchString(ctx.Combined) {
			bonus += 2.0
		}
		return bonus
	})

	r.Register("billing", func(ctx *BoostContext) float64 {
		bonus := 0.0
		if invoiceNumberRe.MatchString(ctx.Combined) {
			bonus += 2.5
		}
		if localContainsAny(ctx.SenderLocal, "billing", "invoice", "accounts", "payments") {
			bonus += 2.0
		}
		if strings.Contains(ctx.Combined, "due") && currencyAmountRe.MatchString(ctx.Combined) {
			bonus += 1.5
		}
		return bonus
	})

	r.Register("event", func(ctx *BoostContext) float64 {
		bonus := 0.0
		if meetingURLRe.MatchString(ctx.Combined) {
			bonus += 3.0
		}
		if dateTimeRe.MatchString(ctx.Combined) {
			bonus += 1.0
		}
		if domainContainsAny(ctx.SenderDomain, "calendar", "calendly", "eventbrite") {
			bonus += 2.0
		}
		return bonus
	})

	r.Register("account", func(ctx *BoostContext) float64 {
		bonus := 0.0
		if localContainsAny(ctx.SenderLocal, "security", "account", "no-reply", "noreply") {
			bonus += 1.5
		}
		if verifyCodeRe.MatchString(ctx.Subject) {
			bonus += 1.5
		}
		return bonus
	})

	r.Register("education", func(ctx *BoostContext) float64 {
		bonus := 0.0
		if strings.HasSuffix(ctx.SenderDomain, ".edu") || domainContainsAny(ctx.SenderDomain, "school", "k12", "district") {
			bonus += 2.5
		}
		if strings.Contains(ctx.Combined, "student") || strings.Contains(ctx.Combined, "teacher") {
			bonus += 1.0
		}
		return bonus
	})

	r.Register("youth", func(ctx *BoostContext) float64 {
		bonus := 0.0
		if localContainsAny(ctx.SenderLocal, "coach", "troop", "league") {
			bonus += 2.0
		}
		if strings.Contains(ctx.Combined, "practice") || strings.Contains(ctx.Combined, "season") {
			bonus += 1.0
		}
		return bonus
	})

	r.Register("travel", func(ctx *BoostContext) float64 {
		bonus := 0.0
		if domainContainsAny(ctx.SenderDomain, "airline", "delta", "united", "aa.com", "southwest", "booking", "expedia", "airbnb", "marriott", "hilton") {
			bonus += 2.5
		}
		if strings.Contains(ctx.Combined, "confirmation code") || strings.Contains(ctx.Combined, "flight") {
			bonus += 1.5
		}
		return bonus
	})

	r.Register("feedback", func(ctx *BoostContext) float64 {
		if domainContainsAny(ctx.SenderDomain, "surveymonkey", "typeform", "qualtrics") {
			return 2.5
		}
		return 0
	})

	r.Register("marketing", func(ctx *BoostContext) float64 {
		bonus := 0.0
		if discountPctRe.MatchString(ctx.Combined) {
			bonus += 2.0
		}
		if localContainsAny(ctx.SenderLocal, "promo", "offers", "deals", "marketing", "news", "newsletter") {
			bonus += 1.5
		}
		return bonus
	})

	r.Register("support", func(ctx *BoostContext) float64 {
		bonus := 0.0
		if ticketNumberRe.MatchString(ctx.Combined) {
			bonus += 2.5
		}
		if localContainsAny(ctx.SenderLocal, "support", "help", "care") {
			bonus += 1.5
		}
		return bonus
	})

	r.Register("shopping", func(ctx *BoostContext) float64 {
		if currencyAmountRe.MatchString(ctx.Combined) {
			return 1.0
		}
		return 0
	})

	r.Register("project", func(ctx *BoostContext) float64 {
		bonus := 0.0
		if domainContainsAny(ctx.SenderDomain, "github", "gitlab", "atlassian", "linear.app", "asana", "pagerduty", "opsgenie") {
			bonus += 2.5
		}
		if strings.Contains(ctx.Subject, "[") && strings.Contains(ctx.Subject, "]") {
			bonus += 0.5
		}
		return bonus
	})

	r.Register("healthcare", func(ctx *BoostContext) float64 {
		if domainContainsAny(ctx.SenderDomain, "health", "clinic", "medical", "pharmacy", "cvs", "walgreens") {
			return 2.5
		}
		return 0
	})

	r.Register("dining", func(ctx *BoostContext) float64 {
		if domainContainsAny(ctx.SenderDomain, "opentable", "resy", "yelp") {
			return 2.5
		}
		return 0
	})

	r.Register("delivery", func(ctx *BoostContext) float64 {
		if domainContainsAny(ctx.SenderDomain, "doordash", "ubereats", "grubhub", "instacart", "deliveroo") {
			return 2.5
		}
		return 0
	})

	r.Register("civic", func(ctx *BoostContext) float64 {
		if strings.HasSuffix(ctx.SenderDomain, ".gov") {
			return 3.0
		}
		return 0
	})

	r.Register("content", func(ctx *BoostContext) float64 {
		if domainContainsAny(ctx.SenderDomain, "substack", "medium", "ghost.io", "beehiiv") {
			return 2.5
		}
		return 0
	})

	r.Register("career", func(ctx *BoostContext) float64 {
		if domainContainsAny(ctx.SenderDomain, "linkedin", "indeed", "greenhouse", "lever.co", "glassdoor") {
			return 2.5
		}
		return 0
	})

	// generic: no boost, the fallback should never win on bonuses.

	return r
}
