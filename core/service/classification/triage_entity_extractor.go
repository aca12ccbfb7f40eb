package classification

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"triage_server/core/domain"
)

// EntityExtractor pulls structured values out of raw email text. All
// pattern families run on the original-case text so surfaced values keep
// proper nouns intact; only keyword checks fold case.
type EntityExtractor struct{}

// NewEntityExtractor creates the extractor. All pattern tables are
// package-level and immutable.
func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{}
}

// Extract runs every entity family over the email. Absent entities are
// nil or empty lists, never errors.
func (x *EntityExtractor) Extract(email *domain.EmailMessage) *domain.ExtractedEntities {
	text := email.Subject + "\n" + email.Body
	return &domain.ExtractedEntities{
		Deadline:        extractDeadline(text),
		Prices:          extractPrices(text),
		TrackingNumbers: extractTrackingNumbers(text),
		PromoCodes:      extractPromoCodes(text),
		Companies:       extractCompanies(text),
		Stores:          extractStores(text),
		Children:        extractChildren(text),
		Accounts:        extractAccounts(text),
		CalendarInvite:  extractCalendarInvite(email),
	}
}

// =============================================================================
// Deadlines
// =============================================================================

// Absolute-urgent phrases: any match is immediately urgent.
var urgentPhraseRe = regexp.MustCompile(`(?i)\b(due today|expires today|today only|last chance|ending soon)\b`)

// Relative deadlines: "expires in 3 days", "ends in 2 hours", "4 hours left".
var (
	relativeDeadlineRe = regexp.MustCompile(`(?i)\b(?:expires?|ends?|closing)\s+in\s+(\d+)\s+(hour|day|week)s?\b`)
	timeLeftRe         = regexp.MustCompile(`(?i)\b(\d+)\s+(hour|day)s?\s+left\b`)
)

// Absolute dates: captured but never urgent on their own.
var absoluteDeadlineRe = regexp.MustCompile(`(?i)\b(?:due by|due on|deadline:?)\s+([A-Za-z0-9,/ .-]{3,30}?)(?:[.!\n]|$)`)

// extractDeadline applies the ordered deadline pattern list; the first
// matching pattern wins and later ones are not evaluated.
func extractDeadline(text string) *domain.Deadline {
	if m := urgentPhraseRe.FindString(text); m != "" {
		return &domain.Deadline{Text: m, IsUrgent: true}
	}
	if m := relativeDeadlineRe.FindStringSubmatch(text); m != nil {
		return relativeDeadline(m[0], m[1], m[2])
	}
	if m := timeLeftRe.FindStringSubmatch(text); m != nil {
		return relativeDeadline(m[0], m[1], m[2])
	}
	if m := absoluteDeadlineRe.FindStringSubmatch(text); m != nil {
		// The full match may include its terminator punctuation.
		phrase := strings.TrimSpace(strings.TrimRight(m[0], ".!\n"))
		return &domain.Deadline{Text: phrase, Unit: "date"}
	}
	return nil
}

func relativeDeadline(match, value, unit string) *domain.Deadline {
	n, _ := strconv.ParseFloat(value, 64)
	unit = strings.ToLower(unit)
	urgent := (unit == "hour" && n <= 4) || (unit == "day" && n <= 1)
	return &domain.Deadline{Text: match, Value: n, Unit: unit, IsUrgent: urgent}
}

// =============================================================================
// Prices
// =============================================================================

var (
	labeledTotalRe = regexp.MustCompile(`(?i)\b(?:grand total|total|amount|payment)\s*:?\s*\$(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`)
	bareAmountRe   = regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`)
)

var saleWords = []string{"sale", "discount", "save", "off", "was", "now"}

// extractPrices resolves the price reading in priority order: labeled
// total, then sale pair, then largest bare amount, then single amount.
func extractPrices(text string) *domain.PriceInfo {
	if m := labeledTotalRe.FindStringSubmatch(text); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			return &domain.PriceInfo{Original: v}
		}
	}

	var amounts []float64
	for _, m := range bareAmountRe.FindAllStringSubmatch(text, -1) {
		if v, ok := parseAmount(m[1]); ok {
			amounts = append(amounts, v)
		}
	}
	switch {
	case len(amounts) == 0:
		return nil
	case len(amounts) == 1:
		return &domain.PriceInfo{Original: amounts[0]}
	}

	max, min := amounts[0], amounts[0]
	for _, v := range amounts[1:] {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}

	if hasSaleWord(text) && max > min {
		discount := int(math.Round((max - min) / max * 100))
		return &domain.PriceInfo{
			Original:        max,
			Sale:            min,
			DiscountPercent: discount,
			Savings:         math.Round((max-min)*100) / 100,
		}
	}
	return &domain.PriceInfo{Original: max}
}

func hasSaleWord(text string) bool {
	folded := strings.ToLower(text)
	for _, w := range saleWords {
		if containsWord(folded, w) {
			return true
		}
	}
	return false
}

// containsWord reports a whole-word match, so "off" does not match
// "office" and "was" does not match "washington".
func containsWord(folded, word string) bool {
	idx := 0
	for {
		i := strings.Index(folded[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(folded[start-1])
		afterOK := end == len(folded) || !isWordChar(folded[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// =============================================================================
// Tracking numbers
// =============================================================================

// Carrier shapes, most specific first: UPS 1Z..., USPS 20-22 digit,
// FedEx 12/15 digit.
var trackingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b1Z[0-9A-Z]{16}\b`),
	regexp.MustCompile(`\b9[2345]\d{18,20}\b`),
	regexp.MustCompile(`\b\d{15}\b`),
	regexp.MustCompile(`\b\d{12}\b`),
}

func extractTrackingNumbers(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, re := range trackingPatterns {
		for _, m := range re.FindAllString(text, -1) {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

// =============================================================================
// Promo codes
// =============================================================================

var promoCodeRe = regexp.MustCompile(`(?i)\b(?:use code|promo code|coupon code|discount code|with code|code)\s*:?\s*([A-Z0-9]{4,15})\b`)

func extractPromoCodes(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range promoCodeRe.FindAllStringSubmatch(text, -1) {
		code := m[1]
		// Values keep original case; codes are conventionally upper.
		if code != strings.ToUpper(code) {
			continue
		}
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	return out
}

// =============================================================================
// Companies and stores
// =============================================================================

var companyRe = regexp.MustCompile(`(?:from|at|by)\s+([A-Z][A-Za-z&'.-]*(?:\s+[A-Z][A-Za-z&'.-]*)?)`)

func extractCompanies(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range companyRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimRight(m[1], ".-")
		if len(name) < 2 || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// knownStores maps lowercase markers to their surfaced names.
var knownStores = []struct{ marker, name string }{
	{"amazon", "Amazon"},
	{"target", "Target"},
	{"walmart", "Walmart"},
	{"best buy", "Best Buy"},
	{"costco", "Costco"},
	{"ikea", "IKEA"},
	{"etsy", "Etsy"},
	{"ebay", "eBay"},
	{"home depot", "Home Depot"},
}

func extractStores(text string) []string {
	folded := strings.ToLower(text)
	var out []string
	for _, s := range knownStores {
		if strings.Contains(folded, s.marker) {
			out = append(out, s.name)
		}
	}
	return out
}

// =============================================================================
// Children and accounts
// =============================================================================

var childPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:your (?:son|daughter|child))\s+([A-Z][a-z]+)`),
	regexp.MustCompile(`([A-Z][a-z]+)'s\s+(?:permission|field trip|practice|recital|report card|homework|class)`),
}

func extractChildren(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, re := range childPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

var knownAccounts = []struct{ marker, name string }{
	{"checking account", "checking"},
	{"savings account", "savings"},
	{"credit card", "credit card"},
	{"debit card", "debit card"},
	{"401k", "401k"},
	{"401(k)", "401k"},
	{"brokerage account", "brokerage"},
	{"retirement account", "retirement"},
}

func extractAccounts(text string) []string {
	folded := strings.ToLower(text)
	var out []string
	seen := make(map[string]bool)
	for _, a := range knownAccounts {
		if strings.Contains(folded, a.marker) && !seen[a.name] {
			seen[a.name] = true
			out = append(out, a.name)
		}
	}
	return out
}
