package classification

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"triage_server/core/domain"
)

// schemaActionIntents maps schema.org action types found in structured
// email markup to taxonomy intents. An email that declares its action
// needs no scoring at all.
var schemaActionIntents = map[string]string{
	"TrackAction":   "ecommerce.shipping.notification",
	"ViewAction":    "ecommerce.order.confirmation",
	"PayAction":     "billing.invoice.due",
	"RsvpAction":    "event.calendar.invite",
	"ConfirmAction": "dining.reservation.confirmation",
	"CheckInAction": "travel.flight.checkin",
	"SaveAction":    "shopping.price.drop",
	"ReviewAction":  "feedback.review.request",
}

type schemaPayload struct {
	Type            string        `json:"@type"`
	PotentialAction *schemaAction `json:"potentialAction"`

	TrackingNumber string  `json:"trackingNumber"`
	TotalPrice     float64 `json:"totalPrice"`
	DiscountCode   string  `json:"discountCode"`
	PaymentDueDate string  `json:"paymentDueDate"`
	StartDate      string  `json:"startDate"`
	Organizer      string  `json:"organizer"`
}

type schemaAction struct {
	Type   string          `json:"@type"`
	Name   string          `json:"name"`
	Target json.RawMessage `json:"target"`
}

// targetURL resolves the action target, which producers encode either
// as a bare string or as an EntryPoint object.
func (a *schemaAction) targetURL() string {
	if len(a.Target) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(a.Target, &s); err == nil {
		return s
	}
	var ep struct {
		URL         string `json:"url"`
		URLTemplate string `json:"urlTemplate"`
	}
	if err := json.Unmarshal(a.Target, &ep); err == nil {
		if ep.URL != "" {
			return ep.URL
		}
		return ep.URLTemplate
	}
	return ""
}

// schemaResolution is the outcome of the fast path: a declared intent
// plus whatever entities the payload carried.
type schemaResolution struct {
	Intent   string
	Entities *domain.ExtractedEntities
}

// parseStructuredMarkup parses schema-style action markup into a
// declared intent and seeded entities. An error here is not fatal: the
// caller logs it and falls through to pattern matching.
func parseStructuredMarkup(markup string) (*schemaResolution, error) {
	var payload schemaPayload
	if err := json.Unmarshal([]byte(markup), &payload); err != nil {
		return nil, fmt.Errorf("parse structured markup: %w", err)
	}
	if payload.PotentialAction == nil || payload.PotentialAction.Type == "" {
		return nil, fmt.Errorf("structured markup declares no action")
	}
	intent, ok := schemaActionIntents[payload.PotentialAction.Type]
	if !ok {
		return nil, fmt.Errorf("unknown schema action type %q", payload.PotentialAction.Type)
	}

	ents := &domain.ExtractedEntities{}
	if payload.TrackingNumber != "" {
		ents.TrackingNumbers = []string{payload.TrackingNumber}
	}
	if payload.TotalPrice > 0 {
		ents.Prices = &domain.PriceInfo{Original: payload.TotalPrice}
	}
	if code := strings.TrimSpace(payload.DiscountCode); code != "" {
		ents.PromoCodes = []string{strings.ToUpper(code)}
	}
	if payload.PaymentDueDate != "" {
		ents.Deadline = &domain.Deadline{Text: payload.PaymentDueDate, Unit: "date"}
	}
	if payload.PotentialAction.Type == "RsvpAction" {
		ents.CalendarInvite = &domain.CalendarInvite{
			MeetingURL:       payload.PotentialAction.targetURL(),
			MeetingTime:      payload.StartDate,
			MeetingTitle:     payload.PotentialAction.Name,
			Organizer:        payload.Organizer,
			HasAcceptDecline: true,
		}
	}

	return &schemaResolution{Intent: intent, Entities: ents}, nil
}
