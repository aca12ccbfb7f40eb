package classification

import (
	"testing"

	json "github.com/goccy/go-json"
)

func TestParseStructuredMarkup(t *testing.T) {
	t.Run("track action seeds tracking number", func(t *testing.T) {
		markup := `{
			"@type": "ParcelDelivery",
			"trackingNumber": "1Z999AA10123456784",
			"potentialAction": {"@type": "TrackAction", "name": "Track", "target": "https://ups.com/track"}
		}`
		res, err := parseStructuredMarkup(markup)
		if err != nil {
			t.Fatalf("parseStructuredMarkup() error = %v", err)
		}
		if res.Intent != "ecommerce.shipping.notification" {
			t.Errorf("Intent = %q, want ecommerce.shipping.notification", res.Intent)
		}
		if len(res.Entities.TrackingNumbers) != 1 || res.Entities.TrackingNumbers[0] != "1Z999AA10123456784" {
			t.Errorf("TrackingNumbers = %v", res.Entities.TrackingNumbers)
		}
	})

	t.Run("pay action seeds price and deadline", func(t *testing.T) {
		markup := `{
			"@type": "Invoice",
			"totalPrice": 420.00,
			"paymentDueDate": "2026-11-30",
			"potentialAction": {"@type": "PayAction"}
		}`
		res, err := parseStructuredMarkup(markup)
		if err != nil {
			t.Fatalf("parseStructuredMarkup() error = %v", err)
		}
		if res.Intent != "billing.invoice.due" {
			t.Errorf("Intent = %q, want billing.invoice.due", res.Intent)
		}
		if res.Entities.Prices == nil || res.Entities.Prices.Original != 420.00 {
			t.Errorf("Prices = %+v", res.Entities.Prices)
		}
		if res.Entities.Deadline == nil || res.Entities.Deadline.Text != "2026-11-30" || res.Entities.Deadline.Unit != "date" {
			t.Errorf("Deadline = %+v", res.Entities.Deadline)
		}
	})

	t.Run("rsvp action seeds calendar invite", func(t *testing.T) {
		markup := `{
			"@type": "Event",
			"startDate": "2026-09-12T18:00",
			"organizer": "events@venue.com",
			"potentialAction": {
				"@type": "RsvpAction",
				"name": "Team Offsite",
				"target": {"@type": "EntryPoint", "urlTemplate": "https://cal.example/rsvp"}
			}
		}`
		res, err := parseStructuredMarkup(markup)
		if err != nil {
			t.Fatalf("parseStructuredMarkup() error = %v", err)
		}
		if res.Intent != "event.calendar.invite" {
			t.Errorf("Intent = %q, want event.calendar.invite", res.Intent)
		}
		invite := res.Entities.CalendarInvite
		if invite == nil {
			t.Fatal("CalendarInvite = nil")
		}
		if invite.MeetingURL != "https://cal.example/rsvp" {
			t.Errorf("MeetingURL = %q", invite.MeetingURL)
		}
		if invite.MeetingTitle != "Team Offsite" {
			t.Errorf("MeetingTitle = %q", invite.MeetingTitle)
		}
		if !invite.HasAcceptDecline {
			t.Error("HasAcceptDecline = false")
		}
	})

	t.Run("discount code uppercased", func(t *testing.T) {
		markup := `{
			"discountCode": " save20 ",
			"potentialAction": {"@type": "SaveAction"}
		}`
		res, err := parseStructuredMarkup(markup)
		if err != nil {
			t.Fatalf("parseStructuredMarkup() error = %v", err)
		}
		if len(res.Entities.PromoCodes) != 1 || res.Entities.PromoCodes[0] != "SAVE20" {
			t.Errorf("PromoCodes = %v", res.Entities.PromoCodes)
		}
	})

	tests := []struct {
		name   string
		markup string
	}{
		{"malformed json", `{"@type": "Invoice",`},
		{"no potential action", `{"@type": "Invoice"}`},
		{"unknown action type", `{"potentialAction": {"@type": "DanceAction"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseStructuredMarkup(tt.markup); err == nil {
				t.Error("parseStructuredMarkup() error = nil, want error")
			}
		})
	}
}

func TestTargetURL(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name:   "bare string target",
			markup: `{"potentialAction": {"@type": "TrackAction", "target": "https://x.com/t"}}`,
			want:   "https://x.com/t",
		},
		{
			name:   "entry point url",
			markup: `{"potentialAction": {"@type": "TrackAction", "target": {"url": "https://x.com/u"}}}`,
			want:   "https://x.com/u",
		},
		{
			name:   "entry point url template",
			markup: `{"potentialAction": {"@type": "TrackAction", "target": {"urlTemplate": "https://x.com/v"}}}`,
			want:   "https://x.com/v",
		},
		{
			name:   "no target",
			markup: `{"potentialAction": {"@type": "TrackAction"}}`,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload schemaPayload
			if err := json.Unmarshal([]byte(tt.markup), &payload); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := payload.PotentialAction.targetURL(); got != tt.want {
				t.Errorf("targetURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
