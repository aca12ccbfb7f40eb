package classification

import (
	"testing"

	"triage_server/core/domain"
)

func TestIsPromotional(t *testing.T) {
	c := NewPromoClassifier()

	tests := []struct {
		name   string
		email  domain.EmailMessage
		intent string
		want   bool
	}{
		{
			name: "list-unsubscribe header alone",
			email: domain.EmailMessage{
				Subject: "Your weekly digest",
				Headers: map[string]string{"List-Unsubscribe": "<mailto:leave@x.com>"},
			},
			intent: "generic.unknown",
			want:   true,
		},
		{
			name: "unsubscribe marker in body alone",
			email: domain.EmailMessage{
				Subject: "News from us",
				Body:    "Read more.\nTo stop receiving these, unsubscribe here.",
			},
			intent: "generic.unknown",
			want:   true,
		},
		{
			name: "two distinct promo keywords in headline",
			email: domain.EmailMessage{
				Subject: "Huge SALE: 50% off sitewide",
			},
			intent: "generic.unknown",
			want:   true,
		},
		{
			name: "single weak keyword is not enough",
			email: domain.EmailMessage{
				Subject: "Your sale order has been processed",
				Body:    "Invoice attached.",
				From:    "orders@vendor.com",
			},
			intent: "billing.invoice.due",
			want:   false,
		},
		{
			name: "strong phrase alone",
			email: domain.EmailMessage{
				Subject: "Flash sale starts now",
			},
			intent: "generic.unknown",
			want:   true,
		},
		{
			name: "marketing sender local-part alone",
			email: domain.EmailMessage{
				Subject: "A note",
				From:    "promo@store.com",
			},
			intent: "generic.unknown",
			want:   true,
		},
		{
			name: "marketing intent alone",
			email: domain.EmailMessage{
				Subject: "A note",
				From:    "team@store.com",
			},
			intent: "marketing.newsletter",
			want:   true,
		},
		{
			name: "promotion intent alone",
			email: domain.EmailMessage{
				Subject: "A note",
			},
			intent: "ecommerce.promotion",
			want:   true,
		},
		{
			name: "transactional mail stays mail",
			email: domain.EmailMessage{
				Subject: "Your package has shipped",
				Body:    "Tracking: 1Z999AA10123456784",
				From:    "no-reply@ups.com",
			},
			intent: "ecommerce.shipping.notification",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsPromotional(&tt.email, tt.intent); got != tt.want {
				t.Errorf("IsPromotional() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPromoCategory(t *testing.T) {
	c := NewPromoClassifier()

	promo := &domain.EmailMessage{Subject: "Flash sale, shop now"}
	if got := c.Category(promo, "generic.unknown"); got != domain.CategoryAds {
		t.Errorf("Category = %q, want ads", got)
	}

	plain := &domain.EmailMessage{Subject: "Meeting notes", From: "colleague@work.com"}
	if got := c.Category(plain, "generic.unknown"); got != domain.CategoryMail {
		t.Errorf("Category = %q, want mail", got)
	}
}
