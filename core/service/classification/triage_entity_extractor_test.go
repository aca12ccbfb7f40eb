package classification

import (
	"reflect"
	"testing"

	"triage_server/core/domain"
)

func extract(t *testing.T, subject, body string) *domain.ExtractedEntities {
	t.Helper()
	return NewEntityExtractor().Extract(&domain.EmailMessage{Subject: subject, Body: body})
}

func TestExtractDeadline(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *domain.Deadline
	}{
		{
			name: "due today is urgent",
			text: "Permission form due today",
			want: &domain.Deadline{Text: "due today", IsUrgent: true},
		},
		{
			name: "expires today is urgent",
			text: "Your offer expires today at midnight",
			want: &domain.Deadline{Text: "expires today", IsUrgent: true},
		},
		{
			name: "ten days out is not urgent",
			text: "Offer expires in 10 days",
			want: &domain.Deadline{Text: "expires in 10 days", Value: 10, Unit: "day", IsUrgent: false},
		},
		{
			name: "one day out is urgent",
			text: "Sale ends in 1 day",
			want: &domain.Deadline{Text: "ends in 1 day", Value: 1, Unit: "day", IsUrgent: true},
		},
		{
			name: "three hours left is urgent",
			text: "Only 3 hours left to claim",
			want: &domain.Deadline{Text: "3 hours left", Value: 3, Unit: "hour", IsUrgent: true},
		},
		{
			name: "six hours is not urgent",
			text: "Voting closes, 6 hours left",
			want: &domain.Deadline{Text: "6 hours left", Value: 6, Unit: "hour", IsUrgent: false},
		},
		{
			name: "two weeks is not urgent",
			text: "Registration closing in 2 weeks",
			want: &domain.Deadline{Text: "closing in 2 weeks", Value: 2, Unit: "week", IsUrgent: false},
		},
		{
			name: "absolute date never urgent",
			text: "Payment is due by November 30, 2026.",
			want: &domain.Deadline{Text: "due by November 30, 2026", Unit: "date"},
		},
		{
			name: "no deadline",
			text: "Your order has shipped",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract(t, tt.text, "")
			if !reflect.DeepEqual(got.Deadline, tt.want) {
				t.Errorf("Deadline = %+v, want %+v", got.Deadline, tt.want)
			}
		})
	}
}

func TestExtractPrices(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *domain.PriceInfo
	}{
		{
			name: "labeled total wins",
			text: "Order confirmed. Total: $149.99",
			want: &domain.PriceInfo{Original: 149.99},
		},
		{
			name: "amount label",
			text: "Invoice INV-2024-001\nAmount: $420.00\nDue by Nov 30",
			want: &domain.PriceInfo{Original: 420.00},
		},
		{
			name: "sale pair with discount",
			text: "Was $199.99 Sale $129.99, Save Now",
			want: &domain.PriceInfo{Original: 199.99, Sale: 129.99, DiscountPercent: 35, Savings: 70.00},
		},
		{
			name: "two amounts without sale words keeps max only",
			text: "Your statement lists $50.00 and $80.00 in transactions",
			want: &domain.PriceInfo{Original: 80.00},
		},
		{
			name: "single bare amount",
			text: "You paid $42.50 for parking",
			want: &domain.PriceInfo{Original: 42.50},
		},
		{
			name: "thousands separator parsed",
			text: "Grand Total: $1,299.00",
			want: &domain.PriceInfo{Original: 1299.00},
		},
		{
			name: "no amounts",
			text: "See you at practice tomorrow",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract(t, "", tt.text)
			if !reflect.DeepEqual(got.Prices, tt.want) {
				t.Errorf("Prices = %+v, want %+v", got.Prices, tt.want)
			}
		})
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		text string
		word string
		want bool
	}{
		{"50% off everything", "off", true},
		{"visit our office", "off", false},
		{"it was $20", "was", true},
		{"washington dc", "was", false},
		{"save big", "save", true},
		{"lifesaver kit", "save", false},
	}
	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.word, func(t *testing.T) {
			if got := containsWord(tt.text, tt.word); got != tt.want {
				t.Errorf("containsWord(%q, %q) = %v, want %v", tt.text, tt.word, got, tt.want)
			}
		})
	}
}

func TestExtractTrackingNumbers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "ups shape",
			text: "Track your package: 1Z999AA10123456784",
			want: []string{"1Z999AA10123456784"},
		},
		{
			name: "usps shape",
			text: "USPS tracking 9400110200881234567890",
			want: []string{"9400110200881234567890"},
		},
		{
			name: "fedex twelve digit",
			text: "FedEx number 123456789012 on the label",
			want: []string{"123456789012"},
		},
		{
			name: "duplicates removed",
			text: "1Z999AA10123456784 again 1Z999AA10123456784",
			want: []string{"1Z999AA10123456784"},
		},
		{
			name: "none",
			text: "Your order number is #12345",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract(t, "", tt.text)
			if !reflect.DeepEqual(got.TrackingNumbers, tt.want) {
				t.Errorf("TrackingNumbers = %v, want %v", got.TrackingNumbers, tt.want)
			}
		})
	}
}

func TestExtractPromoCodes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"use code form", "Use code SAVE20 at checkout", []string{"SAVE20"}},
		{"promo code form", "promo code FALL2026 expires soon", []string{"FALL2026"}},
		{"lowercase rejected", "use code save20 at checkout", nil},
		{"dedup", "use code SAVE20, yes code SAVE20", []string{"SAVE20"}},
		{"none", "No discounts this week", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract(t, "", tt.text)
			if !reflect.DeepEqual(got.PromoCodes, tt.want) {
				t.Errorf("PromoCodes = %v, want %v", got.PromoCodes, tt.want)
			}
		})
	}
}

func TestExtractStoresChildrenAccounts(t *testing.T) {
	t.Run("stores by marker", func(t *testing.T) {
		got := extract(t, "Your Amazon order", "Also available at Target")
		want := []string{"Amazon", "Target"}
		if !reflect.DeepEqual(got.Stores, want) {
			t.Errorf("Stores = %v, want %v", got.Stores, want)
		}
	})

	t.Run("child from possessive", func(t *testing.T) {
		got := extract(t, "Emma's permission slip", "")
		if !reflect.DeepEqual(got.Children, []string{"Emma"}) {
			t.Errorf("Children = %v", got.Children)
		}
	})

	t.Run("child from relation phrase", func(t *testing.T) {
		got := extract(t, "", "A note about your daughter Sofia and the recital")
		if !reflect.DeepEqual(got.Children, []string{"Sofia"}) {
			t.Errorf("Children = %v", got.Children)
		}
	})

	t.Run("accounts", func(t *testing.T) {
		got := extract(t, "", "Your checking account and credit card statements are ready")
		want := []string{"checking", "credit card"}
		if !reflect.DeepEqual(got.Accounts, want) {
			t.Errorf("Accounts = %v, want %v", got.Accounts, want)
		}
	})
}
