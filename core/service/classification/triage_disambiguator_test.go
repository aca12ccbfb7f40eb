package classification

import (
	"testing"

	"triage_server/core/domain"
)

func TestDisambiguatorAdjust(t *testing.T) {
	d := NewDisambiguator()

	base := func() map[string]float64 {
		return map[string]float64{
			"billing.invoice.due":             1.0,
			"ecommerce.receipt":               1.0,
			"ecommerce.order.confirmation":    0.0,
			"ecommerce.shipping.notification": 0.0,
			"marketing.promotion":             0.0,
			"marketing.newsletter":            0.0,
			"generic.unknown":                 0.0,
		}
	}

	t.Run("invoice number flips receipt tie", func(t *testing.T) {
		email := &domain.EmailMessage{
			Subject: "Invoice INV-2024-001",
			Body:    "Amount due: $420.00. Payment due by Nov 30.",
		}
		got := d.Adjust(base(), email)
		if got["billing.invoice.due"] != 1.0+boostInvoiceNumber {
			t.Errorf("billing.invoice.due = %v, want %v", got["billing.invoice.due"], 1.0+boostInvoiceNumber)
		}
		if got["ecommerce.receipt"] != 1.0-penaltyReceiptClash {
			t.Errorf("ecommerce.receipt = %v, want %v", got["ecommerce.receipt"], 1.0-penaltyReceiptClash)
		}
		if got["billing.invoice.due"] <= got["ecommerce.receipt"] {
			t.Error("invoice evidence did not break the tie")
		}
	})

	t.Run("invoice number without due language keeps receipt score", func(t *testing.T) {
		email := &domain.EmailMessage{Subject: "Invoice #8891 attached"}
		got := d.Adjust(base(), email)
		if got["ecommerce.receipt"] != 1.0 {
			t.Errorf("ecommerce.receipt = %v, want unchanged 1.0", got["ecommerce.receipt"])
		}
	})

	t.Run("order number boosts order confirmation", func(t *testing.T) {
		email := &domain.EmailMessage{Subject: "Order #A12345 confirmed"}
		got := d.Adjust(base(), email)
		if got["ecommerce.order.confirmation"] != boostOrderNumber {
			t.Errorf("ecommerce.order.confirmation = %v, want %v", got["ecommerce.order.confirmation"], boostOrderNumber)
		}
	})

	t.Run("discount percent boosts marketing promotion", func(t *testing.T) {
		email := &domain.EmailMessage{Subject: "Everything 40% off"}
		got := d.Adjust(base(), email)
		if got["marketing.promotion"] != boostDiscountPromo {
			t.Errorf("marketing.promotion = %v, want %v", got["marketing.promotion"], boostDiscountPromo)
		}
	})

	t.Run("tracking shape boosts shipping", func(t *testing.T) {
		email := &domain.EmailMessage{Body: "Your label: 1Z999AA10123456784"}
		got := d.Adjust(base(), email)
		if got["ecommerce.shipping.notification"] != boostTrackingShape {
			t.Errorf("ecommerce.shipping.notification = %v, want %v", got["ecommerce.shipping.notification"], boostTrackingShape)
		}
	})

	t.Run("billing sender bumps billing prefix", func(t *testing.T) {
		email := &domain.EmailMessage{From: "billing@vendor.com", Subject: "statement"}
		got := d.Adjust(base(), email)
		if got["billing.invoice.due"] != 1.0+boostSenderLocal {
			t.Errorf("billing.invoice.due = %v, want %v", got["billing.invoice.due"], 1.0+boostSenderLocal)
		}
		if got["marketing.promotion"] != 0 {
			t.Errorf("marketing.promotion = %v, want 0", got["marketing.promotion"])
		}
	})

	t.Run("marketing sender bumps marketing prefix", func(t *testing.T) {
		email := &domain.EmailMessage{From: "Deals <deals@store.com>", Subject: "hello"}
		got := d.Adjust(base(), email)
		if got["marketing.promotion"] != boostSenderLocal {
			t.Errorf("marketing.promotion = %v, want %v", got["marketing.promotion"], boostSenderLocal)
		}
		if got["marketing.newsletter"] != boostSenderLocal {
			t.Errorf("marketing.newsletter = %v, want %v", got["marketing.newsletter"], boostSenderLocal)
		}
	})

	t.Run("input map not mutated", func(t *testing.T) {
		scores := base()
		email := &domain.EmailMessage{Subject: "Invoice INV-2024-001, payment due"}
		_ = d.Adjust(scores, email)
		if scores["billing.invoice.due"] != 1.0 {
			t.Errorf("input map mutated: billing.invoice.due = %v", scores["billing.invoice.due"])
		}
	})

	t.Run("bump ignores missing intent", func(t *testing.T) {
		scores := map[string]float64{"generic.unknown": 0}
		email := &domain.EmailMessage{Subject: "Order #A12345"}
		got := d.Adjust(scores, email)
		if _, ok := got["ecommerce.order.confirmation"]; ok {
			t.Error("bump added an intent absent from the score map")
		}
	})
}
