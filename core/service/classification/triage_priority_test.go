package classification

import (
	"testing"

	"triage_server/core/domain"
)

func TestPriorityAssign(t *testing.T) {
	p := NewPriorityAssignor(defaultTables(t).Rules)

	urgentDeadline := &domain.ExtractedEntities{
		Deadline: &domain.Deadline{Text: "due today", IsUrgent: true},
	}
	laterDeadline := &domain.ExtractedEntities{
		Deadline: &domain.Deadline{Text: "expires in 10 days", Value: 10, Unit: "day"},
	}

	tests := []struct {
		name     string
		category domain.Category
		intent   string
		entities *domain.ExtractedEntities
		actions  []domain.SuggestedAction
		want     domain.PriorityTier
	}{
		{
			name:     "urgent deadline is critical",
			category: domain.CategoryMail,
			intent:   "education.permission.form",
			entities: urgentDeadline,
			want:     domain.PriorityCritical,
		},
		{
			name:     "urgent deadline outranks the ads rule",
			category: domain.CategoryAds,
			intent:   "marketing.promotion",
			entities: urgentDeadline,
			want:     domain.PriorityCritical,
		},
		{
			name:     "critical intent is critical",
			category: domain.CategoryMail,
			intent:   "account.security.alert",
			want:     domain.PriorityCritical,
		},
		{
			name:     "high-priority intent is high",
			category: domain.CategoryMail,
			intent:   "billing.invoice.due",
			entities: laterDeadline,
			want:     domain.PriorityHigh,
		},
		{
			name:     "ads without urgency is low",
			category: domain.CategoryAds,
			intent:   "marketing.promotion",
			entities: laterDeadline,
			want:     domain.PriorityLow,
		},
		{
			name:     "primary action rank one lifts to high",
			category: domain.CategoryMail,
			intent:   "ecommerce.shipping.notification",
			actions: []domain.SuggestedAction{
				{ActionID: "track_package", IsPrimary: true, Priority: 1},
			},
			want: domain.PriorityHigh,
		},
		{
			name:     "low-rank primary action stays medium",
			category: domain.CategoryMail,
			intent:   "marketing.newsletter",
			actions: []domain.SuggestedAction{
				{ActionID: "read_later", IsPrimary: true, Priority: 4},
			},
			want: domain.PriorityMedium,
		},
		{
			name:     "nothing special is medium",
			category: domain.CategoryMail,
			intent:   "generic.unknown",
			want:     domain.PriorityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Assign(tt.category, tt.intent, tt.entities, tt.actions)
			if got != tt.want {
				t.Errorf("Assign() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUrgent(t *testing.T) {
	p := NewPriorityAssignor(defaultTables(t).Rules)

	tests := []struct {
		name     string
		email    domain.EmailMessage
		entities *domain.ExtractedEntities
		want     bool
	}{
		{
			name:  "urgent keyword in subject",
			email: domain.EmailMessage{Subject: "ACTION REQUIRED: verify your account"},
			want:  true,
		},
		{
			name:  "urgent keyword in snippet only",
			email: domain.EmailMessage{Subject: "Reminder", Body: "Please respond by Friday."},
			want:  true,
		},
		{
			name:  "urgent deadline entity",
			email: domain.EmailMessage{Subject: "Permission form"},
			entities: &domain.ExtractedEntities{
				Deadline: &domain.Deadline{Text: "due today", IsUrgent: true},
			},
			want: true,
		},
		{
			name:     "distant deadline is not urgent",
			email:    domain.EmailMessage{Subject: "Heads up"},
			entities: &domain.ExtractedEntities{Deadline: &domain.Deadline{Text: "expires in 10 days"}},
			want:     false,
		},
		{
			name:  "plain mail is not urgent",
			email: domain.EmailMessage{Subject: "Lunch tomorrow?", Body: "Thinking tacos."},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Urgent(&tt.email, tt.entities); got != tt.want {
				t.Errorf("Urgent() = %v, want %v", got, tt.want)
			}
		})
	}
}
