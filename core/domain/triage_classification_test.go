package domain

import "testing"

func TestPrimaryAction(t *testing.T) {
	t.Run("first primary action returned", func(t *testing.T) {
		r := &ClassificationResult{
			SuggestedActions: []SuggestedAction{
				{ActionID: "track_package", IsPrimary: true},
				{ActionID: "view_order"},
			},
		}
		primary := r.PrimaryAction()
		if primary == nil || primary.ActionID != "track_package" {
			t.Errorf("PrimaryAction() = %+v", primary)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		r := &ClassificationResult{}
		if got := r.PrimaryAction(); got != nil {
			t.Errorf("PrimaryAction() = %+v, want nil", got)
		}
	})

	t.Run("no primary flag", func(t *testing.T) {
		r := &ClassificationResult{
			SuggestedActions: []SuggestedAction{{ActionID: "view_order"}},
		}
		if got := r.PrimaryAction(); got != nil {
			t.Errorf("PrimaryAction() = %+v, want nil", got)
		}
	})
}
