package domain

// Category is the binary promotional split: regular mail vs ads.
type Category string

const (
	CategoryMail Category = "mail"
	CategoryAds  Category = "ads"
)

// PriorityTier is the coarse priority assigned to a classified email.
type PriorityTier string

const (
	PriorityCritical PriorityTier = "critical"
	PriorityHigh     PriorityTier = "high"
	PriorityMedium   PriorityTier = "medium"
	PriorityLow      PriorityTier = "low"
)

// ActionType describes how a suggested action is executed downstream.
type ActionType string

const (
	ActionTypeInApp     ActionType = "in_app"
	ActionTypeGoTo      ActionType = "go_to"
	ActionTypeNativeAPI ActionType = "native_api"
)

// SuggestedAction is one ranked action a consumer may execute.
// Within one list at most one action has IsPrimary set, and when present
// it is the first element.
type SuggestedAction struct {
	ActionID    string     `json:"action_id"`
	DisplayName string     `json:"display_name"`
	ActionType  ActionType `json:"action_type"`
	IsPrimary   bool       `json:"is_primary"`
	Priority    int        `json:"priority"`
}

// ClassificationSource records which pipeline branch produced the result.
type ClassificationSource string

const (
	// SourceSchema means structured action markup was parsed and mapped
	// directly to an intent (the fast path).
	SourceSchema ClassificationSource = "schema"
	// SourcePattern means the full scoring pipeline ran.
	SourcePattern ClassificationSource = "pattern"
)

// ClassificationResult is the immutable output of one triage call.
// It is constructed fresh per call and copies everything it needs from
// the input.
type ClassificationResult struct {
	Category   Category `json:"category"`
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`

	SuggestedActions []SuggestedAction `json:"suggested_actions"`

	Priority PriorityTier `json:"priority"`
	Urgent   bool         `json:"urgent"`

	// HighestPriorityAction is the display label of the primary action.
	HighestPriorityAction string `json:"highest_priority_action,omitempty"`
	CallToAction          string `json:"call_to_action,omitempty"`

	Entities *ExtractedEntities `json:"entities,omitempty"`

	Source   ClassificationSource `json:"source"`
	Fallback bool                 `json:"fallback"`

	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// PrimaryAction returns the primary suggested action, or nil if the list
// is empty.
func (r *ClassificationResult) PrimaryAction() *SuggestedAction {
	if len(r.SuggestedActions) == 0 {
		return nil
	}
	if r.SuggestedActions[0].IsPrimary {
		return &r.SuggestedActions[0]
	}
	return nil
}
