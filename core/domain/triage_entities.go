package domain

// Deadline is a time-pressure entity extracted from free text.
// Text preserves the original casing of the match.
type Deadline struct {
	Text     string  `json:"text"`
	Value    float64 `json:"value,omitempty"`
	Unit     string  `json:"unit,omitempty"` // hour, day, week, date
	IsUrgent bool    `json:"is_urgent"`
}

// PriceInfo holds the resolved price reading of an email.
// Original is always set when any amount was found; Sale and
// DiscountPercent are only set for detected sale pairs.
type PriceInfo struct {
	Original        float64 `json:"original"`
	Sale            float64 `json:"sale,omitempty"`
	DiscountPercent int     `json:"discount_percent"`
	Savings         float64 `json:"savings,omitempty"`
}

// CalendarInvite describes detected meeting-invitation metadata.
type CalendarInvite struct {
	Platform         string `json:"platform,omitempty"`
	MeetingURL       string `json:"meeting_url,omitempty"`
	MeetingTime      string `json:"meeting_time,omitempty"`
	MeetingTitle     string `json:"meeting_title,omitempty"`
	Organizer        string `json:"organizer,omitempty"`
	HasAcceptDecline bool   `json:"has_accept_decline"`
}

// ExtractedEntities is the full set of structured values pulled from an
// email. Every field is independently optional; absence is an empty list
// or nil, never an error.
type ExtractedEntities struct {
	Deadline        *Deadline       `json:"deadline,omitempty"`
	Prices          *PriceInfo      `json:"prices,omitempty"`
	TrackingNumbers []string        `json:"tracking_numbers,omitempty"`
	PromoCodes      []string        `json:"promo_codes,omitempty"`
	Companies       []string        `json:"companies,omitempty"`
	Stores          []string        `json:"stores,omitempty"`
	Children        []string        `json:"children,omitempty"`
	Accounts        []string        `json:"accounts,omitempty"`
	CalendarInvite  *CalendarInvite `json:"calendar_invite,omitempty"`
}

// Has reports whether the named entity family is present and non-empty.
// The key names match the required-entity keys used by action rules.
func (e *ExtractedEntities) Has(key string) bool {
	if e == nil {
		return false
	}
	switch key {
	case "deadline":
		return e.Deadline != nil
	case "prices":
		return e.Prices != nil
	case "tracking_numbers":
		return len(e.TrackingNumbers) > 0
	case "promo_codes":
		return len(e.PromoCodes) > 0
	case "companies":
		return len(e.Companies) > 0
	case "stores":
		return len(e.Stores) > 0
	case "children":
		return len(e.Children) > 0
	case "accounts":
		return len(e.Accounts) > 0
	case "calendar_invite":
		return e.CalendarInvite != nil
	}
	return false
}

// Merge overlays other onto e, with other taking precedence on collision.
// Used by the orchestrator to let schema-seeded entities win over
// pattern-extracted ones. Returns a new value; neither input is mutated.
func (e *ExtractedEntities) Merge(other *ExtractedEntities) *ExtractedEntities {
	if e == nil && other == nil {
		return &ExtractedEntities{}
	}
	if e == nil {
		cp := *other
		return &cp
	}
	merged := *e
	if other == nil {
		return &merged
	}
	if other.Deadline != nil {
		merged.Deadline = other.Deadline
	}
	if other.Prices != nil {
		merged.Prices = other.Prices
	}
	if len(other.TrackingNumbers) > 0 {
		merged.TrackingNumbers = other.TrackingNumbers
	}
	if len(other.PromoCodes) > 0 {
		merged.PromoCodes = other.PromoCodes
	}
	if len(other.Companies) > 0 {
		merged.Companies = other.Companies
	}
	if len(other.Stores) > 0 {
		merged.Stores = other.Stores
	}
	if len(other.Children) > 0 {
		merged.Children = other.Children
	}
	if len(other.Accounts) > 0 {
		merged.Accounts = other.Accounts
	}
	if other.CalendarInvite != nil {
		merged.CalendarInvite = other.CalendarInvite
	}
	return &merged
}
