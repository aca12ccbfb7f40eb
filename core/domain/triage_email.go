package domain

import (
	"strings"
)

// snippetLen is the number of body characters used when no snippet is provided.
const snippetLen = 200

// EmailMessage is the immutable input to the triage pipeline.
// It carries no identity beyond its content fields.
type EmailMessage struct {
	Subject string            `json:"subject"`
	Body    string            `json:"body"`
	Snippet string            `json:"snippet,omitempty"`
	From    string            `json:"from"`
	Headers map[string]string `json:"headers,omitempty"`

	// StructuredMarkup is an optional schema-style action payload
	// (JSON text). When present and parseable, the pipeline takes the
	// schema fast-path instead of pattern matching.
	StructuredMarkup string `json:"structured_markup,omitempty"`
}

// EffectiveSnippet returns the explicit snippet, or a prefix of the body
// when no snippet was supplied.
func (m *EmailMessage) EffectiveSnippet() string {
	if m.Snippet != "" {
		return m.Snippet
	}
	body := m.Body
	if len(body) > snippetLen {
		return body[:snippetLen]
	}
	return body
}

// Header returns a header value by case-insensitive name.
func (m *EmailMessage) Header(name string) string {
	if m.Headers == nil {
		return ""
	}
	if v, ok := m.Headers[name]; ok {
		return v
	}
	lower := strings.ToLower(name)
	for k, v := range m.Headers {
		if strings.ToLower(k) == lower {
			return v
		}
	}
	return ""
}

// SenderLocalPart returns the part of the From address before '@',
// lowercased. Display-name forms like "UPS <ups@ups.com>" are handled.
func (m *EmailMessage) SenderLocalPart() string {
	addr := m.SenderAddress()
	if i := strings.Index(addr, "@"); i >= 0 {
		return addr[:i]
	}
	return addr
}

// SenderDomain returns the part of the From address after '@', lowercased.
func (m *EmailMessage) SenderDomain() string {
	addr := m.SenderAddress()
	if i := strings.Index(addr, "@"); i >= 0 {
		return addr[i+1:]
	}
	return ""
}

// SenderAddress extracts the bare address from the From field, lowercased.
func (m *EmailMessage) SenderAddress() string {
	from := strings.TrimSpace(m.From)
	if start := strings.Index(from, "<"); start >= 0 {
		if end := strings.Index(from[start:], ">"); end > 0 {
			from = from[start+1 : start+end]
		}
	}
	return strings.ToLower(strings.TrimSpace(from))
}

// IsEmpty reports whether the message has neither subject nor body.
// Empty messages still classify: they resolve to the generic fallback.
func (m *EmailMessage) IsEmpty() bool {
	return strings.TrimSpace(m.Subject) == "" && strings.TrimSpace(m.Body) == ""
}
