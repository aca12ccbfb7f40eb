package classification

import (
	"regexp"
	"strings"

	"triage_server/core/domain"
)

// meetingPlatform describes one recognized meeting provider: the
// markers that identify it and the shape of its join URLs.
type meetingPlatform struct {
	name    string
	markers []string // lowercase domain/keyword fragments
	urlRe   *regexp.Regexp
}

var meetingPlatforms = []meetingPlatform{
	{
		name:    "zoom",
		markers: []string{"zoom.us", "zoom meeting"},
		urlRe:   regexp.MustCompile(`https?://[a-z0-9.-]*zoom\.us/j/\d+[^\s>"]*`),
	},
	{
		name:    "google_meet",
		markers: []string{"meet.google.com", "google meet"},
		urlRe:   regexp.MustCompile(`https?://meet\.google\.com/[a-z]{3}-[a-z]{4}-[a-z]{3}`),
	},
	{
		name:    "teams",
		markers: []string{"teams.microsoft.com", "microsoft teams"},
		urlRe:   regexp.MustCompile(`https?://teams\.microsoft\.com/l/meetup-join/[^\s>"]+`),
	},
	{
		name:    "webex",
		markers: []string{"webex.com", "webex meeting"},
		urlRe:   regexp.MustCompile(`https?://[a-z0-9.-]*webex\.com/[^\s>"]+`),
	},
}

// Ordered datetime ladder: most specific shape first.
var meetingTimeRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:mon|tues?|wed(?:nes)?|thu(?:rs)?|fri|sat(?:ur)?|sun)day,?\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:,\s*\d{4})?(?:\s*(?:at|@)\s*\d{1,2}(?::\d{2})?\s*(?:am|pm)?)?`),
	regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:,\s*\d{4})?\s*(?:at|@)\s*\d{1,2}(?::\d{2})?\s*(?:am|pm)?`),
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}`),
	regexp.MustCompile(`(?i)\b(?:today|tomorrow)\s*(?:at|@)\s*\d{1,2}(?::\d{2})?\s*(?:am|pm)?`),
	regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:am|pm)\b`),
}

var subjectPrefixRe = regexp.MustCompile(`(?i)^(?:(?:fwd|fw|re):\s*|invitation:\s*|invite:\s*|updated invitation:\s*)+`)

var bodyTitleRe = regexp.MustCompile(`(?m)^(?:Event|Meeting|Title):\s*(.+)$`)

var organizerRe = regexp.MustCompile(`(?m)^Organizer:\s*(.+)$`)

// Generic invite markers that fire even without a recognized platform.
var genericInviteMarkers = []string{
	"begin:vcalendar",
	".ics",
	"has invited you",
	"rsvp to this event",
	"accept or decline",
}

// extractCalendarInvite detects meeting-invitation metadata. A
// recognized platform yields URL/time/title extraction; generic invite
// markers alone still produce an invite record.
func extractCalendarInvite(email *domain.EmailMessage) *domain.CalendarInvite {
	text := email.Subject + "\n" + email.Body
	folded := strings.ToLower(text)

	var invite *domain.CalendarInvite
	for _, p := range meetingPlatforms {
		if !containsAnyMarker(folded, p.markers) {
			continue
		}
		invite = &domain.CalendarInvite{Platform: p.name}
		invite.MeetingURL = p.urlRe.FindString(text)
		break
	}

	generic := containsAnyMarker(folded, genericInviteMarkers)
	if invite == nil {
		if !generic {
			return nil
		}
		invite = &domain.CalendarInvite{}
	}

	for _, re := range meetingTimeRes {
		if m := re.FindString(text); m != "" {
			invite.MeetingTime = strings.TrimSpace(m)
			break
		}
	}

	invite.MeetingTitle = meetingTitle(email)
	if m := organizerRe.FindStringSubmatch(email.Body); m != nil {
		invite.Organizer = strings.TrimSpace(m[1])
	} else {
		invite.Organizer = email.SenderAddress()
	}
	invite.HasAcceptDecline = generic ||
		strings.Contains(folded, "accept") && strings.Contains(folded, "decline")

	return invite
}

// meetingTitle derives a title from the subject, stripping forwarding
// and invitation prefixes, falling back to a body-level pattern.
func meetingTitle(email *domain.EmailMessage) string {
	title := strings.TrimSpace(subjectPrefixRe.ReplaceAllString(email.Subject, ""))
	if title != "" {
		return title
	}
	if m := bodyTitleRe.FindStringSubmatch(email.Body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func containsAnyMarker(folded string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(folded, m) {
			return true
		}
	}
	return false
}
