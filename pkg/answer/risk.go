package answer

import (
	"regexp"
	"strings"

	"github.com/kingshuk-14/sathiAI/pkg/message"
)

// UrgencyLevel is the coarse importance scale. Unknown means the importance
// text named no level at all.
type UrgencyLevel string

const (
	UrgencyLow     UrgencyLevel = "low"
	UrgencyMedium  UrgencyLevel = "medium"
	UrgencyHigh    UrgencyLevel = "high"
	UrgencyUnknown UrgencyLevel = "unknown"
)

var (
	definiteScam = regexp.MustCompile(`definitely (?:a )?scam`)
	likelyScam   = regexp.MustCompile(`\blikely scam`)
	conditional  = regexp.MustCompile(`\bif\b`)
	notScam      = regexp.MustCompile(`unlikely|no scam|not a scam`)
	hedge        = regexp.MustCompile(`could be|probably|possibly|may be|might be|\bif\b`)
)

// InferRisk derives the scam risk from the text of the scam section. Checks
// run in priority order and the first that matches decides.
func InferRisk(scamText string) message.RiskLevel {
	lower := strings.ToLower(scamText)

	switch {
	case definiteScam.MatchString(lower):
		return message.RiskHigh
	case likelyScam.MatchString(lower) && !conditional.MatchString(lower):
		return message.RiskHigh
	case notScam.MatchString(lower):
		return message.RiskLow
	case hedge.MatchString(lower):
		return message.RiskMedium
	default:
		return message.RiskMedium
	}
}

// InferUrgency derives the urgency from the text of the importance section.
func InferUrgency(importanceText string) UrgencyLevel {
	lower := strings.ToLower(importanceText)

	switch {
	case strings.Contains(lower, "high"):
		return UrgencyHigh
	case strings.Contains(lower, "medium"):
		return UrgencyMedium
	case strings.Contains(lower, "low"):
		return UrgencyLow
	default:
		return UrgencyUnknown
	}
}
