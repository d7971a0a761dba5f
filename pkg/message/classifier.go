package message

import "strings"

// Category is the closed set of message kinds the classifier assigns.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryPromotional
	CategoryBank
	CategoryMedical
	CategoryNotice
	CategoryOTP
	CategoryDelivery
	CategoryScam

	// NumCategories is the number of categories; keep it last.
	NumCategories
)

var categoryNames = [NumCategories]string{
	CategoryUnknown:     "unknown",
	CategoryPromotional: "promotional",
	CategoryBank:        "bank",
	CategoryMedical:     "medical",
	CategoryNotice:      "notice",
	CategoryOTP:         "otp",
	CategoryDelivery:    "delivery",
	CategoryScam:        "scam",
}

func (c Category) String() string {
	if c < 0 || c >= NumCategories {
		return categoryNames[CategoryUnknown]
	}
	return categoryNames[c]
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseCategory maps a category name back to its value. Unrecognised names
// map to CategoryUnknown.
func ParseCategory(name string) Category {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range categoryNames {
		if n == name {
			return Category(i)
		}
	}
	return CategoryUnknown
}

// RiskLevel is the coarse scam-risk scale.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Signals are computed for every message regardless of its category.
type Signals struct {
	HasLink            bool
	HasUrgency         bool
	IsTransactionAlert bool
}

// Classification is the classifier's verdict for a single message.
// RiskDefault is informational and never shown to the reader; the displayed
// risk comes from the model's answer.
type Classification struct {
	Category    Category  `json:"category"`
	HasLink     bool      `json:"has_link"`
	HasUrgency  bool      `json:"has_urgency"`
	RiskDefault RiskLevel `json:"-"`
}

// Rule pairs a predicate with the category it assigns and the default risk
// for messages it captures.
type Rule struct {
	Category Category
	Match    func(text string, s Signals) bool
	Risk     func(s Signals) RiskLevel
}

func fixedRisk(level RiskLevel) func(Signals) RiskLevel {
	return func(Signals) RiskLevel { return level }
}

// Rules builds the ordered rule list over the given lexicons. Order is the
// precedence contract: the first matching rule wins.
func Rules(lx Lexicons) []Rule {
	return []Rule{
		{
			Category: CategoryPromotional,
			Match: func(text string, _ Signals) bool {
				return lx.OfficialSender.Match(text) &&
					lx.Promotional.Match(text) &&
					!lx.CredentialRequest.Match(text)
			},
			Risk: func(s Signals) RiskLevel {
				if s.HasLink && s.HasUrgency {
					return RiskMedium
				}
				return RiskLow
			},
		},
		{
			Category: CategoryBank,
			Match:    func(text string, _ Signals) bool { return lx.Bank.Match(text) },
			Risk: func(s Signals) RiskLevel {
				switch {
				case s.HasLink && s.HasUrgency:
					return RiskHigh
				case s.IsTransactionAlert && !s.HasLink:
					return RiskMedium
				default:
					return RiskMedium
				}
			},
		},
		{
			Category: CategoryMedical,
			Match:    func(text string, _ Signals) bool { return lx.Medical.Match(text) },
			Risk:     fixedRisk(RiskLow),
		},
		{
			Category: CategoryNotice,
			Match: func(text string, s Signals) bool {
				return lx.Notice.Match(text) && !s.HasLink && !s.HasUrgency
			},
			Risk: fixedRisk(RiskLow),
		},
		{
			Category: CategoryOTP,
			Match:    func(text string, _ Signals) bool { return lx.OTP.Match(text) },
			Risk: func(s Signals) RiskLevel {
				if s.HasLink {
					return RiskMedium
				}
				return RiskLow
			},
		},
		{
			Category: CategoryDelivery,
			Match:    func(text string, _ Signals) bool { return lx.Delivery.Match(text) },
			Risk: func(s Signals) RiskLevel {
				if s.HasLink && s.HasUrgency {
					return RiskMedium
				}
				return RiskLow
			},
		},
		{
			Category: CategoryScam,
			Match:    func(text string, _ Signals) bool { return lx.Scam.Match(text) },
			Risk:     fixedRisk(RiskHigh),
		},
	}
}

// BaselineRules is Rules without the promotional check.
func BaselineRules(lx Lexicons) []Rule {
	return Rules(lx)[1:]
}

var defaultLexicons = DefaultLexicons()
var defaultRules = Rules(defaultLexicons)

// Classify assigns text to a category using the built-in lexicons.
func Classify(text string) Classification {
	return ClassifyWith(text, defaultLexicons, defaultRules)
}

// ClassifyWith runs rules in order against text. Signals are computed from lx;
// a message that no rule captures is CategoryUnknown with medium risk.
func ClassifyWith(text string, lx Lexicons, rules []Rule) Classification {
	s := Signals{
		HasLink:            lx.Link.Match(text),
		HasUrgency:         lx.Urgency.Match(text),
		IsTransactionAlert: lx.TransactionAlert.Match(text),
	}

	if strings.TrimSpace(text) != "" {
		for _, r := range rules {
			if r.Match(text, s) {
				return Classification{
					Category:    r.Category,
					HasLink:     s.HasLink,
					HasUrgency:  s.HasUrgency,
					RiskDefault: r.Risk(s),
				}
			}
		}
	}

	return Classification{
		Category:    CategoryUnknown,
		HasLink:     s.HasLink,
		HasUrgency:  s.HasUrgency,
		RiskDefault: RiskMedium,
	}
}
