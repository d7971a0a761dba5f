package message

import (
	"regexp"
	"strings"
)

// Lexicon is a named set of case-insensitive regular expression fragments.
// A lexicon matches a text when any one of its terms does.
type Lexicon struct {
	Name  string
	Terms []string
	re    *regexp.Regexp
}

// NewLexicon compiles terms into a single alternation. It panics on an
// invalid term, so lexicons are built at package init or in tests.
func NewLexicon(name string, terms ...string) Lexicon {
	return Lexicon{
		Name:  name,
		Terms: terms,
		re:    regexp.MustCompile(`(?i)(?:` + strings.Join(terms, "|") + `)`),
	}
}

// Match reports whether text contains any term of the lexicon.
func (l Lexicon) Match(text string) bool {
	if l.re == nil {
		return false
	}
	return l.re.MatchString(text)
}

// Lexicons groups every term set the classifier consults.
type Lexicons struct {
	Link              Lexicon
	Urgency           Lexicon
	TransactionAlert  Lexicon
	OfficialSender    Lexicon
	Promotional       Lexicon
	CredentialRequest Lexicon
	Bank              Lexicon
	Medical           Lexicon
	Notice            Lexicon
	OTP               Lexicon
	Delivery          Lexicon
	Scam              Lexicon
}

// DefaultLexicons returns the built-in term sets. A fresh value is returned
// on every call so callers may replace individual sets freely.
func DefaultLexicons() Lexicons {
	return Lexicons{
		Link: NewLexicon("link",
			`https?:`, `www\.`, `\.com`, `\.co\.in`, `\.in/`, `bit\.ly`, `\blinks?\b`,
		),
		Urgency: NewLexicon("urgency",
			`urgent`, `\btoday\b`, `immediately`, `blocked`, `suspended`,
			`action required`, `\basap\b`, `final (?:notice|warning)`, `deactivat`,
		),
		TransactionAlert: NewLexicon("transaction_alert",
			`debited`, `credited`, `\bdebit\b`, `\bcredit\b`, `transaction`, `amount`,
			`\brs\.`, `rupees`, `₹`, `\bpaid\b`, `received`, `transfer`,
		),
		OfficialSender: NewLexicon("official_sender",
			`amazon`, `flipkart`, `myntra`, `meesho`, `swiggy`, `zomato`, `blue ?dart`,
			`delhivery`, `india ?post`, `irctc`, `\bjio\b`, `airtel`, `\bsbi\b`, `hdfc`,
			`icici`, `\baxis\b`, `gov\.in`, `government of`,
		),
		Promotional: NewLexicon("promotional",
			`discount`, `\bsale\b`, `\boffers?\b`, `\d+\s*% off`, `cashback`, `\bdeals?\b`,
			`coupon`, `voucher`, `festive`, `flat \d+`,
		),
		CredentialRequest: NewLexicon("credential_request",
			`click`, `verify`, `\botp\b`, `password`, `\bpin\b`, `\bcvv\b`, `card details`,
			`card number`, `send money`, `bank details`, `\bkyc\b`, `log ?in`, `update details`,
		),
		Bank: NewLexicon("bank",
			`\bkyc\b`, `account blocked`, `net ?banking`, `debit card`, `credit card`,
			`bank account`, `re-login`, `verify account`, `update details`,
			`transaction alert`, `\bsbi\b`, `hdfc`, `icici`, `\baxis\b`, `\brbi\b`, `\bupi\b`,
			`debited`, `credited`, `avl\.? bal`, `available balance`, `\ba/c\b`,
			`\bneft\b`, `\bimps\b`, `\brtgs\b`, `\batm\b`, `phonepe`, `paytm`, `google pay`, `\bgpay\b`,
		),
		Medical: NewLexicon("medical",
			`tablet`, `\d\s*mg\b`, `\bmg\b`, `medicine`, `\bdose`, `\bdaily\b`, `after meals`,
			`prescribed`, `doctor`, `clinic`, `hospital`, `follow up`, `treatment`,
			`dosage`, `capsule`, `syrup`, `pharmacy`,
		),
		Notice: NewLexicon("notice",
			`notice`, `school`, `holiday`, `vacation`, `\bclosed\b`, `reopen`, `timetable`,
			`schedule`, `office hours`, `parents`, `students`, `\bclass(?:es)?\b`, `\bexams?\b`,
			`\bresults?\b`,
		),
		OTP: NewLexicon("otp",
			`\botp\b`, `one time password`, `verification code`, `valid for`,
			`do not share`, `code is`,
		),
		Delivery: NewLexicon("delivery",
			`parcel`, `delivery`, `shipment`, `courier`, `track order`, `tracking id`,
			`amazon`, `flipkart`, `blue ?dart`, `delhivery`, `package`, `\border\b`,
			`delivery expected`, `out for delivery`, `india ?post`,
		),
		Scam: NewLexicon("scam",
			`lottery`, `won (?:a )?prize`, `claim (?:your )?reward`, `processing fee`,
			`send bank details`, `urgent payment`, `bitcoin`, `crypto payment`,
			`transfer money`, `lottery winner`, `you have won`, `jackpot`, `gift card`,
		),
	}
}
