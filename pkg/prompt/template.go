package prompt

import (
	"strconv"
	"strings"

	"github.com/kingshuk-14/sathiAI/pkg/answer"
	"github.com/kingshuk-14/sathiAI/pkg/message"
)

// Template holds the category-specific parts of a prompt. The four section
// headings, the universal rules line and the message block are shared and
// added by Render.
type Template struct {
	Intro      string
	RulesTitle string
	Rules      []string

	// Guidance lists the instruction lines for each answer section.
	Guidance map[answer.Section][]string

	// Closing is appended to the universal rules line.
	Closing string
}

const universalRules = "Universal Rules: Use simple language. No asterisks."

// Render builds the prompt for text. The message is embedded verbatim.
func (t Template) Render(text string) string {
	var b strings.Builder

	b.WriteString(t.Intro)
	b.WriteString("\n\n")

	b.WriteString(t.RulesTitle)
	b.WriteString(":\n")
	for _, r := range t.Rules {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteString("\n")
	}

	b.WriteString("\nYour response MUST follow this exact structure:\n")
	for i, s := range answer.AllSections() {
		b.WriteString("\n")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(s.Heading())
		b.WriteString("\n")
		for _, g := range t.Guidance[s] {
			b.WriteString("   ")
			b.WriteString(g)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(universalRules)
	if t.Closing != "" {
		b.WriteString(" ")
		b.WriteString(t.Closing)
	}

	b.WriteString("\n\nMessage:\n\"\"\"\n")
	b.WriteString(text)
	b.WriteString("\n\"\"\"")

	return b.String()
}

// For returns the template for a category. Out-of-range values get the
// unknown template.
func For(c message.Category) Template {
	if c < 0 || c >= message.NumCategories {
		return templates[message.CategoryUnknown]
	}
	return templates[c]
}

// Build renders the prompt for a category and message text.
func Build(c message.Category, text string) string {
	return For(c).Render(text)
}

// Select classifies text and renders the matching prompt.
func Select(text string) (message.Classification, string) {
	cls := message.Classify(text)
	return cls, Build(cls.Category, text)
}
