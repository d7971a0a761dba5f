package answer

import "strings"

// Section identifies one of the four fixed parts of a structured answer.
type Section int

const (
	SectionScam Section = iota
	SectionImportance
	SectionAbout
	SectionAction

	numSections
)

var sectionMarkers = [numSections]string{
	SectionScam:       "IS THIS LIKELY A SCAM",
	SectionImportance: "IS THIS IMPORTANT",
	SectionAbout:      "WHAT THIS MESSAGE IS ABOUT",
	SectionAction:     "WHAT SHOULD I DO",
}

var sectionHeadings = [numSections]string{
	SectionScam:       "IS THIS LIKELY A SCAM?",
	SectionImportance: "IS THIS IMPORTANT?",
	SectionAbout:      "WHAT THIS MESSAGE IS ABOUT:",
	SectionAction:     "WHAT SHOULD I DO?",
}

// AllSections lists the sections in answer order.
func AllSections() []Section {
	return []Section{SectionScam, SectionImportance, SectionAbout, SectionAction}
}

// Marker is the text whose presence on a line opens the section.
func (s Section) Marker() string { return sectionMarkers[s] }

// Heading is the marker as it is written in prompts, with punctuation.
func (s Section) Heading() string { return sectionHeadings[s] }

// Sections is the model answer split into its four parts.
type Sections struct {
	Scam       string `json:"scam"`
	Importance string `json:"importance"`
	About      string `json:"about"`
	Action     string `json:"action"`
}

// Get returns the text of one section.
func (a Sections) Get(s Section) string {
	switch s {
	case SectionScam:
		return a.Scam
	case SectionImportance:
		return a.Importance
	case SectionAbout:
		return a.About
	case SectionAction:
		return a.Action
	}
	return ""
}

// Empty reports whether no section was found in the answer.
func (a Sections) Empty() bool {
	return a == Sections{}
}

// headerOf returns the section a line opens, checking markers in answer order.
func headerOf(line string) (Section, bool) {
	for _, s := range AllSections() {
		if strings.Contains(line, s.Marker()) {
			return s, true
		}
	}
	return 0, false
}

type sectionizer struct {
	open  Section
	found bool
	buf   [numSections]strings.Builder
}

func (z *sectionizer) step(line string) {
	line = strings.TrimSuffix(line, "\r")

	if s, ok := headerOf(line); ok {
		z.open, z.found = s, true
		z.buf[s].Reset()
		return
	}

	if !z.found || strings.TrimSpace(line) == "" {
		return
	}

	z.buf[z.open].WriteString(line)
	z.buf[z.open].WriteByte('\n')
}

func (z *sectionizer) result() Sections {
	return Sections{
		Scam:       strings.TrimSpace(z.buf[SectionScam].String()),
		Importance: strings.TrimSpace(z.buf[SectionImportance].String()),
		About:      strings.TrimSpace(z.buf[SectionAbout].String()),
		Action:     strings.TrimSpace(z.buf[SectionAction].String()),
	}
}

// Sectionize splits a raw model answer into its four sections. A header line
// opens its section and resets whatever the section held; the header itself
// is dropped. Non-blank lines that follow are kept until the next header.
// Text before the first header is discarded. Missing headers leave their
// sections empty.
func Sectionize(raw string) Sections {
	var z sectionizer
	for _, line := range strings.Split(raw, "\n") {
		z.step(line)
	}
	return z.result()
}
