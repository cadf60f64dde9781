package cv

import (
	"strings"

	"github.com/spigell/cv-copilot/internal/vocab"
)

type headerRule struct {
	section  SectionType
	keywords []string
}

// Checked in order; the first rule with a keyword contained in the line wins.
var headerRules = []headerRule{
	{SectionSummary, []string{"summary", "profile", "objective"}},
	{SectionExperience, []string{"experience", "employment", "work history"}},
	{SectionSkills, []string{"skill", "technical", "competenc"}},
	{SectionEducation, []string{"education", "qualification", "academic"}},
	{SectionProjects, []string{"project", "portfolio"}},
	{SectionAchievements, []string{"achievement", "award", "accomplishment"}},
}

// Segment splits CV text into sections. Every trimmed non-blank line is tested
// against the header classifier; a header closes the open section and opens a new
// one, any other line is appended to the open section. Lines before the first
// header belong to no section and are dropped.
func Segment(text string) []Section {
	sections := []Section{}

	var (
		current *Section
		lines   []string
	)

	closeSection := func() {
		if current == nil {
			return
		}
		current.Content = strings.Join(lines, "\n")
		current.BulletPoints = BulletPoints(lines)
		sections = append(sections, *current)
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if t, ok := ClassifyHeader(line); ok {
			closeSection()
			current = &Section{Type: t}
			lines = nil
			continue
		}

		if current != nil {
			lines = append(lines, line)
		}
	}
	closeSection()

	return sections
}

// ClassifyHeader reports the section type a line announces, if any.
func ClassifyHeader(line string) (SectionType, bool) {
	normalized := punctuation.ReplaceAllString(strings.ToLower(line), "")
	for _, rule := range headerRules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				return rule.section, true
			}
		}
	}
	return "", false
}

// BulletPoints returns the lines that start with a bullet or ordinal marker, with
// the marker stripped.
func BulletPoints(lines []string) []string {
	bullets := []string{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !vocab.BulletMarker.MatchString(line) {
			continue
		}
		bullets = append(bullets, strings.TrimSpace(vocab.BulletMarker.ReplaceAllString(line, "")))
	}
	return bullets
}
