// Package cv segments CV text into typed sections and derives experience, skill
// and weakness facts from it.
package cv

import (
	"regexp"
	"strings"

	"github.com/spigell/cv-copilot/internal/entities"
	"github.com/spigell/cv-copilot/internal/vocab"
)

// MaxAchievements caps the achievement sentences kept from a CV.
const MaxAchievements = 10

// SectionType labels a CV section.
type SectionType string

const (
	SectionSummary      SectionType = "summary"
	SectionExperience   SectionType = "experience"
	SectionSkills       SectionType = "skills"
	SectionEducation    SectionType = "education"
	SectionProjects     SectionType = "projects"
	SectionAchievements SectionType = "achievements"
)

// Weakness descriptions reported by Analyze.
const (
	WeaknessNoMetrics     = "Missing quantifiable achievements and metrics"
	WeaknessWeakVerbs     = "Using weak action verbs instead of strong impact-focused verbs"
	WeaknessNoSummary     = "Missing professional summary or objective section"
	WeaknessGenericPhrase = "Contains generic phrases that lack specificity"
)

// Section is a contiguous labelled block of CV text.
type Section struct {
	Type         SectionType `json:"type"`
	Content      string      `json:"content"`
	BulletPoints []string    `json:"bulletPoints"`
}

// Experience holds facts scanned over the whole CV.
type Experience struct {
	Roles        []string `json:"roles"`
	Companies    []string `json:"companies"`
	Achievements []string `json:"achievements"`
	Technologies []string `json:"technologies"`
	Metrics      []string `json:"metrics"`
}

// Skills groups the skills mentioned in a CV.
type Skills struct {
	Technical      []string `json:"technical"`
	Soft           []string `json:"soft"`
	Certifications []string `json:"certifications"`
}

// Analysis is the structured view of a CV.
type Analysis struct {
	Sections   []Section  `json:"sections"`
	Experience Experience `json:"experience"`
	Skills     Skills     `json:"skills"`
	Weaknesses []string   `json:"weaknesses"`
}

// Section returns the first section of the given type.
func (a *Analysis) Section(t SectionType) (*Section, bool) {
	if a == nil {
		return nil, false
	}
	for i := range a.Sections {
		if a.Sections[i].Type == t {
			return &a.Sections[i], true
		}
	}
	return nil, false
}

// Analyze builds an Analysis from raw CV text. It never fails: empty or
// unstructured input yields empty collections.
func Analyze(text string) *Analysis {
	sections := Segment(text)
	return &Analysis{
		Sections:   sections,
		Experience: extractExperience(text),
		Skills:     extractSkills(text),
		Weaknesses: identifyWeaknesses(text, sections),
	}
}

func extractExperience(text string) Experience {
	var companies []string
	for _, m := range vocab.Companies.FindAllStringSubmatch(text, -1) {
		companies = append(companies, strings.Join(strings.Fields(m[1]), " "))
	}

	achievements := achievementSentences(text)
	if len(achievements) > MaxAchievements {
		achievements = achievements[:MaxAchievements]
	}

	return Experience{
		Roles:        entities.MatchAll(vocab.RoleTitles, text),
		Companies:    entities.Unique(companies),
		Achievements: achievements,
		Technologies: entities.Technologies(text),
		Metrics:      entities.MatchAll(vocab.Metrics, text),
	}
}

// achievementSentences returns sentences that open with an achievement verb. A
// verb found mid-sentence is skipped on its own, so the scan resumes right after it
// rather than after the text it matched.
func achievementSentences(text string) []string {
	var out []string
	for pos := 0; pos < len(text); {
		loc := vocab.Achievements.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if !atSentenceStart(text, start) {
			pos = start + 1
			continue
		}
		out = append(out, text[start:end])
		pos = end
	}
	return entities.Unique(out)
}

// atSentenceStart reports whether position i begins a sentence: start of text,
// start of a line (optionally after a bullet marker) or after a terminator.
func atSentenceStart(text string, i int) bool {
	prefix := strings.TrimRight(text[:i], " \t")
	if prefix == "" {
		return true
	}
	switch prefix[len(prefix)-1] {
	case '\n', '.', '!', '?', ':', ';':
		return true
	}

	line := prefix[strings.LastIndexByte(prefix, '\n')+1:]
	line = strings.TrimSpace(line)
	return vocab.BulletMarker.MatchString(line) && vocab.BulletMarker.ReplaceAllString(line, "") == ""
}

func extractSkills(text string) Skills {
	return Skills{
		Technical:      entities.Technologies(text),
		Soft:           entities.SoftSkills(text),
		Certifications: entities.Certifications(text),
	}
}

func identifyWeaknesses(text string, sections []Section) []string {
	weaknesses := []string{}
	lower := strings.ToLower(text)

	if !vocab.Quantification.MatchString(text) {
		weaknesses = append(weaknesses, WeaknessNoMetrics)
	}

	if containsAny(lower, vocab.WeakPhrases()) {
		weaknesses = append(weaknesses, WeaknessWeakVerbs)
	}

	hasSummary := false
	for _, s := range sections {
		if s.Type == SectionSummary {
			hasSummary = true
			break
		}
	}
	if !hasSummary {
		weaknesses = append(weaknesses, WeaknessNoSummary)
	}

	if containsAny(lower, vocab.GenericPhrases()) {
		weaknesses = append(weaknesses, WeaknessGenericPhrase)
	}

	return weaknesses
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

var punctuation = regexp.MustCompile(`[^\w\s]`)
