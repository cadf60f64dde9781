// Package posting derives a structured profile from job posting text and loads
// postings from files or web pages.
package posting

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/cv-copilot/internal/entities"
	"github.com/spigell/cv-copilot/internal/vocab"
)

// Level is the seniority a posting asks for.
type Level string

const (
	LevelEntry     Level = "entry"
	LevelMid       Level = "mid"
	LevelSenior    Level = "senior"
	LevelLead      Level = "lead"
	LevelExecutive Level = "executive"
)

// Placeholders used when a value cannot be extracted.
const (
	DefaultRoleTitle   = "Position"
	DefaultCompanyName = "Company"
)

// Caps applied to the bullet lists of an Analysis.
const (
	MaxResponsibilities = 10
	MaxRequirements     = 10
	MaxBenefits         = 8
	// SeniorYears is the required experience from which a posting counts as senior.
	SeniorYears = 5
)

// Analysis is the structured profile of a job posting.
type Analysis struct {
	RoleTitle        string   `json:"roleTitle"`
	CompanyName      string   `json:"companyName"`
	RequiredSkills   []string `json:"requiredSkills"`
	PreferredSkills  []string `json:"preferredSkills"`
	Keywords         []string `json:"keywords"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	ExperienceLevel  Level    `json:"experienceLevel"`
	Industry         string   `json:"industry"`
	Benefits         []string `json:"benefits"`
}

var (
	// Consulted only when entities.RoleTitle finds nothing.
	roleTitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i:job title|title):[ \t]*([A-Z][^,.;:()\n]*)`),
		regexp.MustCompile(`(?i:hiring|seeking|looking for)[ \t]+(?:(?i:an?)[ \t]+)?([A-Z][\w+#./&-]*(?:[ \t]+[A-Z][\w+#./&-]*)*)`),
		regexp.MustCompile(`(?m)^([A-Z][a-zA-Z \t-]+?)(?:[ \t]-[ \t]|[ \t]at[ \t])`),
	}

)

// Analyze builds an Analysis from raw posting text. Every sub-extraction scans the
// full text independently and degrades to an empty list or a placeholder.
func Analyze(text string) *Analysis {
	return &Analysis{
		RoleTitle:        RoleTitle(text),
		CompanyName:      CompanyName(text),
		RequiredSkills:   RequiredSkills(text),
		PreferredSkills:  PreferredSkills(text),
		Keywords:         entities.RankedKeywords(text),
		Responsibilities: bulletsUnder(text, vocab.ResponsibilityHeaders(), MaxResponsibilities),
		Requirements:     bulletsUnder(text, vocab.RequirementHeaders(), MaxRequirements),
		ExperienceLevel:  ExperienceLevel(text),
		Industry:         Industry(text),
		Benefits:         bulletsUnder(text, vocab.BenefitHeaders(), MaxBenefits),
	}
}

// RoleTitle returns the advertised role or DefaultRoleTitle. The labelled and
// "hiring" forms of entities.RoleTitle win over the looser posting patterns.
func RoleTitle(text string) string {
	if title, ok := entities.RoleTitle(text); ok {
		return title
	}
	if title, ok := entities.FirstMatch(roleTitlePatterns, text); ok {
		return title
	}
	return DefaultRoleTitle
}

// CompanyName returns the company found by entities.CompanyName or
// DefaultCompanyName.
func CompanyName(text string) string {
	if name, ok := entities.CompanyName(text); ok {
		return name
	}
	return DefaultCompanyName
}

// RequiredSkills returns vocabulary matches anywhere in the text, followed by any
// additional matches inside requirement spans.
func RequiredSkills(text string) []string {
	skills := entities.MatchAll(vocab.PostingTechnologies, text)
	for _, span := range Spans(text, vocab.RequiredHeaders()) {
		skills = append(skills, entities.MatchAll(vocab.PostingTechnologies, span)...)
	}
	return entities.Unique(skills)
}

// PreferredSkills returns vocabulary matches inside "nice to have" style spans.
func PreferredSkills(text string) []string {
	var skills []string
	for _, span := range Spans(text, vocab.PreferredHeaders()) {
		skills = append(skills, entities.MatchAll(vocab.PreferredTechnologies, span)...)
	}
	return entities.Unique(skills)
}

// ExperienceLevel classifies the seniority of a posting. Rules run in a fixed
// order and the first one that holds wins: senior, lead, executive, entry, mid.
// "lead" is its own level; only explicit senior/principal wording or five or more
// years of experience make a posting senior.
func ExperienceLevel(text string) Level {
	lower := strings.ToLower(text)

	if vocab.SeniorLevel.MatchString(lower) || requiredYears(lower) >= SeniorYears {
		return LevelSenior
	}
	if vocab.LeadLevel.MatchString(lower) {
		return LevelLead
	}
	if vocab.ExecutiveLevel.MatchString(lower) {
		return LevelExecutive
	}
	if vocab.EntryLevel.MatchString(lower) || vocab.FewYears.MatchString(lower) {
		return LevelEntry
	}
	return LevelMid
}

// requiredYears returns the first "N years experience" figure, or 0.
func requiredYears(lower string) int {
	m := vocab.YearsRequired.FindStringSubmatch(lower)
	if len(m) < 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// Industry returns the first industry whose keywords occur in the text.
func Industry(text string) string {
	lower := strings.ToLower(text)
	for _, ind := range vocab.Industries() {
		for _, kw := range ind.Keywords {
			if strings.Contains(lower, kw) {
				return ind.Name
			}
		}
	}
	return vocab.DefaultIndustry
}

// bulletsUnder collects bullets from every span of headers. Spans may overlap when a
// bullet itself mentions a header phrase, so repeated items are dropped.
func bulletsUnder(text string, headers []string, limit int) []string {
	var items []string
	for _, span := range Spans(text, headers) {
		items = append(items, Bullets(span)...)
	}
	items = entities.Unique(items)
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
