// Package entities extracts technologies, skills, keywords and named entities from
// free text using the fixed vocabularies in package vocab.
package entities

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/spigell/cv-copilot/internal/vocab"
)

// MaxKeywords caps the keyword lists returned by Keywords and RankedKeywords.
const MaxKeywords = 20

var (
	nonWord = regexp.MustCompile(`[^\w\s]`)

	// Tried in order; the first pattern that matches anywhere wins.
	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bat[ \t]+(` + capitalizedPhrase + `)`),
		regexp.MustCompile(`(?i:company):[ \t]*(` + capitalizedPhrase + `)`),
		regexp.MustCompile(`(` + capitalizedPhrase + `)[ \t]+is[ \t]+looking`),
	}

	roleTitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i:position):[ \t]*(` + capitalizedPhrase + `)`),
		regexp.MustCompile(`(?i:role):[ \t]*(` + capitalizedPhrase + `)`),
		regexp.MustCompile(`(?i:hiring)[ \t]+(` + capitalizedPhrase + `)`),
	}

	// Words that end a captured name: "Acme Corp We are hiring" yields "Acme Corp".
	nameBreakers = []string{"we", "our", "is", "are", "the"}
)

// capitalizedPhrase is a run of capitalised tokens on a single line.
const capitalizedPhrase = `[A-Z][\w&+#./-]*(?:[ \t]+[A-Z][\w&+#./-]*)*`

// MatchAll returns every match of pattern in text in document order, keeping only
// the first occurrence of identical matches.
func MatchAll(pattern *regexp.Regexp, text string) []string {
	return unique(pattern.FindAllString(text, -1))
}

// Technologies returns technology names found in a CV.
func Technologies(text string) []string {
	return MatchAll(vocab.CVTechnologies, text)
}

// SoftSkills returns soft-skill phrases found in text.
func SoftSkills(text string) []string {
	return MatchAll(vocab.SoftSkills, text)
}

// Certifications returns certification mentions found in text.
func Certifications(text string) []string {
	return MatchAll(vocab.Certifications, text)
}

// Keywords lower-cases text, strips punctuation and returns the first MaxKeywords
// distinct tokens longer than two characters that are not stop words.
func Keywords(text string) []string {
	stop := toSet(vocab.StopWords())
	var out []string
	seen := make(map[string]struct{})
	for _, word := range tokenize(text) {
		if len(word) <= 2 {
			continue
		}
		if _, ok := stop[word]; ok {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
		if len(out) == MaxKeywords {
			break
		}
	}
	return out
}

// RankedKeywords is the job posting variant of Keywords: tokens must be longer than
// three characters, the extended stop list applies, and the result is ordered by
// frequency descending (ties keep first-occurrence order) before truncation.
func RankedKeywords(text string) []string {
	stop := toSet(vocab.PostingStopWords())
	counts := make(map[string]int)
	var order []string
	for _, word := range tokenize(text) {
		if len(word) <= 3 {
			continue
		}
		if _, ok := stop[word]; ok {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > MaxKeywords {
		order = order[:MaxKeywords]
	}
	return order
}

// CompanyName returns the company named in text, if any.
func CompanyName(text string) (string, bool) {
	return FirstMatch(companyPatterns, text)
}

// RoleTitle returns the advertised role title, if any.
func RoleTitle(text string) (string, bool) {
	return FirstMatch(roleTitlePatterns, text)
}

// FirstMatch tries patterns in order and returns the cleaned first capture group
// of the first pattern that matches. Later patterns are not consulted even if they
// would produce a longer or better name.
func FirstMatch(patterns []*regexp.Regexp, text string) (string, bool) {
	for _, pattern := range patterns {
		m := pattern.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if name := CleanName(m[1]); name != "" {
			return name, true
		}
	}
	return "", false
}

// CleanName collapses whitespace, cuts the name at a sentence-continuing word and
// drops trailing punctuation.
func CleanName(raw string) string {
	words := strings.Fields(raw)
	for i, w := range words {
		if i > 0 && slices.Contains(nameBreakers, strings.ToLower(w)) {
			words = words[:i]
			break
		}
	}
	return strings.TrimRight(strings.Join(words, " "), ".,;:-")
}

func tokenize(text string) []string {
	return strings.Fields(nonWord.ReplaceAllString(strings.ToLower(text), " "))
}

func unique(items []string) []string {
	if len(items) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Unique deduplicates items preserving first occurrence and drops blanks.
func Unique(items []string) []string {
	return unique(items)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
