package suggest

import (
	"regexp"
	"strings"

	"github.com/spigell/cv-copilot/internal/vocab"
)

// strongVerbs returns replacement verbs for a bullet, strongest first, chosen by the
// first context whose words occur in it.
func strongVerbs(bullet string) []string {
	lower := strings.ToLower(bullet)
	for _, vc := range vocab.VerbContexts() {
		if containsAny(lower, vc.Words) {
			return vc.Verbs
		}
	}
	return vocab.DefaultVerbs()
}

// metricFor returns the canned metric phrase for the first context that occurs in text.
func metricFor(text string) string {
	lower := strings.ToLower(text)
	for _, mc := range vocab.MetricContexts() {
		if containsAny(lower, mc.Words) {
			return mc.Metric
		}
	}
	return vocab.DefaultMetric().Metric
}

// weakPhrase returns the first weak phrase found in text.
func weakPhrase(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, p := range vocab.WeakPhrases() {
		if strings.Contains(lower, p) {
			return p, true
		}
	}
	return "", false
}

// replaceFold replaces every case-insensitive occurrence of old in s.
func replaceFold(s, old, replacement string) string {
	return regexp.MustCompile(`(?i)`+regexp.QuoteMeta(old)).ReplaceAllLiteralString(s, replacement)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// fuzzyHas reports whether any of have contains want, ignoring case.
func fuzzyHas(have []string, want string) bool {
	want = strings.ToLower(want)
	for _, h := range have {
		if strings.Contains(strings.ToLower(h), want) {
			return true
		}
	}
	return false
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func quote(s string) string {
	return `"` + s + `"`
}
