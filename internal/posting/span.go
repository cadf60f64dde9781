package posting

import (
	"regexp"
	"strings"

	"github.com/spigell/cv-copilot/internal/vocab"
)

const (
	// MaxSpanLines caps the number of non-blank lines collected under a header.
	MaxSpanLines = 20
	// MinBulletLength is the length a bullet must exceed to be kept.
	MinBulletLength = 10
)

// nextHeader matches a line that opens another block: it starts with a capital,
// ends with a colon and is not a sentence.
var nextHeader = regexp.MustCompile(`^[A-Z][^.]*:$`)

// Spans returns the text following every line that mentions one of headers. A span
// starts with whatever follows the header's colon on the same line, continues with
// the following non-blank lines and stops at the next header-looking line or after
// MaxSpanLines lines.
func Spans(text string, headers []string) []string {
	lines := strings.Split(text, "\n")
	var spans []string

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !mentionsAny(strings.ToLower(line), headers) {
			continue
		}

		var body []string
		if _, tail, ok := strings.Cut(line, ":"); ok {
			if tail = strings.TrimSpace(tail); tail != "" {
				body = append(body, tail)
			}
		}

		j := i + 1
		for ; j < len(lines) && len(body) < MaxSpanLines; j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" {
				continue
			}
			if nextHeader.MatchString(next) {
				break
			}
			body = append(body, next)
		}

		if len(body) > 0 {
			spans = append(spans, strings.Join(body, "\n"))
		}
	}

	return spans
}

// Bullets returns the marked lines of a span with their markers stripped, keeping
// only items longer than MinBulletLength.
func Bullets(span string) []string {
	var out []string
	for _, raw := range strings.Split(span, "\n") {
		line := strings.TrimSpace(raw)
		if !vocab.BulletMarker.MatchString(line) {
			continue
		}
		item := strings.TrimSpace(vocab.BulletMarker.ReplaceAllString(line, ""))
		if len(item) <= MinBulletLength {
			continue
		}
		out = append(out, item)
	}
	return out
}

func mentionsAny(line string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(line, p) {
			return true
		}
	}
	return false
}
