package application

import (
	"fmt"
	"strings"

	"github.com/spigell/cv-copilot/internal/cv"
	"github.com/spigell/cv-copilot/internal/entities"
	"github.com/spigell/cv-copilot/internal/posting"
	"github.com/spigell/cv-copilot/internal/suggest"
)

const (
	// MaxReportHigh caps the high priority suggestions rendered in a report.
	MaxReportHigh = 5
	// MaxReportMedium caps the medium priority suggestions rendered in a report.
	MaxReportMedium = 3

	maxReportTechnologies = 5
	maxMissingKeywords    = 3
	maxCVKeywords         = 5
)

var nextSteps = []string{
	"Apply the high priority changes first, they have the biggest impact",
	"Mirror the wording of the job posting in your summary and skills section",
	"Add numbers to every achievement you can back up",
	"Review the cover letter and add a detail only you could write",
}

// BuildReport renders the suggestions report for a CV and a job posting.
func BuildReport(resume *cv.Analysis, job *posting.Analysis, suggestions []suggest.Suggestion) string {
	if resume == nil {
		resume = &cv.Analysis{}
	}
	if job == nil {
		job = &posting.Analysis{}
	}

	var high, medium []suggest.Suggestion
	for _, s := range suggestions {
		switch s.Priority {
		case suggest.PriorityHigh:
			high = append(high, s)
		case suggest.PriorityMedium:
			medium = append(medium, s)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 CV Optimization Report: %s at %s\n", job.RoleTitle, job.CompanyName)

	if len(high) > 0 {
		b.WriteString("\n🎯 High Priority Improvements\n")
		for i, s := range head(high, MaxReportHigh) {
			fmt.Fprintf(&b, "\n%d. %s\n", i+1, s.Category)
			fmt.Fprintf(&b, "   Current: %s\n", s.Original)
			fmt.Fprintf(&b, "   Improved: %s\n", s.Suggested)
			fmt.Fprintf(&b, "   Why: %s\n", s.Reasoning)
		}
	}

	if len(medium) > 0 {
		b.WriteString("\n💡 Additional Enhancements\n")
		for _, s := range head(medium, MaxReportMedium) {
			fmt.Fprintf(&b, "\n• %s: %s\n", s.Category, s.Suggested)
			fmt.Fprintf(&b, "  → %s\n", s.Reasoning)
		}
	}

	b.WriteString("\n📊 Analysis Summary\n")
	fmt.Fprintf(&b, "• Required skills in the posting: %d\n", len(job.RequiredSkills))
	fmt.Fprintf(&b, "• Required skills found in your CV: %d\n", len(matchedSkills(resume.Skills.Technical, job.RequiredSkills)))
	fmt.Fprintf(&b, "• Technical skills in your CV: %d\n", len(resume.Skills.Technical))
	fmt.Fprintf(&b, "• Experience level: %s\n", job.ExperienceLevel)
	fmt.Fprintf(&b, "• Industry: %s\n", job.Industry)
	fmt.Fprintf(&b, "• Key technologies: %s\n", listOrNone(head(job.RequiredSkills, maxReportTechnologies)))
	if own := head(entities.Keywords(sectionText(resume)), maxCVKeywords); len(own) > 0 {
		fmt.Fprintf(&b, "• Your CV emphasises: %s\n", strings.Join(own, ", "))
	}
	if missing := missingKeywords(resume, job.Keywords); len(missing) > 0 {
		fmt.Fprintf(&b, "• Missing keywords: %s\n", strings.Join(missing, ", "))
	}

	b.WriteString("\n✅ Next Steps\n")
	for i, step := range nextSteps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	return strings.TrimRight(b.String(), "\n")
}

// missingKeywords returns up to maxMissingKeywords job keywords that no CV section
// mentions.
func missingKeywords(resume *cv.Analysis, keywords []string) []string {
	text := strings.ToLower(sectionText(resume))

	var missing []string
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			continue
		}
		missing = append(missing, kw)
		if len(missing) == maxMissingKeywords {
			break
		}
	}
	return missing
}

// sectionText joins the content of every CV section.
func sectionText(resume *cv.Analysis) string {
	contents := make([]string, 0, len(resume.Sections))
	for _, s := range resume.Sections {
		contents = append(contents, s.Content)
	}
	return strings.Join(contents, "\n")
}

// matchedSkills returns the required skills that some CV skill contains, ignoring case.
func matchedSkills(have, required []string) []string {
	var out []string
	for _, r := range required {
		needle := strings.ToLower(r)
		for _, h := range have {
			if strings.Contains(strings.ToLower(h), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none detected"
	}
	return strings.Join(items, ", ")
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
