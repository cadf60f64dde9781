package suggest

import (
	"fmt"
	"strings"

	"github.com/spigell/cv-copilot/internal/cv"
	"github.com/spigell/cv-copilot/internal/vocab"
)

const (
	maxMissingSkills   = 3
	maxPrioritySkills  = 5
	maxSummarySkills   = 2
	maxSummaryKeywords = 3
	skillsPreviewRunes = 100
)

type experienceAnalyzer struct{ toggle }

// NewExperience creates the analyzer that rewords weak experience bullets and asks
// for metrics on bullets without numbers.
func NewExperience() Analyzer { return &experienceAnalyzer{} }

func (a *experienceAnalyzer) Name() string { return "experience" }

func (a *experienceAnalyzer) Apply(in Input) []Suggestion {
	section, ok := in.CV.Section(cv.SectionExperience)
	if !ok {
		return nil
	}

	var out []Suggestion
	for _, bullet := range section.BulletPoints {
		if bullet == "" {
			continue
		}
		weak, ok := weakPhrase(bullet)
		if !ok {
			continue
		}
		verb := strongVerbs(bullet)[0]
		out = append(out, Suggestion{
			Category:  CategoryActionVerbs,
			Original:  quote(bullet),
			Suggested: quote(replaceFold(bullet, weak, verb)),
			Reasoning: fmt.Sprintf("Replace weak verb %q with stronger action verb %q to show direct impact", weak, verb),
			Priority:  PriorityHigh,
		})
	}

	for _, bullet := range section.BulletPoints {
		if bullet == "" || vocab.Digits.MatchString(bullet) {
			continue
		}
		out = append(out, Suggestion{
			Category:  CategoryQuantification,
			Original:  quote(bullet),
			Suggested: quote(fmt.Sprintf("%s (%s)", bullet, metricFor(bullet))),
			Reasoning: "Add specific metrics to demonstrate measurable impact",
			Priority:  PriorityHigh,
		})
	}

	return out
}

type skillsAnalyzer struct{ toggle }

// NewSkills creates the analyzer that compares required skills with CV skills.
func NewSkills() Analyzer { return &skillsAnalyzer{} }

func (a *skillsAnalyzer) Name() string { return "skills" }

func (a *skillsAnalyzer) Apply(in Input) []Suggestion {
	technical := in.CV.Skills.Technical

	var missing, matched []string
	for _, skill := range in.Job.RequiredSkills {
		if fuzzyHas(technical, skill) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	var out []Suggestion
	if len(missing) > 0 {
		current := "No skills section found"
		if section, ok := in.CV.Section(cv.SectionSkills); ok {
			current = "Current skills section: " + quote(preview(section.Content)+"...")
		}
		out = append(out, Suggestion{
			Category:  CategorySkillsAlignment,
			Original:  current,
			Suggested: "Add these job-critical skills if you have experience: " + strings.Join(head(missing, maxMissingSkills), ", "),
			Reasoning: "These skills are specifically mentioned as requirements in the job posting",
			Priority:  PriorityHigh,
		})
	}

	if len(matched) > 0 {
		out = append(out, Suggestion{
			Category:  CategorySkillsPriority,
			Original:  "Current skills order",
			Suggested: "Reorder skills to lead with: " + strings.Join(head(matched, maxPrioritySkills), ", "),
			Reasoning: "Place job-relevant skills first to catch recruiter attention",
			Priority:  PriorityMedium,
		})
	}

	return out
}

// preview returns the first skillsPreviewRunes runes of s.
func preview(s string) string {
	return string(head([]rune(s), skillsPreviewRunes))
}

type summaryAnalyzer struct{ toggle }

// NewSummary creates the analyzer that checks the professional summary.
func NewSummary() Analyzer { return &summaryAnalyzer{} }

func (a *summaryAnalyzer) Name() string { return "summary" }

func (a *summaryAnalyzer) Apply(in Input) []Suggestion {
	section, ok := in.CV.Section(cv.SectionSummary)
	if !ok {
		highlights := in.Job.RoleTitle + " experience"
		if skills := head(in.Job.RequiredSkills, maxSummarySkills); len(skills) > 0 {
			highlights += ", " + strings.Join(skills, " and ")
		}
		return []Suggestion{{
			Category:  CategorySummary,
			Original:  "Missing professional summary",
			Suggested: "Add a 2-3 line summary highlighting: " + highlights + ", and relevant achievements",
			Reasoning: "A targeted summary immediately shows alignment with the role",
			Priority:  PriorityHigh,
		}}
	}

	summary := strings.ToLower(section.Content)
	var missing []string
	for _, kw := range in.Job.Keywords {
		if !strings.Contains(summary, strings.ToLower(kw)) {
			missing = append(missing, kw)
		}
		if len(missing) == maxSummaryKeywords {
			break
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return []Suggestion{{
		Category:  CategorySummaryKeywords,
		Original:  "Current summary: " + quote(section.Content),
		Suggested: "Incorporate these job-relevant terms: " + strings.Join(missing, ", "),
		Reasoning: "Including job-specific keywords helps pass ATS screening",
		Priority:  PriorityMedium,
	}}
}

type achievementsAnalyzer struct{ toggle }

// NewAchievements creates the analyzer that asks for numbers on achievement sentences.
func NewAchievements() Analyzer { return &achievementsAnalyzer{} }

func (a *achievementsAnalyzer) Name() string { return "achievements" }

func (a *achievementsAnalyzer) Apply(in Input) []Suggestion {
	var out []Suggestion
	for _, achievement := range in.CV.Experience.Achievements {
		if achievement == "" || vocab.Digits.MatchString(achievement) {
			continue
		}
		out = append(out, Suggestion{
			Category:  CategoryAchievementQuant,
			Original:  quote(achievement),
			Suggested: quote(fmt.Sprintf("%s - %s", strings.TrimSuffix(achievement, "."), metricFor(achievement))),
			Reasoning: "Add specific numbers to make achievements more impactful",
			Priority:  PriorityMedium,
		})
	}
	return out
}
