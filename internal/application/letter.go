package application

import (
	"fmt"
	"strings"

	"github.com/spigell/cv-copilot/internal/cv"
	"github.com/spigell/cv-copilot/internal/posting"
	"github.com/spigell/cv-copilot/internal/vocab"
)

const (
	maxOpeningSkills      = 2
	maxLetterAchievements = 2
	maxToolkitSkills      = 4
)

const (
	salutation = "Dear Hiring Manager,"
	closing    = "I would welcome the opportunity to discuss how my skills and enthusiasm can contribute to your team's success. Thank you for considering my application."
	signature  = "Best regards,\n[Your Name]"
)

// BuildCoverLetter renders a cover letter for job from the CV analysis. A non-blank
// personalTouch is included verbatim as its own paragraph.
func BuildCoverLetter(job *posting.Analysis, resume *cv.Analysis, personalTouch string) string {
	if resume == nil {
		resume = &cv.Analysis{}
	}
	if job == nil {
		job = &posting.Analysis{}
	}

	matched := matchingTechnologies(resume.Skills.Technical, job.RequiredSkills)

	opening := fmt.Sprintf("I am writing to express my strong interest in the %s position at %s.", job.RoleTitle, job.CompanyName)
	if len(matched) > 0 {
		opening += fmt.Sprintf(" With hands-on experience in %s, I am confident I can make an immediate contribution to your team.", joinAnd(head(matched, maxOpeningSkills)))
	}

	paragraphs := []string{salutation, opening}

	if achievements := relevantAchievements(resume.Experience.Achievements, job.RequiredSkills); len(achievements) > 0 {
		paragraphs = append(paragraphs, "Among my recent accomplishments, I "+strings.Join(achievements, ", and I ")+".")
	}

	if len(matched) > 0 {
		toolkit := fmt.Sprintf("My technical toolkit includes %s, which aligns closely with your requirements", strings.Join(head(matched, maxToolkitSkills), ", "))
		if len(resume.Experience.Metrics) > 0 {
			toolkit += fmt.Sprintf(", and I have a track record of measurable results such as %s", resume.Experience.Metrics[0])
		}
		paragraphs = append(paragraphs, toolkit+".")
	}

	if job.Industry != "" && job.Industry != vocab.DefaultIndustry {
		paragraphs = append(paragraphs, fmt.Sprintf("I am particularly drawn to the %s space and excited about the impact %s is making there.", job.Industry, job.CompanyName))
	}

	if strings.TrimSpace(personalTouch) != "" {
		paragraphs = append(paragraphs, personalTouch)
	}

	paragraphs = append(paragraphs, closing, signature)
	return strings.Join(paragraphs, "\n\n")
}

// matchingTechnologies returns the CV technologies that contain a required skill.
func matchingTechnologies(technologies, required []string) []string {
	var out []string
	for _, tech := range technologies {
		lower := strings.ToLower(tech)
		for _, r := range required {
			if strings.Contains(lower, strings.ToLower(r)) {
				out = append(out, tech)
				break
			}
		}
	}
	return out
}

// relevantAchievements returns up to maxLetterAchievements achievement sentences
// that mention a required skill, lower-cased and without the final period.
func relevantAchievements(achievements, required []string) []string {
	var out []string
	for _, a := range achievements {
		lower := strings.ToLower(a)
		for _, r := range required {
			if strings.Contains(lower, strings.ToLower(r)) {
				out = append(out, strings.TrimRight(lower, ".!? "))
				break
			}
		}
		if len(out) == maxLetterAchievements {
			break
		}
	}
	return out
}

func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
