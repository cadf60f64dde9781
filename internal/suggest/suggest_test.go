package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/cv-copilot/internal/cv"
	"github.com/spigell/cv-copilot/internal/posting"
)

func categories(suggestions []Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Category)
	}
	return out
}

func TestGenerateBillingExample(t *testing.T) {
	resume := cv.Analyze("EXPERIENCE\n- worked on the billing API\nSKILLS\nJavaScript, SQL")
	job := posting.Analyze("Required: Python, Docker, Leadership")

	got := Generate(resume, job)

	require.Equal(t, []string{CategoryActionVerbs, CategoryQuantification, CategorySkillsAlignment, CategorySummary}, categories(got))
	for _, s := range got {
		assert.Equal(t, PriorityHigh, s.Priority)
		assert.NotEmpty(t, s.Original)
		assert.NotEmpty(t, s.Suggested)
		assert.NotEmpty(t, s.Reasoning)
	}

	assert.Equal(t, `"worked on the billing API"`, got[0].Original)
	assert.Equal(t, `"Delivered the billing API"`, got[0].Suggested)
	assert.Equal(t, `Replace weak verb "worked on" with stronger action verb "Delivered" to show direct impact`, got[0].Reasoning)

	assert.Equal(t, `"worked on the billing API (achieving 95% success rate)"`, got[1].Suggested)

	assert.Equal(t, `Current skills section: "JavaScript, SQL..."`, got[2].Original)
	assert.Equal(t, "Add these job-critical skills if you have experience: Python, Docker", got[2].Suggested)

	assert.Equal(t, "Add a 2-3 line summary highlighting: Position experience, Python and Docker, and relevant achievements", got[3].Suggested)
}

const rankedCV = `SUMMARY
Backend engineer
EXPERIENCE
- Responsible for the deployment pipeline
SKILLS
Python, Docker
ACHIEVEMENTS
Led the platform team.`

const rankedJob = "Required: Python, Kubernetes\nWe build scalable platform services"

func TestGeneratePriorityOrder(t *testing.T) {
	got := Generate(cv.Analyze(rankedCV), posting.Analyze(rankedJob))

	require.Equal(t, []string{
		CategoryActionVerbs,
		CategoryQuantification,
		CategorySkillsAlignment,
		CategorySkillsPriority,
		CategorySummaryKeywords,
		CategoryAchievementQuant,
	}, categories(got))

	seenLower := false
	for _, s := range got {
		if s.Priority != PriorityHigh {
			seenLower = true
			continue
		}
		assert.False(t, seenLower, "high priority suggestion after a lower one")
	}

	assert.Equal(t, `"Implemented the deployment pipeline"`, got[0].Suggested)
	assert.Equal(t, "Reorder skills to lead with: Python", got[3].Suggested)
	assert.Equal(t, "Incorporate these job-relevant terms: required, python, kubernetes", got[4].Suggested)
	assert.Equal(t, `Current summary: "Backend engineer"`, got[4].Original)
	assert.Equal(t, `"Led the platform team - leading team of 5+ developers"`, got[5].Suggested)
}

func TestGenerateWithoutSkillsSection(t *testing.T) {
	resume := cv.Analyze("EXPERIENCE\n- Shipped features 3 times a week")
	job := posting.Analyze("Required: Docker")

	got := Generate(resume, job)

	var alignment *Suggestion
	for i := range got {
		if got[i].Category == CategorySkillsAlignment {
			alignment = &got[i]
		}
	}
	require.NotNil(t, alignment)
	assert.Equal(t, "No skills section found", alignment.Original)
}

func TestDisableByName(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	steps := DefaultAnalyzers()
	DisableByName(steps, "skills", "not needed")

	got := New(zap.New(core), steps...).Generate(cv.Analyze(rankedCV), posting.Analyze(rankedJob))

	assert.NotContains(t, categories(got), CategorySkillsAlignment)
	assert.NotContains(t, categories(got), CategorySkillsPriority)

	entries := logs.FilterMessage("analyzer disabled").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "skills", entries[0].ContextMap()["name"])
	assert.Equal(t, "not needed", entries[0].ContextMap()["reason"])
}

func TestGenerateNilAnalyses(t *testing.T) {
	got := Generate(nil, nil)
	require.Len(t, got, 1)
	assert.Equal(t, CategorySummary, got[0].Category)
}

func TestMissingSummaryWithoutRequiredSkills(t *testing.T) {
	got := NewSummary().Apply(Input{
		CV:  &cv.Analysis{},
		Job: &posting.Analysis{RoleTitle: "Site Reliability Engineer"},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Add a 2-3 line summary highlighting: Site Reliability Engineer experience, and relevant achievements", got[0].Suggested)
}

func TestStrongVerbs(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"helped with building the API":    "Architected",
		"involved in team hiring":         "Led",
		"assisted with optimizing builds": "Architected",
		"participated in deploy rotation": "Implemented",
		"responsible for research":        "Analyzed",
		"worked on stuff":                 "Delivered",
	}

	for bullet, want := range tests {
		t.Run(bullet, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, strongVerbs(bullet)[0])
		})
	}
}

func TestMetricFor(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Tuned page load":          "reduced load time by 40%",
		"Onboarded new customers":  "impacting 10,000+ users",
		"Grew the team":            "leading team of 5+ developers",
		"Cut cloud budget":         "saving $50K annually",
		"Met every deadline":       "delivering 2 weeks ahead of schedule",
		"Boosted sales":            "contributing to 15% revenue increase",
		"Wrote documentation":      "achieving 95% success rate",
		"Improved speed for users": "reduced load time by 40%",
	}

	for text, want := range tests {
		t.Run(text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, metricFor(text))
		})
	}
}

func TestReplaceFold(t *testing.T) {
	got := replaceFold("Worked on X and worked on Y", "worked on", "Delivered")
	assert.Equal(t, "Delivered X and Delivered Y", got)
}

func TestPriorityRank(t *testing.T) {
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Greater(t, PriorityLow.Rank(), Priority("other").Rank())
}
