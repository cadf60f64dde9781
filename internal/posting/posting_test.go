package posting

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/cv-copilot/internal/entities"
)

const samplePosting = `Stripe is looking for a Backend Engineer
About us
Requirements:
- 5+ years building Go services
- Experience with Kubernetes
Benefits:
- Remote-first team with flexible hours
- Gym`

func TestAnalyzeRequiredHeaderExample(t *testing.T) {
	a := Analyze("Required: Python, Docker, Leadership")

	assert.Equal(t, []string{"Python", "Docker"}, a.RequiredSkills)
	assert.Equal(t, DefaultRoleTitle, a.RoleTitle)
	assert.Equal(t, DefaultCompanyName, a.CompanyName)
	assert.Equal(t, "Technology", a.Industry)
}

func TestAnalyzeSample(t *testing.T) {
	a := Analyze(samplePosting)

	assert.Equal(t, "Backend Engineer", a.RoleTitle)
	assert.Equal(t, "Stripe", a.CompanyName)
	assert.Equal(t, []string{"5+ years building Go services", "Experience with Kubernetes"}, a.Requirements)
	assert.Equal(t, []string{"Remote-first team with flexible hours"}, a.Benefits)
	assert.Empty(t, a.Responsibilities)
	assert.Equal(t, LevelMid, a.ExperienceLevel)
	assert.Contains(t, a.RequiredSkills, "Kubernetes")
}

func TestRoleTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "label", text: "Position: Senior Backend Engineer\nWe build payments.", want: "Senior Backend Engineer"},
		{name: "seeking", text: "We are seeking a Data Engineer to join", want: "Data Engineer"},
		{name: "leading line", text: "Platform Engineer - Remote", want: "Platform Engineer"},
		{name: "job title label", text: "Job Title: Site Reliability Engineer", want: "Site Reliability Engineer"},
		{name: "role label wins", text: "Role: Staff Engineer\nWe are seeking a Data Engineer", want: "Staff Engineer"},
		{name: "default", text: "no names here", want: DefaultRoleTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RoleTitle(tt.text))
		})
	}
}

func TestCompanyName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "at", text: "Engineer at Globex Corporation", want: "Globex Corporation"},
		{name: "label", text: "Company: Initech\nWe build printers.", want: "Initech"},
		{name: "is looking", text: "Umbrella is looking for engineers", want: "Umbrella"},
		{name: "default", text: "no names here", want: DefaultCompanyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CompanyName(tt.text))
		})
	}
}

// Postings with none of the "at <Company>", "company:" or "is looking" forms must
// fall back to the default name, exactly when entities.CompanyName finds nothing.
func TestCompanyNameFollowsEntities(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"Join Hooli as a backend engineer",
		"Umbrella is hiring engineers",
		"Email us @ Globex today",
		"employer: Initech",
		"careers at the lab",
	} {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			_, ok := entities.CompanyName(text)
			require.False(t, ok)
			assert.Equal(t, DefaultCompanyName, CompanyName(text))
			assert.Equal(t, DefaultCompanyName, Analyze(text).CompanyName)
		})
	}

	for _, text := range []string{
		"Engineer at Globex Corporation",
		"company: Initech",
		"Umbrella is looking for engineers",
	} {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			name, ok := entities.CompanyName(text)
			require.True(t, ok)
			assert.Equal(t, name, Analyze(text).CompanyName)
		})
	}
}

func TestExperienceLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want Level
	}{
		{text: "Senior Go Engineer", want: LevelSenior},
		{text: "Principal Engineer", want: LevelSenior},
		{text: "We need 7+ years of experience", want: LevelSenior},
		{text: "Team Lead, payments", want: LevelLead},
		{text: "Strong leadership skills", want: LevelMid},
		{text: "Director of Engineering", want: LevelExecutive},
		{text: "Head of Platform", want: LevelExecutive},
		{text: "Junior developer, 1 year experience", want: LevelEntry},
		{text: "Graduate role, 2 years experience welcome", want: LevelEntry},
		{text: "Backend developer, 3 years experience", want: LevelMid},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExperienceLevel(tt.text))
		})
	}
}

func TestIndustry(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"We build payment infrastructure": "Financial Technology",
		"Tools for hospital staff":        "Healthcare",
		"Build tools with Go":             "Technology",
	}

	for text, want := range tests {
		t.Run(text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, Industry(text))
		})
	}
}

func TestPreferredSkills(t *testing.T) {
	got := PreferredSkills("Nice to have:\n- Experience with GraphQL and Redis")
	assert.Equal(t, []string{"GraphQL"}, got)

	assert.Empty(t, PreferredSkills("Python only"))
}

func TestSpansInlineTail(t *testing.T) {
	spans := Spans("Required: Python, Docker\nOther text", []string{"required"})
	assert.Equal(t, []string{"Python, Docker\nOther text"}, spans)
}

func TestSpansStopAtNextHeader(t *testing.T) {
	spans := Spans("Requirements:\n- Go\n\nWhat We Offer:\n- Snacks", []string{"requirements"})
	assert.Equal(t, []string{"- Go"}, spans)
}

func TestSpansCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("Requirements:\n")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "- item number %02d long enough\n", i)
	}

	spans := Spans(b.String(), []string{"requirements"})
	require.Len(t, spans, 1)
	assert.Len(t, strings.Split(spans[0], "\n"), MaxSpanLines)
}

func TestResponsibilitiesCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("Responsibilities:\n")
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, "- Maintain component %02d reliably\n", i)
	}

	a := Analyze(b.String())
	require.Len(t, a.Responsibilities, MaxResponsibilities)
	assert.Equal(t, "Maintain component 00 reliably", a.Responsibilities[0])
}

func TestRequirementsOverlappingSpans(t *testing.T) {
	text := "Requirements:\n- 6 years of experience with Go\n- Experience with Kubernetes\nBenefits:"

	a := Analyze(text)
	assert.Equal(t, []string{"6 years of experience with Go", "Experience with Kubernetes"}, a.Requirements)
	assert.Equal(t, LevelSenior, a.ExperienceLevel)
}

func TestBullets(t *testing.T) {
	got := Bullets("- short\n- long enough item\n1. numbered item here\nplain line that is long")
	assert.Equal(t, []string{"long enough item", "numbered item here"}, got)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	assert.Equal(t, Analyze(samplePosting), Analyze(samplePosting))
}
