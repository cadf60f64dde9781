// Package suggest cross-references a CV analysis with a job posting analysis and
// produces ranked, concrete CV edits.
package suggest

import (
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/cv-copilot/internal/cv"
	"github.com/spigell/cv-copilot/internal/posting"
)

// Priority ranks a suggestion.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities: high > medium > low. Unknown values rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Suggestion categories.
const (
	CategoryActionVerbs      = "Action Verbs"
	CategoryQuantification   = "Quantification"
	CategorySkillsAlignment  = "Skills Alignment"
	CategorySkillsPriority   = "Skills Priority"
	CategorySummary          = "Professional Summary"
	CategorySummaryKeywords  = "Summary Keywords"
	CategoryAchievementQuant = "Achievement Quantification"
)

// Suggestion is one concrete CV edit. All fields are always populated.
type Suggestion struct {
	Category  string   `json:"category"`
	Original  string   `json:"original"`
	Suggested string   `json:"suggested"`
	Reasoning string   `json:"reasoning"`
	Priority  Priority `json:"priority"`
}

// Input is what every analyzer reads. Analyzers never modify it.
type Input struct {
	CV  *cv.Analysis
	Job *posting.Analysis
}

// Analyzer is a single suggestion-producing step.
type Analyzer interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(in Input) []Suggestion
}

// DefaultAnalyzers returns the analyzers in their canonical order: experience,
// skills, summary, achievements.
func DefaultAnalyzers() []Analyzer {
	return []Analyzer{
		NewExperience(),
		NewSkills(),
		NewSummary(),
		NewAchievements(),
	}
}

// DisableByName marks the analyzer with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Analyzer, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Generator runs analyzers in order and ranks their output.
type Generator struct {
	logger *zap.Logger
	steps  []Analyzer
}

// New creates a Generator. Without explicit steps DefaultAnalyzers is used.
func New(logger *zap.Logger, steps ...Analyzer) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(steps) == 0 {
		steps = DefaultAnalyzers()
	}
	return &Generator{logger: logger, steps: steps}
}

// Generate runs the default analyzers without logging.
func Generate(resume *cv.Analysis, job *posting.Analysis) []Suggestion {
	return New(nil).Generate(resume, job)
}

// Generate concatenates the output of every enabled analyzer and stable-sorts it by
// priority, so suggestions of equal priority keep the order their analyzers ran in.
func (g *Generator) Generate(resume *cv.Analysis, job *posting.Analysis) []Suggestion {
	if resume == nil {
		resume = &cv.Analysis{}
	}
	if job == nil {
		job = &posting.Analysis{}
	}
	in := Input{CV: resume, Job: job}

	suggestions := []Suggestion{}
	for _, step := range g.steps {
		if !step.IsEnabled() {
			fields := []zap.Field{zap.String("name", step.Name())}
			if r, ok := step.(reasoner); ok && r.Reason() != "" {
				fields = append(fields, zap.String("reason", r.Reason()))
			}
			g.logger.Info("analyzer disabled", fields...)
			continue
		}

		produced := step.Apply(in)
		g.logger.Debug("analyzer step",
			zap.String("name", step.Name()),
			zap.Int("produced", len(produced)),
		)
		suggestions = append(suggestions, produced...)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority.Rank() > suggestions[j].Priority.Rank()
	})

	g.logger.Info("suggestions generated", zap.Int("total", len(suggestions)))
	return suggestions
}

// toggle carries the enabled state shared by all analyzers.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) Reason() string { return t.reason }

type reasoner interface {
	Reason() string
}
