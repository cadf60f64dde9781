package application

import (
	"context"

	"github.com/spigell/cv-copilot/internal/ai"
)

// RuleWriter renders both artifacts from the analyses alone. It never fails and is
// the fallback for every other writer.
type RuleWriter struct{}

var _ ai.Writer = RuleWriter{}

func (RuleWriter) Name() string { return "rules" }

func (RuleWriter) Suggestions(_ context.Context, in *ai.Input) (string, error) {
	return BuildReport(in.CV, in.Job, in.Suggestions), nil
}

func (RuleWriter) CoverLetter(_ context.Context, in *ai.Input) (string, error) {
	return BuildCoverLetter(in.Job, in.CV, in.PersonalTouch), nil
}
