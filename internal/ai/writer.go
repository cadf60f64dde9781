package ai

import (
	"context"

	"github.com/spigell/cv-copilot/internal/cv"
	"github.com/spigell/cv-copilot/internal/posting"
	"github.com/spigell/cv-copilot/internal/suggest"
)

// Input is the analysed application handed to a Writer.
type Input struct {
	CV            *cv.Analysis
	Job           *posting.Analysis
	Suggestions   []suggest.Suggestion
	CVText        string
	JobText       string
	PersonalTouch string
}

// Writer renders the two artifacts of an application.
type Writer interface {
	Name() string
	Suggestions(ctx context.Context, in *Input) (string, error)
	CoverLetter(ctx context.Context, in *Input) (string, error)
}
