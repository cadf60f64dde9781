// Package application runs the full pipeline for one job application: CV and job
// analysis, suggestion generation, the suggestions report and the cover letter.
package application

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/cv-copilot/internal/ai"
	"github.com/spigell/cv-copilot/internal/cv"
	"github.com/spigell/cv-copilot/internal/logger"
	"github.com/spigell/cv-copilot/internal/posting"
	"github.com/spigell/cv-copilot/internal/suggest"
)

// EmptyCVPlaceholder stands in for a CV that could not be read.
const EmptyCVPlaceholder = "No CV content available"

// ErrProcessingFailed is the only error Process returns. The cause is logged, never
// exposed; callers retry the whole request.
var ErrProcessingFailed = errors.New("failed to process application data")

// Request is one application to process.
type Request struct {
	JobDescription string `json:"jobDescription" binding:"required"`
	PersonalTouch  string `json:"personalTouch"`
	CVText         string `json:"cvText"`
}

// Results are the rendered artifacts of an application.
type Results struct {
	ApplicationID string `json:"applicationId"`
	CVSuggestions string `json:"cvSuggestions"`
	CoverLetter   string `json:"coverLetter"`
}

// Analysis is the structured output of the analysis stage.
type Analysis struct {
	CV          *cv.Analysis         `json:"cv"`
	Job         *posting.Analysis    `json:"job"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
}

// Swapped in tests.
var (
	analyzeCV      = cv.Analyze
	analyzePosting = posting.Analyze
)

// Orchestrator wires analyzers, the suggestion generator and a writer.
type Orchestrator struct {
	logger    *zap.Logger
	writer    ai.Writer
	fallback  ai.Writer
	generator *suggest.Generator
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

// WithWriter sets the writer used for both artifacts. RuleWriter stays the fallback.
func WithWriter(w ai.Writer) Option {
	return func(o *Orchestrator) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithGenerator replaces the default suggestion generator.
func WithGenerator(g *suggest.Generator) Option {
	return func(o *Orchestrator) {
		if g != nil {
			o.generator = g
		}
	}
}

// New creates an Orchestrator that writes with RuleWriter unless told otherwise.
func New(log *zap.Logger, opts ...Option) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	o := &Orchestrator{
		logger:   log,
		writer:   RuleWriter{},
		fallback: RuleWriter{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.generator == nil {
		o.generator = suggest.New(log)
	}
	return o
}

// Writer returns the configured writer.
func (o *Orchestrator) Writer() ai.Writer { return o.writer }

// Analyze runs CV and job analysis concurrently, then generates suggestions.
func (o *Orchestrator) Analyze(ctx context.Context, cvText, jobText string) (*Analysis, error) {
	return o.analyze(ctx, o.logger, cvText, jobText)
}

// Process analyses the request and renders the suggestions report and the cover
// letter. Any failure is reported as ErrProcessingFailed.
func (o *Orchestrator) Process(ctx context.Context, req Request) (*Results, error) {
	id := uuid.NewString()
	log := logger.ForApplication(o.logger, id)

	cvText := req.CVText
	if cvText == "" {
		cvText = EmptyCVPlaceholder
	}

	log.Info("processing application",
		zap.Int("job_description_length", utf8.RuneCountInString(req.JobDescription)),
		zap.Int("cv_length", utf8.RuneCountInString(cvText)),
		zap.Bool("personal_touch", req.PersonalTouch != ""),
		zap.String("writer", o.writer.Name()),
	)

	analysis, err := o.analyze(ctx, log, cvText, req.JobDescription)
	if err != nil {
		return nil, err
	}

	in := &ai.Input{
		CV:            analysis.CV,
		Job:           analysis.Job,
		Suggestions:   analysis.Suggestions,
		CVText:        cvText,
		JobText:       req.JobDescription,
		PersonalTouch: req.PersonalTouch,
	}

	res := &Results{ApplicationID: id}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := o.write(gctx, log, "suggestions", in, ai.Writer.Suggestions)
		res.CVSuggestions = text
		return err
	})
	g.Go(func() error {
		text, err := o.write(gctx, log, "cover_letter", in, ai.Writer.CoverLetter)
		res.CoverLetter = text
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("rendering application failed", zap.Error(err))
		return nil, ErrProcessingFailed
	}

	log.Info("application processed",
		zap.Int("suggestions", len(analysis.Suggestions)),
		zap.Int("report_length", utf8.RuneCountInString(res.CVSuggestions)),
		zap.Int("cover_letter_length", utf8.RuneCountInString(res.CoverLetter)),
	)
	return res, nil
}

func (o *Orchestrator) analyze(ctx context.Context, log *zap.Logger, cvText, jobText string) (*Analysis, error) {
	var (
		resume *cv.Analysis
		job    *posting.Analysis
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return guard(gctx, "cv analysis", func() { resume = analyzeCV(cvText) })
	})
	g.Go(func() error {
		return guard(gctx, "job analysis", func() { job = analyzePosting(jobText) })
	})
	if err := g.Wait(); err != nil {
		log.Error("analysis failed", zap.Error(err))
		return nil, ErrProcessingFailed
	}

	log.Debug("analysis completed",
		zap.Int("cv_sections", len(resume.Sections)),
		zap.Int("required_skills", len(job.RequiredSkills)),
		zap.String("experience_level", string(job.ExperienceLevel)),
		zap.String("industry", job.Industry),
	)

	return &Analysis{
		CV:          resume,
		Job:         job,
		Suggestions: o.generator.Generate(resume, job),
	}, nil
}

type render func(ai.Writer, context.Context, *ai.Input) (string, error)

// write renders one artifact with the configured writer and falls back to the rule
// based writer when it fails.
func (o *Orchestrator) write(ctx context.Context, log *zap.Logger, artifact string, in *ai.Input, fn render) (string, error) {
	var (
		text string
		err  error
	)
	if gerr := guard(ctx, artifact, func() { text, err = fn(o.writer, ctx, in) }); gerr != nil {
		err = gerr
	}
	if err == nil {
		return text, nil
	}
	if o.writer.Name() == o.fallback.Name() {
		return "", err
	}

	log.Warn("writer failed, falling back to rules",
		logger.Artifact(artifact),
		zap.String("writer", o.writer.Name()),
		zap.Error(err),
	)
	// Rule based rendering ignores cancellation.
	return fn(o.fallback, context.WithoutCancel(ctx), in)
}

// guard runs fn unless ctx is already done and turns a panic into an error.
func guard(ctx context.Context, name string, fn func()) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", name, r)
		}
	}()
	fn()
	return nil
}
