package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/cv-copilot/internal/ai"
	"github.com/spigell/cv-copilot/internal/ai/gemini"
	"github.com/spigell/cv-copilot/internal/application"
	"github.com/spigell/cv-copilot/internal/logger"
	"github.com/spigell/cv-copilot/internal/secrets"
	"github.com/spigell/cv-copilot/internal/suggest"
)

// newGenerator is swapped in tests.
var newGenerator = func(ctx context.Context, apiKey, model string, maxRetries int, log *zap.Logger) (gemini.ContentGenerator, error) {
	return gemini.NewGenerator(ctx, apiKey, model, maxRetries, log)
}

// newOrchestrator builds the pipeline for the configured backend. A gemini backend
// that cannot be built degrades to the rule-based writer.
func newOrchestrator(ctx context.Context, cfg *AssistantConfig, log *zap.Logger) *application.Orchestrator {
	steps := suggest.DefaultAnalyzers()
	for _, name := range cfg.SkipAnalyzers {
		suggest.DisableByName(steps, name, "skipped by configuration")
	}

	opts := []application.Option{
		application.WithGenerator(suggest.New(log, steps...)),
	}

	if cfg.Backend == backendGemini {
		writer, err := newGeminiWriter(ctx, cfg.Gemini, log)
		if err != nil {
			log.Warn("falling back to rule-based writer", zap.Error(err))
		} else {
			opts = append(opts, application.WithWriter(writer))
		}
	}

	return application.New(log, opts...)
}

func newGeminiWriter(ctx context.Context, cfg *GeminiConfig, log *zap.Logger) (ai.Writer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("gemini configuration is required when backend is %s", backendGemini)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set assistant.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = gemini.DefaultModel
	}

	genLogger := logger.ForBackend(log, backendGemini, model).With(
		zap.Int("ai_retry_attempts", cfg.MaxRetries),
	)

	generator, err := newGenerator(ctx, apiKey, model, cfg.MaxRetries, genLogger)
	if err != nil {
		return nil, fmt.Errorf("creating gemini generator: %w", err)
	}

	writer := gemini.NewWriter(generator, cfg.MaxLogLength, logger.ForBackend(log, backendGemini, model))
	writer.SetPromptOptions(gemini.PromptOptions{Tone: cfg.Tone})

	return writer, nil
}
