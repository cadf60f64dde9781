package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/cv-copilot/internal/ai"
	"github.com/spigell/cv-copilot/internal/logger"
	"github.com/spigell/cv-copilot/internal/utils"
)

// ContentGenerator sends one prompt and returns the model text.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

var (
	//go:embed prompts/system.md
	systemPrompt string
	//go:embed prompts/suggestions.md
	suggestionsTemplate string
	//go:embed prompts/cover_letter.md
	coverLetterTemplate string
)

const (
	DefaultMaxLogLength = 200
	DefaultTone         = "Professional and warm"

	maxUserInstructionRunes = 500
	maxToneRunes            = 80
)

// ErrEmptyText is returned when the model reply decodes to no text.
var ErrEmptyText = errors.New("gemini response contains no text")

// PromptOptions tune the cover letter prompt.
type PromptOptions struct {
	Tone string
}

// Writer renders the report and the cover letter with Gemini.
type Writer struct {
	generator ContentGenerator
	logger    *zap.Logger
	maxLogLen int
	tone      string
}

var _ ai.Writer = (*Writer)(nil)

func NewWriter(generator ContentGenerator, maxLogLength int, logger *zap.Logger) *Writer {
	if maxLogLength <= 0 {
		maxLogLength = DefaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Writer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
		tone:      DefaultTone,
	}
}

// SetPromptOptions applies opts. Blank values keep the defaults.
func (w *Writer) SetPromptOptions(opts PromptOptions) {
	if tone := sanitizeSingleLine(opts.Tone, maxToneRunes); tone != "" {
		w.tone = tone
	}
}

func (w *Writer) Name() string { return "gemini" }

func (w *Writer) Suggestions(ctx context.Context, in *ai.Input) (string, error) {
	prompt, err := buildSuggestionsPrompt(in)
	if err != nil {
		return "", err
	}
	return w.generate(ctx, "suggestions", prompt)
}

func (w *Writer) CoverLetter(ctx context.Context, in *ai.Input) (string, error) {
	prompt, err := buildCoverLetterPrompt(in, w.tone)
	if err != nil {
		return "", err
	}
	return w.generate(ctx, "cover_letter", prompt)
}

func (w *Writer) generate(ctx context.Context, artifact, prompt string) (string, error) {
	if w.generator == nil {
		return "", errors.New("gemini writer has no generator")
	}

	w.logger.Debug("gemini generate content request",
		logger.Artifact(artifact),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, w.maxLogLen)),
	)

	raw, err := w.generator.GenerateContent(ctx, systemPrompt, prompt)
	if err != nil {
		return "", err
	}

	w.logger.Debug("gemini generate content response",
		logger.Artifact(artifact),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, w.maxLogLen)),
	)

	return parseResponse(raw)
}

type promptInputs struct {
	CV          any `json:"cv"`
	Job         any `json:"job"`
	Suggestions any `json:"suggestions,omitempty"`
}

func buildSuggestionsPrompt(in *ai.Input) (string, error) {
	if in == nil {
		return "", errors.New("writer input is required")
	}

	analysisJSON, err := json.MarshalIndent(promptInputs{CV: in.CV, Job: in.Job}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal analysis: %w", err)
	}
	suggestionsJSON, err := json.MarshalIndent(in.Suggestions, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal suggestions: %w", err)
	}

	role, company := names(in)
	return strings.NewReplacer(
		"{{ROLE}}", role,
		"{{COMPANY}}", company,
		"{{ANALYSIS_JSON}}", string(analysisJSON),
		"{{SUGGESTIONS_JSON}}", string(suggestionsJSON),
		"{{CV_TEXT}}", strings.TrimSpace(in.CVText),
		"{{JOB_TEXT}}", strings.TrimSpace(in.JobText),
	).Replace(suggestionsTemplate), nil
}

func buildCoverLetterPrompt(in *ai.Input, tone string) (string, error) {
	if in == nil {
		return "", errors.New("writer input is required")
	}

	analysisJSON, err := json.MarshalIndent(promptInputs{CV: in.CV, Job: in.Job}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal analysis: %w", err)
	}

	if tone == "" {
		tone = DefaultTone
	}

	role, company := names(in)
	return strings.NewReplacer(
		"{{ROLE}}", role,
		"{{COMPANY}}", company,
		"{{TONE}}", tone,
		"{{USER_INSTRUCTIONS}}", userInstructionsBlock(in.PersonalTouch),
		"{{ANALYSIS_JSON}}", string(analysisJSON),
		"{{CV_TEXT}}", strings.TrimSpace(in.CVText),
		"{{JOB_TEXT}}", strings.TrimSpace(in.JobText),
	).Replace(coverLetterTemplate), nil
}

func names(in *ai.Input) (string, string) {
	if in.Job == nil {
		return "the advertised", "the company"
	}
	return in.Job.RoleTitle, in.Job.CompanyName
}

// userInstructionsBlock renders free text as an indented list, one item per
// non-blank line. Square brackets become parentheses so the text cannot open a
// new prompt section.
func userInstructionsBlock(raw string) string {
	text := truncateRunes(neutralizeBrackets(strings.TrimSpace(raw)), maxUserInstructionRunes)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, "  - "+line)
		}
	}
	if len(lines) == 0 {
		return "  - none"
	}
	return strings.Join(lines, "\n")
}

func sanitizeSingleLine(raw string, limit int) string {
	return truncateRunes(strings.Join(strings.Fields(neutralizeBrackets(raw)), " "), limit)
}

func neutralizeBrackets(s string) string {
	return strings.NewReplacer("[", "(", "]", ")").Replace(s)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

type response struct {
	Text       string   `mapstructure:"text"`
	Paragraphs []string `mapstructure:"paragraphs"`
}

// parseResponse accepts {"text": ...} or {"paragraphs": [...]}, optionally wrapped
// in a code fence. A reply that is not JSON at all is used as plain text.
func parseResponse(raw string) (string, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return "", ErrEmptyText
	}
	if !strings.HasPrefix(cleaned, "{") {
		return cleaned, nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}

	var out response
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return "", fmt.Errorf("create response decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		text = strings.TrimSpace(strings.Join(out.Paragraphs, "\n\n"))
	}
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
