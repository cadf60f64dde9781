package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-copilot/internal/application"
	"github.com/spigell/cv-copilot/internal/document"
	"github.com/spigell/cv-copilot/internal/logger"
	"github.com/spigell/cv-copilot/internal/posting"
)

const (
	PromptShowSuggestions = "Show CV suggestions"
	PromptShowCoverLetter = "Show cover letter"
	PromptSaveToFiles     = "Save results to files"
	PromptExit            = "Exit"

	suggestionsFile = "cv-suggestions.md"
	coverLetterFile = "cover-letter.md"
	resultsFile     = "results.json"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowSuggestions, PromptShowCoverLetter, PromptSaveToFiles, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Analyse a CV against a job posting and draft a cover letter",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("cv", "", "CV file (pdf, docx or plain text)")
	runCmd.Flags().String("job", "", "job posting: a file, an http(s) url or - for stdin")
	runCmd.Flags().String("personal", "", "a personal note added to the cover letter")
	runCmd.Flags().String("personal-file", "", "file with a personal note added to the cover letter")
	runCmd.Flags().String("backend", "", "writer backend: rules or gemini")
	runCmd.Flags().String("output-dir", "", "directory for saved results (default is a new temporary directory)")
	runCmd.Flags().StringSlice("skip-analyzer", nil, "suggestion analyzers to skip (experience, skills, summary, achievements)")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask, save results to files and exit")

	runCmd.MarkFlagRequired("job")
	runCmd.MarkFlagsMutuallyExclusive("personal", "personal-file")

	viper.BindPFlag("assistant.backend", runCmd.Flags().Lookup("backend"))
	viper.BindPFlag("assistant.skip-analyzers", runCmd.Flags().Lookup("skip-analyzer"))
	viper.BindPFlag("output-dir", runCmd.Flags().Lookup("output-dir"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the cv-copilot", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	flags := cmd.Flags()
	cvPath, _ := flags.GetString("cv")
	jobSource, _ := flags.GetString("job")
	personal, _ := flags.GetString("personal")
	personalFile, _ := flags.GetString("personal-file")
	autoApprove, _ := flags.GetBool("auto-approve")

	cvText := readCV(ctx, cvPath, logger)

	jobText, err := readJob(ctx, jobSource, os.Stdin)
	if err != nil {
		logger.Fatal("reading job posting", zap.Error(err), zap.String("source", jobSource))
	}

	personalTouch, err := readPersonalTouch(personal, personalFile)
	if err != nil {
		logger.Fatal("reading personal note", zap.Error(err))
	}

	orchestrator := newOrchestrator(ctx, config.Assistant, logger)

	results, err := orchestrator.Process(ctx, application.Request{
		JobDescription: jobText,
		PersonalTouch:  personalTouch,
		CVText:         cvText,
	})
	if err != nil {
		logger.Fatal("processing application", zap.Error(err))
	}

	if autoApprove {
		if err := handleAction(PromptSaveToFiles, os.Stdout, logger, config, results); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, os.Stdout, logger, config, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, out io.Writer, logger *zap.Logger, config *Config, results *application.Results) error {
	switch action {
	case PromptShowSuggestions:
		_, err := fmt.Fprintln(out, results.CVSuggestions)
		return err
	case PromptShowCoverLetter:
		_, err := fmt.Fprintln(out, results.CoverLetter)
		return err
	case PromptSaveToFiles:
		dir, err := saveResults(config.OutputDir, results)
		if err != nil {
			return fmt.Errorf("save results to files: %w", err)
		}
		logger.Info("saved results", zap.String("dir", dir))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// readCV converts the CV file to text. A CV that cannot be read is not fatal: the
// pipeline runs with an empty CV.
func readCV(ctx context.Context, path string, logger *zap.Logger) string {
	if strings.TrimSpace(path) == "" {
		logger.Warn("no cv given, continuing without one")
		return ""
	}

	res, err := document.ParseFile(ctx, path)
	if err != nil {
		logger.Warn("reading cv, continuing without one", zap.Error(err))
		return ""
	}

	if !res.Success {
		logger.Warn("converting cv, continuing without one", zap.String("file", path), zap.String("reason", res.Error))
		return ""
	}

	logger.Info("cv converted", zap.String("file", path), zap.Int("length", len(res.Text)))
	return res.Text
}

func readJob(ctx context.Context, source string, stdin io.Reader) (string, error) {
	if source != "-" {
		return posting.Load(ctx, source)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("stdin: %w", posting.ErrEmptyPosting)
	}
	return string(data), nil
}

func readPersonalTouch(text, file string) (string, error) {
	if file == "" {
		return strings.TrimSpace(text), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", file, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// saveResults writes both artifacts and a json dump into dir, or into a new
// temporary directory when dir is empty. It returns the directory used.
func saveResults(dir string, results *application.Results) (string, error) {
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", app+"-")
		if err != nil {
			return "", fmt.Errorf("create temp dir: %w", err)
		}
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	files := map[string]string{
		suggestionsFile: results.CVSuggestions,
		coverLetterFile: results.CoverLetter,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content+"\n"), 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", name, err)
		}
	}

	f, err := os.Create(filepath.Join(dir, resultsFile))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", resultsFile, err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return "", fmt.Errorf("encode %s: %w", resultsFile, err)
	}

	return dir, nil
}

// redacted returns a copy of config safe for debug output.
func redacted(config *Config) *Config {
	if config == nil || config.Assistant == nil || config.Assistant.Gemini == nil || config.Assistant.Gemini.APIKey == "" {
		return config
	}

	cp := *config
	assistant := *config.Assistant
	gem := *config.Assistant.Gemini
	gem.APIKey = "***"
	assistant.Gemini = &gem
	cp.Assistant = &assistant
	return &cp
}
