package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/cv-copilot/internal/ai/gemini"
	"github.com/spigell/cv-copilot/internal/logger"
	"github.com/spigell/cv-copilot/internal/server"
)

const (
	app = logger.AppName

	backendRules  = "rules"
	backendGemini = "gemini"
)

type Config struct {
	Assistant *AssistantConfig `mapstructure:"assistant" validate:"required"`
	Server    *ServerConfig    `mapstructure:"server" validate:"required"`
	OutputDir string           `mapstructure:"output-dir"`
}

type AssistantConfig struct {
	Backend       string        `mapstructure:"backend" validate:"oneof=rules gemini"`
	SkipAnalyzers []string      `mapstructure:"skip-analyzers" validate:"dive,oneof=experience skills summary achievements"`
	Gemini        *GeminiConfig `mapstructure:"gemini" validate:"required"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=1,lte=10"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
	Tone         string `mapstructure:"tone"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cv-copilot tailors a CV to a job posting and drafts a cover letter",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cv-copilot.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("assistant.backend", backendRules)
	v.SetDefault("assistant.skip-analyzers", []string{})
	v.SetDefault("assistant.gemini.api-key", "")
	v.SetDefault("assistant.gemini.api-key-file", "")
	v.SetDefault("assistant.gemini.model", gemini.DefaultModel)
	v.SetDefault("assistant.gemini.max-retries", gemini.DefaultMaxRetries)
	v.SetDefault("assistant.gemini.max-log-length", gemini.DefaultMaxLogLength)
	v.SetDefault("assistant.gemini.tone", gemini.DefaultTone)
	v.SetDefault("server.addr", server.DefaultAddr)
	v.SetDefault("output-dir", "")
}

func initConfig() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	if err := readConfig(viper.GetViper(), cfgFile); err != nil {
		log.Fatal(err)
	}
}

// readConfig wires env overrides and reads the config file. Without --config the
// file is optional and defaults apply.
func readConfig(v *viper.Viper, file string) error {
	v.SetEnvPrefix("CV_COPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(app)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	return nil
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		return nil, errors.New("config is empty")
	}

	if config.Assistant != nil {
		config.Assistant.Backend = strings.ToLower(strings.TrimSpace(config.Assistant.Backend))
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return config, nil
}
