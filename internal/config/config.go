package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/futig/plan-backend/internal/entity"
	pkgRetry "github.com/futig/plan-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// LLM service configuration
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`

	// Generation pipeline configuration
	GenerationCfg entity.GenerationConfig `envPrefix:"GENERATION_"`

	// Reference corpus configuration. Empty path loads the embedded corpus.
	CorpusPath string `env:"CORPUS_PATH"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	CompletionsEndpoint string               `env:"COMPLETIONS_ENDPOINT" envDefault:"/v1/chat/completions"`
	Model               string               `env:"MODEL" envDefault:"gpt-4o-mini"`
	Temperature         float64              `env:"TEMPERATURE" envDefault:"0"`
	Retry               pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.GenerationCfg.MaxRetries < 1 || cfg.GenerationCfg.MaxRetries > 10 {
		errors = append(errors, fmt.Sprintf("GENERATION_MAX_RETRIES must be between 1 and 10, got %d", cfg.GenerationCfg.MaxRetries))
	}

	if cfg.GenerationCfg.ExamplesToInclude < 1 || cfg.GenerationCfg.ExamplesToInclude > 20 {
		errors = append(errors, fmt.Sprintf("GENERATION_EXAMPLES_TO_INCLUDE must be between 1 and 20, got %d", cfg.GenerationCfg.ExamplesToInclude))
	}

	if !cfg.EnableMocks && cfg.LLMConnectorCfg.Url == "" {
		errors = append(errors, "LLM_SERVICE_URL is required when mocks are disabled")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
