package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/futig/plan-backend/internal/api"
	generationapi "github.com/futig/plan-backend/internal/api/generation"
	"github.com/futig/plan-backend/internal/config"
	"github.com/futig/plan-backend/internal/integration/llm"
	pkgvalidator "github.com/futig/plan-backend/internal/pkg/validator"
	"github.com/futig/plan-backend/internal/retrieval"
	"github.com/futig/plan-backend/internal/usecase/generation"
	"github.com/futig/plan-backend/internal/validator"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Load the reference corpus and build the retriever
	examples, err := retrieval.LoadCorpus(cfg.CorpusPath)
	if err != nil {
		return nil, fmt.Errorf("load reference corpus: %w", err)
	}
	retriever := retrieval.NewRetriever(examples)
	logger.Info("Reference corpus loaded", zap.Int("example_count", len(examples)))

	// Build the document validator
	planValidator, err := validator.New()
	if err != nil {
		return nil, fmt.Errorf("build plan validator: %w", err)
	}
	logger.Info("Plan validator initialized")

	// Initialize the LLM connector (with mock support)
	var llmConnector generation.LLMConnector
	if cfg.EnableMocks {
		logger.Info("Using mock LLM connector")
		llmConnector = llm.NewMockConnector(logger, llm.DefaultScript)
	} else {
		logger.Info("Using real LLM connector", zap.String("model", cfg.LLMConnectorCfg.Model))
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, logger)
	}

	// Initialize use cases
	generationUC := generation.NewUsecase(llmConnector, retriever, planValidator, cfg.GenerationCfg, logger)
	logger.Info("Use cases initialized")

	// Setup API handlers
	requestValidator := pkgvalidator.NewRequestValidator()
	generationHandler := generationapi.NewHandler(generationUC, requestValidator)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(generationHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}
