package generation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/futig/plan-backend/internal/entity"
	"github.com/futig/plan-backend/internal/pkg/logger"
	"github.com/futig/plan-backend/internal/retrieval"
	"github.com/futig/plan-backend/internal/validator"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var defaultVariantLabels = []string{"A", "B"}

var variantInstructions = map[string]string{
	"A": "Optimize for entry-level affordability and retention.",
	"B": "Optimize for premium upsell and average revenue per user.",
}

// Usecase coordinates retrieval, generation, validation, and repair.
type Usecase struct {
	llm       LLMConnector
	retriever *retrieval.Retriever
	validator *validator.Validator
	config    entity.GenerationConfig
	logger    *zap.Logger
}

func NewUsecase(
	llm LLMConnector,
	retriever *retrieval.Retriever,
	validator *validator.Validator,
	config entity.GenerationConfig,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		llm:       llm,
		retriever: retriever,
		validator: validator,
		config:    config,
		logger:    logger,
	}
}

// GenerateDocument runs the generate-validate-repair loop for a single brief.
// Transport failures abort immediately; validation and parse failures are fed
// back into the next attempt until the budget runs out. maxAttempts <= 0
// falls back to the configured retry budget.
func (uc *Usecase) GenerateDocument(ctx context.Context, userPrompt string, metadata map[string]any, maxAttempts int) (*entity.GenerationResult, error) {
	attempts := maxAttempts
	if attempts <= 0 {
		attempts = uc.config.MaxRetries
	}

	ctx = logger.WithGenerationID(ctx, uuid.NewString())
	ctxzap.Info(ctx, "generating plan document",
		zap.Int("max_attempts", attempts),
		zap.Int("brief_length", len(userPrompt)),
	)

	// The retrieval block is computed once per call, not per attempt.
	retrievalContext := uc.retriever.ToPrompt(userPrompt, uc.config.ExamplesToInclude)

	var priorYAML string
	var validationErrors []string

	for attempt := 1; attempt <= attempts; attempt++ {
		prompt := composePrompt(userPrompt, retrievalContext, attempt, priorYAML, validationErrors)

		rawOutput, err := uc.llm.Generate(ctx, prompt)
		if err != nil {
			ctxzap.Error(ctx, "LLM call failed", zap.Int("attempt", attempt), zap.Error(err))
			return nil, fmt.Errorf("%w: %w", entity.ErrLLMRequestFailed, err)
		}
		priorYAML = rawOutput

		payload, parseErr := parseDocument(rawOutput)
		if parseErr != "" {
			ctxzap.Warn(ctx, "model output failed to parse",
				zap.Int("attempt", attempt),
				zap.String("parse_error", parseErr),
			)
			validationErrors = []string{parseErr}
			continue
		}

		mergeMetadata(payload, metadata)

		errs, warnings := uc.validator.Validate(payload)
		if len(errs) == 0 {
			document, err := decodeDocument(payload)
			if err != nil {
				return nil, fmt.Errorf("decode validated document: %w", err)
			}
			ctxzap.Info(ctx, "plan document generated",
				zap.Int("attempt", attempt),
				zap.Int("plan_count", len(document.Plans)),
				zap.Int("warning_count", len(warnings)),
			)
			return &entity.GenerationResult{
				Prompt:     userPrompt,
				YAMLOutput: rawOutput,
				Document:   document,
				Warnings:   warnings,
			}, nil
		}

		ctxzap.Warn(ctx, "plan document failed validation",
			zap.Int("attempt", attempt),
			zap.Strings("errors", errs),
		)
		validationErrors = errs
	}

	return nil, &entity.GenerationError{Attempts: attempts, Errors: validationErrors}
}

// mergeMetadata applies caller-supplied metadata with update semantics:
// caller keys overwrite same-named keys produced by the model. A metadata
// field that is present but not a mapping is left alone so the validator
// reports it.
func mergeMetadata(payload map[string]any, metadata map[string]any) {
	if len(metadata) == 0 {
		return
	}
	target, ok := payload["metadata"].(map[string]any)
	if !ok {
		if _, present := payload["metadata"]; present {
			return
		}
		target = make(map[string]any, len(metadata))
	}
	for k, v := range metadata {
		target[k] = v
	}
	payload["metadata"] = target
}

func decodeDocument(payload map[string]any) (*entity.PlanDocument, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var document entity.PlanDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, err
	}
	document.Normalize()
	return &document, nil
}

func variantFocus(label string) string {
	if focus, ok := variantInstructions[label]; ok {
		return focus
	}
	return fmt.Sprintf("Variant %s should explore a distinct positioning.", label)
}
