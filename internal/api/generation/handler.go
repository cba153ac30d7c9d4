package generation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/plan-backend/internal/entity"
	"github.com/futig/plan-backend/internal/pkg/logger"
	"github.com/futig/plan-backend/internal/pkg/response"
	"github.com/futig/plan-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   GenerationUsecase
	validator *validator.Validator
}

func NewHandler(usecase GenerationUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// GenerateDocument handles POST /plans/generate
func (h *Handler) GenerateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateDocument")

	var req entity.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateGenerationRequest(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	maxAttempts := 0
	if req.MaxAttempts != nil {
		maxAttempts = *req.MaxAttempts
	}

	result, err := h.usecase.GenerateDocument(ctx, req.Prompt, req.Metadata, maxAttempts)
	if err != nil {
		h.handleGenerationError(ctx, w, err)
		return
	}

	response.Success(w, toGenerationResponse(result))
}

// GenerateABVariants handles POST /plans/generate-ab
func (h *Handler) GenerateABVariants(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateABVariants")

	var req entity.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateGenerationRequest(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	variants, err := h.usecase.GenerateABVariants(ctx, req.Prompt, nil)
	if err != nil {
		h.handleGenerationError(ctx, w, err)
		return
	}

	response.Success(w, toABResponse(variants))
}

func (h *Handler) handleGenerationError(ctx context.Context, w http.ResponseWriter, err error) {
	var genErr *entity.GenerationError
	switch {
	case errors.Is(err, entity.ErrABTestingDisabled):
		ctxzap.Warn(ctx, "A/B generation rejected", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &genErr):
		ctxzap.Warn(ctx, "generation exhausted attempt budget",
			zap.Int("attempts", genErr.Attempts),
			zap.Strings("errors", genErr.Errors),
		)
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrLLMRequestFailed):
		ctxzap.Error(ctx, "LLM transport failure", zap.Error(err))
		response.Error(w, http.StatusBadGateway, err.Error())
	default:
		ctxzap.Error(ctx, "generation failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, err.Error())
	}
}
