package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futig/plan-backend/internal/entity"
	"github.com/futig/plan-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsecase struct {
	result   *entity.GenerationResult
	variants []entity.PlanVariant
	err      error
}

func (s *stubUsecase) GenerateDocument(context.Context, string, map[string]any, int) (*entity.GenerationResult, error) {
	return s.result, s.err
}

func (s *stubUsecase) GenerateABVariants(context.Context, string, []string) ([]entity.PlanVariant, error) {
	return s.variants, s.err
}

func sampleResult() *entity.GenerationResult {
	return &entity.GenerationResult{
		Prompt:     "Design a basic plan.",
		YAMLOutput: "plans: []",
		Document: &entity.PlanDocument{
			Version: "1.0",
			Plans: []entity.Plan{{
				ID: "basic", Name: "Basic Plan", Region: "US", Tier: "Basic",
				Price: entity.Price{Monthly: 9, Currency: "USD"}, DeviceLimit: 1, VideoQuality: "HD",
			}},
		},
	}
}

func postJSON(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/plans/generate", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestGenerateDocument_Success(t *testing.T) {
	h := NewHandler(&stubUsecase{result: sampleResult()}, validator.NewRequestValidator())

	rec := postJSON(t, h.GenerateDocument, entity.GenerationRequest{Prompt: "Design a basic plan."})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp entity.GenerationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "plans: []", resp.YAML)
	assert.NotNil(t, resp.Warnings)
	require.NotNil(t, resp.Document)
	assert.Equal(t, "basic", resp.Document.Plans[0].ID)
}

func TestGenerateDocument_RejectsShortPrompt(t *testing.T) {
	h := NewHandler(&stubUsecase{result: sampleResult()}, validator.NewRequestValidator())

	rec := postJSON(t, h.GenerateDocument, entity.GenerationRequest{Prompt: "hi"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateDocument_RejectsMaxAttemptsOutOfRange(t *testing.T) {
	h := NewHandler(&stubUsecase{result: sampleResult()}, validator.NewRequestValidator())
	attempts := 9

	rec := postJSON(t, h.GenerateDocument, entity.GenerationRequest{Prompt: "Design a plan.", MaxAttempts: &attempts})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateDocument_ExhaustionReturnsBadRequest(t *testing.T) {
	h := NewHandler(&stubUsecase{err: &entity.GenerationError{Attempts: 3, Errors: []string{"bad"}}},
		validator.NewRequestValidator())

	rec := postJSON(t, h.GenerateDocument, entity.GenerationRequest{Prompt: "Design a plan."})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unable to generate a valid plan after 3 attempts")
}

func TestGenerateABVariants_DisabledReturnsBadRequest(t *testing.T) {
	h := NewHandler(&stubUsecase{err: entity.ErrABTestingDisabled}, validator.NewRequestValidator())

	rec := postJSON(t, h.GenerateABVariants, entity.GenerationRequest{Prompt: "Design plans."})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateABVariants_Success(t *testing.T) {
	variants := []entity.PlanVariant{
		{Label: "A", Result: sampleResult(), Justification: "affordability first"},
		{Label: "B", Result: sampleResult(), Justification: "upsell focus"},
	}
	h := NewHandler(&stubUsecase{variants: variants}, validator.NewRequestValidator())

	rec := postJSON(t, h.GenerateABVariants, entity.GenerationRequest{Prompt: "Design plans."})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp entity.ABGenerationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Variants, 2)
	assert.Equal(t, "A", resp.Variants[0].Label)
	assert.Equal(t, "upsell focus", resp.Variants[1].Justification)
}
