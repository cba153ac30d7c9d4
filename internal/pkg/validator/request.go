package validator

import (
	"fmt"

	"github.com/futig/plan-backend/internal/entity"
)

const (
	minPromptLength = 5
	minAttempts     = 1
	maxAttempts     = 6
)

// Validator validates incoming API requests before they reach the pipeline.
type Validator struct{}

func NewRequestValidator() *Validator {
	return &Validator{}
}

// ValidateGenerationRequest checks the payload of both generation endpoints.
func (v *Validator) ValidateGenerationRequest(req *entity.GenerationRequest) error {
	if req.Prompt == "" {
		return fmt.Errorf("%w: prompt", entity.ErrMissingField)
	}
	if len(req.Prompt) < minPromptLength {
		return fmt.Errorf("%w: prompt must be at least %d characters", entity.ErrInvalidParameter, minPromptLength)
	}
	if req.MaxAttempts != nil && (*req.MaxAttempts < minAttempts || *req.MaxAttempts > maxAttempts) {
		return fmt.Errorf("%w: max_attempts must be between %d and %d, got %d",
			entity.ErrInvalidParameter, minAttempts, maxAttempts, *req.MaxAttempts)
	}
	return nil
}
