package generation

import (
	"context"

	"github.com/futig/plan-backend/internal/entity"
)

type GenerationUsecase interface {
	GenerateDocument(ctx context.Context, userPrompt string, metadata map[string]any, maxAttempts int) (*entity.GenerationResult, error)
	GenerateABVariants(ctx context.Context, userPrompt string, labels []string) ([]entity.PlanVariant, error)
}
