package generation

import (
	"context"

	"github.com/futig/plan-backend/internal/entity"
)

// LLMConnector is the text-completion capability the pipeline depends on.
// Implementations own transport concerns (timeouts, provider retries); the
// pipeline treats any returned error as fatal for the current call.
type LLMConnector interface {
	Generate(ctx context.Context, prompt string, opts ...entity.GenerateOption) (string, error)
}
