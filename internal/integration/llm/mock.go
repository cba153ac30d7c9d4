package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/futig/plan-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a deterministic LLM connector for tests and local
// development. It replays a fixed script of completions in order and fails
// once the script runs out. Safe for concurrent use.
type MockConnector struct {
	mu        sync.Mutex
	responses []string
	cursor    int
	logger    *zap.Logger
}

func NewMockConnector(logger *zap.Logger, scripted []string) *MockConnector {
	return &MockConnector{
		responses: scripted,
		logger:    logger,
	}
}

// Generate returns the next scripted completion.
func (m *MockConnector) Generate(ctx context.Context, prompt string, opts ...entity.GenerateOption) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cursor >= len(m.responses) {
		return "", fmt.Errorf("mock connector exhausted after %d responses", len(m.responses))
	}
	response := m.responses[m.cursor]
	m.cursor++

	ctxzap.Info(ctx, "[MOCK] returning scripted completion",
		zap.Int("response_index", m.cursor-1),
		zap.Int("prompt_length", len(prompt)),
	)
	return response, nil
}

// DefaultScript is the completion used when mocks are enabled without an
// explicit script: a single static plan document for local development.
var DefaultScript = []string{`version: "1.0"
plans:
  - id: "dev-basic"
    name: "Developer Basic"
    region: "Local"
    tier: "Basic"
    price:
      monthly: 9.0
      currency: "USD"
    device_limit: 1
    video_quality: "HD"
    add_ons: []
metadata:
  note: "Static plan served by the mock LLM connector."
`}
