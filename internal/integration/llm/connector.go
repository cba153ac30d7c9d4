package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	retry "github.com/avast/retry-go/v4"
	"github.com/futig/plan-backend/internal/config"
	"github.com/futig/plan-backend/internal/entity"
	"github.com/futig/plan-backend/internal/integration/common"
	pkghttp "github.com/futig/plan-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const systemRole = "You are a pricing strategist producing YAML."

// Connector talks to an OpenAI-compatible chat completions endpoint. It owns
// transport-level concerns: auth, timeouts, and retries on transient network
// failures. Callers treat any returned error as a transport failure.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Generate requests one text completion for the prompt.
func (c *Connector) Generate(ctx context.Context, prompt string, opts ...entity.GenerateOption) (string, error) {
	options := entity.GenerateOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	temperature := c.config.Temperature
	if options.Temperature != nil {
		temperature = *options.Temperature
	}

	ctxzap.Info(ctx, "requesting completion from LLM service",
		zap.String("model", c.config.Model),
		zap.Int("prompt_length", len(prompt)),
	)

	req := &entity.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []entity.ChatMessage{
			{Role: "system", Content: systemRole},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
	}

	var resp entity.ChatCompletionResponse
	err := retry.Do(
		func() error {
			return c.connector.DoRequest(ctx, http.MethodPost, c.config.CompletionsEndpoint, req, &resp)
		},
		append(c.config.Retry.ToRetryOptions(),
			retry.Context(ctx),
			retry.RetryIf(isTransient),
			retry.LastErrorOnly(true),
		)...,
	)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("invalid completion response: no choices")
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("invalid completion response: empty content")
	}

	ctxzap.Info(ctx, "completion received", zap.Int("content_length", len(content)))

	return content, nil
}

// isTransient reports whether a request is worth retrying at the transport
// layer. Application-level HTTP errors (auth, bad request) are not.
func isTransient(err error) bool {
	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	return false
}
