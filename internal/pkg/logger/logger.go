package logger

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AddFields attaches extra fields to the context logger and returns the new context.
func AddFields(ctx context.Context, fields ...zap.Field) context.Context {
	return ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(fields...))
}

// WithAction tags the context logger with the handler flow being executed.
func WithAction(ctx context.Context, action string) context.Context {
	return AddFields(ctx, zap.String("action", action))
}

// WithGenerationID tags the context logger with the id of one generation run
// so every attempt in the retry loop can be traced back to it.
func WithGenerationID(ctx context.Context, id string) context.Context {
	return AddFields(ctx, zap.String("generation_id", id))
}

// WithVariant tags the context logger with an A/B variant label.
func WithVariant(ctx context.Context, label string) context.Context {
	return AddFields(ctx, zap.String("variant_label", label))
}
