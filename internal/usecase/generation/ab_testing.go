package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/plan-backend/internal/entity"
	"github.com/futig/plan-backend/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GenerateABVariants runs one independently-labeled generation per label,
// all branches concurrently, and joins them all-or-nothing: a hard failure
// in any branch fails the whole call. Each branch keeps its own retry state.
func (uc *Usecase) GenerateABVariants(ctx context.Context, userPrompt string, labels []string) ([]entity.PlanVariant, error) {
	if !uc.config.EnableABTesting {
		return nil, entity.ErrABTestingDisabled
	}
	if len(labels) == 0 {
		labels = defaultVariantLabels
	}

	ctxzap.Info(ctx, "generating A/B plan variants", zap.Strings("labels", labels))

	results := make([]*entity.GenerationResult, len(labels))
	g, gctx := errgroup.WithContext(ctx)
	for i, label := range labels {
		i, label := i, label
		focus := variantFocus(label)
		variantPrompt := fmt.Sprintf("%s\n\nFocus for variant %s: %s", userPrompt, label, focus)
		metadata := map[string]any{
			"variant_label": label,
			"variant_focus": focus,
		}

		g.Go(func() error {
			branchCtx := logger.WithVariant(gctx, label)
			result, err := uc.GenerateDocument(branchCtx, variantPrompt, metadata, 0)
			if err != nil {
				return fmt.Errorf("variant %s: %w", label, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	variants := make([]entity.PlanVariant, 0, len(labels))
	for i, label := range labels {
		variants = append(variants, entity.PlanVariant{
			Label:         label,
			Result:        results[i],
			Justification: uc.generateJustification(ctx, label, results[i]),
		})
	}
	return variants, nil
}

// generateJustification asks the model for a short stakeholder-facing
// rationale. Any failure falls back to a deterministic summary so the A/B
// flow never fails on justification alone.
func (uc *Usecase) generateJustification(ctx context.Context, label string, result *entity.GenerationResult) string {
	response, err := uc.llm.Generate(ctx, justificationPrompt(label, result.YAMLOutput), entity.WithTemperature(0.2))
	if err != nil || strings.TrimSpace(response) == "" {
		ctxzap.Warn(ctx, "justification call failed, using price-range fallback",
			zap.String("variant_label", label),
			zap.Error(err),
		)
		return fallbackJustification(result)
	}
	return strings.TrimSpace(response)
}

func fallbackJustification(result *entity.GenerationResult) string {
	plans := result.Document.Plans
	minPrice := plans[0].Price.Monthly
	maxPrice := plans[0].Price.Monthly
	for _, plan := range plans[1:] {
		if plan.Price.Monthly < minPrice {
			minPrice = plan.Price.Monthly
		}
		if plan.Price.Monthly > maxPrice {
			maxPrice = plan.Price.Monthly
		}
	}
	return fmt.Sprintf("• Mix of tiers from affordable to premium to cover audience breadth.\n"+
		"• Pricing spectrum spans %.2f to %.2f %s.", minPrice, maxPrice, plans[0].Price.Currency)
}
