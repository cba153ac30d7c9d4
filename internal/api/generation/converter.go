package generation

import (
	"github.com/futig/plan-backend/internal/entity"
)

func toGenerationResponse(result *entity.GenerationResult) *entity.GenerationResponse {
	return &entity.GenerationResponse{
		YAML:     result.YAMLOutput,
		Warnings: emptyIfNil(result.Warnings),
		Document: result.Document,
	}
}

func toABResponse(variants []entity.PlanVariant) *entity.ABGenerationResponse {
	dtos := make([]entity.VariantDTO, 0, len(variants))
	for _, v := range variants {
		dtos = append(dtos, entity.VariantDTO{
			Label:         v.Label,
			YAML:          v.Result.YAMLOutput,
			Warnings:      emptyIfNil(v.Result.Warnings),
			Document:      v.Result.Document,
			Justification: v.Justification,
		})
	}
	return &entity.ABGenerationResponse{Variants: dtos}
}

func emptyIfNil(warnings []string) []string {
	if warnings == nil {
		return []string{}
	}
	return warnings
}
