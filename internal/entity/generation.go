package entity

// GenerationConfig controls the generation pipeline. Immutable per
// pipeline instance, supplied at construction.
type GenerationConfig struct {
	MaxRetries        int  `env:"MAX_RETRIES" envDefault:"3"`
	ExamplesToInclude int  `env:"EXAMPLES_TO_INCLUDE" envDefault:"3"`
	EnableABTesting   bool `env:"ENABLE_AB_TESTING" envDefault:"true"`
}

// GenerationResult is the outcome of one successful generation call.
type GenerationResult struct {
	Prompt     string
	YAMLOutput string
	Document   *PlanDocument
	Warnings   []string
}

// PlanVariant is one labeled branch of an A/B generation request.
type PlanVariant struct {
	Label         string
	Result        *GenerationResult
	Justification string
}

// GenerationRequest is the HTTP payload for POST /plans/generate.
type GenerationRequest struct {
	Prompt      string         `json:"prompt"`
	MaxAttempts *int           `json:"max_attempts,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// GenerationResponse is the HTTP response for a successful generation.
type GenerationResponse struct {
	YAML     string        `json:"yaml"`
	Warnings []string      `json:"warnings"`
	Document *PlanDocument `json:"document"`
}

// VariantDTO is one A/B variant as returned over HTTP.
type VariantDTO struct {
	Label         string        `json:"label"`
	YAML          string        `json:"yaml"`
	Warnings      []string      `json:"warnings"`
	Document      *PlanDocument `json:"document"`
	Justification string        `json:"justification"`
}

// ABGenerationResponse is the HTTP response for POST /plans/generate-ab.
type ABGenerationResponse struct {
	Variants []VariantDTO `json:"variants"`
}
