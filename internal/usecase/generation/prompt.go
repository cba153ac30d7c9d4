package generation

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed base_prompt.txt
var basePrompt string

const schemaCheatSheet = "plans:\n" +
	"  - id: string\n" +
	"    name: string\n" +
	"    region: string\n" +
	"    tier: string\n" +
	"    price:\n" +
	"      monthly: number\n" +
	"      currency: ISO-4217 code\n" +
	"    device_limit: integer <= 8\n" +
	"    video_quality: string\n" +
	"    add_ons:\n" +
	"      - name: string\n" +
	"        price_delta: number\n"

// composePrompt assembles the full prompt for one attempt. Attempts after
// the first carry a repair block: the previous raw output verbatim plus the
// validation complaints it earned.
func composePrompt(userPrompt, retrievalContext string, attempt int, priorYAML string, validationErrors []string) string {
	sections := []string{
		strings.TrimSpace(basePrompt),
		"\n---\nUser brief:\n" + strings.TrimSpace(userPrompt),
		"\n---\n" + strings.TrimSpace(retrievalContext),
		"\n---\nYAML Schema (simplified view):\n" + schemaCheatSheet,
	}

	if attempt > 1 && priorYAML != "" {
		errorBlock := formatErrorList(validationErrors)
		sections = append(sections,
			"\n---\nPrevious YAML (attempt failed validation):\n"+
				strings.TrimSpace(priorYAML)+
				"\n\nValidation feedback:\n"+
				errorBlock+
				"\nRevise the YAML to resolve the issues.")
	} else {
		sections = append(sections, "\nDraft fresh YAML plan proposals adhering to the schema.")
	}

	return strings.Join(sections, "\n")
}

func formatErrorList(errs []string) string {
	if len(errs) == 0 {
		return "- Invalid output."
	}
	bullets := make([]string, 0, len(errs))
	for _, e := range errs {
		bullets = append(bullets, "- "+e)
	}
	return strings.Join(bullets, "\n")
}

func justificationPrompt(label, yamlOutput string) string {
	return fmt.Sprintf("You are reviewing a streaming subscription plan proposal.\n"+
		"Variant %s YAML:\n```yaml\n%s\n```\n"+
		"Write 2 bullet sentences explaining the core positioning for stakeholders.",
		label, yamlOutput)
}
