package generation

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	parseErrorPrefix = "YAML parse error: "
	notMappingError  = "Model output must be a YAML mapping/object."
)

// parseDocument parses raw model output into an untyped mapping. A non-empty
// second return value is the parse complaint fed back on the next attempt.
func parseDocument(raw string) (map[string]any, string) {
	normalized := stripCodeFence(raw)

	var data any
	if err := yaml.Unmarshal([]byte(normalized), &data); err != nil {
		return nil, fmt.Sprintf("%s%v", parseErrorPrefix, err)
	}

	payload, ok := data.(map[string]any)
	if !ok {
		return nil, notMappingError
	}
	return payload, ""
}

// stripCodeFence removes a surrounding markdown code fence if present. The
// closing fence is the last line starting with a fence marker; when the model
// forgets to close the fence, everything after the opening line is the body.
func stripCodeFence(raw string) string {
	stripped := strings.TrimSpace(raw)
	if !strings.HasPrefix(stripped, "```") {
		return raw
	}

	lines := strings.Split(stripped, "\n")
	closingIndex := -1
	for i := len(lines) - 1; i > 0; i-- {
		if strings.HasPrefix(lines[i], "```") {
			closingIndex = i
			break
		}
	}

	var body []string
	if closingIndex == -1 {
		body = lines[1:]
	} else {
		body = lines[1:closingIndex]
	}
	return strings.TrimSpace(strings.Join(body, "\n"))
}
