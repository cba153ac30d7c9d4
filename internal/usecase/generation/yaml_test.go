package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence_NoFencePassesThrough(t *testing.T) {
	raw := "plans:\n  - id: x\n"
	assert.Equal(t, raw, stripCodeFence(raw))
}

func TestStripCodeFence_RemovesFenceWithLanguage(t *testing.T) {
	raw := "```yaml\nplans:\n  - id: x\n```"
	assert.Equal(t, "plans:\n  - id: x", stripCodeFence(raw))
}

func TestStripCodeFence_UnclosedFenceKeepsBody(t *testing.T) {
	raw := "```yaml\nplans:\n  - id: x"
	assert.Equal(t, "plans:\n  - id: x", stripCodeFence(raw))
}

func TestStripCodeFence_ClosingFenceFoundScanningBackward(t *testing.T) {
	// A fence marker inside the body must not be mistaken for the close.
	raw := "```\nfirst: 1\n```\nsecond: 2\n```"
	body := stripCodeFence(raw)
	assert.True(t, strings.Contains(body, "first: 1"))
	assert.True(t, strings.Contains(body, "second: 2"))
}

func TestParseDocument_MappingSucceeds(t *testing.T) {
	payload, parseErr := parseDocument("version: \"1.0\"\nplans: []\n")

	require.Empty(t, parseErr)
	assert.Equal(t, "1.0", payload["version"])
}

func TestParseDocument_InvalidYAMLReported(t *testing.T) {
	_, parseErr := parseDocument("plans: [unclosed")

	require.NotEmpty(t, parseErr)
	assert.True(t, strings.HasPrefix(parseErr, "YAML parse error: "))
}

func TestParseDocument_NonMappingRejected(t *testing.T) {
	_, parseErr := parseDocument("- a\n- b\n")

	assert.Equal(t, "Model output must be a YAML mapping/object.", parseErr)
}
