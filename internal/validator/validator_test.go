package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	require.NoError(t, err)
	return v
}

func planPayload(overrides map[string]any) map[string]any {
	plan := map[string]any{
		"id":            "basic-1",
		"name":          "Basic Plan",
		"region":        "US",
		"tier":          "Basic",
		"price":         map[string]any{"monthly": 9.0, "currency": "USD"},
		"device_limit":  1,
		"video_quality": "HD",
		"add_ons":       []any{},
	}
	for k, v := range overrides {
		plan[k] = v
	}
	return plan
}

func documentPayload(plans ...map[string]any) map[string]any {
	items := make([]any, 0, len(plans))
	for _, p := range plans {
		items = append(items, p)
	}
	return map[string]any{
		"version": "1.0",
		"plans":   items,
	}
}

func TestValidate_BasicTierDeviceLimit(t *testing.T) {
	v := newValidator(t)
	payload := documentPayload(planPayload(map[string]any{"device_limit": 2}))

	errs, warnings := v.Validate(payload)

	assert.Contains(t, errs, "Basic tier plan 'Basic Plan' exceeds 1 device limit.")
	assert.Empty(t, warnings)
}

func TestValidate_TierRuleIsCaseInsensitive(t *testing.T) {
	v := newValidator(t)
	payload := documentPayload(planPayload(map[string]any{"tier": "BASIC", "device_limit": 3}))

	errs, _ := v.Validate(payload)

	assert.Contains(t, errs, "Basic tier plan 'Basic Plan' exceeds 1 device limit.")
}

func TestValidate_MissingFieldsReportedWithPath(t *testing.T) {
	v := newValidator(t)
	payload := map[string]any{
		"plans": []any{map[string]any{"id": "x", "name": "Missing price"}},
	}

	errs, warnings := v.Validate(payload)

	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if strings.Contains(e, "price") {
			found = true
		}
	}
	assert.True(t, found, "expected an error mentioning price, got %v", errs)
	assert.Empty(t, warnings)
}

func TestValidate_StructuralFailureShortCircuitsRules(t *testing.T) {
	v := newValidator(t)
	// Duplicate ids plus a structural violation: rules must not run, so the
	// duplicate id error never appears and no warnings are produced.
	broken := planPayload(map[string]any{"device_limit": "two"})
	duplicate := planPayload(nil)
	payload := documentPayload(duplicate, broken, planPayload(nil))

	errs, warnings := v.Validate(payload)

	require.NotEmpty(t, errs)
	for _, e := range errs {
		assert.NotContains(t, e, "Duplicate plan id")
	}
	assert.Empty(t, warnings)
}

func TestValidate_UndeclaredPropertiesRejected(t *testing.T) {
	v := newValidator(t)
	payload := documentPayload(planPayload(map[string]any{"internal_code": "x-17"}))

	errs, _ := v.Validate(payload)

	require.NotEmpty(t, errs)
}

func TestValidate_DuplicateIDIsErrorDuplicatePairIsWarning(t *testing.T) {
	v := newValidator(t)
	first := planPayload(nil)
	second := planPayload(map[string]any{"name": "Basic Twin"})
	payload := documentPayload(first, second)

	errs, warnings := v.Validate(payload)

	assert.Contains(t, errs, "Duplicate plan id 'basic-1'.")
	assert.Contains(t, warnings, "Duplicate region/tier combination for US Basic.")
}

func TestValidate_PremiumWithoutUHDWarns(t *testing.T) {
	v := newValidator(t)
	payload := documentPayload(planPayload(map[string]any{
		"id":            "premium-1",
		"name":          "Premium Plan",
		"tier":          "Premium",
		"device_limit":  4,
		"video_quality": "HD",
	}))

	errs, warnings := v.Validate(payload)

	assert.Empty(t, errs)
	assert.Contains(t, warnings, "Premium tier plan 'Premium Plan' should advertise UHD or 4K video quality.")
}

func TestValidate_FreePlanWithoutAddOnsWarns(t *testing.T) {
	v := newValidator(t)
	payload := documentPayload(planPayload(map[string]any{
		"id":    "free-1",
		"name":  "Free Tier",
		"tier":  "Standard",
		"price": map[string]any{"monthly": 0.0, "currency": "USD"},
	}))

	errs, warnings := v.Validate(payload)

	assert.Empty(t, errs)
	assert.Contains(t, warnings, "Plan 'Free Tier' is free with no add-ons; confirm that is intentional.")
}

func TestValidate_Idempotent(t *testing.T) {
	v := newValidator(t)
	payload := documentPayload(
		planPayload(map[string]any{"device_limit": 2}),
		planPayload(map[string]any{"name": "Basic Twin"}),
	)

	errs1, warnings1 := v.Validate(payload)
	errs2, warnings2 := v.Validate(payload)

	assert.Equal(t, errs1, errs2)
	assert.Equal(t, warnings1, warnings2)
}

func TestValidate_CleanDocumentPasses(t *testing.T) {
	v := newValidator(t)
	payload := documentPayload(planPayload(map[string]any{
		"add_ons": []any{map[string]any{"name": "Ad-free", "price_delta": 3.0}},
	}))

	errs, warnings := v.Validate(payload)

	assert.Empty(t, errs)
	assert.Empty(t, warnings)
}
