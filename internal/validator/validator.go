package validator

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/plan-backend/internal/entity"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed plan_document.schema.json
var planDocumentSchema []byte

// Validator checks generated plan documents in two phases: a structural
// JSON Schema pass over the untyped payload, then cross-field business rules
// over the typed document. Rules never run on structurally invalid input.
type Validator struct {
	schema *jsonschema.Schema
}

func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("plan_document.schema.json", bytes.NewReader(planDocumentSchema)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile("plan_document.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile plan document schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate returns hard errors and soft warnings for a candidate payload.
// Warnings are only produced when the structural phase is clean.
func (v *Validator) Validate(payload map[string]any) (errors []string, warnings []string) {
	data, err := json.Marshal(payload)
	if err != nil {
		return []string{fmt.Sprintf("payload is not serializable: %v", err)}, nil
	}

	// Re-decode through JSON so numbers and nesting match what the schema
	// engine expects regardless of how the payload was parsed.
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return []string{fmt.Sprintf("payload is not serializable: %v", err)}, nil
	}

	if err := v.schema.Validate(instance); err != nil {
		var ve *jsonschema.ValidationError
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			ve = verr
		} else {
			return []string{err.Error()}, nil
		}
		return formatLeafErrors(ve), nil
	}

	var document entity.PlanDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return []string{fmt.Sprintf("decode plan document: %v", err)}, nil
	}
	document.Normalize()

	return crossFieldRules(&document)
}

// crossFieldRules applies business rules in plan order. Duplicate ids are
// hard errors while duplicate region/tier pairs are only warnings; that
// asymmetry is intentional.
func crossFieldRules(document *entity.PlanDocument) (errors []string, warnings []string) {
	errors = []string{}
	warnings = []string{}
	seenIDs := make(map[string]struct{})
	seenRegionTiers := make(map[string]struct{})

	for _, plan := range document.Plans {
		if _, ok := seenIDs[plan.ID]; ok {
			errors = append(errors, fmt.Sprintf("Duplicate plan id '%s'.", plan.ID))
		}
		seenIDs[plan.ID] = struct{}{}

		pair := strings.ToLower(plan.Region) + "\x00" + strings.ToLower(plan.Tier)
		if _, ok := seenRegionTiers[pair]; ok {
			warnings = append(warnings, fmt.Sprintf("Duplicate region/tier combination for %s %s.", plan.Region, plan.Tier))
		}
		seenRegionTiers[pair] = struct{}{}

		tier := strings.ToLower(plan.Tier)
		if tier == "basic" && plan.DeviceLimit > 1 {
			errors = append(errors, fmt.Sprintf("Basic tier plan '%s' exceeds 1 device limit.", plan.Name))
		}
		if tier == "mobile" && plan.DeviceLimit > 1 {
			errors = append(errors, fmt.Sprintf("Mobile tier plan '%s' exceeds mobile device policy.", plan.Name))
		}
		if tier == "premium" || tier == "uhd" {
			quality := strings.ToUpper(plan.VideoQuality)
			if quality != "UHD" && quality != "4K" {
				warnings = append(warnings, fmt.Sprintf("Premium tier plan '%s' should advertise UHD or 4K video quality.", plan.Name))
			}
		}
		if plan.Price.Monthly == 0 && len(plan.AddOns) == 0 {
			warnings = append(warnings, fmt.Sprintf("Plan '%s' is free with no add-ons; confirm that is intentional.", plan.Name))
		}
	}
	return errors, warnings
}

// formatLeafErrors flattens the validation error tree to its leaves, each
// rendered as "<dotted-path>: <message>" (path omitted at document root).
func formatLeafErrors(err *jsonschema.ValidationError) []string {
	var out []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, formatError(e))
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(err)
	return out
}

func formatError(e *jsonschema.ValidationError) string {
	path := pointerToDotted(e.InstanceLocation)
	if path == "" {
		return e.Message
	}
	return path + ": " + e.Message
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

func pointerToDotted(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return ""
	}
	segments := strings.Split(pointer, "/")
	for i, s := range segments {
		segments[i] = pointerUnescaper.Replace(s)
	}
	return strings.Join(segments, ".")
}
