package validation

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// componentEnvelopeSchema is the wire contract every generated component
// must satisfy before it is returned to a client.
const componentEnvelopeSchema = `{
	"type": "object",
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"agentName": {"type": "string", "minLength": 1},
		"componentType": {"type": "string", "minLength": 1},
		"componentCode": {"type": "string"},
		"businessContext": {"type": "string"}
	},
	"required": ["id", "agentName", "componentType", "componentCode"],
	"additionalProperties": true
}`

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ComponentValidator validates generated component envelopes against the
// JSON Schema contract.
type ComponentValidator struct {
	schema *gojsonschema.Schema
}

// NewComponentValidator compiles the envelope schema once.
func NewComponentValidator() (*ComponentValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(componentEnvelopeSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile component envelope schema: %w", err)
	}
	return &ComponentValidator{schema: schema}, nil
}

// Validate checks a component envelope. v must be JSON-marshalable.
func (cv *ComponentValidator) Validate(v interface{}) (*ValidationResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal component for validation: %w", err)
	}

	result, err := cv.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return out, nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}
