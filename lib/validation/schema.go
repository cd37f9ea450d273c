package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/icco/launchdash/lib/figures"
	"github.com/xeipuuv/gojsonschema"
)

// UpdateRequestSchema defines the JSON schema for dashboard update requests.
// The site is free text: an unknown site is answered with empty figures, not an error.
var UpdateRequestSchema = `{
	"type": "object",
	"properties": {
		"site": {"type": "string", "minLength": 1},
		"payload": {
			"type": "array",
			"items": {"type": "number"},
			"minItems": 2,
			"maxItems": 2
		}
	},
	"required": ["site"],
	"additionalProperties": false
}`

var updateRequestSchema = gojsonschema.NewStringLoader(UpdateRequestSchema)

// UpdateRequest carries the dashboard inputs: the selected site and the payload
// slider value. Payload is nil when the client leaves the slider untouched.
type UpdateRequest struct {
	Site    string    `json:"site"`
	Payload []float64 `json:"payload,omitempty"`
}

// PayloadRange returns the requested range, or fallback when none was sent.
func (r UpdateRequest) PayloadRange(fallback figures.PayloadRange) figures.PayloadRange {
	if len(r.Payload) != 2 {
		return fallback
	}
	return figures.PayloadRange{Low: r.Payload[0], High: r.Payload[1]}
}

// ValidateUpdateRequest validates a JSON request body against the update schema.
func ValidateUpdateRequest(jsonData []byte) error {
	documentLoader := gojsonschema.NewBytesLoader(jsonData)

	result, err := gojsonschema.Validate(updateRequestSchema, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate JSON schema: %w", err)
	}

	if !result.Valid() {
		var errorMessages []string
		for _, desc := range result.Errors() {
			errorMessages = append(errorMessages, desc.String())
		}
		return fmt.Errorf("JSON validation failed: %s", strings.Join(errorMessages, "; "))
	}

	return nil
}

// ValidateAndParseUpdateRequest validates and parses an update request body.
func ValidateAndParseUpdateRequest(jsonData []byte) (*UpdateRequest, error) {
	if err := ValidateUpdateRequest(jsonData); err != nil {
		return nil, err
	}

	var req UpdateRequest
	if err := json.Unmarshal(jsonData, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return &req, nil
}
