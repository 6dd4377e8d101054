package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

// importSchema validates a bulk-import document before it is decoded into
// nodes. The document is a JSON array of node objects.
var importSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"required": []any{
			"node_id",
			"stage",
			"scenario_title",
			"scenario_description",
			"script_name",
			"script_section",
			"crm_actions",
		},
		"properties": map[string]any{
			"node_id":   map[string]any{"type": "string", "minLength": 1},
			"parent_id": map[string]any{"type": "string"},
			"stage": map[string]any{
				"type": "string",
				"enum": []any{
					"Source", "First Contact", "Appointment", "Pre-Call",
					"Close", "Objection", "Follow-Up", "Outcome",
				},
			},
			"scenario_title":           map[string]any{"type": "string", "minLength": 1},
			"scenario_description":     map[string]any{"type": "string", "minLength": 1},
			"script_name":              map[string]any{"type": "string", "minLength": 1},
			"script_section":           map[string]any{"type": "string", "minLength": 1},
			"script_content":           map[string]any{"type": "string"},
			"on_yes_next_node":         map[string]any{"type": "string"},
			"on_no_next_node":          map[string]any{"type": "string"},
			"on_no_response_next_node": map[string]any{"type": "string"},
			"crm_actions":              map[string]any{"type": "string", "minLength": 1},
			"workflow_name":            map[string]any{"type": "string"},
			"display_order":            map[string]any{"type": "integer"},
		},
		"additionalProperties": false,
	},
}

// ValidateImportDocument checks a raw bulk-import JSON document against the
// node schema.
func ValidateImportDocument(document []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(importSchema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return NewValidationError("ValidateImportDocument", err.Error(), ErrImportSchema)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return NewValidationError(
			"ValidateImportDocument",
			fmt.Sprintf("validation errors: %s", strings.Join(details, "; ")),
			ErrImportSchema,
		)
	}

	return nil
}

// DecodeImportDocument decodes a schema-valid bulk-import document into
// nodes ready for BulkImport.
func DecodeImportDocument(document []byte) ([]*models.WorkflowNode, error) {
	var nodes []*models.WorkflowNode
	if err := json.Unmarshal(document, &nodes); err != nil {
		return nil, NewValidationError("DecodeImportDocument", err.Error(), ErrImportSchema)
	}

	return nodes, nil
}
