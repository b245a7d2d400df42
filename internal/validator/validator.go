// Package validator checks workflow graphs before they are accepted into
// the store: JSON-Schema shape validation for raw generated payloads and
// structural invariant checks for assembled workflows.
package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/luminaflow/studio-go/pkg/types"
)

// DuplicateNodeIDError reports two nodes sharing an id within one workflow.
type DuplicateNodeIDError struct {
	NodeID string
}

func (e *DuplicateNodeIDError) Error() string {
	return fmt.Sprintf("duplicate node id %q", e.NodeID)
}

// DuplicateConnectionIDError reports two connections sharing an id.
type DuplicateConnectionIDError struct {
	ConnectionID string
}

func (e *DuplicateConnectionIDError) Error() string {
	return fmt.Sprintf("duplicate connection id %q", e.ConnectionID)
}

// DanglingConnectionError reports a connection endpoint that does not
// resolve to a node in the same workflow.
type DanglingConnectionError struct {
	ConnectionID    string
	MissingEndpoint string
}

func (e *DanglingConnectionError) Error() string {
	return fmt.Sprintf("connection %q references missing node %q", e.ConnectionID, e.MissingEndpoint)
}

// UnknownNodeKindError reports a node kind outside the closed set.
type UnknownNodeKindError struct {
	NodeID string
	Kind   string
}

func (e *UnknownNodeKindError) Error() string {
	return fmt.Sprintf("node %q has unknown kind %q", e.NodeID, e.Kind)
}

// WarningCode identifies an advisory finding that does not block acceptance.
type WarningCode string

// WarningSelfLoop flags a connection whose source and target are the same
// node. Structurally legal, semantically unusual.
const WarningSelfLoop WarningCode = "self_loop"

// Warning is a non-fatal finding surfaced alongside an accepted workflow.
type Warning struct {
	Code         WarningCode `json:"code"`
	ConnectionID string      `json:"connection_id,omitempty"`
	Message      string      `json:"message"`
}

// ValidateWorkflow checks the structural invariants of a candidate workflow.
// It never mutates the candidate. On success it returns the advisory
// warnings collected along the way; on failure it returns the first
// structural error encountered, in check order: node id uniqueness,
// connection id uniqueness, referential integrity, node kind validity.
func ValidateWorkflow(w *types.Workflow) ([]Warning, error) {
	nodeIDs := make(map[string]struct{}, len(w.Nodes))
	for _, n := range w.Nodes {
		if _, seen := nodeIDs[n.ID]; seen {
			return nil, &DuplicateNodeIDError{NodeID: n.ID}
		}
		nodeIDs[n.ID] = struct{}{}
	}

	connIDs := make(map[string]struct{}, len(w.Connections))
	for _, c := range w.Connections {
		if _, seen := connIDs[c.ID]; seen {
			return nil, &DuplicateConnectionIDError{ConnectionID: c.ID}
		}
		connIDs[c.ID] = struct{}{}
	}

	for _, c := range w.Connections {
		if _, ok := nodeIDs[c.Source]; !ok {
			return nil, &DanglingConnectionError{ConnectionID: c.ID, MissingEndpoint: c.Source}
		}
		if _, ok := nodeIDs[c.Target]; !ok {
			return nil, &DanglingConnectionError{ConnectionID: c.ID, MissingEndpoint: c.Target}
		}
	}

	for _, n := range w.Nodes {
		if !n.Kind.Valid() {
			return nil, &UnknownNodeKindError{NodeID: n.ID, Kind: string(n.Kind)}
		}
	}

	var warnings []Warning
	for _, c := range w.Connections {
		if c.Source == c.Target {
			warnings = append(warnings, Warning{
				Code:         WarningSelfLoop,
				ConnectionID: c.ID,
				Message:      fmt.Sprintf("connection %q loops node %q back onto itself", c.ID, c.Source),
			})
		}
	}

	return warnings, nil
}

// Validator validates raw workflow payloads against an embedded schema.
type Validator struct {
	payloadSchema *jsonschema.Schema
}

// ShapeError describes a schema-level failure in a raw payload.
type ShapeError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ShapeResult holds the result of a payload shape check.
type ShapeResult struct {
	Valid  bool         `json:"valid"`
	Errors []ShapeError `json:"errors,omitempty"`
}

// New creates a validator with the embedded payload schema compiled.
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("workflow_payload.json", strings.NewReader(payloadSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add payload schema: %w", err)
	}

	schema, err := compiler.Compile("workflow_payload.json")
	if err != nil {
		return nil, fmt.Errorf("compile payload schema: %w", err)
	}

	return &Validator{payloadSchema: schema}, nil
}

// ValidatePayload validates a decoded raw workflow payload.
func (v *Validator) ValidatePayload(payload map[string]interface{}) *ShapeResult {
	return v.validate(v.payloadSchema, payload)
}

// ValidatePayloadJSON validates a JSON-encoded raw workflow payload.
func (v *Validator) ValidatePayloadJSON(data []byte) *ShapeResult {
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return &ShapeResult{
			Valid: false,
			Errors: []ShapeError{
				{Path: "$", Message: fmt.Sprintf("invalid JSON: %v", err)},
			},
		}
	}
	return v.ValidatePayload(payload)
}

func (v *Validator) validate(schema *jsonschema.Schema, data interface{}) *ShapeResult {
	err := schema.Validate(data)
	if err == nil {
		return &ShapeResult{Valid: true}
	}

	result := &ShapeResult{Valid: false}
	if verr, ok := err.(*jsonschema.ValidationError); ok {
		result.Errors = extractErrors(verr)
	} else {
		result.Errors = []ShapeError{{Path: "$", Message: err.Error()}}
	}
	return result
}

// extractErrors recursively extracts validation errors.
func extractErrors(verr *jsonschema.ValidationError) []ShapeError {
	var errors []ShapeError

	if verr.Message != "" {
		errors = append(errors, ShapeError{
			Path:    verr.InstanceLocation,
			Message: verr.Message,
		})
	}

	for _, cause := range verr.Causes {
		errors = append(errors, extractErrors(cause)...)
	}

	return errors
}

// Embedded JSON schema for the loose payload shape produced by the assistant
// (and accepted from manual creation). Id uniqueness and referential
// integrity are checked by ValidateWorkflow; a schema cannot express them.
const payloadSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "workflow_payload.json",
  "title": "Workflow Payload",
  "description": "Raw workflow structure before identity assignment",
  "type": "object",
  "required": ["name", "nodes", "connections"],
  "properties": {
    "name": {
      "type": "string",
      "minLength": 1,
      "description": "Workflow display name"
    },
    "description": {
      "type": "string",
      "description": "Short description"
    },
    "nodes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "type"],
        "properties": {
          "id": {
            "type": "string",
            "minLength": 1,
            "description": "Node identifier, unique within the payload"
          },
          "name": {
            "type": "string",
            "minLength": 1,
            "description": "Display label"
          },
          "type": {
            "type": "string",
            "description": "Node kind"
          },
          "position": {
            "type": "object",
            "properties": {
              "x": {"type": "number"},
              "y": {"type": "number"}
            },
            "description": "Top-left anchor of the rendered box"
          },
          "data": {
            "type": "object",
            "description": "Node-specific configuration"
          },
          "icon": {
            "type": "string",
            "description": "Optional glyph hint"
          }
        }
      },
      "description": "Workflow nodes"
    },
    "connections": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "source", "target"],
        "properties": {
          "id": {
            "type": "string",
            "minLength": 1,
            "description": "Connection identifier, unique within the payload"
          },
          "source": {
            "type": "string",
            "description": "Source node id"
          },
          "target": {
            "type": "string",
            "description": "Target node id"
          }
        }
      },
      "description": "Directed edges between nodes"
    }
  }
}`
