// Package ingest converts untrusted, loosely-typed workflow payloads (the
// assistant's output, or manual creation requests) into validated Workflow
// records. It is the sole trust boundary in front of the store.
package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/luminaflow/studio-go/internal/validator"
	"github.com/luminaflow/studio-go/pkg/types"
)

// MalformedPayloadError reports a missing or mis-typed top-level field in a
// raw payload.
type MalformedPayloadError struct {
	Field  string
	Detail string
}

func (e *MalformedPayloadError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("malformed payload at %s: %s", e.Field, e.Detail)
	}
	return fmt.Sprintf("malformed payload at %s", e.Field)
}

// InvalidGraphError reports a structural validation failure in a payload
// that passed the shape check. The payload is discarded, never patched.
type InvalidGraphError struct {
	Reason error
}

func (e *InvalidGraphError) Error() string {
	return fmt.Sprintf("invalid generated graph: %v", e.Reason)
}

func (e *InvalidGraphError) Unwrap() error {
	return e.Reason
}

// payload is the loose wire shape accepted from outside. A workflow id is
// never taken from it; identity is assigned here.
type payload struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Nodes       []types.Node       `json:"nodes"`
	Connections []types.Connection `json:"connections"`
}

// Ingestor assembles validated workflows from raw payloads.
type Ingestor struct {
	validator *validator.Validator
}

// New creates an ingestor using the given payload validator.
func New(v *validator.Validator) *Ingestor {
	return &Ingestor{validator: v}
}

// Ingest shape-checks a raw JSON payload, assigns a fresh workflow id, and
// runs structural validation. On success it returns the workflow ready for
// insertion plus any advisory warnings. External node and connection ids
// only need to be unique within the payload; workflow-level uniqueness is
// the store's concern.
func (i *Ingestor) Ingest(raw []byte) (*types.Workflow, []validator.Warning, error) {
	if res := i.validator.ValidatePayloadJSON(raw); !res.Valid {
		first := res.Errors[0]
		return nil, nil, &MalformedPayloadError{Field: shapeField(first), Detail: first.Message}
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, nil, &MalformedPayloadError{Field: "$", Detail: err.Error()}
	}

	w := &types.Workflow{
		ID:          uuid.New().String(),
		Name:        p.Name,
		Description: p.Description,
		Active:      false,
		Status:      types.WorkflowStatusIdle,
		Nodes:       p.Nodes,
		Connections: p.Connections,
	}
	if w.Nodes == nil {
		w.Nodes = []types.Node{}
	}
	if w.Connections == nil {
		w.Connections = []types.Connection{}
	}

	warnings, err := validator.ValidateWorkflow(w)
	if err != nil {
		return nil, nil, &InvalidGraphError{Reason: err}
	}

	return w, warnings, nil
}

// shapeField picks the most useful field name out of a schema error path.
func shapeField(e validator.ShapeError) string {
	if e.Path == "" {
		return "$"
	}
	return e.Path
}
