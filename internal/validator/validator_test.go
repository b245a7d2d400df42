package validator

import (
	"errors"
	"testing"

	"github.com/luminaflow/studio-go/pkg/types"
)

func validWorkflow() *types.Workflow {
	return &types.Workflow{
		ID:   "wf-1",
		Name: "Test",
		Nodes: []types.Node{
			{ID: "1", Name: "Start", Kind: types.NodeKindTrigger},
			{ID: "2", Name: "Do", Kind: types.NodeKindAction},
		},
		Connections: []types.Connection{
			{ID: "c1", Source: "1", Target: "2"},
		},
	}
}

func TestValidateWorkflow(t *testing.T) {
	t.Run("accepts valid workflow", func(t *testing.T) {
		warnings, err := ValidateWorkflow(validWorkflow())
		if err != nil {
			t.Fatalf("ValidateWorkflow failed: %v", err)
		}
		if len(warnings) != 0 {
			t.Errorf("expected no warnings, got %v", warnings)
		}
	})

	t.Run("rejects duplicate node id", func(t *testing.T) {
		w := validWorkflow()
		w.Nodes = append(w.Nodes, types.Node{ID: "1", Name: "Again", Kind: types.NodeKindAction})

		_, err := ValidateWorkflow(w)
		var dup *DuplicateNodeIDError
		if !errors.As(err, &dup) {
			t.Fatalf("expected DuplicateNodeIDError, got %v", err)
		}
		if dup.NodeID != "1" {
			t.Errorf("expected node id %q, got %q", "1", dup.NodeID)
		}
	})

	t.Run("rejects duplicate connection id", func(t *testing.T) {
		w := validWorkflow()
		w.Connections = append(w.Connections, types.Connection{ID: "c1", Source: "2", Target: "1"})

		_, err := ValidateWorkflow(w)
		var dup *DuplicateConnectionIDError
		if !errors.As(err, &dup) {
			t.Fatalf("expected DuplicateConnectionIDError, got %v", err)
		}
		if dup.ConnectionID != "c1" {
			t.Errorf("expected connection id %q, got %q", "c1", dup.ConnectionID)
		}
	})

	t.Run("rejects dangling connection", func(t *testing.T) {
		w := validWorkflow()
		w.Connections = append(w.Connections, types.Connection{ID: "c2", Source: "2", Target: "missing"})

		_, err := ValidateWorkflow(w)
		var dangling *DanglingConnectionError
		if !errors.As(err, &dangling) {
			t.Fatalf("expected DanglingConnectionError, got %v", err)
		}
		if dangling.ConnectionID != "c2" {
			t.Errorf("expected connection id %q, got %q", "c2", dangling.ConnectionID)
		}
		if dangling.MissingEndpoint != "missing" {
			t.Errorf("expected missing endpoint %q, got %q", "missing", dangling.MissingEndpoint)
		}
	})

	t.Run("rejects unknown node kind", func(t *testing.T) {
		w := validWorkflow()
		w.Nodes[1].Kind = "teleport"

		_, err := ValidateWorkflow(w)
		var unknown *UnknownNodeKindError
		if !errors.As(err, &unknown) {
			t.Fatalf("expected UnknownNodeKindError, got %v", err)
		}
		if unknown.NodeID != "2" || unknown.Kind != "teleport" {
			t.Errorf("unexpected error fields: %+v", unknown)
		}
	})

	t.Run("node id check runs before referential check", func(t *testing.T) {
		w := validWorkflow()
		w.Nodes = append(w.Nodes, types.Node{ID: "1", Name: "Again", Kind: types.NodeKindAction})
		w.Connections = append(w.Connections, types.Connection{ID: "c2", Source: "1", Target: "missing"})

		_, err := ValidateWorkflow(w)
		var dup *DuplicateNodeIDError
		if !errors.As(err, &dup) {
			t.Fatalf("expected DuplicateNodeIDError first, got %v", err)
		}
	})

	t.Run("self loop is a warning not an error", func(t *testing.T) {
		w := validWorkflow()
		w.Connections = append(w.Connections, types.Connection{ID: "c2", Source: "2", Target: "2"})

		warnings, err := ValidateWorkflow(w)
		if err != nil {
			t.Fatalf("ValidateWorkflow failed: %v", err)
		}
		if len(warnings) != 1 {
			t.Fatalf("expected 1 warning, got %d", len(warnings))
		}
		if warnings[0].Code != WarningSelfLoop {
			t.Errorf("expected code %q, got %q", WarningSelfLoop, warnings[0].Code)
		}
		if warnings[0].ConnectionID != "c2" {
			t.Errorf("expected connection id %q, got %q", "c2", warnings[0].ConnectionID)
		}
	})

	t.Run("does not mutate the candidate", func(t *testing.T) {
		w := validWorkflow()
		before := len(w.Nodes)

		_, _ = ValidateWorkflow(w)

		if len(w.Nodes) != before || w.Nodes[0].ID != "1" {
			t.Error("candidate was mutated")
		}
	})
}

func TestValidatePayloadJSON(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		name    string
		payload string
		valid   bool
	}{
		{
			name:    "valid payload",
			payload: `{"name":"X","nodes":[{"id":"1","name":"A","type":"trigger"}],"connections":[]}`,
			valid:   true,
		},
		{
			name:    "missing name",
			payload: `{"nodes":[],"connections":[]}`,
			valid:   false,
		},
		{
			name:    "missing nodes",
			payload: `{"name":"X","connections":[]}`,
			valid:   false,
		},
		{
			name:    "nodes not an array",
			payload: `{"name":"X","nodes":{},"connections":[]}`,
			valid:   false,
		},
		{
			name:    "connection without target",
			payload: `{"name":"X","nodes":[],"connections":[{"id":"c1","source":"1"}]}`,
			valid:   false,
		},
		{
			name:    "empty name",
			payload: `{"name":"","nodes":[],"connections":[]}`,
			valid:   false,
		},
		{
			name:    "not JSON at all",
			payload: `not json`,
			valid:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.ValidatePayloadJSON([]byte(tt.payload))
			if res.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v (errors: %v)", res.Valid, tt.valid, res.Errors)
			}
			if !tt.valid && len(res.Errors) == 0 {
				t.Error("invalid result should carry errors")
			}
		})
	}
}
