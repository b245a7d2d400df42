package store

import "github.com/luminaflow/studio-go/pkg/types"

// Seed installs the two demo workflows shown on a fresh dashboard.
// Intended for local development; duplicate ids are ignored so Seed is safe
// to call more than once.
func (s *Store) Seed() {
	demos := []*types.Workflow{
		{
			ID:          "demo-lead-sync",
			Name:        "Lead Sync CRM",
			Description: "Syncs new webhook leads to CRM",
			Active:      false,
			Status:      types.WorkflowStatusIdle,
			LastRun:     "1 day ago",
			Nodes: []types.Node{
				{ID: "1", Name: "Webhook", Kind: types.NodeKindWebhook, Position: types.Position{X: 50, Y: 150}, Config: map[string]any{}, Icon: "webhook"},
				{ID: "2", Name: "Transform Data", Kind: types.NodeKindFunction, Position: types.Position{X: 300, Y: 150}, Config: map[string]any{}, Icon: "code"},
			},
			Connections: []types.Connection{
				{ID: "c1", Source: "1", Target: "2"},
			},
		},
		{
			ID:          "demo-email-digest",
			Name:        "Daily Email Digest",
			Description: "Scrapes news and sends summary",
			Active:      true,
			Status:      types.WorkflowStatusSuccess,
			LastRun:     "2 mins ago",
			Nodes: []types.Node{
				{ID: "1", Name: "Schedule Trigger", Kind: types.NodeKindTrigger, Position: types.Position{X: 50, Y: 100}, Config: map[string]any{}, Icon: "clock"},
				{ID: "2", Name: "HTTP Request", Kind: types.NodeKindAction, Position: types.Position{X: 300, Y: 100}, Config: map[string]any{}, Icon: "globe"},
				{ID: "3", Name: "Send Email", Kind: types.NodeKindAction, Position: types.Position{X: 550, Y: 100}, Config: map[string]any{}, Icon: "mail"},
			},
			Connections: []types.Connection{
				{ID: "c1", Source: "1", Target: "2"},
				{ID: "c2", Source: "2", Target: "3"},
			},
		},
	}

	for _, w := range demos {
		_ = s.Insert(w)
	}
}
