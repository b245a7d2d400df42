package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/luminaflow/studio-go/pkg/types"
)

// Mock implements Client without a model behind it. Used in tests and for
// local development when no Ollama instance is available.
type Mock struct {
	// ChatChunks, when set, overrides the default chat reply.
	ChatChunks []string

	// GeneratePayload, when set, overrides the default generated workflow.
	GeneratePayload json.RawMessage

	// FailGenerate makes GenerateWorkflow report ErrNoResult.
	FailGenerate bool
}

// NewMock creates a mock client with canned responses.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) StreamChat(ctx context.Context, history []types.ChatMessage, message string) (<-chan string, error) {
	chunks := m.ChatChunks
	if chunks == nil {
		chunks = []string{
			"I can help you design that workflow. ",
			"Start with a trigger node, ",
			"then connect the actions you need.",
		}
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for _, c := range chunks {
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (m *Mock) GenerateWorkflow(ctx context.Context, prompt string) (json.RawMessage, error) {
	if m.FailGenerate {
		return nil, ErrNoResult
	}
	if m.GeneratePayload != nil {
		return m.GeneratePayload, nil
	}

	name := "Generated Workflow"
	if s := strings.TrimSpace(prompt); s != "" {
		if len(s) > 40 {
			s = s[:40]
		}
		name = s
	}
	payload := map[string]any{
		"name":        name,
		"description": "Generated from prompt",
		"nodes": []map[string]any{
			{"id": "1", "name": "Webhook", "type": "trigger", "position": map[string]any{"x": 100, "y": 100}, "data": map[string]any{}, "icon": "webhook"},
			{"id": "2", "name": "Process", "type": "function", "position": map[string]any{"x": 350, "y": 100}, "data": map[string]any{}, "icon": "code"},
		},
		"connections": []map[string]any{
			{"id": "c1", "source": "1", "target": "2"},
		},
	}
	b, _ := json.Marshal(payload)
	return b, nil
}

func (m *Mock) Analyze(ctx context.Context, w *types.Workflow) (string, error) {
	return fmt.Sprintf(
		"- Workflow has %d nodes and %d connections\n- Consider adding error handling after external calls\n- Review credentials used by action nodes",
		len(w.Nodes), len(w.Connections)), nil
}
