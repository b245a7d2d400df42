// Package assistant talks to the external model that powers chat, workflow
// generation, and workflow analysis. Its output is untrusted by
// construction; generated graphs must pass through ingest before they reach
// the store.
package assistant

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/luminaflow/studio-go/pkg/types"
)

// ErrNoResult signals that the model produced no usable output for a
// generation request.
var ErrNoResult = errors.New("assistant returned no result")

// FallbackChatMessage is shown in place of a raw transport fault during a
// chat stream.
const FallbackChatMessage = "I encountered an error processing your request. Please try again."

// FallbackAnalysis is shown when workflow analysis fails.
const FallbackAnalysis = "Unable to analyze workflow."

// Client is the collaborator contract. Implementations must be safe for
// concurrent use.
type Client interface {
	// StreamChat sends prior turns plus a new user message and returns an
	// ordered, finite sequence of text fragments. The channel is closed
	// when the stream ends. A transport failure mid-stream surfaces as a
	// final fallback fragment, never as a raw fault; a failure to open the
	// stream at all is returned as an error.
	StreamChat(ctx context.Context, history []types.ChatMessage, message string) (<-chan string, error)

	// GenerateWorkflow converts a natural-language prompt into a raw
	// workflow payload for ingestion. Returns ErrNoResult when the model
	// yields nothing usable.
	GenerateWorkflow(ctx context.Context, prompt string) (json.RawMessage, error)

	// Analyze returns free-text commentary on a workflow's nodes and
	// connections.
	Analyze(ctx context.Context, w *types.Workflow) (string, error)
}
