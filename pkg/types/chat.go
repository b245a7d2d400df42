package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// ChatRole identifies who authored a chat turn.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is a single turn in an assistant conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatEventType categorizes events on an assistant chat stream.
type ChatEventType string

const (
	ChatEventHello ChatEventType = "hello"
	ChatEventDelta ChatEventType = "delta"
	ChatEventDone  ChatEventType = "done"
	ChatEventError ChatEventType = "error"
)

// ChatEvent is one event on an SSE chat stream. Delta events carry a text
// fragment; consumers append fragments to a single accumulating message in
// arrival order.
type ChatEvent struct {
	ID        string        `json:"id"`
	MessageID string        `json:"message_id"`
	Type      ChatEventType `json:"type"`
	Text      string        `json:"text,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// ToSSE formats the event for the Server-Sent Events protocol.
// Format: id: <id>\nevent: <type>\ndata: <json>\n\n
func (e *ChatEvent) ToSSE() []byte {
	data, _ := json.Marshal(e)
	return []byte(fmt.Sprintf("id: %s\nevent: %s\ndata: %s\n\n", e.ID, e.Type, data))
}
