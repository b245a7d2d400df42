package assistant

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/luminaflow/studio-go/pkg/types"
)

const systemInstruction = `You are Lumina, an expert AI workflow architect specializing in n8n-style automation.
Your goal is to help users design, debug, and optimize automation workflows.
Be concise, technical but accessible, and always suggest practical node configurations.`

const generatePromptTemplate = `Generate a JSON representation of an automation workflow based on this request: %q.

The structure must strictly follow this schema:
{
  "name": "Workflow Name",
  "description": "Short description",
  "nodes": [
    { "id": "1", "name": "Webhook", "type": "trigger", "position": { "x": 100, "y": 100 }, "data": {}, "icon": "webhook" }
  ],
  "connections": [
    { "id": "c1", "source": "1", "target": "2" }
  ]
}

Available node types: 'trigger', 'action', 'function', 'webhook'.
Spread nodes out horizontally (x axis increments by 250).
Return ONLY valid JSON.`

// OllamaConfig configures the Ollama-backed client.
type OllamaConfig struct {
	URL     string        // base URL, e.g. http://localhost:11434
	Model   string        // model name, e.g. llama3:instruct
	Timeout time.Duration // per-request timeout
}

// Ollama implements Client against a local Ollama API.
type Ollama struct {
	url    string
	model  string
	client *http.Client
}

// NewOllama creates an Ollama client with defaults filled in.
func NewOllama(cfg *OllamaConfig) *Ollama {
	url := cfg.URL
	if url == "" {
		url = "http://localhost:11434"
	}
	model := cfg.Model
	if model == "" {
		model = "llama3:instruct"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 90 * time.Second
	}
	return &Ollama{
		url:    url,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatChunk struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// StreamChat streams fragments from /api/chat. Fragments are forwarded in
// arrival order; a mid-stream failure appends the fallback message and ends
// the stream.
func (o *Ollama) StreamChat(ctx context.Context, history []types.ChatMessage, message string) (<-chan string, error) {
	msgs := make([]chatMessage, 0, len(history)+2)
	msgs = append(msgs, chatMessage{Role: "system", Content: systemInstruction})
	for _, m := range history {
		role := "user"
		if m.Role == types.ChatRoleModel {
			role = "assistant"
		}
		msgs = append(msgs, chatMessage{Role: role, Content: m.Content})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: message})

	reqBody := map[string]any{
		"model":    o.model,
		"messages": msgs,
		"stream":   true,
		"options": map[string]any{
			"temperature": 0.7,
		},
	}
	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST", o.url+"/api/chat", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("ollama chat: unexpected status %d", resp.StatusCode)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			var chunk chatChunk
			if err := json.Unmarshal(line, &chunk); err != nil {
				continue
			}
			if chunk.Message.Content != "" {
				select {
				case out <- chunk.Message.Content:
				case <-ctx.Done():
					return
				}
			}
			if chunk.Done {
				return
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			select {
			case out <- FallbackChatMessage:
			case <-ctx.Done():
			}
		}
	}()

	return out, nil
}

// GenerateWorkflow asks /api/generate for a strict-JSON workflow payload.
func (o *Ollama) GenerateWorkflow(ctx context.Context, prompt string) (json.RawMessage, error) {
	reqBody := map[string]any{
		"model":  o.model,
		"system": systemInstruction,
		"prompt": fmt.Sprintf(generatePromptTemplate, prompt),
		"format": "json",
		"stream": false,
		"options": map[string]any{
			"temperature": 0.2,
			"num_ctx":     2048,
		},
	}
	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST", o.url+"/api/generate", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama generate: unexpected status %d", resp.StatusCode)
	}

	var raw struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	if raw.Response == "" {
		return nil, ErrNoResult
	}

	return json.RawMessage(raw.Response), nil
}

// Analyze asks for free-text commentary on the serialized graph.
func (o *Ollama) Analyze(ctx context.Context, w *types.Workflow) (string, error) {
	graphJSON, err := json.Marshal(map[string]any{
		"nodes":       w.Nodes,
		"connections": w.Connections,
	})
	if err != nil {
		return "", err
	}

	reqBody := map[string]any{
		"model":  o.model,
		"system": systemInstruction,
		"prompt": fmt.Sprintf("Analyze this workflow structure and provide 3 brief bullet points on potential improvements or security risks: %s", graphJSON),
		"stream": false,
		"options": map[string]any{
			"temperature": 0.4,
		},
	}
	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST", o.url+"/api/generate", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama analyze: unexpected status %d", resp.StatusCode)
	}

	var raw struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if raw.Response == "" {
		return "", ErrNoResult
	}

	return raw.Response, nil
}
