package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luminaflow/studio-go/pkg/types"
)

func TestOllama_StreamChat(t *testing.T) {
	t.Run("forwards fragments in arrival order", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/chat" {
				t.Errorf("unexpected path %q", r.URL.Path)
			}
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["model"] != "test-model" {
				t.Errorf("unexpected model %v", body["model"])
			}

			w.Header().Set("Content-Type", "application/x-ndjson")
			w.Write([]byte(`{"message":{"content":"Hello"},"done":false}` + "\n"))
			w.Write([]byte(`{"message":{"content":", "},"done":false}` + "\n"))
			w.Write([]byte(`{"message":{"content":"world"},"done":true}` + "\n"))
		}))
		defer srv.Close()

		client := NewOllama(&OllamaConfig{URL: srv.URL, Model: "test-model"})

		history := []types.ChatMessage{
			{Role: types.ChatRoleUser, Content: "hi"},
			{Role: types.ChatRoleModel, Content: "hello"},
		}
		fragments, err := client.StreamChat(context.Background(), history, "build me a workflow")
		if err != nil {
			t.Fatalf("StreamChat failed: %v", err)
		}

		var got []string
		for f := range fragments {
			got = append(got, f)
		}

		want := []string{"Hello", ", ", "world"}
		if len(got) != len(want) {
			t.Fatalf("expected %d fragments, got %d: %v", len(want), len(got), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("fragment %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("returns error when the server is unreachable", func(t *testing.T) {
		client := NewOllama(&OllamaConfig{URL: "http://127.0.0.1:1"})

		_, err := client.StreamChat(context.Background(), nil, "hi")
		if err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("returns error on non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewOllama(&OllamaConfig{URL: srv.URL})

		_, err := client.StreamChat(context.Background(), nil, "hi")
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestOllama_GenerateWorkflow(t *testing.T) {
	t.Run("returns the raw payload", func(t *testing.T) {
		payload := `{"name":"Generated","nodes":[],"connections":[]}`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/generate" {
				t.Errorf("unexpected path %q", r.URL.Path)
			}
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["format"] != "json" {
				t.Errorf("expected json format, got %v", body["format"])
			}
			json.NewEncoder(w).Encode(map[string]string{"response": payload})
		}))
		defer srv.Close()

		client := NewOllama(&OllamaConfig{URL: srv.URL})

		raw, err := client.GenerateWorkflow(context.Background(), "email digest")
		if err != nil {
			t.Fatalf("GenerateWorkflow failed: %v", err)
		}
		if string(raw) != payload {
			t.Errorf("payload = %s, want %s", raw, payload)
		}
	})

	t.Run("empty response is ErrNoResult", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"response": ""})
		}))
		defer srv.Close()

		client := NewOllama(&OllamaConfig{URL: srv.URL})

		_, err := client.GenerateWorkflow(context.Background(), "anything")
		if !errors.Is(err, ErrNoResult) {
			t.Errorf("expected ErrNoResult, got %v", err)
		}
	})
}

func TestOllama_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		prompt, _ := body["prompt"].(string)
		if prompt == "" {
			t.Error("expected a prompt")
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "- looks fine"})
	}))
	defer srv.Close()

	client := NewOllama(&OllamaConfig{URL: srv.URL})

	wf := &types.Workflow{
		ID:    "wf",
		Nodes: []types.Node{{ID: "1", Name: "A", Kind: types.NodeKindTrigger}},
	}
	got, err := client.Analyze(context.Background(), wf)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if got != "- looks fine" {
		t.Errorf("analysis = %q", got)
	}
}
