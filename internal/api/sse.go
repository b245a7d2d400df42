package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/luminaflow/studio-go/internal/assistant"
	"github.com/luminaflow/studio-go/internal/metrics"
	"github.com/luminaflow/studio-go/pkg/types"
)

// chatRequest is the body for POST /api/v1/assistant/chat.
type chatRequest struct {
	Message string `json:"message"`
	History []struct {
		Role    types.ChatRole `json:"role"`
		Content string         `json:"content"`
	} `json:"history,omitempty"`
}

// Chat handles POST /api/v1/assistant/chat. It streams the assistant's
// reply over Server-Sent Events: a hello event carrying the message id,
// one delta event per text fragment in arrival order, and a final done
// event. A transport failure surfaces as a fallback delta, never a broken
// stream.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := GetRequestID(ctx, r)
	startTime := time.Now()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeErrorResponse(w, r, http.StatusBadRequest, ErrCodeBadRequest, "message is required", nil)
		return
	}

	history := make([]types.ChatMessage, 0, len(req.History))
	for _, m := range req.History {
		role := m.Role
		if role != types.ChatRoleModel {
			role = types.ChatRoleUser
		}
		history = append(history, types.ChatMessage{Role: role, Content: m.Content})
	}

	metrics.SSEActiveConnections.Inc()
	defer metrics.SSEActiveConnections.Dec()
	defer func() {
		metrics.SSEConnectionDuration.Observe(time.Since(startTime).Seconds())
	}()

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeErrorResponse(w, r, http.StatusInternalServerError, ErrCodeInternalError, "streaming not supported", nil)
		return
	}
	flusher.Flush()

	// The reply accumulates into one message; its identity lets a client
	// discard the result if the surrounding view moved on.
	messageID := uuid.New().String()
	seq := 0

	h.logger.Info("chat stream opened",
		slog.String("request_id", requestID),
		slog.String("message_id", messageID),
	)

	h.writeChatEvent(w, flusher, &types.ChatEvent{
		ID:        strconv.Itoa(seq),
		MessageID: messageID,
		Type:      types.ChatEventHello,
		Timestamp: time.Now().UTC(),
	})

	fragments, err := h.assistant.StreamChat(ctx, history, req.Message)
	if err != nil {
		// Degrade to a single fallback fragment.
		metrics.AssistantRequestsTotal.WithLabelValues("chat", "failure").Inc()
		h.logger.Error("chat stream failed to open", "error", err, "request_id", requestID)
		seq++
		h.writeChatEvent(w, flusher, &types.ChatEvent{
			ID:        strconv.Itoa(seq),
			MessageID: messageID,
			Type:      types.ChatEventDelta,
			Text:      assistant.FallbackChatMessage,
			Timestamp: time.Now().UTC(),
		})
		h.finishChat(w, flusher, messageID, seq+1)
		return
	}
	metrics.AssistantRequestsTotal.WithLabelValues("chat", "success").Inc()

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	done := ctx.Done()

	for {
		select {
		case <-done:
			h.logger.Info("chat stream closed (client disconnect)",
				slog.String("request_id", requestID),
				slog.String("message_id", messageID),
				slog.Duration("duration", time.Since(startTime)),
			)
			return

		case fragment, ok := <-fragments:
			if !ok {
				h.finishChat(w, flusher, messageID, seq+1)
				h.logger.Info("chat stream completed",
					slog.String("request_id", requestID),
					slog.String("message_id", messageID),
					slog.Int("fragments", seq),
					slog.Duration("duration", time.Since(startTime)),
				)
				return
			}
			seq++
			metrics.ChatFragmentsTotal.Inc()
			h.writeChatEvent(w, flusher, &types.ChatEvent{
				ID:        strconv.Itoa(seq),
				MessageID: messageID,
				Type:      types.ChatEventDelta,
				Text:      fragment,
				Timestamp: time.Now().UTC(),
			})

		case <-heartbeat.C:
			h.writeComment(w, flusher, "heartbeat")
		}
	}
}

func (h *Handlers) finishChat(w http.ResponseWriter, flusher http.Flusher, messageID string, seq int) {
	h.writeChatEvent(w, flusher, &types.ChatEvent{
		ID:        strconv.Itoa(seq),
		MessageID: messageID,
		Type:      types.ChatEventDone,
		Timestamp: time.Now().UTC(),
	})
}

// writeChatEvent writes an event in SSE format and flushes.
func (h *Handlers) writeChatEvent(w http.ResponseWriter, flusher http.Flusher, evt *types.ChatEvent) {
	if evt == nil {
		return
	}
	if _, err := w.Write(evt.ToSSE()); err != nil {
		h.logger.Error("failed to write SSE event", "error", err)
		return
	}
	flusher.Flush()
}

// writeComment writes an SSE comment (for heartbeats).
func (h *Handlers) writeComment(w http.ResponseWriter, flusher http.Flusher, comment string) {
	if _, err := w.Write([]byte(": " + comment + "\n\n")); err != nil {
		h.logger.Error("failed to write SSE comment", "error", err)
		return
	}
	flusher.Flush()
}
