// Package api provides HTTP handlers and routing for the studio service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/luminaflow/studio-go/internal/assistant"
	"github.com/luminaflow/studio-go/internal/catalog"
	"github.com/luminaflow/studio-go/internal/config"
	"github.com/luminaflow/studio-go/internal/ingest"
	"github.com/luminaflow/studio-go/internal/layout"
	"github.com/luminaflow/studio-go/internal/metrics"
	"github.com/luminaflow/studio-go/internal/store"
	"github.com/luminaflow/studio-go/internal/validator"
	"github.com/luminaflow/studio-go/pkg/types"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	store     *store.Store
	ingestor  *ingest.Ingestor
	assistant assistant.Client
	catalog   *catalog.Catalog
	config    *config.Config
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st *store.Store, ing *ingest.Ingestor, asst assistant.Client, cat *catalog.Catalog, cfg *config.Config, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		store:     st,
		ingestor:  ing,
		assistant: asst,
		catalog:   cat,
		config:    cfg,
		logger:    logger,
	}
}

// --- Health Endpoints ---

// Health handles the /health and /healthz endpoints.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Ready handles the /ready endpoint.
func (h *Handlers) Ready(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ready",
		"workflows": snap.Len(),
	})
}

// --- Workflow Management ---

// WorkflowResponse pairs an accepted workflow with its advisory warnings.
type WorkflowResponse struct {
	Workflow *types.Workflow     `json:"workflow"`
	Warnings []validator.Warning `json:"warnings,omitempty"`
}

// CreateWorkflow handles POST /api/v1/workflows. The body is the loose
// payload shape; it passes through the ingestion boundary like any other
// untrusted structure.
func (h *Handlers) CreateWorkflow(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorResponse(w, r, http.StatusBadRequest, ErrCodeBadRequest, "failed to read request body", nil)
		return
	}

	wf, warnings, err := h.ingestor.Ingest(body)
	if err != nil {
		h.countIngestFailure(err)
		status, code, details := classify(err)
		writeErrorResponse(w, r, status, code, err.Error(), details)
		return
	}

	if err := h.store.Insert(wf); err != nil {
		status, code, details := classify(err)
		writeErrorResponse(w, r, status, code, err.Error(), details)
		return
	}

	h.countWarnings(warnings)
	metrics.WorkflowsTotal.WithLabelValues("manual").Inc()
	h.logger.Info("workflow created",
		slog.String("workflow_id", wf.ID),
		slog.Int("nodes", len(wf.Nodes)),
		slog.Int("connections", len(wf.Connections)),
	)

	h.respondJSON(w, http.StatusCreated, WorkflowResponse{Workflow: wf, Warnings: warnings})
}

// ListWorkflows handles GET /api/v1/workflows.
func (h *Handlers) ListWorkflows(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"workflows": snap.List(),
		"active_id": snap.ActiveID(),
	})
}

// GetWorkflow handles GET /api/v1/workflows/{id}.
func (h *Handlers) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	wf := h.store.Current().Get(id)
	if wf == nil {
		writeErrorResponse(w, r, http.StatusNotFound, ErrCodeWorkflowNotFound, "workflow not found", nil)
		return
	}

	h.respondJSON(w, http.StatusOK, wf)
}

// updateWorkflowRequest is the replaceable portion of a workflow. Identity,
// active flag and status are managed by the store, never by the client.
type updateWorkflowRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Nodes       []types.Node       `json:"nodes"`
	Connections []types.Connection `json:"connections"`
}

// UpdateWorkflow handles PUT /api/v1/workflows/{id}. The replacement is
// revalidated before a new snapshot is committed.
func (h *Handlers) UpdateWorkflow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updateWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body", nil)
		return
	}
	if req.Name == "" {
		writeErrorResponse(w, r, http.StatusBadRequest, ErrCodeMalformedPayload, "workflow name is required",
			map[string]interface{}{"field": "name"})
		return
	}

	existing := h.store.Current().Get(id)
	if existing == nil {
		writeErrorResponse(w, r, http.StatusNotFound, ErrCodeWorkflowNotFound, "workflow not found", nil)
		return
	}

	updated := existing.Clone()
	updated.Name = req.Name
	updated.Description = req.Description
	updated.Nodes = req.Nodes
	updated.Connections = req.Connections
	if updated.Nodes == nil {
		updated.Nodes = []types.Node{}
	}
	if updated.Connections == nil {
		updated.Connections = []types.Connection{}
	}

	warnings, err := validator.ValidateWorkflow(updated)
	if err != nil {
		status, code, details := classify(err)
		writeErrorResponse(w, r, status, code, err.Error(), details)
		return
	}

	if err := h.store.Update(updated); err != nil {
		status, code, details := classify(err)
		writeErrorResponse(w, r, status, code, err.Error(), details)
		return
	}

	h.countWarnings(warnings)
	h.respondJSON(w, http.StatusOK, WorkflowResponse{Workflow: updated, Warnings: warnings})
}

// SelectWorkflow handles POST /api/v1/workflows/{id}/select.
func (h *Handlers) SelectWorkflow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.store.Select(id); err != nil {
		status, code, details := classify(err)
		writeErrorResponse(w, r, status, code, err.Error(), details)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"active_id": id})
}

// ActiveWorkflow handles GET /api/v1/workflows/active.
func (h *Handlers) ActiveWorkflow(w http.ResponseWriter, r *http.Request) {
	wf := h.store.Current().ActiveWorkflow()
	if wf == nil {
		writeErrorResponse(w, r, http.StatusNotFound, ErrCodeWorkflowNotFound, "no active workflow", nil)
		return
	}

	h.respondJSON(w, http.StatusOK, wf)
}

// GetLayout handles GET /api/v1/workflows/{id}/layout.
func (h *Handlers) GetLayout(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	wf := h.store.Current().Get(id)
	if wf == nil {
		writeErrorResponse(w, r, http.StatusNotFound, ErrCodeWorkflowNotFound, "workflow not found", nil)
		return
	}

	h.respondJSON(w, http.StatusOK, layout.Render(wf))
}

// --- Assistant Endpoints ---

// generateRequest is the body for POST /api/v1/workflows/generate.
type generateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateWorkflow handles POST /api/v1/workflows/generate: prompt →
// assistant → ingestion → store. A structural failure discards the payload;
// the store is never touched with invalid data.
func (h *Handlers) GenerateWorkflow(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		writeErrorResponse(w, r, http.StatusBadRequest, ErrCodeBadRequest, "prompt is required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.AssistantTimeout)
	defer cancel()

	start := time.Now()
	raw, err := h.assistant.GenerateWorkflow(ctx, req.Prompt)
	metrics.AssistantRequestDuration.WithLabelValues("generate").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("generate", "failure").Inc()
		h.logger.Error("workflow generation failed", "error", err)
		writeErrorResponse(w, r, http.StatusBadGateway, ErrCodeGenerationFailed,
			"the assistant could not generate a workflow from that description", nil)
		return
	}
	metrics.AssistantRequestsTotal.WithLabelValues("generate", "success").Inc()

	wf, warnings, err := h.ingestor.Ingest(raw)
	if err != nil {
		h.countIngestFailure(err)
		h.logger.Warn("generated payload rejected", "error", err)
		_, code, details := classify(err)
		if details == nil {
			details = map[string]interface{}{}
		}
		details["reason"] = code
		writeErrorResponse(w, r, http.StatusBadGateway, ErrCodeInvalidGeneratedGraph, err.Error(), details)
		return
	}

	if err := h.store.InsertAndSelect(wf); err != nil {
		status, code, details := classify(err)
		writeErrorResponse(w, r, status, code, err.Error(), details)
		return
	}

	h.countWarnings(warnings)
	metrics.WorkflowsTotal.WithLabelValues("generated").Inc()
	h.logger.Info("workflow generated",
		slog.String("workflow_id", wf.ID),
		slog.String("name", wf.Name),
		slog.Int("nodes", len(wf.Nodes)),
	)

	h.respondJSON(w, http.StatusCreated, WorkflowResponse{Workflow: wf, Warnings: warnings})
}

// AnalyzeWorkflow handles POST /api/v1/workflows/{id}/analyze. Transport
// failures degrade to a fallback commentary; they never fail the request.
func (h *Handlers) AnalyzeWorkflow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	wf := h.store.Current().Get(id)
	if wf == nil {
		writeErrorResponse(w, r, http.StatusNotFound, ErrCodeWorkflowNotFound, "workflow not found", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.AssistantTimeout)
	defer cancel()

	start := time.Now()
	analysis, err := h.assistant.Analyze(ctx, wf)
	metrics.AssistantRequestDuration.WithLabelValues("analyze").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("analyze", "failure").Inc()
		h.logger.Error("workflow analysis failed", "error", err, "workflow_id", id)
		analysis = assistant.FallbackAnalysis
	} else {
		metrics.AssistantRequestsTotal.WithLabelValues("analyze", "success").Inc()
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"workflow_id": id,
		"analysis":    analysis,
	})
}

// --- Dashboard ---

// Stats handles GET /api/v1/stats, derived from the current snapshot.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()

	var active, nodes, connections int
	for _, wf := range snap.List() {
		if wf.Active {
			active++
		}
		nodes += len(wf.Nodes)
		connections += len(wf.Connections)
	}

	h.respondJSON(w, http.StatusOK, map[string]int{
		"total_workflows":   snap.Len(),
		"active_workflows":  active,
		"total_nodes":       nodes,
		"total_connections": connections,
	})
}

// ListNodeKinds handles GET /api/v1/node-kinds.
func (h *Handlers) ListNodeKinds(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"kinds": h.catalog.List(),
	})
}

// --- Helper Methods ---

func (h *Handlers) countIngestFailure(err error) {
	var malformed *ingest.MalformedPayloadError
	if errors.As(err, &malformed) {
		metrics.IngestFailures.WithLabelValues("malformed_payload").Inc()
		return
	}
	metrics.IngestFailures.WithLabelValues("invalid_graph").Inc()
}

func (h *Handlers) countWarnings(warnings []validator.Warning) {
	for _, warn := range warnings {
		metrics.ValidationWarnings.WithLabelValues(string(warn.Code)).Inc()
	}
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
