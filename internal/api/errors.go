package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/luminaflow/studio-go/internal/ingest"
	"github.com/luminaflow/studio-go/internal/store"
	"github.com/luminaflow/studio-go/internal/validator"
)

// Error codes for consistent error identification.
const (
	ErrCodeBadRequest            = "bad_request"
	ErrCodeNotFound              = "not_found"
	ErrCodeRateLimited           = "rate_limited"
	ErrCodeInternalError         = "internal_error"
	ErrCodeMalformedPayload      = "malformed_payload"
	ErrCodeInvalidGeneratedGraph = "invalid_generated_graph"
	ErrCodeGenerationFailed      = "generation_failed"
	ErrCodeDuplicateNodeID       = "duplicate_node_id"
	ErrCodeDuplicateConnectionID = "duplicate_connection_id"
	ErrCodeDanglingConnection    = "dangling_connection"
	ErrCodeUnknownNodeKind       = "unknown_node_kind"
	ErrCodeWorkflowExists        = "workflow_exists"
	ErrCodeWorkflowNotFound      = "workflow_not_found"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error     string                 `json:"error"`                // Short error code
	Message   string                 `json:"message"`              // Human-readable message
	Details   map[string]interface{} `json:"details,omitempty"`    // Optional additional details
	RequestID string                 `json:"request_id,omitempty"` // Request ID for correlation
}

// requestIDContextKey is the context key for request ID.
type requestIDContextKey struct{}

// RequestIDKey is the exported context key for request ID.
var RequestIDKey = requestIDContextKey{}

// GetRequestID retrieves the request ID from context or request header.
func GetRequestID(ctx context.Context, r *http.Request) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		return id
	}
	return r.Header.Get("X-Request-ID")
}

// classify maps a domain error to an HTTP status, error code, and details.
func classify(err error) (int, string, map[string]interface{}) {
	var (
		malformed *ingest.MalformedPayloadError
		invalid   *ingest.InvalidGraphError
		dupNode   *validator.DuplicateNodeIDError
		dupConn   *validator.DuplicateConnectionIDError
		dangling  *validator.DanglingConnectionError
		unknown   *validator.UnknownNodeKindError
	)

	switch {
	case errors.As(err, &malformed):
		return http.StatusBadRequest, ErrCodeMalformedPayload, map[string]interface{}{
			"field": malformed.Field,
		}
	case errors.As(err, &dupNode):
		return http.StatusUnprocessableEntity, ErrCodeDuplicateNodeID, map[string]interface{}{
			"node_id": dupNode.NodeID,
		}
	case errors.As(err, &dupConn):
		return http.StatusUnprocessableEntity, ErrCodeDuplicateConnectionID, map[string]interface{}{
			"connection_id": dupConn.ConnectionID,
		}
	case errors.As(err, &dangling):
		return http.StatusUnprocessableEntity, ErrCodeDanglingConnection, map[string]interface{}{
			"connection_id":    dangling.ConnectionID,
			"missing_endpoint": dangling.MissingEndpoint,
		}
	case errors.As(err, &unknown):
		return http.StatusUnprocessableEntity, ErrCodeUnknownNodeKind, map[string]interface{}{
			"node_id": unknown.NodeID,
			"kind":    unknown.Kind,
		}
	case errors.As(err, &invalid):
		// Shouldn't reach here: the cases above unwrap first. Kept for
		// InvalidGraphError values with an untyped reason.
		return http.StatusUnprocessableEntity, ErrCodeInvalidGeneratedGraph, nil
	case errors.Is(err, store.ErrWorkflowExists):
		return http.StatusConflict, ErrCodeWorkflowExists, nil
	case errors.Is(err, store.ErrWorkflowNotFound):
		return http.StatusNotFound, ErrCodeWorkflowNotFound, nil
	default:
		return http.StatusInternalServerError, ErrCodeInternalError, nil
	}
}

// writeErrorResponse writes a standardized JSON error response.
func writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, code string, message string, details map[string]interface{}) {
	requestID := GetRequestID(r.Context(), r)

	resp := ErrorResponse{
		Error:     code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
	}

	if requestID != "" {
		w.Header().Set("X-Request-ID", requestID)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
