package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the HTTP handlers and dependencies.
type Server struct {
	router   *mux.Router
	handlers *Handlers
}

// NewServer creates a new API server with the given handlers.
func NewServer(h *Handlers) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		handlers: h,
	}
	s.setupRoutes()
	return s
}

// Router returns the configured router for use with http.Server.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	// Health endpoints
	s.router.HandleFunc("/health", s.handlers.Health).Methods("GET")
	s.router.HandleFunc("/healthz", s.handlers.Health).Methods("GET")
	s.router.HandleFunc("/ready", s.handlers.Ready).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API routes
	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Assistant endpoints carry a token bucket of their own.
	limiter := NewRateLimiter(s.handlers.config.RateLimitRPS, s.handlers.config.RateLimitBurst)

	// Workflow management. Fixed segments before {id} routes.
	api.HandleFunc("/workflows/active", s.handlers.ActiveWorkflow).Methods("GET")
	api.Handle("/workflows/generate", limiter.Handler(http.HandlerFunc(s.handlers.GenerateWorkflow))).Methods("POST")
	api.HandleFunc("/workflows", s.handlers.CreateWorkflow).Methods("POST")
	api.HandleFunc("/workflows", s.handlers.ListWorkflows).Methods("GET")
	api.HandleFunc("/workflows/{id}", s.handlers.GetWorkflow).Methods("GET")
	api.HandleFunc("/workflows/{id}", s.handlers.UpdateWorkflow).Methods("PUT")
	api.HandleFunc("/workflows/{id}/select", s.handlers.SelectWorkflow).Methods("POST")
	api.HandleFunc("/workflows/{id}/layout", s.handlers.GetLayout).Methods("GET")
	api.Handle("/workflows/{id}/analyze", limiter.Handler(http.HandlerFunc(s.handlers.AnalyzeWorkflow))).Methods("POST")

	// Assistant chat
	api.Handle("/assistant/chat", limiter.Handler(http.HandlerFunc(s.handlers.Chat))).Methods("POST")

	// Dashboard
	api.HandleFunc("/stats", s.handlers.Stats).Methods("GET")
	api.HandleFunc("/node-kinds", s.handlers.ListNodeKinds).Methods("GET")

	// Apply middleware
	s.router.Use(s.handlers.CORSMiddleware)
	s.router.Use(s.handlers.LoggingMiddleware)
	s.router.Use(s.handlers.RecoveryMiddleware)
}
