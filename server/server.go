// Package server exposes the agent over HTTP: run queries, list tools, and
// browse recorded traces.
package server

import (
	"errors"
	"net/http"

	"github.com/larkin/go-errand/agent"
	"github.com/larkin/go-errand/tools"
	"github.com/larkin/go-errand/trace"
)

// Config configures a new Server instance.
type Config struct {
	Agent    *agent.Agent
	Registry *tools.Registry
	Store    trace.Store // Optional: trace endpoints 404 without it
}

// Server is the HTTP front for the agent.
type Server struct {
	agent    *agent.Agent
	registry *tools.Registry
	traces   trace.Store
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Agent == nil {
		return nil, errors.New("server requires an agent")
	}

	registry := cfg.Registry
	if registry == nil {
		registry = tools.DefaultRegistry
	}

	return &Server{
		agent:    cfg.Agent,
		registry: registry,
		traces:   cfg.Store,
	}, nil
}

// Close releases the trace store, if any.
func (s *Server) Close() error {
	if s.traces != nil {
		return s.traces.Close()
	}
	return nil
}

// Handler returns an http.Handler for the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /tools", s.handleTools)
	mux.HandleFunc("POST /run", s.handleRun)

	mux.HandleFunc("GET /traces", s.handleTraceList)
	mux.HandleFunc("GET /traces/{id}", s.handleTraceGet)
	mux.HandleFunc("DELETE /traces/{id}", s.handleTraceDelete)
	mux.HandleFunc("GET /metrics/summary", s.handleMetricsSummary)

	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
