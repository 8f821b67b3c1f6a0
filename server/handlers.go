package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/larkin/go-errand/agent"
	"github.com/larkin/go-errand/trace"
)

const runTimeout = 120 * time.Second

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	names := s.registry.List()
	result := make([]ToolInfo, 0, len(names))

	for _, name := range names {
		t, ok := s.registry.Get(name)
		if !ok {
			continue
		}
		result = append(result, ToolInfo{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req agent.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), runTimeout)
	defer cancel()

	result, err := s.agent.Run(ctx, req)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTraceList(w http.ResponseWriter, r *http.Request) {
	if s.traces == nil {
		http.NotFound(w, r)
		return
	}
	traces, err := s.traces.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, TraceListResponse{Traces: traces})
}

func (s *Server) handleTraceGet(w http.ResponseWriter, r *http.Request) {
	if s.traces == nil {
		http.NotFound(w, r)
		return
	}
	id := r.PathValue("id")
	run, err := s.traces.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, trace.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, TraceDetailResponse{Trace: run, Spans: run.Spans})
}

func (s *Server) handleTraceDelete(w http.ResponseWriter, r *http.Request) {
	if s.traces == nil {
		http.NotFound(w, r)
		return
	}
	id := r.PathValue("id")
	if err := s.traces.Delete(r.Context(), id); err != nil && !errors.Is(err, trace.ErrNotFound) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleMetricsSummary(w http.ResponseWriter, r *http.Request) {
	if s.traces == nil {
		http.NotFound(w, r)
		return
	}
	summary, err := s.traces.Summary(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
