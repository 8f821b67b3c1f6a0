package server

import (
	"encoding/json"

	"github.com/larkin/go-errand/trace"
)

type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type TraceListResponse struct {
	Traces []trace.RunTrace `json:"traces"`
}

type TraceDetailResponse struct {
	Trace trace.RunTrace `json:"trace"`
	Spans []trace.Span   `json:"spans"`
}

type errorResponse struct {
	Error string `json:"error"`
}
