package trace

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a trace is not found
var ErrNotFound = errors.New("not found")

type SpanKind string

const (
	SpanLLMCall  SpanKind = "llm_call"
	SpanToolExec SpanKind = "tool_exec"
)

// Run statuses.
const (
	StatusSuccess       = "success"
	StatusError         = "error"
	StatusMaxIterations = "max_iterations"
)

// Span is one model call or tool execution within a run.
type Span struct {
	SpanID       string   `json:"span_id"`
	TraceID      string   `json:"trace_id"`
	Kind         SpanKind `json:"kind"`
	Name         string   `json:"name"`
	StartTime    int64    `json:"start_time"`
	EndTime      int64    `json:"end_time"`
	Input        string   `json:"input,omitempty"`
	Output       string   `json:"output,omitempty"`
	InputTokens  int      `json:"input_tokens,omitempty"`
	OutputTokens int      `json:"output_tokens,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// RunTrace is the observability record for one complete agent run.
type RunTrace struct {
	TraceID      string         `json:"trace_id"`
	SessionID    string         `json:"session_id"`
	UserID       string         `json:"user_id"`
	Timestamp    int64          `json:"timestamp"`
	Input        string         `json:"input"`
	Output       string         `json:"output"`
	ElapsedMs    int64          `json:"elapsed_ms"`
	InputTokens  int            `json:"input_tokens"`
	OutputTokens int            `json:"output_tokens"`
	ToolCalls    int            `json:"tool_calls"`
	Iterations   int            `json:"iterations"`
	Status       string         `json:"status"`
	Tags         []string       `json:"tags,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Spans        []Span         `json:"spans,omitempty"`
}

// MetricsSummary contains aggregated metrics across stored runs
type MetricsSummary struct {
	TotalTraces       int     `json:"total_traces"`
	TotalInputTokens  int     `json:"total_input_tokens"`
	TotalOutputTokens int     `json:"total_output_tokens"`
	TotalToolCalls    int     `json:"total_tool_calls"`
	AvgLatencyMs      float64 `json:"avg_latency_ms"`
}

// Store defines the interface for trace persistence
type Store interface {
	Add(ctx context.Context, t RunTrace) error
	Get(ctx context.Context, id string) (RunTrace, error)
	List(ctx context.Context) ([]RunTrace, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (MetricsSummary, error)
	Close() error
}
