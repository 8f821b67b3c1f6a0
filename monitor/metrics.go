package monitor

import "time"

// IterationMetrics covers one round of the agent loop: a model call plus
// the batch of tool executions it requested.
type IterationMetrics struct {
	Iteration int           `json:"iteration"`
	TokensIn  int           `json:"tokens_in"`
	TokensOut int           `json:"tokens_out"`
	ToolCalls int           `json:"tool_calls"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

type RunMetrics struct {
	RunID          string             `json:"run_id"`
	Iterations     int                `json:"iterations"`
	TotalTokens    int                `json:"total_tokens"`
	TotalToolCalls int                `json:"total_tool_calls"`
	TotalDuration  time.Duration      `json:"total_duration"`
	PerIteration   []IterationMetrics `json:"per_iteration,omitempty"`
	StartTime      time.Time          `json:"start_time"`
	EndTime        time.Time          `json:"end_time"`
}
