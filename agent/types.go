package agent

// Request describes one agent invocation.
type Request struct {
	// Query is the user's question or task.
	Query string `json:"query"`
	// UserID identifies the caller for tracing. Defaults to "test_user".
	UserID string `json:"user_id,omitempty"`
	// SessionID groups related runs. Generated when empty.
	SessionID string `json:"session_id,omitempty"`
	// MaxIterations caps the number of model-call rounds, not individual
	// tool invocations within a round. Defaults to DefaultMaxIterations.
	MaxIterations int `json:"max_iterations,omitempty"`
}
