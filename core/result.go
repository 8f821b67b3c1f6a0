package core

// AgentResult is the terminal value of one agent run.
type AgentResult struct {
	Success    bool   `json:"success"`
	Answer     string `json:"answer,omitempty"`
	Iterations int    `json:"iterations"`
	Error      string `json:"error,omitempty"`
	TraceID    string `json:"trace_id,omitempty"`
	SessionID  string `json:"session_id,omitempty"`
}
