// Package errand provides a small tool-calling agent built on the OpenAI
// chat-completions API, with pluggable tools and trace recording.
//
// Example usage:
//
//	client := errand.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))
//	ag, err := errand.NewAgent(errand.AgentOptions{Client: client})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := ag.Run(ctx, errand.Request{Query: "What is 25 * 4?"})
package errand

import (
	"github.com/larkin/go-errand/agent"
	"github.com/larkin/go-errand/core"
	"github.com/larkin/go-errand/llm"
	"github.com/larkin/go-errand/monitor"
	"github.com/larkin/go-errand/server"
	"github.com/larkin/go-errand/tools"
	"github.com/larkin/go-errand/trace"
)

// Agent aliases
type (
	Agent        = agent.Agent
	AgentOptions = agent.Options
	Request      = agent.Request
)

// NewAgent creates a new agent.
func NewAgent(opts AgentOptions) (*Agent, error) {
	return agent.New(opts)
}

// LLM client aliases
type (
	LLMClient    = llm.Client
	OpenAIClient = llm.OpenAIClient
	ChatResponse = llm.ChatResponse
)

// NewOpenAIClient creates a chat-completions client with default settings.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return llm.NewOpenAIClient(apiKey)
}

// Tool aliases
type (
	Tool         = tools.Tool
	ToolRegistry = tools.Registry
)

// RegisterTool registers a tool with the default registry.
func RegisterTool(t Tool) {
	tools.Register(t)
}

// GetTool retrieves a tool from the default registry.
func GetTool(name string) (Tool, bool) {
	return tools.Get(name)
}

// Core type aliases
type (
	Message     = core.Message
	MessageRole = core.MessageRole
	ToolCall    = core.ToolCall
	ToolResult  = core.ToolResult
	ToolSchema  = core.ToolSchema
	ModelConfig = core.ModelConfig
	AgentResult = core.AgentResult
	AgentError  = core.AgentError
)

// Trace aliases
type (
	TraceRecorder = trace.Recorder
	TraceStore    = trace.Store
	RunTrace      = trace.RunTrace
	Span          = trace.Span
)

// NewMemoryTraceStore creates an in-memory trace store.
func NewMemoryTraceStore() *trace.MemoryStore {
	return trace.NewMemoryStore()
}

// NewStoreRecorder creates a recorder that persists run traces to a store.
func NewStoreRecorder(s TraceStore) *trace.StoreRecorder {
	return trace.NewStoreRecorder(s, nil)
}

// Monitor aliases
type (
	MetricsCollector  = monitor.MetricsCollector
	InMemoryCollector = monitor.InMemoryCollector
	RunMetrics        = monitor.RunMetrics
)

// NewInMemoryCollector creates a new in-memory metrics collector.
func NewInMemoryCollector(runID string) *InMemoryCollector {
	return monitor.NewInMemoryCollector(runID)
}

// Server aliases
type (
	Server       = server.Server
	ServerConfig = server.Config
)

// NewServer creates a new API server.
func NewServer(cfg ServerConfig) (*Server, error) {
	return server.New(cfg)
}
