package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/larkin/go-errand/core"
)

type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name()] = t
}

func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schemas returns the full catalog in name order, ready to advertise to the
// model.
func (r *Registry) Schemas() []core.ToolSchema {
	names := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()

	schemas := make([]core.ToolSchema, 0, len(names))
	for _, name := range names {
		schemas = append(schemas, ToSchema(r.tools[name]))
	}
	return schemas
}

// Dispatch executes one model-requested tool call and never fails the loop:
// an unknown tool name, an execution error, or a panic all become an error
// ToolResult that is fed back to the model as a tool message.
func (r *Registry) Dispatch(ctx context.Context, call core.ToolCall) (result core.ToolResult) {
	defer func() {
		if p := recover(); p != nil {
			result = core.NewToolError(call.ID, fmt.Sprintf("tool %s panicked: %v", call.Name, p))
		}
	}()

	t, ok := r.Get(call.Name)
	if !ok {
		return core.NewToolError(call.ID, fmt.Sprintf("unknown tool: %s", call.Name))
	}

	content, err := t.Execute(ctx, call.Arguments)
	if err != nil {
		return core.NewToolError(call.ID, fmt.Sprintf("tool execution failed: %v", err))
	}
	return core.NewToolResult(call.ID, content)
}

var DefaultRegistry = NewRegistry()

func Register(t Tool) {
	DefaultRegistry.Register(t)
}

func Get(name string) (Tool, bool) {
	return DefaultRegistry.Get(name)
}
