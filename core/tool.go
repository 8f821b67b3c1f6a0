package core

import "encoding/json"

// ToolCall is a model-requested tool invocation. Arguments is the raw JSON
// argument object exactly as the model produced it.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolResult is the dispatcher's outcome for one tool call. Content carries
// the tool's JSON payload on success, or a diagnostic string when IsError is
// set. Either way it is fed back to the model as a tool message.
type ToolResult struct {
	ToolCallID string `json:"tool_call_id"`
	Content    string `json:"content"`
	IsError    bool   `json:"is_error,omitempty"`
}

// ToolSchema is the JSON-Schema-shaped declaration advertised to the model.
type ToolSchema struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

func NewToolResult(toolCallID, content string) ToolResult {
	return ToolResult{ToolCallID: toolCallID, Content: content}
}

func NewToolError(toolCallID, errMsg string) ToolResult {
	return ToolResult{ToolCallID: toolCallID, Content: errMsg, IsError: true}
}
