package llm

import (
	"context"

	"github.com/larkin/go-errand/core"
)

// Client is the single contract the agent loop has with a model endpoint:
// one blocking chat-completion request over the full conversation, with an
// optional tool catalog.
type Client interface {
	ChatWithTools(ctx context.Context, model core.ModelConfig, msgs []core.Message, tools []core.ToolSchema) (*ChatResponse, error)
}

type ClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout int // seconds
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout: 60,
	}
}
