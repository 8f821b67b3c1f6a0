package core

import (
	"errors"
	"fmt"
)

var (
	ErrToolNotFound  = errors.New("tool not found")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMaxIterations = errors.New("max iterations exceeded")
	ErrLLMRequest    = errors.New("LLM request failed")
)

type AgentError struct {
	Op      string
	Err     error
	Context map[string]any
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AgentError) Unwrap() error {
	return e.Err
}

func NewAgentError(op string, err error) *AgentError {
	return &AgentError{Op: op, Err: err}
}

func WithContext(err *AgentError, key string, val any) *AgentError {
	if err.Context == nil {
		err.Context = make(map[string]any)
	}
	err.Context[key] = val
	return err
}
