// Package agent implements the core agent loop: call the model with the
// conversation and tool catalog, execute requested tool calls, feed results
// back, and stop on a terminal reply or the iteration ceiling.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/larkin/go-errand/core"
	"github.com/larkin/go-errand/llm"
	"github.com/larkin/go-errand/monitor"
	"github.com/larkin/go-errand/tools"
	"github.com/larkin/go-errand/trace"
)

const DefaultMaxIterations = 10

const DefaultModel = "gpt-4o-mini"

const DefaultSystemPrompt = `You are a helpful AI assistant with access to tools.
Use the available tools when needed to answer user questions accurately.
When you have enough information to answer the user's question, always be accurate. If you don't know the answer, say so.`

const maxIterationsMessage = "Maximum iterations reached without conclusive answer"

// Agent runs the loop. All collaborators are injected; none are process-wide
// singletons.
type Agent struct {
	client       llm.Client
	registry     *tools.Registry
	recorder     trace.Recorder
	collector    monitor.MetricsCollector
	model        core.ModelConfig
	systemPrompt string
	logger       *slog.Logger
}

// Options configure a new Agent. Client is required; everything else has a
// default.
type Options struct {
	Client       llm.Client
	Registry     *tools.Registry
	Recorder     trace.Recorder
	Collector    monitor.MetricsCollector
	Model        core.ModelConfig
	SystemPrompt string
	Logger       *slog.Logger
}

func New(opts Options) (*Agent, error) {
	if opts.Client == nil {
		return nil, errors.New("agent requires an LLM client")
	}

	registry := opts.Registry
	if registry == nil {
		registry = tools.DefaultRegistry
	}

	recorder := opts.Recorder
	if recorder == nil {
		recorder = trace.NewNoopRecorder()
	}

	model := opts.Model
	if model.Name == "" {
		model = core.DefaultModelConfig(DefaultModel)
	}

	systemPrompt := opts.SystemPrompt
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Agent{
		client:       opts.Client,
		registry:     registry,
		recorder:     recorder,
		collector:    opts.Collector,
		model:        model,
		systemPrompt: systemPrompt,
		logger:       logger,
	}, nil
}

// Run executes the loop for one query and returns the terminal AgentResult.
// Tool failures are soft: they become error tool-results fed back to the
// model. A failed model call is hard: it is returned as an error after the
// run trace is recorded.
func (a *Agent) Run(ctx context.Context, req Request) (*core.AgentResult, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, core.NewAgentError("agent.run", fmt.Errorf("%w: query is empty", core.ErrInvalidConfig))
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()[:8]
	}
	userID := req.UserID
	if userID == "" {
		userID = "test_user"
	}
	maxIterations := req.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	traceID := uuid.NewString()
	start := time.Now()

	collector := a.collector
	if collector == nil {
		collector = monitor.NewInMemoryCollector(traceID)
	}

	msgs := []core.Message{
		core.NewSystemMessage(a.systemPrompt),
		core.NewUserMessage(req.Query),
	}
	schemas := a.registry.Schemas()

	var spans []trace.Span
	spanSeq := 0
	nextSpanID := func() string {
		spanSeq++
		return fmt.Sprintf("span_%d", spanSeq)
	}

	var totalIn, totalOut, toolCallTotal int

	record := func(status, output string, iterations int) {
		a.recorder.Record(context.WithoutCancel(ctx), trace.RunTrace{
			TraceID:      traceID,
			SessionID:    sessionID,
			UserID:       userID,
			Timestamp:    start.UnixMilli(),
			Input:        req.Query,
			Output:       output,
			ElapsedMs:    time.Since(start).Milliseconds(),
			InputTokens:  totalIn,
			OutputTokens: totalOut,
			ToolCalls:    toolCallTotal,
			Iterations:   iterations,
			Status:       status,
			Tags:         []string{"agent", "openai"},
			Metadata: map[string]any{
				"model":          a.model.Name,
				"max_iterations": maxIterations,
			},
			Spans: spans,
		})
	}

	iteration := 0
	for iteration < maxIterations {
		iteration++
		iterStart := time.Now()

		a.logger.Info("calling model",
			"trace_id", traceID,
			"iteration", iteration,
			"messages", len(msgs),
			"tools", len(schemas),
		)

		resp, err := a.client.ChatWithTools(ctx, a.model, msgs, schemas)
		if err != nil {
			spans = append(spans, trace.Span{
				SpanID:    nextSpanID(),
				TraceID:   traceID,
				Kind:      trace.SpanLLMCall,
				Name:      a.model.Name,
				StartTime: iterStart.UnixMilli(),
				EndTime:   time.Now().UnixMilli(),
				Input:     msgs[len(msgs)-1].Content,
				Error:     err.Error(),
			})
			record(trace.StatusError, err.Error(), iteration)
			a.logger.Error("model call failed", "trace_id", traceID, "iteration", iteration, "error", err)
			return nil, core.NewAgentError("agent.llm", err)
		}

		totalIn += resp.Usage.PromptTokens
		totalOut += resp.Usage.CompletionTokens

		spans = append(spans, trace.Span{
			SpanID:       nextSpanID(),
			TraceID:      traceID,
			Kind:         trace.SpanLLMCall,
			Name:         a.model.Name,
			StartTime:    iterStart.UnixMilli(),
			EndTime:      time.Now().UnixMilli(),
			Input:        msgs[len(msgs)-1].Content,
			Output:       resp.Content,
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		})

		// Append the assistant reply verbatim, tool calls included, so
		// later rounds replay an exact history to the endpoint.
		msgs = append(msgs, core.NewAssistantMessage(resp.Content, resp.ToolCalls...))

		if resp.HasToolCalls() {
			for _, call := range resp.ToolCalls {
				execStart := time.Now()
				result := a.registry.Dispatch(ctx, call)
				span := trace.Span{
					SpanID:    nextSpanID(),
					TraceID:   traceID,
					Kind:      trace.SpanToolExec,
					Name:      call.Name,
					StartTime: execStart.UnixMilli(),
					EndTime:   time.Now().UnixMilli(),
					Input:     string(call.Arguments),
					Output:    result.Content,
				}
				if result.IsError {
					span.Error = result.Content
				}
				spans = append(spans, span)
				toolCallTotal++

				a.logger.Info("executed tool",
					"trace_id", traceID,
					"tool", call.Name,
					"call_id", call.ID,
					"is_error", result.IsError,
				)

				msgs = append(msgs, core.NewToolMessage(result.ToolCallID, call.Name, result.Content))
			}

			collector.Record(monitor.IterationMetrics{
				Iteration: iteration,
				TokensIn:  resp.Usage.PromptTokens,
				TokensOut: resp.Usage.CompletionTokens,
				ToolCalls: len(resp.ToolCalls),
				Duration:  time.Since(iterStart),
				Success:   true,
			})

			// Let the model process the tool results.
			continue
		}

		collector.Record(monitor.IterationMetrics{
			Iteration: iteration,
			TokensIn:  resp.Usage.PromptTokens,
			TokensOut: resp.Usage.CompletionTokens,
			Duration:  time.Since(iterStart),
			Success:   true,
		})

		if resp.FinishReason == llm.FinishStop || resp.FinishReason == "" {
			record(trace.StatusSuccess, resp.Content, iteration)
			metrics := collector.Flush()
			a.logger.Info("run complete",
				"trace_id", traceID,
				"session_id", sessionID,
				"iterations", iteration,
				"tokens", metrics.TotalTokens,
				"tool_calls", metrics.TotalToolCalls,
			)
			return &core.AgentResult{
				Success:    true,
				Answer:     resp.Content,
				Iterations: iteration,
				TraceID:    traceID,
				SessionID:  sessionID,
			}, nil
		}

		// Other finish reasons without tool calls (e.g. length): give the
		// model another round to finish.
	}

	record(trace.StatusMaxIterations, maxIterationsMessage, iteration)
	a.logger.Warn("run hit iteration ceiling",
		"trace_id", traceID,
		"session_id", sessionID,
		"iterations", iteration,
	)
	return &core.AgentResult{
		Success:    false,
		Error:      maxIterationsMessage,
		Iterations: iteration,
		TraceID:    traceID,
		SessionID:  sessionID,
	}, nil
}
