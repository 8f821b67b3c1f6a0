package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/larkin/go-errand/agent"
	"github.com/larkin/go-errand/core"
	"github.com/larkin/go-errand/llm"
	"github.com/larkin/go-errand/tools"
	"github.com/larkin/go-errand/trace"
)

type fakeClient struct {
	resp *llm.ChatResponse
	err  error
}

func (c *fakeClient) ChatWithTools(ctx context.Context, model core.ModelConfig, msgs []core.Message, schemas []core.ToolSchema) (*llm.ChatResponse, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.resp, nil
}

func newTestServer(t *testing.T, client llm.Client, store trace.Store) *Server {
	t.Helper()

	registry := tools.NewRegistry()
	registry.Register(tools.NewCalculate())

	ag, err := agent.New(agent.Options{
		Client:   client,
		Registry: registry,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	srv, err := New(Config{Agent: ag, Registry: registry, Store: store})
	require.NoError(t, err)
	return srv
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeClient{resp: &llm.ChatResponse{Content: "ok", FinishReason: llm.FinishStop}}, nil)
	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}

func TestToolsEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeClient{}, nil)
	rec := doRequest(t, srv, http.MethodGet, "/tools", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result []ToolInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result, 1)
	require.Equal(t, "calculate", result[0].Name)
	require.NotEmpty(t, result[0].Description)
}

func TestRunEndpoint(t *testing.T) {
	client := &fakeClient{resp: &llm.ChatResponse{Content: "Paris", FinishReason: llm.FinishStop}}
	srv := newTestServer(t, client, nil)

	rec := doRequest(t, srv, http.MethodPost, "/run", `{"query": "Capital of France?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result core.AgentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.True(t, result.Success)
	require.Equal(t, "Paris", result.Answer)
	require.Equal(t, 1, result.Iterations)
}

func TestRunEndpointRequiresQuery(t *testing.T) {
	srv := newTestServer(t, &fakeClient{}, nil)
	rec := doRequest(t, srv, http.MethodPost, "/run", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunEndpointBadJSON(t *testing.T) {
	srv := newTestServer(t, &fakeClient{}, nil)
	rec := doRequest(t, srv, http.MethodPost, "/run", `{"query":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunEndpointModelFailure(t *testing.T) {
	srv := newTestServer(t, &fakeClient{err: errors.New("rate limit exceeded")}, nil)
	rec := doRequest(t, srv, http.MethodPost, "/run", `{"query": "hi"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var result errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Contains(t, result.Error, "rate limit exceeded")
}

func TestTraceEndpoints(t *testing.T) {
	store := trace.NewMemoryStore()
	require.NoError(t, store.Add(context.Background(), trace.RunTrace{
		TraceID:   "t1",
		SessionID: "s1",
		Timestamp: 100,
		Status:    trace.StatusSuccess,
		Spans:     []trace.Span{{SpanID: "span_1", Kind: trace.SpanLLMCall}},
	}))
	srv := newTestServer(t, &fakeClient{}, store)

	rec := doRequest(t, srv, http.MethodGet, "/traces", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list TraceListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Traces, 1)

	rec = doRequest(t, srv, http.MethodGet, "/traces/t1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail TraceDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Equal(t, "t1", detail.Trace.TraceID)
	require.Len(t, detail.Spans, 1)

	rec = doRequest(t, srv, http.MethodGet, "/traces/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/traces/t1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/traces/t1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsSummaryEndpoint(t *testing.T) {
	store := trace.NewMemoryStore()
	require.NoError(t, store.Add(context.Background(), trace.RunTrace{
		TraceID: "t1", Timestamp: 100, InputTokens: 40, OutputTokens: 10, ElapsedMs: 200, Status: trace.StatusSuccess,
	}))
	srv := newTestServer(t, &fakeClient{}, store)

	rec := doRequest(t, srv, http.MethodGet, "/metrics/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary trace.MetricsSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Equal(t, 1, summary.TotalTraces)
	require.Equal(t, 40, summary.TotalInputTokens)
}

func TestTraceEndpointsWithoutStore(t *testing.T) {
	srv := newTestServer(t, &fakeClient{}, nil)
	for _, path := range []string{"/traces", "/traces/t1", "/metrics/summary"} {
		rec := doRequest(t, srv, http.MethodGet, path, "")
		require.Equal(t, http.StatusNotFound, rec.Code, "path %s", path)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, &fakeClient{}, nil)
	rec := doRequest(t, srv, http.MethodOptions, "/run", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
