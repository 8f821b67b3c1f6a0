package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/larkin/go-errand/trace"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "traces.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(id string, ts int64) trace.RunTrace {
	return trace.RunTrace{
		TraceID:      id,
		SessionID:    "s1",
		UserID:       "u1",
		Timestamp:    ts,
		Input:        "what is 25 * 4?",
		Output:       "100",
		ElapsedMs:    250,
		InputTokens:  40,
		OutputTokens: 12,
		ToolCalls:    1,
		Iterations:   2,
		Status:       trace.StatusSuccess,
		Tags:         []string{"agent", "openai"},
		Metadata:     map[string]any{"model": "gpt-4o-mini"},
		Spans: []trace.Span{
			{SpanID: "span_1", TraceID: id, Kind: trace.SpanLLMCall, Name: "gpt-4o-mini", InputTokens: 40},
			{SpanID: "span_2", TraceID: id, Kind: trace.SpanToolExec, Name: "calculate", Input: `{"expression": "25 * 4"}`},
		},
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	run := testRun("t1", 100)
	require.NoError(t, s.Add(ctx, run))

	got, err := s.Get(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, run.TraceID, got.TraceID)
	require.Equal(t, run.Input, got.Input)
	require.Equal(t, run.Output, got.Output)
	require.Equal(t, run.Tags, got.Tags)
	require.Equal(t, "gpt-4o-mini", got.Metadata["model"])
	require.Len(t, got.Spans, 2)
	require.Equal(t, trace.SpanToolExec, got.Spans[1].Kind)
}

func TestSQLiteStoreGetMissing(t *testing.T) {
	s := newTestSQLiteStore(t)
	_, err := s.Get(context.Background(), "missing")
	require.ErrorIs(t, err, trace.ErrNotFound)
}

func TestSQLiteStoreUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	run := testRun("t1", 100)
	require.NoError(t, s.Add(ctx, run))

	run.Output = "revised"
	require.NoError(t, s.Add(ctx, run))

	got, err := s.Get(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "revised", got.Output)

	runs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestSQLiteStoreListOrderAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	require.NoError(t, s.Add(ctx, testRun("old", 100)))
	require.NoError(t, s.Add(ctx, testRun("new", 200)))

	runs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "new", runs[0].TraceID)

	require.NoError(t, s.Delete(ctx, "new"))
	runs, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "old", runs[0].TraceID)
}

func TestSQLiteStoreSummary(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	empty, err := s.Summary(ctx)
	require.NoError(t, err)
	require.Zero(t, empty.TotalTraces)

	require.NoError(t, s.Add(ctx, testRun("t1", 100)))
	require.NoError(t, s.Add(ctx, testRun("t2", 200)))

	summary, err := s.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, summary.TotalTraces)
	require.Equal(t, 80, summary.TotalInputTokens)
	require.Equal(t, 24, summary.TotalOutputTokens)
	require.Equal(t, 2, summary.TotalToolCalls)
	require.Equal(t, 250.0, summary.AvgLatencyMs)
}

func TestNewStoreDSNDispatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dispatch.db")
	s, err := NewStore(path)
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.(*SQLiteStore)
	require.True(t, ok)
}
