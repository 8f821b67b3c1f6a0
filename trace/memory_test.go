package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleRun(id string, ts int64) RunTrace {
	return RunTrace{
		TraceID:      id,
		SessionID:    "s1",
		UserID:       "u1",
		Timestamp:    ts,
		Input:        "what is 2+2?",
		Output:       "4",
		ElapsedMs:    120,
		InputTokens:  30,
		OutputTokens: 10,
		ToolCalls:    1,
		Iterations:   2,
		Status:       StatusSuccess,
		Spans: []Span{
			{SpanID: "span_1", TraceID: id, Kind: SpanLLMCall, Name: "gpt-4o-mini"},
		},
	}
}

func TestMemoryStoreAddGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Add(ctx, sampleRun("t1", 100)))

	got, err := s.Get(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "t1", got.TraceID)
	require.Len(t, got.Spans, 1)

	_, err = s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Add(ctx, sampleRun("old", 100)))
	require.NoError(t, s.Add(ctx, sampleRun("new", 300)))
	require.NoError(t, s.Add(ctx, sampleRun("mid", 200)))

	runs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	require.Equal(t, "new", runs[0].TraceID)
	require.Equal(t, "mid", runs[1].TraceID)
	require.Equal(t, "old", runs[2].TraceID)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Add(ctx, sampleRun("t1", 100)))
	require.NoError(t, s.Delete(ctx, "t1"))

	_, err := s.Get(ctx, "t1")
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing trace is not an error.
	require.NoError(t, s.Delete(ctx, "t1"))
}

func TestMemoryStoreSummary(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	empty, err := s.Summary(ctx)
	require.NoError(t, err)
	require.Zero(t, empty.TotalTraces)

	require.NoError(t, s.Add(ctx, sampleRun("t1", 100)))
	require.NoError(t, s.Add(ctx, sampleRun("t2", 200)))

	summary, err := s.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, summary.TotalTraces)
	require.Equal(t, 60, summary.TotalInputTokens)
	require.Equal(t, 20, summary.TotalOutputTokens)
	require.Equal(t, 2, summary.TotalToolCalls)
	require.Equal(t, 120.0, summary.AvgLatencyMs)
}
