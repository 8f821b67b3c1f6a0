package trace

import (
	"context"
	"log/slog"
)

// Recorder is the side-channel the agent emits finished run traces to. The
// channel is strictly best-effort: implementations must never fail the main
// computation, and callers may pass a nil Recorder.
type Recorder interface {
	Record(ctx context.Context, run RunTrace)
}

type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder {
	return &NoopRecorder{}
}

func (r *NoopRecorder) Record(ctx context.Context, run RunTrace) {}

// StoreRecorder persists finished runs to a Store. Store failures are
// logged and swallowed.
type StoreRecorder struct {
	store  Store
	logger *slog.Logger
}

func NewStoreRecorder(store Store, logger *slog.Logger) *StoreRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreRecorder{store: store, logger: logger}
}

func (r *StoreRecorder) Record(ctx context.Context, run RunTrace) {
	if r.store == nil {
		return
	}
	if err := r.store.Add(ctx, run); err != nil {
		r.logger.Warn("failed to record trace", "trace_id", run.TraceID, "error", err)
	}
}
