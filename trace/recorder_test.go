package trace

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingStore struct {
	MemoryStore
}

func (s *failingStore) Add(ctx context.Context, t RunTrace) error {
	return errors.New("disk full")
}

func TestStoreRecorderPersists(t *testing.T) {
	store := NewMemoryStore()
	rec := NewStoreRecorder(store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec.Record(context.Background(), sampleRun("t1", 100))

	got, err := store.Get(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, "t1", got.TraceID)
}

func TestStoreRecorderSwallowsStoreFailure(t *testing.T) {
	rec := NewStoreRecorder(&failingStore{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// Must not panic or propagate the store error.
	rec.Record(context.Background(), sampleRun("t1", 100))
}

func TestStoreRecorderNilStore(t *testing.T) {
	rec := NewStoreRecorder(nil, nil)
	rec.Record(context.Background(), sampleRun("t1", 100))
}
