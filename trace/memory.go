package trace

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps traces in process memory. Useful for tests and for
// running without a database.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]RunTrace
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string]RunTrace),
	}
}

func (s *MemoryStore) Add(ctx context.Context, t RunTrace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[t.TraceID] = t
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (RunTrace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.runs[id]
	if !ok {
		return RunTrace{}, ErrNotFound
	}
	return t, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]RunTrace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]RunTrace, 0, len(s.runs))
	for _, t := range s.runs {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp > result[j].Timestamp
	})
	return result, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, id)
	return nil
}

func (s *MemoryStore) Summary(ctx context.Context) (MetricsSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return MetricsSummary{}, nil
	}

	var totalLatency int64
	var totalIn, totalOut, totalTools int
	for _, t := range s.runs {
		totalLatency += t.ElapsedMs
		totalIn += t.InputTokens
		totalOut += t.OutputTokens
		totalTools += t.ToolCalls
	}

	return MetricsSummary{
		TotalTraces:       len(s.runs),
		TotalInputTokens:  totalIn,
		TotalOutputTokens: totalOut,
		TotalToolCalls:    totalTools,
		AvgLatencyMs:      float64(totalLatency) / float64(len(s.runs)),
	}, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
