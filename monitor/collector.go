package monitor

import (
	"sync"
	"time"
)

type MetricsCollector interface {
	Record(metrics IterationMetrics)
	Flush() RunMetrics
}

type InMemoryCollector struct {
	mu        sync.RWMutex
	runID     string
	metrics   []IterationMetrics
	startTime time.Time
}

func NewInMemoryCollector(runID string) *InMemoryCollector {
	return &InMemoryCollector{
		runID:     runID,
		metrics:   make([]IterationMetrics, 0),
		startTime: time.Now(),
	}
}

func (c *InMemoryCollector) Record(metrics IterationMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = append(c.metrics, metrics)
}

func (c *InMemoryCollector) Flush() RunMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var totalTokens, totalToolCalls int
	var totalDuration time.Duration

	perIteration := make([]IterationMetrics, len(c.metrics))
	copy(perIteration, c.metrics)
	for _, m := range perIteration {
		totalTokens += m.TokensIn + m.TokensOut
		totalToolCalls += m.ToolCalls
		totalDuration += m.Duration
	}

	return RunMetrics{
		RunID:          c.runID,
		Iterations:     len(perIteration),
		TotalTokens:    totalTokens,
		TotalToolCalls: totalToolCalls,
		TotalDuration:  totalDuration,
		PerIteration:   perIteration,
		StartTime:      c.startTime,
		EndTime:        time.Now(),
	}
}

func (c *InMemoryCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = c.metrics[:0]
	c.startTime = time.Now()
}

type NoOpCollector struct{}

func NewNoOpCollector() *NoOpCollector {
	return &NoOpCollector{}
}

func (c *NoOpCollector) Record(metrics IterationMetrics) {}

func (c *NoOpCollector) Flush() RunMetrics {
	return RunMetrics{}
}
