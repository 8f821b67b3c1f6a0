package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryCollectorAggregates(t *testing.T) {
	c := NewInMemoryCollector("run_1")

	c.Record(IterationMetrics{Iteration: 1, TokensIn: 20, TokensOut: 8, ToolCalls: 2, Duration: 100 * time.Millisecond, Success: true})
	c.Record(IterationMetrics{Iteration: 2, TokensIn: 30, TokensOut: 12, Duration: 50 * time.Millisecond, Success: true})

	m := c.Flush()
	require.Equal(t, "run_1", m.RunID)
	require.Equal(t, 2, m.Iterations)
	require.Equal(t, 70, m.TotalTokens)
	require.Equal(t, 2, m.TotalToolCalls)
	require.Equal(t, 150*time.Millisecond, m.TotalDuration)
	require.Len(t, m.PerIteration, 2)
}

func TestInMemoryCollectorReset(t *testing.T) {
	c := NewInMemoryCollector("run_1")
	c.Record(IterationMetrics{Iteration: 1, TokensIn: 10})
	c.Reset()

	m := c.Flush()
	require.Zero(t, m.Iterations)
	require.Zero(t, m.TotalTokens)
}

func TestNoOpCollector(t *testing.T) {
	c := NewNoOpCollector()
	c.Record(IterationMetrics{Iteration: 1, TokensIn: 10})
	require.Zero(t, c.Flush().Iterations)
}
