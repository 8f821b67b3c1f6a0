package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func firstPick(n int) int { return 0 }

func runRandomFact(t *testing.T, args string) randomFactResult {
	t.Helper()
	tool := NewRandomFactWithPicker(firstPick)

	out, err := tool.Execute(context.Background(), json.RawMessage(args))
	require.NoError(t, err)

	var result randomFactResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	return result
}

func TestRandomFactKnownCategory(t *testing.T) {
	result := runRandomFact(t, `{"category": "science"}`)
	require.True(t, result.Success)
	require.Equal(t, "science", result.Category)
	require.Contains(t, factsByCategory["science"], result.Fact)
}

func TestRandomFactDefaultsToGeneral(t *testing.T) {
	result := runRandomFact(t, `{}`)
	require.Equal(t, "general", result.Category)
	require.Contains(t, factsByCategory["general"], result.Fact)
}

func TestRandomFactUnknownCategoryFallsBack(t *testing.T) {
	result := runRandomFact(t, `{"category": "sports"}`)
	require.Equal(t, "general", result.Category)
	require.Contains(t, factsByCategory["general"], result.Fact)
}

func TestRandomFactCategoryIsCaseInsensitive(t *testing.T) {
	result := runRandomFact(t, `{"category": "  History "}`)
	require.Equal(t, "history", result.Category)
	require.Contains(t, factsByCategory["history"], result.Fact)
}

func TestRandomFactCoversAllPicks(t *testing.T) {
	for i := range factsByCategory["tech"] {
		idx := i
		tool := NewRandomFactWithPicker(func(n int) int { return idx % n })
		out, err := tool.Execute(context.Background(), json.RawMessage(`{"category": "tech"}`))
		require.NoError(t, err)

		var result randomFactResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		require.Equal(t, factsByCategory["tech"][idx], result.Fact)
	}
}
