package infrastructure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackEnricher(t *testing.T) {
	enricher := NewFallbackEnricher()
	ctx := context.Background()

	t.Run("classifies by keyword", func(t *testing.T) {
		cases := map[string]string{
			"morning gym session":  "health",
			"read distributed systems paper": "learning",
			"file tax return":      "finance",
			"clean the garage":     "household",
			"draft quarterly report": "work",
			"mysterious errand":    "general",
		}
		for title, genre := range cases {
			result, err := enricher.Enrich(ctx, title, "backlog")
			require.NoError(t, err)
			assert.Equal(t, genre, result.Genre, title)
		}
	})

	t.Run("per-type duration defaults", func(t *testing.T) {
		deadline, err := enricher.Enrich(ctx, "x", "deadline")
		require.NoError(t, err)
		assert.Equal(t, 45, deadline.SessionDurationMinutes)
		assert.Equal(t, 180, deadline.TotalDurationMinutes)

		routine, err := enricher.Enrich(ctx, "x", "routine")
		require.NoError(t, err)
		assert.Equal(t, 20, routine.SessionDurationMinutes)
		assert.Zero(t, routine.TotalDurationMinutes)

		backlog, err := enricher.Enrich(ctx, "x", "backlog")
		require.NoError(t, err)
		assert.Equal(t, 30, backlog.SessionDurationMinutes)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		first, err := enricher.Enrich(ctx, "study for the exam", "deadline")
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := enricher.Enrich(ctx, "study for the exam", "deadline")
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})
}

func TestParseEnrichment(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		result, err := parseEnrichment(`{"genre":"Work","session_minutes":40,"total_minutes":200}`)
		require.NoError(t, err)
		assert.Equal(t, "work", result.Genre)
		assert.Equal(t, 40, result.SessionDurationMinutes)
		assert.Equal(t, 200, result.TotalDurationMinutes)
	})

	t.Run("fenced JSON", func(t *testing.T) {
		result, err := parseEnrichment("```json\n{\"genre\":\"health\",\"session_minutes\":20,\"total_minutes\":0}\n```")
		require.NoError(t, err)
		assert.Equal(t, "health", result.Genre)
	})

	t.Run("negative durations clamp to zero", func(t *testing.T) {
		result, err := parseEnrichment(`{"genre":"work","session_minutes":-5,"total_minutes":-10}`)
		require.NoError(t, err)
		assert.Zero(t, result.SessionDurationMinutes)
		assert.Zero(t, result.TotalDurationMinutes)
	})

	t.Run("garbage is an error", func(t *testing.T) {
		_, err := parseEnrichment("sorry, I cannot help with that")
		assert.Error(t, err)
	})
}
