package trace

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paveg/linq/internal/config"
	"github.com/paveg/linq/internal/query"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.NewConfig()
		cfg.LogFormat = "json"
		cfg.LogLevel = "info"

		logger, err := NewLogger(cfg, &buf)
		require.NoError(t, err)
		logger.Debug().Msg("hidden")
		logger.Info().Str("k", "v").Msg("shown")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
		assert.Equal(t, "shown", entry["message"])
		assert.Equal(t, "v", entry["k"])
		assert.Contains(t, entry, "time")
	})

	t.Run("console output", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.NewConfig()
		cfg.LogFormat = "console"
		cfg.Color = false

		logger, err := NewLogger(cfg, &buf)
		require.NoError(t, err)
		logger.Info().Msg("hello")
		assert.Contains(t, buf.String(), "hello")
		assert.NotContains(t, buf.String(), "{")
	})

	t.Run("invalid level", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.LogLevel = "loud"
		_, err := NewLogger(cfg, &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestTracer(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	analyzer := NewQueryAnalyzer()
	tracer := NewTracer("low-numbers", logger, analyzer)

	seq := Trace(query.Just(5, 4, 1, 3).Where(func(n int) bool { return n < 4 }), tracer)
	assert.Equal(t, []int{1, 3}, query.ToSlice(seq))

	traces := analyzer.Traces()
	require.Len(t, traces, 1)
	tr := traces[0]
	_, err := uuid.Parse(tr.ID)
	require.NoError(t, err)
	assert.Equal(t, "low-numbers", tr.Operation)
	assert.Equal(t, 2, tr.Stats.Yielded)
	assert.True(t, tr.Stats.Completed)
	assert.Equal(t, "Where\n  From(4 items)\n", tr.Plan)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var started, finished map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &started))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &finished))
	assert.Equal(t, "enumeration started", started["message"])
	assert.Equal(t, "enumeration finished", finished["message"])
	assert.Equal(t, started["trace_id"], finished["trace_id"])
	assert.Equal(t, tr.ID, finished["trace_id"])
	assert.InDelta(t, 2, finished["yielded"], 0)
}

func TestTracer_NestedEnumerations(t *testing.T) {
	analyzer := NewQueryAnalyzer()
	tracer := NewTracer("nested", zerolog.Nop(), analyzer)

	inner := Trace(query.Just(1, 2), tracer)
	outer := Trace(query.Select(query.Just("a", "b"), func(s string) int { return query.Count(inner) }), tracer)
	assert.Equal(t, []int{2, 2}, query.ToSlice(outer))

	traces := analyzer.Traces()
	require.Len(t, traces, 3)
	assert.Equal(t, 2, traces[0].Stats.Yielded)
	assert.Equal(t, 2, traces[1].Stats.Yielded)
	assert.Equal(t, "Select\n  From(2 items)\n", traces[2].Plan)
	assert.NotEqual(t, traces[0].ID, traces[1].ID)
	assert.NotEqual(t, traces[1].ID, traces[2].ID)
}

func TestQueryAnalyzer_Report(t *testing.T) {
	analyzer := NewQueryAnalyzer()
	analyzer.Record(EnumerationTrace{ID: "aaaaaaaa-1", Operation: "fast", Stats: query.EnumerationStats{Yielded: 3, Duration: time.Millisecond, Completed: true}})
	analyzer.Record(EnumerationTrace{
		ID: "bbbbbbbb-2", Operation: "slow", Plan: "NestedLoopJoin\n",
		Stats: query.EnumerationStats{Yielded: 5000, Duration: 10 * time.Millisecond, Completed: true},
	})
	analyzer.Record(EnumerationTrace{ID: "c", Operation: "broken", Stats: query.EnumerationStats{Yielded: 1, Panicked: true}})
	analyzer.Record(EnumerationTrace{ID: "d", Operation: "first", Stats: query.EnumerationStats{Yielded: 1}})

	report := analyzer.GenerateReport()
	assert.Equal(t, Summary{
		TotalEnumerations: 4,
		TotalDuration:     11 * time.Millisecond,
		TotalYielded:      5005,
		EarlyStops:        1,
		Panics:            1,
	}, report.Summary)

	require.Len(t, report.Bottlenecks, 1)
	assert.Equal(t, "slow", report.Bottlenecks[0].Operation)
	require.Len(t, report.Suggestions, 1)
	assert.Contains(t, report.Suggestions[0], "nested-loop join")

	text := report.RenderText()
	assert.Contains(t, text, "├─ slow [bbbbbbbb]: 5000 yielded")
	assert.Contains(t, text, "(panicked)")
	assert.Contains(t, text, "(stopped early)")
	assert.Contains(t, text, "Total Enumerations: 4")

	data, err := report.RenderJSON()
	require.NoError(t, err)
	var decoded AnalysisReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.Summary, decoded.Summary)

	analyzer.Reset()
	assert.Empty(t, analyzer.Traces())
	assert.Empty(t, analyzer.GenerateReport().Bottlenecks)
}
