package trace

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paveg/linq/internal/query"
	"github.com/rs/zerolog"
)

// Tracer logs every enumeration of an observed pipeline and records it in a
// QueryAnalyzer. It implements query.Observer.
//
// Nested enumerations (a sub-query enumerated while its parent is running)
// finish before their parent, so open traces are kept on a stack.
type Tracer struct {
	logger   zerolog.Logger
	analyzer *QueryAnalyzer
	name     string

	mu   sync.Mutex
	open []openTrace
}

type openTrace struct {
	id    string
	start time.Time
}

// NewTracer creates a tracer that labels its traces with name. A nil analyzer
// disables recording; logging still happens.
func NewTracer(name string, logger zerolog.Logger, analyzer *QueryAnalyzer) *Tracer {
	return &Tracer{logger: logger, analyzer: analyzer, name: name}
}

// EnumerationStarted implements query.Observer.
func (t *Tracer) EnumerationStarted(plan *query.PlanNode) {
	id := uuid.NewString()
	t.mu.Lock()
	t.open = append(t.open, openTrace{id: id, start: time.Now()})
	t.mu.Unlock()

	t.logger.Debug().
		Str("trace_id", id).
		Str("query", t.name).
		Str("stage", plan.String()).
		Int("depth", plan.Depth()).
		Msg("enumeration started")
}

// EnumerationFinished implements query.Observer.
func (t *Tracer) EnumerationFinished(plan *query.PlanNode, stats query.EnumerationStats) {
	t.mu.Lock()
	var ot openTrace
	if n := len(t.open); n > 0 {
		ot = t.open[n-1]
		t.open = t.open[:n-1]
	} else {
		ot = openTrace{id: uuid.NewString(), start: time.Now().Add(-stats.Duration)}
	}
	t.mu.Unlock()

	event := t.logger.Info()
	if stats.Panicked {
		event = t.logger.Error()
	}
	event.
		Str("trace_id", ot.id).
		Str("query", t.name).
		Str("stage", plan.String()).
		Int("yielded", stats.Yielded).
		Dur("duration", stats.Duration).
		Bool("completed", stats.Completed).
		Bool("panicked", stats.Panicked).
		Msg("enumeration finished")

	if t.analyzer != nil {
		t.analyzer.Record(EnumerationTrace{
			ID:        ot.id,
			Operation: t.name,
			Plan:      plan.Explain(),
			Depth:     plan.Depth(),
			Stats:     stats,
			StartedAt: ot.start,
		})
	}
}

// Trace wraps s so that its enumerations are reported to t.
func Trace[T any](s query.Sequence[T], t *Tracer) query.Sequence[T] {
	return query.Observe(s, t)
}
