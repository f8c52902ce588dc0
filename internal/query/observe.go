package query

import (
	"time"
)

// EnumerationStats summarizes one enumeration of an observed sequence.
type EnumerationStats struct {
	Yielded   int           `json:"yielded"`
	Duration  time.Duration `json:"duration"`
	Completed bool          `json:"completed"` // false when the consumer stopped early
	Panicked  bool          `json:"panicked"` // an upstream stage panicked
}

// Observer is notified around every enumeration of an observed sequence.
type Observer interface {
	EnumerationStarted(plan *PlanNode)
	EnumerationFinished(plan *PlanNode, stats EnumerationStats)
}

// Observe reports each enumeration of s to every observer. Elements, order and
// plan are unchanged. A panic from upstream is reported with Panicked set and
// then re-raised as is. A panic raised by the consumer while handling an
// element is not a pipeline failure: it is reported like an early stop and
// re-raised.
func Observe[T any](s Sequence[T], observers ...Observer) Sequence[T] {
	if len(observers) == 0 {
		return s
	}
	plan := s.Plan()
	return newSequence(plan, func(yield func(T) bool) {
		for _, o := range observers {
			o.EnumerationStarted(plan)
		}
		stats := EnumerationStats{}
		start := time.Now()
		finished, consuming := false, false
		defer func() {
			stats.Duration = time.Since(start)
			if !finished {
				stats.Panicked = !consuming
				stats.Completed = false
			}
			for _, o := range observers {
				o.EnumerationFinished(plan, stats)
			}
		}()

		stats.Completed = true
		for v := range s.All() {
			stats.Yielded++
			consuming = true
			if !yield(v) {
				stats.Completed = false
				break
			}
			consuming = false
		}
		finished = true
	})
}
