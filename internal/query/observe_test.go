package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	started  []string
	finished []EnumerationStats
}

func (r *recordingObserver) EnumerationStarted(plan *PlanNode) {
	r.started = append(r.started, plan.String())
}

func (r *recordingObserver) EnumerationFinished(_ *PlanNode, stats EnumerationStats) {
	r.finished = append(r.finished, stats)
}

func TestObserve(t *testing.T) {
	t.Run("reports each enumeration", func(t *testing.T) {
		obs := &recordingObserver{}
		seq := Observe(Just(1, 2, 3).Where(func(n int) bool { return n > 1 }), obs)

		assert.Equal(t, "Where", seq.Plan().String())
		assert.Empty(t, obs.started, "building does not enumerate")

		assert.Equal(t, []int{2, 3}, ToSlice(seq))
		assert.Equal(t, 2, Count(seq))

		require.Len(t, obs.finished, 2)
		assert.Equal(t, []string{"Where", "Where"}, obs.started)
		assert.Equal(t, 2, obs.finished[0].Yielded)
		assert.True(t, obs.finished[0].Completed)
		assert.False(t, obs.finished[0].Panicked)
	})

	t.Run("early stop", func(t *testing.T) {
		obs := &recordingObserver{}
		_, err := First(Observe(Range(0, 10), obs))
		require.NoError(t, err)
		require.Len(t, obs.finished, 1)
		assert.Equal(t, 1, obs.finished[0].Yielded)
		assert.False(t, obs.finished[0].Completed)
	})

	t.Run("panic is reported and re-raised", func(t *testing.T) {
		obs := &recordingObserver{}
		seq := Observe(Select(Just(1, 2), func(n int) int {
			if n == 2 {
				panic("boom")
			}
			return n
		}), obs)

		assert.PanicsWithValue(t, "boom", func() { ToSlice(seq) })
		require.Len(t, obs.finished, 1)
		assert.True(t, obs.finished[0].Panicked)
		assert.False(t, obs.finished[0].Completed)
		assert.Equal(t, 1, obs.finished[0].Yielded)
	})

	t.Run("consumer panic is not a pipeline failure", func(t *testing.T) {
		obs := &recordingObserver{}
		seq := Observe(Just(1, 2, 3), obs)

		assert.PanicsWithValue(t, "consumer", func() {
			for n := range seq.All() {
				if n == 2 {
					panic("consumer")
				}
			}
		})
		require.Len(t, obs.finished, 1)
		assert.False(t, obs.finished[0].Panicked)
		assert.False(t, obs.finished[0].Completed)
		assert.Equal(t, 2, obs.finished[0].Yielded)
	})

	t.Run("no observers returns the sequence as is", func(t *testing.T) {
		seq := Just(1)
		assert.Equal(t, seq.Plan(), Observe(seq).Plan())
	})
}
