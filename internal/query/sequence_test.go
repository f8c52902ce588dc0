package query

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSources(t *testing.T) {
	tests := []struct {
		name     string
		seq      Sequence[int]
		expected []int
	}{
		{"From", From([]int{5, 4, 1, 3}), []int{5, 4, 1, 3}},
		{"From nil", From[int](nil), []int{}},
		{"Just", Just(1, 2), []int{1, 2}},
		{"Empty", Empty[int](), []int{}},
		{"Range", Range(3, 4), []int{3, 4, 5, 6}},
		{"Range negative count", Range(3, -1), []int{}},
		{"Repeat", Repeat(7, 3), []int{7, 7, 7}},
		{"FromSeq", FromSeq(slices.Values([]int{2, 4})), []int{2, 4}},
		{"FromSeq nil", FromSeq[int](nil), []int{}},
		{"zero value", Sequence[int]{}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToSlice(tt.seq))
		})
	}
}

func TestDeferredExecution(t *testing.T) {
	t.Run("building a pipeline reads nothing", func(t *testing.T) {
		src, pulled := countingSource([]int{1, 2, 3, 4})
		pipeline := Select(src.Where(func(v int) bool { return v%2 == 0 }), func(v int) int { return v * 10 })

		assert.Equal(t, 0, *pulled)
		assert.Equal(t, []int{20, 40}, ToSlice(pipeline))
		assert.Equal(t, 4, *pulled)
	})

	t.Run("re-enumeration re-runs every stage", func(t *testing.T) {
		src, pulled := countingSource([]int{1, 2, 3})
		calls := 0
		pipeline := Select(src, func(v int) int {
			calls++
			return v
		})

		first := ToSlice(pipeline)
		second := ToSlice(pipeline)
		assert.Equal(t, first, second)
		assert.Equal(t, 6, *pulled)
		assert.Equal(t, 6, calls)
	})

	t.Run("From observes slice changes between enumerations", func(t *testing.T) {
		items := []int{1, 2}
		seq := From(items)
		assert.Equal(t, []int{1, 2}, ToSlice(seq))
		items[0] = 9
		assert.Equal(t, []int{9, 2}, ToSlice(seq))
	})

	t.Run("early stop does not pull more than needed", func(t *testing.T) {
		src, pulled := countingSource([]int{1, 2, 3, 4, 5})
		for v := range src.All() {
			if v == 2 {
				break
			}
		}
		assert.Equal(t, 2, *pulled)
	})
}

func TestPlan(t *testing.T) {
	orders := Just(1, 2, 3)
	customers := Just("a", "b")
	joined := Join(customers, orders,
		func(string) int { return 1 },
		func(int) int { return 1 },
		func(c string, o int) string { return c })
	pipeline := joined.Where(func(string) bool { return true }).Take(1)

	explain := pipeline.Explain()
	lines := strings.Split(strings.TrimSuffix(explain, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Take(1)", lines[0])
	assert.Equal(t, "  Where", lines[1])
	assert.Equal(t, "    Join", lines[2])
	assert.Equal(t, "      From(2 items)", lines[3])
	assert.Equal(t, "      From(3 items)", lines[4])

	assert.Equal(t, 4, pipeline.Plan().Depth())
	assert.Equal(t, "Sequence[Take(1)]", pipeline.String())
	assert.Equal(t, "Empty", Sequence[int]{}.Plan().String())

	var nilPlan *PlanNode
	assert.Equal(t, 0, nilPlan.Depth())
	assert.Equal(t, "Empty", nilPlan.String())
}

func TestNamed(t *testing.T) {
	seq := Just(1, 2).Named("Numbers")
	assert.Equal(t, []int{1, 2}, ToSlice(seq))
	assert.Equal(t, "Numbers\n  From(2 items)\n", seq.Explain())
}
