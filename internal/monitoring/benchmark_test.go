//nolint:testpackage // requires internal access to unexported functions
package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuite(t *testing.T) {
	t.Run("runs scenarios in order", func(t *testing.T) {
		suite := NewSuite("Join strategies")
		var events []string
		suite.Add(Scenario{
			Name:       "hash",
			Iterations: 3,
			Setup:      func() { events = append(events, "setup") },
			Teardown:   func() { events = append(events, "teardown") },
			Operation: func() error {
				events = append(events, "op")
				return nil
			},
		})
		suite.Add(Scenario{
			Name: "nested-loop",
			Operation: func() error {
				time.Sleep(time.Millisecond)
				return nil
			},
		})

		results := suite.Run()
		require.Len(t, results, 2)
		assert.Equal(t, []string{"setup", "op", "op", "op", "teardown"}, events)

		assert.Equal(t, "hash", results[0].Name)
		assert.Equal(t, 3, results[0].Iterations)
		assert.True(t, results[0].Succeeded())
		assert.Equal(t, defaultIterations, results[1].Iterations)
		assert.GreaterOrEqual(t, results[1].Fastest, time.Millisecond)
		assert.LessOrEqual(t, results[1].Fastest, results[1].Average)
		assert.LessOrEqual(t, results[1].Average, results[1].Slowest)
		assert.Equal(t, results, suite.Results())
	})

	t.Run("failure stops the scenario", func(t *testing.T) {
		suite := NewSuite("Failures")
		calls := 0
		suite.Add(Scenario{
			Name:       "broken",
			Iterations: 5,
			Operation: func() error {
				calls++
				if calls == 2 {
					return errors.New("boom")
				}
				return nil
			},
		})

		results := suite.Run()
		require.Len(t, results, 1)
		assert.False(t, results[0].Succeeded())
		assert.Equal(t, 1, results[0].Iterations)
		assert.Equal(t, "iteration 2 failed: boom", results[0].Err)
		assert.Contains(t, suite.GenerateReport(), "failed: iteration 2 failed: boom")
	})

	t.Run("report", func(t *testing.T) {
		empty := NewSuite("Empty")
		assert.Equal(t, "# Empty\n\nNo benchmark results available.\n", empty.GenerateReport())

		suite := NewSuite("Samples")
		suite.Add(Scenario{Name: "fast", Iterations: 1, Operation: func() error { return nil }})
		suite.Add(Scenario{Name: "slow", Iterations: 1, Operation: func() error {
			time.Sleep(2 * time.Millisecond)
			return nil
		}})
		suite.Run()

		report := suite.GenerateReport()
		assert.Contains(t, report, "# Samples")
		assert.Contains(t, report, "| fast | 1 |")
		assert.Contains(t, report, "| slow | 1 |")
		assert.Contains(t, report, "slowest: slow")
	})
}
