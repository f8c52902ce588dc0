package monitoring

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

const (
	defaultIterations = 10
	bytesToKB         = 1024
)

// Scenario is one timed operation, typically a sample run under a given
// configuration.
type Scenario struct {
	Name        string
	Description string
	Iterations  int
	Setup       func()
	Teardown    func()
	Operation   func() error
}

// Result holds the measurements of one scenario.
type Result struct {
	Scenario         Scenario      `json:"-"`
	Name             string        `json:"name"`
	Iterations       int           `json:"iterations"`
	Total            time.Duration `json:"total"`
	Average          time.Duration `json:"average"`
	Fastest          time.Duration `json:"fastest"`
	Slowest          time.Duration `json:"slowest"`
	BytesAllocated   int64         `json:"bytes_allocated"`
	Allocations      int64         `json:"allocations"`
	OperationsPerSec float64       `json:"operations_per_sec"`
	Err              string        `json:"error,omitempty"`
}

// Succeeded reports whether every iteration ran without error.
func (r Result) Succeeded() bool {
	return r.Err == ""
}

// Suite runs scenarios in registration order.
type Suite struct {
	title     string
	scenarios []Scenario
	results   []Result
}

// NewSuite creates an empty suite whose report is headed by title.
func NewSuite(title string) *Suite {
	return &Suite{title: title}
}

// Add registers a scenario. A non-positive iteration count uses the default.
func (s *Suite) Add(sc Scenario) {
	if sc.Iterations <= 0 {
		sc.Iterations = defaultIterations
	}
	s.scenarios = append(s.scenarios, sc)
}

// Run executes every scenario and returns the results.
func (s *Suite) Run() []Result {
	s.results = make([]Result, 0, len(s.scenarios))
	for _, sc := range s.scenarios {
		s.results = append(s.results, runScenario(sc))
	}
	return s.results
}

// Results returns the results of the last Run.
func (s *Suite) Results() []Result {
	return s.results
}

func runScenario(sc Scenario) Result {
	if sc.Setup != nil {
		sc.Setup()
	}
	if sc.Teardown != nil {
		defer sc.Teardown()
	}

	res := Result{Scenario: sc, Name: sc.Name}
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	for i := range sc.Iterations {
		start := time.Now()
		if err := sc.Operation(); err != nil {
			res.Err = fmt.Sprintf("iteration %d failed: %v", i+1, err)
			break
		}
		d := time.Since(start)
		res.Iterations++
		res.Total += d
		if res.Fastest == 0 || d < res.Fastest {
			res.Fastest = d
		}
		res.Slowest = max(res.Slowest, d)
	}

	runtime.ReadMemStats(&after)
	res.BytesAllocated = int64(after.TotalAlloc - before.TotalAlloc) //nolint:gosec // delta of monotonic counters
	res.Allocations = int64(after.Mallocs - before.Mallocs)          //nolint:gosec // delta of monotonic counters

	if res.Iterations > 0 {
		res.Average = res.Total / time.Duration(res.Iterations)
	}
	if res.Average > 0 {
		res.OperationsPerSec = 1 / res.Average.Seconds()
	}
	return res
}

// GenerateReport renders the last results as a markdown table followed by a
// comparison of the fastest and slowest scenario.
func (s *Suite) GenerateReport() string {
	var report strings.Builder
	fmt.Fprintf(&report, "# %s\n\n", s.title)

	if len(s.results) == 0 {
		report.WriteString("No benchmark results available.\n")
		return report.String()
	}

	report.WriteString("| Scenario | Iterations | Avg | Min | Max | Alloc (KB) | Status |\n")
	report.WriteString("|----------|------------|-----|-----|-----|------------|--------|\n")
	for _, r := range s.results {
		status := "ok"
		if !r.Succeeded() {
			status = "failed: " + r.Err
		}
		fmt.Fprintf(&report, "| %s | %d | %v | %v | %v | %.1f | %s |\n",
			r.Name, r.Iterations, r.Average, r.Fastest, r.Slowest,
			float64(r.BytesAllocated)/bytesToKB, status)
	}

	if fastest, slowest, ok := s.extremes(); ok {
		fmt.Fprintf(&report, "\nFastest: %s (%v), slowest: %s (%v)",
			fastest.Name, fastest.Average, slowest.Name, slowest.Average)
		if fastest.Average > 0 {
			fmt.Fprintf(&report, ", ratio %.2fx", float64(slowest.Average)/float64(fastest.Average))
		}
		report.WriteString("\n")
	}
	return report.String()
}

func (s *Suite) extremes() (Result, Result, bool) {
	var fastest, slowest Result
	found := false
	for _, r := range s.results {
		if !r.Succeeded() {
			continue
		}
		if !found {
			fastest, slowest, found = r, r, true
			continue
		}
		if r.Average < fastest.Average {
			fastest = r
		}
		if r.Average > slowest.Average {
			slowest = r
		}
	}
	return fastest, slowest, found && len(s.results) > 1
}
