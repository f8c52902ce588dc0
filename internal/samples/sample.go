// Package samples is the catalogue of example queries over the trading
// company data set. Each sample builds a pipeline, enumerates it and writes
// the results through a Dumper.
package samples

import (
	"fmt"
	"strings"

	"github.com/paveg/linq/internal/dataset"
	"github.com/paveg/linq/internal/errors"
	"github.com/paveg/linq/internal/monitoring"
	"github.com/paveg/linq/internal/query"
)

// Sample is one runnable query example.
type Sample struct {
	Name        string
	Category    string
	Title       string
	Description string
	Run         func(env *Env) error
}

// Env is what a sample runs against.
type Env struct {
	Data *dataset.DataSource
	Out  *Dumper
	// Explain writes the plan of every enumerated pipeline before its results.
	Explain bool
	// Observers are attached to every enumerated pipeline.
	Observers []query.Observer
	// Metrics records the run of each sample when set.
	Metrics *monitoring.MetricsCollector
}

// prepare attaches the environment's observers to s and prints its plan when
// requested.
func prepare[T any](env *Env, s query.Sequence[T]) query.Sequence[T] {
	if env.Explain {
		env.Out.Line("plan:")
		for _, line := range strings.Split(strings.TrimRight(s.Explain(), "\n"), "\n") {
			env.Out.Line("%s%s", dumpIndent, line)
		}
	}
	return query.Observe(s, env.Observers...)
}

// Registry holds samples in registration order.
type Registry struct {
	samples []Sample
	byName  map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds s. Names must be unique and every sample needs a callback.
func (r *Registry) Register(s Sample) error {
	if s.Name == "" || s.Run == nil {
		return fmt.Errorf("sample requires a name and a run function")
	}
	if _, exists := r.byName[s.Name]; exists {
		return fmt.Errorf("sample %s is already registered", s.Name)
	}
	r.byName[s.Name] = len(r.samples)
	r.samples = append(r.samples, s)
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(samples ...Sample) {
	for _, s := range samples {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
}

// Get returns the sample with the given name.
func (r *Registry) Get(name string) (Sample, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Sample{}, false
	}
	return r.samples[i], true
}

// All returns every sample in registration order.
func (r *Registry) All() []Sample {
	return append([]Sample(nil), r.samples...)
}

// Len returns the number of registered samples.
func (r *Registry) Len() int {
	return len(r.samples)
}

// Categories groups the samples by category, in order of first appearance.
func (r *Registry) Categories() []*query.Group[string, Sample] {
	return query.ToSlice(query.GroupBy(query.From(r.samples), func(s Sample) string { return s.Category }))
}

// InCategory returns the samples of one category.
func (r *Registry) InCategory(category string) []Sample {
	return query.ToSlice(query.From(r.samples).Where(func(s Sample) bool {
		return strings.EqualFold(s.Category, category)
	}))
}

// Search returns the samples whose name or title contains term, ignoring case.
func (r *Registry) Search(term string) []Sample {
	term = strings.ToLower(term)
	return query.ToSlice(query.From(r.samples).Where(func(s Sample) bool {
		return strings.Contains(strings.ToLower(s.Name), term) || strings.Contains(strings.ToLower(s.Title), term)
	}))
}

// Run executes the named sample. A panic raised by a query is returned as an
// error rather than crashing the caller.
func (r *Registry) Run(name string, env *Env) error {
	s, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("unknown sample: %s", name)
	}
	return RunSample(s, env)
}

// RunSample executes s against env.
func RunSample(s Sample, env *Env) error {
	run := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("sample %s: %w", s.Name, errors.PanicCause(r))
			}
		}()
		if err := s.Run(env); err != nil {
			return fmt.Errorf("sample %s: %w", s.Name, err)
		}
		return env.Out.Err()
	}
	if env.Metrics != nil {
		return env.Metrics.RecordRun(s.Name, run)
	}
	return run()
}
