// Package monitoring collects Prometheus metrics for pipeline enumerations and
// sample runs.
package monitoring

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/paveg/linq/internal/query"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Status label values.
const (
	StatusCompleted = "completed"
	StatusStopped   = "stopped"
	StatusPanicked  = "panicked"
	StatusSuccess   = "success"
	StatusError     = "error"
)

// RunMetrics records one sample run.
type RunMetrics struct {
	Sample   string        `json:"sample"`
	Duration time.Duration `json:"duration"`
	Success  bool          `json:"success"`
}

// MetricsCollector registers its metrics on a private registry, so several
// collectors can coexist in one process (tests, CLI sessions). It implements
// query.Observer.
type MetricsCollector struct {
	registry *prometheus.Registry

	enumerations *prometheus.CounterVec
	yielded      *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	runs         *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec

	mu      sync.RWMutex
	history []RunMetrics
	enabled bool
}

// NewMetricsCollector creates a collector with its own registry.
func NewMetricsCollector(enabled bool) *MetricsCollector {
	mc := &MetricsCollector{
		registry: prometheus.NewRegistry(),
		enumerations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linq_enumerations_total",
				Help: "Total number of pipeline enumerations",
			},
			[]string{"stage", "status"},
		),
		yielded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linq_elements_yielded_total",
				Help: "Total number of elements yielded by observed pipelines",
			},
			[]string{"stage"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "linq_enumeration_duration_seconds",
				Help:    "Pipeline enumeration latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linq_sample_runs_total",
				Help: "Total number of sample runs",
			},
			[]string{"sample", "status"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "linq_sample_run_duration_seconds",
				Help:    "Sample run latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"sample"},
		),
		history: make([]RunMetrics, 0),
		enabled: enabled,
	}
	mc.registry.MustRegister(mc.enumerations, mc.yielded, mc.duration, mc.runs, mc.runDuration)
	return mc
}

// Registry exposes the collector's registry for gathering.
func (mc *MetricsCollector) Registry() *prometheus.Registry {
	return mc.registry
}

// IsEnabled returns whether metrics collection is enabled.
func (mc *MetricsCollector) IsEnabled() bool {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.enabled
}

// SetEnabled enables or disables metrics collection.
func (mc *MetricsCollector) SetEnabled(enabled bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.enabled = enabled
}

// EnumerationStarted implements query.Observer.
func (mc *MetricsCollector) EnumerationStarted(*query.PlanNode) {}

// EnumerationFinished implements query.Observer.
func (mc *MetricsCollector) EnumerationFinished(plan *query.PlanNode, stats query.EnumerationStats) {
	if !mc.IsEnabled() {
		return
	}
	stage := plan.Op
	status := StatusCompleted
	switch {
	case stats.Panicked:
		status = StatusPanicked
	case !stats.Completed:
		status = StatusStopped
	}
	mc.enumerations.WithLabelValues(stage, status).Inc()
	mc.yielded.WithLabelValues(stage).Add(float64(stats.Yielded))
	mc.duration.WithLabelValues(stage).Observe(stats.Duration.Seconds())
}

// RecordRun executes fn and records its duration and outcome under sample.
func (mc *MetricsCollector) RecordRun(sample string, fn func() error) error {
	if !mc.IsEnabled() {
		return fn()
	}

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	mc.runs.WithLabelValues(sample, status).Inc()
	mc.runDuration.WithLabelValues(sample).Observe(elapsed.Seconds())

	mc.mu.Lock()
	mc.history = append(mc.history, RunMetrics{Sample: sample, Duration: elapsed, Success: err == nil})
	mc.mu.Unlock()

	return err
}

// GetRuns returns a copy of all recorded runs.
func (mc *MetricsCollector) GetRuns() []RunMetrics {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	result := make([]RunMetrics, len(mc.history))
	copy(result, mc.history)
	return result
}

// Clear removes the run history. Prometheus counters are cumulative and are
// not reset.
func (mc *MetricsCollector) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.history = mc.history[:0]
}

// GetSummary returns aggregate statistics over the run history.
func (mc *MetricsCollector) GetSummary() MetricsSummary {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	if len(mc.history) == 0 {
		return MetricsSummary{}
	}

	var totalDuration time.Duration
	failures := 0
	for _, run := range mc.history {
		totalDuration += run.Duration
		if !run.Success {
			failures++
		}
	}

	return MetricsSummary{
		TotalRuns:       len(mc.history),
		Failures:        failures,
		TotalDuration:   totalDuration,
		AverageDuration: totalDuration / time.Duration(len(mc.history)),
	}
}

// WriteText writes all metrics in the Prometheus text exposition format.
func (mc *MetricsCollector) WriteText(w io.Writer) error {
	families, err := mc.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// MetricsSummary provides aggregate statistics for recorded runs.
type MetricsSummary struct {
	TotalRuns       int           `json:"total_runs"`
	Failures        int           `json:"failures"`
	TotalDuration   time.Duration `json:"total_duration"`
	AverageDuration time.Duration `json:"average_duration"`
}
