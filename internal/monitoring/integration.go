package monitoring

import (
	"sync"

	"github.com/paveg/linq/internal/query"
)

//nolint:gochecknoglobals // process-wide collector used by the CLI
var (
	globalCollector *MetricsCollector
	globalMutex     sync.RWMutex
)

// SetGlobalCollector sets the global metrics collector.
func SetGlobalCollector(collector *MetricsCollector) {
	globalMutex.Lock()
	defer globalMutex.Unlock()
	globalCollector = collector
}

// GetGlobalCollector returns the global metrics collector, or nil.
func GetGlobalCollector() *MetricsCollector {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	return globalCollector
}

// EnableGlobalMonitoring installs a fresh enabled collector and returns it.
func EnableGlobalMonitoring() *MetricsCollector {
	collector := NewMetricsCollector(true)
	SetGlobalCollector(collector)
	return collector
}

// DisableGlobalMonitoring disables the global metrics collector.
func DisableGlobalMonitoring() {
	if collector := GetGlobalCollector(); collector != nil {
		collector.SetEnabled(false)
	}
}

// RecordGlobalRun records fn with the global collector when one is set.
func RecordGlobalRun(sample string, fn func() error) error {
	collector := GetGlobalCollector()
	if collector == nil {
		return fn()
	}
	return collector.RecordRun(sample, fn)
}

// Observe reports enumerations of s to the global collector. Without a
// global collector s is returned unchanged.
func Observe[T any](s query.Sequence[T]) query.Sequence[T] {
	collector := GetGlobalCollector()
	if collector == nil {
		return s
	}
	return query.Observe(s, collector)
}

// GetGlobalSummary returns a summary from the global collector.
func GetGlobalSummary() MetricsSummary {
	collector := GetGlobalCollector()
	if collector == nil {
		return MetricsSummary{}
	}
	return collector.GetSummary()
}
