package trace

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/paveg/linq/internal/query"
)

const (
	// bottleneckShare is the fraction of total time above which an
	// enumeration is reported as a bottleneck (1/2).
	bottleneckShare = 2
	// nestedLoopSuggestionThreshold is the number of yielded elements above
	// which a nested-loop join is flagged.
	nestedLoopSuggestionThreshold = 1000
)

// EnumerationTrace is one recorded enumeration of an observed pipeline.
type EnumerationTrace struct {
	ID        string                 `json:"id"`
	Operation string                 `json:"operation"`
	Plan      string                 `json:"plan"`
	Depth     int                    `json:"depth"`
	Stats     query.EnumerationStats `json:"stats"`
	StartedAt time.Time              `json:"started_at"`
}

// QueryAnalyzer accumulates enumeration traces and summarizes them.
type QueryAnalyzer struct {
	mu     sync.Mutex
	traces []EnumerationTrace
}

// NewQueryAnalyzer creates an empty analyzer.
func NewQueryAnalyzer() *QueryAnalyzer {
	return &QueryAnalyzer{traces: make([]EnumerationTrace, 0)}
}

// Record stores a finished enumeration.
func (qa *QueryAnalyzer) Record(trace EnumerationTrace) {
	qa.mu.Lock()
	defer qa.mu.Unlock()
	qa.traces = append(qa.traces, trace)
}

// Traces returns a copy of the recorded traces.
func (qa *QueryAnalyzer) Traces() []EnumerationTrace {
	qa.mu.Lock()
	defer qa.mu.Unlock()
	out := make([]EnumerationTrace, len(qa.traces))
	copy(out, qa.traces)
	return out
}

// Reset drops all recorded traces.
func (qa *QueryAnalyzer) Reset() {
	qa.mu.Lock()
	defer qa.mu.Unlock()
	qa.traces = qa.traces[:0]
}

// GenerateReport summarizes the recorded traces.
func (qa *QueryAnalyzer) GenerateReport() AnalysisReport {
	traces := qa.Traces()
	return AnalysisReport{
		Traces:      traces,
		Summary:     summarize(traces),
		Bottlenecks: bottlenecks(traces),
		Suggestions: suggestions(traces),
	}
}

// AnalysisReport contains the complete analysis report
type AnalysisReport struct {
	Traces      []EnumerationTrace `json:"traces"`
	Summary     Summary            `json:"summary"`
	Bottlenecks []Bottleneck       `json:"bottlenecks"`
	Suggestions []string           `json:"suggestions"`
}

// Summary contains totals over all traces.
type Summary struct {
	TotalEnumerations int           `json:"total_enumerations"`
	TotalDuration     time.Duration `json:"total_duration"`
	TotalYielded      int           `json:"total_yielded"`
	EarlyStops        int           `json:"early_stops"`
	Panics            int           `json:"panics"`
}

// Bottleneck represents a performance bottleneck
type Bottleneck struct {
	ID        string        `json:"id"`
	Operation string        `json:"operation"`
	Duration  time.Duration `json:"duration"`
	Reason    string        `json:"reason"`
}

func summarize(traces []EnumerationTrace) Summary {
	s := Summary{TotalEnumerations: len(traces)}
	for i := range traces {
		st := &traces[i].Stats
		s.TotalDuration += st.Duration
		s.TotalYielded += st.Yielded
		if st.Panicked {
			s.Panics++
		} else if !st.Completed {
			s.EarlyStops++
		}
	}
	return s
}

func bottlenecks(traces []EnumerationTrace) []Bottleneck {
	out := make([]Bottleneck, 0)
	if len(traces) < 2 {
		return out
	}
	var total time.Duration
	for i := range traces {
		total += traces[i].Stats.Duration
	}
	for i := range traces {
		tr := &traces[i]
		if tr.Stats.Duration > total/bottleneckShare {
			out = append(out, Bottleneck{
				ID:        tr.ID,
				Operation: tr.Operation,
				Duration:  tr.Stats.Duration,
				Reason:    "Takes more than 50% of total enumeration time",
			})
		}
	}
	return out
}

func suggestions(traces []EnumerationTrace) []string {
	out := make([]string, 0)
	seen := make(map[string]bool)
	for i := range traces {
		tr := &traces[i]
		if tr.Stats.Yielded > nestedLoopSuggestionThreshold && strings.Contains(tr.Plan, "NestedLoop") && !seen[tr.Operation] {
			seen[tr.Operation] = true
			out = append(out, fmt.Sprintf(
				"%s yielded %d elements through a nested-loop join; use Join or GroupJoin with join_optimization enabled",
				tr.Operation, tr.Stats.Yielded))
		}
	}
	return out
}

// RenderText renders the report for terminals.
func (r AnalysisReport) RenderText() string {
	var buf strings.Builder
	buf.WriteString("Enumeration Report:\n")
	buf.WriteString("===================\n\n")

	for i := range r.Traces {
		tr := &r.Traces[i]
		fmt.Fprintf(&buf, "├─ %s [%s]: %d yielded in %v", tr.Operation, shortID(tr.ID), tr.Stats.Yielded, tr.Stats.Duration)
		switch {
		case tr.Stats.Panicked:
			buf.WriteString(" (panicked)")
		case !tr.Stats.Completed:
			buf.WriteString(" (stopped early)")
		}
		buf.WriteString("\n")
	}

	fmt.Fprintf(&buf, "\nTotal Enumerations: %d\n", r.Summary.TotalEnumerations)
	fmt.Fprintf(&buf, "Total Yielded: %d\n", r.Summary.TotalYielded)
	fmt.Fprintf(&buf, "Total Time: %v\n", r.Summary.TotalDuration)

	for _, b := range r.Bottlenecks {
		fmt.Fprintf(&buf, "Bottleneck: %s (%v) %s\n", b.Operation, b.Duration, b.Reason)
	}
	for _, s := range r.Suggestions {
		fmt.Fprintf(&buf, "Suggestion: %s\n", s)
	}
	return buf.String()
}

// RenderJSON renders the report as indented JSON.
func (r AnalysisReport) RenderJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func shortID(id string) string {
	const shortIDLength = 8
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}
