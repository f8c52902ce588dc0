// Package query implements deferred, composable sequence operators over
// in-memory collections: filtering, projection, joins, grouping, stable
// multi-key ordering and scalar aggregation.
//
// A Sequence holds only its configuration and a handle to its upstream stage.
// Nothing is read until the sequence is enumerated with a range loop over
// All() or consumed by a terminal operation, and every enumeration re-runs
// every stage. Operators that need the whole input (ordering, grouping, the
// inner side of a join) materialize it once per enumeration.
//
// Caller-supplied closures are expected to be pure. A panic raised by a
// closure is not recovered by the engine and surfaces to whoever drives the
// enumeration; Collect is the one terminal that converts it into a
// KeySelector error.
package query

import (
	"iter"
)

// Sequence is a lazy, restartable producer of values of type T.
// The zero value is an empty sequence.
type Sequence[T any] struct {
	seq  iter.Seq[T]
	plan *PlanNode
}

func newSequence[T any](plan *PlanNode, seq iter.Seq[T]) Sequence[T] {
	return Sequence[T]{seq: seq, plan: plan}
}

// All returns an iterator over the elements. Each call to the iterator
// re-runs the whole pipeline.
func (s Sequence[T]) All() iter.Seq[T] {
	if s.seq == nil {
		return func(func(T) bool) {}
	}
	return s.seq
}

// Plan returns the root node of the pipeline description.
func (s Sequence[T]) Plan() *PlanNode {
	if s.plan == nil {
		return newPlan("Empty", "")
	}
	return s.plan
}

// Explain renders the pipeline as an indented tree.
func (s Sequence[T]) Explain() string {
	return s.Plan().Explain()
}

// String returns a short description of the last stage.
func (s Sequence[T]) String() string {
	return "Sequence[" + s.Plan().String() + "]"
}

// Named relabels the last stage of the pipeline without changing its
// behaviour; useful for readable plans of nested sub-queries.
func (s Sequence[T]) Named(name string) Sequence[T] {
	return newSequence(newPlan(name, "", s.Plan()), s.All())
}
