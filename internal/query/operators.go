package query

import (
	"fmt"
)

// Where keeps the elements for which predicate returns true, preserving
// their relative order.
func (s Sequence[T]) Where(predicate func(T) bool) Sequence[T] {
	return newSequence(newPlan("Where", "", s.Plan()), func(yield func(T) bool) {
		for v := range s.All() {
			if predicate(v) && !yield(v) {
				return
			}
		}
	})
}

// Take yields at most n leading elements. Upstream stops as soon as n
// elements were produced. A non-positive n yields nothing.
func (s Sequence[T]) Take(n int) Sequence[T] {
	return newSequence(newPlan("Take", fmt.Sprintf("%d", n), s.Plan()), func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		taken := 0
		for v := range s.All() {
			if !yield(v) {
				return
			}
			taken++
			if taken == n {
				return
			}
		}
	})
}

// Skip drops the first n elements. A non-positive n skips nothing.
func (s Sequence[T]) Skip(n int) Sequence[T] {
	return newSequence(newPlan("Skip", fmt.Sprintf("%d", n), s.Plan()), func(yield func(T) bool) {
		skipped := 0
		for v := range s.All() {
			if skipped < n {
				skipped++
				continue
			}
			if !yield(v) {
				return
			}
		}
	})
}

// TakeWhile yields elements until predicate first returns false.
func (s Sequence[T]) TakeWhile(predicate func(T) bool) Sequence[T] {
	return newSequence(newPlan("TakeWhile", "", s.Plan()), func(yield func(T) bool) {
		for v := range s.All() {
			if !predicate(v) || !yield(v) {
				return
			}
		}
	})
}

// SkipWhile drops elements until predicate first returns false, then yields
// the rest unconditionally.
func (s Sequence[T]) SkipWhile(predicate func(T) bool) Sequence[T] {
	return newSequence(newPlan("SkipWhile", "", s.Plan()), func(yield func(T) bool) {
		skipping := true
		for v := range s.All() {
			if skipping && predicate(v) {
				continue
			}
			skipping = false
			if !yield(v) {
				return
			}
		}
	})
}

// Concat yields the elements of s followed by the elements of each other
// sequence.
func (s Sequence[T]) Concat(others ...Sequence[T]) Sequence[T] {
	inputs := make([]*PlanNode, 0, len(others)+1)
	inputs = append(inputs, s.Plan())
	for _, o := range others {
		inputs = append(inputs, o.Plan())
	}
	return newSequence(newPlan("Concat", "", inputs...), func(yield func(T) bool) {
		for v := range s.All() {
			if !yield(v) {
				return
			}
		}
		for _, o := range others {
			for v := range o.All() {
				if !yield(v) {
					return
				}
			}
		}
	})
}

// Select projects every element; the i-th output is selector(s[i]).
func Select[T, R any](s Sequence[T], selector func(T) R) Sequence[R] {
	return newSequence(newPlan("Select", "", s.Plan()), func(yield func(R) bool) {
		for v := range s.All() {
			if !yield(selector(v)) {
				return
			}
		}
	})
}

// SelectIndexed projects every element together with its zero-based
// position in the current enumeration.
func SelectIndexed[T, R any](s Sequence[T], selector func(int, T) R) Sequence[R] {
	return newSequence(newPlan("SelectIndexed", "", s.Plan()), func(yield func(R) bool) {
		i := 0
		for v := range s.All() {
			if !yield(selector(i, v)) {
				return
			}
			i++
		}
	})
}

// SelectMany projects every element to a sequence and flattens the results
// in order.
func SelectMany[T, R any](s Sequence[T], selector func(T) Sequence[R]) Sequence[R] {
	return newSequence(newPlan("SelectMany", "", s.Plan()), func(yield func(R) bool) {
		for v := range s.All() {
			for r := range selector(v).All() {
				if !yield(r) {
					return
				}
			}
		}
	})
}

// SelectManySlice is SelectMany for selectors that return a slice, such as
// a customer's orders.
func SelectManySlice[T, R any](s Sequence[T], selector func(T) []R) Sequence[R] {
	return newSequence(newPlan("SelectMany", "", s.Plan()), func(yield func(R) bool) {
		for v := range s.All() {
			for _, r := range selector(v) {
				if !yield(r) {
					return
				}
			}
		}
	})
}

// Distinct yields the first occurrence of every distinct element.
func Distinct[T comparable](s Sequence[T]) Sequence[T] {
	return distinctBy("Distinct", s, func(v T) T { return v })
}

// DistinctBy yields the first element seen for every distinct key.
func DistinctBy[T any, K comparable](s Sequence[T], key func(T) K) Sequence[T] {
	return distinctBy("DistinctBy", s, key)
}

func distinctBy[T any, K comparable](op string, s Sequence[T], key func(T) K) Sequence[T] {
	return newSequence(newPlan(op, "", s.Plan()), func(yield func(T) bool) {
		seen := make(map[K]struct{})
		for v := range s.All() {
			k := key(v)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			if !yield(v) {
				return
			}
		}
	})
}
