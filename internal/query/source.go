package query

import (
	"fmt"
	"iter"
)

// From wraps a slice. The slice is read at enumeration time, so each
// enumeration yields the elements present at that moment, in index order.
// Mutating the slice while it is being enumerated is undefined.
func From[T any](items []T) Sequence[T] {
	return newSequence(newPlan("From", fmt.Sprintf("%d items", len(items))), func(yield func(T) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	})
}

// Just builds a sequence from its arguments.
func Just[T any](items ...T) Sequence[T] {
	return From(items)
}

// FromSeq adapts an iterator. The sequence is restartable only if seq is.
func FromSeq[T any](seq iter.Seq[T]) Sequence[T] {
	if seq == nil {
		return Empty[T]()
	}
	return newSequence(newPlan("FromSeq", ""), seq)
}

// FromFunc calls factory at the start of every enumeration, which makes
// single-use producers restartable.
func FromFunc[T any](factory func() iter.Seq[T]) Sequence[T] {
	return newSequence(newPlan("FromFunc", ""), func(yield func(T) bool) {
		for v := range factory() {
			if !yield(v) {
				return
			}
		}
	})
}

// Empty returns a sequence with no elements.
func Empty[T any]() Sequence[T] {
	return newSequence(newPlan("Empty", ""), func(func(T) bool) {})
}

// Range yields count consecutive integers starting at start.
// A non-positive count yields nothing.
func Range(start, count int) Sequence[int] {
	return newSequence(newPlan("Range", fmt.Sprintf("%d, %d", start, count)), func(yield func(int) bool) {
		for i := range count {
			if !yield(start + i) {
				return
			}
		}
	})
}

// Repeat yields value count times.
func Repeat[T any](value T, count int) Sequence[T] {
	return newSequence(newPlan("Repeat", fmt.Sprintf("%d", count)), func(yield func(T) bool) {
		for range count {
			if !yield(value) {
				return
			}
		}
	})
}
