package query

import (
	"fmt"
)

// Group binds a key to the elements that share it. Elements keep the order
// in which they appeared in the grouped sequence.
type Group[K, T any] struct {
	key      K
	elements []T
}

// NewGroup creates a group. The elements slice is retained, not copied.
func NewGroup[K, T any](key K, elements []T) *Group[K, T] {
	return &Group[K, T]{key: key, elements: elements}
}

// Key returns the group key.
func (g *Group[K, T]) Key() K {
	return g.key
}

// Elements returns the grouped elements. The slice is shared with the group
// and must not be modified.
func (g *Group[K, T]) Elements() []T {
	return g.elements
}

// Len returns the number of elements in the group.
func (g *Group[K, T]) Len() int {
	return len(g.elements)
}

// Items returns the elements as a sequence so groups can feed further
// operators, including another GroupBy.
func (g *Group[K, T]) Items() Sequence[T] {
	return newSequence(newPlan("Group", fmt.Sprintf("%v", g.key)), func(yield func(T) bool) {
		for _, v := range g.elements {
			if !yield(v) {
				return
			}
		}
	})
}

// String formats the group as "key: n elements".
func (g *Group[K, T]) String() string {
	return fmt.Sprintf("%v: %d elements", g.key, len(g.elements))
}

// GroupBy partitions the sequence by key. Groups are produced in the order in
// which their key first occurs; elements inside a group keep source order.
// The input is scanned once per enumeration.
func GroupBy[T any, K comparable](s Sequence[T], key func(T) K) Sequence[*Group[K, T]] {
	return groupBy("GroupBy", s, key, func(v T) T { return v })
}

// GroupByInto groups like GroupBy and stores element(e) instead of e.
func GroupByInto[T any, K comparable, E any](s Sequence[T], key func(T) K, element func(T) E) Sequence[*Group[K, E]] {
	return groupBy("GroupByInto", s, key, element)
}

// SubGroupBy regroups the elements of an existing group by a second key.
// First-occurrence order applies independently at this level.
func SubGroupBy[K1 any, T any, K2 comparable](g *Group[K1, T], key func(T) K2) Sequence[*Group[K2, T]] {
	return groupBy("SubGroupBy", g.Items(), key, func(v T) T { return v })
}

func groupBy[T any, K comparable, E any](op string, s Sequence[T], key func(T) K, element func(T) E) Sequence[*Group[K, E]] {
	return newSequence(newPlan(op, "", s.Plan()), func(yield func(*Group[K, E]) bool) {
		for _, g := range buildLookup(s, key, element).groups {
			if !yield(g) {
				return
			}
		}
	})
}

// Lookup is a materialized key -> elements mapping that remembers the
// first-occurrence order of its keys.
type Lookup[K comparable, T any] struct {
	groups []*Group[K, T]
	index  map[K]int
}

// ToLookup eagerly groups the sequence.
func ToLookup[T any, K comparable](s Sequence[T], key func(T) K) *Lookup[K, T] {
	return buildLookup(s, key, func(v T) T { return v })
}

func buildLookup[T any, K comparable, E any](s Sequence[T], key func(T) K, element func(T) E) *Lookup[K, E] {
	l := &Lookup[K, E]{index: make(map[K]int)}
	for v := range s.All() {
		k := key(v)
		pos, seen := l.index[k]
		if !seen {
			pos = len(l.groups)
			l.index[k] = pos
			l.groups = append(l.groups, &Group[K, E]{key: k})
		}
		g := l.groups[pos]
		g.elements = append(g.elements, element(v))
	}
	return l
}

// Get returns the elements stored under key, or nil.
func (l *Lookup[K, T]) Get(key K) []T {
	if pos, ok := l.index[key]; ok {
		return l.groups[pos].elements
	}
	return nil
}

// Contains reports whether key has at least one element.
func (l *Lookup[K, T]) Contains(key K) bool {
	_, ok := l.index[key]
	return ok
}

// Len returns the number of distinct keys.
func (l *Lookup[K, T]) Len() int {
	return len(l.groups)
}

// Groups returns the groups in first-occurrence order.
func (l *Lookup[K, T]) Groups() Sequence[*Group[K, T]] {
	return From(l.groups).Named("Lookup")
}
