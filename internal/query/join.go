package query

import (
	"github.com/paveg/linq/internal/config"
)

// JoinStrategy selects how matching inner elements are found.
type JoinStrategy int

const (
	// HashJoinStrategy indexes the inner sequence once per enumeration.
	HashJoinStrategy JoinStrategy = iota
	// NestedLoopJoinStrategy compares every outer element with every inner
	// element. It is the reference behaviour the hash strategy must match.
	NestedLoopJoinStrategy
)

// String returns the strategy name shown in plans.
func (js JoinStrategy) String() string {
	if js == NestedLoopJoinStrategy {
		return "nested-loop"
	}
	return "hash"
}

// currentJoinStrategy reads the global configuration when an enumeration
// starts, so one pipeline can run under different strategies.
func currentJoinStrategy() JoinStrategy {
	if config.GetGlobalConfig().JoinOptimization {
		return HashJoinStrategy
	}
	return NestedLoopJoinStrategy
}

// Join is an inner equi-join. For every outer element in order, and every
// inner element with an equal key in order, it yields result(outer, inner).
// Outer elements without a match produce nothing.
func Join[O, I any, K comparable, R any](
	outer Sequence[O], inner Sequence[I],
	outerKey func(O) K, innerKey func(I) K,
	result func(O, I) R,
) Sequence[R] {
	return joinWith("Join", func() JoinStrategy { return currentJoinStrategy() }, outer, inner, outerKey, innerKey, result)
}

// NestedLoopJoin is Join evaluated without an index regardless of
// configuration.
func NestedLoopJoin[O, I any, K comparable, R any](
	outer Sequence[O], inner Sequence[I],
	outerKey func(O) K, innerKey func(I) K,
	result func(O, I) R,
) Sequence[R] {
	return joinWith("NestedLoopJoin", func() JoinStrategy { return NestedLoopJoinStrategy }, outer, inner, outerKey, innerKey, result)
}

func joinWith[O, I any, K comparable, R any](
	op string, strategy func() JoinStrategy,
	outer Sequence[O], inner Sequence[I],
	outerKey func(O) K, innerKey func(I) K,
	result func(O, I) R,
) Sequence[R] {
	return newSequence(newPlan(op, "", outer.Plan(), inner.Plan()), func(yield func(R) bool) {
		matcher := newMatcher(strategy(), inner, innerKey)
		for o := range outer.All() {
			for _, i := range matcher.matches(outerKey(o)) {
				if !yield(result(o, i)) {
					return
				}
			}
		}
	})
}

// GroupJoin yields exactly one result per outer element, in order, passing
// the group of all inner elements whose key equals the outer key. The group
// is empty, never nil, when nothing matches.
func GroupJoin[O, I any, K comparable, R any](
	outer Sequence[O], inner Sequence[I],
	outerKey func(O) K, innerKey func(I) K,
	result func(O, *Group[K, I]) R,
) Sequence[R] {
	return groupJoinWith("GroupJoin", func() JoinStrategy { return currentJoinStrategy() }, outer, inner, outerKey, innerKey, result)
}

// NestedLoopGroupJoin is GroupJoin evaluated without an index.
func NestedLoopGroupJoin[O, I any, K comparable, R any](
	outer Sequence[O], inner Sequence[I],
	outerKey func(O) K, innerKey func(I) K,
	result func(O, *Group[K, I]) R,
) Sequence[R] {
	return groupJoinWith("NestedLoopGroupJoin", func() JoinStrategy { return NestedLoopJoinStrategy }, outer, inner, outerKey, innerKey, result)
}

func groupJoinWith[O, I any, K comparable, R any](
	op string, strategy func() JoinStrategy,
	outer Sequence[O], inner Sequence[I],
	outerKey func(O) K, innerKey func(I) K,
	result func(O, *Group[K, I]) R,
) Sequence[R] {
	return newSequence(newPlan(op, "", outer.Plan(), inner.Plan()), func(yield func(R) bool) {
		matcher := newMatcher(strategy(), inner, innerKey)
		for o := range outer.All() {
			k := outerKey(o)
			g := &Group[K, I]{key: k, elements: matcher.matches(k)}
			if g.elements == nil {
				g.elements = []I{}
			}
			if !yield(result(o, g)) {
				return
			}
		}
	})
}

// matcher finds inner elements for an outer key. The inner sequence is read
// lazily on the first lookup, so an empty outer sequence never enumerates it.
type matcher[I any, K comparable] struct {
	strategy JoinStrategy
	inner    Sequence[I]
	innerKey func(I) K

	loaded bool
	lookup *Lookup[K, I]
	items  []I
	keys   []K
}

func newMatcher[I any, K comparable](strategy JoinStrategy, inner Sequence[I], innerKey func(I) K) *matcher[I, K] {
	return &matcher[I, K]{strategy: strategy, inner: inner, innerKey: innerKey}
}

func (m *matcher[I, K]) load() {
	m.loaded = true
	if m.strategy == HashJoinStrategy {
		m.lookup = ToLookup(m.inner, m.innerKey)
		return
	}
	for i := range m.inner.All() {
		m.items = append(m.items, i)
		m.keys = append(m.keys, m.innerKey(i))
	}
}

// matches returns the inner elements with key k in inner order. The hash
// path returns a shared slice; callers must not modify it.
func (m *matcher[I, K]) matches(k K) []I {
	if !m.loaded {
		m.load()
	}
	if m.strategy == HashJoinStrategy {
		return m.lookup.Get(k)
	}
	var out []I
	for idx, ik := range m.keys {
		if ik == k {
			out = append(out, m.items[idx])
		}
	}
	return out
}
