package query

import (
	"strings"

	"github.com/paveg/linq/internal/config"
	"github.com/paveg/linq/internal/errors"
	"github.com/paveg/linq/internal/keys"
)

// JoinTuple is Join over composite keys built by field selectors. The two
// selectors must produce keys of the same schema; otherwise a TypeMismatch
// error is returned and no sequence is built.
func JoinTuple[O, I, R any](
	outer Sequence[O], inner Sequence[I],
	outerKey keys.Selector[O], innerKey keys.Selector[I],
	result func(O, I) R,
) (Sequence[R], error) {
	if err := checkTupleSelectors("JoinTuple", outerKey, innerKey); err != nil {
		return Sequence[R]{}, err
	}
	plan := newPlan("JoinTuple", selectorDetail(outerKey.Names(), innerKey.Names()), outer.Plan(), inner.Plan())
	return newSequence(plan, func(yield func(R) bool) {
		m := newTupleMatcher(currentJoinStrategy(), inner, innerKey)
		for o := range outer.All() {
			for _, i := range m.matches(outerKey.Key(o)) {
				if !yield(result(o, i)) {
					return
				}
			}
		}
	}), nil
}

// GroupJoinTuple is GroupJoin over composite keys built by field selectors.
func GroupJoinTuple[O, I, R any](
	outer Sequence[O], inner Sequence[I],
	outerKey keys.Selector[O], innerKey keys.Selector[I],
	result func(O, *Group[keys.Tuple, I]) R,
) (Sequence[R], error) {
	if err := checkTupleSelectors("GroupJoinTuple", outerKey, innerKey); err != nil {
		return Sequence[R]{}, err
	}
	plan := newPlan("GroupJoinTuple", selectorDetail(outerKey.Names(), innerKey.Names()), outer.Plan(), inner.Plan())
	return newSequence(plan, func(yield func(R) bool) {
		m := newTupleMatcher(currentJoinStrategy(), inner, innerKey)
		for o := range outer.All() {
			k := outerKey.Key(o)
			elements := m.matches(k)
			if elements == nil {
				elements = []I{}
			}
			if !yield(result(o, &Group[keys.Tuple, I]{key: k, elements: elements})) {
				return
			}
		}
	}), nil
}

// GroupByTuple groups by a composite key. Groups keep first-occurrence order.
func GroupByTuple[T any](s Sequence[T], key keys.Selector[T]) (Sequence[*Group[keys.Tuple, T]], error) {
	if key.IsZero() {
		return Sequence[*Group[keys.Tuple, T]]{}, errors.NewInvalidArgumentError("GroupByTuple", "key selector is required")
	}
	plan := newPlan("GroupByTuple", strings.Join(key.Names(), ", "), s.Plan())
	return newSequence(plan, func(yield func(*Group[keys.Tuple, T]) bool) {
		ix := keys.NewIndex[T](config.GetGlobalConfig().IndexCapacityHint)
		for v := range s.All() {
			ix.Put(key.Key(v), v)
		}
		ix.Each(func(k keys.Tuple, values []T) bool {
			return yield(&Group[keys.Tuple, T]{key: k, elements: values})
		})
	}), nil
}

// TupleKey orders by a composite key, component by component.
func TupleKey[T any](key keys.Selector[T], dir Direction) SortKey[T] {
	return SortKey[T]{
		name: strings.Join(key.Names(), ", "),
		dir:  dir,
		compare: func(a, b T) int {
			return key.Key(a).Compare(key.Key(b))
		},
	}
}

func checkTupleSelectors[O, I any](op string, outerKey keys.Selector[O], innerKey keys.Selector[I]) error {
	if outerKey.IsZero() || innerKey.IsZero() {
		return errors.NewInvalidArgumentError(op, "both key selectors are required")
	}
	return keys.CheckCompatible(op, outerKey.Schema(), innerKey.Schema())
}

func selectorDetail(outer, inner []string) string {
	return strings.Join(outer, ", ") + " = " + strings.Join(inner, ", ")
}

// tupleMatcher is the composite-key counterpart of matcher. The hash path
// indexes the inner side with keys.Index on the first lookup.
type tupleMatcher[I any] struct {
	strategy JoinStrategy
	inner    Sequence[I]
	innerKey keys.Selector[I]

	loaded bool
	index  *keys.Index[I]
	items  []I
	keys   []keys.Tuple
}

func newTupleMatcher[I any](strategy JoinStrategy, inner Sequence[I], innerKey keys.Selector[I]) *tupleMatcher[I] {
	return &tupleMatcher[I]{strategy: strategy, inner: inner, innerKey: innerKey}
}

func (m *tupleMatcher[I]) load() {
	m.loaded = true
	if m.strategy == HashJoinStrategy {
		m.index = keys.NewIndex[I](config.GetGlobalConfig().IndexCapacityHint)
		for v := range m.inner.All() {
			m.index.Put(m.innerKey.Key(v), v)
		}
		return
	}
	for v := range m.inner.All() {
		m.items = append(m.items, v)
		m.keys = append(m.keys, m.innerKey.Key(v))
	}
}

func (m *tupleMatcher[I]) matches(k keys.Tuple) []I {
	if !m.loaded {
		m.load()
	}
	if m.strategy == HashJoinStrategy {
		values, _ := m.index.Get(k)
		return values
	}
	var out []I
	for idx, ik := range m.keys {
		if ik.Equal(k) {
			out = append(out, m.items[idx])
		}
	}
	return out
}
