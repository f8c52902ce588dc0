package query

import (
	"cmp"
	"slices"
	"strings"
)

// Direction is the sort direction of one ordering key.
type Direction int

const (
	// Ascending sorts smaller keys first.
	Ascending Direction = iota
	// Descending sorts larger keys first.
	Descending
)

// String returns "ASC" or "DESC".
func (d Direction) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// SortKey is one (key selector, direction) entry of a multi-key sort.
type SortKey[T any] struct {
	name    string
	dir     Direction
	compare func(a, b T) int
}

// Asc orders by key ascending.
func Asc[T any, K cmp.Ordered](key func(T) K) SortKey[T] {
	return KeyFunc(key, cmp.Compare[K], Ascending)
}

// Desc orders by key descending.
func Desc[T any, K cmp.Ordered](key func(T) K) SortKey[T] {
	return KeyFunc(key, cmp.Compare[K], Descending)
}

// AscFunc orders ascending with a custom comparison of whole elements.
func AscFunc[T any](compare func(a, b T) int) SortKey[T] {
	return SortKey[T]{dir: Ascending, compare: compare}
}

// DescFunc orders descending with a custom comparison of whole elements.
func DescFunc[T any](compare func(a, b T) int) SortKey[T] {
	return SortKey[T]{dir: Descending, compare: compare}
}

// KeyFunc orders by a projected key compared with compare, e.g. a
// time.Time key with time.Time.Compare.
func KeyFunc[T, K any](key func(T) K, compare func(a, b K) int, dir Direction) SortKey[T] {
	return SortKey[T]{dir: dir, compare: func(a, b T) int { return compare(key(a), key(b)) }}
}

// As names the key in plan output.
func (k SortKey[T]) As(name string) SortKey[T] {
	k.name = name
	return k
}

// Direction returns the sort direction.
func (k SortKey[T]) Direction() Direction {
	return k.dir
}

func (k SortKey[T]) String() string {
	if k.name == "" {
		return k.dir.String()
	}
	return k.name + " " + k.dir.String()
}

// Ordered is a sequence produced by an ordering operator. Then extends its
// sort order with lower-priority keys. Methods such as Where, Take and All are
// promoted, but generic functions like Select, GroupBy or ToSlice cannot infer
// T from an Ordered; pass its Sequence field instead:
//
//	names := ToSlice(Select(OrderBy(people, age).Sequence, name))
type Ordered[T any] struct {
	Sequence[T]
	source Sequence[T]
	keys   []SortKey[T]
}

// OrderBy sorts ascending by key.
func OrderBy[T any, K cmp.Ordered](s Sequence[T], key func(T) K) Ordered[T] {
	return SortBy(s, Asc(key))
}

// OrderByDescending sorts descending by key.
func OrderByDescending[T any, K cmp.Ordered](s Sequence[T], key func(T) K) Ordered[T] {
	return SortBy(s, Desc(key))
}

// ThenBy adds an ascending tie-breaker.
func ThenBy[T any, K cmp.Ordered](o Ordered[T], key func(T) K) Ordered[T] {
	return o.Then(Asc(key))
}

// ThenByDescending adds a descending tie-breaker.
func ThenByDescending[T any, K cmp.Ordered](o Ordered[T], key func(T) K) Ordered[T] {
	return o.Then(Desc(key))
}

// SortBy sorts by the keys in priority order. The first key decides; each
// following key only breaks ties left by the ones before it. The sort is
// stable, so elements equal under every key keep their input order. With no
// keys the input order is kept. Generic operators take the result's Sequence
// field.
func SortBy[T any](s Sequence[T], keys ...SortKey[T]) Ordered[T] {
	keys = slices.Clone(keys)
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	plan := newPlan("OrderBy", strings.Join(names, ", "), s.Plan())
	return Ordered[T]{
		Sequence: newSequence(plan, func(yield func(T) bool) {
			items := ToSlice(s)
			slices.SortStableFunc(items, compareByKeys(keys))
			for _, v := range items {
				if !yield(v) {
					return
				}
			}
		}),
		source: s,
		keys:   keys,
	}
}

// Then returns a new ordering with extra keys appended after the existing
// ones. The receiver is not modified.
func (o Ordered[T]) Then(keys ...SortKey[T]) Ordered[T] {
	all := make([]SortKey[T], 0, len(o.keys)+len(keys))
	all = append(all, o.keys...)
	all = append(all, keys...)
	return SortBy(o.source, all...)
}

// Keys returns a copy of the sort keys.
func (o Ordered[T]) Keys() []SortKey[T] {
	return slices.Clone(o.keys)
}

func compareByKeys[T any](keys []SortKey[T]) func(a, b T) int {
	return func(a, b T) int {
		for _, k := range keys {
			c := k.compare(a, b)
			if k.dir == Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	}
}

// Reverse yields the elements in reverse order. The input is materialized
// once per enumeration.
func Reverse[T any](s Sequence[T]) Sequence[T] {
	return newSequence(newPlan("Reverse", "", s.Plan()), func(yield func(T) bool) {
		items := ToSlice(s)
		for i := len(items) - 1; i >= 0; i-- {
			if !yield(items[i]) {
				return
			}
		}
	})
}
