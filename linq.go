// Package linq provides deferred, composable query operators over in-memory
// collections. This package is the sole public API for the library.
//
// A pipeline is built from a source such as From and a chain of operators.
// Nothing runs until the pipeline is enumerated, and every enumeration
// re-reads the source:
//
//	cheap := linq.From(products).Where(func(p Product) bool { return p.Price < 10 })
//	names := linq.ToSlice(linq.Select(cheap, func(p Product) string { return p.Name }))
package linq

import (
	"cmp"
	"iter"

	"github.com/paveg/linq/internal/config"
	"github.com/paveg/linq/internal/errors"
	"github.com/paveg/linq/internal/keys"
	"github.com/paveg/linq/internal/query"
)

// Sequence is a deferred, re-enumerable sequence of T.
type Sequence[T any] = query.Sequence[T]

// Ordered is a sorted sequence that accepts further tie-breakers. Pass its
// Sequence field to generic functions such as Select or ToSlice, which cannot
// infer T from an Ordered.
type Ordered[T any] = query.Ordered[T]

// Group is a key with the elements that produced it, in source order.
type Group[K, T any] = query.Group[K, T]

// Lookup is a materialized, order-preserving key to elements map.
type Lookup[K comparable, T any] = query.Lookup[K, T]

// SortKey is one level of a multi-key sort.
type SortKey[T any] = query.SortKey[T]

// Direction is a sort direction.
type Direction = query.Direction

// Number is the constraint of Sum and Average.
type Number = query.Number

// PlanNode is one stage of a pipeline plan.
type PlanNode = query.PlanNode

// Observer is notified around every enumeration of an observed sequence.
type Observer = query.Observer

// EnumerationStats describes one finished enumeration.
type EnumerationStats = query.EnumerationStats

// Tuple is a dynamically typed composite key.
type Tuple = keys.Tuple

// KeyField extracts one component of a composite key.
type KeyField[T any] = keys.Field[T]

// KeySelector builds composite keys from fields.
type KeySelector[T any] = keys.Selector[T]

// QueryError is the error type returned by failing terminals.
type QueryError = errors.QueryError

// Config holds the engine settings.
type Config = config.Config

const (
	Ascending  = query.Ascending
	Descending = query.Descending
)

// Sentinels for errors.Is.
var (
	ErrEmptySequence   = errors.ErrEmptySequence
	ErrKeySelector     = errors.ErrKeySelector
	ErrTypeMismatch    = errors.ErrTypeMismatch
	ErrInvalidArgument = errors.ErrInvalidArgument
)

// Sources

// From returns a sequence over items. The slice is read at enumeration time.
func From[T any](items []T) Sequence[T] { return query.From(items) }

// Just returns a sequence over the given values.
func Just[T any](items ...T) Sequence[T] { return query.Just(items...) }

// FromSeq wraps an iterator. It is re-enumerable only if seq is.
func FromSeq[T any](seq iter.Seq[T]) Sequence[T] { return query.FromSeq(seq) }

// FromFunc calls factory at the start of every enumeration.
func FromFunc[T any](factory func() iter.Seq[T]) Sequence[T] { return query.FromFunc(factory) }

// Empty returns a sequence with no elements.
func Empty[T any]() Sequence[T] { return query.Empty[T]() }

// Range returns count consecutive integers starting at start.
func Range(start, count int) Sequence[int] { return query.Range(start, count) }

// Repeat returns value count times.
func Repeat[T any](value T, count int) Sequence[T] { return query.Repeat(value, count) }

// Projection

// Select maps every element through selector.
func Select[T, R any](s Sequence[T], selector func(T) R) Sequence[R] {
	return query.Select(s, selector)
}

// SelectIndexed maps every element together with its position.
func SelectIndexed[T, R any](s Sequence[T], selector func(int, T) R) Sequence[R] {
	return query.SelectIndexed(s, selector)
}

// SelectMany flattens the sequences produced by selector.
func SelectMany[T, R any](s Sequence[T], selector func(T) Sequence[R]) Sequence[R] {
	return query.SelectMany(s, selector)
}

// SelectManySlice flattens the slices produced by selector.
func SelectManySlice[T, R any](s Sequence[T], selector func(T) []R) Sequence[R] {
	return query.SelectManySlice(s, selector)
}

// Distinct drops repeated elements, keeping first occurrences.
func Distinct[T comparable](s Sequence[T]) Sequence[T] { return query.Distinct(s) }

// DistinctBy drops elements whose key was already seen.
func DistinctBy[T any, K comparable](s Sequence[T], key func(T) K) Sequence[T] {
	return query.DistinctBy(s, key)
}

// Joins

// Join pairs outer and inner elements with equal keys.
func Join[O, I any, K comparable, R any](outer Sequence[O], inner Sequence[I], outerKey func(O) K, innerKey func(I) K, result func(O, I) R) Sequence[R] {
	return query.Join(outer, inner, outerKey, innerKey, result)
}

// GroupJoin pairs every outer element with the group of matching inner
// elements, which may be empty.
func GroupJoin[O, I any, K comparable, R any](outer Sequence[O], inner Sequence[I], outerKey func(O) K, innerKey func(I) K, result func(O, *Group[K, I]) R) Sequence[R] {
	return query.GroupJoin(outer, inner, outerKey, innerKey, result)
}

// JoinTuple joins on composite keys. The selectors must produce keys of the
// same shape.
func JoinTuple[O, I, R any](outer Sequence[O], inner Sequence[I], outerKey KeySelector[O], innerKey KeySelector[I], result func(O, I) R) (Sequence[R], error) {
	return query.JoinTuple(outer, inner, outerKey, innerKey, result)
}

// GroupJoinTuple group-joins on composite keys.
func GroupJoinTuple[O, I, R any](outer Sequence[O], inner Sequence[I], outerKey KeySelector[O], innerKey KeySelector[I], result func(O, *Group[Tuple, I]) R) (Sequence[R], error) {
	return query.GroupJoinTuple(outer, inner, outerKey, innerKey, result)
}

// Grouping

// GroupBy groups elements by key in first-appearance order.
func GroupBy[T any, K comparable](s Sequence[T], key func(T) K) Sequence[*Group[K, T]] {
	return query.GroupBy(s, key)
}

// GroupByInto groups like GroupBy and stores element(e) instead of e.
func GroupByInto[T any, K comparable, E any](s Sequence[T], key func(T) K, element func(T) E) Sequence[*Group[K, E]] {
	return query.GroupByInto(s, key, element)
}

// GroupByTuple groups by a composite key.
func GroupByTuple[T any](s Sequence[T], key KeySelector[T]) (Sequence[*Group[Tuple, T]], error) {
	return query.GroupByTuple(s, key)
}

// SubGroupBy regroups the elements of an existing group.
func SubGroupBy[K1 any, T any, K2 comparable](g *Group[K1, T], key func(T) K2) Sequence[*Group[K2, T]] {
	return query.SubGroupBy(g, key)
}

// ToLookup materializes s into a Lookup.
func ToLookup[T any, K comparable](s Sequence[T], key func(T) K) *Lookup[K, T] {
	return query.ToLookup(s, key)
}

// Ordering

// OrderBy sorts ascending by key. The sort is stable. Use the result's
// Sequence field as input to further generic operators.
func OrderBy[T any, K cmp.Ordered](s Sequence[T], key func(T) K) Ordered[T] {
	return query.OrderBy(s, key)
}

// OrderByDescending sorts descending by key.
func OrderByDescending[T any, K cmp.Ordered](s Sequence[T], key func(T) K) Ordered[T] {
	return query.OrderByDescending(s, key)
}

// ThenBy adds an ascending tie-breaker.
func ThenBy[T any, K cmp.Ordered](o Ordered[T], key func(T) K) Ordered[T] {
	return query.ThenBy(o, key)
}

// ThenByDescending adds a descending tie-breaker.
func ThenByDescending[T any, K cmp.Ordered](o Ordered[T], key func(T) K) Ordered[T] {
	return query.ThenByDescending(o, key)
}

// SortBy sorts by the keys in priority order. Use the result's Sequence field
// as input to further generic operators.
func SortBy[T any](s Sequence[T], keys ...SortKey[T]) Ordered[T] { return query.SortBy(s, keys...) }

// Asc orders by key ascending.
func Asc[T any, K cmp.Ordered](key func(T) K) SortKey[T] { return query.Asc(key) }

// Desc orders by key descending.
func Desc[T any, K cmp.Ordered](key func(T) K) SortKey[T] { return query.Desc(key) }

// KeyFunc orders by a projected key with a custom comparison.
func KeyFunc[T, K any](key func(T) K, compare func(a, b K) int, dir Direction) SortKey[T] {
	return query.KeyFunc(key, compare, dir)
}

// TupleKey orders by a composite key.
func TupleKey[T any](key KeySelector[T], dir Direction) SortKey[T] { return query.TupleKey(key, dir) }

// Reverse yields the elements in reverse order.
func Reverse[T any](s Sequence[T]) Sequence[T] { return query.Reverse(s) }

// Terminals

// Sum adds the elements. An empty sequence sums to zero.
func Sum[N Number](s Sequence[N]) N { return query.Sum(s) }

// SumBy adds selector(e) over the elements.
func SumBy[T any, N Number](s Sequence[T], selector func(T) N) N { return query.SumBy(s, selector) }

// Average returns the arithmetic mean, or ErrEmptySequence.
func Average[N Number](s Sequence[N]) (float64, error) { return query.Average(s) }

// AverageBy averages selector(e) over the elements.
func AverageBy[T any, N Number](s Sequence[T], selector func(T) N) (float64, error) {
	return query.AverageBy(s, selector)
}

// Min returns the smallest element, or ErrEmptySequence.
func Min[T cmp.Ordered](s Sequence[T]) (T, error) { return query.Min(s) }

// Max returns the largest element, or ErrEmptySequence.
func Max[T cmp.Ordered](s Sequence[T]) (T, error) { return query.Max(s) }

// MinBy returns the first element with the smallest key.
func MinBy[T any, K cmp.Ordered](s Sequence[T], key func(T) K) (T, error) { return query.MinBy(s, key) }

// MaxBy returns the first element with the largest key.
func MaxBy[T any, K cmp.Ordered](s Sequence[T], key func(T) K) (T, error) { return query.MaxBy(s, key) }

// MinFunc returns the smallest element under compare.
func MinFunc[T any](s Sequence[T], compare func(a, b T) int) (T, error) {
	return query.MinFunc(s, compare)
}

// MaxFunc returns the largest element under compare.
func MaxFunc[T any](s Sequence[T], compare func(a, b T) int) (T, error) {
	return query.MaxFunc(s, compare)
}

// Count returns the number of elements.
func Count[T any](s Sequence[T]) int { return query.Count(s) }

// CountWhere returns the number of elements matching predicate.
func CountWhere[T any](s Sequence[T], predicate func(T) bool) int {
	return query.CountWhere(s, predicate)
}

// Any reports whether s has at least one element.
func Any[T any](s Sequence[T]) bool { return query.Any(s) }

// AnyWhere reports whether some element matches predicate.
func AnyWhere[T any](s Sequence[T], predicate func(T) bool) bool { return query.AnyWhere(s, predicate) }

// All reports whether every element matches predicate. It is true for an
// empty sequence.
func All[T any](s Sequence[T], predicate func(T) bool) bool { return query.All(s, predicate) }

// Contains reports whether value occurs in s.
func Contains[T comparable](s Sequence[T], value T) bool { return query.Contains(s, value) }

// Aggregate folds the elements into seed.
func Aggregate[T, A any](s Sequence[T], seed A, fn func(A, T) A) A {
	return query.Aggregate(s, seed, fn)
}

// First returns the first element, or ErrEmptySequence.
func First[T any](s Sequence[T]) (T, error) { return query.First(s) }

// FirstOr returns the first element, or def.
func FirstOr[T any](s Sequence[T], def T) T { return query.FirstOr(s, def) }

// ElementAt returns the element at index.
func ElementAt[T any](s Sequence[T], index int) (T, error) { return query.ElementAt(s, index) }

// ToSlice enumerates s into a new slice.
func ToSlice[T any](s Sequence[T]) []T { return query.ToSlice(s) }

// ToMap enumerates s into a map. Later keys overwrite earlier ones.
func ToMap[T any, K comparable, V any](s Sequence[T], key func(T) K, value func(T) V) map[K]V {
	return query.ToMap(s, key, value)
}

// Collect enumerates s into a slice and returns a panic raised by a caller
// closure as an error.
func Collect[T any](s Sequence[T]) ([]T, error) { return query.Collect(s) }

// Observe attaches observers to every enumeration of s.
func Observe[T any](s Sequence[T], observers ...Observer) Sequence[T] {
	return query.Observe(s, observers...)
}

// Composite keys

// StringField is a string component of a composite key.
func StringField[T any](name string, get func(T) string) KeyField[T] {
	return keys.StringField(name, get)
}

// IntField is an integer component of a composite key.
func IntField[T any](name string, get func(T) int64) KeyField[T] { return keys.IntField(name, get) }

// NewKeySelector builds a composite key selector from fields.
func NewKeySelector[T any](fields ...KeyField[T]) (KeySelector[T], error) {
	return keys.NewSelector(fields...)
}

// Configuration

// DefaultConfig returns the default engine settings.
func DefaultConfig() Config { return config.NewConfig() }

// LoadConfig reads settings from a JSON or YAML file, then from LINQ_*
// environment variables. An empty filename loads the defaults.
func LoadConfig(filename string) (Config, error) { return config.Load(filename) }

// Configure replaces the engine settings used by later enumerations.
func Configure(cfg Config) { config.SetGlobalConfig(cfg) }

// CurrentConfig returns the engine settings in effect.
func CurrentConfig() Config { return config.GetGlobalConfig() }
