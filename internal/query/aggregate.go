package query

import (
	"cmp"

	"github.com/paveg/linq/internal/errors"
	"golang.org/x/exp/constraints"
)

// Number is the set of element types Sum and Average accept.
type Number interface {
	constraints.Integer | constraints.Float
}

// Sum adds all elements. The sum of an empty sequence is zero.
func Sum[N Number](s Sequence[N]) N {
	var total N
	for v := range s.All() {
		total += v
	}
	return total
}

// SumBy adds selector(e) over all elements.
func SumBy[T any, N Number](s Sequence[T], selector func(T) N) N {
	var total N
	for v := range s.All() {
		total += selector(v)
	}
	return total
}

// Average returns the arithmetic mean as float64. Integer inputs are summed
// exactly and divided as floating point.
func Average[N Number](s Sequence[N]) (float64, error) {
	return AverageBy(s, func(v N) N { return v })
}

// AverageBy averages selector(e) over all elements. Signed integers are summed
// as int64 and unsigned ones as uint64, so small element types do not wrap.
func AverageBy[T any, N Number](s Sequence[T], selector func(T) N) (float64, error) {
	var (
		signed   int64
		unsigned uint64
		floating float64
		count    int
	)
	class := classify[N]()
	for v := range s.All() {
		n := selector(v)
		switch class {
		case signedClass:
			signed += int64(n)
		case unsignedClass:
			unsigned += uint64(n)
		default:
			floating += float64(n)
		}
		count++
	}
	if count == 0 {
		return 0, errors.NewEmptySequenceError("Average")
	}
	switch class {
	case signedClass:
		return float64(signed) / float64(count), nil
	case unsignedClass:
		return float64(unsigned) / float64(count), nil
	default:
		return floating / float64(count), nil
	}
}

type numberClass int

const (
	signedClass numberClass = iota
	unsignedClass
	floatClass
)

// classify tells integer from floating point element types, including named
// types such as time.Duration.
func classify[N Number]() numberClass {
	var zero, one, two N = 0, 1, 2
	switch {
	case one/two != zero:
		return floatClass
	case zero-one > zero:
		return unsignedClass
	default:
		return signedClass
	}
}

// AverageOr is Average with def returned for an empty sequence.
func AverageOr[N Number](s Sequence[N], def float64) float64 {
	avg, err := Average(s)
	if err != nil {
		return def
	}
	return avg
}

// AverageByOr is AverageBy with def returned for an empty sequence.
func AverageByOr[T any, N Number](s Sequence[T], selector func(T) N, def float64) float64 {
	avg, err := AverageBy(s, selector)
	if err != nil {
		return def
	}
	return avg
}

// Min returns the smallest element.
func Min[T cmp.Ordered](s Sequence[T]) (T, error) {
	return extreme("Min", s, cmp.Compare[T], -1)
}

// MinOr returns the smallest element, or def when s is empty.
func MinOr[T cmp.Ordered](s Sequence[T], def T) T {
	return valueOr(def)(Min(s))
}

// Max returns the largest element.
func Max[T cmp.Ordered](s Sequence[T]) (T, error) {
	return extreme("Max", s, cmp.Compare[T], 1)
}

// MaxOr returns the largest element, or def when s is empty.
func MaxOr[T cmp.Ordered](s Sequence[T], def T) T {
	return valueOr(def)(Max(s))
}

// MinFunc returns the smallest element according to compare. Useful for
// types such as time.Time that are ordered by a method.
func MinFunc[T any](s Sequence[T], compare func(a, b T) int) (T, error) {
	return extreme("Min", s, compare, -1)
}

// MinFuncOr is MinFunc with def returned for an empty sequence.
func MinFuncOr[T any](s Sequence[T], compare func(a, b T) int, def T) T {
	return valueOr(def)(MinFunc(s, compare))
}

// MaxFunc returns the largest element according to compare.
func MaxFunc[T any](s Sequence[T], compare func(a, b T) int) (T, error) {
	return extreme("Max", s, compare, 1)
}

// MaxFuncOr is MaxFunc with def returned for an empty sequence.
func MaxFuncOr[T any](s Sequence[T], compare func(a, b T) int, def T) T {
	return valueOr(def)(MaxFunc(s, compare))
}

// MinOf returns the smallest projected value selector(e).
func MinOf[T any, K cmp.Ordered](s Sequence[T], selector func(T) K) (K, error) {
	return Min(Select(s, selector))
}

// MinOfOr is MinOf with def returned for an empty sequence.
func MinOfOr[T any, K cmp.Ordered](s Sequence[T], selector func(T) K, def K) K {
	return MinOr(Select(s, selector), def)
}

// MaxOf returns the largest projected value selector(e).
func MaxOf[T any, K cmp.Ordered](s Sequence[T], selector func(T) K) (K, error) {
	return Max(Select(s, selector))
}

// MaxOfOr is MaxOf with def returned for an empty sequence.
func MaxOfOr[T any, K cmp.Ordered](s Sequence[T], selector func(T) K, def K) K {
	return MaxOr(Select(s, selector), def)
}

// MinBy returns the first element with the smallest key.
func MinBy[T any, K cmp.Ordered](s Sequence[T], key func(T) K) (T, error) {
	return extreme("MinBy", s, func(a, b T) int { return cmp.Compare(key(a), key(b)) }, -1)
}

// MaxBy returns the first element with the largest key.
func MaxBy[T any, K cmp.Ordered](s Sequence[T], key func(T) K) (T, error) {
	return extreme("MaxBy", s, func(a, b T) int { return cmp.Compare(key(a), key(b)) }, 1)
}

// MinByOr is MinBy with def returned for an empty sequence.
func MinByOr[T any, K cmp.Ordered](s Sequence[T], key func(T) K, def T) T {
	return valueOr(def)(MinBy(s, key))
}

// MaxByOr is MaxBy with def returned for an empty sequence.
func MaxByOr[T any, K cmp.Ordered](s Sequence[T], key func(T) K, def T) T {
	return valueOr(def)(MaxBy(s, key))
}

// extreme keeps the first element whose comparison against the current best
// has the wanted sign, so ties resolve to the earliest element.
func extreme[T any](op string, s Sequence[T], compare func(a, b T) int, sign int) (T, error) {
	var best T
	found := false
	for v := range s.All() {
		if !found || compare(v, best)*sign > 0 {
			best = v
			found = true
		}
	}
	if !found {
		var zero T
		return zero, errors.NewEmptySequenceError(op)
	}
	return best, nil
}

// valueOr returns a function that substitutes def for v when err is set.
func valueOr[T any](def T) func(T, error) T {
	return func(v T, err error) T {
		if err != nil {
			return def
		}
		return v
	}
}

// Count returns the number of elements.
func Count[T any](s Sequence[T]) int {
	n := 0
	for range s.All() {
		n++
	}
	return n
}

// CountWhere returns the number of elements satisfying predicate.
func CountWhere[T any](s Sequence[T], predicate func(T) bool) int {
	n := 0
	for v := range s.All() {
		if predicate(v) {
			n++
		}
	}
	return n
}

// Any reports whether the sequence has at least one element. It stops at the
// first element.
func Any[T any](s Sequence[T]) bool {
	for range s.All() {
		return true
	}
	return false
}

// AnyWhere reports whether some element satisfies predicate, stopping at the
// first match.
func AnyWhere[T any](s Sequence[T], predicate func(T) bool) bool {
	for v := range s.All() {
		if predicate(v) {
			return true
		}
	}
	return false
}

// All reports whether every element satisfies predicate. It is true for an
// empty sequence and stops at the first failure.
func All[T any](s Sequence[T], predicate func(T) bool) bool {
	for v := range s.All() {
		if !predicate(v) {
			return false
		}
	}
	return true
}

// Contains reports whether value occurs in the sequence.
func Contains[T comparable](s Sequence[T], value T) bool {
	return AnyWhere(s, func(v T) bool { return v == value })
}

// Aggregate folds the sequence from seed with fn.
func Aggregate[T, A any](s Sequence[T], seed A, fn func(A, T) A) A {
	acc := seed
	for v := range s.All() {
		acc = fn(acc, v)
	}
	return acc
}

// First returns the first element.
func First[T any](s Sequence[T]) (T, error) {
	for v := range s.All() {
		return v, nil
	}
	var zero T
	return zero, errors.NewEmptySequenceError("First")
}

// FirstOr returns the first element, or def when s is empty.
func FirstOr[T any](s Sequence[T], def T) T {
	return valueOr(def)(First(s))
}

// ElementAt returns the element at zero-based position index.
func ElementAt[T any](s Sequence[T], index int) (T, error) {
	var zero T
	if index < 0 {
		return zero, errors.NewInvalidArgumentError("ElementAt", "index must be non-negative")
	}
	i := 0
	for v := range s.All() {
		if i == index {
			return v, nil
		}
		i++
	}
	return zero, errors.NewInvalidArgumentError("ElementAt", "index out of range")
}

// ToSlice materializes the sequence.
func ToSlice[T any](s Sequence[T]) []T {
	out := make([]T, 0)
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}

// ToMap materializes the sequence into a map. Later elements overwrite
// earlier ones with the same key.
func ToMap[T any, K comparable, V any](s Sequence[T], key func(T) K, value func(T) V) map[K]V {
	out := make(map[K]V)
	for v := range s.All() {
		out[key(v)] = value(v)
	}
	return out
}

// Collect materializes the sequence like ToSlice, but a panic raised by any
// closure in the pipeline is returned as a KeySelector error wrapping the
// original cause. Elements produced before the failure are returned too.
func Collect[T any](s Sequence[T]) (out []T, err error) {
	out = make([]T, 0)
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewKeySelectorError("Collect", errors.PanicCause(r))
		}
	}()
	for v := range s.All() {
		out = append(out, v)
	}
	return out, nil
}
