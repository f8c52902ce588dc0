// Package columnar provides Apache Arrow backed columns and tables that can
// feed query pipelines.
package columnar

import (
	"fmt"
	"iter"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/linq/internal/query"
)

// Scalar is the set of Go types a Column can hold.
type Scalar interface {
	string | int64 | int32 | float64 | float32 | bool
}

// Column is a named, typed, immutable Arrow array.
type Column[T Scalar] struct {
	name  string
	array arrow.Array
}

// NewColumn builds a column from values. Every value is valid.
func NewColumn[T Scalar](name string, values []T, mem memory.Allocator) *Column[T] {
	return NewNullableColumn(name, values, nil, mem)
}

// NewNullableColumn builds a column where valid[i] == false stores a null in
// slot i. A nil valid slice marks every value as valid.
func NewNullableColumn[T Scalar](name string, values []T, valid []bool, mem memory.Allocator) *Column[T] {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	if valid != nil && len(valid) != len(values) {
		panic(fmt.Sprintf("columnar: %d validity flags for %d values", len(valid), len(values)))
	}
	isNull := func(i int) bool { return valid != nil && !valid[i] }

	var arr arrow.Array
	switch v := any(values).(type) {
	case []string:
		arr = build[string](array.NewStringBuilder(mem), v, isNull)
	case []int64:
		arr = build[int64](array.NewInt64Builder(mem), v, isNull)
	case []int32:
		arr = build[int32](array.NewInt32Builder(mem), v, isNull)
	case []float64:
		arr = build[float64](array.NewFloat64Builder(mem), v, isNull)
	case []float32:
		arr = build[float32](array.NewFloat32Builder(mem), v, isNull)
	case []bool:
		arr = build[bool](array.NewBooleanBuilder(mem), v, isNull)
	}

	return &Column[T]{name: name, array: arr}
}

// typedBuilder is the subset of the Arrow builders used to fill a column.
type typedBuilder[V any] interface {
	Append(V)
	AppendNull()
	NewArray() arrow.Array
	Release()
}

func build[V any](b typedBuilder[V], values []V, isNull func(int) bool) arrow.Array {
	defer b.Release()
	for i, v := range values {
		if isNull(i) {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return b.NewArray()
}

// FromArray wraps an existing Arrow array whose type matches T. The column
// takes over one reference to arr.
func FromArray[T Scalar](name string, arr arrow.Array) (*Column[T], error) {
	var zero T
	ok := false
	switch any(zero).(type) {
	case string:
		_, ok = arr.(*array.String)
	case int64:
		_, ok = arr.(*array.Int64)
	case int32:
		_, ok = arr.(*array.Int32)
	case float64:
		_, ok = arr.(*array.Float64)
	case float32:
		_, ok = arr.(*array.Float32)
	case bool:
		_, ok = arr.(*array.Boolean)
	}
	if !ok {
		return nil, fmt.Errorf("column %s: arrow type %s does not hold %T values", name, arr.DataType(), zero)
	}
	return &Column[T]{name: name, array: arr}, nil
}

// Name returns the column name.
func (c *Column[T]) Name() string {
	return c.name
}

// Len returns the number of slots, nulls included.
func (c *Column[T]) Len() int {
	return c.array.Len()
}

// NullN returns the number of null slots.
func (c *Column[T]) NullN() int {
	return c.array.NullN()
}

// IsNull reports whether slot i is null.
func (c *Column[T]) IsNull(i int) bool {
	return c.array.IsNull(i)
}

// Value returns the value at i, or the zero value when i is out of range or
// null.
func (c *Column[T]) Value(i int) T {
	if i < 0 || i >= c.array.Len() || c.array.IsNull(i) {
		var zero T
		return zero
	}
	return valueAt[T](c.array, i)
}

// valueAt reads slot i of arr, which must hold T values.
func valueAt[T Scalar](arr arrow.Array, i int) T {
	var v any
	switch a := arr.(type) {
	case *array.String:
		v = a.Value(i)
	case *array.Int64:
		v = a.Value(i)
	case *array.Int32:
		v = a.Value(i)
	case *array.Float64:
		v = a.Value(i)
	case *array.Float32:
		v = a.Value(i)
	case *array.Boolean:
		v = a.Value(i)
	}
	return v.(T)
}

// All iterates the non-null values in order.
func (c *Column[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range c.array.Len() {
			if c.array.IsNull(i) {
				continue
			}
			if !yield(valueAt[T](c.array, i)) {
				return
			}
		}
	}
}

// Sequence exposes the non-null values as a query source. The column must
// not be released while the sequence is in use.
func (c *Column[T]) Sequence() query.Sequence[T] {
	return query.FromSeq(c.All()).Named(fmt.Sprintf("Column(%s)", c.name))
}

// Array returns the underlying Arrow array.
func (c *Column[T]) Array() arrow.Array {
	return c.array
}

// DataType returns the Arrow data type.
func (c *Column[T]) DataType() arrow.DataType {
	return c.array.DataType()
}

// Release drops the column's reference to its Arrow memory.
func (c *Column[T]) Release() {
	if c.array != nil {
		c.array.Release()
	}
}

// String returns a short description of the column.
func (c *Column[T]) String() string {
	return fmt.Sprintf("Column[%s]: %s (len=%d)", c.array.DataType(), c.name, c.Len())
}
