package keys

import (
	"time"

	"github.com/paveg/linq/internal/errors"
)

// Field extracts one typed component of a composite key from a record.
type Field[T any] struct {
	Name string
	Kind Kind
	get  func(T) Value
}

// StringField declares a string key component.
func StringField[T any](name string, get func(T) string) Field[T] {
	return newField(name, KindString, get, String)
}

// IntField declares an integer key component.
func IntField[T any](name string, get func(T) int64) Field[T] {
	return newField(name, KindInt, get, Int)
}

// FloatField declares a floating point key component.
func FloatField[T any](name string, get func(T) float64) Field[T] {
	return newField(name, KindFloat, get, Float)
}

// BoolField declares a boolean key component.
func BoolField[T any](name string, get func(T) bool) Field[T] {
	return newField(name, KindBool, get, Bool)
}

// TimeField declares a time key component.
func TimeField[T any](name string, get func(T) time.Time) Field[T] {
	return newField(name, KindTime, get, Time)
}

func newField[T, V any](name string, kind Kind, get func(T) V, wrap func(V) Value) Field[T] {
	f := Field[T]{Name: name, Kind: kind}
	if get != nil {
		f.get = func(v T) Value { return wrap(get(v)) }
	}
	return f
}

// Selector builds a Tuple from a record using an ordered list of fields.
type Selector[T any] struct {
	fields []Field[T]
	schema Schema
}

// NewSelector validates the fields and returns a selector.
func NewSelector[T any](fields ...Field[T]) (Selector[T], error) {
	if len(fields) == 0 {
		return Selector[T]{}, errors.NewInvalidArgumentError("NewSelector", "at least one key field is required")
	}
	schema := make(Schema, len(fields))
	for i, f := range fields {
		if f.get == nil {
			return Selector[T]{}, errors.NewInvalidArgumentError("NewSelector", "key field "+f.Name+" has no accessor")
		}
		schema[i] = f.Kind
	}
	return Selector[T]{fields: fields, schema: schema}, nil
}

// MustSelector is like NewSelector but panics on invalid fields.
func MustSelector[T any](fields ...Field[T]) Selector[T] {
	s, err := NewSelector(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Key extracts the composite key of v.
func (s Selector[T]) Key(v T) Tuple {
	t := make(Tuple, len(s.fields))
	for i, f := range s.fields {
		t[i] = f.get(v)
	}
	return t
}

// Schema returns the kinds of the key components.
func (s Selector[T]) Schema() Schema {
	return s.schema
}

// Names returns the field names in key order.
func (s Selector[T]) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// IsZero reports whether the selector was never built.
func (s Selector[T]) IsZero() bool {
	return len(s.fields) == 0
}

// CheckCompatible returns a TypeMismatch error when keys of schema a cannot be
// compared with keys of schema b.
func CheckCompatible(op string, a, b Schema) error {
	if msg := a.Mismatch(b); msg != "" {
		return errors.NewTypeMismatchError(op, msg)
	}
	return nil
}
