// Package keys provides composite key values for joins, grouping and ordering
// when the key shape is assembled at runtime instead of as a Go struct.
//
// A Tuple is an ordered list of typed Values. Two tuples are equal when they
// have the same arity and every component has the same kind and value. Hash is
// consistent with Equal, so tuples can be stored in an Index.
package keys

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
)

// Kind identifies the type of a tuple component.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInt
	KindFloat
	KindBool
	KindTime
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is one component of a Tuple.
type Value struct {
	kind Kind
	s    string
	n    int64 // int, bool (0/1) and time (unix seconds)
	ns   int64 // time: nanoseconds within the second
	f    float64
}

// String creates a string component.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int creates an integer component.
func Int(n int64) Value { return Value{kind: KindInt, n: n} }

// Float creates a floating point component. Negative zero is stored as zero.
func Float(f float64) Value {
	if f == 0 {
		f = 0
	}
	return Value{kind: KindFloat, f: f}
}

// Bool creates a boolean component.
func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.n = 1
	}
	return v
}

// Time creates a time component. Equality is by instant, ignoring location.
// Every instant is representable, including the zero time.
func Time(t time.Time) Value {
	return Value{kind: KindTime, n: t.Unix(), ns: int64(t.Nanosecond())}
}

// Kind returns the component kind.
func (v Value) Kind() Kind { return v.kind }

// Any returns the component as a plain Go value.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.n
	case KindFloat:
		return v.f
	case KindBool:
		return v.n == 1
	case KindTime:
		return time.Unix(v.n, v.ns).UTC()
	default:
		return nil
	}
}

// String formats the component for display.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.n, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.n == 1)
	case KindTime:
		return time.Unix(v.n, v.ns).UTC().Format(time.RFC3339Nano)
	default:
		return "<nil>"
	}
}

// Equal reports whether both components have the same kind and value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindFloat:
		return math.Float64bits(v.f) == math.Float64bits(o.f)
	default:
		return v.n == o.n && v.ns == o.ns
	}
}

// Compare orders two components. Components of different kinds are ordered
// by kind so that the result is total; callers that need matching kinds check
// schemas first.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		return cmp.Compare(v.kind, o.kind)
	}
	switch v.kind {
	case KindString:
		return strings.Compare(v.s, o.s)
	case KindFloat:
		return cmp.Compare(v.f, o.f)
	default:
		if c := cmp.Compare(v.n, o.n); c != 0 {
			return c
		}
		return cmp.Compare(v.ns, o.ns)
	}
}

// Tuple is an ordered composite key.
type Tuple []Value

// Of builds a tuple from components.
func Of(values ...Value) Tuple {
	return Tuple(values)
}

// Equal reports structural equality.
func (t Tuple) Equal(o Tuple) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if !t[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Compare orders tuples component by component; a shorter prefix sorts first.
func (t Tuple) Compare(o Tuple) int {
	for i := range min(len(t), len(o)) {
		if c := t[i].Compare(o[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(t), len(o))
}

// Hash returns an xxhash digest over a canonical encoding of the tuple.
func (t Tuple) Hash() uint64 {
	d := xxhash.New()
	var buf [17]byte
	for _, v := range t {
		buf[0] = byte(v.kind)
		switch v.kind {
		case KindString:
			binary.LittleEndian.PutUint64(buf[1:], uint64(len(v.s)))
			_, _ = d.Write(buf[:9])
			_, _ = d.WriteString(v.s)
			continue
		case KindFloat:
			binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(v.f))
		default:
			binary.LittleEndian.PutUint64(buf[1:], uint64(v.n)) //nolint:gosec // bit pattern only
		}
		binary.LittleEndian.PutUint64(buf[9:], uint64(v.ns)) //nolint:gosec // bit pattern only
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// Schema returns the component kinds of the tuple.
func (t Tuple) Schema() Schema {
	s := make(Schema, len(t))
	for i, v := range t {
		s[i] = v.kind
	}
	return s
}

// String formats the tuple as "(a, b, c)".
func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Schema is the ordered list of component kinds of a key.
type Schema []Kind

// String formats the schema as "(string, int)".
func (s Schema) String() string {
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = k.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Mismatch describes why two schemas cannot be compared, or returns "" when
// they are compatible.
func (s Schema) Mismatch(o Schema) string {
	if len(s) != len(o) {
		return fmt.Sprintf("key arity %d does not match %d", len(s), len(o))
	}
	for i := range s {
		if s[i] != o[i] {
			return fmt.Sprintf("key component %d is %s on one side and %s on the other", i, s[i], o[i])
		}
	}
	return ""
}
