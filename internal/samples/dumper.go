package samples

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dumpIndent = "  "

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	timeType    = reflect.TypeOf(time.Time{})
)

// Dumper writes records in a readable, indented text form. Scalar fields of
// a struct share one line; nested collections and structs are expanded on
// the following lines until the configured depth is reached, and shown as
// "..." beyond it.
type Dumper struct {
	w     io.Writer
	depth int
	err   error
}

// NewDumper returns a dumper that expands nested values up to depth levels.
func NewDumper(w io.Writer, depth int) *Dumper {
	return &Dumper{w: w, depth: max(depth, 0)}
}

// Err returns the first write error, if any.
func (d *Dumper) Err() error {
	return d.err
}

// Line writes a formatted line without indentation.
func (d *Dumper) Line(format string, args ...any) {
	d.line(0, fmt.Sprintf(format, args...))
}

// Write dumps v. Slices, sequences and groups are written one element per
// line.
func (d *Dumper) Write(v any) {
	d.write("", reflect.ValueOf(v), 0)
}

func (d *Dumper) line(level int, text string) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintln(d.w, strings.Repeat(dumpIndent, level)+text)
}

func (d *Dumper) write(prefix string, v reflect.Value, level int) {
	v = indirect(v)
	switch {
	case !v.IsValid():
		d.line(level, prefix+"null")
	case isScalar(v):
		d.line(level, prefix+formatScalar(v))
	case isGroup(v):
		key := v.Addr().MethodByName("Key").Call(nil)[0]
		d.line(level, prefix+"Key="+formatValue(key))
		if level >= d.depth {
			return
		}
		members := v.Addr().MethodByName("Elements").Call(nil)[0]
		for i := range members.Len() {
			d.write("", members.Index(i), level+1)
		}
	case isCollection(v):
		for elem := range elements(v) {
			d.write(prefix, elem, level)
		}
	case v.Kind() == reflect.Struct:
		d.writeStruct(prefix, v, level)
	default:
		d.line(level, prefix+fmt.Sprint(v.Interface()))
	}
}

func (d *Dumper) writeStruct(prefix string, v reflect.Value, level int) {
	t := v.Type()
	parts := make([]string, 0, t.NumField())
	var nested []int
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		parts = append(parts, f.Name+"="+formatValue(v.Field(i)))
		if !isScalar(indirect(v.Field(i))) && indirect(v.Field(i)).IsValid() {
			nested = append(nested, i)
		}
	}
	d.line(level, prefix+strings.Join(parts, dumpIndent))
	if level >= d.depth {
		return
	}
	for _, i := range nested {
		d.write(t.Field(i).Name+": ", v.Field(i), level+1)
	}
}

// formatValue renders v for use inside a struct line.
func formatValue(v reflect.Value) string {
	v = indirect(v)
	switch {
	case !v.IsValid():
		return "null"
	case isScalar(v):
		return formatScalar(v)
	case isGroup(v), isCollection(v):
		return "..."
	default:
		return "{ }"
	}
}

func formatScalar(v reflect.Value) string {
	switch v.Type() {
	case decimalType:
		d, _ := v.Interface().(decimal.Decimal)
		return d.StringFixed(2)
	case timeType:
		t, _ := v.Interface().(time.Time)
		return t.Format(time.DateOnly)
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v.Interface())
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isScalar(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	if v.Type() == decimalType || v.Type() == timeType {
		return true
	}
	switch v.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// isGroup matches query.Group values, which are reached through a pointer.
func isGroup(v reflect.Value) bool {
	if !v.IsValid() || v.Kind() != reflect.Struct || !v.CanAddr() {
		return false
	}
	p := v.Addr()
	return p.MethodByName("Key").IsValid() && p.MethodByName("Elements").IsValid()
}

// isCollection matches slices, arrays and values with an All method
// returning an iterator, such as query sequences.
func isCollection(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return allMethod(v).IsValid()
}

func allMethod(v reflect.Value) reflect.Value {
	m := v.MethodByName("All")
	if !m.IsValid() || m.Type().NumIn() != 0 || m.Type().NumOut() != 1 || !m.Type().Out(0).CanSeq() {
		return reflect.Value{}
	}
	return m
}

func elements(v reflect.Value) func(yield func(reflect.Value) bool) {
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		return func(yield func(reflect.Value) bool) {
			for i := range v.Len() {
				if !yield(v.Index(i)) {
					return
				}
			}
		}
	}
	return allMethod(v).Call(nil)[0].Seq()
}
