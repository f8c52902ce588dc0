package columnar

import (
	"fmt"
	"iter"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/paveg/linq/internal/query"
)

// Field is any column that can take part in a table.
type Field interface {
	Name() string
	Len() int
	Array() arrow.Array
}

// Table is an Arrow record with named columns of equal length.
type Table struct {
	record arrow.Record
}

// NewTable assembles columns into a table. The table holds its own
// references, so the columns may be released afterwards.
func NewTable(fields ...Field) (*Table, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("table requires at least one column")
	}

	rows := fields[0].Len()
	schemaFields := make([]arrow.Field, len(fields))
	arrays := make([]arrow.Array, len(fields))
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if f.Len() != rows {
			return nil, fmt.Errorf("column %s has %d rows, expected %d", f.Name(), f.Len(), rows)
		}
		if seen[f.Name()] {
			return nil, fmt.Errorf("duplicate column name: %s", f.Name())
		}
		seen[f.Name()] = true
		arr := f.Array()
		schemaFields[i] = arrow.Field{Name: f.Name(), Type: arr.DataType(), Nullable: true}
		arrays[i] = arr
	}

	record := array.NewRecord(arrow.NewSchema(schemaFields, nil), arrays, int64(rows))
	return &Table{record: record}, nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return int(t.record.NumRows())
}

// ColumnNames returns the column names in schema order.
func (t *Table) ColumnNames() []string {
	names := make([]string, t.record.NumCols())
	for i, f := range t.record.Schema().Fields() {
		names[i] = f.Name
	}
	return names
}

// Schema returns the Arrow schema.
func (t *Table) Schema() *arrow.Schema {
	return t.record.Schema()
}

// Release drops the table's references to its Arrow memory.
func (t *Table) Release() {
	t.record.Release()
}

// All iterates the rows in order.
func (t *Table) All() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for i := range t.NumRows() {
			if !yield(Row{table: t, index: i}) {
				return
			}
		}
	}
}

// Rows maps every row of t through mapper and exposes the result as a query
// source.
func Rows[T any](t *Table, mapper func(Row) T) query.Sequence[T] {
	return query.Select(query.FromSeq(t.All()).Named("Table"), mapper)
}

// Row is a cursor on one row of a table. Typed accessors panic when the
// column is missing or holds another type, like any failing selector.
type Row struct {
	table *Table
	index int
}

// Index returns the zero-based row number.
func (r Row) Index() int {
	return r.index
}

// IsNull reports whether the named column is null in this row.
func (r Row) IsNull(column string) bool {
	return r.column(column).IsNull(r.index)
}

// String returns the value of a string column.
func (r Row) String(column string) string {
	return cell[string](r, column)
}

// Int64 returns the value of an int64 column.
func (r Row) Int64(column string) int64 {
	return cell[int64](r, column)
}

// Float64 returns the value of a float64 column.
func (r Row) Float64(column string) float64 {
	return cell[float64](r, column)
}

// Bool returns the value of a boolean column.
func (r Row) Bool(column string) bool {
	return cell[bool](r, column)
}

func (r Row) column(name string) arrow.Array {
	idx := r.table.record.Schema().FieldIndices(name)
	if len(idx) == 0 {
		panic(fmt.Errorf("column not found: %s", name))
	}
	return r.table.record.Column(idx[0])
}

func cell[T Scalar](r Row, name string) T {
	arr := r.column(name)
	col, err := FromArray[T](name, arr)
	if err != nil {
		panic(err)
	}
	if arr.IsNull(r.index) {
		var zero T
		return zero
	}
	return valueAt[T](col.array, r.index)
}
