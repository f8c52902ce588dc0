package keys_test

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/paveg/linq/internal/errors"
	"github.com/paveg/linq/internal/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type location struct {
	Country string
	City    string
	Zip     int64
}

func TestTuple_EqualAndHash(t *testing.T) {
	tests := []struct {
		name  string
		a, b  keys.Tuple
		equal bool
	}{
		{"same strings", keys.Of(keys.String("UK"), keys.String("London")), keys.Of(keys.String("UK"), keys.String("London")), true},
		{"different component", keys.Of(keys.String("UK"), keys.String("London")), keys.Of(keys.String("UK"), keys.String("Leeds")), false},
		{"different arity", keys.Of(keys.String("UK")), keys.Of(keys.String("UK"), keys.String("London")), false},
		{"different kind same text", keys.Of(keys.String("1")), keys.Of(keys.Int(1)), false},
		{"negative zero", keys.Of(keys.Float(math.Copysign(0, -1))), keys.Of(keys.Float(0)), true},
		{"same instant other zone", keys.Of(keys.Time(time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC))),
			keys.Of(keys.Time(time.Date(2020, 1, 1, 13, 0, 0, 0, time.FixedZone("CET", 3600)))), true},
		{"bools", keys.Of(keys.Bool(true)), keys.Of(keys.Bool(false)), false},
		{"string boundary", keys.Of(keys.String("ab"), keys.String("c")), keys.Of(keys.String("a"), keys.String("bc")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
			if tt.equal {
				assert.Equal(t, tt.a.Hash(), tt.b.Hash(), "equal tuples must hash equally")
				assert.Zero(t, tt.a.Compare(tt.b))
			}
		})
	}
}

func TestTuple_Compare(t *testing.T) {
	a := keys.Of(keys.String("France"), keys.Int(1))
	b := keys.Of(keys.String("France"), keys.Int(2))
	c := keys.Of(keys.String("Germany"))

	assert.Negative(t, a.Compare(b))
	assert.Positive(t, b.Compare(a))
	assert.Negative(t, b.Compare(c))
	assert.Negative(t, keys.Of(keys.String("France")).Compare(a), "prefix sorts first")
}

func TestTuple_StringAndSchema(t *testing.T) {
	tup := keys.Of(keys.String("Paris"), keys.Int(75), keys.Bool(true), keys.Float(1.5))
	assert.Equal(t, "(Paris, 75, true, 1.5)", tup.String())
	assert.Equal(t, keys.Schema{keys.KindString, keys.KindInt, keys.KindBool, keys.KindFloat}, tup.Schema())
	assert.Equal(t, "(string, int, bool, float)", tup.Schema().String())
	assert.Equal(t, int64(75), tup[1].Any())
}

func TestTime_FullRange(t *testing.T) {
	zero := keys.Time(time.Time{})
	assert.Equal(t, "0001-01-01T00:00:00Z", zero.String())
	assert.True(t, zero.Any().(time.Time).IsZero())

	tests := []struct {
		name string
		a, b time.Time
	}{
		{"zero and year 3000", time.Time{}, time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"far past", time.Date(1000, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(1200, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"nanoseconds apart", time.Date(2020, 1, 1, 0, 0, 0, 1, time.UTC), time.Date(2020, 1, 1, 0, 0, 0, 2, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := keys.Of(keys.Time(tt.a)), keys.Of(keys.Time(tt.b))
			assert.False(t, a.Equal(b))
			assert.NotEqual(t, a.Hash(), b.Hash())
			assert.Negative(t, a.Compare(b))
			assert.True(t, tt.a.Equal(a[0].Any().(time.Time)))
		})
	}

	sameZero := keys.Of(keys.Time(time.Time{}.In(time.FixedZone("CET", 3600))))
	assert.True(t, keys.Of(zero).Equal(sameZero))
	assert.Equal(t, keys.Of(zero).Hash(), sameZero.Hash())
}

func TestSelector(t *testing.T) {
	sel, err := keys.NewSelector(
		keys.StringField("Country", func(l location) string { return l.Country }),
		keys.StringField("City", func(l location) string { return l.City }),
	)
	require.NoError(t, err)

	key := sel.Key(location{Country: "Germany", City: "Berlin"})
	assert.True(t, key.Equal(keys.Of(keys.String("Germany"), keys.String("Berlin"))))
	assert.Equal(t, []string{"Country", "City"}, sel.Names())
	assert.False(t, sel.IsZero())

	t.Run("no fields", func(t *testing.T) {
		_, err := keys.NewSelector[location]()
		assert.ErrorIs(t, err, errors.ErrInvalidArgument)
	})

	t.Run("nil accessor", func(t *testing.T) {
		_, err := keys.NewSelector(keys.StringField[location]("City", nil))
		assert.ErrorIs(t, err, errors.ErrInvalidArgument)
		assert.Panics(t, func() { keys.MustSelector(keys.StringField[location]("City", nil)) })
	})
}

func TestCheckCompatible(t *testing.T) {
	byCity := keys.MustSelector(keys.StringField("City", func(l location) string { return l.City }))
	byZip := keys.MustSelector(keys.IntField("Zip", func(l location) int64 { return l.Zip }))
	byBoth := keys.MustSelector(
		keys.StringField("City", func(l location) string { return l.City }),
		keys.IntField("Zip", func(l location) int64 { return l.Zip }),
	)

	assert.NoError(t, keys.CheckCompatible("Join", byCity.Schema(), byCity.Schema()))

	err := keys.CheckCompatible("Join", byCity.Schema(), byZip.Schema())
	require.ErrorIs(t, err, errors.ErrTypeMismatch)
	assert.Contains(t, err.Error(), "key component 0 is string on one side and int on the other")

	err = keys.CheckCompatible("Join", byCity.Schema(), byBoth.Schema())
	require.ErrorIs(t, err, errors.ErrTypeMismatch)
	assert.Contains(t, err.Error(), "key arity 1 does not match 2")
}

func TestIndex(t *testing.T) {
	ix := keys.NewIndex[int](0)

	ix.Put(keys.Of(keys.String("b")), 1)
	ix.Put(keys.Of(keys.String("a")), 2)
	ix.Put(keys.Of(keys.String("b")), 3)

	values, ok := ix.Get(keys.Of(keys.String("b")))
	require.True(t, ok)
	assert.Equal(t, []int{1, 3}, values)

	_, ok = ix.Get(keys.Of(keys.String("c")))
	assert.False(t, ok)
	assert.Equal(t, 2, ix.Len())

	var order []string
	ix.Each(func(key keys.Tuple, _ []int) bool {
		order = append(order, key.String())
		return true
	})
	assert.Equal(t, []string{"(b)", "(a)"}, order, "first-insertion order")
}

func TestIndex_GrowsAndKeepsEntries(t *testing.T) {
	ix := keys.NewIndex[int](1)
	const n = 1000
	for i := range n {
		ix.Put(keys.Of(keys.Int(int64(i%250)), keys.String(fmt.Sprint(i%250))), i)
	}

	assert.Equal(t, 250, ix.Len())
	for k := range 250 {
		values, ok := ix.Get(keys.Of(keys.Int(int64(k)), keys.String(fmt.Sprint(k))))
		require.True(t, ok)
		assert.Equal(t, []int{k, k + 250, k + 500, k + 750}, values)
	}

	visited := 0
	ix.Each(func(keys.Tuple, []int) bool {
		visited++
		return visited < 3
	})
	assert.Equal(t, 3, visited, "Each stops when fn returns false")
}
