package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type location struct {
	Country string
	City    string
}

func customerLocation(c testCustomer) location { return location{c.Country, c.City} }
func supplierLocation(s testSupplier) location { return location{s.Country, s.City} }

type pairing struct {
	Customer int
	Supplier string
}

func TestJoin(t *testing.T) {
	for _, optimized := range []bool{true, false} {
		t.Run(fmt.Sprintf("optimized=%v", optimized), func(t *testing.T) {
			withJoinOptimization(t, optimized, func() {
				joined := Join(From(sampleCustomers()), From(sampleSuppliers()),
					customerLocation, supplierLocation,
					func(c testCustomer, s testSupplier) pairing { return pairing{c.ID, s.Name} })

				expected := []pairing{
					{1, "Heli Süßwaren"},
					{1, "Plutzer"},
					{3, "Exotic Liquids"},
				}
				assert.Equal(t, expected, ToSlice(joined))
			})
		})
	}
}

func TestJoin_SizeLaw(t *testing.T) {
	outer := Range(0, 20)
	inner := From([]int{0, 3, 3, 6, 7, 9, 12, 12, 12, 15})
	key := func(n int) int { return n % 5 }

	expected := 0
	for o := range outer.All() {
		expected += CountWhere(inner, func(i int) bool { return key(i) == key(o) })
	}

	joined := Join(outer, inner, key, key, func(o, i int) [2]int { return [2]int{o, i} })
	assert.Equal(t, expected, Count(joined))
}

func TestJoin_StrategiesAgree(t *testing.T) {
	outer := Range(0, 50)
	inner := Select(Range(0, 80), func(n int) int { return n * 7 % 23 })
	key := func(n int) int { return n % 11 }
	result := func(o, i int) [2]int { return [2]int{o, i} }

	reference := ToSlice(NestedLoopJoin(outer, inner, key, key, result))
	require.NotEmpty(t, reference)

	withJoinOptimization(t, true, func() {
		assert.Equal(t, reference, ToSlice(Join(outer, inner, key, key, result)))
	})
	withJoinOptimization(t, false, func() {
		assert.Equal(t, reference, ToSlice(Join(outer, inner, key, key, result)))
	})

	groupResult := func(o int, g *Group[int, int]) []int { return g.Elements() }
	groupReference := ToSlice(NestedLoopGroupJoin(outer, inner, key, key, groupResult))
	assert.Equal(t, groupReference, ToSlice(GroupJoin(outer, inner, key, key, groupResult)))
}

func TestJoin_Lazy(t *testing.T) {
	inner, pulled := countingSource([]int{1, 2, 3})
	id := func(n int) int { return n }

	joined := Join(Empty[int](), inner, id, id, func(o, i int) int { return i })
	assert.Empty(t, ToSlice(joined))
	assert.Equal(t, 0, *pulled, "inner side is not read without outer elements")

	joined = Join(Just(2, 3), inner, id, id, func(o, i int) int { return i })
	assert.Equal(t, []int{2, 3}, ToSlice(joined))
	assert.Equal(t, 3, *pulled, "inner side is indexed once per enumeration")
}

func TestGroupJoin(t *testing.T) {
	for _, optimized := range []bool{true, false} {
		t.Run(fmt.Sprintf("optimized=%v", optimized), func(t *testing.T) {
			withJoinOptimization(t, optimized, func() {
				type result struct {
					Customer  int
					Suppliers []string
				}
				joined := GroupJoin(From(sampleCustomers()), From(sampleSuppliers()),
					customerLocation, supplierLocation,
					func(c testCustomer, g *Group[location, testSupplier]) result {
						names := ToSlice(Select(g.Items(), func(s testSupplier) string { return s.Name }))
						return result{c.ID, names}
					})

				expected := []result{
					{1, []string{"Heli Süßwaren", "Plutzer"}},
					{2, []string{}},
					{3, []string{"Exotic Liquids"}},
				}
				assert.Equal(t, expected, ToSlice(joined))
			})
		})
	}

	t.Run("empty inner yields one empty group per outer element", func(t *testing.T) {
		groups := ToSlice(GroupJoin(From(sampleCustomers()), Empty[testSupplier](),
			customerLocation, supplierLocation,
			func(c testCustomer, g *Group[location, testSupplier]) *Group[location, testSupplier] { return g }))

		require.Len(t, groups, 3)
		for _, g := range groups {
			assert.NotNil(t, g.Elements())
			assert.Equal(t, 0, g.Len())
		}
		assert.Equal(t, location{"UK", "London"}, groups[2].Key())
	})

	t.Run("size equals outer size", func(t *testing.T) {
		outer := Range(0, 13)
		n := Count(GroupJoin(outer, Just(1, 1, 2), func(n int) int { return n }, func(n int) int { return n },
			func(o int, g *Group[int, int]) int { return g.Len() }))
		assert.Equal(t, 13, n)
	})
}

func TestJoin_StopsEarly(t *testing.T) {
	outer, pulled := countingSource([]int{1, 1, 1, 1})
	id := func(n int) int { return n }
	joined := Join(outer, Just(1, 1), id, id, func(o, i int) int { return o })
	assert.Len(t, ToSlice(joined.Take(3)), 3)
	assert.Equal(t, 2, *pulled)
}

func benchmarkJoin(b *testing.B, optimized bool) {
	outer := Range(0, 2000)
	inner := Range(0, 2000)
	key := func(n int) int { return n % 500 }
	result := func(o, i int) int { return o + i }

	withJoinOptimization(b, optimized, func() {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			Count(Join(outer, inner, key, key, result))
		}
	})
}

func BenchmarkJoin_Hash(b *testing.B)       { benchmarkJoin(b, true) }
func BenchmarkJoin_NestedLoop(b *testing.B) { benchmarkJoin(b, false) }
