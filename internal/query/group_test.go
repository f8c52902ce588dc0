package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceTier(p testProduct) string {
	switch {
	case p.Price <= 10:
		return "low"
	case p.Price <= 30:
		return "average"
	default:
		return "expensive"
	}
}

func groupKeys[K, T any](s Sequence[*Group[K, T]]) []K {
	return ToSlice(Select(s, func(g *Group[K, T]) K { return g.Key() }))
}

func TestGroupBy(t *testing.T) {
	t.Run("first-occurrence order", func(t *testing.T) {
		words := Just("blueberry", "chimpanzee", "abacus", "banana", "apple", "cheese")
		groups := GroupBy(words, func(w string) string { return w[:1] })

		assert.Equal(t, []string{"b", "c", "a"}, groupKeys(groups))
		got := ToSlice(groups)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"blueberry", "banana"}, got[0].Elements())
		assert.Equal(t, []string{"chimpanzee", "cheese"}, got[1].Elements())
		assert.Equal(t, []string{"abacus", "apple"}, got[2].Elements())
		assert.Equal(t, "b: 2 elements", got[0].String())
	})

	t.Run("computed price tiers", func(t *testing.T) {
		products := From([]testProduct{{Name: "a", Price: 5}, {Name: "b", Price: 15}, {Name: "c", Price: 35}})
		assert.Equal(t, []string{"low", "average", "expensive"}, groupKeys(GroupBy(products, priceTier)))
	})

	t.Run("tiers follow first occurrence, not key value", func(t *testing.T) {
		products := From([]testProduct{{Price: 35}, {Price: 5}, {Price: 40}, {Price: 15}})
		assert.Equal(t, []string{"expensive", "low", "average"}, groupKeys(GroupBy(products, priceTier)))
	})

	t.Run("partition law", func(t *testing.T) {
		input := []int{5, 4, 1, 3, 9, 8, 6, 7, 2, 0, 5, 5}
		groups := ToSlice(GroupBy(From(input), func(n int) int { return n % 3 }))

		var flattened []int
		for _, g := range groups {
			for _, v := range g.Elements() {
				assert.Equal(t, g.Key(), v%3)
			}
			flattened = append(flattened, g.Elements()...)
		}
		assert.ElementsMatch(t, input, flattened)

		regrouped := ToSlice(GroupBy(From(flattened), func(n int) int { return n % 3 }))
		require.Len(t, regrouped, len(groups))
		for i := range groups {
			assert.Equal(t, groups[i].Elements(), regrouped[i].Elements())
		}
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ToSlice(GroupBy(Empty[int](), func(n int) int { return n })))
	})

	t.Run("deferred and re-grouped per enumeration", func(t *testing.T) {
		items := []int{1, 2, 3}
		groups := GroupBy(From(items), func(n int) bool { return n > 1 })
		assert.Equal(t, []bool{false, true}, groupKeys(groups))
		items[0] = 4
		assert.Equal(t, []bool{true}, groupKeys(groups))
	})
}

func TestGroupByInto(t *testing.T) {
	groups := ToSlice(GroupByInto(From(sampleProducts()),
		func(p testProduct) string { return p.Category },
		func(p testProduct) string { return p.Name }))

	require.Len(t, groups, 3)
	assert.Equal(t, "Beverages", groups[0].Key())
	assert.Equal(t, []string{"Chai", "Chang", "Guaraná"}, groups[0].Elements())
	assert.Equal(t, []string{"Aniseed Syrup"}, groups[1].Elements())
	assert.Equal(t, 2, groups[2].Len())
}

func TestSubGroupBy(t *testing.T) {
	type stockGroup struct {
		InStock  bool
		Products []string
	}
	type categoryGroup struct {
		Category string
		Stock    []stockGroup
	}

	nested := Select(GroupBy(From(sampleProducts()), func(p testProduct) string { return p.Category }),
		func(g *Group[string, testProduct]) categoryGroup {
			stock := Select(SubGroupBy(g, func(p testProduct) bool { return p.InStock }),
				func(sg *Group[bool, testProduct]) stockGroup {
					names := ToSlice(Select(sg.Items(), func(p testProduct) string { return p.Name }))
					return stockGroup{InStock: sg.Key(), Products: names}
				})
			return categoryGroup{Category: g.Key(), Stock: ToSlice(stock)}
		})

	expected := []categoryGroup{
		{"Beverages", []stockGroup{{true, []string{"Chai", "Chang"}}, {false, []string{"Guaraná"}}}},
		{"Condiments", []stockGroup{{false, []string{"Aniseed Syrup"}}}},
		{"Seafood", []stockGroup{{false, []string{"Ikura"}}, {true, []string{"Konbu"}}}},
	}
	assert.Equal(t, expected, ToSlice(nested))
}

func TestLookup(t *testing.T) {
	lookup := ToLookup(From(sampleProducts()), func(p testProduct) string { return p.Category })

	assert.Equal(t, 3, lookup.Len())
	assert.True(t, lookup.Contains("Seafood"))
	assert.False(t, lookup.Contains("Produce"))
	assert.Nil(t, lookup.Get("Produce"))
	assert.Len(t, lookup.Get("Beverages"), 3)
	assert.Equal(t, []string{"Beverages", "Condiments", "Seafood"}, groupKeys(lookup.Groups()))
}

func TestGroup_Items(t *testing.T) {
	g := NewGroup("k", []int{1, 2, 3})
	assert.Equal(t, "k", g.Key())
	assert.Equal(t, 6, Sum(g.Items()))
	assert.Equal(t, "Group(k)", g.Items().Plan().String())
}
