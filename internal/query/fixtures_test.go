package query

import (
	"iter"
	"testing"

	"github.com/paveg/linq/internal/config"
)

type testOrder struct {
	ID    int
	Total int
}

type testCustomer struct {
	ID      int
	Country string
	City    string
	Orders  []testOrder
}

type testSupplier struct {
	Name    string
	Country string
	City    string
}

type testProduct struct {
	Name     string
	Category string
	Price    float64
	InStock  bool
}

func sampleCustomers() []testCustomer {
	return []testCustomer{
		{ID: 1, Country: "Germany", City: "Berlin", Orders: []testOrder{{ID: 10, Total: 100}, {ID: 11, Total: 250}}},
		{ID: 2, Country: "Mexico", City: "México D.F.", Orders: []testOrder{}},
		{ID: 3, Country: "UK", City: "London", Orders: []testOrder{{ID: 30, Total: 900}}},
	}
}

func sampleSuppliers() []testSupplier {
	return []testSupplier{
		{Name: "Exotic Liquids", Country: "UK", City: "London"},
		{Name: "Heli Süßwaren", Country: "Germany", City: "Berlin"},
		{Name: "Tokyo Traders", Country: "Japan", City: "Tokyo"},
		{Name: "Plutzer", Country: "Germany", City: "Berlin"},
	}
}

func sampleProducts() []testProduct {
	return []testProduct{
		{Name: "Chai", Category: "Beverages", Price: 18, InStock: true},
		{Name: "Aniseed Syrup", Category: "Condiments", Price: 10, InStock: false},
		{Name: "Chang", Category: "Beverages", Price: 19, InStock: true},
		{Name: "Ikura", Category: "Seafood", Price: 31, InStock: false},
		{Name: "Konbu", Category: "Seafood", Price: 6, InStock: true},
		{Name: "Guaraná", Category: "Beverages", Price: 4.5, InStock: false},
	}
}

// withJoinOptimization runs fn under the given join strategy and restores the
// previous global configuration afterwards.
func withJoinOptimization(tb testing.TB, enabled bool, fn func()) {
	tb.Helper()
	prev := config.GetGlobalConfig()
	cfg := prev
	cfg.JoinOptimization = enabled
	config.SetGlobalConfig(cfg)
	defer config.SetGlobalConfig(prev)
	fn()
}

// countingSource returns a sequence over items and a pointer to the number of
// elements it has produced so far.
func countingSource[T any](items []T) (Sequence[T], *int) {
	pulled := 0
	return FromFunc(func() iter.Seq[T] {
		return func(yield func(T) bool) {
			for _, v := range items {
				pulled++
				if !yield(v) {
					return
				}
			}
		}
	}), &pulled
}
