// Package testutil provides shared fixtures and assertions for tests of the
// query engine and its collaborators.
package testutil

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/linq/internal/config"
	"github.com/paveg/linq/internal/dataset"
	"github.com/paveg/linq/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultCustomerCount = 8
	defaultOrderCount    = 2
	defaultSupplierCount = 4
	defaultProductCount  = 8
)

// TestMemoryContext provides an Arrow allocator for columnar tests.
type TestMemoryContext struct {
	Allocator memory.Allocator
	cleanup   func()
}

// Release performs cleanup of the memory context.
func (tmc *TestMemoryContext) Release() {
	if tmc.cleanup != nil {
		tmc.cleanup()
	}
}

// SetupMemoryTest creates an allocator for Arrow backed tests.
//
//	mem := testutil.SetupMemoryTest(t)
//	defer mem.Release()
func SetupMemoryTest(tb testing.TB) *TestMemoryContext {
	tb.Helper()
	return &TestMemoryContext{
		Allocator: memory.NewGoAllocator(),
		cleanup:   func() {},
	}
}

// DataSourceOption configures CreateTestDataSource.
type DataSourceOption func(*dataset.Sizes)

// WithCustomers sets the number of customers.
func WithCustomers(n int) DataSourceOption {
	return func(s *dataset.Sizes) { s.Customers = n }
}

// WithOrdersPerCustomer sets the number of orders of every customer.
func WithOrdersPerCustomer(n int) DataSourceOption {
	return func(s *dataset.Sizes) { s.OrdersPerCustomer = n }
}

// WithSuppliers sets the number of suppliers.
func WithSuppliers(n int) DataSourceOption {
	return func(s *dataset.Sizes) { s.Suppliers = n }
}

// WithProducts sets the number of products.
func WithProducts(n int) DataSourceOption {
	return func(s *dataset.Sizes) { s.Products = n }
}

// CreateTestDataSource builds a deterministic synthetic data set. Without
// options it holds 8 customers with 2 orders each, 4 suppliers and 8
// products.
func CreateTestDataSource(tb testing.TB, opts ...DataSourceOption) *dataset.DataSource {
	tb.Helper()
	sizes := dataset.Sizes{
		Customers:         defaultCustomerCount,
		OrdersPerCustomer: defaultOrderCount,
		Suppliers:         defaultSupplierCount,
		Products:          defaultProductCount,
	}
	for _, opt := range opts {
		opt(&sizes)
	}
	ds := dataset.Synthetic(sizes)
	require.NoError(tb, ds.Validate())
	return ds
}

// LoadBuiltinDataSource loads the embedded sample data set.
func LoadBuiltinDataSource(tb testing.TB) *dataset.DataSource {
	tb.Helper()
	ds, err := dataset.Load()
	require.NoError(tb, err)
	return ds
}

// WithJoinOptimization sets the global join strategy for the rest of the
// test and restores the previous configuration on cleanup.
func WithJoinOptimization(tb testing.TB, enabled bool) {
	tb.Helper()
	prev := config.GetGlobalConfig()
	tb.Cleanup(func() { config.SetGlobalConfig(prev) })

	cfg := prev
	cfg.JoinOptimization = enabled
	config.SetGlobalConfig(cfg)
}

// AssertSequence checks that s yields expected, twice, proving that the
// sequence re-executes from its source on every enumeration.
func AssertSequence[T any](t *testing.T, expected []T, s query.Sequence[T]) {
	t.Helper()
	first := query.ToSlice(s)
	second := query.ToSlice(s)
	if len(expected) == 0 {
		assert.Empty(t, first, "first enumeration")
		assert.Empty(t, second, "second enumeration")
		return
	}
	assert.Equal(t, expected, first, "first enumeration")
	assert.Equal(t, expected, second, "second enumeration")
}

// AssertPlan compares the rendered plan of s with the given lines.
func AssertPlan[T any](t *testing.T, s query.Sequence[T], lines ...string) {
	t.Helper()
	expected := ""
	for _, line := range lines {
		expected += line + "\n"
	}
	assert.Equal(t, expected, s.Explain())
}
