package main

import (
	"fmt"

	"github.com/paveg/linq/internal/config"
	"github.com/paveg/linq/internal/dataset"
	"github.com/paveg/linq/internal/keys"
	"github.com/paveg/linq/internal/monitoring"
	"github.com/paveg/linq/internal/query"
	"github.com/spf13/cobra"
)

func newBenchCmd(a *app) *cobra.Command {
	sizes := dataset.Sizes{Customers: 2000, OrdersPerCustomer: 3, Suppliers: 400}
	var iterations int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare the hash and nested-loop join strategies on synthetic data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.bench(sizes, iterations)
		},
	}
	cmd.Flags().IntVar(&sizes.Customers, "customers", sizes.Customers, "number of synthetic customers")
	cmd.Flags().IntVar(&sizes.Suppliers, "suppliers", sizes.Suppliers, "number of synthetic suppliers")
	cmd.Flags().IntVar(&iterations, "iterations", 5, "iterations per scenario")
	return cmd
}

// setJoinOptimization switches the join strategy of every join enumerated
// afterwards.
func (a *app) setJoinOptimization(enabled bool) {
	cfg := config.GetGlobalConfig()
	cfg.JoinOptimization = enabled
	config.SetGlobalConfig(cfg)
	a.cfg = cfg
}

type benchLocation struct {
	Country string
	City    string
}

var (
	benchCustomerPlace = keys.MustSelector(
		keys.StringField("Country", func(c dataset.Customer) string { return c.Country }),
		keys.StringField("City", func(c dataset.Customer) string { return c.City }),
	)
	benchSupplierPlace = keys.MustSelector(
		keys.StringField("Country", func(s dataset.Supplier) string { return s.Country }),
		keys.StringField("City", func(s dataset.Supplier) string { return s.City }),
	)
)

func (a *app) bench(sizes dataset.Sizes, iterations int) error {
	ds := dataset.Synthetic(sizes)
	customers := query.From(ds.Customers)
	suppliers := query.From(ds.Suppliers)
	customerLoc := func(c dataset.Customer) benchLocation { return benchLocation{c.Country, c.City} }
	supplierLoc := func(s dataset.Supplier) benchLocation { return benchLocation{s.Country, s.City} }
	pair := func(c dataset.Customer, s dataset.Supplier) string { return c.ID + "/" + s.Name }

	// every join scenario must find the same number of pairs
	expected := -1
	check := func(n int) error {
		if expected < 0 {
			expected = n
		}
		if n != expected {
			return fmt.Errorf("join produced %d pairs, expected %d", n, expected)
		}
		return nil
	}

	tupleJoin, err := query.JoinTuple(customers, suppliers, benchCustomerPlace, benchSupplierPlace, pair)
	if err != nil {
		return err
	}

	previous := config.GetGlobalConfig().JoinOptimization
	defer a.setJoinOptimization(previous)

	suite := monitoring.NewSuite(fmt.Sprintf("Join strategies: %d customers x %d suppliers", sizes.Customers, sizes.Suppliers))
	suite.Add(monitoring.Scenario{
		Name:       "hash join",
		Iterations: iterations,
		Setup:      func() { a.setJoinOptimization(true) },
		Operation: func() error {
			return check(query.Count(query.Join(customers, suppliers, customerLoc, supplierLoc, pair)))
		},
	})
	suite.Add(monitoring.Scenario{
		Name:       "nested-loop join",
		Iterations: iterations,
		Operation: func() error {
			return check(query.Count(query.NestedLoopJoin(customers, suppliers, customerLoc, supplierLoc, pair)))
		},
	})
	suite.Add(monitoring.Scenario{
		Name:       "hash join (tuple keys)",
		Iterations: iterations,
		Setup:      func() { a.setJoinOptimization(true) },
		Operation:  func() error { return check(query.Count(tupleJoin)) },
	})
	suite.Add(monitoring.Scenario{
		Name:       "nested-loop join (tuple keys)",
		Iterations: iterations,
		Setup:      func() { a.setJoinOptimization(false) },
		Teardown:   func() { a.setJoinOptimization(true) },
		Operation:  func() error { return check(query.Count(tupleJoin)) },
	})

	a.logger.Info().
		Int("customers", sizes.Customers).
		Int("suppliers", sizes.Suppliers).
		Int("iterations", iterations).
		Msg("running join benchmark")

	suite.Run()
	fmt.Fprint(a.out, suite.GenerateReport())

	for _, r := range suite.Results() {
		if !r.Succeeded() {
			return fmt.Errorf("scenario %s failed: %s", r.Name, r.Err)
		}
	}
	return nil
}
