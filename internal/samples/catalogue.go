package samples

import "github.com/shopspring/decimal"

const (
	CategoryRestriction = "Restriction Operators"
	CategoryCustomers   = "Customer Queries"
	CategoryProducts    = "Product Queries"
	CategoryStatistics  = "Customer Statistics"
)

// Default returns a registry holding every built-in sample.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister(
		Sample{
			Name:        "linq1",
			Category:    CategoryRestriction,
			Title:       "Where - Task 1",
			Description: "Finds all elements of an array with a value less than 5.",
			Run:         numbersBelowFive,
		},
		Sample{
			Name:        "linq2",
			Category:    CategoryRestriction,
			Title:       "Where - Task 2",
			Description: "Returns all products that are in stock.",
			Run:         productsInStock,
		},
		Sample{
			Name:        "linq001",
			Category:    CategoryCustomers,
			Title:       "Where - Task 001",
			Description: "Returns all customers whose order sum exceeds 100000.",
			Run:         customersOverTotal(decimal.NewFromInt(100000)),
		},
		Sample{
			Name:        "linq001-projected",
			Category:    CategoryCustomers,
			Title:       "Where - Task 001 (projected)",
			Description: "Returns all customers whose order sum exceeds 5000, filtering after the projection.",
			Run:         customersOverTotalProjected(decimal.NewFromInt(5000)),
		},
		Sample{
			Name:        "linq002",
			Category:    CategoryCustomers,
			Title:       "Where - Task 002",
			Description: "Returns customers and suppliers located in the same country and city, then groups the customers by location.",
			Run:         customersWithLocalSuppliers,
		},
		Sample{
			Name:        "linq002-tuple",
			Category:    CategoryCustomers,
			Title:       "Where - Task 002 (composite keys)",
			Description: "Joins and group-joins customers with suppliers on composite (City, Country) keys.",
			Run:         customersWithLocalSuppliersTuple,
		},
		Sample{
			Name:        "linq003",
			Category:    CategoryCustomers,
			Title:       "Where - Task 003",
			Description: "Returns all customers that placed an order over 1000.",
			Run:         customersWithLargeOrder(decimal.NewFromInt(1000)),
		},
		Sample{
			Name:        "linq003-flat",
			Category:    CategoryCustomers,
			Title:       "Where - Task 003 (flattened)",
			Description: "Returns all customers that placed an order over 1000, found through their orders.",
			Run:         customersWithLargeOrderFlat(decimal.NewFromInt(1000)),
		},
		Sample{
			Name:        "linq004",
			Category:    CategoryCustomers,
			Title:       "Where - Task 004",
			Description: "Returns all customers with the date of their first order.",
			Run:         firstOrderDates,
		},
		Sample{
			Name:        "linq004-min",
			Category:    CategoryCustomers,
			Title:       "Where - Task 004 (minimum date)",
			Description: "Returns all customers with the date of their first order, comparing dates directly.",
			Run:         firstOrderDatesMin,
		},
		Sample{
			Name:        "linq005",
			Category:    CategoryCustomers,
			Title:       "Where - Task 005",
			Description: "Returns customers with their first order month, sorted by total spending, name, year and month.",
			Run:         customersBySpending,
		},
		Sample{
			Name:        "linq005-then",
			Category:    CategoryCustomers,
			Title:       "Where - Task 005 (ThenBy)",
			Description: "Returns customers with their first order month, sorted by name, year, month and total spending.",
			Run:         customersByName,
		},
		Sample{
			Name:        "linq006",
			Category:    CategoryCustomers,
			Title:       "Where - Task 006",
			Description: "Returns customers with a non-numeric postal code, no region or a phone that does not start with an operator code.",
			Run:         incompleteContacts,
		},
		Sample{
			Name:        "linq006-anywhere",
			Category:    CategoryCustomers,
			Title:       "Where - Task 006 (operator code anywhere)",
			Description: "Returns customers with a non-numeric postal code, no region or a phone without any operator code.",
			Run:         incompleteContactsAnywhere,
		},
		Sample{
			Name:        "linq007",
			Category:    CategoryProducts,
			Title:       "Where - Task 007",
			Description: "Groups products by category and availability, ordered by price.",
			Run:         productsByCategoryAndStock,
		},
		Sample{
			Name:        "linq007-nested",
			Category:    CategoryProducts,
			Title:       "Where - Task 007 (nested pipeline)",
			Description: "Groups products by category and availability, ordered by price, as one nested pipeline.",
			Run:         productsByCategoryAndStockNested,
		},
		Sample{
			Name:        "linq007-units",
			Category:    CategoryProducts,
			Title:       "Where - Task 007 (units in stock)",
			Description: "Groups products by category and exact units in stock, ordered by price.",
			Run:         productsByCategoryAndUnits,
		},
		Sample{
			Name:        "linq008",
			Category:    CategoryProducts,
			Title:       "Where - Task 008",
			Description: "Groups products into low, average and expensive price tiers.",
			Run:         productsByPriceTier,
		},
		Sample{
			Name:        "linq008-into",
			Category:    CategoryProducts,
			Title:       "Where - Task 008 (element selector)",
			Description: "Groups product descriptions into low, average and expensive price tiers.",
			Run:         productsByPriceTierInto,
		},
		Sample{
			Name:        "linq009",
			Category:    CategoryStatistics,
			Title:       "Where - Task 009",
			Description: "Computes the average order sum and order count of the customers of each city.",
			Run:         cityAverages,
		},
		Sample{
			Name:        "linq009-lookup",
			Category:    CategoryStatistics,
			Title:       "Where - Task 009 (lookup)",
			Description: "Computes the per-city averages from a prebuilt lookup.",
			Run:         cityAveragesLookup,
		},
		Sample{
			Name:        "linq010",
			Category:    CategoryStatistics,
			Title:       "Where - Task 010",
			Description: "Counts customer activity by month, by year and by year and month.",
			Run:         customerActivity,
		},
		Sample{
			Name:        "linq010-tuple",
			Category:    CategoryStatistics,
			Title:       "Where - Task 010 (composite keys)",
			Description: "Counts customer activity by month, by year and by a composite (Year, Month) key.",
			Run:         customerActivityTuple,
		},
	)
	return r
}
