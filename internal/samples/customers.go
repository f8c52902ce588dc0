package samples

import (
	"strings"
	"time"
	"unicode"

	"github.com/paveg/linq/internal/dataset"
	"github.com/paveg/linq/internal/keys"
	"github.com/paveg/linq/internal/query"
	"github.com/shopspring/decimal"
)

func orderSum(c dataset.Customer) decimal.Decimal {
	return query.Aggregate(query.From(c.Orders), decimal.Zero, func(sum decimal.Decimal, o dataset.Order) decimal.Decimal {
		return sum.Add(o.Total)
	})
}

// firstOrderDate is the zero time for customers without orders.
func firstOrderDate(c dataset.Customer) time.Time {
	dates := query.Select(query.From(c.Orders), func(o dataset.Order) time.Time { return o.OrderDate })
	return query.MinFuncOr(dates, time.Time.Compare, time.Time{})
}

type customerTotal struct {
	CustomerID string
	Total      decimal.Decimal
}

func totalOf(c dataset.Customer) customerTotal {
	return customerTotal{CustomerID: c.ID, Total: orderSum(c)}
}

func customersOverTotal(limit decimal.Decimal) func(*Env) error {
	return func(env *Env) error {
		big := query.From(env.Data.Customers).Where(func(c dataset.Customer) bool {
			return orderSum(c).GreaterThan(limit)
		})
		dump(env, query.Select(big, totalOf))
		return nil
	}
}

// customersOverTotalProjected computes each sum once and filters the
// projection.
func customersOverTotalProjected(limit decimal.Decimal) func(*Env) error {
	return func(env *Env) error {
		totals := query.Select(query.From(env.Data.Customers), totalOf)
		dump(env, totals.Where(func(t customerTotal) bool { return t.Total.GreaterThan(limit) }))
		return nil
	}
}

type location struct {
	Country string
	City    string
}

func customerLocation(c dataset.Customer) location { return location{c.Country, c.City} }
func supplierLocation(s dataset.Supplier) location { return location{s.Country, s.City} }

type customerSupplier struct {
	CustomerID      string
	Country         string
	City            string
	SupplierName    string
	SupplierCountry string
	SupplierCity    string
}

func customersWithLocalSuppliers(env *Env) error {
	customers := query.From(env.Data.Customers)
	suppliers := query.From(env.Data.Suppliers)

	pairs := query.Join(customers, suppliers, customerLocation, supplierLocation,
		func(c dataset.Customer, s dataset.Supplier) customerSupplier {
			return customerSupplier{
				CustomerID:      c.ID,
				Country:         c.Country,
				City:            c.City,
				SupplierName:    s.Name,
				SupplierCountry: s.Country,
				SupplierCity:    s.City,
			}
		})
	dump(env, pairs)

	env.Out.Line("Grouped Version")
	matched := query.Join(customers, suppliers, customerLocation, supplierLocation,
		func(c dataset.Customer, _ dataset.Supplier) dataset.Customer { return c })
	for g := range prepare(env, query.GroupBy(matched, customerLocation)).All() {
		names := query.ToSlice(query.Select(g.Items(), func(c dataset.Customer) string { return c.CompanyName }))
		env.Out.Line("Country=%s  City=%s  Customers=%s", g.Key().Country, g.Key().City, strings.Join(names, ", "))
	}
	return nil
}

var (
	customerPlace = keys.MustSelector(
		keys.StringField("City", func(c dataset.Customer) string { return c.City }),
		keys.StringField("Country", func(c dataset.Customer) string { return c.Country }),
	)
	supplierPlace = keys.MustSelector(
		keys.StringField("City", func(s dataset.Supplier) string { return s.City }),
		keys.StringField("Country", func(s dataset.Supplier) string { return s.Country }),
	)
)

type customerWithSupplier struct {
	Customer dataset.Customer
	Supplier dataset.Supplier
}

type customerWithSuppliers struct {
	Customer  dataset.Customer
	Suppliers []dataset.Supplier
}

// customersWithLocalSuppliersTuple runs the same join over composite
// (City, Country) keys and adds the group join.
func customersWithLocalSuppliersTuple(env *Env) error {
	customers := query.From(env.Data.Customers)
	suppliers := query.From(env.Data.Suppliers)

	pairs, err := query.JoinTuple(customers, suppliers, customerPlace, supplierPlace,
		func(c dataset.Customer, s dataset.Supplier) customerWithSupplier {
			return customerWithSupplier{Customer: c, Supplier: s}
		})
	if err != nil {
		return err
	}
	dump(env, pairs)

	env.Out.Line("Grouped Version")
	grouped, err := query.GroupJoinTuple(customers, suppliers, customerPlace, supplierPlace,
		func(c dataset.Customer, g *query.Group[keys.Tuple, dataset.Supplier]) customerWithSuppliers {
			return customerWithSuppliers{Customer: c, Suppliers: g.Elements()}
		})
	if err != nil {
		return err
	}
	dump(env, grouped)
	return nil
}

type customerPlaceRow struct {
	CustomerID string
	City       string
	Country    string
}

func placeOf(c dataset.Customer) customerPlaceRow {
	return customerPlaceRow{CustomerID: c.ID, City: c.City, Country: c.Country}
}

func customersWithLargeOrder(limit decimal.Decimal) func(*Env) error {
	return func(env *Env) error {
		matching := query.From(env.Data.Customers).Where(func(c dataset.Customer) bool {
			return query.AnyWhere(query.From(c.Orders), func(o dataset.Order) bool { return o.Total.GreaterThan(limit) })
		})
		dump(env, query.Select(matching, placeOf))
		return nil
	}
}

// customersWithLargeOrderFlat flattens the large orders back to their
// customers and removes the repeats.
func customersWithLargeOrderFlat(limit decimal.Decimal) func(*Env) error {
	return func(env *Env) error {
		owners := query.SelectMany(query.From(env.Data.Customers), func(c dataset.Customer) query.Sequence[dataset.Customer] {
			large := query.From(c.Orders).Where(func(o dataset.Order) bool { return o.Total.GreaterThan(limit) })
			return query.Select(large, func(dataset.Order) dataset.Customer { return c })
		})
		unique := query.DistinctBy(owners, func(c dataset.Customer) string { return c.ID })
		dump(env, query.Select(unique, placeOf))
		return nil
	}
}

type firstOrder struct {
	CustomerID string
	FirstOrder time.Time
}

func firstOrderDates(env *Env) error {
	firsts := query.Select(query.From(env.Data.Customers), func(c dataset.Customer) firstOrder {
		first := query.MinByOr(query.From(c.Orders), func(o dataset.Order) int64 { return o.OrderDate.UnixNano() }, dataset.Order{})
		return firstOrder{CustomerID: c.ID, FirstOrder: first.OrderDate}
	})
	dump(env, firsts)
	return nil
}

func firstOrderDatesMin(env *Env) error {
	firsts := query.Select(query.From(env.Data.Customers), func(c dataset.Customer) firstOrder {
		return firstOrder{CustomerID: c.ID, FirstOrder: firstOrderDate(c)}
	})
	dump(env, firsts)
	return nil
}

type customerSpending struct {
	Name  string
	Year  int
	Month time.Month
	Total decimal.Decimal
}

func spendingOf(c dataset.Customer) customerSpending {
	first := firstOrderDate(c)
	return customerSpending{Name: c.CompanyName, Year: first.Year(), Month: first.Month(), Total: orderSum(c)}
}

var (
	bySpendingTotal = query.KeyFunc(func(s customerSpending) decimal.Decimal { return s.Total }, decimal.Decimal.Cmp, query.Descending).As("Total")
	bySpendingName  = query.Asc(func(s customerSpending) string { return s.Name }).As("Name")
)

func spendingYear(s customerSpending) int         { return s.Year }
func spendingMonth(s customerSpending) time.Month { return s.Month }

func customersBySpending(env *Env) error {
	spending := query.Select(query.From(env.Data.Customers), spendingOf)
	sorted := query.SortBy(spending,
		bySpendingTotal,
		bySpendingName,
		query.Asc(spendingYear).As("Year"),
		query.Asc(spendingMonth).As("Month"),
	)
	dump(env, sorted.Sequence)
	return nil
}

func customersByName(env *Env) error {
	spending := query.Select(query.From(env.Data.Customers), spendingOf)
	byName := query.OrderBy(spending, func(s customerSpending) string { return s.Name })
	sorted := query.ThenBy(query.ThenBy(byName, spendingYear), spendingMonth).Then(bySpendingTotal)
	dump(env, sorted.Sequence)
	return nil
}

func digitsOnly(s string) bool {
	return query.All(query.From([]rune(s)), unicode.IsDigit)
}

// incompleteContact matches customers with a non-numeric postal code, no
// region or a phone without an operator code.
func incompleteContact(hasOperatorCode func(phone string) bool) func(dataset.Customer) bool {
	return func(c dataset.Customer) bool {
		return (c.PostalCode != "" && !digitsOnly(c.PostalCode)) || c.Region == "" || !hasOperatorCode(c.Phone)
	}
}

func phoneStartsWithCode(phone string) bool { return strings.HasPrefix(phone, "(") }
func phoneContainsCode(phone string) bool   { return strings.ContainsRune(phone, '(') }

type contact struct {
	Name       string
	PostalCode string
	Region     string
	Phone      string
}

func incompleteContacts(env *Env) error {
	matching := query.From(env.Data.Customers).Where(incompleteContact(phoneStartsWithCode))
	dump(env, query.Select(matching, func(c dataset.Customer) contact {
		return contact{Name: c.CompanyName, PostalCode: c.PostalCode, Region: c.Region, Phone: c.Phone}
	}))
	return nil
}

func incompleteContactsAnywhere(env *Env) error {
	dump(env, query.From(env.Data.Customers).Where(incompleteContact(phoneContainsCode)))
	return nil
}
