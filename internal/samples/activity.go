package samples

import (
	"strconv"
	"time"

	"github.com/paveg/linq/internal/dataset"
	"github.com/paveg/linq/internal/keys"
	"github.com/paveg/linq/internal/query"
	"github.com/shopspring/decimal"
)

type cityStats struct {
	City             string
	AverageSum       decimal.Decimal
	AverageIntensity float64
}

func customerCity(c dataset.Customer) string { return c.City }

func statsOf(g *query.Group[string, dataset.Customer]) cityStats {
	total := query.Aggregate(g.Items(), decimal.Zero, func(sum decimal.Decimal, c dataset.Customer) decimal.Decimal {
		return sum.Add(orderSum(c))
	})
	return cityStats{
		City:             g.Key(),
		AverageSum:       total.Div(decimal.NewFromInt(int64(g.Len()))).Round(2),
		AverageIntensity: query.AverageByOr(g.Items(), func(c dataset.Customer) int { return len(c.Orders) }, 0),
	}
}

func cityAverages(env *Env) error {
	dump(env, query.Select(query.GroupBy(query.From(env.Data.Customers), customerCity), statsOf))
	return nil
}

// cityAveragesLookup indexes the customers eagerly and reads the groups back.
func cityAveragesLookup(env *Env) error {
	lookup := query.ToLookup(query.From(env.Data.Customers), customerCity)
	dump(env, query.Select(lookup.Groups(), statsOf))
	return nil
}

type yearMonth struct {
	Year  int
	Month time.Month
}

func orderMonth(o dataset.Order) time.Month { return o.OrderDate.Month() }
func orderYear(o dataset.Order) int          { return o.OrderDate.Year() }

func customerActivity(env *Env) error {
	for c := range prepare(env, query.From(env.Data.Customers)).All() {
		orders := query.From(c.Orders)
		env.Out.Line("---%s---", c.CompanyName)
		for g := range query.GroupBy(orders, orderMonth).All() {
			env.Out.Line("By Month: %s : %d", g.Key(), g.Len())
		}
		for g := range query.GroupBy(orders, orderYear).All() {
			env.Out.Line("By Years: %d : %d", g.Key(), g.Len())
		}
		byYearMonth := query.GroupBy(orders, func(o dataset.Order) yearMonth {
			return yearMonth{Year: o.OrderDate.Year(), Month: o.OrderDate.Month()}
		})
		for g := range byYearMonth.All() {
			env.Out.Line("By Year and Month: %d - %s : %d", g.Key().Year, g.Key().Month, g.Len())
		}
	}
	return nil
}

var orderPeriod = keys.MustSelector(
	keys.IntField("Year", func(o dataset.Order) int64 { return int64(o.OrderDate.Year()) }),
	keys.StringField("Month", func(o dataset.Order) string { return o.OrderDate.Month().String() }),
)

type periodCount struct {
	Period string
	Orders int
}

type customerPeriods struct {
	Name          string
	Monthly       []periodCount
	Yearly        []periodCount
	YearlyMonthly []periodCount
}

func countPeriods[K any](groups query.Sequence[*query.Group[K, dataset.Order]], period func(K) string) []periodCount {
	return query.ToSlice(query.Select(groups, func(g *query.Group[K, dataset.Order]) periodCount {
		return periodCount{Period: period(g.Key()), Orders: g.Len()}
	}))
}

func periodsOf(c dataset.Customer) (customerPeriods, error) {
	orders := query.From(c.Orders)
	byPeriod, err := query.GroupByTuple(orders, orderPeriod)
	if err != nil {
		return customerPeriods{}, err
	}
	return customerPeriods{
		Name:    c.CompanyName,
		Monthly: countPeriods(query.GroupBy(orders, orderMonth), time.Month.String),
		Yearly:  countPeriods(query.GroupBy(orders, orderYear), strconv.Itoa),
		YearlyMonthly: countPeriods(byPeriod, func(k keys.Tuple) string {
			return k[0].String() + " - " + k[1].String()
		}),
	}, nil
}

// customerActivityTuple groups by (Year, Month) with a composite key
// selector.
func customerActivityTuple(env *Env) error {
	for c := range prepare(env, query.From(env.Data.Customers)).All() {
		p, err := periodsOf(c)
		if err != nil {
			return err
		}
		env.Out.Line("---%s---", p.Name)
		for _, m := range p.Monthly {
			env.Out.Line("By Month: %s : %d", m.Period, m.Orders)
		}
		for _, y := range p.Yearly {
			env.Out.Line("By Years: %s : %d", y.Period, y.Orders)
		}
		for _, ym := range p.YearlyMonthly {
			env.Out.Line("By Year and Month: %s : %d", ym.Period, ym.Orders)
		}
	}
	return nil
}
