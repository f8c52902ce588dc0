package samples

import (
	"fmt"

	"github.com/paveg/linq/internal/dataset"
	"github.com/paveg/linq/internal/query"
	"github.com/shopspring/decimal"
)

var byUnitPrice = query.KeyFunc(func(p dataset.Product) decimal.Decimal { return p.UnitPrice }, decimal.Decimal.Cmp, query.Ascending).As("UnitPrice")

func productCategory(p dataset.Product) string { return p.Category }

func productPriceLine(p dataset.Product) string {
	return fmt.Sprintf("%s - %s", p.Name, p.UnitPrice.StringFixed(2))
}

func productsByCategoryAndStock(env *Env) error {
	categories := query.GroupBy(query.From(env.Data.Products), productCategory)
	for category := range prepare(env, categories).All() {
		env.Out.Line("---%s----", category.Key())
		for stock := range query.SubGroupBy(category, dataset.Product.InStock).All() {
			env.Out.Line("In stock: %t", stock.Key())
			for p := range query.SortBy(stock.Items(), byUnitPrice).All() {
				env.Out.Line("%s", productPriceLine(p))
			}
		}
	}
	return nil
}

// productsByCategoryAndUnits keeps the raw units count as the inner key, so
// every distinct stock level forms its own group.
func productsByCategoryAndUnits(env *Env) error {
	categories := query.GroupBy(query.From(env.Data.Products), productCategory)
	for category := range prepare(env, categories).All() {
		env.Out.Line("---%s----", category.Key())
		units := query.SubGroupBy(category, func(p dataset.Product) int { return p.UnitsInStock })
		for stock := range units.All() {
			env.Out.Line("Units in stock: %d", stock.Key())
			for p := range query.SortBy(stock.Items(), byUnitPrice).All() {
				env.Out.Line("%s", productPriceLine(p))
			}
		}
	}
	return nil
}

type stockGroup struct {
	InStock  bool
	Products query.Ordered[dataset.Product]
}

type categoryStock struct {
	Category string
	Stock    query.Sequence[stockGroup]
}

// productsByCategoryAndStockNested builds the whole nested result as one
// deferred pipeline before enumerating it.
func productsByCategoryAndStockNested(env *Env) error {
	categories := query.Select(query.GroupBy(query.From(env.Data.Products), productCategory),
		func(g *query.Group[string, dataset.Product]) categoryStock {
			stock := query.Select(query.SubGroupBy(g, dataset.Product.InStock),
				func(sg *query.Group[bool, dataset.Product]) stockGroup {
					return stockGroup{InStock: sg.Key(), Products: query.SortBy(sg.Items(), byUnitPrice)}
				})
			return categoryStock{Category: g.Key(), Stock: stock}
		})

	for category := range prepare(env, categories).All() {
		env.Out.Line("---%s----", category.Category)
		for stock := range category.Stock.All() {
			env.Out.Line("In stock: %t", stock.InStock)
			for p := range stock.Products.All() {
				env.Out.Line("%s", productPriceLine(p))
			}
		}
	}
	return nil
}

var (
	lowPriceLimit     = decimal.NewFromInt(10)
	averagePriceLimit = decimal.NewFromInt(30)
)

// priceTier buckets a product as low (<= 10), average (<= 30) or expensive.
func priceTier(p dataset.Product) string {
	switch {
	case p.UnitPrice.LessThanOrEqual(lowPriceLimit):
		return "low"
	case p.UnitPrice.LessThanOrEqual(averagePriceLimit):
		return "average"
	default:
		return "expensive"
	}
}

func productTierLine(p dataset.Product) string {
	return fmt.Sprintf("%s: %s", p.Name, p.UnitPrice.StringFixed(2))
}

func productsByPriceTier(env *Env) error {
	tiers := query.GroupBy(query.From(env.Data.Products), priceTier)
	for tier := range prepare(env, tiers).All() {
		env.Out.Line("---%s---", tier.Key())
		for _, p := range tier.Elements() {
			env.Out.Line("%s", productTierLine(p))
		}
	}
	return nil
}

func productsByPriceTierInto(env *Env) error {
	tiers := query.GroupByInto(query.From(env.Data.Products), priceTier, productTierLine)
	for tier := range prepare(env, tiers).All() {
		env.Out.Line("---%s---", tier.Key())
		for line := range tier.Items().All() {
			env.Out.Line("%s", line)
		}
	}
	return nil
}
