package dataset

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var syntheticPlaces = []struct{ city, country string }{
	{"Berlin", "Germany"},
	{"London", "UK"},
	{"Paris", "France"},
	{"Madrid", "Spain"},
	{"Boise", "USA"},
	{"Sao Paulo", "Brazil"},
	{"Stockholm", "Sweden"},
	{"Tokyo", "Japan"},
}

var syntheticCategories = []string{"Beverages", "Condiments", "Seafood", "Dairy Products"}

// Sizes controls the shape of a synthetic data set.
type Sizes struct {
	Customers         int
	OrdersPerCustomer int
	Suppliers         int
	Products          int
}

// Synthetic generates a deterministic data set of the requested size.
// Customers and suppliers cycle through a fixed list of locations, so joins
// on (Country, City) match roughly Customers*Suppliers/8 pairs.
func Synthetic(sizes Sizes) *DataSource {
	base := time.Date(1996, time.July, 4, 0, 0, 0, 0, time.UTC)
	ds := &DataSource{
		Customers: make([]Customer, sizes.Customers),
		Suppliers: make([]Supplier, sizes.Suppliers),
		Products:  make([]Product, sizes.Products),
	}

	orderID := 10000
	for i := range ds.Customers {
		place := syntheticPlaces[i%len(syntheticPlaces)]
		c := Customer{
			ID:          fmt.Sprintf("C%05d", i),
			CompanyName: fmt.Sprintf("Customer %d", i),
			Address:     fmt.Sprintf("%d Main St.", i+1),
			City:        place.city,
			Country:     place.country,
			PostalCode:  fmt.Sprintf("%05d", 10000+i),
			Phone:       fmt.Sprintf("(%d) 555-%04d", 100+i%900, i%10000),
			Orders:      make([]Order, sizes.OrdersPerCustomer),
		}
		for j := range c.Orders {
			c.Orders[j] = Order{
				ID:        orderID,
				OrderDate: base.AddDate(0, 0, (i*7+j*31)%730),
				Total:     decimal.New(int64((i*37+j*113)%500000+100), -2),
			}
			orderID++
		}
		ds.Customers[i] = c
	}

	for i := range ds.Suppliers {
		place := syntheticPlaces[i%len(syntheticPlaces)]
		ds.Suppliers[i] = Supplier{
			Name:    fmt.Sprintf("Supplier %d", i),
			Address: fmt.Sprintf("%d Harbour Rd.", i+1),
			City:    place.city,
			Country: place.country,
		}
	}

	for i := range ds.Products {
		ds.Products[i] = Product{
			ID:           i + 1,
			Name:         fmt.Sprintf("Product %d", i+1),
			Category:     syntheticCategories[i%len(syntheticCategories)],
			UnitPrice:    decimal.New(int64((i*791)%30000+50), -2),
			UnitsInStock: (i * 13) % 40,
		}
	}

	return ds
}
