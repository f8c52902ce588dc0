package dataset

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a single customer order.
type Order struct {
	ID        int             `yaml:"id" validate:"required"`
	OrderDate time.Time       `yaml:"date" validate:"required"`
	Total     decimal.Decimal `yaml:"total" validate:"gte=0"`
}

// Customer is a trading partner together with the orders it placed.
// Region and PostalCode are empty when unknown.
type Customer struct {
	ID          string  `yaml:"id" validate:"required"`
	CompanyName string  `yaml:"company_name" validate:"required"`
	Address     string  `yaml:"address"`
	City        string  `yaml:"city" validate:"required"`
	Region      string  `yaml:"region,omitempty"`
	PostalCode  string  `yaml:"postal_code,omitempty"`
	Country     string  `yaml:"country" validate:"required"`
	Phone       string  `yaml:"phone"`
	Orders      []Order `yaml:"orders,omitempty" validate:"dive"`
}

// Product is a catalogue item.
type Product struct {
	ID           int             `yaml:"id" validate:"required"`
	Name         string          `yaml:"name" validate:"required"`
	Category     string          `yaml:"category" validate:"required"`
	UnitPrice    decimal.Decimal `yaml:"unit_price" validate:"gte=0"`
	UnitsInStock int             `yaml:"units_in_stock" validate:"gte=0"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.UnitsInStock > 0
}

// Supplier delivers products from a location.
type Supplier struct {
	Name    string `yaml:"name" validate:"required"`
	Address string `yaml:"address"`
	City    string `yaml:"city" validate:"required"`
	Country string `yaml:"country" validate:"required"`
}
