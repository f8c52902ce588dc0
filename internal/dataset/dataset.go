// Package dataset holds the trading company data the sample queries run
// against: customers with their orders, products and suppliers.
package dataset

import (
	_ "embed"
	"fmt"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed dataset.yaml
var embedded []byte

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Money fields are validated through their float value.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// DataSource is an in-memory data set. Slices are shared by every query that
// reads them and must not be modified while a query runs.
type DataSource struct {
	Customers []Customer `yaml:"customers" validate:"dive"`
	Products  []Product  `yaml:"products" validate:"dive"`
	Suppliers []Supplier `yaml:"suppliers" validate:"dive"`
}

// Load returns the built-in data set.
func Load() (*DataSource, error) {
	ds, err := Parse(embedded)
	if err != nil {
		return nil, fmt.Errorf("built-in dataset: %w", err)
	}
	return ds, nil
}

// LoadFile reads a data set from a YAML file. An empty path loads the
// built-in data set.
func LoadFile(path string) (*DataSource, error) {
	if path == "" {
		return Load()
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is user-supplied by design
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes and validates a YAML data set.
func Parse(data []byte) (*DataSource, error) {
	var ds DataSource
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks required fields, non-negative amounts and unique ids.
func (ds *DataSource) Validate() error {
	if err := validate.Struct(ds); err != nil {
		return fmt.Errorf("invalid dataset: %w", err)
	}
	seen := make(map[string]bool, len(ds.Customers))
	for _, c := range ds.Customers {
		if seen[c.ID] {
			return fmt.Errorf("invalid dataset: duplicate customer id %s", c.ID)
		}
		seen[c.ID] = true
	}
	products := make(map[int]bool, len(ds.Products))
	for _, p := range ds.Products {
		if products[p.ID] {
			return fmt.Errorf("invalid dataset: duplicate product id %d", p.ID)
		}
		products[p.ID] = true
	}
	return nil
}

// Customer returns the customer with the given id.
func (ds *DataSource) Customer(id string) (Customer, bool) {
	for _, c := range ds.Customers {
		if c.ID == id {
			return c, true
		}
	}
	return Customer{}, false
}
