package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	assert.Len(t, ds.Customers, 11)
	assert.Len(t, ds.Products, 15)
	assert.Len(t, ds.Suppliers, 7)

	alfki, ok := ds.Customer("ALFKI")
	require.True(t, ok)
	assert.Equal(t, "Alfreds Futterkiste", alfki.CompanyName)
	assert.Empty(t, alfki.Region)
	require.Len(t, alfki.Orders, 3)
	assert.Equal(t, time.Date(1997, time.August, 25, 0, 0, 0, 0, time.UTC), alfki.Orders[0].OrderDate.UTC())
	assert.True(t, decimal.RequireFromString("878").Equal(alfki.Orders[1].Total))

	paris, ok := ds.Customer("PARIS")
	require.True(t, ok)
	assert.Empty(t, paris.Orders)

	savea, _ := ds.Customer("SAVEA")
	assert.Equal(t, "ID", savea.Region)
	assert.Equal(t, "83720", savea.PostalCode)

	assert.Equal(t, "Aux joyeux ecclésiastiques", ds.Suppliers[4].Name)
	assert.Equal(t, "203, Rue des Francs-Bourgeois", ds.Suppliers[4].Address)

	_, ok = ds.Customer("NOPE")
	assert.False(t, ok)
}

func TestProduct_InStock(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	var out []string
	for _, p := range ds.Products {
		if !p.InStock() {
			out = append(out, p.Name)
		}
	}
	assert.Equal(t, []string{"Chef Anton's Gumbo Mix", "Alice Mutton", "Thüringer Rostbratwurst", "Perth Pasties"}, out)
	assert.True(t, decimal.RequireFromString("263.5").Equal(ds.Products[13].UnitPrice))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "malformed",
			yaml:    "customers: [",
			wantErr: "failed to parse dataset",
		},
		{
			name:    "missing company name",
			yaml:    "customers:\n  - {id: X, city: Berlin, country: Germany}\n",
			wantErr: "CompanyName",
		},
		{
			name:    "negative total",
			yaml:    "customers:\n  - id: X\n    company_name: X\n    city: Berlin\n    country: Germany\n    orders:\n      - {id: 1, date: \"1997-01-01T00:00:00Z\", total: \"-5\"}\n",
			wantErr: "Total",
		},
		{
			name:    "negative stock",
			yaml:    "products:\n  - {id: 1, name: Chai, category: Beverages, unit_price: \"1\", units_in_stock: -1}\n",
			wantErr: "UnitsInStock",
		},
		{
			name:    "duplicate customer",
			yaml:    "customers:\n  - {id: X, company_name: A, city: B, country: C}\n  - {id: X, company_name: A, city: B, country: C}\n",
			wantErr: "duplicate customer id X",
		},
		{
			name:    "duplicate product",
			yaml:    "products:\n  - {id: 1, name: A, category: B, unit_price: \"1\"}\n  - {id: 1, name: A, category: B, unit_price: \"1\"}\n",
			wantErr: "duplicate product id 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("empty path loads the built-in data", func(t *testing.T) {
		ds, err := LoadFile("")
		require.NoError(t, err)
		assert.Len(t, ds.Customers, 11)
	})

	t.Run("custom file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.yaml")
		content := "suppliers:\n  - {name: Exotic Liquids, city: London, country: UK}\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		ds, err := LoadFile(path)
		require.NoError(t, err)
		assert.Empty(t, ds.Customers)
		require.Len(t, ds.Suppliers, 1)
		assert.Equal(t, "London", ds.Suppliers[0].City)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "failed to read dataset")
	})
}

func TestSynthetic(t *testing.T) {
	ds := Synthetic(Sizes{Customers: 16, OrdersPerCustomer: 3, Suppliers: 8, Products: 10})

	require.NoError(t, ds.Validate())
	assert.Len(t, ds.Customers, 16)
	assert.Len(t, ds.Suppliers, 8)
	assert.Len(t, ds.Products, 10)
	assert.Equal(t, "C00000", ds.Customers[0].ID)
	assert.Equal(t, ds.Customers[0].City, ds.Customers[8].City)
	assert.Len(t, ds.Customers[15].Orders, 3)
	assert.Equal(t, 10000+15*3+2, ds.Customers[15].Orders[2].ID)

	again := Synthetic(Sizes{Customers: 16, OrdersPerCustomer: 3, Suppliers: 8, Products: 10})
	assert.Equal(t, ds, again)
}
