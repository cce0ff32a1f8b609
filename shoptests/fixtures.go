package shoptests

import (
	"fmt"
	"os"

	"github.com/myproject/shop-api-tests/servicedef"

	"gopkg.in/yaml.v3"
)

// Fixtures are the literal payloads that the steps send.
type Fixtures struct {
	Shop          servicedef.CreateShopParams        `yaml:"shop"`
	ShopUpdate    servicedef.UpdateShopParams        `yaml:"shop_update"`
	Product       servicedef.CreateProductParams     `yaml:"product"`
	ProductUpdate servicedef.UpdateProductParams     `yaml:"product_update"`
	ProductSearch string                             `yaml:"product_search"`
	Order         servicedef.CreateOrderParams       `yaml:"order"`
	OrderStatus   servicedef.UpdateOrderStatusParams `yaml:"order_status"`
}

var (
	ExampleShop = servicedef.CreateShopParams{
		Name:        "Python Test Shop",
		Description: "Created by Python test script",
		OwnerID:     1,
	}
	ExampleShopUpdate = servicedef.UpdateShopParams{
		Name:        "Updated Python Test Shop",
		Description: "Updated by test script",
	}
	ExampleProduct = servicedef.CreateProductParams{
		Name:        "Python Test Product",
		Description: "Test product from Python",
		Price:       99.99,
		Stock:       50,
		ProductImg:  "https://example.com/test-product.jpg",
	}
	ExampleProductUpdate = servicedef.UpdateProductParams{
		Name:  "Updated Python Test Product",
		Price: 149.99,
		Stock: 40,
	}
	ExampleProductSearch = "Python"
	ExampleOrderItems    = []servicedef.OrderItemParams{
		{ProductID: 1, ProductName: "Test Product 1", Price: 99.99, Quantity: 2},
		{ProductID: 2, ProductName: "Test Product 2", Price: 49.99, Quantity: 1},
	}
	ExampleOrderStatus = servicedef.UpdateOrderStatusParams{Status: "shipped"}
)

const exampleOrderUserID = 999

// DefaultFixtures returns a fresh copy of the built-in payloads.
func DefaultFixtures() Fixtures {
	return Fixtures{
		Shop:          ExampleShop,
		ShopUpdate:    ExampleShopUpdate,
		Product:       ExampleProduct,
		ProductUpdate: ExampleProductUpdate,
		ProductSearch: ExampleProductSearch,
		Order: servicedef.CreateOrderParams{
			UserID: exampleOrderUserID,
			Items:  append([]servicedef.OrderItemParams(nil), ExampleOrderItems...),
		},
		OrderStatus: ExampleOrderStatus,
	}
}

// LoadFixtures reads a YAML file and applies it on top of DefaultFixtures. Sections and
// fields that the file leaves out keep their default values, except for order items, which
// are replaced as a whole if present.
func LoadFixtures(path string) (Fixtures, error) {
	f := DefaultFixtures()
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("reading fixtures: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parsing fixtures %s: %w", path, err)
	}
	return f, nil
}
